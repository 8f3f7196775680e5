package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrDeploymentNotFound = &NotFoundError{Entity: "deployment"}
	ErrBackupNotFound     = &NotFoundError{Entity: "backup"}
	ErrScheduleNotFound   = &NotFoundError{Entity: "scheduled deployment"}
)

// Validation Errors
var (
	ErrUnsupportedPlatform = &ValidationError{Field: "platform", Message: "unsupported platform"}
	ErrInvalidEnvironment  = &ValidationError{Field: "environment", Message: "unsupported environment"}
	ErrScheduleInPast      = &ValidationError{Field: "scheduled_at", Message: "scheduled time is in the past"}
)

// Deployment Errors
var (
	ErrDeploymentFailed      = errors.New("deployment failed")
	ErrDeploymentCancelled   = errors.New("deployment was cancelled")
	ErrNotCancellable        = errors.New("deployment cannot be cancelled")
	ErrHealthCheckFailed     = errors.New("health check failed")
	ErrRollbackTargetInvalid = errors.New("rollback target is missing or was not successful")
)

// Database Agent Errors
var (
	ErrConnectionFailed = errors.New("database connection failed")
	ErrNoConnectionPool = errors.New("no connection pool for environment")
	ErrMigrationFailed  = errors.New("migration failed")
	ErrBackupFailed     = errors.New("backup failed")
	ErrRestoreFailed    = errors.New("restore failed")
)

// Authentication Errors
var (
	ErrInvalidWebhookSignature = &AuthenticationError{Message: "invalid webhook signature"}
	ErrWebhookSecretNotSet     = &ConfigurationError{Message: "GITHUB_WEBHOOK_SECRET is not configured"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.Is(err, &NotFoundError{}) || errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.Is(err, &ValidationError{}) || errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.Is(err, &AuthenticationError{}) || errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.Is(err, &AuthorizationError{}) || errors.As(err, &authzErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.Is(err, &ConfigurationError{}) || errors.As(err, &configErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}
