package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Environments lists the deployment environments the agents understand
var Environments = []string{"development", "staging", "production"}

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogFormat   string `mapstructure:"LOG_FORMAT"`
	LogDir      string `mapstructure:"LOG_DIR"`

	// Archive database for deployment records (optional)
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// JWT configuration
	JWTSecret string `mapstructure:"JWT_SECRET"`
	AdminRole string `mapstructure:"ADMIN_ROLE"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Rate limiting
	RateLimitRequests int           `mapstructure:"RATE_LIMIT_REQUESTS"`
	RateLimitWindow   time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	RedisPassword     string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB           int           `mapstructure:"REDIS_DB"`

	// Webhooks
	GitHubWebhookSecret  string `mapstructure:"GITHUB_WEBHOOK_SECRET"`
	WebhookPlatform      string `mapstructure:"WEBHOOK_PLATFORM"`
	DeploymentWebhookURL string `mapstructure:"DEPLOYMENT_WEBHOOK_URL"`

	Deploy   DeployConfig   `mapstructure:",squash"`
	Database DatabaseConfig `mapstructure:",squash"`
}

// DeployConfig holds settings for the deployment agent and its platform deployers
type DeployConfig struct {
	AppName        string `mapstructure:"APP_NAME"`
	SourceDir      string `mapstructure:"SOURCE_DIR"`
	DistDir        string `mapstructure:"DIST_DIR"`
	BuildCommand   string `mapstructure:"BUILD_COMMAND"`
	VercelCommand  string `mapstructure:"VERCEL_COMMAND"`
	ContainerPort  int    `mapstructure:"CONTAINER_PORT"`
	MaxHistorySize int    `mapstructure:"MAX_HISTORY_SIZE"`

	DockerPortDevelopment int `mapstructure:"DOCKER_PORT_DEVELOPMENT"`
	DockerPortStaging     int `mapstructure:"DOCKER_PORT_STAGING"`
	DockerPortProduction  int `mapstructure:"DOCKER_PORT_PRODUCTION"`

	HealthCheckAttempts int           `mapstructure:"HEALTH_CHECK_ATTEMPTS"`
	HealthCheckInterval time.Duration `mapstructure:"HEALTH_CHECK_INTERVAL"`
	HealthCheckTimeout  time.Duration `mapstructure:"HEALTH_CHECK_TIMEOUT"`

	HealthCheckURLDevelopment string `mapstructure:"HEALTH_CHECK_URL_DEVELOPMENT"`
	HealthCheckURLStaging     string `mapstructure:"HEALTH_CHECK_URL_STAGING"`
	HealthCheckURLProduction  string `mapstructure:"HEALTH_CHECK_URL_PRODUCTION"`
}

// DatabaseConfig holds settings shared by every environment the database agent manages
type DatabaseConfig struct {
	Environments    []string      `mapstructure:"DATABASE_ENVIRONMENTS"`
	MigrationsDir   string        `mapstructure:"MIGRATIONS_DIR"`
	BackupDir       string        `mapstructure:"BACKUP_DIR"`
	BackupPrefix    string        `mapstructure:"BACKUP_PREFIX"`
	MonitorInterval time.Duration `mapstructure:"DB_MONITOR_INTERVAL"`

	BackupS3Endpoint  string `mapstructure:"BACKUP_S3_ENDPOINT"`
	BackupS3AccessKey string `mapstructure:"BACKUP_S3_ACCESS_KEY"`
	BackupS3SecretKey string `mapstructure:"BACKUP_S3_SECRET_KEY"`
	BackupS3Bucket    string `mapstructure:"BACKUP_S3_BUCKET"`
	BackupS3Region    string `mapstructure:"BACKUP_S3_REGION"`
	BackupS3UseSSL    bool   `mapstructure:"BACKUP_S3_USE_SSL"`
}

// EnvironmentDatabase describes the connection settings of one environment's database
type EnvironmentDatabase struct {
	Host              string        `json:"host"`
	Port              int           `json:"port"`
	Database          string        `json:"database"`
	Username          string        `json:"username"`
	Password          string        `json:"-"`
	SSL               bool          `json:"ssl"`
	PoolMin           int           `json:"pool_min"`
	PoolMax           int           `json:"pool_max"`
	ConnectionTimeout time.Duration `json:"connection_timeout"`
	IdleTimeout       time.Duration `json:"idle_timeout"`
	MaxRetries        int           `json:"max_retries"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "7008")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("LOG_DIR", "logs")
	viper.SetDefault("DATABASE_URL", "")

	// JWT defaults
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("ADMIN_ROLE", "admin")

	// CORS defaults
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"})

	// Rate limit defaults: 10 requests per minute on mutation routes
	viper.SetDefault("RATE_LIMIT_REQUESTS", 10)
	viper.SetDefault("RATE_LIMIT_WINDOW", time.Minute)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	// Webhook defaults
	viper.SetDefault("GITHUB_WEBHOOK_SECRET", "")
	viper.SetDefault("WEBHOOK_PLATFORM", "vercel")
	viper.SetDefault("DEPLOYMENT_WEBHOOK_URL", "")

	// Deployment defaults
	viper.SetDefault("APP_NAME", "app")
	viper.SetDefault("SOURCE_DIR", ".")
	viper.SetDefault("DIST_DIR", "dist")
	viper.SetDefault("BUILD_COMMAND", "npm run build")
	viper.SetDefault("VERCEL_COMMAND", "npx vercel")
	viper.SetDefault("CONTAINER_PORT", 3000)
	viper.SetDefault("MAX_HISTORY_SIZE", 100)
	viper.SetDefault("DOCKER_PORT_DEVELOPMENT", 3001)
	viper.SetDefault("DOCKER_PORT_STAGING", 3002)
	viper.SetDefault("DOCKER_PORT_PRODUCTION", 80)
	viper.SetDefault("HEALTH_CHECK_ATTEMPTS", 5)
	viper.SetDefault("HEALTH_CHECK_INTERVAL", 10*time.Second)
	viper.SetDefault("HEALTH_CHECK_TIMEOUT", 30*time.Second)
	viper.SetDefault("HEALTH_CHECK_URL_DEVELOPMENT", "http://localhost:3000/api/health")
	viper.SetDefault("HEALTH_CHECK_URL_STAGING", "")
	viper.SetDefault("HEALTH_CHECK_URL_PRODUCTION", "")

	// Database agent defaults
	viper.SetDefault("DATABASE_ENVIRONMENTS", []string{})
	viper.SetDefault("MIGRATIONS_DIR", "database/migrations")
	viper.SetDefault("BACKUP_DIR", "backups")
	viper.SetDefault("BACKUP_PREFIX", "app")
	viper.SetDefault("DB_MONITOR_INTERVAL", 30*time.Second)
	viper.SetDefault("BACKUP_S3_ENDPOINT", "")
	viper.SetDefault("BACKUP_S3_ACCESS_KEY", "")
	viper.SetDefault("BACKUP_S3_SECRET_KEY", "")
	viper.SetDefault("BACKUP_S3_BUCKET", "")
	viper.SetDefault("BACKUP_S3_REGION", "us-east-1")
	viper.SetDefault("BACKUP_S3_USE_SSL", true)
}

func validate(config *Config) error {
	if config.Environment == "production" {
		if config.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	if config.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
	}

	if config.Deploy.MaxHistorySize <= 0 {
		return fmt.Errorf("MAX_HISTORY_SIZE must be positive")
	}

	for _, env := range config.Database.Environments {
		if !IsValidEnvironment(env) {
			return fmt.Errorf("unknown database environment %q", env)
		}
	}

	return nil
}

// EnvironmentDatabase resolves the database settings for one environment from
// <ENV>_DB_* variables, falling back to local defaults
func (c *Config) EnvironmentDatabase(environment string) EnvironmentDatabase {
	prefix := strings.ToUpper(environment) + "_DB_"

	get := func(key, fallback string) string {
		if v := viper.GetString(prefix + key); v != "" {
			return v
		}
		return fallback
	}
	getInt := func(key string, fallback int) int {
		if viper.IsSet(prefix + key) {
			return viper.GetInt(prefix + key)
		}
		return fallback
	}
	getMillis := func(key string, fallback time.Duration) time.Duration {
		if viper.IsSet(prefix + key) {
			return time.Duration(viper.GetInt64(prefix+key)) * time.Millisecond
		}
		return fallback
	}

	return EnvironmentDatabase{
		Host:              get("HOST", "localhost"),
		Port:              getInt("PORT", 5432),
		Database:          get("NAME", c.Database.BackupPrefix),
		Username:          get("USER", "postgres"),
		Password:          get("PASSWORD", ""),
		SSL:               viper.GetBool(prefix + "SSL"),
		PoolMin:           getInt("POOL_MIN", 2),
		PoolMax:           getInt("POOL_MAX", 10),
		ConnectionTimeout: getMillis("TIMEOUT", 30*time.Second),
		IdleTimeout:       getMillis("IDLE_TIMEOUT", 10*time.Second),
		MaxRetries:        getInt("MAX_RETRIES", 3),
	}
}

// DockerPort returns the host port the docker deployer binds for an environment
func (d DeployConfig) DockerPort(environment string) int {
	switch environment {
	case "production":
		return d.DockerPortProduction
	case "staging":
		return d.DockerPortStaging
	default:
		return d.DockerPortDevelopment
	}
}

// HealthCheckURL returns the configured health check URL for an environment
func (d DeployConfig) HealthCheckURL(environment string) string {
	switch environment {
	case "production":
		return d.HealthCheckURLProduction
	case "staging":
		return d.HealthCheckURLStaging
	default:
		return d.HealthCheckURLDevelopment
	}
}

// IsValidEnvironment reports whether name is one of the known environments
func IsValidEnvironment(name string) bool {
	for _, env := range Environments {
		if env == name {
			return true
		}
	}
	return false
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
