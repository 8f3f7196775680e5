package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "ops-agent-backend/internal/errors"

	"github.com/matryer/try"
)

const (
	defaultHealthCheckAttempts = 5
	defaultHealthCheckInterval = 10 * time.Second
	defaultHealthCheckTimeout  = 30 * time.Second
)

// HealthProber checks that a freshly deployed application answers
type HealthProber interface {
	Check(ctx context.Context, url string, onFailure func(attempt int, err error)) error
}

// HealthChecker polls a URL with a bounded number of attempts and a fixed wait between them
type HealthChecker struct {
	client   *http.Client
	attempts int
	interval time.Duration
	timeout  time.Duration
}

// NewHealthChecker creates a new health checker. Zero values fall back to
// 5 attempts, a 10 second interval and a 30 second per-attempt timeout.
func NewHealthChecker(attempts int, interval, timeout time.Duration) *HealthChecker {
	if attempts <= 0 {
		attempts = defaultHealthCheckAttempts
	}
	if attempts > try.MaxRetries {
		attempts = try.MaxRetries
	}
	if interval <= 0 {
		interval = defaultHealthCheckInterval
	}
	if timeout <= 0 {
		timeout = defaultHealthCheckTimeout
	}
	return &HealthChecker{
		client:   &http.Client{},
		attempts: attempts,
		interval: interval,
		timeout:  timeout,
	}
}

// Check probes url until it answers or every attempt is used up.
// onFailure is called after each failed attempt.
func (h *HealthChecker) Check(ctx context.Context, url string, onFailure func(attempt int, err error)) error {
	err := try.Do(func(attempt int) (bool, error) {
		err := h.probe(ctx, url)
		if err == nil {
			return false, nil
		}
		if onFailure != nil {
			onFailure(attempt, err)
		}
		if attempt >= h.attempts {
			return false, err
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(h.interval):
		}
		return true, err
	})
	if err != nil {
		return fmt.Errorf("%w: %s after %d attempts: %v", apperrors.ErrHealthCheckFailed, url, h.attempts, err)
	}
	return nil
}

// probe issues a single GET; any 2xx or 3xx answer counts as reachable
func (h *HealthChecker) probe(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
