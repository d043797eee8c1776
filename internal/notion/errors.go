package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
)

// APIError is a non-2xx response decoded from the API error body
type APIError struct {
	Status     int           `json:"status"`
	Code       string        `json:"code"`
	Message    string        `json:"message"`
	RetryAfter time.Duration `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion: %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap maps the response onto the domain error taxonomy
func (e *APIError) Unwrap() error {
	return classify(e.Status, e.Code)
}

// RetryAfterDelay exposes the server wait hint to the retry policy
func (e *APIError) RetryAfterDelay() time.Duration {
	return e.RetryAfter
}

func classify(status int, code string) error {
	switch {
	case status == http.StatusUnauthorized || code == CodeUnauthorized:
		return domain.ErrAuth
	case status == http.StatusNotFound || code == CodeObjectNotFound:
		return domain.ErrNotFound
	case status == http.StatusForbidden || code == CodeRestrictedResource:
		return domain.ErrPermission
	case status == http.StatusTooManyRequests || code == CodeRateLimited,
		status == http.StatusConflict || code == CodeConflict,
		status >= http.StatusInternalServerError:
		return domain.ErrTransient
	default:
		return domain.ErrValidation
	}
}

// transportError wraps a network failure as transient, unless the caller gave up
func transportError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: notion %s: %v", domain.ErrTransient, op, err)
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
