package retry

import (
	"context"
	"errors"
	"time"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
)

// Policy describes how a failing outbound call is retried.
// Delay before attempt n (n >= 1) is BaseDelay * Multiplier^(n-1), capped at MaxDelay.
// Retry-After hints are honored up to MaxDelay as well.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxDelay    time.Duration

	// Retryable decides whether an error is worth another attempt.
	// Defaults to domain.IsTransient.
	Retryable func(error) bool

	// Sleep blocks for d or until ctx is done. Tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

// RetryAfterError is implemented by errors that carry a server-provided wait hint
type RetryAfterError interface {
	RetryAfterDelay() time.Duration
}

// Result is the typed outcome of running an operation under a Policy
type Result[T any] struct {
	Value     T
	Err       error
	Attempts  int
	Exhausted bool // every attempt failed with a retryable error
}

// OK reports whether the operation eventually succeeded
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// DefaultPolicy tries 4 times with a doubling 1s backoff
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		Multiplier:  DefaultMultiplier,
		MaxDelay:    DefaultMaxDelay,
	}
}

// Delay returns the backoff before the given retry (1-based)
func (p Policy) Delay(retry int) time.Duration {
	if retry < 1 {
		return 0
	}
	mult := p.Multiplier
	if mult < 1 {
		mult = 1
	}
	d := float64(p.BaseDelay)
	for i := 1; i < retry; i++ {
		d *= mult
		if p.MaxDelay > 0 && time.Duration(d) >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	delay := time.Duration(d)
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

// wait returns the backoff before the next attempt. A server hint may
// lengthen it, but never past MaxDelay.
func (p Policy) wait(attempt int, err error) time.Duration {
	delay := p.Delay(attempt)
	var hinted RetryAfterError
	if errors.As(err, &hinted) && hinted.RetryAfterDelay() > delay {
		delay = hinted.RetryAfterDelay()
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
	return delay
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p Policy) retryable(err error) bool {
	if p.Retryable != nil {
		return p.Retryable(err)
	}
	return domain.IsTransient(err)
}

func (p Policy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	return SleepContext(ctx, d)
}

// Do runs op until it succeeds, fails permanently, or the attempt ceiling is hit.
// Retries block in place; they never fan out.
func Do[T any](ctx context.Context, p Policy, name string, op func(ctx context.Context) (T, error)) Result[T] {
	log := logger.FromContext(ctx)
	var res Result[T]

	for attempt := 1; attempt <= p.attempts(); attempt++ {
		res.Attempts = attempt
		v, err := op(ctx)
		if err == nil {
			res.Value = v
			res.Err = nil
			return res
		}
		res.Err = err

		if !p.retryable(err) {
			return res
		}
		if attempt == p.attempts() {
			break
		}

		delay := p.wait(attempt, err)

		log.Warn(LogMsgRetrying, "operation", name, "attempt", attempt, "delay", delay, "error", err)
		if serr := p.sleep(ctx, delay); serr != nil {
			res.Err = serr
			return res
		}
	}

	res.Exhausted = true
	log.Error(LogMsgExhausted, "operation", name, "attempts", res.Attempts, "error", res.Err)
	return res
}

// SleepContext waits for d unless ctx is cancelled first
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
