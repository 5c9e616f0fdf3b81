package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultMaxAttempts is the number of calls made before giving up on a
	// service that keeps failing.
	DefaultMaxAttempts = 3

	// DefaultMaxDelay caps the backoff when Backoff.Max is not set.
	DefaultMaxDelay = 30 * time.Second
)

// Backoff computes the wait between attempts: Base doubled for every
// previous failure, capped at Max. A zero Base retries immediately; a
// zero Max means DefaultMaxDelay.
type Backoff struct {
	Base time.Duration
	Max  time.Duration
}

// Delay returns the wait after the given failed attempt (1-based).
func (b Backoff) Delay(attempt int) time.Duration {
	if b.Base <= 0 || attempt < 1 {
		return 0
	}
	limit := b.Max
	if limit <= 0 {
		limit = DefaultMaxDelay
	}
	d := min(b.Base, limit)
	for i := 1; i < attempt; i++ {
		// One more doubling would pass the cap.
		if d > limit/2 {
			return limit
		}
		d *= 2
	}
	return d
}

// Generator calls a Model, retrying service failures.
type Generator struct {
	Model       Model
	MaxAttempts int
	Backoff     Backoff
	// Timeout bounds each attempt. Zero means no limit.
	Timeout time.Duration
	Logger  *log.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

// NewGenerator returns a Generator with the default attempt count and no
// backoff.
func NewGenerator(model Model, logger *log.Logger) *Generator {
	return &Generator{
		Model:       model,
		MaxAttempts: DefaultMaxAttempts,
		Logger:      logger,
	}
}

// Generate returns the model's text for prompt. Service failures are
// retried up to MaxAttempts calls in total; any other error stops at once.
// On failure the returned error wraps ErrGenerationFailed and the cause.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	logger := g.logger()
	attempts := max(g.MaxAttempts, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := g.call(ctx, prompt)
		if err == nil {
			logger.Debug("generation succeeded", "attempt", attempt, "bytes", len(text))
			return text, nil
		}

		if ctx.Err() != nil {
			logger.Error("generation cancelled", "err", ctx.Err())
			return "", fmt.Errorf("%w: %w", ErrGenerationFailed, ctx.Err())
		}
		if !IsServiceFailure(err) {
			logger.Error("error during code generation", "err", err)
			return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
		}

		lastErr = err
		logger.Warn("attempt failed: could not reach the generative AI API",
			"attempt", attempt, "max_attempts", attempts, "err", err)
		if attempt == attempts {
			break
		}

		if d := g.Backoff.Delay(attempt); d > 0 {
			logger.Debug("backing off", "delay", d)
			if err := g.wait(ctx, d); err != nil {
				logger.Error("generation cancelled", "err", err)
				return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
			}
		}
	}

	logger.Error("max retries reached, unable to generate code", "attempts", attempts)
	return "", fmt.Errorf("%w after %d attempts: %w", ErrGenerationFailed, attempts, lastErr)
}

func (g *Generator) call(ctx context.Context, prompt string) (string, error) {
	if g.Timeout <= 0 {
		return g.Model.GenerateContent(ctx, prompt)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	text, err := g.Model.GenerateContent(attemptCtx, prompt)
	if err != nil && ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%w: attempt timed out after %v: %w", ErrServiceUnavailable, g.Timeout, err)
	}
	return text, err
}

func (g *Generator) wait(ctx context.Context, d time.Duration) error {
	if g.sleep != nil {
		return g.sleep(ctx, d)
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

func (g *Generator) logger() *log.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return log.Default()
}
