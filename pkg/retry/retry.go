package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
)

// Config bounds one retried operation. MaxRetries counts retries, not attempts.
type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      1.5,
	}
}

func (cfg Config) WithRetries(n uint64) Config {
	cfg.MaxRetries = n
	return cfg
}

func (cfg Config) backOff(ctx context.Context) backoff.BackOffContext {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialInterval
	bo.MaxInterval = cfg.MaxInterval
	bo.Multiplier = cfg.Multiplier
	bo.MaxElapsedTime = 0
	bo.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(bo, cfg.MaxRetries), ctx)
}

// Permanent stops Do after the current attempt.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs op until it succeeds, returns a Permanent error, exhausts cfg or ctx ends.
// The last error is returned wrapped with the operation name.
func Do(ctx context.Context, log logger.Logger, name string, op func() error, cfg Config) error {
	attempt := 1
	notify := func(err error, next time.Duration) {
		log.Warn("Operation failed, retrying",
			"operation", name,
			"attempt", attempt,
			"error", err,
			"next_attempt_in", next.Round(time.Millisecond).String(),
		)
		attempt++
	}

	if err := backoff.RetryNotify(op, cfg.backOff(ctx), notify); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
