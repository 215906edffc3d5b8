package extractor

import (
	"context"
	"math/rand/v2"
	"time"
)

// DelayPolicy decides how long to pause between two enrichment fetches.
type DelayPolicy interface {
	Next() time.Duration
}

// RandomDelay picks uniformly in [Min, Max].
type RandomDelay struct {
	Min time.Duration
	Max time.Duration
}

func (d RandomDelay) Next() time.Duration {
	if d.Max <= d.Min {
		return d.Min
	}
	return d.Min + rand.N(d.Max-d.Min+1)
}

type NoDelay struct{}

func (NoDelay) Next() time.Duration { return 0 }

// DefaultDelay paces enrichment between one and three seconds.
func DefaultDelay() DelayPolicy {
	return RandomDelay{Min: time.Second, Max: 3 * time.Second}
}

// Wait sleeps for d unless ctx ends first.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
