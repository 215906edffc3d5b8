package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
)

func fastConfig(retries uint64) Config {
	return Config{
		MaxRetries:      retries,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      1,
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), logger.Nop(), "flaky", func() error {
		calls++
		if calls < 3 {
			return errors.New("boom")
		}
		return nil
	}, fastConfig(5))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoGivesUpAfterBudget(t *testing.T) {
	calls := 0
	err := Do(context.Background(), logger.Nop(), "broken", func() error {
		calls++
		return errors.New("boom")
	}, fastConfig(2))

	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnPermanent(t *testing.T) {
	calls := 0
	sentinel := errors.New("404")
	err := Do(context.Background(), logger.Nop(), "missing", func() error {
		calls++
		return Permanent(sentinel)
	}, fastConfig(5))

	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestWithRetries(t *testing.T) {
	cfg := DefaultConfig().WithRetries(7)
	assert.Equal(t, uint64(7), cfg.MaxRetries)
	assert.Equal(t, DefaultConfig().InitialInterval, cfg.InitialInterval)
}
