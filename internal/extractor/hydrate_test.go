package extractor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
)

type enricherFunc func(ctx context.Context, link string) (domain.Enrichment, error)

func (f enricherFunc) Enrich(ctx context.Context, link string) (domain.Enrichment, error) {
	return f(ctx, link)
}

type countingDelay struct {
	calls atomic.Int32
}

func (d *countingDelay) Next() time.Duration {
	d.calls.Add(1)
	return 0
}

func skeletonsFor(t *testing.T, codes ...string) []domain.Post {
	t.Helper()
	n := NewNormalizer("")
	out := make([]domain.Post, 0, len(codes))
	for _, code := range codes {
		post, ok := n.Skeleton(domain.Anchor{Link: "/p/" + code + "/", ImageURL: "https://cdn/" + code + ".jpg"}, time.Unix(1, 0))
		require.True(t, ok)
		out = append(out, post)
	}
	return out
}

func TestHydratePreservesOrderAndMerges(t *testing.T) {
	var seen []string
	enricher := enricherFunc(func(_ context.Context, link string) (domain.Enrichment, error) {
		seen = append(seen, link)
		if link == "https://www.instagram.com/p/b/" {
			return domain.Enrichment{VideoURL: "https://cdn/b.mp4"}, nil
		}
		return domain.Enrichment{}, nil
	})
	delay := &countingDelay{}
	h := NewHydrator(enricher, NewNormalizer(""), delay, time.Second, logger.Nop())

	got := h.Hydrate(context.Background(), skeletonsFor(t, "a", "b", "c"))

	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, shortcodes(got))
	assert.Equal(t, []string{
		"https://www.instagram.com/p/a/",
		"https://www.instagram.com/p/b/",
		"https://www.instagram.com/p/c/",
	}, seen)
	assert.Equal(t, domain.MediaTypeImage, got[0].Type)
	assert.Equal(t, domain.MediaTypeVideo, got[1].Type)
	assert.Equal(t, int32(2), delay.calls.Load())
}

func TestHydrateFailureKeepsSkeleton(t *testing.T) {
	enricher := enricherFunc(func(context.Context, string) (domain.Enrichment, error) {
		return domain.Enrichment{}, errors.New("boom")
	})
	skeletons := skeletonsFor(t, "a", "b")
	h := NewHydrator(enricher, NewNormalizer(""), NoDelay{}, time.Second, logger.Nop())

	got := h.Hydrate(context.Background(), skeletons)

	assert.Equal(t, skeletons, got)
}

func TestHydrateTimeoutKeepsSkeleton(t *testing.T) {
	enricher := enricherFunc(func(ctx context.Context, link string) (domain.Enrichment, error) {
		if link == "https://www.instagram.com/p/slow/" {
			<-ctx.Done()
			return domain.Enrichment{}, ctx.Err()
		}
		return domain.Enrichment{VideoURL: "https://cdn/fast.mp4"}, nil
	})
	h := NewHydrator(enricher, NewNormalizer(""), NoDelay{}, 20*time.Millisecond, logger.Nop())

	got := h.Hydrate(context.Background(), skeletonsFor(t, "slow", "fast"))

	require.Len(t, got, 2)
	assert.Equal(t, domain.MediaTypeImage, got[0].Type)
	assert.Equal(t, domain.MediaTypeVideo, got[1].Type)
}

func TestHydrateCancelledContext(t *testing.T) {
	var calls atomic.Int32
	enricher := enricherFunc(func(context.Context, string) (domain.Enrichment, error) {
		calls.Add(1)
		return domain.Enrichment{VideoURL: "https://cdn/v.mp4"}, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	skeletons := skeletonsFor(t, "a", "b")

	got := NewHydrator(enricher, NewNormalizer(""), NoDelay{}, time.Second, logger.Nop()).Hydrate(ctx, skeletons)

	assert.Equal(t, skeletons, got)
	assert.Equal(t, int32(0), calls.Load())
}

func TestHydrateWithoutEnricher(t *testing.T) {
	skeletons := skeletonsFor(t, "a")

	got := NewHydrator(nil, NewNormalizer(""), nil, 0, logger.Nop()).Hydrate(context.Background(), skeletons)

	assert.Equal(t, skeletons, got)
}

func TestRandomDelayBounds(t *testing.T) {
	d := RandomDelay{Min: 10 * time.Millisecond, Max: 20 * time.Millisecond}
	for range 100 {
		got := d.Next()
		assert.GreaterOrEqual(t, got, d.Min)
		assert.LessOrEqual(t, got, d.Max)
	}
	assert.Equal(t, 5*time.Millisecond, RandomDelay{Min: 5 * time.Millisecond, Max: time.Millisecond}.Next())
}
