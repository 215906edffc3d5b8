package extractor

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen -source=hydrate.go -destination=mocks/enricher.go -package=mocks

// Enricher fetches extra detail for a single post page.
type Enricher interface {
	Enrich(ctx context.Context, link string) (domain.Enrichment, error)
}

// Hydrator enriches DOM skeletons one at a time, pausing between fetches.
type Hydrator struct {
	enricher   Enricher
	normalizer Normalizer
	delay      DelayPolicy
	timeout    time.Duration
	logger     logger.Logger
}

func NewHydrator(enricher Enricher, normalizer Normalizer, delay DelayPolicy, timeout time.Duration, log logger.Logger) *Hydrator {
	if delay == nil {
		delay = DefaultDelay()
	}
	return &Hydrator{
		enricher:   enricher,
		normalizer: normalizer,
		delay:      delay,
		timeout:    timeout,
		logger:     log.WithComponent("Hydrator"),
	}
}

// Hydrate returns the skeletons merged with whatever enrichment succeeded.
// A failed or timed out item keeps its skeleton fields.
func (h *Hydrator) Hydrate(ctx context.Context, skeletons []domain.Post) []domain.Post {
	out := make([]domain.Post, len(skeletons))
	copy(out, skeletons)
	if h.enricher == nil || len(out) == 0 {
		return out
	}

	// A single worker keeps fetches strictly sequential.
	pool, err := ants.NewPool(1, ants.WithPreAlloc(true))
	if err != nil {
		h.logger.Error("Failed to create hydration pool, skipping enrichment", "error", err)
		return out
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range out {
		if ctx.Err() != nil {
			h.logger.Warn("Context done, leaving remaining posts unenriched", "remaining", len(out)-i)
			break
		}
		idx := i
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			out[idx] = h.hydrateOne(ctx, out[idx])
			if idx < len(out)-1 {
				if err := Wait(ctx, h.delay.Next()); err != nil {
					h.logger.Debug("Pacing delay interrupted", "error", err)
				}
			}
		})
		if err != nil {
			wg.Done()
			h.logger.Error("Failed to submit enrichment job", "link", out[idx].Link, "error", err)
		}
	}
	wg.Wait()

	return out
}

func (h *Hydrator) hydrateOne(ctx context.Context, post domain.Post) domain.Post {
	itemCtx := ctx
	if h.timeout > 0 {
		var cancel context.CancelFunc
		itemCtx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	enrichment, err := h.enricher.Enrich(itemCtx, post.Link)
	if err != nil {
		h.logger.Warn("Enrichment failed, keeping skeleton", "link", post.Link, "error", err)
		return post
	}

	h.logger.Debug("Enriched post", "shortcode", post.Shortcode, "video", enrichment.VideoURL != "", "sidecar", enrichment.IsSidecar)
	return h.normalizer.Merge(post, enrichment)
}
