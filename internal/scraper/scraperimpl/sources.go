package scraperimpl

import (
	"context"
	"time"

	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/browser"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/dom"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/extractor"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
)

// pageSources adapts a settled browser session to the cascade. The markup is
// read once, so both DOM passes and the diagnostic see the same snapshot.
type pageSources struct {
	session browser.Session
	markup  string
	inline  []domain.NetworkEntry
	logger  logger.Logger
}

var _ extractor.Sources = (*pageSources)(nil)

// newPageSources snapshots the markup within timeout. A slow or failed read leaves
// the DOM strategies empty; only the caller's own cancellation is an error.
func newPageSources(ctx context.Context, session browser.Session, timeout time.Duration, log logger.Logger) (*pageSources, error) {
	readCtx, cancel := context.WithTimeout(ctx, timeout)
	markup, err := session.Markup(readCtx)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn("Could not read page markup, DOM strategies will find nothing", "error", err)
	}
	inline := dom.InlineEntries(markup)
	log.Debug("Page snapshot taken", "markup_bytes", len(markup), "inline_entries", len(inline))
	return &pageSources{
		session: session,
		markup:  markup,
		inline:  inline,
		logger:  log,
	}, nil
}

// NetworkEntries lists captured responses first, then server-rendered blobs.
func (p *pageSources) NetworkEntries() []domain.NetworkEntry {
	captured := p.session.NetworkEntries()
	out := make([]domain.NetworkEntry, 0, len(captured)+len(p.inline))
	out = append(out, captured...)
	return append(out, p.inline...)
}

func (p *pageSources) Anchors(_ context.Context, mode domain.AnchorMode, limit int) ([]domain.Anchor, error) {
	anchors, err := dom.ExtractAnchors(p.markup, mode, limit)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("DOM anchors found", "mode", mode.String(), "count", len(anchors))
	return anchors, nil
}

func (p *pageSources) Title(ctx context.Context) (string, error) {
	return p.session.Title(ctx)
}

func (p *pageSources) Markup(context.Context) (string, error) {
	return p.markup, nil
}
