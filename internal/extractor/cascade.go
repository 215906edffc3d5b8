package extractor

import (
	"context"
	"fmt"
	"time"

	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
)

const DefaultAggressiveLimit = 12

// DefaultReadTimeout bounds each page read made while building the diagnostic.
const DefaultReadTimeout = 10 * time.Second

//go:generate go run go.uber.org/mock/mockgen -source=cascade.go -destination=mocks/sources.go -package=mocks

// Sources is everything captured from one page session.
type Sources interface {
	NetworkEntries() []domain.NetworkEntry
	Anchors(ctx context.Context, mode domain.AnchorMode, limit int) ([]domain.Anchor, error)
	Title(ctx context.Context) (string, error)
	Markup(ctx context.Context) (string, error)
}

type Options struct {
	Host             string
	Markers          []string
	MaxDepth         int
	AggressiveLimit  int
	EnrichTimeout    time.Duration
	SnippetLength    int
	ReadTimeout      time.Duration
	HasSessionCookie bool
	Delay            DelayPolicy
	Now              func() time.Time
}

// Cascade runs the extraction strategies in order and stops at the first that yields posts.
type Cascade struct {
	opts       Options
	searcher   Searcher
	normalizer Normalizer
	hydrator   *Hydrator
	logger     logger.Logger
}

type strategy struct {
	name domain.Strategy
	run  func(ctx context.Context, src Sources) []domain.Post
}

func NewCascade(opts Options, enricher Enricher, log logger.Logger) *Cascade {
	if opts.AggressiveLimit <= 0 {
		opts.AggressiveLimit = DefaultAggressiveLimit
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	normalizer := NewNormalizer(opts.Host)
	return &Cascade{
		opts:       opts,
		searcher:   NewSearcher(opts.Markers, opts.MaxDepth),
		normalizer: normalizer,
		hydrator:   NewHydrator(enricher, normalizer, opts.Delay, opts.EnrichTimeout, log),
		logger:     log.WithComponent("Cascade"),
	}
}

// Run never fails for lack of data: it returns posts or a diagnostic report.
func (c *Cascade) Run(ctx context.Context, src Sources) domain.Result {
	strategies := []strategy{
		{domain.StrategyNetworkStructured, c.networkStructured},
		{domain.StrategyNetworkItems, c.networkItems},
		{domain.StrategyDomBasic, c.domBasic},
		{domain.StrategyDomAggressive, c.domAggressive},
	}

	for _, s := range strategies {
		posts := c.finish(s.run(ctx, src))
		c.logger.Info("Strategy finished", "strategy", s.name, "count", len(posts))
		if len(posts) > 0 {
			return domain.PostsResult(s.name, posts)
		}
	}

	c.logger.Warn("All strategies came back empty, building diagnostic report")
	return domain.DiagnosticResult(c.diagnose(ctx, src))
}

// finish drops anything breaking the post invariants, then dedupes, so a valid
// later copy of a shortcode survives an invalid first one.
func (c *Cascade) finish(posts []domain.Post) []domain.Post {
	valid := make([]domain.Post, 0, len(posts))
	for _, post := range posts {
		if err := post.Validate(); err != nil {
			c.logger.Warn("Dropping invalid post", "error", err)
			continue
		}
		valid = append(valid, post)
	}
	return Dedupe(valid)
}

func (c *Cascade) networkStructured(_ context.Context, src Sources) []domain.Post {
	var posts []domain.Post
	for _, entry := range src.NetworkEntries() {
		posts = append(posts, c.fromEntry(entry, func(data any) []any {
			return EdgeNodes(c.searcher.FindEdges(data))
		})...)
	}
	return posts
}

func (c *Cascade) networkItems(_ context.Context, src Sources) []domain.Post {
	var posts []domain.Post
	for _, entry := range src.NetworkEntries() {
		posts = append(posts, c.fromEntry(entry, RootItems)...)
	}
	return posts
}

// fromEntry normalizes the nodes pick finds in one entry. A malformed entry yields nothing.
func (c *Cascade) fromEntry(entry domain.NetworkEntry, pick func(any) []any) (posts []domain.Post) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("Skipping malformed network entry", "url", entry.URL, "panic", fmt.Sprint(r))
			posts = nil
		}
	}()
	for _, node := range pick(entry.Data) {
		if post, ok := c.normalizer.Node(node); ok {
			posts = append(posts, post)
		}
	}
	return posts
}

func (c *Cascade) domBasic(ctx context.Context, src Sources) []domain.Post {
	anchors, err := src.Anchors(ctx, domain.AnchorModeBasic, 0)
	if err != nil {
		c.logger.Warn("Basic DOM extraction failed", "error", err)
		return nil
	}
	return c.skeletons(anchors)
}

func (c *Cascade) domAggressive(ctx context.Context, src Sources) []domain.Post {
	anchors, err := src.Anchors(ctx, domain.AnchorModeAggressive, c.opts.AggressiveLimit)
	if err != nil {
		c.logger.Warn("Aggressive DOM extraction failed", "error", err)
		return nil
	}
	skeletons := Dedupe(c.skeletons(anchors))
	if len(skeletons) > c.opts.AggressiveLimit {
		skeletons = skeletons[:c.opts.AggressiveLimit]
	}
	c.logger.Info("Hydrating DOM posts", "count", len(skeletons))
	return c.hydrator.Hydrate(ctx, skeletons)
}

func (c *Cascade) skeletons(anchors []domain.Anchor) []domain.Post {
	now := c.opts.Now()
	posts := make([]domain.Post, 0, len(anchors))
	for _, a := range anchors {
		if post, ok := c.normalizer.Skeleton(a, now); ok {
			posts = append(posts, post)
		}
	}
	return posts
}

func (c *Cascade) diagnose(ctx context.Context, src Sources) domain.DiagnosticReport {
	ctx, cancel := context.WithTimeout(ctx, c.opts.ReadTimeout)
	defer cancel()

	title, err := src.Title(ctx)
	if err != nil {
		c.logger.Warn("Could not read page title", "error", err)
	}
	markup, err := src.Markup(ctx)
	if err != nil {
		c.logger.Warn("Could not read page markup", "error", err)
	}
	return BuildDiagnostic(DiagnosticInput{
		PageTitle:        title,
		Markup:           markup,
		NetworkRequests:  len(src.NetworkEntries()),
		HasSessionCookie: c.opts.HasSessionCookie,
		SnippetLength:    c.opts.SnippetLength,
	})
}
