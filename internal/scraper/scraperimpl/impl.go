package scraperimpl

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/browser"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/enrich"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/extractor"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/scraper"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/config"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/errors"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
	"go.uber.org/fx"
)

var validUsername = regexp.MustCompile(`^[A-Za-z0-9._]{1,30}$`)

type Opts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Driver   browser.Driver
	Enricher enrich.Client
}

type Impl struct {
	config  *config.Config
	logger  logger.Logger
	driver  browser.Driver
	cascade *extractor.Cascade
}

var _ scraper.Scraper = (*Impl)(nil)

func New(opts Opts) *Impl {
	cfg := opts.Config
	cascade := extractor.NewCascade(extractor.Options{
		Host:             cfg.Extractor.Host,
		Markers:          cfg.Extractor.Markers,
		MaxDepth:         cfg.Extractor.MaxDepth,
		AggressiveLimit:  cfg.Extractor.AggressiveLimit,
		EnrichTimeout:    cfg.Extractor.EnrichTimeout,
		SnippetLength:    cfg.Extractor.SnippetLength,
		ReadTimeout:      cfg.Browser.ReadTimeout,
		HasSessionCookie: cfg.Browser.SessionID != "",
		Delay:            extractor.RandomDelay{Min: cfg.Extractor.DelayMin, Max: cfg.Extractor.DelayMax},
	}, opts.Enricher, opts.Logger)

	return &Impl{
		config:  cfg,
		logger:  opts.Logger.WithComponent("Scraper"),
		driver:  opts.Driver,
		cascade: cascade,
	}
}

// NormalizeUsername trims whitespace and a leading @, then checks the handle shape.
func NormalizeUsername(raw string) (string, error) {
	name := strings.TrimPrefix(strings.TrimSpace(raw), "@")
	if !validUsername.MatchString(name) {
		return "", errors.Wrap(errors.ErrInvalidInput, fmt.Sprintf("invalid username %q", raw))
	}
	return name, nil
}

func (s *Impl) profileURL(username string) string {
	return fmt.Sprintf("https://%s/%s/", s.config.Extractor.Host, username)
}

// Scrape opens the profile, gives it time to load its timeline, then runs the
// extraction cascade over whatever the page produced.
func (s *Impl) Scrape(ctx context.Context, username string) (domain.Result, error) {
	username, err := NormalizeUsername(username)
	if err != nil {
		return domain.Result{}, err
	}
	log := s.logger.With("request_id", uuid.NewString(), "username", username)
	start := time.Now()

	url := s.profileURL(username)
	log.Info("Opening profile", "url", url)
	session, err := s.driver.Open(ctx, url)
	if err != nil {
		log.Error("Failed to open profile", "error", err)
		return domain.Result{}, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Warn("Failed to close browser session", "error", err)
		}
	}()

	s.settle(ctx, session, log)

	src, err := newPageSources(ctx, session, s.readTimeout(), log)
	if err != nil {
		return domain.Result{}, err
	}
	result := s.cascade.Run(ctx, src)

	if result.IsDiagnostic() {
		log.Warn("No posts extracted", "captured", result.Diagnostic.Debug.NetworkRequests, "took", time.Since(start).String())
	} else {
		log.Info("Scrape finished", "strategy", result.Strategy, "count", len(result.Posts), "took", time.Since(start).String())
	}
	return result, nil
}

// settle waits, scrolls once to trigger the next timeline page, and waits again.
func (s *Impl) settle(ctx context.Context, session browser.Session, log logger.Logger) {
	if err := extractor.Wait(ctx, s.config.Browser.SettleDelay); err != nil {
		log.Warn("Settle delay interrupted", "error", err)
		return
	}
	scrollCtx, cancel := context.WithTimeout(ctx, s.readTimeout())
	err := session.Scroll(scrollCtx, s.config.Browser.ScrollPixels)
	cancel()
	if err != nil {
		log.Warn("Scroll failed", "error", err)
	}
	if err := extractor.Wait(ctx, s.config.Browser.ScrollDelay); err != nil {
		log.Warn("Scroll delay interrupted", "error", err)
	}
}

func (s *Impl) readTimeout() time.Duration {
	if t := s.config.Browser.ReadTimeout; t > 0 {
		return t
	}
	return extractor.DefaultReadTimeout
}
