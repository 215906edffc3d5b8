package chromedpimpl

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/browser"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/config"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/errors"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    logger.Logger
}

// Impl drives a local Chrome over the DevTools protocol. Each session is a tab
// in one shared browser.
type Impl struct {
	config        *config.Config
	logger        logger.Logger
	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
}

var _ browser.Driver = (*Impl)(nil)

func New(opts Opts) *Impl {
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocatorOptions(opts.Config)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	d := &Impl{
		config:        opts.Config,
		logger:        opts.Logger.WithComponent("ChromedpDriver"),
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
	}

	opts.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			// The first Run starts the browser process.
			if err := chromedp.Run(d.browserCtx); err != nil {
				return errors.WrapWithCode(err, errors.CodeBrowserLaunch, "could not start chrome")
			}
			d.logger.Info("Chrome started", "headless", opts.Config.Browser.Headless)
			return nil
		},
		OnStop: func(context.Context) error {
			d.logger.Info("Shutting down chrome...")
			d.browserCancel()
			d.allocCancel()
			return nil
		},
	})
	return d
}

func allocatorOptions(cfg *config.Config) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	return append(opts,
		chromedp.Flag("headless", cfg.Browser.Headless),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(cfg.Browser.UserAgent),
		chromedp.WindowSize(1280, 800),
	)
}

func (d *Impl) Open(ctx context.Context, url string) (browser.Session, error) {
	if d.browserCtx.Err() != nil {
		return nil, errors.WrapWithCode(browser.ErrBrowserUnavailable, errors.CodeBrowserLaunch, "chromedp")
	}

	tabCtx, tabCancel := chromedp.NewContext(d.browserCtx)
	s := &session{
		tabCtx:    tabCtx,
		tabCancel: tabCancel,
		capture:   browser.NewCapture(),
		logger:    d.logger,
	}
	chromedp.ListenTarget(tabCtx, s.onEvent)

	setup := []chromedp.Action{
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers(map[string]interface{}{
			"Accept-Language": "en-US,en;q=0.9",
		})),
	}
	if id := d.config.Browser.SessionID; id != "" {
		setup = append(setup, network.SetCookie("sessionid", id).
			WithDomain(browser.CookieDomain(d.config.Extractor.Host)).
			WithPath("/").
			WithSecure(true).
			WithHTTPOnly(true))
	}

	runCtx, cancel := s.scoped(ctx)
	defer cancel()
	if err := chromedp.Run(runCtx, setup...); err != nil {
		s.Close()
		return nil, errors.WrapWithCode(err, errors.CodeBrowserLaunch, "could not prepare tab")
	}

	navCtx, navCancel := context.WithTimeout(runCtx, d.config.Browser.NavTimeout)
	defer navCancel()
	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		s.Close()
		return nil, errors.WrapWithCode(err, errors.CodeNavigation, "could not open "+url)
	}
	return s, nil
}

type session struct {
	tabCtx    context.Context
	tabCancel context.CancelFunc
	capture   *browser.Capture
	logger    logger.Logger

	// request id -> url of responses that passed the capture filter
	pending  sync.Map
	inflight sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

var _ browser.Session = (*session)(nil)

func (s *session) onEvent(ev interface{}) {
	switch e := ev.(type) {
	case *network.EventResponseReceived:
		if e.Response == nil {
			return
		}
		if browser.ShouldCapture(e.Response.URL, string(e.Type), e.Response.MimeType) {
			s.pending.Store(e.RequestID, e.Response.URL)
		}
	case *network.EventLoadingFinished:
		if v, ok := s.pending.LoadAndDelete(e.RequestID); ok && s.beginFetch() {
			// Listener callbacks must not block on CDP calls.
			go s.fetchBody(e.RequestID, v.(string))
		}
	}
}

// beginFetch registers a body read unless Close has started waiting.
func (s *session) beginFetch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.inflight.Add(1)
	return true
}

func (s *session) fetchBody(id network.RequestID, url string) {
	defer s.inflight.Done()
	c := chromedp.FromContext(s.tabCtx)
	if c == nil || c.Target == nil {
		return
	}
	body, err := network.GetResponseBody(id).Do(cdp.WithExecutor(s.tabCtx, c.Target))
	if err != nil {
		s.logger.Debug("Could not read response body", "url", url, "error", err)
		return
	}
	if s.capture.Add(url, body) {
		s.logger.Debug("Captured API response", "url", url)
	}
}

// scoped derives a tab context that also ends when the caller's ctx ends.
func (s *session) scoped(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(s.tabCtx)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

func (s *session) NetworkEntries() []domain.NetworkEntry {
	return s.capture.Entries()
}

func (s *session) Scroll(ctx context.Context, pixels int) error {
	runCtx, cancel := s.scoped(ctx)
	defer cancel()
	return chromedp.Run(runCtx, chromedp.Evaluate(fmt.Sprintf("window.scrollBy(0, %d)", pixels), nil))
}

func (s *session) Title(ctx context.Context) (string, error) {
	runCtx, cancel := s.scoped(ctx)
	defer cancel()
	var title string
	err := chromedp.Run(runCtx, chromedp.Title(&title))
	return title, err
}

func (s *session) Markup(ctx context.Context) (string, error) {
	runCtx, cancel := s.scoped(ctx)
	defer cancel()
	var html string
	err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

// Close stops new body reads, waits for the ones in flight, then closes the tab.
func (s *session) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.inflight.Wait()
	s.tabCancel()
	s.logger.Debug("Tab closed", "dropped_bodies", s.capture.Dropped())
	return nil
}
