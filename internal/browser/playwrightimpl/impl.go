package playwrightimpl

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/browser"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/config"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/errors"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/retry"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config  *config.Config
	Logger  logger.Logger
	Manager *Manager
}

type Impl struct {
	config  *config.Config
	logger  logger.Logger
	manager *Manager
}

var _ browser.Driver = (*Impl)(nil)

func New(opts Opts) *Impl {
	return &Impl{
		config:  opts.Config,
		logger:  opts.Logger.WithComponent("PlaywrightDriver"),
		manager: opts.Manager,
	}
}

// Open creates an isolated browser context, starts capturing API responses and
// navigates to url. The capture is live from before the first request.
func (d *Impl) Open(ctx context.Context, url string) (browser.Session, error) {
	if d.manager == nil || d.manager.Browser() == nil {
		return nil, errors.WrapWithCode(browser.ErrBrowserUnavailable, errors.CodeBrowserLaunch, "playwright")
	}

	brContext, err := d.manager.Browser().NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(d.config.Browser.UserAgent),
		Viewport:  &playwright.Size{Width: 1280, Height: 800},
		Locale:    playwright.String("en-US"),
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeBrowserLaunch, "could not create browser context")
	}

	s := &session{
		context: brContext,
		capture: browser.NewCapture(),
		logger:  d.logger,
	}

	if err := d.addSessionCookie(brContext); err != nil {
		s.Close()
		return nil, errors.WrapWithCode(err, errors.CodeBrowserLaunch, "could not set session cookie")
	}
	if err := setupRequestInterception(brContext); err != nil {
		s.Close()
		return nil, errors.WrapWithCode(err, errors.CodeBrowserLaunch, "failed to set up request interception")
	}

	page, err := brContext.NewPage()
	if err != nil {
		s.Close()
		return nil, errors.WrapWithCode(err, errors.CodeBrowserLaunch, "could not create new page")
	}
	s.page = page
	if t := d.config.Browser.ReadTimeout; t > 0 {
		page.SetDefaultTimeout(float64(t.Milliseconds()))
	}
	page.OnResponse(s.onResponse)

	gotoOperation := func() error {
		if ctx.Err() != nil {
			return retry.Permanent(ctx.Err())
		}
		_, err := page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(float64(d.config.Browser.NavTimeout.Milliseconds())),
		})
		return err
	}
	if err := retry.Do(ctx, d.logger, "PageGoto", gotoOperation, retry.DefaultConfig()); err != nil {
		s.Close()
		return nil, errors.WrapWithCode(err, errors.CodeNavigation, "could not open "+url)
	}

	return s, nil
}

func (d *Impl) addSessionCookie(brContext playwright.BrowserContext) error {
	if d.config.Browser.SessionID == "" {
		return nil
	}
	return brContext.AddCookies([]playwright.OptionalCookie{{
		Name:     "sessionid",
		Value:    d.config.Browser.SessionID,
		Domain:   playwright.String(browser.CookieDomain(d.config.Extractor.Host)),
		Path:     playwright.String("/"),
		Secure:   playwright.Bool(true),
		HttpOnly: playwright.Bool(true),
	}})
}

// setupRequestInterception blocks heavy resources. Image elements keep their
// src attributes, so DOM extraction is unaffected.
func setupRequestInterception(ctx playwright.BrowserContext) error {
	return ctx.Route("**/*", func(route playwright.Route) {
		switch route.Request().ResourceType() {
		case "image", "stylesheet", "font", "media":
			_ = route.Abort()
		default:
			_ = route.Continue()
		}
	})
}

type session struct {
	context playwright.BrowserContext
	page    playwright.Page
	capture *browser.Capture
	logger  logger.Logger
}

var _ browser.Session = (*session)(nil)

func (s *session) onResponse(resp playwright.Response) {
	req := resp.Request()
	if !browser.ShouldCapture(resp.URL(), req.ResourceType(), resp.Headers()["content-type"]) {
		return
	}
	body, err := resp.Body()
	if err != nil {
		s.logger.Debug("Could not read response body", "url", resp.URL(), "error", err)
		return
	}
	if s.capture.Add(resp.URL(), body) {
		s.logger.Debug("Captured API response", "url", resp.URL())
	}
}

func (s *session) NetworkEntries() []domain.NetworkEntry {
	return s.capture.Entries()
}

func (s *session) Scroll(ctx context.Context, pixels int) error {
	_, err := await(ctx, func() (any, error) {
		return s.page.Evaluate(`(px) => window.scrollBy(0, px)`, pixels)
	})
	return err
}

func (s *session) Title(ctx context.Context) (string, error) {
	return await(ctx, s.page.Title)
}

func (s *session) Markup(ctx context.Context) (string, error) {
	return await(ctx, s.page.Content)
}

func (s *session) Close() error {
	start := time.Now()
	err := s.context.Close()
	debug.FreeOSMemory()
	s.logger.Debug("Browser context closed", "took", time.Since(start).String(), "dropped_bodies", s.capture.Dropped())
	return err
}
