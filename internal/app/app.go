package app

import (
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/auth"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/auth/authimpl"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/browser"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/browser/chromedpimpl"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/browser/playwrightimpl"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/enrich"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/enrich/enrichimpl"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/ratelimit"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/scraper"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/scraper/scraperimpl"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/server"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/config"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
	),
	fx.Provide(
		fx.Annotate(
			enrichimpl.New,
			fx.As(new(enrich.Client)),
		),
		authimpl.New,
		func(v *authimpl.Impl) auth.Validator { return v },
		fx.Annotate(
			scraperimpl.New,
			fx.As(new(scraper.Scraper)),
		),
		newDriver,
		newLimiter,
		server.New,
	),
	fx.Invoke(
		authimpl.ScheduleRefresh,
		server.Register,
	),
)

// newDriver picks the browser backend named by BROWSER_DRIVER.
func newDriver(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (browser.Driver, error) {
	switch cfg.Browser.Driver {
	case config.DriverChromedp:
		log.Info("Using chromedp browser driver")
		return chromedpimpl.New(chromedpimpl.Opts{Lifecycle: lc, Config: cfg, Logger: log}), nil
	default:
		log.Info("Using playwright browser driver")
		manager, err := playwrightimpl.NewManager(lc, cfg, log)
		if err != nil {
			return nil, err
		}
		return playwrightimpl.New(playwrightimpl.Opts{Config: cfg, Logger: log, Manager: manager}), nil
	}
}

func newLimiter(cfg *config.Config) ratelimit.Limiter {
	return ratelimit.NewInMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Per, cfg.RateLimit.Burst)
}
