package playwrightimpl

import (
	"context"

	"github.com/playwright-community/playwright-go"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/config"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/errors"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
	"go.uber.org/fx"
)

// Manager owns the playwright driver and the one shared Chromium process.
type Manager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	logger  logger.Logger
}

func (m *Manager) Browser() playwright.Browser {
	return m.browser
}

// NewManager launches Chromium and stops it with the application.
func NewManager(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (*Manager, error) {
	log = log.WithComponent("PlaywrightManager")
	log.Info("Starting playwright...")
	pw, err := playwright.Run()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeBrowserLaunch, "could not start playwright")
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Browser.Headless),
		Args: []string{
			"--no-sandbox",
			"--disable-setuid-sandbox",
			"--disable-dev-shm-usage", // Important in Docker/container
			"--disable-gpu",
			"--window-size=1280,800",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, errors.WrapWithCode(err, errors.CodeBrowserLaunch, "could not launch chromium")
	}

	manager := &Manager{
		pw:      pw,
		browser: browser,
		logger:  log,
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down playwright browser...")
			if err := manager.browser.Close(); err != nil {
				log.Error("Failed to close playwright browser", "error", err)
			}
			if err := manager.pw.Stop(); err != nil {
				log.Error("Failed to stop playwright", "error", err)
				return err
			}
			log.Info("Playwright stopped")
			return nil
		},
	})
	log.Info("Playwright started", "headless", cfg.Browser.Headless)
	return manager, nil
}
