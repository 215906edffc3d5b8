package authimpl

import (
	"context"
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/config"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
	"go.uber.org/fx"
)

// Refresh reloads the sheet token into the cache. The previous token keeps
// serving until the new one arrives.
func (v *Impl) Refresh(ctx context.Context) error {
	if v.static != "" || v.sheetURL == "" {
		return nil
	}
	token, err := v.fetchSheet(ctx)
	if err != nil {
		return err
	}
	v.cache.Add(cacheKey, token)
	return nil
}

// ScheduleRefresh keeps the sheet token warm on AUTH_REFRESH_INTERVAL. A zero
// interval, a static token or a missing sheet disables it.
func ScheduleRefresh(lc fx.Lifecycle, cfg *config.Config, v *Impl, log logger.Logger) error {
	interval := cfg.Auth.RefreshInterval
	if interval <= 0 || v.static != "" || v.sheetURL == "" {
		return nil
	}
	log = log.WithComponent("TokenRefresher")

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			taskCtx, taskCancel := context.WithTimeout(ctx, interval)
			defer taskCancel()
			if err := v.Refresh(taskCtx); err != nil {
				log.Warn("Token refresh failed, cached token kept", "error", err)
				return
			}
			log.Debug("Token refreshed")
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to schedule token refresh: %w", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			scheduler.Start()
			log.Info("Token refresh scheduled", "interval", interval.String())
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return scheduler.Shutdown()
		},
	})
	return nil
}
