package config

import (
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"3000"`
		SentryDSN string `env:"APP_SENTRY_DSN"`
	}
	Auth struct {
		StaticToken     string        `env:"AUTH_STATIC_TOKEN"`
		SheetURL        string        `env:"MBC_SHEET_DATABASE"`
		TokenCacheTTL   time.Duration `env:"AUTH_TOKEN_CACHE_TTL" env-default:"60s"`
		RefreshInterval time.Duration `env:"AUTH_REFRESH_INTERVAL" env-default:"0s"`
	}
	RateLimit struct {
		Requests int           `env:"RATE_LIMIT_REQUESTS" env-default:"5"`
		Per      time.Duration `env:"RATE_LIMIT_PER" env-default:"1m"`
		Burst    int           `env:"RATE_LIMIT_BURST" env-default:"2"`
	}
	Browser struct {
		Driver       string        `env:"BROWSER_DRIVER" env-default:"playwright"`
		Headless     bool          `env:"BROWSER_HEADLESS" env-default:"true"`
		UserAgent    string        `env:"BROWSER_USER_AGENT" env-default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"`
		NavTimeout   time.Duration `env:"BROWSER_NAV_TIMEOUT" env-default:"60s"`
		SettleDelay  time.Duration `env:"BROWSER_SETTLE_DELAY" env-default:"3s"`
		ScrollDelay  time.Duration `env:"BROWSER_SCROLL_DELAY" env-default:"4s"`
		ScrollPixels int           `env:"BROWSER_SCROLL_PIXELS" env-default:"600"`
		ReadTimeout  time.Duration `env:"BROWSER_READ_TIMEOUT" env-default:"10s"`
		SessionID    string        `env:"INSTAGRAM_SESSION_ID"`
	}
	Extractor struct {
		Host            string        `env:"EXTRACTOR_HOST" env-default:"www.instagram.com"`
		Markers         []string      `env:"EXTRACTOR_MARKERS" env-separator:"," env-default:"edge_owner_to_timeline_media,user_timeline_graphql_connection,timeline"`
		MaxDepth        int           `env:"EXTRACTOR_MAX_DEPTH" env-default:"64"`
		AggressiveLimit int           `env:"EXTRACTOR_AGGRESSIVE_LIMIT" env-default:"12"`
		EnrichTimeout   time.Duration `env:"EXTRACTOR_ENRICH_TIMEOUT" env-default:"20s"`
		DelayMin        time.Duration `env:"EXTRACTOR_DELAY_MIN" env-default:"1s"`
		DelayMax        time.Duration `env:"EXTRACTOR_DELAY_MAX" env-default:"3s"`
		SnippetLength   int           `env:"EXTRACTOR_SNIPPET_LENGTH" env-default:"2000"`
	}
	Enrich struct {
		Retries uint64 `env:"ENRICH_RETRIES" env-default:"2"`
	}
}

const (
	DriverPlaywright = "playwright"
	DriverChromedp   = "chromedp"
)

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// Load reads a fresh Config from the environment without touching the shared instance.
func Load() (*Config, error) {
	c := &Config{}
	if err := cleanenv.ReadEnv(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
