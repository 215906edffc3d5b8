package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/auth"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/ratelimit"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/scraper"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/config"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config    *config.Config
	Logger    logger.Logger
	Scraper   scraper.Scraper
	Validator auth.Validator
	Limiter   ratelimit.Limiter
}

type Server struct {
	engine *gin.Engine
	http   *http.Server
	logger logger.Logger
}

func New(opts Opts) *Server {
	if opts.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	log := opts.Logger.WithComponent("HTTPServer")

	h := &handler{scraper: opts.Scraper}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.GET("/", h.health)

	api := r.Group("/api")
	api.Use(authRequired(opts.Validator), rateLimited(opts.Limiter))
	api.GET("/scrape", h.missingUsername)
	api.GET("/scrape/:username", h.scrape)

	return &Server{
		engine: r,
		http: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Config.App.Port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: log,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Register binds the listener on start and drains in-flight scrapes on stop.
func Register(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", s.http.Addr)
			if err != nil {
				return err
			}
			s.logger.Info("Server listening", "addr", s.http.Addr)
			go func() {
				if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
					s.logger.Error("Server stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.logger.Info("Shutting down server...")
			return s.http.Shutdown(ctx)
		},
	})
}
