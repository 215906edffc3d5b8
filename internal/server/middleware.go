package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/auth"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/ratelimit"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
)

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("Request handled",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"client_ip", c.ClientIP(),
			"took", time.Since(start).String(),
		)
	}
}

// authRequired checks the bearer token. A request without an Authorization
// header gets a WWW-Authenticate challenge.
func authRequired(v auth.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Header("WWW-Authenticate", `Bearer realm="Access", error="invalid_token"`)
			respondUnauthorized(c, "Access Token Missing")
			return
		}
		token := auth.ExtractBearer(header)
		if token == "" {
			respondUnauthorized(c, "Use Authorization: Bearer <token>")
			return
		}
		if err := v.Validate(c.Request.Context(), token); err != nil {
			respondUnauthorized(c, "Invalid authorization token")
			return
		}
		c.Next()
	}
}

func rateLimited(l ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			respondError(c, http.StatusTooManyRequests, "Too many requests, slow down")
			return
		}
		c.Next()
	}
}
