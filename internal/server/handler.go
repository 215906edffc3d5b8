package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/scraper"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/errors"
)

type handler struct {
	scraper scraper.Scraper
}

type postsResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Data    []domain.Post `json:"data"`
}

type diagnosticResponse struct {
	Success bool                     `json:"success"`
	Error   *domain.DiagnosticReport `json:"error"`
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "status": "Server is running"})
}

func (h *handler) missingUsername(c *gin.Context) {
	respondError(c, http.StatusBadRequest, "Username is required")
}

func (h *handler) scrape(c *gin.Context) {
	result, err := h.scraper.Scrape(c.Request.Context(), c.Param("username"))
	if err != nil {
		status := errors.HTTPStatus(err)
		if status == http.StatusBadRequest {
			respondError(c, status, errors.GetMessage(err))
			return
		}
		respondError(c, status, err.Error())
		return
	}

	if result.IsDiagnostic() {
		c.JSON(http.StatusUnprocessableEntity, diagnosticResponse{Success: false, Error: result.Diagnostic})
		return
	}
	posts := result.Posts
	if posts == nil {
		posts = []domain.Post{}
	}
	c.JSON(http.StatusOK, postsResponse{Success: true, Count: len(posts), Data: posts})
}

// respondError writes the error envelope and stops the handler chain.
func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": msg})
}

func respondUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized", "message": msg})
}
