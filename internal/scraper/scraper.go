package scraper

import (
	"context"

	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=scraper.go -destination=mocks/scraper.go -package=mocks

// Scraper loads a profile page and extracts its posts.
// A page with nothing extractable is a diagnostic Result, not an error.
type Scraper interface {
	Scrape(ctx context.Context, username string) (domain.Result, error)
}
