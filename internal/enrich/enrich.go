package enrich

import (
	"context"

	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=enrich.go -destination=mocks/client.go -package=mocks

// Client visits one post page and reads what the profile grid does not show.
type Client interface {
	Enrich(ctx context.Context, link string) (domain.Enrichment, error)
}
