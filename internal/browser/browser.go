package browser

import (
	"context"
	"errors"

	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=browser.go -destination=mocks/browser.go -package=mocks

var ErrBrowserUnavailable = errors.New("browser is not running")

// Driver opens pages in a shared browser process.
type Driver interface {
	Open(ctx context.Context, url string) (Session, error)
}

// Session is one open page plus everything captured from its network traffic.
// A session is owned by a single request and must be closed by it.
type Session interface {
	NetworkEntries() []domain.NetworkEntry
	Scroll(ctx context.Context, pixels int) error
	Title(ctx context.Context) (string, error)
	Markup(ctx context.Context) (string, error)
	Close() error
}
