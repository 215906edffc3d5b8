package browser

import (
	"strings"
	"sync"

	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/extractor"
)

// ShouldCapture reports whether a response looks like a timeline API payload:
// an xhr/fetch call to a graphql or /api/v1/ endpoint answering with JSON.
func ShouldCapture(url, resourceType, contentType string) bool {
	switch strings.ToLower(resourceType) {
	case "xhr", "fetch":
	default:
		return false
	}
	if !strings.Contains(url, "graphql") && !strings.Contains(url, "/api/v1/") {
		return false
	}
	return strings.Contains(strings.ToLower(contentType), "application/json")
}

// Capture buffers decoded response bodies for one page session.
// Response callbacks run on driver goroutines, so every method locks.
type Capture struct {
	mu      sync.Mutex
	entries []domain.NetworkEntry
	dropped int
}

func NewCapture() *Capture {
	return &Capture{}
}

// Add decodes body and keeps it. Bodies that are not JSON are counted and dropped.
func (c *Capture) Add(url string, body []byte) bool {
	data, err := extractor.DecodeJSONBytes(body)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil || data == nil {
		c.dropped++
		return false
	}
	c.entries = append(c.entries, domain.NetworkEntry{URL: url, Data: data})
	return true
}

// Entries returns a snapshot in arrival order.
func (c *Capture) Entries() []domain.NetworkEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.NetworkEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Capture) Dropped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}

// CookieDomain turns a host such as www.instagram.com into the cookie domain
// .instagram.com so the session cookie reaches every subdomain.
func CookieDomain(host string) string {
	host = strings.TrimPrefix(strings.TrimSpace(host), "www.")
	if host == "" {
		return ""
	}
	return "." + strings.TrimPrefix(host, ".")
}
