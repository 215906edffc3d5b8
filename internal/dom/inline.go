package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/extractor"
)

// InlineURL marks network entries that came from the page markup rather than a response.
const InlineURL = "inline:script"

// InlineEntries turns server-rendered JSON blobs into network entries so the
// structured strategies can see them. Blobs that fail to parse are skipped.
func InlineEntries(markup string) []domain.NetworkEntry {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	var entries []domain.NetworkEntry
	doc.Find(`script[type="application/json"]`).Each(func(_ int, s *goquery.Selection) {
		body := strings.TrimSpace(s.Text())
		if body == "" || (body[0] != '{' && body[0] != '[') {
			return
		}
		data, err := extractor.DecodeJSONBytes([]byte(body))
		if err != nil {
			return
		}
		entries = append(entries, domain.NetworkEntry{URL: InlineURL, Data: data})
	})
	return entries
}
