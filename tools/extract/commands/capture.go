package commands

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/dom"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/extractor"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/errors"
)

// LoadNetworkLog reads a saved network log. Elements may be {url, data} entries
// or bare response bodies, which get source as their url.
func LoadNetworkLog(r io.Reader, source string) ([]domain.NetworkEntry, error) {
	root, err := extractor.DecodeJSON(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode network log")
	}
	items, ok := root.([]any)
	if !ok {
		items = []any{root}
	}

	entries := make([]domain.NetworkEntry, 0, len(items))
	for _, item := range items {
		if entry, ok := asEntry(item); ok {
			entries = append(entries, entry)
			continue
		}
		entries = append(entries, domain.NetworkEntry{URL: source, Data: item})
	}
	return entries, nil
}

func asEntry(item any) (domain.NetworkEntry, bool) {
	obj, ok := item.(map[string]any)
	if !ok || len(obj) != 2 {
		return domain.NetworkEntry{}, false
	}
	url, ok := obj["url"].(string)
	if !ok {
		return domain.NetworkEntry{}, false
	}
	data, ok := obj["data"]
	if !ok {
		return domain.NetworkEntry{}, false
	}
	return domain.NetworkEntry{URL: url, Data: data}, true
}

// fileSources serves the cascade from a saved log and page snapshot.
type fileSources struct {
	entries []domain.NetworkEntry
	markup  string
}

var _ extractor.Sources = (*fileSources)(nil)

func newFileSources(entries []domain.NetworkEntry, markup string) *fileSources {
	return &fileSources{
		entries: append(entries, dom.InlineEntries(markup)...),
		markup:  markup,
	}
}

func loadFileSources(networkPath, htmlPath string) (*fileSources, error) {
	var entries []domain.NetworkEntry
	if networkPath != "" {
		f, err := os.Open(networkPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if entries, err = LoadNetworkLog(f, "file:"+networkPath); err != nil {
			return nil, err
		}
	}

	var markup string
	if htmlPath != "" {
		b, err := os.ReadFile(htmlPath)
		if err != nil {
			return nil, err
		}
		markup = string(b)
	}
	return newFileSources(entries, markup), nil
}

func (f *fileSources) NetworkEntries() []domain.NetworkEntry {
	return f.entries
}

func (f *fileSources) Anchors(_ context.Context, mode domain.AnchorMode, limit int) ([]domain.Anchor, error) {
	return dom.ExtractAnchors(f.markup, mode, limit)
}

func (f *fileSources) Title(context.Context) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(f.markup))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}

func (f *fileSources) Markup(context.Context) (string, error) {
	return f.markup, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
