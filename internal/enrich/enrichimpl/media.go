package enrichimpl

import (
	"fmt"
	"sort"

	"github.com/PuerkitoBio/goquery"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/dom"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/extractor"
)

const maxMediaDepth = 64

var sidecarTypenames = map[string]bool{
	"GraphSidecar":    true,
	"XDTGraphSidecar": true,
}

// pageShortcode names the post a page is about: the requested link first, then
// the page's own og:url or canonical link.
func pageShortcode(doc *goquery.Document, link string) string {
	candidates := []string{
		link,
		firstMeta(doc, "og:url"),
		doc.Find(`link[rel="canonical"]`).First().AttrOr("href", ""),
	}
	for _, c := range candidates {
		if code, ok := extractor.ShortcodeFromLink(c); ok {
			return code
		}
	}
	return ""
}

// primaryIsSidecar looks only at the embedded media object whose shortcode is the
// page's own. Related posts embedded in the same page are ignored.
func primaryIsSidecar(markup, shortcode string) bool {
	if shortcode == "" {
		return false
	}
	for _, entry := range dom.InlineEntries(markup) {
		if media, ok := findMedia(entry.Data, shortcode, 0); ok {
			return isCarousel(media)
		}
	}
	return false
}

func findMedia(v any, shortcode string, depth int) (map[string]any, bool) {
	if depth > maxMediaDepth {
		return nil, false
	}
	switch node := v.(type) {
	case map[string]any:
		if scalar(node["shortcode"]) == shortcode || scalar(node["code"]) == shortcode {
			return node, true
		}
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if media, ok := findMedia(node[k], shortcode, depth+1); ok {
				return media, true
			}
		}
	case []any:
		for _, item := range node {
			if media, ok := findMedia(item, shortcode, depth+1); ok {
				return media, true
			}
		}
	}
	return nil, false
}

func isCarousel(media map[string]any) bool {
	if sidecarTypenames[scalar(media["__typename"])] {
		return true
	}
	if scalar(media["product_type"]) == "carousel_container" || scalar(media["media_type"]) == "8" {
		return true
	}
	if items, ok := media["carousel_media"].([]any); ok && len(items) > 0 {
		return true
	}
	_, ok := media["edge_sidecar_to_children"].(map[string]any)
	return ok
}

func scalar(v any) string {
	if v == nil {
		return ""
	}
	switch v.(type) {
	case map[string]any, []any:
		return ""
	}
	return fmt.Sprint(v)
}
