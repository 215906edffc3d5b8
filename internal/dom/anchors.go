package dom

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/extractor"
)

const (
	// Grid tiles on the profile page: a post link wrapping its thumbnail.
	basicSelector = `article a[href*="/p/"], main a[href*="/p/"], article a[href*="/reel/"], main a[href*="/reel/"]`
	// Anything that looks like a post, reel or igtv permalink.
	aggressiveSelector = `a[href*="/p/"], a[href*="/reel/"], a[href*="/reels/"], a[href*="/tv/"]`
)

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// ExtractAnchors returns link/image/caption triples found in the page markup, in
// document order. limit <= 0 means no cap. Basic mode only takes anchors that
// wrap an image; aggressive mode takes any post-shaped link. Links are deduped by
// shortcode, so /p/X/ and /p/X/?img_index=1 use one slot.
func ExtractAnchors(markup string, mode domain.AnchorMode, limit int) ([]domain.Anchor, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	selector := basicSelector
	if mode == domain.AnchorModeAggressive {
		selector = aggressiveSelector
	}

	anchors := []domain.Anchor{}
	seen := make(map[string]struct{})
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		shortcode, ok := extractor.ShortcodeFromLink(href)
		if !ok {
			return true
		}
		img := s.Find("img").First()
		if mode == domain.AnchorModeBasic && img.Length() == 0 {
			return true
		}
		if _, dup := seen[shortcode]; dup {
			return true
		}
		seen[shortcode] = struct{}{}

		anchors = append(anchors, domain.Anchor{
			Link:     href,
			ImageURL: imageURL(img),
			Caption:  caption(s, img),
		})
		return limit <= 0 || len(anchors) < limit
	})

	return anchors, nil
}

// imageURL prefers the largest srcset candidate over src.
func imageURL(img *goquery.Selection) string {
	if img.Length() == 0 {
		return ""
	}
	if srcset, ok := img.Attr("srcset"); ok {
		if best := largestCandidate(srcset); best != "" {
			return best
		}
	}
	src, _ := img.Attr("src")
	return strings.TrimSpace(src)
}

// largestCandidate picks the last entry of a srcset, which Instagram orders by width.
func largestCandidate(srcset string) string {
	parts := strings.Split(srcset, ",")
	for i := len(parts) - 1; i >= 0; i-- {
		fields := strings.Fields(parts[i])
		if len(fields) > 0 {
			return fields[0]
		}
	}
	return ""
}

func caption(a, img *goquery.Selection) string {
	if alt, ok := img.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
		return clean(alt)
	}
	if label, ok := a.Attr("aria-label"); ok {
		return clean(label)
	}
	return clean(a.Text())
}

func clean(s string) string {
	return innerWhitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}
