package extractor

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
)

var shortcodeInPath = regexp.MustCompile(`/(?:p|reel|reels|tv)/([A-Za-z0-9_-]+)`)

// ShortcodeFromLink pulls the shortcode out of a /p/, /reel/ or /tv/ link.
func ShortcodeFromLink(link string) (string, bool) {
	m := shortcodeInPath.FindStringSubmatch(link)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// absoluteLink makes a scraped href absolute and drops its query and fragment.
func (n Normalizer) absoluteLink(href string) string {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	if u.Host == "" {
		u.Scheme = "https"
		u.Host = n.host()
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// Skeleton wraps a DOM anchor as a minimal Image post. The timestamp is the
// extraction time, not a scraped value.
func (n Normalizer) Skeleton(a domain.Anchor, now time.Time) (domain.Post, bool) {
	shortcode, ok := ShortcodeFromLink(a.Link)
	if !ok {
		return domain.Post{}, false
	}
	ts := now.Unix()
	post := domain.Post{
		Shortcode: shortcode,
		Link:      n.absoluteLink(a.Link),
		Type:      domain.MediaTypeImage,
		Caption:   strings.TrimSpace(a.Caption),
		Timestamp: &ts,
		Images:    []string{},
	}
	if a.ImageURL != "" {
		img := a.ImageURL
		post.DisplayURL = &img
		post.Images = append(post.Images, img)
	}
	return post, true
}

// Merge folds an enrichment result into a skeleton and returns the new post.
// A carousel indicator wins over a video url; the cover becomes the only known child.
func (n Normalizer) Merge(post domain.Post, e domain.Enrichment) domain.Post {
	if e.Image != "" {
		img := e.Image
		post.DisplayURL = &img
	}

	hinted := domain.ParseMediaType(e.Type)
	switch {
	case e.IsSidecar || hinted == domain.MediaTypeSidecar:
		cover := domain.Child{Type: domain.MediaTypeImage}
		if post.DisplayURL != nil {
			cover.DisplayURL = *post.DisplayURL
		}
		if e.VideoURL != "" {
			v := e.VideoURL
			cover.Type = domain.MediaTypeVideo
			cover.IsVideo = true
			cover.VideoURL = &v
		}
		if cover.DisplayURL == "" && cover.VideoURL == nil {
			break
		}
		post.Type = domain.MediaTypeSidecar
		post.IsSidecar = true
		post.IsVideo = false
		post.VideoURL = nil
		post.VideoViewCount = nil
		post.Children = []domain.Child{cover}
	case e.VideoURL != "":
		v := e.VideoURL
		var views int64
		post.Type = domain.MediaTypeVideo
		post.IsVideo = true
		post.IsSidecar = false
		post.VideoURL = &v
		post.VideoViewCount = &views
		post.Children = nil
	}

	post.Images = []string{}
	if post.IsSidecar {
		post.Images = childImages(post.Children)
	} else if post.DisplayURL != nil {
		post.Images = append(post.Images, *post.DisplayURL)
	}
	return post
}
