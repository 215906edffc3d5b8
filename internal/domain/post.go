package domain

import (
	"encoding/json"
	"fmt"
)

type MediaType string

const (
	MediaTypeImage   MediaType = "Image"
	MediaTypeVideo   MediaType = "Video"
	MediaTypeSidecar MediaType = "Sidecar"
	MediaTypeUnknown MediaType = "Unknown"
)

// ParseMediaType maps loose type names ("video", "GraphSidecar", "carousel") to a MediaType.
func ParseMediaType(s string) MediaType {
	switch normalizeTypeName(s) {
	case "image", "photo", "graphimage", "instappphoto":
		return MediaTypeImage
	case "video", "videoother", "graphvideo", "reel", "clips":
		return MediaTypeVideo
	case "sidecar", "graphsidecar", "carousel", "carouselcontainer", "album":
		return MediaTypeSidecar
	default:
		return MediaTypeUnknown
	}
}

func normalizeTypeName(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		}
	}
	return string(out)
}

// Post is one canonical timeline item, whatever source it was extracted from.
type Post struct {
	ID             string    `json:"id,omitempty"`
	Shortcode      string    `json:"shortcode"`
	Link           string    `json:"link"`
	Type           MediaType `json:"type"`
	Caption        string    `json:"caption"`
	CommentsCount  int64     `json:"commentsCount"`
	LikesCount     int64     `json:"likesCount"`
	Timestamp      *int64    `json:"timestamp"`
	OwnerID        *string   `json:"ownerId"`
	IsVideo        bool      `json:"isVideo"`
	IsSidecar      bool      `json:"isSidecar"`
	DisplayURL     *string   `json:"displayUrl"`
	VideoURL       *string   `json:"videoUrl,omitempty"`
	VideoViewCount *int64    `json:"videoViewCount,omitempty"`
	Children       []Child   `json:"children,omitempty"`
	Images         []string  `json:"images"`
}

type Child struct {
	ID                   string    `json:"id"`
	Type                 MediaType `json:"type"`
	IsVideo              bool      `json:"isVideo"`
	DisplayURL           string    `json:"displayUrl"`
	VideoURL             *string   `json:"videoUrl"`
	AccessibilityCaption *string   `json:"accessibilityCaption"`
}

// Validate checks the type invariants: Sidecar needs children, Video needs a video url.
func (p Post) Validate() error {
	if p.Shortcode == "" {
		return fmt.Errorf("post has no shortcode")
	}
	switch p.Type {
	case MediaTypeSidecar:
		if len(p.Children) == 0 {
			return fmt.Errorf("sidecar %s has no children", p.Shortcode)
		}
		if !p.IsSidecar || p.IsVideo {
			return fmt.Errorf("sidecar %s has inconsistent flags", p.Shortcode)
		}
	case MediaTypeVideo:
		if p.VideoURL == nil || *p.VideoURL == "" {
			return fmt.Errorf("video %s has no video url", p.Shortcode)
		}
		if !p.IsVideo || p.IsSidecar {
			return fmt.Errorf("video %s has inconsistent flags", p.Shortcode)
		}
	case MediaTypeImage:
		if p.IsVideo || p.IsSidecar {
			return fmt.Errorf("image %s has inconsistent flags", p.Shortcode)
		}
	default:
		return fmt.Errorf("post %s has unresolved type %q", p.Shortcode, p.Type)
	}
	return nil
}

// MarshalJSON keeps images an array even when nothing was collected.
func (p Post) MarshalJSON() ([]byte, error) {
	type alias Post
	a := alias(p)
	if a.Images == nil {
		a.Images = []string{}
	}
	return json.Marshal(a)
}
