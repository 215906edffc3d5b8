package extractor

import (
	"fmt"

	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
)

const DefaultHost = "www.instagram.com"

const (
	mediaTypeVideo    = 2
	mediaTypeCarousel = 8
)

// Field resolution table. Payloads come from the desktop GraphQL API, the mobile
// REST API and server-rendered page data, so every field has more than one home.
var (
	fieldID        = chain{p("id"), p("pk")}
	fieldShortcode = chain{p("shortcode"), p("code")}
	fieldCaption   = chain{
		p("caption", "text"),
		p("edge_media_to_caption", "edges", "0", "node", "text"),
		p("caption"),
	}
	fieldComments = chain{
		p("comment_count"),
		p("edge_media_to_comment", "count"),
		p("edge_media_preview_comment", "count"),
	}
	fieldLikes = chain{
		p("like_count"),
		p("edge_media_preview_like", "count"),
		p("edge_liked_by", "count"),
	}
	fieldTimestamp = chain{p("taken_at"), p("taken_at_timestamp")}
	fieldOwner     = chain{p("user", "pk"), p("user", "id"), p("owner", "id")}
	fieldDisplay   = chain{
		p("image_versions2", "candidates", "0", "url"),
		p("display_url"),
		p("thumbnail_src"),
	}
	fieldVideoURL   = chain{p("video_versions", "0", "url"), p("video_url")}
	fieldViewCount  = chain{p("video_view_count"), p("view_count"), p("play_count")}
	fieldMediaType  = chain{p("media_type")}
	fieldIsVideo    = chain{p("is_video")}
	fieldAltCaption = chain{p("accessibility_caption")}

	carouselMobile = chain{p("carousel_media")}
	carouselWeb    = chain{p("edge_sidecar_to_children")}
)

// Normalizer maps raw nodes of any API generation onto domain.Post.
type Normalizer struct {
	Host string
}

func NewNormalizer(host string) Normalizer {
	if host == "" {
		host = DefaultHost
	}
	return Normalizer{Host: host}
}

// PostLink is the canonical permalink for a shortcode.
func (n Normalizer) PostLink(shortcode string) string {
	return fmt.Sprintf("https://%s/p/%s/", n.host(), shortcode)
}

func (n Normalizer) host() string {
	if n.Host == "" {
		return DefaultHost
	}
	return n.Host
}

// Node normalizes one raw post-like object. ok is false when no shortcode resolves.
func (n Normalizer) Node(raw any) (domain.Post, bool) {
	if kindOf(raw) != kindObject {
		return domain.Post{}, false
	}
	shortcode, ok := fieldShortcode.str(raw)
	if !ok {
		return domain.Post{}, false
	}

	post := domain.Post{
		Shortcode: shortcode,
		Link:      n.PostLink(shortcode),
		Caption:   "",
		Images:    []string{},
	}
	post.ID, _ = fieldID.str(raw)
	if caption, ok := fieldCaption.str(raw); ok {
		post.Caption = caption
	}
	if c, ok := fieldComments.int(raw); ok && c > 0 {
		post.CommentsCount = c
	}
	if l, ok := fieldLikes.int(raw); ok && l > 0 {
		post.LikesCount = l
	}
	if ts, ok := fieldTimestamp.int(raw); ok {
		post.Timestamp = &ts
	}
	if owner, ok := fieldOwner.str(raw); ok {
		post.OwnerID = &owner
	}
	if display, ok := fieldDisplay.str(raw); ok {
		post.DisplayURL = &display
	}

	children := n.children(raw)
	videoURL, hasVideoURL := fieldVideoURL.str(raw)

	switch {
	case hasCarouselSignal(raw) && len(children) > 0:
		post.Type = domain.MediaTypeSidecar
		post.IsSidecar = true
		post.Children = children
		post.Images = childImages(children)
		if post.DisplayURL == nil {
			for _, img := range post.Images {
				if img != "" {
					cover := img
					post.DisplayURL = &cover
					break
				}
			}
		}
	case hasVideoSignal(raw) && hasVideoURL:
		post.Type = domain.MediaTypeVideo
		post.IsVideo = true
		post.VideoURL = &videoURL
		views, _ := fieldViewCount.int(raw)
		if views < 0 {
			views = 0
		}
		post.VideoViewCount = &views
	default:
		post.Type = domain.MediaTypeImage
	}

	if !post.IsSidecar && post.DisplayURL != nil {
		post.Images = append(post.Images, *post.DisplayURL)
	}
	return post, true
}

// Child normalizes one carousel child. ok is false when it carries neither id nor media.
func (n Normalizer) Child(raw any) (domain.Child, bool) {
	if kindOf(raw) != kindObject {
		return domain.Child{}, false
	}
	child := domain.Child{Type: domain.MediaTypeImage}
	child.ID, _ = fieldID.str(raw)
	child.DisplayURL, _ = fieldDisplay.str(raw)

	if videoURL, ok := fieldVideoURL.str(raw); ok && hasVideoSignal(raw) {
		child.Type = domain.MediaTypeVideo
		child.IsVideo = true
		child.VideoURL = &videoURL
	}
	if alt, ok := fieldAltCaption.str(raw); ok {
		child.AccessibilityCaption = &alt
	}

	if child.ID == "" && child.DisplayURL == "" && child.VideoURL == nil {
		return domain.Child{}, false
	}
	return child, true
}

func (n Normalizer) children(raw any) []domain.Child {
	var rawChildren []any
	if items, ok := carouselMobile.lookup(raw); ok {
		rawChildren, _ = items.([]any)
	}
	if len(rawChildren) == 0 {
		if conn, ok := carouselWeb.lookup(raw); ok {
			if edges, ok := connectionEdges(conn); ok {
				rawChildren = EdgeNodes(edges)
			}
		}
	}

	children := make([]domain.Child, 0, len(rawChildren))
	for _, rc := range rawChildren {
		if c, ok := n.Child(rc); ok {
			children = append(children, c)
		}
	}
	return children
}

// childImages projects children onto their display urls. Entries stay aligned
// with children, so a child without an image contributes "".
func childImages(children []domain.Child) []string {
	images := make([]string, len(children))
	for i, c := range children {
		images[i] = c.DisplayURL
	}
	return images
}

// hasVideoSignal reports is_video, media_type 2 or a resolvable video url.
func hasVideoSignal(raw any) bool {
	if v, ok := fieldIsVideo.lookup(raw); ok && truthy(v) {
		return true
	}
	if mt, ok := fieldMediaType.int(raw); ok && mt == mediaTypeVideo {
		return true
	}
	return fieldVideoURL.present(raw)
}

func hasCarouselSignal(raw any) bool {
	if carouselMobile.present(raw) || carouselWeb.present(raw) {
		return true
	}
	mt, ok := fieldMediaType.int(raw)
	return ok && mt == mediaTypeCarousel
}
