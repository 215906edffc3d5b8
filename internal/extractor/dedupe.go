package extractor

import "github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"

// Dedupe keeps the first post per shortcode, preserving order.
func Dedupe(posts []domain.Post) []domain.Post {
	seen := make(map[string]struct{}, len(posts))
	out := make([]domain.Post, 0, len(posts))
	for _, post := range posts {
		if _, dup := seen[post.Shortcode]; dup {
			continue
		}
		seen[post.Shortcode] = struct{}{}
		out = append(out, post)
	}
	return out
}
