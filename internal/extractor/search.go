package extractor

import "strings"

const DefaultMaxDepth = 64

// DefaultMarkers lists the timeline connection keys, most specific first. The bare
// "timeline" would also match edge_felix_video_timeline (IGTV), so it only runs last.
var DefaultMarkers = []string{
	"edge_owner_to_timeline_media",
	"user_timeline_graphql_connection",
	"timeline",
}

// Searcher finds connection shapes inside arbitrary captured JSON.
type Searcher struct {
	// Markers are key substrings whose connections are preferred over any other
	// connection in the document, such as suggested users. Each marker is tried
	// across the whole document before the next one.
	Markers  []string
	MaxDepth int
}

func NewSearcher(markers []string, maxDepth int) Searcher {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return Searcher{Markers: markers, MaxDepth: maxDepth}
}

// FindEdges returns the first non-empty edges array found in root, unprocessed.
// Connections under a marker key win over the first generic match.
func (s Searcher) FindEdges(root any) []any {
	for _, marker := range s.Markers {
		if marker == "" {
			continue
		}
		if edges := s.findMarked(root, marker, 0); len(edges) > 0 {
			return edges
		}
	}
	if edges := s.findAny(root, 0); len(edges) > 0 {
		return edges
	}
	return []any{}
}

func (s Searcher) findMarked(v any, marker string, depth int) []any {
	if depth > s.maxDepth() {
		return nil
	}
	switch kindOf(v) {
	case kindObject:
		obj := v.(map[string]any)
		keys := sortedKeys(obj)
		for _, k := range keys {
			if strings.Contains(k, marker) {
				if edges, ok := connectionEdges(obj[k]); ok {
					return edges
				}
			}
		}
		for _, k := range keys {
			if edges := s.findMarked(obj[k], marker, depth+1); len(edges) > 0 {
				return edges
			}
		}
	case kindArray:
		for _, item := range v.([]any) {
			if edges := s.findMarked(item, marker, depth+1); len(edges) > 0 {
				return edges
			}
		}
	}
	return nil
}

func (s Searcher) findAny(v any, depth int) []any {
	if depth > s.maxDepth() {
		return nil
	}
	switch kindOf(v) {
	case kindObject:
		if edges, ok := connectionEdges(v); ok {
			return edges
		}
		obj := v.(map[string]any)
		for _, k := range sortedKeys(obj) {
			if edges := s.findAny(obj[k], depth+1); len(edges) > 0 {
				return edges
			}
		}
	case kindArray:
		for _, item := range v.([]any) {
			if edges := s.findAny(item, depth+1); len(edges) > 0 {
				return edges
			}
		}
	}
	return nil
}

func (s Searcher) maxDepth() int {
	if s.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return s.MaxDepth
}

// connectionEdges matches {edges: [{node: ...}, ...]} with at least one edge.
func connectionEdges(v any) ([]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	edges, ok := obj["edges"].([]any)
	if !ok || len(edges) == 0 {
		return nil, false
	}
	first, ok := edges[0].(map[string]any)
	if !ok {
		return nil, false
	}
	if _, ok := first["node"]; !ok {
		return nil, false
	}
	return edges, true
}

// EdgeNodes unwraps {node} wrappers, skipping anything else.
func EdgeNodes(edges []any) []any {
	nodes := make([]any, 0, len(edges))
	for _, e := range edges {
		if n, ok := p("node").get(e); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// RootItems returns the flat items array of a mobile REST payload.
func RootItems(root any) []any {
	obj, ok := root.(map[string]any)
	if !ok {
		return []any{}
	}
	items, ok := obj["items"].([]any)
	if !ok {
		return []any{}
	}
	return items
}
