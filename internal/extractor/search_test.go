package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	v, err := DecodeJSONBytes([]byte(raw))
	require.NoError(t, err)
	return v
}

func TestFindEdgesPrefersMarkedConnection(t *testing.T) {
	root := decode(t, `{
		"data": {
			"a_suggested": {"edges": [{"node": {"username": "someone_else"}}]},
			"user": {
				"edge_owner_to_timeline_media": {
					"count": 1,
					"edges": [{"node": {"shortcode": "TL1"}}]
				}
			}
		}
	}`)

	edges := NewSearcher(DefaultMarkers, 0).FindEdges(root)

	require.Len(t, edges, 1)
	nodes := EdgeNodes(edges)
	assert.Equal(t, "TL1", nodes[0].(map[string]any)["shortcode"])
}

func TestFindEdgesOwnerTimelineWinsOverIGTV(t *testing.T) {
	root := decode(t, `{
		"data": {
			"user": {
				"edge_felix_video_timeline": {"edges": [{"node": {"shortcode": "IGTV1"}}]},
				"edge_owner_to_timeline_media": {"edges": [{"node": {"shortcode": "POST1"}}, {"node": {"shortcode": "POST2"}}]}
			}
		}
	}`)

	edges := NewSearcher(DefaultMarkers, 0).FindEdges(root)

	require.Len(t, edges, 2)
	nodes := EdgeNodes(edges)
	assert.Equal(t, "POST1", nodes[0].(map[string]any)["shortcode"])
	assert.Equal(t, "POST2", nodes[1].(map[string]any)["shortcode"])
}

func TestFindEdgesMarkerOrderBeatsDocumentOrder(t *testing.T) {
	root := decode(t, `{
		"a": {"xdt_api__v1__feed__user_timeline_graphql_connection": {"edges": [{"node": {"code": "MOBILE"}}]}},
		"b": {"deep": {"edge_owner_to_timeline_media": {"edges": [{"node": {"code": "WEB"}}]}}}
	}`)

	edges := NewSearcher(DefaultMarkers, 0).FindEdges(root)

	require.Len(t, edges, 1)
	assert.Equal(t, "WEB", EdgeNodes(edges)[0].(map[string]any)["code"])
}

func TestFindEdgesGenericMarkerIsLastResort(t *testing.T) {
	root := decode(t, `{"user": {"edge_felix_video_timeline": {"edges": [{"node": {"shortcode": "IGTV1"}}]}}}`)

	edges := NewSearcher(DefaultMarkers, 0).FindEdges(root)

	require.Len(t, edges, 1)
	assert.Equal(t, "IGTV1", EdgeNodes(edges)[0].(map[string]any)["shortcode"])
}

func TestFindEdgesFallsBackToAnyConnection(t *testing.T) {
	root := decode(t, `{"data": {"media": {"edges": [{"node": {"code": "X"}}, {"node": {"code": "Y"}}]}}}`)

	edges := NewSearcher(DefaultMarkers, 0).FindEdges(root)

	assert.Len(t, edges, 2)
}

func TestFindEdgesSkipsEmptyEdges(t *testing.T) {
	root := decode(t, `{
		"a": {"edges": []},
		"b": {"inner": {"edges": [{"node": {"shortcode": "B1"}}]}}
	}`)

	edges := NewSearcher(nil, 0).FindEdges(root)

	require.Len(t, edges, 1)
	assert.Equal(t, "B1", EdgeNodes(edges)[0].(map[string]any)["shortcode"])
}

func TestFindEdgesEmptyMarkedConnectionKeepsSearching(t *testing.T) {
	root := decode(t, `{
		"user": {"edge_owner_to_timeline_media": {"edges": []}},
		"xdt_api__v1__feed__user_timeline_graphql_connection": {"edges": [{"node": {"code": "M1"}}]}
	}`)

	edges := NewSearcher(DefaultMarkers, 0).FindEdges(root)

	require.Len(t, edges, 1)
	assert.Equal(t, "M1", EdgeNodes(edges)[0].(map[string]any)["code"])
}

func TestFindEdgesRequiresNodeWrapper(t *testing.T) {
	root := decode(t, `{"edges": [{"shortcode": "no-wrapper"}]}`)

	assert.Empty(t, NewSearcher(nil, 0).FindEdges(root))
}

func TestFindEdgesNoMatchIsEmptyNotNil(t *testing.T) {
	for _, raw := range []string{`null`, `42`, `"edges"`, `[]`, `{"items": [1, 2]}`} {
		edges := NewSearcher(DefaultMarkers, 0).FindEdges(decode(t, raw))
		assert.NotNil(t, edges, raw)
		assert.Empty(t, edges, raw)
	}
}

func TestFindEdgesInsideArrays(t *testing.T) {
	root := decode(t, `[{"x": 1}, {"payload": [{"edges": [{"node": {"shortcode": "ARR"}}]}]}]`)

	edges := NewSearcher(nil, 0).FindEdges(root)

	assert.Len(t, edges, 1)
}

func TestFindEdgesRespectsDepthCap(t *testing.T) {
	root := decode(t, `{"a": {"b": {"c": {"edges": [{"node": {"shortcode": "DEEP"}}]}}}}`)

	assert.Empty(t, NewSearcher(nil, 2).FindEdges(root))
	assert.Len(t, NewSearcher(nil, 3).FindEdges(root), 1)
}

func TestEdgeNodesSkipsMissingNodes(t *testing.T) {
	edges := []any{
		map[string]any{"node": map[string]any{"shortcode": "a"}},
		map[string]any{"cursor": "x"},
		"garbage",
		map[string]any{"node": nil},
	}

	assert.Len(t, EdgeNodes(edges), 1)
}

func TestRootItems(t *testing.T) {
	assert.Len(t, RootItems(decode(t, `{"items": [{"code": "a"}, {"code": "b"}], "more_available": true}`)), 2)
	assert.Empty(t, RootItems(decode(t, `{"items": {}}`)))
	assert.Empty(t, RootItems(decode(t, `[{"items": []}]`)))
	assert.Empty(t, RootItems(nil))
}
