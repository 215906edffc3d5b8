package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
)

const profileMarkup = `<html><body>
<header><a href="/p/HEADER/">pinned text link</a></header>
<main>
  <article>
    <a href="/p/AAA/"><div><img src="https://cdn/a-small.jpg" srcset="https://cdn/a-150.jpg 150w, https://cdn/a-640.jpg 640w" alt="  first   post "></div></a>
    <a href="/reel/BBB/"><img src="https://cdn/b.jpg" alt=""></a>
    <a href="/p/AAA/"><img src="https://cdn/a-again.jpg"></a>
    <a href="/p/NOIMG/">text only</a>
    <a href="/explore/">explore</a>
  </article>
</main>
<footer><a href="/tv/CCC/" aria-label="igtv video">watch</a></footer>
</body></html>`

func TestExtractAnchorsBasic(t *testing.T) {
	got, err := ExtractAnchors(profileMarkup, domain.AnchorModeBasic, 0)
	require.NoError(t, err)

	want := []domain.Anchor{
		{Link: "/p/AAA/", ImageURL: "https://cdn/a-640.jpg", Caption: "first post"},
		{Link: "/reel/BBB/", ImageURL: "https://cdn/b.jpg", Caption: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("anchors mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractAnchorsAggressive(t *testing.T) {
	got, err := ExtractAnchors(profileMarkup, domain.AnchorModeAggressive, 0)
	require.NoError(t, err)

	links := make([]string, 0, len(got))
	for _, a := range got {
		links = append(links, a.Link)
	}
	assert.Equal(t, []string{"/p/HEADER/", "/p/AAA/", "/reel/BBB/", "/p/NOIMG/", "/tv/CCC/"}, links)
	assert.Equal(t, "pinned text link", got[0].Caption)
	assert.Equal(t, "", got[3].ImageURL)
	assert.Equal(t, "igtv video", got[4].Caption)
}

func TestExtractAnchorsLimit(t *testing.T) {
	got, err := ExtractAnchors(profileMarkup, domain.AnchorModeAggressive, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestExtractAnchorsDedupesByShortcodeBeforeLimit(t *testing.T) {
	markup := `<html><body>
<a href="/p/XXX/">one</a>
<a href="/p/XXX/?img_index=1">one again</a>
<a href="https://www.instagram.com/p/XXX/#comments">one more</a>
<a href="/reel/YYY/">two</a>
</body></html>`

	got, err := ExtractAnchors(markup, domain.AnchorModeAggressive, 2)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "/p/XXX/", got[0].Link)
	assert.Equal(t, "/reel/YYY/", got[1].Link)
}

func TestExtractAnchorsEmptyPage(t *testing.T) {
	got, err := ExtractAnchors("", domain.AnchorModeBasic, 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestInlineEntries(t *testing.T) {
	markup := `<html><head>
<script type="application/json">{"require": [{"user": {"edge_owner_to_timeline_media": {"edges": [{"node": {"shortcode": "S1"}}]}}}]}</script>
<script type="application/json">not json</script>
<script type="application/json">   </script>
<script>var x = {"a": 1};</script>
<script type="application/json">[1, 2]</script>
</head></html>`

	entries := InlineEntries(markup)

	require.Len(t, entries, 2)
	assert.Equal(t, InlineURL, entries[0].URL)
	assert.IsType(t, map[string]any{}, entries[0].Data)
	assert.IsType(t, []any{}, entries[1].Data)
}
