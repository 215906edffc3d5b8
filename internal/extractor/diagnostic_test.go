package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDiagnostic(t *testing.T) {
	report := BuildDiagnostic(DiagnosticInput{
		PageTitle:        "Login • Instagram",
		Markup:           strings.Repeat("a", 5000),
		NetworkRequests:  0,
		HasSessionCookie: false,
	})

	assert.True(t, report.Error)
	assert.NotEmpty(t, report.Message)
	assert.Len(t, report.PossibleCauses, 4)
	assert.Equal(t, "Login • Instagram", report.Debug.PageTitle)
	assert.Equal(t, 0, report.Debug.NetworkRequests)
	assert.False(t, report.Debug.HasSessionCookie)
	assert.Len(t, report.Debug.HTMLSnippet, DefaultSnippetLength)
}

func TestBuildDiagnosticCustomSnippet(t *testing.T) {
	report := BuildDiagnostic(DiagnosticInput{Markup: "<html>", SnippetLength: 100, NetworkRequests: 3, HasSessionCookie: true})

	assert.Equal(t, "<html>", report.Debug.HTMLSnippet)
	assert.Equal(t, 3, report.Debug.NetworkRequests)
	assert.True(t, report.Debug.HasSessionCookie)
}

func TestBuildDiagnosticCausesAreCopied(t *testing.T) {
	report := BuildDiagnostic(DiagnosticInput{})
	report.PossibleCauses[0] = "changed"

	again := BuildDiagnostic(DiagnosticInput{})
	require.NotEmpty(t, again.PossibleCauses)
	assert.NotEqual(t, "changed", again.PossibleCauses[0])
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", truncateRunes("héllo", 4))
	assert.Equal(t, "日本", truncateRunes("日本語", 2))
	assert.Equal(t, "short", truncateRunes("short", 10))
	assert.Equal(t, "", truncateRunes("", 3))
}
