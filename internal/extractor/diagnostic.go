package extractor

import "github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"

const DefaultSnippetLength = 2000

var possibleCauses = []string{
	"Instagram is showing a login wall to this session",
	"The profile is private or does not exist",
	"Network responses were blocked or not captured",
	"The page layout or API shape changed",
}

// DiagnosticInput is what the cascade knows about the page when nothing was extracted.
type DiagnosticInput struct {
	PageTitle        string
	Markup           string
	NetworkRequests  int
	HasSessionCookie bool
	SnippetLength    int
}

func BuildDiagnostic(in DiagnosticInput) domain.DiagnosticReport {
	limit := in.SnippetLength
	if limit <= 0 {
		limit = DefaultSnippetLength
	}
	causes := make([]string, len(possibleCauses))
	copy(causes, possibleCauses)

	return domain.DiagnosticReport{
		Error:          true,
		Message:        "No posts could be extracted from the profile page",
		PossibleCauses: causes,
		Debug: domain.DiagnosticDebug{
			PageTitle:        in.PageTitle,
			NetworkRequests:  in.NetworkRequests,
			HasSessionCookie: in.HasSessionCookie,
			HTMLSnippet:      truncateRunes(in.Markup, limit),
		},
	}
}

func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
