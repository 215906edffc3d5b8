package domain

import (
	"encoding/json"
	"errors"
)

type Strategy string

const (
	StrategyNetworkStructured Strategy = "network_structured"
	StrategyNetworkItems      Strategy = "network_items"
	StrategyDomBasic          Strategy = "dom_basic"
	StrategyDomAggressive     Strategy = "dom_aggressive"
	StrategyDiagnostic        Strategy = "diagnostic"
)

type DiagnosticReport struct {
	Error          bool            `json:"error"`
	Message        string          `json:"message"`
	PossibleCauses []string        `json:"possible_causes"`
	Debug          DiagnosticDebug `json:"debug"`
}

type DiagnosticDebug struct {
	PageTitle        string `json:"page_title"`
	NetworkRequests  int    `json:"network_requests"`
	HasSessionCookie bool   `json:"has_session_cookie"`
	HTMLSnippet      string `json:"html_snippet"`
}

// Result holds either posts or a diagnostic report, never both.
type Result struct {
	Posts      []Post
	Diagnostic *DiagnosticReport
	Strategy   Strategy
}

func PostsResult(strategy Strategy, posts []Post) Result {
	if posts == nil {
		posts = []Post{}
	}
	return Result{Posts: posts, Strategy: strategy}
}

func DiagnosticResult(report DiagnosticReport) Result {
	return Result{Diagnostic: &report, Strategy: StrategyDiagnostic}
}

func (r Result) IsDiagnostic() bool {
	return r.Diagnostic != nil
}

// MarshalJSON emits the posts array or the report object.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Diagnostic != nil {
		if len(r.Posts) > 0 {
			return nil, errors.New("result carries both posts and a diagnostic report")
		}
		return json.Marshal(r.Diagnostic)
	}
	if r.Posts == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Posts)
}
