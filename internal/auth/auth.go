package auth

import (
	"context"
	"regexp"
	"strings"
)

//go:generate go run go.uber.org/mock/mockgen -source=auth.go -destination=mocks/auth.go -package=mocks

// Validator decides whether a presented access token may use the scrape API.
type Validator interface {
	Validate(ctx context.Context, token string) error
}

var (
	bearerWord    = regexp.MustCompile(`(?i)bearer`)
	separatorRuns = regexp.MustCompile(`[\s:]+`)
)

// ExtractBearer pulls the token out of an Authorization header. It is lenient:
// "Bearer x", "bearer: x" and a bare "x" all yield "x".
func ExtractBearer(header string) string {
	token := bearerWord.ReplaceAllString(header, "")
	token = separatorRuns.ReplaceAllString(token, " ")
	return strings.TrimSpace(token)
}
