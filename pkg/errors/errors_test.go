package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapWithCodeKeepsChain(t *testing.T) {
	cause := errors.New("chromium exited")
	err := WrapWithCode(cause, CodeBrowserLaunch, "could not launch browser")

	assert.Equal(t, CodeBrowserLaunch, GetCode(err))
	assert.Equal(t, "could not launch browser", GetMessage(err))
	assert.True(t, Is(err, cause))
	assert.EqualError(t, err, "could not launch browser: chromium exited")
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, WrapWithCode(nil, CodeNavigation, "nothing"))
}

func TestGetCodeThroughFmtWrap(t *testing.T) {
	inner := WrapWithCode(ErrUnauthorized, CodeTokenSource, "token sheet rejected")
	outer := fmt.Errorf("validate: %w", inner)

	assert.Equal(t, CodeTokenSource, GetCode(outer))
	assert.True(t, Is(outer, ErrUnauthorized))
	assert.Equal(t, Code(""), GetCode(ErrNotFound))
	assert.Equal(t, "not found", GetMessage(ErrNotFound))
}

func TestGetCodeSkipsUncodedWrappers(t *testing.T) {
	err := Wrap(WrapWithCode(ErrUnauthorized, CodeTokenSource, "sheet down"), "validate")

	assert.Equal(t, CodeTokenSource, GetCode(err))
	assert.Equal(t, "validate", GetMessage(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid input", Wrap(ErrInvalidInput, "bad username"), http.StatusBadRequest},
		{"unauthorized", WrapWithCode(ErrUnauthorized, CodeTokenSource, "sheet"), http.StatusUnauthorized},
		{"not found", fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{"other", New("navigation failed"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
