package gdrive

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unauthorised", &googleapi.Error{Code: http.StatusUnauthorized}, domain.ErrAuthExpired},
		{"forbidden", &googleapi.Error{Code: http.StatusForbidden}, domain.ErrAuthRequired},
		{"not found", &googleapi.Error{Code: http.StatusNotFound}, domain.ErrNotFound},
		{"rate limited", &googleapi.Error{Code: http.StatusTooManyRequests}, domain.ErrRateLimited},
		{"refresh failed", &oauth2.RetrieveError{ErrorCode: "invalid_grant"}, domain.ErrAuthExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, wrapError("op", tt.err), tt.want)
		})
	}
}

func TestWrapError_Passthrough(t *testing.T) {
	assert.NoError(t, wrapError("op", nil))

	base := errors.New("connection reset")
	err := wrapError("find snapshot", base)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "find snapshot: connection reset", err.Error())
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&googleapi.Error{Code: http.StatusNotFound}))
	assert.False(t, IsNotFound(&googleapi.Error{Code: http.StatusForbidden}))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestRetryAfter(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", "12")
	assert.Equal(t, 12, retryAfter(&googleapi.Error{Code: http.StatusTooManyRequests, Header: header}))
	assert.Equal(t, 0, retryAfter(&googleapi.Error{Code: http.StatusTooManyRequests}))
	assert.Equal(t, 0, retryAfter(errors.New("plain")))
}
