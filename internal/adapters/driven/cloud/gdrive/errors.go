package gdrive

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	return false
}

// retryAfter reads the Retry-After header of a rate limit error in seconds.
func retryAfter(err error) int {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil {
		return 0
	}
	return secs
}

// wrapError converts a Google API or token error to a domain error,
// keeping the original message.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrAuthExpired, err)
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch gerr.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w: %v", op, domain.ErrAuthExpired, err)
	case http.StatusForbidden:
		return fmt.Errorf("%s: %w: %v", op, domain.ErrAuthRequired, err)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w: %v", op, domain.ErrNotFound, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w: %v", op, domain.ErrRateLimited, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
