package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/blogoto/blogoto/internal/core/domain"
)

// IsUnauthorized returns true if the error indicates invalid or
// expired credentials.
func IsUnauthorized(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden
	}
	return false
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound
	}
	return false
}

// IsPageTokenExpired returns true if the error indicates the change
// page token is no longer valid (410 GONE). The caller must obtain a
// fresh start token and re-establish the watch.
func IsPageTokenExpired(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusGone
	}
	return false
}

// WrapError translates a googleapi error into the domain taxonomy.
// Unrecognised errors pass through unchanged.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch gerr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %v", domain.ErrAuthRequired, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	case http.StatusGone:
		// Expired page token: recoverable by re-establishing the
		// watch, but the credentials themselves are fine.
		return fmt.Errorf("%w: page token expired: %v", domain.ErrUpstreamUnavailable, err)
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	default:
		return err
	}
}
