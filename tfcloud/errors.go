package tfcloud

import (
	"errors"
	"fmt"
)

// ErrMissingToken is returned by NewClient when no API token is configured.
var ErrMissingToken = errors.New("no API token configured, set TFE_TOKEN or Config.Token")

var errMissingOrganization = errors.New("organization name must be passed or configured as a default")

// ValidationError wraps a locally detected input violation. It is always
// raised before any request is sent.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// RequestError is returned for any non-2xx API response. Status and body are
// carried as received; no retries are attempted.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}
