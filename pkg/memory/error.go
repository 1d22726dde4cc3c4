package memory

import (
	"errors"
	"fmt"
)

// BackendError is returned when the backend answers with a non-2xx status.
// Body carries the raw response body for diagnostics; it may be empty.
type BackendError struct {
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}

	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

// AsBackendError unwraps err into a *BackendError if one is in its chain.
func AsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}

	return nil, false
}
