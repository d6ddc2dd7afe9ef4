package llm

import (
	"errors"
	"fmt"
)

// ProviderError wraps a failed provider call with a retryability verdict.
// Fatal errors (bad credentials, malformed request) cannot be fixed by
// retrying; everything else (network, rate limit, timeout, 5xx) can.
type ProviderError struct {
	Status int // HTTP status, 0 when the request never reached the provider
	Fatal  bool
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("provider error (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsFatal reports whether err is a provider failure that retrying cannot fix.
// Errors that are not ProviderError at all are treated as transient.
func IsFatal(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Fatal
	}
	return false
}

// fatalStatus classifies HTTP statuses. 400 is a malformed request and
// 401/403 are credential rejections; neither changes on retry.
func fatalStatus(status int) bool {
	switch status {
	case 400, 401, 403, 404, 422:
		return true
	}
	return false
}
