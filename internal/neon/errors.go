package neon

import (
	"errors"
	"fmt"
)

var (
	ErrParentNotFound      = errors.New("parent branch not found")
	ErrBranchNotFound      = errors.New("branch not found")
	ErrBranchCreate        = errors.New("branch create failed")
	ErrNoEndpoint          = errors.New("branch has no read-write endpoint")
	ErrPasswordUnavailable = errors.New("role password unavailable")
	ErrDeleteFailed        = errors.New("branch delete failed")
	ErrResetFailed         = errors.New("branch reset failed")
)

// APIError is returned by RequestOrFail for any response with status >= 400.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("neon API %s %s failed with status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}
