package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrProviderUnavailable   = errors.New("stats provider unavailable")
	ErrEntryLimitExceeded    = errors.New("entry limit exceeded")
	ErrSubmissionClosed      = errors.New("submission window is closed")
)
