package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNoSession        = errors.New("no active session")
	ErrFeedbackRequired = errors.New("feedback is required to reject content")
	ErrUnknownRoute     = errors.New("unknown route")
	ErrRoleNotPermitted = errors.New("role not permitted for this action")
)
