package errors

import "errors"

var (
	ErrAccessDenied = errors.New("access denied")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limit exceeded")
)
