// errors/fetch_errors.go
package errors

import "errors"

var (
	ErrFetchFailed       = errors.New("fetch failed")
	ErrUpstream          = errors.New("upstream request failed")
	ErrInvalidDirectory  = errors.New("invalid facility directory")
	ErrCacheClosed       = errors.New("query cache closed")
	ErrInternalServer    = errors.New("internal server error")
	ErrInvalidParameters = errors.New("invalid parameters")
)
