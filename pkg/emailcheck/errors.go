package emailcheck

import "errors"

var (
	ErrInvalidConfig  = errors.New("emailcheck: invalid configuration")
	ErrNetworkError   = errors.New("emailcheck: network error")
	ErrUnauthorized   = errors.New("emailcheck: unauthorized")
	ErrInvalidRequest = errors.New("emailcheck: invalid request")
	ErrServiceFailure = errors.New("emailcheck: service failure")
)
