package client

import "errors"

var (
	ErrUnavailable  = errors.New("sync endpoint unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadResponse  = errors.New("malformed sync response")
)
