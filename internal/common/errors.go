// Package common defines shared sentinel errors and small helpers used across
// the SimpleTemp client packages. Callers should use errors.Is to match the
// error values.
package common

import "errors"

var (
	// Crypto errors. A decrypt failure (bad padding, malformed ciphertext,
	// wrong key) wraps ErrCrypto.
	ErrCrypto = errors.New("crypto error")

	// Identity errors.
	ErrAlreadyRegistered = errors.New("app already registered")
	ErrNotRegistered     = errors.New("app not registered")
	ErrNoSession         = errors.New("no active session")

	// ErrIntegrity reports more than one App record in the store.
	ErrIntegrity = errors.New("integrity error")

	// Repository-level errors.
	ErrStorage  = errors.New("storage error")
	ErrNotFound = errors.New("not found")

	// Validation errors.
	ErrInvalidInput = errors.New("invalid input")
)
