package cryptox

import (
	"crypto/sha1"
	"fmt"

	"github.com/dmitrijs2005/simpletemp/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of the per-installation salt.
	SaltSize = 16
	// IVSize is the AES block size; the persisted IV has this length.
	IVSize = 16
	// KeySize is the derived AES-128 key length in bytes.
	KeySize = 16

	// Iterations is kept low for responsiveness on small devices. Changing it
	// breaks validation of every App record created before the change.
	Iterations = 64
)

// Key is a derived symmetric key.
type Key []byte

// DeriveKey runs PBKDF2-HMAC-SHA1 over password and salt. The same inputs
// always yield the same key.
func DeriveKey(password, salt []byte) (Key, error) {
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: empty password", common.ErrInvalidInput)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", common.ErrInvalidInput, SaltSize, len(salt))
	}
	return pbkdf2.Key(password, salt, Iterations, KeySize, sha1.New), nil
}

// NewSalt returns a fresh random salt.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// NewIV returns a fresh random initialization vector.
func NewIV() []byte {
	return common.GenerateRandByteArray(IVSize)
}
