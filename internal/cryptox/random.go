package cryptox

import (
	"crypto/rand"
	"math/big"
)

// Alphanumeric is the alphabet used for generated identifiers.
const Alphanumeric = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// RandomString returns n characters drawn uniformly from Alphanumeric.
func RandomString(n int) string {
	return string(RandomChars(n))
}

// RandomChars is RandomString returning the raw bytes, so callers that want
// to wipe the buffer afterwards can do so.
func RandomChars(n int) []byte {
	buf := make([]byte, n)
	limit := big.NewInt(int64(len(Alphanumeric)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		buf[i] = Alphanumeric[idx.Int64()]
	}
	return buf
}
