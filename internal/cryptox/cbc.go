package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/simpletemp/internal/common"
)

// Encrypt pads plaintext (PKCS#7), encrypts it with AES-CBC under key and iv
// and returns the ciphertext as standard base64.
func Encrypt(key Key, iv, plaintext []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrCrypto, err)
	}
	if len(iv) != block.BlockSize() {
		return "", fmt.Errorf("%w: iv must be %d bytes, got %d", common.ErrCrypto, block.BlockSize(), len(iv))
	}

	padded := pad(plaintext, block.BlockSize())
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. Any failure, including a padding mismatch caused
// by the wrong key, is reported as an error wrapping common.ErrCrypto.
func Decrypt(key Key, iv []byte, ciphertext string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed ciphertext: %w", common.ErrCrypto, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrCrypto, err)
	}
	bs := block.BlockSize()
	if len(iv) != bs {
		return nil, fmt.Errorf("%w: iv must be %d bytes, got %d", common.ErrCrypto, bs, len(iv))
	}
	if len(raw) == 0 || len(raw)%bs != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not a multiple of the block size", common.ErrCrypto)
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, raw)

	return unpad(out, bs)
}

// EncryptString is Encrypt for text input.
func EncryptString(key Key, iv []byte, text string) (string, error) {
	return Encrypt(key, iv, []byte(text))
}

func pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(bytes.Clone(b), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte, blockSize int) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, fmt.Errorf("%w: bad padding", common.ErrCrypto)
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, fmt.Errorf("%w: bad padding", common.ErrCrypto)
		}
	}
	return b[:len(b)-n], nil
}
