// Package cryptox holds the symmetric primitives behind local identity:
// password-based key derivation, AES-CBC encryption with a caller-supplied
// initialization vector, and random identifier generation.
//
// Encryption is deliberately deterministic for a fixed (key, iv, plaintext):
// the same session key and IV always produce the same ciphertext, which is
// what makes hashed identifiers stable within a session.
package cryptox
