// Package services contains the application services of the SimpleTemp
// client. This file defines the AuthManager: registration, password
// validation and session-keyed hashing of identifiers.
package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/simpletemp/internal/client/models"
	"github.com/dmitrijs2005/simpletemp/internal/common"
	"github.com/dmitrijs2005/simpletemp/internal/cryptox"
	"github.com/dmitrijs2005/simpletemp/internal/logging"
)

// ObfuscatedIDLength is the length of the random app id before encryption.
const ObfuscatedIDLength = 64

// SessionState is the AuthManager state.
type SessionState int

const (
	// StateUninitialized: no session has been established yet.
	StateUninitialized SessionState = iota
	// StateAuthenticated: a session key matching the App record is active.
	StateAuthenticated
	// StateFailed: the last validation failed and no session is active.
	StateFailed
)

func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// AuthManager owns the process-wide session key material.
//
// Contract:
//   - Register: create a new App record and make its key the active session.
//     Whether an App already exists is the caller's concern.
//   - Validate: check password against app; on exact match the derived key
//     becomes the active session, otherwise the session is left untouched.
//   - HashedAppID / Hash: encrypt under the active session; fail with
//     common.ErrNoSession when there is none.
//   - Reset: drop the active session.
type AuthManager interface {
	Register(password []byte) (*models.App, error)
	Validate(app *models.App, password []byte) bool
	HashedAppID() (string, error)
	Hash(text string) (string, error)
	State() SessionState
	Reset()
}

type session struct {
	key         cryptox.Key
	iv          []byte
	hashedAppID string
}

type authManager struct {
	log logging.Logger

	mu      sync.RWMutex
	session *session
	state   SessionState
}

// NewAuthManager returns an AuthManager with no active session.
func NewAuthManager(log logging.Logger) AuthManager {
	return &authManager{log: log}
}

// Register generates salt, IV and a random obfuscated id, derives the key
// and encrypts the password and the id. The password buffer is wiped before
// returning, on every path.
func (a *authManager) Register(password []byte) (*models.App, error) {
	defer common.WipeByteArray(password)

	salt := cryptox.NewSalt()
	iv := cryptox.NewIV()
	obfuscated := cryptox.RandomChars(ObfuscatedIDLength)
	defer common.WipeByteArray(obfuscated)

	key, err := cryptox.DeriveKey(password, salt)
	if err != nil {
		return nil, fmt.Errorf("key derivation error: %w", err)
	}

	encPassword, err := cryptox.Encrypt(key, iv, password)
	if err != nil {
		return nil, fmt.Errorf("password encryption error: %w", err)
	}
	encID, err := cryptox.Encrypt(key, iv, obfuscated)
	if err != nil {
		return nil, fmt.Errorf("id encryption error: %w", err)
	}

	app := &models.App{Salt: salt, InitVector: iv, ID: encID, Password: encPassword}

	s, err := newSession(key, iv, app)
	if err != nil {
		return nil, err
	}
	a.activate(s)
	return app, nil
}

// Validate decrypts the stored password with a key derived from password and
// compares every byte. Decryption failures count as a mismatch. The password
// buffer is wiped only on success.
func (a *authManager) Validate(app *models.App, password []byte) bool {
	if app == nil {
		return false
	}

	key, err := cryptox.DeriveKey(password, app.Salt)
	if err != nil {
		a.fail("key derivation failed", err)
		return false
	}

	stored, err := cryptox.Decrypt(key, app.InitVector, app.Password)
	if err != nil {
		a.fail("stored password does not decrypt", err)
		return false
	}
	defer common.WipeByteArray(stored)

	if subtle.ConstantTimeCompare(stored, password) != 1 {
		a.fail("password mismatch", nil)
		return false
	}

	s, err := newSession(key, app.InitVector, app)
	if err != nil {
		a.fail("hashing app id failed", err)
		return false
	}
	common.WipeByteArray(password)
	a.activate(s)
	return true
}

func (a *authManager) HashedAppID() (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.session == nil {
		return "", common.ErrNoSession
	}
	return a.session.hashedAppID, nil
}

func (a *authManager) Hash(text string) (string, error) {
	a.mu.RLock()
	s := a.session
	a.mu.RUnlock()

	if s == nil {
		return "", common.ErrNoSession
	}
	return cryptox.EncryptString(s.key, s.iv, text)
}

func (a *authManager) State() SessionState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

func (a *authManager) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = nil
	a.state = StateUninitialized
}

// newSession computes the hashed app id once; it is served for the whole
// session.
func newSession(key cryptox.Key, iv []byte, app *models.App) (*session, error) {
	hashed, err := cryptox.EncryptString(key, iv, app.ID)
	if err != nil {
		return nil, fmt.Errorf("app id hashing error: %w", err)
	}
	return &session{key: key, iv: iv, hashedAppID: hashed}, nil
}

func (a *authManager) activate(s *session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = s
	a.state = StateAuthenticated
}

// fail records a failed validation. An already active session is kept.
func (a *authManager) fail(reason string, err error) {
	a.log.Debug(context.Background(), "validation failed", "reason", reason, "error", err)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		a.state = StateFailed
	}
}
