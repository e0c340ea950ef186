package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/simpletemp/internal/common"
)

var (
	errLocked           = errors.New("log in first")
	errPasswordMismatch = errors.New("passwords do not match")
)

// Register asks for a new password twice and creates the local identity.
// Both password buffers are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	password, err := getPassword(a.reader, "Choose password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	repeat, err := getPassword(a.reader, "Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(repeat)

	if len(password) == 0 {
		return errEmptyAnswer
	}
	if !bytes.Equal(password, repeat) {
		return errPasswordMismatch
	}

	err = a.identity.Register(ctx, password)
	if errors.Is(err, common.ErrAlreadyRegistered) {
		fmt.Fprintln(a.out, "This device is already registered, use 'login'")
		return nil
	}
	if err != nil {
		return err
	}

	a.unlock(ctx)
	fmt.Fprintln(a.out, "Registered")
	return nil
}

// Login asks for the password and unlocks the session. A wrong password
// keeps whatever session was active before.
func (a *App) Login(ctx context.Context) error {
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ok, err := a.identity.Login(ctx, password)
	if errors.Is(err, common.ErrNotRegistered) {
		fmt.Fprintln(a.out, "No identity on this device yet, use 'register'")
		return nil
	}
	if err != nil {
		return err
	}
	if !ok {
		a.log.Info(ctx, "login unsuccessful")
		fmt.Fprintln(a.out, "Wrong password")
		return nil
	}

	a.unlock(ctx)
	a.log.Info(ctx, "login successful")
	fmt.Fprintln(a.out, "Unlocked")
	return nil
}

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return errLocked
	}
	return nil
}
