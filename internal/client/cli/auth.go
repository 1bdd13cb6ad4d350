package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/otpkeeper/internal/client/services"
	"github.com/dmitrijs2005/otpkeeper/internal/common"
	"github.com/dmitrijs2005/otpkeeper/internal/logging"
)

// getSimpleText and getHidden are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getHidden     = GetHidden
)

var errRemoteOnly = errors.New("this command needs a server; the client runs in local mode")

// Register prompts for an email and password and creates a server account.
func (a *App) Register(ctx context.Context) error {
	if a.auth == nil {
		return errRemoteOnly
	}

	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getHidden(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success! You can login now.")
	return nil
}

// Login authenticates (remote mode only) and then opens every envelope
// with the email as passphrase. Records that fail to open are still listed.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		if err := a.Logout(ctx); err != nil {
			return err
		}
	}

	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	userName = services.NormalizeEmail(userName)
	if err := services.ValidateEmail(userName); err != nil {
		return err
	}

	if a.auth != nil {
		password, err := getHidden(a.out, "Enter password")
		if err != nil {
			return err
		}
		defer common.WipeByteArray(password)

		if err := a.auth.Login(ctx, userName, password); err != nil {
			a.logger.Warn(ctx, "login unsuccessful", "user", logging.MaskEmail(userName), "error", err)
			return err
		}
		a.setMode(ModeOnline)
	}

	a.userName = userName
	a.logger.Info(ctx, "login successful", "user", logging.MaskEmail(userName))

	if err := a.Reload(ctx); err != nil {
		fmt.Fprintln(a.out, "Accounts could not be loaded; try 'reload' later.")
		return err
	}
	return nil
}

// Logout wipes cached seeds and forgets the token pair and passphrase.
func (a *App) Logout(ctx context.Context) error {
	a.session.Close()
	if a.auth != nil {
		a.auth.Logout()
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
