package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/brocat-app/brocat/internal/client/auth"
	"github.com/brocat-app/brocat/internal/client/nav"
	"github.com/brocat-app/brocat/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates through the session
// controller. On success the app switches to the home screen.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		fmt.Fprintln(a.out, "Login failed:", a.session.Store().State().Error)
		return err
	}

	fmt.Fprintln(a.out, "Welcome!")
	a.Replace(nav.RouteHome)
	return nil
}

// Logout ends the session. Always succeeds locally.
func (a *App) Logout(ctx context.Context) {
	a.session.Logout(ctx)
	a.Replace(nav.RouteLogin)
	fmt.Fprintln(a.out, "Logged out.")
}

// Status prints the current auth state.
func (a *App) Status(ctx context.Context) {
	st := a.session.Store().State()
	switch {
	case st.Loading:
		fmt.Fprintln(a.out, "Status: loading")
	case st.IsAuth && st.User != nil:
		fmt.Fprintf(a.out, "Status: signed in as %s (%s)\n", st.User.Email, st.User.Role)
		if info, ok := auth.PeekToken(st.Token); ok && !info.ExpiresAt.IsZero() {
			fmt.Fprintln(a.out, "Token expires:", info.ExpiresAt.Format("2006-01-02 15:04:05"))
		}
	default:
		fmt.Fprintln(a.out, "Status: signed out")
	}
}

// Validate re-checks the session with the backend and reports the result.
func (a *App) Validate(ctx context.Context) {
	a.session.ValidateSession(ctx)
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Session is valid.")
	} else {
		fmt.Fprintln(a.out, "Session is no longer valid.")
		a.Replace(nav.RouteLogin)
	}
}

// ChangePassword prompts for the old and new passwords and rotates them.
func (a *App) ChangePassword(ctx context.Context) error {
	oldPw, err := getPassword("Enter current password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPw)

	newPw, err := getPassword("Enter new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPw)

	if err := a.session.ChangePassword(ctx, string(oldPw), string(newPw)); err != nil {
		fmt.Fprintln(a.out, "Password change failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Password changed.")
	return nil
}

// ForceLogout invalidates the user's sessions on every other device.
func (a *App) ForceLogout(ctx context.Context) error {
	if err := a.session.ForceLogout(ctx); err != nil {
		fmt.Fprintln(a.out, "Force logout failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Other sessions terminated.")
	return nil
}

// ForgotPassword requests a reset email.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.api.ForgotPassword(ctx, email); err != nil {
		fmt.Fprintln(a.out, "Request failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "If the address exists, a reset email is on its way.")
	return nil
}

// ResetPassword completes a password reset with the emailed token.
func (a *App) ResetPassword(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter reset token", os.Stdout)
	if err != nil {
		return err
	}
	newPw, err := getPassword("Enter new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPw)

	if err := a.api.ResetPassword(ctx, token, string(newPw)); err != nil {
		fmt.Fprintln(a.out, "Reset failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Password reset, you can log in now.")
	return nil
}
