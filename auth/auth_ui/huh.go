package auth_ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
)

// Huh is the Auth UI that uses the huh library to provide a terminal UI.
type Huh struct{}

func (*Huh) Stop() {}

func (*Huh) RequestLoginType(w io.Writer) (LoginType, error) {
	var loginType LoginType
	err := huh.NewSelect[LoginType]().Title("Select login type").
		Options(
			huh.NewOption("Login in your browser", LInteractive),
			huh.NewOption("Email and password (automatic, experimental)", LHeadless),
			huh.NewOption("Paste the session token", LUserBrowser),
			huh.NewOption("------", LoginType(-1)),
			huh.NewOption("Cancel", LCancel),
		).
		Value(&loginType).
		Validate(valSepEaster()).
		Description("If you login with Google, Apple or SSO, select 'Login in your browser'.").
		Run()
	return loginType, err
}

func (*Huh) RequestEmail(w io.Writer) (string, error) {
	var email string
	err := huh.NewInput().
		Title("OpenAI account email").
		Value(&email).
		Placeholder("you@work.com").
		Validate(valAND(valEmail, valRequired)).
		Run()
	return email, err
}

func (*Huh) RequestPassword(w io.Writer, account string) (string, error) {
	var passwd string
	err := huh.NewInput().
		Title("Password").
		Value(&passwd).
		Description(fmt.Sprintf("The password for %s.  It is only sent to the login form.", account)).
		Validate(valRequired).
		Password(true).
		Run()
	return passwd, err
}

func (*Huh) RequestToken(w io.Writer) (string, error) {
	var token string
	err := huh.NewText().
		Title("Paste the session credential").
		Description("Copy the contents of the page that has opened in the browser,\nor the value of the " + sessionCookieName + " cookie.").
		Value(&token).
		Validate(valRequired).
		Run()
	return token, err
}

const sessionCookieName = "__Secure-next-auth.session-token"
