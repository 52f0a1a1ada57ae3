// Package auth_ui provides the terminal UI for the login flows.
package auth_ui

// LoginType is the login type, that is used to choose the authentication flow,
// for example login headlessly or interactively.
type LoginType int8

const (
	// LInteractive opens a browser window for the user to login as usual,
	// works for SSO and captcha-gated accounts.
	LInteractive LoginType = iota
	// LHeadless is the email/password login type.
	LHeadless
	// LUserBrowser opens the session endpoint in the user's default browser
	// and accepts the pasted credential.
	LUserBrowser
	// LCancel should be returned if the user cancels the login intent.
	LCancel
)
