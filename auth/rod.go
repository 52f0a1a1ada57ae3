package auth

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh/spinner"
	"github.com/pkg/browser"

	"github.com/rusq/gptok/auth/auth_ui"
	"github.com/rusq/gptok/internal/chromium"
)

// RodAuth is the authentication provider that logs into the service with a
// managed Chromium instance.
type RodAuth struct {
	simpleProvider
	opts rodOpts
}

func (p RodAuth) Type() Type {
	return TypeRod
}

// BrowserAuthUIExt is the interface for the login flow user interaction.
type BrowserAuthUIExt interface {
	// RequestLoginType should request the login type from the user.
	RequestLoginType(w io.Writer) (auth_ui.LoginType, error)
	// RequestEmail should request the login email from the user.
	RequestEmail(w io.Writer) (string, error)
	// RequestPassword should request the password for the given login email
	// from the user.
	RequestPassword(w io.Writer, account string) (string, error)
	// RequestToken should request the pasted credential from the user.
	RequestToken(w io.Writer) (string, error)
	// Stop indicates that the UI is no longer needed.
	Stop()
}

// NewRODAuth creates a new authentication provider by driving a browser
// session.  Depending on the user's choice, the login is either fully
// automated (email and password typed into a headless browser), manual in a
// visible browser window, or a paste of the session credential obtained in
// the user's own browser.
func NewRODAuth(ctx context.Context, opts ...Option) (RodAuth, error) {
	r := RodAuth{
		opts: rodOpts{
			ui:          &auth_ui.Huh{},
			stepTimeout: chromium.DefStepTimeout,
		},
	}
	var o = options{rodOpts: r.opts}
	for _, opt := range opts {
		opt(&o)
	}
	r.opts = o.rodOpts
	defer r.opts.ui.Stop()

	lt, err := r.opts.ui.RequestLoginType(os.Stdout)
	if err != nil {
		return r, err
	}
	switch lt {
	case auth_ui.LCancel:
		return r, ErrCancelled
	case auth_ui.LUserBrowser:
		return userBrowserLogin(ctx, r.opts)
	}

	cl, err := chromium.New(
		chromium.WithStepTimeout(r.opts.stepTimeout),
		chromium.WithUserAgent(r.opts.userAgent),
		chromium.WithBrowserPath(r.opts.browserPath),
		chromium.WithUserDataDir(r.opts.userDataDir),
	)
	if err != nil {
		return r, err
	}

	var sp simpleProvider
	var payload string
	switch lt {
	case auth_ui.LHeadless:
		email, err := r.opts.ui.RequestEmail(os.Stdout)
		if err != nil {
			return r, err
		}
		if email == "" {
			return r, fmt.Errorf("email cannot be empty")
		}
		password, err := r.opts.ui.RequestPassword(os.Stdout, email)
		if err != nil {
			return r, err
		}
		if password == "" {
			return r, fmt.Errorf("password cannot be empty")
		}
		var aerr error
		if err := spinner.New().
			Title("Logging into OpenAI...").
			Context(ctx).
			ActionWithErr(func(ctx context.Context) error {
				payload, sp.Cookie, aerr = cl.Headless(ctx, email, password)
				return nil
			}).Run(); err != nil {
			return r, err
		}
		if aerr != nil {
			return r, aerr
		}
	default:
		fmt.Fprintln(os.Stderr, "A browser window will open, login as usual.")
		payload, sp.Cookie, err = cl.Interactive(ctx)
		if err != nil {
			return r, err
		}
		fmt.Fprintln(os.Stderr, "authenticated.")
	}
	sp.Token, err = tokenFromPayload(payload)
	if err != nil {
		return r, err
	}

	return RodAuth{
		simpleProvider: sp,
		opts:           r.opts,
	}, nil
}

// userBrowserLogin opens the session info endpoint in the user's default
// browser and accepts a pasted credential: the session info JSON, the
// access token, or the session cookie value.
func userBrowserLogin(ctx context.Context, opts rodOpts) (RodAuth, error) {
	if err := browser.OpenURL(sessionURI); err != nil {
		fmt.Fprintf(os.Stderr, "unable to open the browser, open %s manually\n", sessionURI)
	}
	pasted, err := opts.ui.RequestToken(os.Stdout)
	if err != nil {
		return RodAuth{}, err
	}
	pasted = strings.TrimSpace(pasted)
	switch {
	case strings.HasPrefix(pasted, "{"):
		tok, err := tokenFromPayload(pasted)
		if err != nil {
			return RodAuth{}, err
		}
		return RodAuth{simpleProvider: simpleProvider{Token: tok}, opts: opts}, nil
	case strings.Count(pasted, ".") == 2:
		// a bare JWT is the access token itself
		return RodAuth{simpleProvider: simpleProvider{Token: pasted}, opts: opts}, nil
	default:
		// assume the session cookie value, trade it for the token
		va, err := NewSessionCookieAuth(ctx, pasted)
		if err != nil {
			return RodAuth{}, err
		}
		return RodAuth{simpleProvider: va.simpleProvider, opts: opts}, nil
	}
}

// tokenFromPayload extracts the access token from the raw session info
// payload.
func tokenFromPayload(payload string) (string, error) {
	si, err := ParseSessionInfo(strings.NewReader(payload))
	if err != nil {
		return "", err
	}
	if si.AccessToken == "" {
		return "", ErrNotLoggedIn
	}
	return si.AccessToken, nil
}
