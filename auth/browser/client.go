package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"runtime/trace"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/rusq/gptok/auth/browser/pwcompat"
)

const (
	host     = "chat.openai.com"
	loginURI = "https://" + host + "/auth/login"
	// sessionGlob matches the session info request that the application
	// fires once the user is logged in.
	sessionGlob = "https://" + host + "/api/auth/session"
)

// Client is the client for the playwright-driven login.
type Client struct {
	pageClosed   chan bool // will receive a notification that the page is closed prematurely.
	br           Browser
	loginTimeout float64 // login page timeout in milliseconds.
	verbose      bool
}

var (
	installFn = playwright.Install
	// newAdapterFn is the function that creates a new driver adapter.  It
	// can be overridden for testing.
	newAdapterFn = pwcompat.NewAdapter
)

// New create new browser based client.
func New(opts ...Option) (*Client, error) {
	cl := &Client{
		pageClosed:   make(chan bool, 1),
		br:           Bfirefox,
		loginTimeout: float64(DefLoginTimeout.Milliseconds()),
		verbose:      false,
	}
	for _, opt := range opts {
		opt(cl)
	}
	slog.Debug("browser options", "browser", cl.br, "timeout", cl.loginTimeout)
	runopts := &playwright.RunOptions{
		Browsers: []string{cl.br.String()},
		Verbose:  cl.verbose,
	}
	if err := ensureInstalled(runopts); err != nil {
		return nil, err
	}
	return cl, nil
}

// ErrNotInstalled is returned by New when the playwright environment is
// missing.  Logging in never downloads anything, installation is a separate
// step.
var ErrNotInstalled = errors.New("playwright environment is not installed, run:  gptok tools install -playwright")

// ensureInstalled verifies that the driver is present and usable, it does
// not download anything.
func ensureInstalled(runopts *playwright.RunOptions) error {
	ad, err := newAdapterFn(runopts)
	if err != nil {
		return err
	}
	fi, err := os.Stat(ad.DriverBinaryLocation)
	if err != nil {
		return ErrNotInstalled
	}
	if runtime.GOOS != "windows" && fi.Mode()&0o111 == 0 {
		return fmt.Errorf("%w (the current installation is broken)", ErrNotInstalled)
	}
	return nil
}

// Install downloads the driver and the browser binaries for br.  If the
// installation is in the known broken state, it is reinstalled.
func Install(br Browser, verbose bool) error {
	runopts := &playwright.RunOptions{
		Browsers: []string{br.String()},
		Verbose:  verbose,
	}
	if err := installFn(runopts); err != nil {
		if !strings.Contains(err.Error(), "could not run driver") || runtime.GOOS == "windows" {
			return fmt.Errorf("can't install the browser: %w", err)
		}
		if err := pwRepair(runopts); err != nil {
			return fmt.Errorf("failed to repair the browser installation: %w", err)
		}
	}
	return nil
}

// Authenticate opens the login page and waits for the user to complete the
// login.  It returns the access token and the session cookies.
func (cl *Client) Authenticate(ctx context.Context) (string, []*http.Cookie, error) {
	ctx, task := trace.NewTask(ctx, "Authenticate")
	defer task.End()

	var _b = playwright.Bool

	pw, err := playwright.Run()
	if err != nil {
		return "", nil, err
	}
	defer pw.Stop()

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: _b(false),
	}

	browser, err := cl.br.client(pw).Launch(opts)
	if err != nil {
		return "", nil, err
	}
	defer browser.Close()

	browserCtx, err := browser.NewContext()
	if err != nil {
		return "", nil, err
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return "", nil, err
	}
	// page close sentinel.
	page.On("close", func() { trace.Log(ctx, "user", "page closed"); close(cl.pageClosed) })

	slog.Debug("opening browser", "url", loginURI)
	if _, err := page.Goto(loginURI); err != nil {
		return "", nil, err
	}

	var r playwright.Response
	if err := cl.withBrowserGuard(ctx, func() error {
		var err error
		r, err = page.ExpectResponse(sessionGlob, func() error { return nil }, playwright.PageExpectResponseOptions{
			Timeout: &cl.loginTimeout,
		})
		return err
	}); err != nil {
		return "", nil, err
	}

	token, err := extractToken(r)
	if err != nil {
		return "", nil, err
	}

	state, err := browserCtx.StorageState()
	if err != nil {
		return "", nil, err
	}
	if len(state.Cookies) == 0 {
		return "", nil, errors.New("empty cookies")
	}

	return token, convertCookies(state.Cookies), nil
}

var ErrBrowserClosed = errors.New("browser closed or timed out")

// withBrowserGuard starts the function fn in a goroutine, and waits for it to
// finish.  If the context is canceled, or the page is closed, it returns
// the appropriate error.
func (cl *Client) withBrowserGuard(ctx context.Context, fn func() error) error {
	var errC = make(chan error, 1)
	go func() {
		defer close(errC)
		errC <- fn()
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-cl.pageClosed:
		return ErrBrowserClosed
	case err := <-errC:
		return err
	}
}

func convertCookies(pwc []playwright.Cookie) []*http.Cookie {
	ret := make([]*http.Cookie, 0, len(pwc))
	for _, p := range pwc {
		ret = append(ret, &http.Cookie{
			Name:     p.Name,
			Value:    p.Value,
			Path:     p.Path,
			Domain:   p.Domain,
			Expires:  float2time(p.Expires),
			MaxAge:   0,
			Secure:   p.Secure,
			HttpOnly: p.HttpOnly,
			SameSite: sameSite(p.SameSite),
		})
	}
	return ret
}

// sameSite returns the constant value that maps to the string value of SameSite.
func sameSite(val *playwright.SameSiteAttribute) http.SameSite {
	switch val {
	case playwright.SameSiteAttributeLax:
		return http.SameSiteLaxMode
	case playwright.SameSiteAttributeNone:
		return http.SameSiteNoneMode
	case playwright.SameSiteAttributeStrict:
		return http.SameSiteStrictMode
	default:
		return http.SameSiteDefaultMode
	}
}

// float2time converts a float value of Unix time to time, nanoseconds value
// is discarded.  If v == -1, it returns the date approximately 5 years from
// Now().
func float2time(v float64) time.Time {
	if v == -1.0 {
		return time.Now().Add(5 * 365 * 24 * time.Hour)
	}
	return time.Unix(int64(v), 0)
}

// pwRepair attempts to repair the playwright installation.
func pwRepair(runopts *playwright.RunOptions) error {
	ad, err := newAdapterFn(runopts)
	if err != nil {
		return err
	}
	// check node permissions
	if err := pwIsKnownProblem(ad.DriverDirectory); err != nil {
		return err
	}
	return reinstall(runopts)
}

func reinstall(runopts *playwright.RunOptions) error {
	slog.Debug("reinstalling browser", "browser", runopts.Browsers[0])
	ad, err := newAdapterFn(runopts)
	if err != nil {
		return err
	}
	slog.Debug("removing", "driver_dir", ad.DriverDirectory)
	if err := os.RemoveAll(ad.DriverDirectory); err != nil {
		return err
	}

	// attempt to reinstall
	slog.Debug("reinstalling", "driver_dir", ad.DriverDirectory)
	if err := installFn(runopts); err != nil {
		// we did everything we could, but it still failed.
		return err
	}
	return nil
}

var errUnknownProblem = errors.New("unknown problem")

// pwIsKnownProblem checks if the playwright installation is in a known
// problematic state, and if yes, return nil.  If the problem is unknown,
// returns an errUnknownProblem.
func pwIsKnownProblem(path string) error {
	if runtime.GOOS == "windows" {
		// this should not ever happen on windows, as this problem relates to
		// executable flag not being set, which is not a thing in a
		// DOS/Windows world.
		return errors.New("impossible has just happened, call the exorcist")
	}
	fi, err := os.Stat(filepath.Join(path, "node"))
	if err != nil {
		return err
	}
	// check if the file is executable, and if yes, return an error, because
	// we wouldn't know what to do.
	if fi.Mode()&0o111 != 0 {
		return errUnknownProblem
	}
	return nil
}
