// Package chromium drives a managed Chromium instance over the DevTools
// protocol to log into the chat service and harvest the web session
// credentials.
//
// The package never downloads the browser by itself: if no usable Chromium
// is found, it fails with ErrNoBrowser, and the caller is expected to run
// the explicit install step (see [Install]).
package chromium

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefStepTimeout is the default wait time for each login step: the login
// page, the password page, and the authenticated landing page.
const DefStepTimeout = 20 * time.Second

// ErrNoBrowser is returned when no usable browser binary is found on the
// system.
var ErrNoBrowser = errors.New("no chromium browser found")

// Client is the Chromium session client.
type Client struct {
	stepTimeout time.Duration
	userAgent   string
	browserPath string
	userDataDir string
}

type Option func(*Client)

// WithStepTimeout sets the wait time for each login step.
func WithStepTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			return
		}
		c.stepTimeout = d
	}
}

// WithUserAgent overrides the browser user agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithBrowserPath uses the browser binary at the given path instead of the
// managed or system one.
func WithBrowserPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.browserPath = path
		}
	}
}

// WithUserDataDir sets the browser profile directory.  By default the
// browser starts with a throwaway profile.
func WithUserDataDir(dir string) Option {
	return func(c *Client) {
		if dir != "" {
			c.userDataDir = dir
		}
	}
}

// New returns a new Chromium client.  It verifies that a browser binary is
// available, but does not start it yet.
func New(opt ...Option) (*Client, error) {
	c := &Client{
		stepTimeout: DefStepTimeout,
	}
	for _, o := range opt {
		o(c)
	}
	if _, err := c.resolveBin(); err != nil {
		return nil, err
	}
	return c, nil
}

// resolveBin locates the browser binary: the explicit path, then the
// system browser, then the managed one.
func (c *Client) resolveBin() (string, error) {
	if c.browserPath != "" {
		if _, err := os.Stat(c.browserPath); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNoBrowser, c.browserPath)
		}
		return c.browserPath, nil
	}
	if path, ok := launcher.LookPath(); ok {
		return path, nil
	}
	if path, ok := Installed(); ok {
		return path, nil
	}
	return "", ErrNoBrowser
}

// Installed returns the path to the managed browser, if it has been
// downloaded.
func Installed() (string, bool) {
	b := launcher.NewBrowser()
	path := b.BinPath()
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// Install downloads the managed browser at the pinned revision.  This is
// the only place where the download happens, and it must be invoked
// explicitly by the caller.
func Install() (string, error) {
	b := launcher.NewBrowser()
	path, err := b.Get()
	if err != nil {
		return "", fmt.Errorf("browser download failed: %w", err)
	}
	return path, nil
}

// Uninstall removes the managed browser.
func Uninstall() error {
	b := launcher.NewBrowser()
	return os.RemoveAll(b.Dir())
}

// startBrowser launches the browser and connects to it.  The returned
// cleanup function closes the connection and kills the browser process.
func (c *Client) startBrowser(headless bool) (*rod.Browser, func(), error) {
	bin, err := c.resolveBin()
	if err != nil {
		return nil, nil, err
	}
	l := launcher.New().
		Bin(bin).
		Headless(headless).
		Set("disable-blink-features", "AutomationControlled")
	if c.userDataDir != "" {
		l = l.UserDataDir(c.userDataDir)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to launch the browser: %w", err)
	}
	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("failed to connect to the browser: %w", err)
	}
	cleanup := func() {
		_ = browser.Close()
		l.Kill()
	}
	return browser, cleanup, nil
}

// newPage opens uri in a new page, applying the user agent override.
func (c *Client) newPage(browser *rod.Browser, uri string) (*rod.Page, error) {
	page, err := browser.Page(proto.TargetCreateTarget{URL: uri})
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: c.userAgent}); err != nil {
			return nil, err
		}
	}
	return page, nil
}

// convertCookies converts the devtools protocol cookies to the stdlib
// ones.
func convertCookies(cc []*proto.NetworkCookie) []*http.Cookie {
	ret := make([]*http.Cookie, 0, len(cc))
	for _, c := range cc {
		ret = append(ret, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  float2time(float64(c.Expires)),
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
			SameSite: sameSite(c.SameSite),
		})
	}
	return ret
}

// float2time converts a float value of Unix time to time, nanoseconds
// value is discarded.  If v == -1, it returns the date approximately 5
// years from Now().
func float2time(v float64) time.Time {
	if v == -1.0 {
		return time.Now().Add(5 * 365 * 24 * time.Hour)
	}
	return time.Unix(int64(v), 0)
}

func sameSite(val proto.NetworkCookieSameSite) http.SameSite {
	switch val {
	case proto.NetworkCookieSameSiteLax:
		return http.SameSiteLaxMode
	case proto.NetworkCookieSameSiteNone:
		return http.SameSiteNoneMode
	case proto.NetworkCookieSameSiteStrict:
		return http.SameSiteStrictMode
	default:
		return http.SameSiteDefaultMode
	}
}
