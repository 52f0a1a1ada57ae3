package chromium

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sethvargo/go-retry"
)

const (
	host       = "chat.openai.com"
	loginURI   = "https://" + host + "/auth/login"
	landingURI = "https://" + host + "/"
	sessionURI = "https://" + host + "/api/auth/session"

	sessionCookie = "__Secure-next-auth.session-token"
)

// auth0 form selectors.  The "Log in" button carries no stable attributes,
// so it is located by its position on the page.
const (
	xpLoginButton = `//*[@id="__next"]/div[1]/div[1]/div[4]/button[1]`
	selUsername   = `#username`
	selPassword   = `#password`
	selAction     = `button[name="action"]`
)

// Login step errors.  Each step of the headless login waits for its page to
// appear, and fails with the corresponding error when it does not.  Any of
// these errors aborts the flow, no further input is attempted.
var (
	ErrLoginPageTimeout    = errors.New("timeout while waiting for login page")
	ErrPasswordPageTimeout = errors.New("timeout while waiting for password page")
	ErrPostLoginTimeout    = errors.New("timeout/invalid credentials")
)

// ErrBrowserClosed is returned when the browser is closed by the user
// before the login completes.
var ErrBrowserClosed = errors.New("browser closed or the connection is lost")

const pollInterval = 200 * time.Millisecond

// Headless logs into the chat service with the given credentials in a
// headless browser and returns the raw session payload along with the
// browser cookies.  The flow is the one the web client uses:  the landing
// page with the "Log in" button, the auth0 email form, the auth0 password
// form, and finally the redirect back to the chat page.  Each step is
// given the step timeout to complete.
func (c *Client) Headless(ctx context.Context, email, password string) (string, []*http.Cookie, error) {
	browser, cleanup, err := c.startBrowser(true)
	if err != nil {
		return "", nil, err
	}
	defer cleanup()

	page, err := c.newPage(browser, loginURI)
	if err != nil {
		return "", nil, err
	}
	if err := page.Context(ctx).WaitLoad(); err != nil {
		return "", nil, fmt.Errorf("login page did not load: %w", err)
	}
	if err := c.clickLogin(ctx, page); err != nil {
		return "", nil, err
	}
	slog.Debug("waiting for the email form")
	user, err := c.waitVisible(ctx, page, selUsername, ErrLoginPageTimeout)
	if err != nil {
		return "", nil, err
	}
	if err := user.Input(email); err != nil {
		return "", nil, fmt.Errorf("email entry: %w", err)
	}
	if err := c.submit(ctx, page); err != nil {
		return "", nil, err
	}
	slog.Debug("waiting for the password form")
	pass, err := c.waitVisible(ctx, page, selPassword, ErrPasswordPageTimeout)
	if err != nil {
		return "", nil, err
	}
	if err := pass.Input(password); err != nil {
		return "", nil, fmt.Errorf("password entry: %w", err)
	}
	if err := c.submit(ctx, page); err != nil {
		return "", nil, err
	}
	slog.Debug("waiting for the redirect back to the chat")
	if err := c.waitURL(ctx, page, landingURI, ErrPostLoginTimeout); err != nil {
		return "", nil, err
	}
	payload, err := c.sessionPayload(ctx, page)
	if err != nil {
		return "", nil, err
	}
	cookies, err := browser.GetCookies()
	if err != nil {
		return "", nil, fmt.Errorf("cookie retrieval: %w", err)
	}
	return payload, convertCookies(cookies), nil
}

// Interactive opens a visible browser on the login page and waits for the
// user to complete the login by hand.  It returns once the session cookie
// appears in the browser.
func (c *Client) Interactive(ctx context.Context) (string, []*http.Cookie, error) {
	browser, cleanup, err := c.startBrowser(false)
	if err != nil {
		return "", nil, err
	}
	defer cleanup()

	if _, err := c.newPage(browser, loginURI); err != nil {
		return "", nil, err
	}
	if err := c.waitCookie(ctx, browser, sessionCookie); err != nil {
		return "", nil, err
	}
	// the login tab may have been closed by the user, fetch the session
	// payload on a fresh one.
	page, err := c.newPage(browser, sessionURI)
	if err != nil {
		return "", nil, err
	}
	payload, err := c.preText(ctx, page)
	if err != nil {
		return "", nil, err
	}
	cookies, err := browser.GetCookies()
	if err != nil {
		return "", nil, fmt.Errorf("cookie retrieval: %w", err)
	}
	return payload, convertCookies(cookies), nil
}

// clickLogin clicks the login button on the landing page.  The page
// hydrates in stages and the button may detach between locating it and
// clicking, so the click is retried.
func (c *Client) clickLogin(ctx context.Context, page *rod.Page) error {
	ctx, cancel := context.WithTimeout(ctx, c.stepTimeout)
	defer cancel()
	b := retry.WithMaxRetries(3, retry.NewConstant(500*time.Millisecond))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		el, err := page.Context(ctx).ElementX(xpLoginButton)
		if err != nil {
			return err
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("login button: %w", err)
	}
	return nil
}

// waitVisible waits for the element to appear and become visible within
// the step timeout, returning stageErr if it does not.
func (c *Client) waitVisible(ctx context.Context, page *rod.Page, sel string, stageErr error) (*rod.Element, error) {
	ctx, cancel := context.WithTimeout(ctx, c.stepTimeout)
	defer cancel()
	el, err := page.Context(ctx).Element(sel)
	if err == nil {
		err = el.WaitVisible()
	}
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, stageErr
		}
		return nil, fmt.Errorf("wait for %q: %w", sel, err)
	}
	return el, nil
}

// submit clicks the form submit button.
func (c *Client) submit(ctx context.Context, page *rod.Page) error {
	ctx, cancel := context.WithTimeout(ctx, c.stepTimeout)
	defer cancel()
	el, err := page.Context(ctx).Element(selAction)
	if err != nil {
		return fmt.Errorf("submit button: %w", err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return nil
}

// waitURL polls the page until its URL matches uri, returning stageErr on
// the step timeout.
func (c *Client) waitURL(ctx context.Context, page *rod.Page, uri string, stageErr error) error {
	ctx, cancel := context.WithTimeout(ctx, c.stepTimeout)
	defer cancel()
	t := time.NewTicker(pollInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return stageErr
			}
			return ctx.Err()
		case <-t.C:
			info, err := page.Info()
			if err != nil {
				// transient while the page navigates
				continue
			}
			if normalizeURL(info.URL) == normalizeURL(uri) {
				return nil
			}
		}
	}
}

// waitCookie polls the browser until the named cookie appears.
func (c *Client) waitCookie(ctx context.Context, browser *rod.Browser, name string) error {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			cc, err := browser.GetCookies()
			if err != nil {
				return ErrBrowserClosed
			}
			for _, c := range cc {
				if c.Name == name && c.Value != "" {
					return nil
				}
			}
		}
	}
}

// sessionPayload navigates the page to the session endpoint and returns
// the payload text.
func (c *Client) sessionPayload(ctx context.Context, page *rod.Page) (string, error) {
	if err := page.Context(ctx).Navigate(sessionURI); err != nil {
		return "", fmt.Errorf("session endpoint: %w", err)
	}
	return c.preText(ctx, page)
}

// preText returns the text of the preformatted block that the session
// endpoint renders its JSON response in.
func (c *Client) preText(ctx context.Context, page *rod.Page) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.stepTimeout)
	defer cancel()
	el, err := page.Context(ctx).Element("pre")
	if err != nil {
		return "", fmt.Errorf("no session payload on the page: %w", err)
	}
	txt, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("session payload: %w", err)
	}
	return txt, nil
}

func normalizeURL(s string) string {
	return strings.TrimSuffix(s, "/")
}
