// Package auth provides the authentication providers for the OpenAI chat
// web application.  A provider holds the web session credentials: the
// bearer access token and the session cookies that the service sets for a
// logged in browser.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rusq/gptok/internal/chttp"
)

// Type is the auth type.
//
//go:generate stringer -type Type -trimprefix Type
type Type uint8

// All supported auth types.
const (
	TypeInvalid Type = iota
	TypeValue
	TypeCookieFile
	TypeBrowser
	TypeRod
)

// Provider is the authentication provider.
type Provider interface {
	// AccessToken should return the bearer token for the backend API.
	AccessToken() string
	// Cookies should return the set of session cookies.
	Cookies() []*http.Cookie
	// Type returns the auth type.
	Type() Type
	// Validate should return error, in case the token or cookies cannot be
	// retrieved.
	Validate() error
	// Test checks the credentials against the live service and returns the
	// session info on success.
	Test(ctx context.Context) (*SessionInfo, error)
	// HTTPClient returns an authenticated HTTP client with the browser
	// fingerprint.
	HTTPClient() (*http.Client, error)
}

var (
	ErrNoToken     = errors.New("no token")
	ErrNoCookies   = errors.New("no cookies")
	ErrNotLoggedIn = errors.New("no active session")
	ErrCancelled   = errors.New("authentication cancelled")
)

type simpleProvider struct {
	Token  string         `json:"token"`
	Cookie []*http.Cookie `json:"cookies"`
}

func (c simpleProvider) Validate() error {
	if c.Token == "" && len(c.Cookie) == 0 {
		return ErrNoToken
	}
	return nil
}

func (c simpleProvider) AccessToken() string {
	return c.Token
}

func (c simpleProvider) Cookies() []*http.Cookie {
	return c.Cookie
}

func (c simpleProvider) HTTPClient() (*http.Client, error) {
	return chttp.New("https://"+Host, c.Cookie), nil
}

func (c simpleProvider) Test(ctx context.Context) (*SessionInfo, error) {
	if len(c.Cookie) > 0 {
		cl, err := c.HTTPClient()
		if err != nil {
			return nil, &Error{Err: err}
		}
		si, err := fetchSessionInfo(ctx, cl)
		if err != nil {
			return nil, &Error{Err: err}
		}
		if si.AccessToken == "" && c.Token == "" {
			return nil, &Error{Err: ErrNotLoggedIn}
		}
		if si.AccessToken == "" {
			si.AccessToken = c.Token
		}
		return si, nil
	}
	// cookieless provider, the best we can do is check the token expiry
	// offline.
	if c.Token == "" {
		return nil, &Error{Err: ErrNoToken}
	}
	si := &SessionInfo{AccessToken: c.Token}
	if exp, err := TokenExpiry(c.Token); err == nil {
		si.Expires = exp
		if si.IsExpired() {
			return nil, &Error{Err: ErrTokenExpired}
		}
	}
	return si, nil
}

// Load deserialises JSON data from reader and returns a ValueAuth, that can
// be used to authenticate the session.  It will return ErrNoToken if the
// authentication information is missing.
func Load(r io.Reader) (ValueAuth, error) {
	dec := json.NewDecoder(r)
	var s simpleProvider
	if err := dec.Decode(&s); err != nil {
		return ValueAuth{}, err
	}
	return ValueAuth{s}, s.Validate()
}

// Save serialises authentication information to writer.  It will return
// ErrNoToken if provider fails validation.
func Save(w io.Writer, p Provider) error {
	if err := p.Validate(); err != nil {
		return err
	}

	var s = simpleProvider{
		Token:  p.AccessToken(),
		Cookie: p.Cookies(),
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(s); err != nil {
		return err
	}

	return nil
}
