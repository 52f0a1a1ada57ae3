package auth

import (
	"context"
	"net/http"
	"time"
)

var _ Provider = ValueAuth{}

// ValueAuth stores the session credentials provided by the caller: the
// access token, the session cookie value, or both.
type ValueAuth struct {
	simpleProvider
}

// NewValueAuth creates the provider from the access token and the session
// cookie value.  Either may be empty, but not both.  The access token alone
// is sufficient for the backend API, the session cookie alone allows the
// token to be fetched and refreshed.
func NewValueAuth(token string, sessionToken string) (ValueAuth, error) {
	if token == "" && sessionToken == "" {
		return ValueAuth{}, ErrNoToken
	}
	var cookies []*http.Cookie
	if sessionToken != "" {
		cookies = []*http.Cookie{makeCookie(SessionCookie, sessionToken)}
	}
	return ValueAuth{simpleProvider{
		Token:  token,
		Cookie: cookies,
	}}, nil
}

// NewSessionCookieAuth creates the provider from the session cookie value
// alone, fetching the access token from the live service.
func NewSessionCookieAuth(ctx context.Context, sessionToken string) (ValueAuth, error) {
	si, cookies, err := getTokenBySessionCookie(ctx, sessionToken)
	if err != nil {
		return ValueAuth{}, err
	}
	return ValueAuth{simpleProvider{
		Token:  si.AccessToken,
		Cookie: cookies,
	}}, nil
}

func (ValueAuth) Type() Type {
	return TypeValue
}

func makeCookie(key, val string) *http.Cookie {
	return &http.Cookie{
		Name:     key,
		Value:    val,
		Path:     "/",
		Domain:   Host,
		Expires:  time.Now().AddDate(0, 3, 0),
		Secure:   true,
		HttpOnly: true,
	}
}
