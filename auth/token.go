package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rusq/gptok/internal/chttp"
)

const (
	// Host is the chat service hostname.
	Host = "chat.openai.com"
	// SessionCookie is the name of the cookie that holds the web session
	// token.
	SessionCookie = "__Secure-next-auth.session-token"
)

// sessionURI is the session info endpoint.  It is a variable to allow
// overriding it in tests.
var sessionURI = "https://" + Host + "/api/auth/session"

// SessionInfo is the response of the session info endpoint for a logged in
// user.  Logged out state is an empty document.
type SessionInfo struct {
	User        User      `json:"user"`
	Expires     time.Time `json:"expires"`
	AccessToken string    `json:"accessToken"`
	Error       string    `json:"error,omitempty"`
}

// User is the user information from the session info.
type User struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Image   string   `json:"image"`
	Picture string   `json:"picture"`
	Groups  []string `json:"groups"`
}

// IsExpired reports whether the session has expired.  Zero expiry means the
// expiry is unknown, and the session is assumed to be alive.
func (si *SessionInfo) IsExpired() bool {
	return !si.Expires.IsZero() && time.Now().After(si.Expires)
}

var ErrTokenExpired = errors.New("access token expired")

// getTokenBySessionCookie fetches the access token given the value of the
// session cookie.  It returns the session info and the complete set of
// cookies to use for subsequent requests.
func getTokenBySessionCookie(ctx context.Context, sessionToken string) (*SessionInfo, []*http.Cookie, error) {
	if sessionToken == "" {
		return nil, nil, ErrNoCookies
	}
	cookies := []*http.Cookie{makeCookie(SessionCookie, sessionToken)}
	cl := chttp.New("https://"+Host, cookies)
	si, err := fetchSessionInfo(ctx, cl)
	if err != nil {
		return nil, nil, err
	}
	if si.AccessToken == "" {
		return nil, nil, ErrNotLoggedIn
	}
	return si, cookies, nil
}

// fetchSessionInfo requests the session info endpoint with the given client
// and decodes the response.
func fetchSessionInfo(ctx context.Context, cl *http.Client) (*SessionInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sessionURI, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := cl.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrNotLoggedIn
	default:
		return nil, fmt.Errorf("request failed with status code %d", resp.StatusCode)
	}
	return ParseSessionInfo(resp.Body)
}

// ParseSessionInfo decodes the session info JSON document from r.
func ParseSessionInfo(r io.Reader) (*SessionInfo, error) {
	var si SessionInfo
	if err := json.NewDecoder(r).Decode(&si); err != nil {
		return nil, fmt.Errorf("not a session info document: %w", err)
	}
	if si.Error != "" {
		return nil, &Error{Msg: si.Error}
	}
	return &si, nil
}

// tokenClaims returns the raw claims document of the access token.  The
// access token is a JWT, but no signature verification takes place.
func tokenClaims(token string) ([]byte, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("not a JWT")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("claims: %w", err)
	}
	return payload, nil
}

// TokenExpiry extracts the expiry time from the access token "exp" claim.
func TokenExpiry(token string) (time.Time, error) {
	payload, err := tokenClaims(token)
	if err != nil {
		return time.Time{}, err
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, fmt.Errorf("claims: %w", err)
	}
	if claims.Exp == 0 {
		return time.Time{}, errors.New("no expiry claim")
	}
	return time.Unix(claims.Exp, 0), nil
}

// ValidateToken checks that the token has the shape of a web session access
// token.  No signature verification takes place.
func ValidateToken(token string) error {
	if !isJWTLike(token) {
		return errors.New("not an access token, expecting a JWT value")
	}
	_, err := tokenClaims(token)
	return err
}

// TokenUser extracts the user email from the access token profile claim.
func TokenUser(token string) (string, error) {
	payload, err := tokenClaims(token)
	if err != nil {
		return "", err
	}
	var claims struct {
		Profile struct {
			Email string `json:"email"`
		} `json:"https://api.openai.com/profile"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", fmt.Errorf("claims: %w", err)
	}
	if claims.Profile.Email == "" {
		return "", errors.New("no profile claim")
	}
	return claims.Profile.Email, nil
}
