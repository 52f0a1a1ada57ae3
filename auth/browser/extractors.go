package browser

import (
	"encoding/json"
	"errors"
	"regexp"

	"github.com/playwright-community/playwright-go"
)

// tokenRE matches the shape of the access token, which is a JWT.
var tokenRE = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+$`)

var (
	ErrNoToken           = errors.New("no token found")
	ErrInvalidTokenValue = errors.New("invalid token value")
)

// extractToken extracts the access token from the session info response.
func extractToken(r playwright.Response) (string, error) {
	if r == nil {
		return "", errors.New("no response")
	}
	if !r.Ok() {
		return "", errors.New("request failed: " + r.StatusText())
	}
	body, err := r.Body()
	if err != nil {
		return "", err
	}
	return tokenFromSessionInfo(body)
}

// tokenFromSessionInfo extracts the accessToken field from the session info
// JSON document.
func tokenFromSessionInfo(body []byte) (string, error) {
	var si struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(body, &si); err != nil {
		return "", err
	}
	if si.AccessToken == "" {
		return "", ErrNoToken
	}
	if !tokenRE.MatchString(si.AccessToken) {
		return "", ErrInvalidTokenValue
	}
	return si.AccessToken, nil
}
