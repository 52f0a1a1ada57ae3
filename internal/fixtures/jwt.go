// Package fixtures contains test fixtures shared between packages.
package fixtures

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"
)

const (
	// TestUserEmail is the email of the test account owner.
	TestUserEmail = "spam@example.com"

	// TestAccessToken is an unsigned access token with the profile claim
	// of [TestUserEmail], expiring on 2077-10-23.
	TestAccessToken = "eyJhbGciOiJub25lIn0.eyJleHAiOjM0MDIyMDUyMDAsImh0dHBzOi8vYXBpLm9wZW5haS5jb20vcHJvZmlsZSI6eyJlbWFpbCI6InNwYW1AZXhhbXBsZS5jb20ifX0.x"
)

// TestJWT returns an unsigned JWT with the given expiry claim.
func TestJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	return jwt(t, map[string]any{"exp": exp.Unix()})
}

// ClaimsJWT returns an unsigned JWT with the profile email and the expiry
// claims, mimicking the real access token.
func ClaimsJWT(t *testing.T, email string, exp time.Time) string {
	t.Helper()
	return jwt(t, map[string]any{
		"exp":                            exp.Unix(),
		"https://api.openai.com/profile": map[string]string{"email": email},
	})
}

func jwt(t *testing.T, claims map[string]any) string {
	t.Helper()
	enc := func(v any) string {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		return base64.RawURLEncoding.EncodeToString(b)
	}
	return enc(map[string]string{"alg": "none"}) + "." + enc(claims) + ".x"
}
