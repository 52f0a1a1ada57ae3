package auth

import (
	"strings"

	cookiemonster "github.com/MercuryEngineering/CookieMonster"
)

var _ Provider = CookieFileAuth{}

type CookieFileAuth struct {
	simpleProvider
}

// NewCookieFileAuth creates new auth provider from the Mozilla cookie file,
// exported from a browser with a logged in session.  Only the cookies for
// the service domain are kept.  The token is optional, when empty it is
// fetched with the session cookie on Test.
func NewCookieFileAuth(token string, cookieFile string) (CookieFileAuth, error) {
	ptrCookies, err := cookiemonster.ParseFile(cookieFile)
	if err != nil {
		return CookieFileAuth{}, err
	}
	var found bool
	fc := CookieFileAuth{simpleProvider{Token: token}}
	for _, c := range ptrCookies {
		if !strings.HasSuffix(c.Domain, "openai.com") {
			continue
		}
		if c.Name == SessionCookie {
			found = true
		}
		fc.Cookie = append(fc.Cookie, c)
	}
	if !found {
		return CookieFileAuth{}, &Error{Err: ErrNoCookies, Msg: "no " + SessionCookie + " cookie in " + cookieFile}
	}
	return fc, nil
}

func (CookieFileAuth) Type() Type {
	return TypeCookieFile
}
