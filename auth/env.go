package auth

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// parseDotEnv extracts the credentials from a dotenv-formatted secrets
// file.  It returns the access token and the session cookie value, at least
// one of which will be non-empty on success.
func parseDotEnv(fsys fs.FS, filename string) (string, string, error) {
	const (
		tokenKey   = "OPENAI_ACCESS_TOKEN"
		sessionKey = "OPENAI_SESSION_TOKEN"
	)
	f, err := fsys.Open(filename)
	if err != nil {
		return "", "", err
	}
	defer f.Close()
	secrets, err := godotenv.Parse(f)
	if err != nil {
		return "", "", errors.New("not a secrets file")
	}
	token := secrets[tokenKey]
	session := secrets[sessionKey]
	if token == "" && session == "" {
		return "", "", errors.New("no " + tokenKey + " or " + sessionKey + " found in the file")
	}
	if token != "" && !isJWTLike(token) {
		return "", "", errors.New("invalid " + tokenKey + " value")
	}
	return token, session, nil
}

// ParseDotEnv parses the secrets file and returns the access token and the
// session cookie value.
func ParseDotEnv(filename string) (string, string, error) {
	dir := filepath.Dir(filename)
	dirfs := os.DirFS(dir)
	pth := filepath.Base(filename)
	return parseDotEnv(dirfs, pth)
}

// isJWTLike is a cheap sanity check that s has the shape of a JSON web
// token, it does not validate it.
func isJWTLike(s string) bool {
	if !strings.HasPrefix(s, "eyJ") {
		return false
	}
	return strings.Count(s, ".") == 2 && !strings.ContainsAny(s, " \t\r\n")
}
