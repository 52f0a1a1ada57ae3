package account

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/internal/fixtures"
)

const fixtureCookiesTxt = `# Netscape HTTP Cookie File
.openai.com	TRUE	/	TRUE	1999999999	__Secure-next-auth.session-token	blah
.openai.com	TRUE	/	TRUE	1999999999	_cfuvid	spam
.example.com	TRUE	/	FALSE	1999999999	unrelated	eggs
`

func Test_providerFromFile(t *testing.T) {
	dir := t.TempDir()
	writeFile := func(name, contents string) string {
		t.Helper()
		pth := filepath.Join(dir, name)
		if err := os.WriteFile(pth, []byte(contents), 0o600); err != nil {
			t.Fatal(err)
		}
		return pth
	}

	t.Run("dotenv with token", func(t *testing.T) {
		tok := fixtures.TestAccessToken
		pth := writeFile(".env", "OPENAI_ACCESS_TOKEN="+tok+"\n")
		prov, err := providerFromFile(pth)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, auth.TypeValue, prov.Type())
		assert.Equal(t, tok, prov.AccessToken())
	})
	t.Run("dotenv with session cookie", func(t *testing.T) {
		pth := writeFile("secrets.txt", "OPENAI_SESSION_TOKEN=blah\n")
		prov, err := providerFromFile(pth)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, auth.TypeValue, prov.Type())
		if assert.Len(t, prov.Cookies(), 1) {
			assert.Equal(t, auth.SessionCookie, prov.Cookies()[0].Name)
		}
	})
	t.Run("mozilla cookies", func(t *testing.T) {
		pth := writeFile("cookies.txt", fixtureCookiesTxt)
		prov, err := providerFromFile(pth)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, auth.TypeCookieFile, prov.Type())
		// only the service domain cookies are kept
		assert.Len(t, prov.Cookies(), 2)
	})
	t.Run("cookies for another domain", func(t *testing.T) {
		pth := writeFile("others.txt", "# Netscape HTTP Cookie File\n.example.com\tTRUE\t/\tFALSE\t1999999999\tunrelated\teggs\n")
		_, err := providerFromFile(pth)
		assert.Error(t, err)
	})
	t.Run("no file", func(t *testing.T) {
		_, err := providerFromFile(filepath.Join(dir, "does-not-exist"))
		assert.Error(t, err)
	})
}
