package token

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/internal/fixtures"
)

func Test_printToken(t *testing.T) {
	t.Run("prints the token", func(t *testing.T) {
		prov, err := auth.NewValueAuth(fixtures.TestAccessToken, "")
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		assert.NoError(t, printToken(&buf, prov))
		assert.Equal(t, fixtures.TestAccessToken+"\n", buf.String())
	})
	t.Run("cookie only account has no token", func(t *testing.T) {
		prov, err := auth.NewValueAuth("", "x-cookie-value")
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		assert.ErrorIs(t, printToken(&buf, prov), auth.ErrNoToken)
		assert.Empty(t, buf.String())
	})
}

func Test_printSession(t *testing.T) {
	t.Run("cookieless session info", func(t *testing.T) {
		prov, err := auth.NewValueAuth(fixtures.TestAccessToken, "")
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := printSession(t.Context(), &buf, prov); err != nil {
			t.Fatal(err)
		}
		var si auth.SessionInfo
		if err := json.Unmarshal(buf.Bytes(), &si); err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, fixtures.TestAccessToken, si.AccessToken)
		assert.False(t, si.IsExpired())
	})
	t.Run("expired token", func(t *testing.T) {
		prov, err := auth.NewValueAuth(fixtures.TestJWT(t, time.Now().Add(-time.Hour)), "")
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		err = printSession(t.Context(), &buf, prov)
		assert.ErrorIs(t, err, auth.ErrTokenExpired)
	})
}
