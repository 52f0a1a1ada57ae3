package chromium

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBrowser creates a fake browser binary and returns its path.
func fakeBrowser(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "chromium")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return bin
}

func TestNew(t *testing.T) {
	t.Run("explicit browser path", func(t *testing.T) {
		bin := fakeBrowser(t)
		c, err := New(WithBrowserPath(bin))
		require.NoError(t, err)
		assert.Equal(t, bin, c.browserPath)
		assert.Equal(t, DefStepTimeout, c.stepTimeout)
	})
	t.Run("missing browser path", func(t *testing.T) {
		_, err := New(WithBrowserPath(filepath.Join(t.TempDir(), "nonexistent")))
		assert.ErrorIs(t, err, ErrNoBrowser)
	})
	t.Run("options are applied", func(t *testing.T) {
		bin := fakeBrowser(t)
		c, err := New(
			WithBrowserPath(bin),
			WithStepTimeout(5*time.Second),
			WithUserAgent("test-agent"),
			WithUserDataDir("/tmp/profile"),
		)
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, c.stepTimeout)
		assert.Equal(t, "test-agent", c.userAgent)
		assert.Equal(t, "/tmp/profile", c.userDataDir)
	})
}

func Test_options(t *testing.T) {
	t.Run("zero values are ignored", func(t *testing.T) {
		c := Client{
			stepTimeout: DefStepTimeout,
			userAgent:   "ua",
			browserPath: "/bin/true",
			userDataDir: "/tmp/d",
		}
		for _, o := range []Option{
			WithStepTimeout(0),
			WithStepTimeout(-time.Second),
			WithUserAgent(""),
			WithBrowserPath(""),
			WithUserDataDir(""),
		} {
			o(&c)
		}
		assert.Equal(t, DefStepTimeout, c.stepTimeout)
		assert.Equal(t, "ua", c.userAgent)
		assert.Equal(t, "/bin/true", c.browserPath)
		assert.Equal(t, "/tmp/d", c.userDataDir)
	})
}

func Test_resolveBin(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		bin := fakeBrowser(t)
		c := Client{browserPath: bin}
		got, err := c.resolveBin()
		require.NoError(t, err)
		assert.Equal(t, bin, got)
	})
	t.Run("explicit path must exist", func(t *testing.T) {
		c := Client{browserPath: filepath.Join(t.TempDir(), "gone")}
		_, err := c.resolveBin()
		assert.ErrorIs(t, err, ErrNoBrowser)
	})
}

func Test_convertCookies(t *testing.T) {
	expires := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	cc := []*proto.NetworkCookie{
		{
			Name:     "__Secure-next-auth.session-token",
			Value:    "xxx",
			Domain:   "chat.openai.com",
			Path:     "/",
			Expires:  proto.TimeSinceEpoch(expires.Unix()),
			Secure:   true,
			HTTPOnly: true,
			SameSite: proto.NetworkCookieSameSiteLax,
		},
		{
			Name:    "session",
			Value:   "yyy",
			Domain:  "openai.com",
			Path:    "/",
			Expires: -1,
		},
	}
	got := convertCookies(cc)
	require.Len(t, got, 2)
	assert.Equal(t, &http.Cookie{
		Name:     "__Secure-next-auth.session-token",
		Value:    "xxx",
		Domain:   "chat.openai.com",
		Path:     "/",
		Expires:  expires.Local(),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, got[0])
	// session cookies get an expiry far in the future
	assert.True(t, got[1].Expires.After(time.Now().Add(4*365*24*time.Hour)))
}

func Test_float2time(t *testing.T) {
	type args struct {
		v float64
	}
	tests := []struct {
		name string
		args args
		want time.Time
	}{
		{"unix time", args{1683237150.0}, time.Unix(1683237150, 0)},
		{"zero", args{0}, time.Unix(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, float2time(tt.args.v))
		})
	}
	t.Run("minus one is about five years from now", func(t *testing.T) {
		got := float2time(-1.0)
		assert.True(t, got.After(time.Now().Add(4*365*24*time.Hour)))
	})
}

func Test_sameSite(t *testing.T) {
	type args struct {
		val proto.NetworkCookieSameSite
	}
	tests := []struct {
		name string
		args args
		want http.SameSite
	}{
		{"lax", args{proto.NetworkCookieSameSiteLax}, http.SameSiteLaxMode},
		{"none", args{proto.NetworkCookieSameSiteNone}, http.SameSiteNoneMode},
		{"strict", args{proto.NetworkCookieSameSiteStrict}, http.SameSiteStrictMode},
		{"empty", args{""}, http.SameSiteDefaultMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sameSite(tt.args.val))
		})
	}
}
