package updater

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdater_Latest(t *testing.T) {
	t.Run("returns the latest release", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"tag_name":"v1.2.3","published_at":"2026-08-01T10:00:00Z","body":"notes","prerelease":false,"draft":false}]`))
		}))
		defer srv.Close()

		rel, err := New(WithURL(srv.URL), WithClient(srv.Client())).Latest(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "v1.2.3", rel.Version)
		assert.Equal(t, "notes", rel.Notes)
		assert.True(t, rel.IsStable)
	})
	t.Run("draft releases do not count", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"tag_name":"v1.2.4","draft":true}]`))
		}))
		defer srv.Close()

		_, err := New(WithURL(srv.URL)).Latest(t.Context())
		assert.ErrorIs(t, err, ErrNoNewReleases)
	})
	t.Run("empty feed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		_, err := New(WithURL(srv.URL)).Latest(t.Context())
		assert.ErrorIs(t, err, ErrNoVersions)
	})
	t.Run("invalid tag", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"tag_name":"latest"}]`))
		}))
		defer srv.Close()

		_, err := New(WithURL(srv.URL)).Latest(t.Context())
		assert.ErrorIs(t, err, ErrNoVersions)
	})
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "oops", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := New(WithURL(srv.URL)).Latest(t.Context())
		if !errors.Is(err, ErrStatus) {
			t.Errorf("Latest() error = %v, want %v", err, ErrStatus)
		}
	})
}

func TestRelease_IsNewer(t *testing.T) {
	type args struct {
		current string
	}
	tests := []struct {
		name    string
		release Release
		args    args
		want    bool
	}{
		{"newer", Release{Version: "v1.1.0"}, args{"v1.0.0"}, true},
		{"older", Release{Version: "v1.0.0"}, args{"v1.1.0"}, false},
		{"same", Release{Version: "v1.1.0"}, args{"v1.1.0"}, false},
		{"no v prefix", Release{Version: "v1.1.0"}, args{"1.0.0"}, true},
		{"dev build", Release{Version: "v1.1.0"}, args{"dev"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.release.IsNewer(tt.args.current); got != tt.want {
				t.Errorf("IsNewer() = %v, want %v", got, tt.want)
			}
		})
	}
}
