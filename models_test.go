package gptok

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusq/gptok/internal/backend"
)

const testModelsJSON = `{"models": [{"slug": "text-davinci-002-render-sha", "max_tokens": 4097, "title": "Default (GPT-3.5)", "description": "Our fastest model, great for most everyday tasks.", "tags": ["gpt3.5"]}]}`

func TestSession_Models(t *testing.T) {
	t.Run("returns the models", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/models", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, testModelsJSON)
		}))
		defer srv.Close()

		s := testSession(t, srv)
		got, err := s.Models(context.Background())
		require.NoError(t, err)
		want := []backend.Model{
			{
				Slug:        "text-davinci-002-render-sha",
				MaxTokens:   4097,
				Title:       "Default (GPT-3.5)",
				Description: "Our fastest model, great for most everyday tasks.",
				Tags:        []string{"gpt3.5"},
			},
		}
		assert.Equal(t, want, got)
	})
	t.Run("api error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"detail": "Not found"}`)
		}))
		defer srv.Close()

		s := testSession(t, srv)
		_, err := s.Models(context.Background())
		require.Error(t, err)
		var apiErr *backend.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "Not found", apiErr.Detail)
	})
}
