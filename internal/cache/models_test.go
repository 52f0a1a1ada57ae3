package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusq/gptok/internal/backend"
)

func TestManager_Models(t *testing.T) {
	m := &Manager{dir: t.TempDir()}
	models := []backend.Model{
		{Slug: "text-davinci-002-render-sha", Title: "Default (GPT-3.5)", MaxTokens: 4097},
		{Slug: "gpt-4", Title: "GPT-4", MaxTokens: 4095},
	}
	require.NoError(t, m.SaveModels("default", models))

	t.Run("round trip", func(t *testing.T) {
		got, err := m.LoadModels("default", DefModelAge)
		require.NoError(t, err)
		assert.Equal(t, models, got)
	})
	t.Run("unknown account", func(t *testing.T) {
		_, err := m.LoadModels("other", DefModelAge)
		assert.Error(t, err)
	})
}
