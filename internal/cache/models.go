package cache

import (
	"time"

	"github.com/rusq/gptok/internal/backend"
)

const modelsFile = "models.cache"

// DefModelAge is the default validity period of the cached model list.
const DefModelAge = 8 * time.Hour

// LoadModels loads the cached model list for the account.  It returns an
// error if the cache is missing or older than maxAge.
func (m *Manager) LoadModels(account string, maxAge time.Duration) ([]backend.Model, error) {
	return load[backend.Model](m.dir, modelsFile, account, maxAge, m.createOpener())
}

// SaveModels saves the model list for the account.
func (m *Manager) SaveModels(account string, mm []backend.Model) error {
	return save(m.dir, modelsFile, account, mm, m.createOpener())
}
