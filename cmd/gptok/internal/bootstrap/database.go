package bootstrap

import (
	"context"
	"path/filepath"

	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/internal/chatlog"
)

// Database returns the initialised chat log database open for writing.  The
// database lives in the cache directory alongside the account credentials.
func Database(ctx context.Context) (*chatlog.DB, error) {
	return chatlog.Open(ctx, filepath.Join(cfg.CacheDir(), chatlog.DefFilename))
}
