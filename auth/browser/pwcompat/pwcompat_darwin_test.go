//go:build darwin

package pwcompat

import (
	"os"
	"path/filepath"
	"testing"
)

func Test_cacheDir(t *testing.T) {
	t.Parallel()
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, "Library", "Caches"); cacheDir != want {
		t.Errorf("cacheDir = %v, want %v", cacheDir, want)
	}
}
