package info

import (
	"os"

	"github.com/go-rod/rod/lib/launcher"
)

type ChromiumInfo struct {
	Path     string   `json:"path"`
	System   string   `json:"system"`
	Browsers []string `json:"browsers"`
}

func (inf *ChromiumInfo) collect(replaceFn PathReplFunc) {
	inf.Path = replaceFn(launcher.DefaultBrowserDir)
	if path, ok := launcher.LookPath(); ok {
		inf.System = replaceFn(path)
	}
	if de, err := os.ReadDir(launcher.DefaultBrowserDir); err == nil {
		inf.Browsers = dirnames(de)
	} else {
		inf.Browsers = []string{loser(err)}
	}
}
