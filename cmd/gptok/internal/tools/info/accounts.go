package info

import (
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/internal/cache"
)

type Accounts struct {
	Path       string `json:"path"`
	HasCurrent bool   `json:"has_current"`
	Count      int    `json:"count"`
}

func (inf *Accounts) collect(replaceFn PathReplFunc) {
	inf.Path = replaceFn(cfg.CacheDir())
	inf.Count = -1
	m, err := cache.NewManager(cfg.CacheDir())
	if err != nil {
		inf.Path = loser(err)
		return
	}
	if _, err := m.Current(); err == nil {
		inf.HasCurrent = true
	}
	accs, err := m.List()
	if err == nil {
		inf.Count = len(accs)
	}
}
