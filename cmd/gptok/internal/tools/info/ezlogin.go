package info

import (
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/internal/cache"
	"github.com/rusq/gptok/internal/primitive"
)

type EZLogin struct {
	Flags  map[string]bool `json:"flags"`
	Engine string          `json:"engine"`
}

func (inf *EZLogin) collect(PathReplFunc) {
	inf.Flags = cache.EzLoginFlags()
	inf.Engine = primitive.IfTrue(cfg.LegacyBrowser, "playwright", "rod")
}
