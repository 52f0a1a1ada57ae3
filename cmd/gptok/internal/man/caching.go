package man

import (
	_ "embed"

	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
)

//go:embed assets/caching.md
var cachingMD string

var Caching = &base.Command{
	UsageLine: "gptok caching",
	Short:     "how gptok caches credentials, tokens and conversations",
	Long:      cachingMD,
}
