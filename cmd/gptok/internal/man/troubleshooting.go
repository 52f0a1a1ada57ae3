package man

import (
	_ "embed"

	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
)

//go:embed assets/troubleshooting.md
var troubleshootingMD string

var Troubleshooting = &base.Command{
	UsageLine: "gptok troubleshooting",
	Short:     "what to check when the login or the API calls fail",
	Long:      troubleshootingMD,
}
