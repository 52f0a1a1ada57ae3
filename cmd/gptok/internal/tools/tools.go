package tools

import (
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
)

// CmdTools is the umbrella for maintenance and diagnostic tools.
var CmdTools = &base.Command{
	Run:       nil,
	UsageLine: "gptok tools",
	Short:     "maintenance and diagnostic tools",
	Long: `
# Tools

Tools command contains different tools, running which may be requested if you
open an issue on Github.
`,
	CustomFlags: false,
	FlagMask:    0,
	PrintFlags:  false,
	RequireAuth: false,
	Commands: []*base.Command{
		cmdEncrypt,
		cmdEzTest,
		cmdInfo,
		cmdInstall,
		cmdUninstall,
	},
}
