package man

import (
	_ "embed"

	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
)

//go:embed assets/login.md
var loginMD string

var Login = &base.Command{
	UsageLine: "gptok login",
	Short:     "login related information",
	Long:      loginMD,
}
