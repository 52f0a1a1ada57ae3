package account

import (
	"context"
	_ "embed"
	"errors"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
)

//go:embed assets/import.md
var importMD string

var CmdImport = &base.Command{
	UsageLine:   baseCommand + " import [flags] <filename>",
	Short:       "import credentials from a cookies.txt, .env or secrets.txt file",
	Long:        importMD,
	FlagMask:    flagmask,
	PrintFlags:  true,
	Run:         runImport,
	RequireAuth: false,
}

func runImport(ctx context.Context, cmd *base.Command, args []string) error {
	if len(args) != 1 {
		base.SetExitStatus(base.SInvalidParameters)
		return errors.New("missing filename")
	}

	return importFile(ctx, args[0])
}

func importFile(ctx context.Context, filename string) error {
	prov, err := providerFromFile(filename)
	if err != nil {
		base.SetExitStatus(base.SUserError)
		return err
	}
	m, err := CacheMgr()
	if err != nil {
		base.SetExitStatus(base.SCacheError)
		return err
	}
	name, err := m.CreateAndSelect(ctx, prov)
	if err != nil {
		base.SetExitStatus(base.SCacheError)
		return err
	}
	cfg.Log.InfoContext(ctx, "Account added and selected", "account", name)
	cfg.Log.InfoContext(ctx, "It is advised that you delete the file", "filename", filename)

	return nil
}

// providerFromFile creates the provider from a secrets file or a Mozilla
// cookies.txt file.  The secrets format is tried first, as the cookies.txt
// parser is lax about what it accepts.
func providerFromFile(filename string) (auth.Provider, error) {
	if token, session, err := auth.ParseDotEnv(filename); err == nil {
		return auth.NewValueAuth(token, session)
	}
	return auth.NewCookieFileAuth("", filename)
}
