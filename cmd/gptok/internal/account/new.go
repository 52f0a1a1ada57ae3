package account

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/auth/browser"
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
	"github.com/rusq/gptok/internal/cache"
	"github.com/rusq/gptok/internal/chromium"
)

//go:embed assets/new.md
var newMD string

var CmdNew = &base.Command{
	UsageLine:  baseCommand + " new [flags] [name]",
	Short:      "authenticate in an OpenAI account",
	Long:       newMD,
	FlagMask:   flagmask &^ cfg.OmitAuthFlags, // auth values and the cache flags.
	PrintFlags: true,
}

var newParams = struct {
	confirm      bool
	browser      browser.Browser
	loginTimeout time.Duration
	stepTimeout  time.Duration
	userAgent    string
}{
	browser: browser.Bfirefox,
}

func init() {
	CmdNew.Flag.BoolVar(&newParams.confirm, "y", false, "answer yes to all questions")
	CmdNew.Flag.Var(&newParams.browser, "browser", "playwright `browser` to use, if -legacy-browser is set (firefox or chromium)")
	CmdNew.Flag.DurationVar(&newParams.loginTimeout, "login-timeout", browser.DefLoginTimeout, "playwright login `timeout`")
	CmdNew.Flag.DurationVar(&newParams.stepTimeout, "step-timeout", chromium.DefStepTimeout, "headless login wait `timeout` for each page")
	CmdNew.Flag.StringVar(&newParams.userAgent, "user-agent", "", "user agent `string` for the headless browser")

	CmdNew.Run = runNew
}

// runNew authenticates in the new account.
func runNew(ctx context.Context, cmd *base.Command, args []string) error {
	m, err := CacheMgr(
		cache.WithAuthOpts(
			auth.BrowserWithBrowser(newParams.browser),
			auth.BrowserWithTimeout(newParams.loginTimeout),
			auth.RODWithStepTimeout(newParams.stepTimeout),
			auth.RODWithUserAgent(newParams.userAgent),
		))
	if err != nil {
		base.SetExitStatus(base.SCacheError)
		return fmt.Errorf("error initialising the account manager: %s", err)
	}

	acc := argsAccount(args, cfg.Account)

	return createAcc(ctx, m, acc, newParams.confirm)
}

// canOverwrite defined as a variable for testing purposes.
var canOverwrite = func(acc string) bool {
	return yesno(fmt.Sprintf("Account %q already exists. Overwrite", realname(acc)))
}

// createAcc creates a new account interactively.
func createAcc(ctx context.Context, m manager, acc string, confirm bool) error {
	lg := cfg.Log
	if m.Exists(realname(acc)) {
		if !confirm && !canOverwrite(acc) {
			base.SetExitStatus(base.SCancelled)
			return ErrOpCancelled
		}
		if err := m.Delete(realname(acc)); err != nil {
			base.SetExitStatus(base.SApplicationError)
			return err
		}
	}

	lg.DebugContext(ctx, "requesting authentication...")
	creds := cache.GPTCreds{
		Token:         cfg.Token,
		Cookie:        cfg.Cookie,
		UsePlaywright: cfg.LegacyBrowser,
	}
	start := time.Now()
	prov, err := m.Auth(ctx, acc, creds)
	if err != nil {
		if errors.Is(err, auth.ErrCancelled) {
			base.SetExitStatus(base.SCancelled)
			lg.WarnContext(ctx, auth.ErrCancelled.Error())
			return ErrOpCancelled
		}
		base.SetExitStatus(base.SAuthError)
		return err
	}

	lg.Debug("selecting as current...", "account", realname(acc))
	if err := m.Select(realname(acc)); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return fmt.Errorf("failed to select the account: %s", err)
	}
	fmt.Fprintf(os.Stdout, "Success:  added account %q (authenticated in %s)\n", realname(acc), time.Since(start).Round(time.Millisecond))
	lg.DebugContext(ctx, "account type", "account", realname(acc), "type", fmt.Sprintf("%T", prov))
	return nil
}

// realname returns the sanitised name of the account, replacing the empty
// string with "default".  Empty account name is possible if the user
// hasn't specified the account name on the command line.
func realname(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "default"
	}
	return name
}
