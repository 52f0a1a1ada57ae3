// Package accountui contains the interactive account login wizard.  It is
// shown when the user runs an authenticated command with no accounts saved,
// and lets them choose between the browser login and the manual credential
// entry methods.
package accountui

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/cmd/gptok/internal/account"
	"github.com/rusq/gptok/cmd/gptok/internal/ui"
	"github.com/rusq/gptok/internal/osext"
)

type manager interface {
	CreateAndSelect(ctx context.Context, p auth.Provider) (string, error)
}

type options struct {
	title      string
	quicklogin bool
}

type UIOption func(*options)

func WithTitle(title string) UIOption {
	return func(o *options) { o.title = title }
}

func WithQuickLogin() UIOption {
	return func(o *options) { o.quicklogin = true }
}

// ShowUI shows the login method menu.  If quicklogin is set to true, it
// will quit after the user has successfully authenticated.
func ShowUI(ctx context.Context, opts ...UIOption) error {
	if !osext.IsInteractive() {
		return errors.New("running on dumb terminal, cannot add an account")
	}
	const (
		actLogin     = "ezlogin"
		actToken     = "token"
		actTokenFile = "tokenfile"
		actSecrets   = "secrets"
		actExit      = "exit"
	)

	uiOpts := options{
		title: "New Account",
	}
	for _, o := range opts {
		o(&uiOpts)
	}

	// login methods
	methods := map[string]func(context.Context, manager) error{
		actLogin:     brwsLogin,
		actToken:     prgTokenCookie,
		actTokenFile: prgTokenCookieFile,
		actSecrets:   fileWithSecrets,
	}

	action := actLogin
LOOP:
	for {
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title(uiOpts.title).
				Description("Choose the login method").
				Options(
					huh.NewOption("Login in Browser", actLogin),
					huh.NewOption("Token/Cookie", actToken),
					huh.NewOption("Token/Cookie file", actTokenFile),
					huh.NewOption("From file with secrets", actSecrets),
					huh.NewOption("Exit", actExit),
				).
				Value(&action),
		)).WithTheme(ui.HuhTheme()).WithKeyMap(ui.DefaultHuhKeymap)
		if err := form.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				break LOOP
			}
			return err
		}
		if action == actExit {
			break LOOP
		}
		fn, ok := methods[action]
		if !ok {
			return errors.New("internal error:  unhandled login option")
		}
		mgr, err := account.CacheMgr()
		if err != nil {
			return err
		}
		if err := fn(ctx, mgr); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			return err
		}
		if uiOpts.quicklogin {
			return nil
		}
	}

	return nil
}
