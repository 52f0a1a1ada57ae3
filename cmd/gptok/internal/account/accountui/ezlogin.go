package accountui

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/auth/browser"
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/ui"
)

// brwsLogin runs the browser login.  The rod flow is the default, the
// playwright one is used when the legacy browser is requested.
func brwsLogin(ctx context.Context, mgr manager) error {
	var err error
	if cfg.LegacyBrowser {
		err = playwrightLogin(ctx, mgr)
	} else {
		err = rodLogin(ctx, mgr)
	}
	if err != nil {
		if errors.Is(err, auth.ErrCancelled) {
			return nil
		}
		return err
	}
	return nil
}

func playwrightLogin(ctx context.Context, mgr manager) error {
	brws := browser.Bchromium
	formBrowser := huh.NewForm(huh.NewGroup(
		huh.NewSelect[browser.Browser]().
			Options(
				huh.NewOption("Chromium", browser.Bchromium),
				huh.NewOption("Firefox", browser.Bfirefox),
			).
			Title("Playwright login").
			Description("Choose the browser to use for authentication").
			Value(&brws),
	)).WithTheme(ui.HuhTheme()).WithKeyMap(ui.DefaultHuhKeymap)
	if err := formBrowser.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}
	prov, err := auth.NewBrowserAuth(ctx, auth.BrowserWithBrowser(brws))
	if err != nil {
		return err
	}

	name, err := mgr.CreateAndSelect(ctx, prov)
	if err != nil {
		return err
	}
	return success(ctx, name)
}

func rodLogin(ctx context.Context, mgr manager) error {
	prov, err := auth.NewRODAuth(ctx)
	if err != nil {
		return err
	}
	name, err := mgr.CreateAndSelect(ctx, prov)
	if err != nil {
		return err
	}
	return success(ctx, name)
}
