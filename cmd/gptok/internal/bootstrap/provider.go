// Package bootstrap contains initialisation functions that are shared
// between main and the top level commands.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/cmd/gptok/internal/account"
	"github.com/rusq/gptok/cmd/gptok/internal/account/accountui"
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/internal/cache"
)

// exported for testing
var (
	authCurrent = account.AuthCurrent
	showUI      = accountui.ShowUI
)

// CurrentOrNewProviderCtx returns the context with the provider for the
// current account.  If there are no accounts, it runs the login wizard, and
// retries.
func CurrentOrNewProviderCtx(ctx context.Context) (context.Context, error) {
	cachedir := cfg.CacheDir()
	prov, err := authCurrent(ctx, cachedir, cfg.Account, cfg.LegacyBrowser)
	if err != nil {
		if errors.Is(err, cache.ErrNoAccounts) {
			// ask to add a new account
			if err := showUI(ctx, accountui.WithQuickLogin(), accountui.WithTitle("No accounts, please choose a login method")); err != nil {
				return ctx, fmt.Errorf("auth error: %w", err)
			}
			// one more time...
			prov, err = authCurrent(ctx, cachedir, cfg.Account, cfg.LegacyBrowser)
			if err != nil {
				return ctx, err
			}
		} else {
			return ctx, err
		}
	}
	return auth.WithContext(ctx, prov), nil
}
