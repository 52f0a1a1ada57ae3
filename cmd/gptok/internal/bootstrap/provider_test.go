package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/cmd/gptok/internal/account/accountui"
	"github.com/rusq/gptok/internal/cache"
	"github.com/rusq/gptok/internal/fixtures"
)

type authFunc func(ctx context.Context, cacheDir string, overrideAcc string, usePlaywright bool) (auth.Provider, error)

// setSeams replaces the package variables for the duration of the test.
func setSeams(t *testing.T, authFn authFunc, uiFn func(context.Context, ...accountui.UIOption) error) {
	t.Helper()
	oldAuth, oldUI := authCurrent, showUI
	t.Cleanup(func() {
		authCurrent, showUI = oldAuth, oldUI
	})
	authCurrent = authFn
	showUI = uiFn
}

func fakeProvider(t *testing.T) auth.Provider {
	t.Helper()
	prov, err := auth.NewValueAuth(fixtures.TestAccessToken, "")
	if err != nil {
		t.Fatal(err)
	}
	return prov
}

func TestCurrentOrNewProviderCtx(t *testing.T) {
	t.Run("provider for the current account", func(t *testing.T) {
		prov := fakeProvider(t)
		setSeams(t,
			func(context.Context, string, string, bool) (auth.Provider, error) {
				return prov, nil
			},
			func(context.Context, ...accountui.UIOption) error {
				t.Error("login wizard should not be called")
				return nil
			},
		)
		ctx, err := CurrentOrNewProviderCtx(t.Context())
		if err != nil {
			t.Fatal(err)
		}
		got, err := auth.FromContext(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if got.AccessToken() != prov.AccessToken() {
			t.Error("context carries a different provider")
		}
	})
	t.Run("no accounts, login succeeds", func(t *testing.T) {
		prov := fakeProvider(t)
		var attempt int
		setSeams(t,
			func(context.Context, string, string, bool) (auth.Provider, error) {
				attempt++
				if attempt == 1 {
					return nil, cache.ErrNoAccounts
				}
				return prov, nil
			},
			func(context.Context, ...accountui.UIOption) error {
				return nil
			},
		)
		ctx, err := CurrentOrNewProviderCtx(t.Context())
		if err != nil {
			t.Fatal(err)
		}
		if attempt != 2 {
			t.Errorf("attempt = %d, want 2", attempt)
		}
		if _, err := auth.FromContext(ctx); err != nil {
			t.Error(err)
		}
	})
	t.Run("no accounts, login wizard fails", func(t *testing.T) {
		errWizard := errors.New("computer says no")
		setSeams(t,
			func(context.Context, string, string, bool) (auth.Provider, error) {
				return nil, cache.ErrNoAccounts
			},
			func(context.Context, ...accountui.UIOption) error {
				return errWizard
			},
		)
		if _, err := CurrentOrNewProviderCtx(t.Context()); !errors.Is(err, errWizard) {
			t.Errorf("error = %v, want %v", err, errWizard)
		}
	})
	t.Run("no accounts even after login", func(t *testing.T) {
		setSeams(t,
			func(context.Context, string, string, bool) (auth.Provider, error) {
				return nil, cache.ErrNoAccounts
			},
			func(context.Context, ...accountui.UIOption) error {
				return nil
			},
		)
		if _, err := CurrentOrNewProviderCtx(t.Context()); !errors.Is(err, cache.ErrNoAccounts) {
			t.Errorf("error = %v, want %v", err, cache.ErrNoAccounts)
		}
	})
	t.Run("unrelated auth error", func(t *testing.T) {
		errAuth := errors.New("le sigh")
		setSeams(t,
			func(context.Context, string, string, bool) (auth.Provider, error) {
				return nil, errAuth
			},
			func(context.Context, ...accountui.UIOption) error {
				t.Error("login wizard should not be called")
				return nil
			},
		)
		if _, err := CurrentOrNewProviderCtx(t.Context()); !errors.Is(err, errAuth) {
			t.Errorf("error = %v, want %v", err, errAuth)
		}
	})
}
