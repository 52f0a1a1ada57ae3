package bootstrap

import (
	"context"

	"github.com/rusq/gptok"
	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/cmd/gptok/internal/account"
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
)

// Session returns the gptok Session initialised with the provider from
// context and a standard set of options initialised from the configuration.
// One can provide additional options to override the defaults.
func Session(ctx context.Context, opts ...gptok.Option) (*gptok.Session, error) {
	prov, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	var stdOpts = []gptok.Option{
		gptok.WithLogger(cfg.Log),
		gptok.WithLimits(cfg.Limits),
		gptok.WithAPIURL(cfg.APIURL),
	}

	stdOpts = append(stdOpts, opts...)
	return gptok.New(
		ctx,
		prov,
		stdOpts...,
	)
}

// CurrentProviderCtx returns the context with the current provider.
func CurrentProviderCtx(ctx context.Context) (context.Context, error) {
	prov, err := account.AuthCurrent(ctx, cfg.CacheDir(), cfg.Account, cfg.LegacyBrowser)
	if err != nil {
		return ctx, err
	}
	return auth.WithContext(ctx, prov), nil
}
