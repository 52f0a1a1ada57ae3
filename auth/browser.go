package auth

import (
	"context"

	"github.com/rusq/gptok/auth/browser"
)

var _ Provider = BrowserAuth{}

// BrowserAuth is the playwright-driven authentication provider.
//
// Deprecated: playwright pulls in a nodejs runtime and hundreds of
// megabytes of browser binaries.  Use [RodAuth], which drives a plain
// Chromium over CDP.  BrowserAuth remains for environments where the
// managed Chromium refuses to run.
type BrowserAuth struct {
	simpleProvider
	opts playwrightOpts
}

func NewBrowserAuth(ctx context.Context, opts ...Option) (BrowserAuth, error) {
	var br = BrowserAuth{
		opts: playwrightOpts{
			browser:      browser.Bfirefox,
			loginTimeout: browser.DefLoginTimeout,
		},
	}
	var o = options{playwrightOpts: br.opts}
	for _, opt := range opts {
		opt(&o)
	}
	br.opts = o.playwrightOpts

	cl, err := browser.New(
		browser.OptBrowser(br.opts.browser),
		browser.OptTimeout(br.opts.loginTimeout),
		browser.OptVerbose(br.opts.verbose),
	)
	if err != nil {
		return br, err
	}
	token, cookies, err := cl.Authenticate(ctx)
	if err != nil {
		return br, err
	}
	br.simpleProvider = simpleProvider{
		Token:  token,
		Cookie: cookies,
	}
	return br, nil
}

func (BrowserAuth) Type() Type {
	return TypeBrowser
}
