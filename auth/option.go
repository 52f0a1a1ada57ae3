// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package auth

import (
	"time"

	"github.com/rusq/gptok/auth/browser"
)

type options struct {
	playwrightOpts
	rodOpts
}

type playwrightOpts struct {
	browser      browser.Browser
	loginTimeout time.Duration
	verbose      bool
}

type rodOpts struct {
	ui          BrowserAuthUIExt
	stepTimeout time.Duration
	userAgent   string
	browserPath string
	userDataDir string
}

type Option func(*options)

func BrowserWithBrowser(b browser.Browser) Option {
	return func(o *options) {
		o.playwrightOpts.browser = b
	}
}

func BrowserWithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d < 0 {
			return
		}
		o.playwrightOpts.loginTimeout = d
	}
}

func BrowserWithVerbose(b bool) Option {
	return func(o *options) {
		o.playwrightOpts.verbose = b
	}
}

// RODWithUI sets the user interaction handler for the login flow.
func RODWithUI(ui BrowserAuthUIExt) Option {
	return func(o *options) {
		if ui == nil {
			return
		}
		o.rodOpts.ui = ui
	}
}

// RODWithStepTimeout sets the timeout for each step of the headless login:
// the wait for the login page, the password page, and the authenticated
// landing page.
func RODWithStepTimeout(d time.Duration) Option {
	return func(o *options) {
		if d <= 0 {
			return
		}
		o.rodOpts.stepTimeout = d
	}
}

// RODWithUserAgent sets the user agent string for the headless browser.
func RODWithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.rodOpts.userAgent = ua
		}
	}
}

// RODWithBrowserPath uses the browser binary at the given path instead of
// the managed one.
func RODWithBrowserPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.rodOpts.browserPath = path
		}
	}
}

// RODWithUserDataDir sets the browser profile directory.
func RODWithUserDataDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.rodOpts.userDataDir = dir
		}
	}
}
