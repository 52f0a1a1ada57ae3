// Copyright (c) 2023-2026 Rustam Gilyazov and Contributors.
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
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rusq/gptok/auth/browser"
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
	"github.com/rusq/gptok/cmd/gptok/internal/ui"
	"github.com/rusq/gptok/internal/chromium"
)

var cmdInstall = &base.Command{
	UsageLine:   "gptok tools install",
	Short:       "download the browsers for the interactive login",
	RequireAuth: false,
	FlagMask:    cfg.OmitAll,
	Run:         runInstall,
	PrintFlags:  true,
	Long: `
# Install Command

**Install** downloads the browsers that the interactive login drives.  The
login itself never downloads anything, so this is the only command that
reaches out for the browser binaries.

By default it installs the managed Chromium for the default login engine.
Use the flags to install the Playwright environment for the legacy one.
`,
}

type instOptions struct {
	chromium   bool // install the managed chromium
	playwright bool // install playwright environment

	noConfirm bool // no confirmation from the user
}

func (o instOptions) selected() []string {
	const (
		chromium = "Managed Chromium"
		pw       = "Playwright Browsers"
	)
	items := []string{}
	if o.chromium {
		items = append(items, chromium)
	}
	if o.playwright {
		items = append(items, pw)
	}
	return items
}

func (o instOptions) String() string {
	var buf strings.Builder
	for _, s := range o.selected() {
		buf.WriteString("* " + s)
		buf.WriteString("\n")
	}
	return buf.String()
}

// instParams holds supported command line parameters
var instParams = instOptions{}

func init() {
	cmdInstall.Flag.BoolVar(&instParams.chromium, "browser", false, "install the managed chromium browser")
	cmdInstall.Flag.BoolVar(&instParams.playwright, "playwright", false, "install playwright environment")
	cmdInstall.Flag.BoolVar(&instParams.playwright, "legacy-browser", false, "alias for -playwright")
	cmdInstall.Flag.BoolVar(&instParams.noConfirm, "no-confirm", false, "no confirmation from the user")
}

func runInstall(ctx context.Context, cmd *base.Command, args []string) error {
	if len(args) != 0 {
		base.SetExitStatus(base.SInvalidParameters)
		return errors.New("install accepts no arguments")
	}
	if len(instParams.selected()) == 0 {
		// nothing selected, install the browser for the default engine.
		instParams.chromium = true
	}
	if !instParams.noConfirm {
		confirmed, err := ui.Confirm(fmt.Sprintf("This will download and install the following:\n\n%s", instParams), true)
		if err != nil {
			return err
		}
		if !confirmed {
			return nil
		}
	}
	if instParams.chromium {
		if err := installChromium(ctx); err != nil {
			base.SetExitStatus(base.SApplicationError)
			return err
		}
	}
	if instParams.playwright {
		if err := installPlaywright(ctx); err != nil {
			base.SetExitStatus(base.SApplicationError)
			return err
		}
	}
	return nil
}

func installChromium(ctx context.Context) error {
	lg := cfg.Log.WithGroup("chromium")
	if path, ok := chromium.Installed(); ok {
		lg.InfoContext(ctx, "Already installed", "path", path)
		return nil
	}
	lg.InfoContext(ctx, "Downloading the browser...")
	path, err := chromium.Install()
	if err != nil {
		return fmt.Errorf("failed to install the managed browser: %w", err)
	}
	lg.InfoContext(ctx, "Installed", "path", path)
	return nil
}

func installPlaywright(ctx context.Context) error {
	lg := cfg.Log.WithGroup("playwright")
	lg.InfoContext(ctx, "Installing the environment...", "browser", browser.Bfirefox)
	if err := browser.Install(browser.Bfirefox, cfg.Verbose); err != nil {
		return fmt.Errorf("playwright installation error: %w", err)
	}
	lg.InfoContext(ctx, "Done")
	return nil
}
