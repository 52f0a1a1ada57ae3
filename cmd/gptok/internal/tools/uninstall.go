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
	"os"
	"path/filepath"
	"strings"

	"github.com/rusq/gptok/cmd/gptok/internal/account"
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
	"github.com/rusq/gptok/cmd/gptok/internal/tools/info"
	"github.com/rusq/gptok/cmd/gptok/internal/ui"
	"github.com/rusq/gptok/internal/cache"
)

var cmdUninstall = &base.Command{
	UsageLine:   "gptok tools uninstall",
	Short:       "performs uninstallation of components",
	RequireAuth: false,
	FlagMask:    cfg.OmitAll,
	Run:         runUninstall,
	PrintFlags:  true,
}

type uninstOptions struct {
	playwright bool // remove playwright
	chromium   bool // remove the managed chromium
	cache      bool // remove user cache
	purge      bool // remove everything

	dry       bool // dry run
	noConfirm bool // no confirmation from the user
}

func (o uninstOptions) selected() []string {
	const (
		chromium = "Managed Chromium"
		pw       = "Playwright Browsers"
		cache    = "User Cache"
	)
	items := []string{}
	if o.purge {
		return []string{chromium, pw, cache}
	}
	if o.chromium {
		items = append(items, chromium)
	}
	if o.playwright {
		items = append(items, pw)
	}
	if o.cache {
		items = append(items, cache)
	}
	return items
}

func (o uninstOptions) String() string {
	var buf strings.Builder
	for _, s := range o.selected() {
		buf.WriteString("* " + s)
		buf.WriteString("\n")
	}
	return buf.String()
}

// uninstParams holds supported command line parameters
var uninstParams = uninstOptions{}

func init() {
	cmdUninstall.Flag.BoolVar(&uninstParams.playwright, "legacy-browser", false, "alias for -playwright")
	cmdUninstall.Flag.BoolVar(&uninstParams.playwright, "playwright", false, "remove playwright environment")
	cmdUninstall.Flag.BoolVar(&uninstParams.chromium, "browser", false, "remove the managed chromium browser")
	cmdUninstall.Flag.BoolVar(&uninstParams.cache, "cache", false, "remove saved accounts and cached credentials")
	cmdUninstall.Flag.BoolVar(&uninstParams.purge, "purge", false, "remove everything (same as -browser -playwright -cache)")
	cmdUninstall.Flag.BoolVar(&uninstParams.dry, "dry", false, "dry run")
	cmdUninstall.Flag.BoolVar(&uninstParams.noConfirm, "no-confirm", false, "no confirmation from the user")
}

func runUninstall(ctx context.Context, cmd *base.Command, args []string) error {
	if len(args) != 0 {
		base.SetExitStatus(base.SInvalidParameters)
	}
	if len(uninstParams.selected()) == 0 {
		base.SetExitStatus(base.SInvalidParameters)
		return errors.New("nothing to uninstall")
	}

	m, err := account.CacheMgr()
	if err != nil {
		base.SetExitStatus(base.SCacheError)
		return err
	}
	if !uninstParams.noConfirm {
		confirmed, err := ui.Confirm(fmt.Sprintf("This will uninstall the following:\n\n%s", uninstParams), true)
		if err != nil {
			return err
		}
		if !confirmed {
			return nil
		}
	}

	si := info.CollectRaw()

	if uninstParams.purge {
		uninstParams.cache = true
		uninstParams.playwright = true
		uninstParams.chromium = true
	}

	if uninstParams.cache {
		if err := removeCache(m, uninstParams.dry); err != nil {
			base.SetExitStatus(base.SCacheError)
			return err
		}
	}
	if uninstParams.playwright {
		if err := uninstallPlaywright(ctx, si.Playwright, uninstParams.dry); err != nil {
			base.SetExitStatus(base.SApplicationError)
			return err
		}
	}
	if uninstParams.chromium {
		if err := uninstallChromium(ctx, si.Chromium, uninstParams.dry); err != nil {
			base.SetExitStatus(base.SApplicationError)
			return err
		}
	}
	return nil
}

func removeFunc(dry bool) func(string) error {
	if !dry {
		return os.RemoveAll
	}
	return func(name string) error {
		fmt.Printf("Would remove %s\n", name)
		return nil
	}
}

func uninstallPlaywright(ctx context.Context, si info.PwInfo, dry bool) error {
	removeFn := removeFunc(dry)
	lg := cfg.Log.WithGroup("playwright")
	lg.InfoContext(ctx, "Deleting", "path", si.Path)
	if err := removeFn(si.Path); err != nil {
		return fmt.Errorf("failed to remove the playwright library: %w", err)
	}

	lg.InfoContext(ctx, "Deleting browsers", "browsers_path", si.BrowsersPath)
	if err := removeFn(si.BrowsersPath); err != nil {
		return fmt.Errorf("failed to remove the playwright browsers: %w", err)
	}
	dir, _ := filepath.Split(si.Path)
	if len(dir) == 0 {
		return errors.New("unable to reliably determine playwright path")
	}
	lg.InfoContext(ctx, "Deleting all playwright versions", "dir", dir)
	if err := removeFn(dir); err != nil {
		return fmt.Errorf("failed to remove the playwright versions: %w", err)
	}

	return nil
}

func uninstallChromium(ctx context.Context, si info.ChromiumInfo, dry bool) error {
	lg := cfg.Log.WithGroup("chromium")

	removeFn := removeFunc(dry)
	if si.Path == "" {
		return errors.New("unable to determine the managed browser path")
	}
	lg.InfoContext(ctx, "Deleting...", "path", si.Path)
	if err := removeFn(si.Path); err != nil {
		return fmt.Errorf("failed to remove the managed browser: %w", err)
	}

	return nil
}

func removeCache(m *cache.Manager, dry bool) error {
	lg := cfg.Log.WithGroup("cache")
	lg.Info("Removing cache at ", "path", cfg.CacheDir())
	if dry {
		fmt.Println("Would remove cache")
		return nil
	}
	if err := m.RemoveAll(); err != nil {
		return fmt.Errorf("failed to remove cache: %w", err)
	}
	return nil
}
