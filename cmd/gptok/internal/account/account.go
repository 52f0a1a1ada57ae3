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
package account

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"runtime/trace"
	"strings"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
	"github.com/rusq/gptok/internal/cache"
)

const baseCommand = "gptok account"

var flagmask = cfg.OmitAll &^ cfg.OmitCacheDir

var CmdAccount = &base.Command{
	Run:       nil,
	UsageLine: baseCommand,
	Short:     "manage authenticated OpenAI accounts",
	Long: `
# Account Command

Gptok supports working with multiple OpenAI accounts without the need to
authenticate again (unless the saved session is expired or was revoked).

**Account** command allows to add a **new** account, **list** already
authenticated accounts, **select** an account that you have previously
logged in to, **del**ete an existing account, or **import** credentials
from a cookies.txt or an environment file.

To learn more about different login options, run:

	gptok help login

Accounts are stored on this device in the system Cache directory, which is
automatically detected to be:
    ` + cfg.CacheDir() + `
`,
	CustomFlags: false,
	FlagMask:    flagmask,
	PrintFlags:  false,
	RequireAuth: false,
	Commands: []*base.Command{
		CmdNew,
		CmdImport,
		CmdList,
		CmdSelect,
		CmdDel,
	},
}

// manager is used for test rigging.
//
//go:generate mockgen -destination=mocks_test.go -package=account -source=account.go manager
type manager interface {
	Auth(ctx context.Context, name string, c cache.Credentials) (auth.Provider, error)
	CreateAndSelect(ctx context.Context, p auth.Provider) (string, error)
	Delete(name string) error
	Exists(name string) bool
	ExistsErr(name string) error
	FileInfo(name string) (fs.FileInfo, error)
	List() ([]string, error)
	LoadProvider(name string) (auth.Provider, error)
	Select(name string) error
	Current() (string, error)
}

var (
	ErrNotExists   = errors.New("account does not exist")
	ErrOpCancelled = errors.New("operation cancelled")
)

// argsAccount checks if the current account override is set, and returns it
// if it is.  Otherwise, it checks the first (with index zero) argument in
// args, and if it set, returns it.  Otherwise, it returns an empty string.
func argsAccount(args []string, defaultAcc string) string {
	if strings.TrimSpace(defaultAcc) != "" {
		return strings.ToLower(defaultAcc)
	}
	if len(args) > 0 && args[0] != "" {
		return strings.ToLower(args[0])
	}

	return ""
}

// AuthCurrent authenticates in the current account, or overrideAcc if it's
// provided.
func AuthCurrent(ctx context.Context, cacheDir string, overrideAcc string, usePlaywright bool) (auth.Provider, error) {
	acc, err := Current(cacheDir, overrideAcc)
	if err != nil {
		return nil, err
	}
	trace.Logf(ctx, "AuthCurrent", "current account=%s", acc)
	slog.DebugContext(ctx, "current", "account", acc)

	prov, err := authAcc(ctx, cacheDir, acc, usePlaywright)
	if err != nil {
		return nil, err
	}
	return prov, nil
}

// Current returns the current account in the directory cacheDir, based on
// the configuration values.  If override is set, it checks if the account
// exists in the directory, and returns it.
func Current(cacheDir string, override string) (acc string, err error) {
	m, err := cache.NewManager(cacheDir, mgrOpts()...)
	if err != nil {
		return "", err
	}
	if override != "" {
		if m.Exists(override) {
			return override, nil
		}
		return "", fmt.Errorf("%w: %q", ErrNotExists, override)
	}

	acc, err = m.Current()
	if err != nil {
		if errors.Is(err, cache.ErrNoAccounts) {
			acc = "default"
		} else {
			return "", err
		}
	}
	return acc, nil
}

// CurrentName returns the name of the current account for display purposes.
func CurrentName() string {
	if current, err := Current(cfg.CacheDir(), cfg.Account); err == nil {
		return current
	}
	return "<not set>"
}

var yesno = base.YesNo

// authAcc authenticates in the account acc, and saves, or reuses the
// credentials in the cacheDir.  When the credential values are given on the
// command line, a missing account is created from them, otherwise the
// account must exist.
func authAcc(ctx context.Context, cacheDir string, acc string, usePlaywright bool) (auth.Provider, error) {
	m, err := cache.NewManager(cacheDir, mgrOpts()...)
	if err != nil {
		return nil, err
	}
	creds := cache.GPTCreds{Token: cfg.Token, Cookie: cfg.Cookie, UsePlaywright: usePlaywright}
	if creds.IsEmpty() {
		if err := m.ExistsErr(acc); err != nil {
			return nil, err
		}
	}

	prov, err := m.Auth(ctx, acc, creds)
	if err != nil {
		return nil, err
	}
	return prov, nil
}

func mgrOpts() []cache.Option {
	return []cache.Option{cache.WithMachineID(cfg.MachineIDOvr), cache.WithNoEncryption(cfg.NoEncryption)}
}

// CacheMgr returns the account manager over the configured cache
// directory.
func CacheMgr(opts ...cache.Option) (*cache.Manager, error) {
	opts = append(mgrOpts(), opts...)
	return cache.NewManager(cfg.CacheDir(), opts...)
}
