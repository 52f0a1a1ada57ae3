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
	"fmt"

	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
	"github.com/rusq/gptok/internal/cache"
)

var CmdSelect = &base.Command{
	UsageLine: baseCommand + " select [flags] <name>",
	Short:     "choose a previously saved account",
	Long: `
# Account Select Command

**Select** allows to set the current account from the list of accounts
that you have previously authenticated in.

"Current" means that this account will be used by default when running
other commands, unless you specify a different account explicitly with
the ` + "`-account`" + ` flag.

To get the full list of authenticated accounts, run:

	` + base.Executable() + ` account list
`,
	FlagMask:   flagmask,
	PrintFlags: true,
}

func init() {
	CmdSelect.Run = runSelect
}

func runSelect(ctx context.Context, cmd *base.Command, args []string) error {
	acc := argsAccount(args, cfg.Account)
	if acc == "" {
		base.SetExitStatus(base.SInvalidParameters)
		return cache.ErrNameRequired
	}
	m, err := CacheMgr()
	if err != nil {
		base.SetExitStatus(base.SCacheError)
		return fmt.Errorf("unable to initialise cache: %s", err)
	}
	if err := m.Select(acc); err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("unable to select %q: %w", acc, err)
	}
	fmt.Printf("Success:  current account set to:  %s\n", acc)
	return nil
}
