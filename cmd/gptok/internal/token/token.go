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

// Package token implements the token command that prints the access token
// of an authenticated account.
package token

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/cmd/gptok/internal/account"
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
)

var CmdToken = &base.Command{
	UsageLine: "gptok token [flags] [account]",
	Short:     "print the access token of an account",
	Long: `
# Token Command

Prints the access token of the current account, or the account given as an
argument.  The token is printed from the saved credentials without
contacting the service.

With the **-json** flag, the live session information document is fetched
and printed instead, the same document that the web client receives on
login.  Keep in mind that it contains the token and the account email.

The token is what the rest of this tool, and anything else that talks to
the backend API, sends in the Authorization header.
`,
	FlagMask:   cfg.OmitConfigFlag | cfg.OmitYesFlag,
	PrintFlags: true,
}

var jsonOutput = CmdToken.Flag.Bool("json", false, "print the full session info document in JSON format")

func init() {
	CmdToken.Run = runToken
}

func runToken(ctx context.Context, cmd *base.Command, args []string) error {
	override := cfg.Account
	if len(args) > 0 && args[0] != "" {
		override = args[0]
	}
	prov, err := account.AuthCurrent(ctx, cfg.CacheDir(), override, cfg.LegacyBrowser)
	if err != nil {
		base.SetExitStatus(base.SAuthError)
		return err
	}
	if *jsonOutput {
		if err := printSession(ctx, os.Stdout, prov); err != nil {
			base.SetExitStatus(base.SAuthError)
			return err
		}
		return nil
	}
	return printToken(os.Stdout, prov)
}

// printToken writes the bare access token, newline terminated, so that it
// is usable in shell substitutions.
func printToken(w io.Writer, prov auth.Provider) error {
	if prov.AccessToken() == "" {
		return auth.ErrNoToken
	}
	_, err := fmt.Fprintln(w, prov.AccessToken())
	return err
}

// printSession tests the credentials and writes the session info document.
func printSession(ctx context.Context, w io.Writer, prov auth.Provider) error {
	si, err := prov.Test(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(si)
}
