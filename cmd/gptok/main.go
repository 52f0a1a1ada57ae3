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

// Command gptok extracts the ChatGPT web session token from the browser
// session and talks to the backend API with it.
//
// The command subsystem is based on the Go command implementation.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rusq/gptok/cmd/gptok/internal/account"
	"github.com/rusq/gptok/cmd/gptok/internal/apiconfig"
	"github.com/rusq/gptok/cmd/gptok/internal/ask"
	"github.com/rusq/gptok/cmd/gptok/internal/bootstrap"
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/help"
	"github.com/rusq/gptok/cmd/gptok/internal/logcmd"
	"github.com/rusq/gptok/cmd/gptok/internal/man"
	"github.com/rusq/gptok/cmd/gptok/internal/mcp"
	"github.com/rusq/gptok/cmd/gptok/internal/server"
	"github.com/rusq/gptok/cmd/gptok/internal/token"
	"github.com/rusq/gptok/cmd/gptok/internal/tools"
)

func init() {
	base.Gptok.Commands = []*base.Command{
		token.CmdToken,
		ask.CmdAsk,
		account.CmdAccount,
		logcmd.CmdLog,
		server.CmdServe,
		mcp.CmdMCP,
		apiconfig.CmdConfig,
		tools.CmdTools,
		CmdVersion,

		man.Login,
		man.Caching,
		man.Troubleshooting,
	}
}

func init() {
	base.Usage = mainUsage
}

// secrets defines the names of the supported secret files that we load our
// secrets from.  Inexperienced windows users might have bad experience trying
// to create .env file with the notepad as it will battle for having the
// "txt" extension.  Let it have it.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

func main() {
	loadSecrets(secrets)

	flag.Usage = base.Usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		base.Usage()
	}

	base.CmdName = args[0] // for error messages
	if args[0] == "help" {
		help.Help(os.Stdout, args[1:])
		return
	}

BigCmdLoop:
	for bigCmd := base.Gptok; ; {
		for _, cmd := range bigCmd.Commands {
			if cmd.Name() != args[0] {
				continue
			}
			if len(cmd.Commands) > 0 {
				bigCmd = cmd
				args = args[1:]
				if len(args) == 0 {
					help.PrintUsage(os.Stderr, bigCmd)
					base.SetExitStatus(base.SHelpRequested)
					base.Exit()
				}
				if args[0] == "help" {
					// Accept 'gptok config help' and 'gptok config help new'
					// for 'gptok help config' and 'gptok help config new'.
					help.Help(os.Stdout, append(strings.Split(base.CmdName, " "), args[1:]...))
					base.Exit()
				}
				base.CmdName += " " + args[0]
				continue BigCmdLoop
			}
			if !cmd.Runnable() {
				continue
			}
			if err := invoke(cmd, args); err != nil {
				if errors.Is(err, context.Canceled) {
					base.SetExitStatus(base.SCancelled)
				} else {
					fmt.Fprintf(os.Stderr, "gptok: %s\n", err)
					base.SetExitStatus(base.SGenericError)
				}
			}
			base.Exit()
		}
		helpArg := ""
		if i := strings.LastIndex(base.CmdName, " "); i >= 0 {
			helpArg = " " + base.CmdName[:i]
		}
		fmt.Fprintf(os.Stderr, "gptok %s: unknown command\nRun 'gptok help%s' for usage.\n", base.CmdName, helpArg)
		base.SetExitStatus(base.SInvalidParameters)
		base.Exit()
	}
}

// invoke sets up the command environment, i.e. flags, logging, tracing and,
// if the command requires it, the authentication provider, and runs the
// command.
func invoke(cmd *base.Command, args []string) error {
	cmd.Flag.Usage = func() { cmd.Usage() }
	if cmd.CustomFlags {
		args = args[1:]
	} else {
		cfg.SetBaseFlags(&cmd.Flag, cmd.FlagMask)
		if err := cmd.Flag.Parse(args[1:]); err != nil {
			base.SetExitStatus(base.SInvalidParameters)
			return err
		}
		args = cmd.Flag.Args()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	base.AtExit(initTrace(cfg.TraceFile))
	lg, err := initLog(cfg.LogFile, cfg.JsonHandler, cfg.Verbose)
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}
	cfg.Log = lg

	if cfg.ConfigFile != "" {
		limits, err := apiconfig.Load(cfg.ConfigFile)
		if err != nil {
			base.SetExitStatus(base.SInvalidParameters)
			return fmt.Errorf("unable to load the API limits configuration: %w", err)
		}
		cfg.Limits = limits
		lg.Debug("API limits loaded", "filename", cfg.ConfigFile)
	}

	if cmd.RequireAuth {
		var err error
		ctx, err = bootstrap.CurrentOrNewProviderCtx(ctx)
		if err != nil {
			base.SetExitStatus(base.SAuthError)
			return fmt.Errorf("auth error: %w", err)
		}
	}

	return cmd.Run(ctx, cmd, args)
}

func mainUsage() {
	help.PrintUsage(os.Stderr, base.Gptok)
	base.SetExitStatus(base.SHelpRequested)
	base.Exit()
}

// loadSecrets load secrets from the files in secrets slice.
func loadSecrets(files []string) {
	for _, f := range files {
		godotenv.Load(f)
	}
}
