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

// Package mcp contains the CLI command for starting the gptok MCP server.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rusq/gptok/cmd/gptok/internal/bootstrap"
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
	internalmcp "github.com/rusq/gptok/internal/mcp"
)

// CmdMCP is the "gptok mcp" command.
var CmdMCP = &base.Command{
	UsageLine: "gptok mcp [flags]",
	Short:     "start a local MCP server for the session",
	Long: `
# MCP Command

Starts a local Model Context Protocol server that lets AI agents use the
logged in session.  The agent gets the following tools:

- **get_session_info**: the session document (user, expiry, token);
- **get_access_token**: just the bearer token;
- **ask**: send a prompt to the conversation endpoint and read the reply;
- **command_help**: command line help for the gptok subcommands.

By default the server speaks MCP over stdin/stdout, which is what local
agent hosts expect.  An example Claude Desktop configuration:

	{
	  "mcpServers": {
	    "gptok": {
	      "command": "gptok",
	      "args": ["mcp"]
	    }
	  }
	}

With **-transport=http** the server uses the Streamable HTTP transport on
the **-listen** address instead.

The agent acts on your account: it can read your access token and send
prompts on your behalf.
`,
	FlagMask:    cfg.OmitYesFlag,
	PrintFlags:  true,
	RequireAuth: true,
	Run:         runMCP,
}

var (
	listenAddr string
	transport  string
)

func init() {
	CmdMCP.Flag.StringVar(&transport, "transport", "stdio", "MCP transport: \"stdio\" or \"http\"")
	CmdMCP.Flag.StringVar(&listenAddr, "listen", "127.0.0.1:8483", "address to listen on when -transport=http")
}

func runMCP(ctx context.Context, cmd *base.Command, args []string) error {
	if len(args) != 0 {
		base.SetExitStatus(base.SInvalidParameters)
		return errors.New("mcp accepts no arguments")
	}
	lg := cfg.Log

	sess, err := bootstrap.Session(ctx)
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}

	srv := internalmcp.New(sess, internalmcp.WithLogger(lg))

	// Add the command_help tool at the CLI layer because it needs access to
	// cmd/gptok/internal packages which are forbidden from internal/mcp.
	srv.AddTool(toolCommandHelp())

	switch strings.ToLower(transport) {
	case "stdio", "":
		return srv.ServeStdio(ctx)
	case "http":
		lg.InfoContext(ctx, "mcp: http transport", "addr", listenAddr)
		return srv.ServeHTTP(ctx, listenAddr)
	default:
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("mcp: unknown transport %q (use \"stdio\" or \"http\")", transport)
	}
}
