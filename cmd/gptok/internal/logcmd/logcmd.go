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

// Package logcmd implements the log command over the local conversation
// log.
package logcmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/rusq/fsadapter"

	"github.com/rusq/gptok/cmd/gptok/internal/account"
	"github.com/rusq/gptok/cmd/gptok/internal/bootstrap"
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
	"github.com/rusq/gptok/internal/chatlog"
)

var CmdLog = &base.Command{
	UsageLine: "gptok log [flags] [conversation]",
	Short:     "list and export the recorded conversations",
	Long: `
# Log Command

Without arguments, lists the conversations recorded by the ask command.
With a conversation ID argument, prints that conversation's transcript.

Flags:

- **-a** includes the conversations of all accounts, not just the current
  one;
- **-dump** writes the transcripts to the given directory, or, if the name
  ends in ".zip", to a ZIP archive.  With a conversation argument, only
  that conversation is written;
- **-rm** deletes the conversation given as the argument.

Examples:

	gptok log
	gptok log 0808f00d-0000-4000-8000-3405446f6f64
	gptok log -dump transcripts.zip
	gptok log -rm 0808f00d-0000-4000-8000-3405446f6f64
`,
	FlagMask:   cfg.OmitAuthFlags | cfg.OmitConfigFlag,
	PrintFlags: true,
}

var (
	flagAll  = CmdLog.Flag.Bool("a", false, "all accounts, not just the current one")
	flagDump = CmdLog.Flag.String("dump", "", "write transcripts to `location`, a directory or a .zip file")
	flagRm   = CmdLog.Flag.Bool("rm", false, "delete the conversation given as the argument")
)

func init() {
	CmdLog.Run = runLog
}

func runLog(ctx context.Context, cmd *base.Command, args []string) error {
	db, err := bootstrap.Database(ctx)
	if err != nil {
		base.SetExitStatus(base.SCacheError)
		return err
	}
	defer db.Close()

	var acc string
	if !*flagAll {
		acc, _ = account.Current(cfg.CacheDir(), cfg.Account)
	}
	var conversation string
	if len(args) > 0 {
		conversation = args[0]
	}

	switch {
	case *flagRm:
		return runRm(ctx, db, conversation)
	case *flagDump != "":
		return runDump(ctx, db, acc, conversation, *flagDump)
	case conversation != "":
		return runShow(ctx, db, os.Stdout, conversation)
	default:
		return runList(ctx, db, os.Stdout, acc)
	}
}

func runList(ctx context.Context, db *chatlog.DB, w io.Writer, acc string) error {
	cc, err := db.Conversations(ctx, acc)
	if err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}
	if len(cc) == 0 {
		fmt.Fprintln(w, "The conversation log is empty.  Asks are recorded automatically.")
		return nil
	}
	return printConversations(w, cc)
}

func printConversations(w io.Writer, cc []chatlog.Conversation) error {
	tw := tabwriter.NewWriter(w, 2, 8, 1, ' ', 0)
	fmt.Fprintln(tw, "ID\tmessages\tupdated\taccount\ttitle")
	fmt.Fprintln(tw, "--\t--------\t-------\t-------\t-----")
	for _, c := range cc {
		fmt.Fprintf(tw, "%s\t%8d\t%s\t%s\t%s\n", c.ID, c.Messages, humanize.Time(c.UpdatedAt), c.Account, c.Title)
	}
	return tw.Flush()
}

func runShow(ctx context.Context, db *chatlog.DB, w io.Writer, conversation string) error {
	if err := writeTranscript(ctx, db, w, conversation); err != nil {
		if errors.Is(err, chatlog.ErrNoHistory) {
			base.SetExitStatus(base.SUserError)
		} else {
			base.SetExitStatus(base.SApplicationError)
		}
		return err
	}
	return nil
}

func runRm(ctx context.Context, db *chatlog.DB, conversation string) error {
	if conversation == "" {
		base.SetExitStatus(base.SInvalidParameters)
		return errors.New("-rm requires a conversation ID")
	}
	if err := db.Delete(ctx, conversation); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			base.SetExitStatus(base.SUserError)
			return fmt.Errorf("no conversation %q in the log", conversation)
		}
		base.SetExitStatus(base.SApplicationError)
		return err
	}
	fmt.Printf("Conversation %q deleted.\n", conversation)
	return nil
}

func runDump(ctx context.Context, db *chatlog.DB, acc string, conversation string, target string) error {
	if err := bootstrap.AskOverwrite(target); err != nil {
		return err
	}
	fsa, err := fsadapter.New(target)
	if err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}
	defer fsa.Close()

	var n int
	if conversation != "" {
		n, err = dumpTranscripts(ctx, db, fsa, []string{conversation}, nil)
	} else {
		n, err = dumpAccount(ctx, db, fsa, acc)
	}
	if err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}
	fmt.Printf("Wrote %d transcript(s) to %q.\n", n, target)
	return nil
}
