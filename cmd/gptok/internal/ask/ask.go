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

// Package ask implements the ask command, a one-shot prompt to the
// conversation API.
package ask

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/rusq/gptok"
	"github.com/rusq/gptok/cmd/gptok/internal/account"
	"github.com/rusq/gptok/cmd/gptok/internal/bootstrap"
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
	"github.com/rusq/gptok/internal/backend"
	"github.com/rusq/gptok/internal/cache"
	"github.com/rusq/gptok/internal/chatlog"
)

var CmdAsk = &base.Command{
	UsageLine: "gptok ask [flags] <prompt>",
	Short:     "send a prompt and print the reply",
	Long: `
# Ask Command

Sends the prompt to the conversation API on behalf of the logged in account
and prints the assistant reply.  The prompt is the command arguments joined
with spaces, or, when no arguments are given, the standard input:

	gptok ask what is the airspeed velocity of an unladen swallow
	echo "summarise this" | cat - report.txt | gptok ask

Every exchange is recorded in the local conversation log (see "gptok help
log").  The **-c** flag continues the most recent conversation instead of
starting a new one.

Flags of interest:

- **-stream** prints the reply as it is generated, token by token;
- **-m** selects the conversation model, see the web client for the model
  names your account is entitled to;
- **-c** continues where the previous ask left off.
`,
	FlagMask:    cfg.OmitYesFlag,
	PrintFlags:  true,
	RequireAuth: true,
}

var (
	flagStream   = CmdAsk.Flag.Bool("stream", false, "print the reply incrementally, as the server generates it")
	flagContinue = CmdAsk.Flag.Bool("c", false, "continue the most recent conversation")
	flagModel    = CmdAsk.Flag.String("m", "", "conversation `model` to use, the account default if empty")
)

func init() {
	CmdAsk.Run = runAsk
}

func runAsk(ctx context.Context, cmd *base.Command, args []string) error {
	prompt, err := readPrompt(args, os.Stdin)
	if err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return err
	}

	sess, err := bootstrap.Session(ctx)
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}
	db, err := bootstrap.Database(ctx)
	if err != nil {
		base.SetExitStatus(base.SCacheError)
		return err
	}
	defer db.Close()

	// account name keys the conversation log entries.
	acc, _ := account.Current(cfg.CacheDir(), cfg.Account)

	if *flagModel != "" {
		if err := checkModel(ctx, sess, acc, *flagModel); err != nil {
			slog.WarnContext(ctx, "model check failed, sending anyway", "model", *flagModel, "error", err)
		}
	}

	req, err := newRequest(ctx, db, acc, prompt, *flagModel, *flagContinue)
	if err != nil {
		base.SetExitStatus(base.SCacheError)
		return err
	}

	last, err := converse(ctx, sess, req, os.Stdout, *flagStream)
	if err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}

	if err := record(ctx, db, acc, prompt, req, last); err != nil {
		// the reply is already printed, a log failure should not fail the run.
		slog.WarnContext(ctx, "failed to record the exchange", "error", err)
	}
	return nil
}

// newRequest builds the conversation request for the prompt.  With cont
// set, the request continues at the position of the most recent logged
// conversation; an empty log starts a new one.
func newRequest(ctx context.Context, db *chatlog.DB, acc string, prompt string, model string, cont bool) (backend.ConversationRequest, error) {
	req := backend.ConversationRequest{
		Messages: []backend.Message{backend.NewMessage(backend.RoleUser, prompt)},
		Model:    model,
	}
	if cont {
		pos, err := db.Resume(ctx, acc)
		if err != nil {
			if !errors.Is(err, chatlog.ErrNoHistory) {
				return req, err
			}
			slog.InfoContext(ctx, "nothing to continue, starting a new conversation")
		} else {
			req.ConversationID = pos.ConversationID
			req.ParentMessageID = pos.ParentID
			if req.Model == "" {
				req.Model = pos.Model
			}
		}
	}
	// resolved here rather than by the client, so that the recorded values
	// match what was sent.
	if req.Model == "" {
		req.Model = backend.DefaultModel
	}
	if req.ParentMessageID == "" {
		req.ParentMessageID = uuid.NewString()
	}
	return req, nil
}

// converse sends the request and prints the reply to w.  It returns the
// final event of the stream.
func converse(ctx context.Context, sess *gptok.Session, req backend.ConversationRequest, w io.Writer, stream bool) (*backend.ConversationEvent, error) {
	if !stream {
		ev, err := sess.Ask(ctx, req)
		if err != nil {
			return nil, err
		}
		_, err = fmt.Fprintln(w, ev.Text())
		return ev, err
	}
	var sp = streamPrinter{w: w}
	if err := sess.AskStream(ctx, req, sp.print); err != nil {
		return nil, err
	}
	if sp.last == nil {
		return nil, backend.ErrNoReply
	}
	_, err := fmt.Fprintln(w)
	return sp.last, err
}

// streamPrinter prints the growing tail of the reply.  Events are
// cumulative snapshots, so only the text beyond the printed offset is new.
type streamPrinter struct {
	w       io.Writer
	printed int
	last    *backend.ConversationEvent
}

func (sp *streamPrinter) print(ev backend.ConversationEvent) error {
	text := ev.Text()
	if len(text) > sp.printed {
		if _, err := io.WriteString(sp.w, text[sp.printed:]); err != nil {
			return err
		}
		sp.printed = len(text)
	}
	sp.last = &ev
	return nil
}

// record appends the exchange to the conversation log.
func record(ctx context.Context, db *chatlog.DB, acc string, prompt string, req backend.ConversationRequest, ev *backend.ConversationEvent) error {
	if ev.ConversationID == "" || ev.MessageID() == "" {
		// can't resume whatever the server did not identify.
		slog.DebugContext(ctx, "reply carries no IDs, skipping the log")
		return nil
	}
	return db.Append(ctx, chatlog.Exchange{
		ConversationID: ev.ConversationID,
		ParentID:       req.ParentMessageID,
		PromptID:       req.Messages[0].ID,
		ReplyID:        ev.MessageID(),
		Account:        acc,
		Model:          req.Model,
		Prompt:         prompt,
		Reply:          ev.Text(),
	})
}

// readPrompt returns the prompt from the arguments, falling back to the
// standard input when it is a pipe.
func readPrompt(args []string, stdin *os.File) (string, error) {
	if prompt := strings.TrimSpace(strings.Join(args, " ")); prompt != "" {
		return prompt, nil
	}
	if term.IsTerminal(int(stdin.Fd())) {
		return "", errors.New("no prompt: give it as arguments or pipe it in")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", errors.New("empty prompt on standard input")
	}
	return prompt, nil
}

// checkModel reports whether the model is on the account's model list.
// The list is cached for cache.DefModelAge, a stale cache is refreshed
// from the service.
func checkModel(ctx context.Context, sess *gptok.Session, acc string, slug string) error {
	mgr, err := account.CacheMgr()
	if err != nil {
		return err
	}
	mm, err := mgr.LoadModels(acc, cache.DefModelAge)
	if err != nil {
		mm, err = sess.Models(ctx)
		if err != nil {
			return err
		}
		if err := mgr.SaveModels(acc, mm); err != nil {
			slog.DebugContext(ctx, "model cache not saved", "error", err)
		}
	}
	if !slices.ContainsFunc(mm, func(m backend.Model) bool { return m.Slug == slug }) {
		return fmt.Errorf("model %q is not on the account model list", slug)
	}
	return nil
}
