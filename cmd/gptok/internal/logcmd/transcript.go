package logcmd

import (
	"context"
	"fmt"
	"io"

	"github.com/rusq/fsadapter"
	"github.com/schollz/progressbar/v3"

	"github.com/rusq/gptok/internal/chatlog"
)

const timeLayout = "2006-01-02 15:04:05"

// dumpAccount writes the transcripts of all account conversations to fsa
// and returns the number written.  Empty account matches any.
func dumpAccount(ctx context.Context, db *chatlog.DB, fsa fsadapter.FS, acc string) (int, error) {
	cc, err := db.Conversations(ctx, acc)
	if err != nil {
		return 0, err
	}
	ids := make([]string, len(cc))
	for i, c := range cc {
		ids[i] = c.ID
	}
	pb := progressbar.NewOptions(len(ids),
		progressbar.OptionSetDescription("Dumping conversations"),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
	)
	defer pb.Close()
	return dumpTranscripts(ctx, db, fsa, ids, func() { pb.Add(1) })
}

// dumpTranscripts writes one transcript file per conversation.  progress,
// if not nil, is called after each file.
func dumpTranscripts(ctx context.Context, db *chatlog.DB, fsa fsadapter.FS, ids []string, progress func()) (int, error) {
	var n int
	for _, id := range ids {
		if err := dumpOne(ctx, db, fsa, id); err != nil {
			return n, fmt.Errorf("conversation %q: %w", id, err)
		}
		n++
		if progress != nil {
			progress()
		}
	}
	return n, nil
}

func dumpOne(ctx context.Context, db *chatlog.DB, fsa fsadapter.FS, id string) error {
	f, err := fsa.Create(id + ".txt")
	if err != nil {
		return err
	}
	if err := writeTranscript(ctx, db, f, id); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeTranscript writes the conversation transcript to w.  An unknown
// conversation ID yields chatlog.ErrNoHistory.
func writeTranscript(ctx context.Context, db *chatlog.DB, w io.Writer, id string) error {
	mm, err := db.Messages(ctx, id)
	if err != nil {
		return err
	}
	if len(mm) == 0 {
		return fmt.Errorf("%w: conversation %q", chatlog.ErrNoHistory, id)
	}
	if _, err := fmt.Fprintf(w, "conversation %s\n\n", id); err != nil {
		return err
	}
	for _, m := range mm {
		if _, err := fmt.Fprintf(w, "[%s] %s:\n%s\n\n", m.CreatedAt.Format(timeLayout), m.Role, m.Content); err != nil {
			return err
		}
	}
	return nil
}
