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

// Package chatlog keeps the local log of conversations.  The log makes
// conversations resumable across runs: it remembers the conversation ID
// and the ID of the last assistant message, which the next request must
// name as its parent.
package chatlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/rusq/gptok/internal/chatlog/repository"
)

// DefFilename is the default name of the log database file.
const DefFilename = "chatlog.sqlite"

// ErrNoHistory is returned when there is nothing to continue.
var ErrNoHistory = errors.New("no conversation history")

const (
	roleUser      = "user"
	roleAssistant = "assistant"
)

type DB struct {
	conn *sqlx.DB
	cr   repository.ConversationRepository
	mr   repository.MessageRepository
}

// Open opens the conversation log at path, creating and migrating it if
// necessary.
func Open(ctx context.Context, path string) (*DB, error) {
	conn, err := sqlx.Open(repository.Driver, path)
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(ctx, conn.DB); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("PRAGMA foreign_keys: %w", err)
	}
	return &DB{
		conn: conn,
		cr:   repository.NewConversationRepository(),
		mr:   repository.NewMessageRepository(),
	}, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

// Exchange is one prompt/reply pair to be recorded.
type Exchange struct {
	// ConversationID is the server assigned conversation ID.
	ConversationID string
	// ParentID is the ID of the message that the prompt was chained to.
	ParentID string
	// PromptID is the client generated ID of the prompt message.
	PromptID string
	// ReplyID is the server assigned ID of the assistant reply.
	ReplyID string
	Account string
	Model   string
	Prompt  string
	Reply   string
}

// Append records the exchange in the log, creating the conversation entry
// on first sight.
func (d *DB) Append(ctx context.Context, x Exchange) error {
	if x.ConversationID == "" || x.ReplyID == "" {
		return errors.New("conversation and reply IDs are required")
	}
	tx, err := d.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	conv := repository.NewDBConversation(x.ConversationID, x.Account, x.Model, title(x.Prompt))
	if err := d.cr.Upsert(ctx, tx, conv); err != nil {
		return fmt.Errorf("conversation: %w", err)
	}
	mm := []*repository.DBMessage{
		repository.NewDBMessage(x.ConversationID, x.PromptID, x.ParentID, roleUser, x.Prompt),
		repository.NewDBMessage(x.ConversationID, x.ReplyID, x.PromptID, roleAssistant, x.Reply),
	}
	if _, err := d.mr.InsertAll(ctx, tx, sliceSeq(mm)); err != nil {
		return fmt.Errorf("messages: %w", err)
	}
	return tx.Commit()
}

// Position is the point at which a conversation can be continued.
type Position struct {
	ConversationID string
	ParentID       string
	Model          string
}

// Resume returns the position of the most recent conversation of the
// account.  Empty account matches any.  If the log is empty, it returns
// ErrNoHistory.
func (d *DB) Resume(ctx context.Context, account string) (*Position, error) {
	c, err := d.cr.Latest(ctx, d.conn, acctFilter(account))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoHistory
		}
		return nil, err
	}
	pos := &Position{ConversationID: c.ID, Model: c.Model}
	m, err := d.mr.LastOfRole(ctx, d.conn, c.ID, roleAssistant)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pos, nil
		}
		return nil, err
	}
	pos.ParentID = m.MessageID
	return pos, nil
}

// Conversation is a conversation log entry.
type Conversation struct {
	ID        string
	Account   string
	Model     string
	Title     string
	Messages  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Conversations returns all logged conversations of the account, most
// recently updated first.  Empty account matches any.
func (d *DB) Conversations(ctx context.Context, account string) ([]Conversation, error) {
	cc, err := d.cr.All(ctx, d.conn, acctFilter(account))
	if err != nil {
		return nil, err
	}
	out := make([]Conversation, len(cc))
	for i, c := range cc {
		n, err := d.mr.Count(ctx, d.conn, c.ID)
		if err != nil {
			return nil, err
		}
		out[i] = Conversation{
			ID:        c.ID,
			Account:   c.Account,
			Model:     c.Model,
			Title:     strDeref(c.Title),
			Messages:  n,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}
	}
	return out, nil
}

// Message is a single logged message.
type Message struct {
	MessageID string
	ParentID  string
	Role      string
	Content   string
	CreatedAt time.Time
}

// Messages returns the messages of the conversation in the order they
// were exchanged.
func (d *DB) Messages(ctx context.Context, conversationID string) ([]Message, error) {
	mm, err := d.mr.AllForConversation(ctx, d.conn, conversationID)
	if err != nil {
		return nil, err
	}
	out := make([]Message, len(mm))
	for i, m := range mm {
		out[i] = Message{
			MessageID: m.MessageID,
			ParentID:  strDeref(m.ParentID),
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}

// Delete removes the conversation and all its messages.  It returns
// sql.ErrNoRows if the conversation is not in the log.
func (d *DB) Delete(ctx context.Context, conversationID string) error {
	n, err := d.cr.Delete(ctx, d.conn, conversationID)
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// maximum length of a derived conversation title.
const maxTitle = 80

// title derives the conversation title from the first line of the prompt.
func title(prompt string) string {
	t, _, _ := strings.Cut(strings.TrimSpace(prompt), "\n")
	if utf8.RuneCountInString(t) > maxTitle {
		t = string([]rune(t)[:maxTitle-3]) + "..."
	}
	return t
}

// sliceSeq converts the slice into the iterator shape that the repository
// accepts.
func sliceSeq[T any](tt []T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, t := range tt {
			if !yield(t, nil) {
				return
			}
		}
	}
}

func acctFilter(account string) *string {
	if account == "" {
		return nil
	}
	return &account
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
