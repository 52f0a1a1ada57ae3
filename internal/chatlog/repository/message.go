package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rusq/tagops"
)

// DBMessage is a single message of a conversation.  MessageID carries the
// server assigned message ID, which chains the conversation: the ID of the
// last assistant message is the parent for the next request.
type DBMessage struct {
	ID             int64     `db:"ID,omitempty"`
	ConversationID string    `db:"CONVERSATION_ID"`
	MessageID      string    `db:"MESSAGE_ID"`
	ParentID       *string   `db:"PARENT_ID,omitempty"`
	Role           string    `db:"ROLE"`
	Content        string    `db:"CONTENT"`
	CreatedAt      time.Time `db:"CREATED_AT,omitempty"`
}

func NewDBMessage(convID, msgID, parentID, role, content string) *DBMessage {
	return &DBMessage{
		ConversationID: convID,
		MessageID:      msgID,
		ParentID:       orNull(parentID != "", parentID),
		Role:           role,
		Content:        content,
	}
}

func (*DBMessage) Table() string {
	return "MESSAGE"
}

func (*DBMessage) Columns() []string {
	return []string{"CONVERSATION_ID", "MESSAGE_ID", "PARENT_ID", "ROLE", "CONTENT"}
}

func (m *DBMessage) Values() []any {
	return []any{
		m.ConversationID,
		m.MessageID,
		m.ParentID,
		m.Role,
		m.Content,
	}
}

var msgCols = tagops.Tags(DBMessage{}, dbTag)

type MessageRepository interface {
	repository[*DBMessage]
	// AllForConversation should return all messages of the conversation in
	// the insertion order.
	AllForConversation(ctx context.Context, conn sqlx.ExtContext, convID string) ([]DBMessage, error)
	// LastOfRole should return the newest message of the conversation
	// having the given role.
	LastOfRole(ctx context.Context, conn sqlx.ExtContext, convID string, role string) (*DBMessage, error)
	// Count should return the number of messages in the conversation.
	Count(ctx context.Context, conn sqlx.ExtContext, convID string) (int64, error)
}

type messageRepository struct {
	genericRepository[*DBMessage]
}

func NewMessageRepository() MessageRepository {
	return messageRepository{newGenericRepository[*DBMessage]()}
}

func (r messageRepository) AllForConversation(ctx context.Context, conn sqlx.ExtContext, convID string) ([]DBMessage, error) {
	stmt := "SELECT " + strings.Join(msgCols, ",") + " FROM MESSAGE WHERE CONVERSATION_ID = ? ORDER BY ID"
	var mm []DBMessage
	if err := sqlx.SelectContext(ctx, conn, &mm, conn.Rebind(stmt), convID); err != nil {
		return nil, err
	}
	return mm, nil
}

func (r messageRepository) LastOfRole(ctx context.Context, conn sqlx.ExtContext, convID string, role string) (*DBMessage, error) {
	m := new(DBMessage)
	stmt := "SELECT " + strings.Join(msgCols, ",") + " FROM MESSAGE WHERE CONVERSATION_ID = ? AND ROLE = ? ORDER BY ID DESC LIMIT 1"
	if err := conn.QueryRowxContext(ctx, conn.Rebind(stmt), convID, role).StructScan(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r messageRepository) Count(ctx context.Context, conn sqlx.ExtContext, convID string) (int64, error) {
	var n int64
	if err := conn.QueryRowxContext(ctx, conn.Rebind("SELECT COUNT(*) FROM MESSAGE WHERE CONVERSATION_ID = ?"), convID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
