package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rusq/tagops"
)

// DBConversation is a single conversation thread on the server, as seen by
// this client.
type DBConversation struct {
	ID        string    `db:"ID"`
	Account   string    `db:"ACCOUNT"`
	Model     string    `db:"MODEL"`
	Title     *string   `db:"TITLE,omitempty"`
	CreatedAt time.Time `db:"CREATED_AT,omitempty"`
	UpdatedAt time.Time `db:"UPDATED_AT,omitempty"`
}

func NewDBConversation(id, account, model, title string) *DBConversation {
	return &DBConversation{
		ID:      id,
		Account: account,
		Model:   model,
		Title:   orNull(title != "", title),
	}
}

func (*DBConversation) Table() string {
	return "CONVERSATION"
}

func (*DBConversation) Columns() []string {
	return []string{"ID", "ACCOUNT", "MODEL", "TITLE"}
}

func (c *DBConversation) Values() []any {
	return []any{
		c.ID,
		c.Account,
		c.Model,
		c.Title,
	}
}

var convCols = tagops.Tags(DBConversation{}, dbTag)

type ConversationRepository interface {
	repository[*DBConversation]
	// Upsert should insert the conversation, or, if it is already known,
	// bump its update time and model.
	Upsert(ctx context.Context, conn sqlx.ExtContext, c *DBConversation) error
	// Get should return the conversation by its ID.
	Get(ctx context.Context, conn sqlx.ExtContext, id string) (*DBConversation, error)
	// Latest should return the most recently updated conversation.  If
	// account is not nil, only conversations of that account are
	// considered.
	Latest(ctx context.Context, conn sqlx.ExtContext, account *string) (*DBConversation, error)
	// All should return all conversations, most recently updated first.
	All(ctx context.Context, conn sqlx.ExtContext, account *string) ([]DBConversation, error)
	// Delete should remove the conversation and its messages.
	Delete(ctx context.Context, conn sqlx.ExtContext, id string) (int64, error)
}

type conversationRepository struct {
	genericRepository[*DBConversation]
}

func NewConversationRepository() ConversationRepository {
	return conversationRepository{newGenericRepository[*DBConversation]()}
}

func (r conversationRepository) Upsert(ctx context.Context, conn sqlx.ExtContext, c *DBConversation) error {
	stmt := r.stmtInsert(c) +
		" ON CONFLICT (ID) DO UPDATE SET UPDATED_AT = CURRENT_TIMESTAMP, MODEL = excluded.MODEL"
	if _, err := conn.ExecContext(ctx, conn.Rebind(stmt), c.Values()...); err != nil {
		return err
	}
	return nil
}

func (r conversationRepository) Get(ctx context.Context, conn sqlx.ExtContext, id string) (*DBConversation, error) {
	c := new(DBConversation)
	stmt := "SELECT " + strings.Join(convCols, ",") + " FROM CONVERSATION WHERE ID = ?"
	if err := conn.QueryRowxContext(ctx, conn.Rebind(stmt), id).StructScan(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r conversationRepository) Latest(ctx context.Context, conn sqlx.ExtContext, account *string) (*DBConversation, error) {
	c := new(DBConversation)
	var stmt strings.Builder
	var binds []any
	addbind := newBindAddFn(&stmt, &binds)
	stmt.WriteString("SELECT " + strings.Join(convCols, ",") + " FROM CONVERSATION")
	addbind(account != nil, " WHERE ACCOUNT = ?", account)
	stmt.WriteString(" ORDER BY UPDATED_AT DESC, ID DESC LIMIT 1")
	if err := conn.QueryRowxContext(ctx, conn.Rebind(stmt.String()), binds...).StructScan(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r conversationRepository) All(ctx context.Context, conn sqlx.ExtContext, account *string) ([]DBConversation, error) {
	var stmt strings.Builder
	var binds []any
	addbind := newBindAddFn(&stmt, &binds)
	stmt.WriteString("SELECT " + strings.Join(convCols, ",") + " FROM CONVERSATION")
	addbind(account != nil, " WHERE ACCOUNT = ?", account)
	stmt.WriteString(" ORDER BY UPDATED_AT DESC, ID DESC")
	var cc []DBConversation
	if err := sqlx.SelectContext(ctx, conn, &cc, conn.Rebind(stmt.String()), binds...); err != nil {
		return nil, err
	}
	return cc, nil
}

func (r conversationRepository) Delete(ctx context.Context, conn sqlx.ExtContext, id string) (int64, error) {
	ret, err := conn.ExecContext(ctx, conn.Rebind("DELETE FROM CONVERSATION WHERE ID = ?"), id)
	if err != nil {
		return 0, err
	}
	return ret.RowsAffected()
}
