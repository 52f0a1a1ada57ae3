package chatlog

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(context.Background(), filepath.Join(t.TempDir(), DefFilename))
	if err != nil {
		t.Fatalf("Open() err = %v; want nil", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

// exchanges for two conversations; IDs are ordered so that the ordering
// assertions do not depend on the timestamp resolution.
var (
	testXA1 = Exchange{
		ConversationID: "11111111-a9e8-4c0a-b1ce-53ba84269902",
		PromptID:       "u1",
		ReplyID:        "a1",
		Account:        "default",
		Model:          "gpt-4",
		Prompt:         "What is the answer?",
		Reply:          "42.",
	}
	testXA2 = Exchange{
		ConversationID: "11111111-a9e8-4c0a-b1ce-53ba84269902",
		ParentID:       "a1",
		PromptID:       "u2",
		ReplyID:        "a2",
		Account:        "default",
		Model:          "gpt-4",
		Prompt:         "To what?",
		Reply:          "To everything.",
	}
	testXB1 = Exchange{
		ConversationID: "22222222-a9e8-4c0a-b1ce-53ba84269902",
		PromptID:       "u3",
		ReplyID:        "a3",
		Account:        "work",
		Model:          "text-davinci-002-render-sha",
		Prompt:         "hello",
		Reply:          "hi",
	}
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefFilename)
	d, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() err = %v; want nil", err)
	}
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	// reopening an existing log must not fail.
	d, err = Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() reopen err = %v; want nil", err)
	}
	d.Close()
}

func TestDB_Append(t *testing.T) {
	ctx := context.Background()
	t.Run("records the exchange", func(t *testing.T) {
		d := testDB(t)
		if err := d.Append(ctx, testXA1); err != nil {
			t.Fatalf("Append() err = %v; want nil", err)
		}
		cc, err := d.Conversations(ctx, "")
		if err != nil {
			t.Fatal(err)
		}
		if assert.Len(t, cc, 1) {
			assert.Equal(t, testXA1.ConversationID, cc[0].ID)
			assert.Equal(t, "What is the answer?", cc[0].Title)
			assert.Equal(t, int64(2), cc[0].Messages)
		}
	})
	t.Run("missing IDs are rejected", func(t *testing.T) {
		d := testDB(t)
		assert.Error(t, d.Append(ctx, Exchange{Prompt: "hi", Reply: "ho"}))
		assert.Error(t, d.Append(ctx, Exchange{ConversationID: "c1", Prompt: "hi"}))
	})
	t.Run("title survives followups", func(t *testing.T) {
		d := testDB(t)
		if err := d.Append(ctx, testXA1); err != nil {
			t.Fatal(err)
		}
		if err := d.Append(ctx, testXA2); err != nil {
			t.Fatal(err)
		}
		cc, err := d.Conversations(ctx, "")
		if err != nil {
			t.Fatal(err)
		}
		if assert.Len(t, cc, 1) {
			assert.Equal(t, "What is the answer?", cc[0].Title)
			assert.Equal(t, int64(4), cc[0].Messages)
		}
	})
}

func TestDB_Resume(t *testing.T) {
	ctx := context.Background()
	t.Run("empty log", func(t *testing.T) {
		d := testDB(t)
		_, err := d.Resume(ctx, "")
		assert.ErrorIs(t, err, ErrNoHistory)
	})
	t.Run("resumes the last conversation", func(t *testing.T) {
		d := testDB(t)
		for _, x := range []Exchange{testXA1, testXA2, testXB1} {
			if err := d.Append(ctx, x); err != nil {
				t.Fatal(err)
			}
		}
		pos, err := d.Resume(ctx, "")
		if err != nil {
			t.Fatalf("Resume() err = %v; want nil", err)
		}
		assert.Equal(t, &Position{
			ConversationID: testXB1.ConversationID,
			ParentID:       "a3",
			Model:          "text-davinci-002-render-sha",
		}, pos)
	})
	t.Run("account filter", func(t *testing.T) {
		d := testDB(t)
		for _, x := range []Exchange{testXA1, testXA2, testXB1} {
			if err := d.Append(ctx, x); err != nil {
				t.Fatal(err)
			}
		}
		pos, err := d.Resume(ctx, "default")
		if err != nil {
			t.Fatalf("Resume() err = %v; want nil", err)
		}
		assert.Equal(t, &Position{
			ConversationID: testXA1.ConversationID,
			ParentID:       "a2",
			Model:          "gpt-4",
		}, pos)
	})
	t.Run("no history for the account", func(t *testing.T) {
		d := testDB(t)
		if err := d.Append(ctx, testXB1); err != nil {
			t.Fatal(err)
		}
		_, err := d.Resume(ctx, "personal")
		assert.ErrorIs(t, err, ErrNoHistory)
	})
}

func TestDB_Messages(t *testing.T) {
	ctx := context.Background()
	d := testDB(t)
	for _, x := range []Exchange{testXA1, testXA2} {
		if err := d.Append(ctx, x); err != nil {
			t.Fatal(err)
		}
	}
	mm, err := d.Messages(ctx, testXA1.ConversationID)
	if err != nil {
		t.Fatalf("Messages() err = %v; want nil", err)
	}
	if assert.Len(t, mm, 4) {
		assert.Equal(t, roleUser, mm[0].Role)
		assert.Equal(t, "What is the answer?", mm[0].Content)
		assert.Empty(t, mm[0].ParentID)

		assert.Equal(t, roleAssistant, mm[1].Role)
		assert.Equal(t, "42.", mm[1].Content)
		assert.Equal(t, "u1", mm[1].ParentID)

		// the followup chains to the previous assistant message.
		assert.Equal(t, "a1", mm[2].ParentID)
		assert.Equal(t, "a2", mm[3].MessageID)
	}
}

func TestDB_Delete(t *testing.T) {
	ctx := context.Background()
	d := testDB(t)
	for _, x := range []Exchange{testXA1, testXB1} {
		if err := d.Append(ctx, x); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.Delete(ctx, testXA1.ConversationID); err != nil {
		t.Fatalf("Delete() err = %v; want nil", err)
	}
	cc, err := d.Conversations(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if assert.Len(t, cc, 1) {
		assert.Equal(t, testXB1.ConversationID, cc[0].ID)
	}
	// messages must be gone with the conversation.
	mm, err := d.Messages(ctx, testXA1.ConversationID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Empty(t, mm)

	assert.ErrorIs(t, d.Delete(ctx, testXA1.ConversationID), sql.ErrNoRows)
}

func Test_title(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"short", "hello", "hello"},
		{"multiline", "first line\nsecond line", "first line"},
		{"surrounding space", "  hello  \nworld", "hello  "},
		{
			"long prompt is truncated",
			strings.Repeat("a", 100),
			strings.Repeat("a", maxTitle-3) + "...",
		},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, title(tt.prompt))
		})
	}
}
