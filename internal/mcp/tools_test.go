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

package mcp

import (
	"errors"
	"testing"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/internal/backend"
)

// isErrorResult returns true when the result carries IsError=true.
func isErrorResult(r *mcplib.CallToolResult) bool {
	return r != nil && r.IsError
}

// firstText returns the text of the first TextContent in the result.
func firstText(t *testing.T, r *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, r.Content, "result has no content")
	txt, ok := r.Content[0].(mcplib.TextContent)
	require.True(t, ok, "first content item is not TextContent")
	return txt.Text
}

// reply returns the final conversation event with the given reply text.
func reply(convID, msgID, text string) *backend.ConversationEvent {
	return &backend.ConversationEvent{
		ConversationID: convID,
		Message: &backend.EventMessage{
			ID:      msgID,
			Author:  backend.Author{Role: backend.RoleAssistant},
			Content: backend.Content{ContentType: "text", Parts: []string{text}},
			EndTurn: true,
		},
	}
}

// ─── handleGetSessionInfo ─────────────────────────────────────────────────────

func TestHandleGetSessionInfo(t *testing.T) {
	si := &auth.SessionInfo{
		Expires:     time.Date(2080, 1, 1, 0, 0, 0, 0, time.UTC),
		AccessToken: "xyzzy",
	}
	si.User.Email = "spam@example.com"

	tests := []struct {
		name        string
		sess        Session
		wantIsError bool
		wantText    string
	}{
		{
			name:        "no session",
			sess:        nil,
			wantIsError: true,
			wantText:    "no authenticated session",
		},
		{
			name:        "missing document",
			sess:        &fakeSession{si: nil},
			wantIsError: true,
			wantText:    "not available",
		},
		{
			name:     "returns the document",
			sess:     &fakeSession{si: si},
			wantText: "spam@example.com",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(tt.sess)
			result, err := srv.handleGetSessionInfo(t.Context(), mcplib.CallToolRequest{})
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.wantIsError, isErrorResult(result))
			assert.Contains(t, firstText(t, result), tt.wantText)
		})
	}
}

// ─── handleGetAccessToken ─────────────────────────────────────────────────────

func TestHandleGetAccessToken(t *testing.T) {
	tests := []struct {
		name        string
		sess        Session
		wantIsError bool
		wantText    string
	}{
		{
			name:        "no session",
			sess:        nil,
			wantIsError: true,
			wantText:    "no authenticated session",
		},
		{
			name:        "no token",
			sess:        &fakeSession{token: ""},
			wantIsError: true,
			wantText:    "no token",
		},
		{
			name:     "returns the token",
			sess:     &fakeSession{token: "xyzzy"},
			wantText: "xyzzy",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(tt.sess)
			result, err := srv.handleGetAccessToken(t.Context(), mcplib.CallToolRequest{})
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.wantIsError, isErrorResult(result))
			assert.Contains(t, firstText(t, result), tt.wantText)
		})
	}
}

// ─── handleAsk ────────────────────────────────────────────────────────────────

func TestHandleAsk(t *testing.T) {
	t.Run("missing prompt returns error result", func(t *testing.T) {
		srv := New(&fakeSession{})
		result, err := srv.handleAsk(t.Context(), toolReq(nil))
		require.NoError(t, err)
		assert.True(t, isErrorResult(result))
		assert.Contains(t, firstText(t, result), "prompt is required")
	})
	t.Run("returns the reply", func(t *testing.T) {
		f := &fakeSession{ev: reply("C1", "M1", "the answer is 42")}
		srv := New(f)

		result, err := srv.handleAsk(t.Context(), toolReq(map[string]any{"prompt": "question"}))
		require.NoError(t, err)
		require.False(t, isErrorResult(result))
		text := firstText(t, result)
		assert.Contains(t, text, "the answer is 42")
		assert.Contains(t, text, "C1")

		// a new conversation gets the defaults filled in.
		require.Len(t, f.req.Messages, 1)
		assert.Equal(t, "question", f.req.Messages[0].Content.Parts[0])
		assert.Empty(t, f.req.ConversationID)
		assert.NotEmpty(t, f.req.ParentMessageID)
		assert.Equal(t, backend.DefaultModel, f.req.Model)
	})
	t.Run("continues the conversation", func(t *testing.T) {
		f := &fakeSession{ev: reply("C1", "M2", "continued")}
		srv := New(f)

		_, err := srv.handleAsk(t.Context(), toolReq(map[string]any{
			"prompt":            "and then?",
			"conversation_id":   "C1",
			"parent_message_id": "M1",
		}))
		require.NoError(t, err)
		assert.Equal(t, "C1", f.req.ConversationID)
		assert.Equal(t, "M1", f.req.ParentMessageID)
	})
	t.Run("upstream failure returns error result", func(t *testing.T) {
		srv := New(&fakeSession{err: errors.New("rate limited")})
		result, err := srv.handleAsk(t.Context(), toolReq(map[string]any{"prompt": "question"}))
		require.NoError(t, err)
		assert.True(t, isErrorResult(result))
		assert.Contains(t, firstText(t, result), "rate limited")
	})
}
