package gptok

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusq/gptok/internal/backend"
)

const (
	testMsgID  = "c0b5c3f1-93f4-4bfb-8f56-2d7e00a5f4a1"
	testConvID = "5f2f8b0e-6f0a-4d8c-9a4e-aa8e3f6b7c21"
)

// testStream is a shortened conversation event stream with two reply
// snapshots.
const testStream = `event: message
data: {"message": {"id": "c0b5c3f1-93f4-4bfb-8f56-2d7e00a5f4a1", "author": {"role": "assistant"}, "content": {"content_type": "text", "parts": ["All"]}, "status": "in_progress", "end_turn": null}, "conversation_id": "5f2f8b0e-6f0a-4d8c-9a4e-aa8e3f6b7c21", "error": null}

event: message
data: {"message": {"id": "c0b5c3f1-93f4-4bfb-8f56-2d7e00a5f4a1", "author": {"role": "assistant"}, "content": {"content_type": "text", "parts": ["All good."]}, "status": "finished_successfully", "end_turn": true}, "conversation_id": "5f2f8b0e-6f0a-4d8c-9a4e-aa8e3f6b7c21", "error": null}

data: [DONE]
`

// askHandler responds with testStream, capturing the decoded request in
// gotReq.
func askHandler(t *testing.T, gotReq *backend.ConversationRequest) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/conversation", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(gotReq))
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(testStream))
	}
}

func testRequest(prompt string) backend.ConversationRequest {
	return backend.ConversationRequest{
		Messages: []backend.Message{backend.NewMessage(backend.RoleUser, prompt)},
	}
}

func TestSession_Ask(t *testing.T) {
	t.Run("returns the final snapshot", func(t *testing.T) {
		var gotReq backend.ConversationRequest
		srv := httptest.NewServer(askHandler(t, &gotReq))
		defer srv.Close()

		s := testSession(t, srv)
		ev, err := s.Ask(context.Background(), testRequest("status?"))
		require.NoError(t, err)
		assert.Equal(t, "All good.", ev.Text())
		assert.Equal(t, testMsgID, ev.MessageID())
		assert.Equal(t, testConvID, ev.ConversationID)
		assert.True(t, ev.Message.EndTurn)
		assert.Equal(t, backend.DefaultModel, gotReq.Model)
	})
	t.Run("session model is the default", func(t *testing.T) {
		var gotReq backend.ConversationRequest
		srv := httptest.NewServer(askHandler(t, &gotReq))
		defer srv.Close()

		s := testSession(t, srv, WithModel("gpt-4"))
		_, err := s.Ask(context.Background(), testRequest("status?"))
		require.NoError(t, err)
		assert.Equal(t, "gpt-4", gotReq.Model)
	})
	t.Run("request model wins over the session model", func(t *testing.T) {
		var gotReq backend.ConversationRequest
		srv := httptest.NewServer(askHandler(t, &gotReq))
		defer srv.Close()

		s := testSession(t, srv, WithModel("gpt-4"))
		req := testRequest("status?")
		req.Model = "gpt-4-browsing"
		_, err := s.Ask(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "gpt-4-browsing", gotReq.Model)
	})
	t.Run("cancelled context", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("request should not be sent")
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := testSession(t, srv)
		_, err := s.Ask(ctx, testRequest("status?"))
		assert.Error(t, err)
	})
}

func TestSession_AskStream(t *testing.T) {
	var gotReq backend.ConversationRequest
	srv := httptest.NewServer(askHandler(t, &gotReq))
	defer srv.Close()

	s := testSession(t, srv)
	var snapshots []string
	err := s.AskStream(context.Background(), testRequest("status?"), func(ev backend.ConversationEvent) error {
		snapshots = append(snapshots, ev.Text())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"All", "All good."}, snapshots)
}
