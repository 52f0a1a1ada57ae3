package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// a shortened capture of a conversation stream: events are cumulative
// snapshots, terminated by the sentinel.
const testStream = `event: message

data: {"message": {"id": "8a9ff4b1-4a9c-4a3f-bc87-ff1c93488a31", "author": {"role": "assistant"}, "content": {"content_type": "text", "parts": ["Hello"]}, "status": "in_progress", "end_turn": null}, "conversation_id": "2f074414-a9e8-4c0a-b1ce-53ba84269902", "error": null}

data: {"message": {"id": "8a9ff4b1-4a9c-4a3f-bc87-ff1c93488a31", "author": {"role": "assistant"}, "content": {"content_type": "text", "parts": ["Hello, world."]}, "status": "finished_successfully", "end_turn": true}, "conversation_id": "2f074414-a9e8-4c0a-b1ce-53ba84269902", "error": null}

data: [DONE]
`

const (
	testMsgID  = "8a9ff4b1-4a9c-4a3f-bc87-ff1c93488a31"
	testConvID = "2f074414-a9e8-4c0a-b1ce-53ba84269902"
)

func Test_scanEvents(t *testing.T) {
	collect := func(t *testing.T, stream string) ([]ConversationEvent, error) {
		t.Helper()
		var evts []ConversationEvent
		err := scanEvents(strings.NewReader(stream), func(ev ConversationEvent) error {
			evts = append(evts, ev)
			return nil
		})
		return evts, err
	}

	t.Run("collects text events", func(t *testing.T) {
		evts, err := collect(t, testStream)
		assert.NoError(t, err)
		if assert.Len(t, evts, 2) {
			assert.Equal(t, "Hello", evts[0].Text())
			assert.Equal(t, "Hello, world.", evts[1].Text())
			assert.Equal(t, testConvID, evts[1].ConversationID)
			assert.Equal(t, testMsgID, evts[1].MessageID())
			assert.True(t, evts[1].Message.EndTurn)
		}
	})
	t.Run("stream without the sentinel still collects", func(t *testing.T) {
		stream := strings.ReplaceAll(testStream, "data: [DONE]\n", "")
		evts, err := collect(t, stream)
		assert.NoError(t, err)
		assert.Len(t, evts, 2)
	})
	t.Run("skips chatter and malformed events", func(t *testing.T) {
		stream := "data: {\"conversation_id\": \"" + testConvID + "\"}\n" +
			"data: {\"message\": {\"id\": \"m0\", \"content\": {\"content_type\": \"code\", \"parts\": [\"x\"]}}, \"conversation_id\": \"" + testConvID + "\"}\n" +
			"data: {oops\n" +
			testStream
		evts, err := collect(t, stream)
		assert.NoError(t, err)
		assert.Len(t, evts, 2)
	})
	t.Run("error event terminates the stream", func(t *testing.T) {
		stream := "data: {\"error\": \"Your authentication token has expired.\"}\n" + testStream
		evts, err := collect(t, stream)
		assert.ErrorContains(t, err, "Your authentication token has expired.")
		assert.Empty(t, evts)
	})
	t.Run("bare detail body instead of a stream", func(t *testing.T) {
		evts, err := collect(t, `{"detail":"Too many requests in 1 hour. Try again later."}`)
		var apiErr *APIError
		if assert.ErrorAs(t, err, &apiErr) {
			assert.Equal(t, "Too many requests in 1 hour. Try again later.", apiErr.Detail)
		}
		assert.Empty(t, evts)
	})
	t.Run("callback error stops the scan", func(t *testing.T) {
		errStop := errors.New("stop")
		var calls int
		err := scanEvents(strings.NewReader(testStream), func(ConversationEvent) error {
			calls++
			return errStop
		})
		assert.ErrorIs(t, err, errStop)
		assert.Equal(t, 1, calls)
	})
}

func TestNewConversationRequest(t *testing.T) {
	t.Run("defaults are filled in", func(t *testing.T) {
		req := NewConversationRequest("", "", "", "hello")
		assert.Equal(t, actionNext, req.Action)
		assert.Equal(t, DefaultModel, req.Model)
		assert.Empty(t, req.ConversationID)
		assert.NoError(t, uuid.Validate(req.ParentMessageID))
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, RoleUser, req.Messages[0].Role)
			assert.Equal(t, []string{"hello"}, req.Messages[0].Content.Parts)
			assert.NoError(t, uuid.Validate(req.Messages[0].ID))
		}
	})
	t.Run("explicit values are kept", func(t *testing.T) {
		req := NewConversationRequest(testConvID, testMsgID, "gpt-4", "hello")
		assert.Equal(t, testConvID, req.ConversationID)
		assert.Equal(t, testMsgID, req.ParentMessageID)
		assert.Equal(t, "gpt-4", req.Model)
	})
}

func TestClient_Ask(t *testing.T) {
	t.Run("returns the final event", func(t *testing.T) {
		var gotReq ConversationRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/conversation", r.URL.Path)
			assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
			assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
				t.Error(err)
			}
			w.Header().Set("Content-Type", "text/event-stream")
			w.Write([]byte(testStream))
		}))
		defer srv.Close()

		cl, err := NewWithClient(testToken, srv.Client(), OptionAPIURL(srv.URL))
		if err != nil {
			t.Fatal(err)
		}
		ev, err := cl.Ask(context.Background(), NewConversationRequest("", "", "", "say hello"))
		assert.NoError(t, err)
		if assert.NotNil(t, ev) {
			assert.Equal(t, "Hello, world.", ev.Text())
			assert.Equal(t, testConvID, ev.ConversationID)
			assert.Equal(t, testMsgID, ev.MessageID())
		}

		assert.Equal(t, actionNext, gotReq.Action)
		assert.Equal(t, DefaultModel, gotReq.Model)
		assert.NotEmpty(t, gotReq.ParentMessageID)
		if assert.Len(t, gotReq.Messages, 1) {
			assert.Equal(t, []string{"say hello"}, gotReq.Messages[0].Content.Parts)
		}
	})
	t.Run("empty request defaults are filled by AskStream", func(t *testing.T) {
		var gotReq ConversationRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
				t.Error(err)
			}
			w.Write([]byte(testStream))
		}))
		defer srv.Close()

		cl, err := NewWithClient(testToken, srv.Client(), OptionAPIURL(srv.URL))
		if err != nil {
			t.Fatal(err)
		}
		_, err = cl.Ask(context.Background(), ConversationRequest{
			Messages: []Message{NewMessage(RoleUser, "hi")},
		})
		assert.NoError(t, err)
		assert.Equal(t, actionNext, gotReq.Action)
		assert.Equal(t, DefaultModel, gotReq.Model)
		assert.NotEmpty(t, gotReq.ParentMessageID)
	})
	t.Run("no reply", func(t *testing.T) {
		srv := testServer(http.StatusOK, []byte("data: [DONE]\n"))
		defer srv.Close()

		cl, err := NewWithClient(testToken, srv.Client(), OptionAPIURL(srv.URL))
		if err != nil {
			t.Fatal(err)
		}
		_, err = cl.Ask(context.Background(), NewConversationRequest("", "", "", "hi"))
		assert.ErrorIs(t, err, ErrNoReply)
	})
	t.Run("rate limited", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "30")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"detail":"rate limited"}`))
		}))
		defer srv.Close()

		cl, err := NewWithClient(testToken, srv.Client(), OptionAPIURL(srv.URL))
		if err != nil {
			t.Fatal(err)
		}
		_, err = cl.Ask(context.Background(), NewConversationRequest("", "", "", "hi"))
		var apiErr *APIError
		if assert.ErrorAs(t, err, &apiErr) {
			assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
			assert.Equal(t, "rate limited", apiErr.Detail)
		}
	})
}

func TestClient_AskStream(t *testing.T) {
	srv := testServer(http.StatusOK, []byte(testStream))
	defer srv.Close()

	cl, err := NewWithClient(testToken, srv.Client(), OptionAPIURL(srv.URL))
	if err != nil {
		t.Fatal(err)
	}
	var snapshots []string
	err = cl.AskStream(context.Background(), NewConversationRequest("", "", "", "say hello"), func(ev ConversationEvent) error {
		snapshots = append(snapshots, ev.Text())
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Hello", "Hello, world."}, snapshots)
}
