package backend

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Conversation endpoint constants.
const (
	actionNext = "next"
	doneToken  = "[DONE]"

	contentTypeText = "text"
)

// Message author roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// an event line should never get this big.
const maxEventSize = 1024 * 1024

// ErrNoReply is returned when the stream terminates without a single
// assistant message.
var ErrNoReply = errors.New("server did not return a reply")

// Message is a single conversation message.
type Message struct {
	ID      string  `json:"id"`
	Role    string  `json:"role"`
	Content Content `json:"content"`
}

// Content is the message content.  Parts of a text message hold the
// message text in the first element.
type Content struct {
	ContentType string   `json:"content_type"`
	Parts       []string `json:"parts"`
}

// NewMessage returns a message with a fresh ID.
func NewMessage(role string, text string) Message {
	return Message{
		ID:   uuid.NewString(),
		Role: role,
		Content: Content{
			ContentType: contentTypeText,
			Parts:       []string{text},
		},
	}
}

// ConversationRequest is the request to the conversation endpoint.
type ConversationRequest struct {
	Action          string    `json:"action"`
	Messages        []Message `json:"messages"`
	ConversationID  string    `json:"conversation_id,omitempty"`
	ParentMessageID string    `json:"parent_message_id"`
	Model           string    `json:"model"`
}

// NewConversationRequest returns a request that sends the user prompt
// within the conversation convID, chaining it to the message parentID.
// Empty convID starts a new conversation, empty parentID generates a
// fresh one, empty model selects DefaultModel.
func NewConversationRequest(convID, parentID, model, prompt string) ConversationRequest {
	if parentID == "" {
		parentID = uuid.NewString()
	}
	if model == "" {
		model = DefaultModel
	}
	return ConversationRequest{
		Action:          actionNext,
		Messages:        []Message{NewMessage(RoleUser, prompt)},
		ConversationID:  convID,
		ParentMessageID: parentID,
		Model:           model,
	}
}

// ConversationEvent is one server-sent event of the conversation
// stream.  Events are cumulative: each carries the full assistant
// message text generated so far, not a delta.
type ConversationEvent struct {
	Message        *EventMessage `json:"message"`
	ConversationID string        `json:"conversation_id"`
	Error          string        `json:"error,omitempty"`
}

// EventMessage is the message within a stream event.
type EventMessage struct {
	ID      string  `json:"id"`
	Author  Author  `json:"author"`
	Content Content `json:"content"`
	Status  string  `json:"status"`
	EndTurn bool    `json:"end_turn"`
}

type Author struct {
	Role string `json:"role"`
}

// Text returns the accumulated message text.
func (ev *ConversationEvent) Text() string {
	if ev.Message == nil || len(ev.Message.Content.Parts) == 0 {
		return ""
	}
	return strings.TrimSpace(ev.Message.Content.Parts[0])
}

// MessageID returns the ID of the event message.  The final assistant
// message ID is the parent for the next request in the conversation.
func (ev *ConversationEvent) MessageID() string {
	if ev.Message == nil {
		return ""
	}
	return ev.Message.ID
}

// Ask sends the conversation request and returns the final event of the
// stream, which carries the complete assistant reply.
func (cl *Client) Ask(ctx context.Context, req ConversationRequest) (*ConversationEvent, error) {
	var last *ConversationEvent
	err := cl.AskStream(ctx, req, func(ev ConversationEvent) error {
		last = &ev
		return nil
	})
	if err != nil {
		return nil, err
	}
	if last == nil {
		return nil, ErrNoReply
	}
	return last, nil
}

// AskStream sends the conversation request and calls fn for every text
// event of the response stream until the stream terminates.  An error
// returned by fn stops the stream and is returned to the caller.
func (cl *Client) AskStream(ctx context.Context, req ConversationRequest, fn func(ev ConversationEvent) error) error {
	if req.Action == "" {
		req.Action = actionNext
	}
	if req.Model == "" {
		req.Model = DefaultModel
	}
	if req.ParentMessageID == "" {
		req.ParentMessageID = uuid.NewString()
	}
	resp, err := cl.post(ctx, "/conversation", "text/event-stream", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return scanEvents(resp.Body, fn)
}

// scanEvents reads the event stream, calling fn for each assistant text
// event, until the terminating sentinel or the end of the stream.
func scanEvents(r io.Reader, fn func(ev ConversationEvent) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, `{"detail"`) {
			// not a stream, but a bare JSON error from the frontend.
			return &APIError{Detail: errDetail([]byte(line))}
		}
		data, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			// event type lines, comments and keepalive blanks.
			continue
		}
		if data == doneToken {
			return nil
		}
		var ev ConversationEvent
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			continue
		}
		if ev.Error != "" {
			return fmt.Errorf("conversation error: %s", ev.Error)
		}
		// service chatter without a message body is not passed on.
		if ev.Message == nil || len(ev.Message.Content.Parts) == 0 {
			continue
		}
		if ev.Message.Content.ContentType != contentTypeText {
			continue
		}
		if err := fn(ev); err != nil {
			return err
		}
	}
	return scanner.Err()
}
