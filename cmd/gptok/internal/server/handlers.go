package server

// In this file: request handlers of the local facade.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/internal/backend"
)

// session is the slice of [gptok.Session] that the handlers use.
type session interface {
	SessionInfo() *auth.SessionInfo
	Ask(ctx context.Context, req backend.ConversationRequest) (*backend.ConversationEvent, error)
	AskStream(ctx context.Context, req backend.ConversationRequest, fn func(backend.ConversationEvent) error) error
}

// facade serves the session over HTTP.
type facade struct {
	sess session
	lg   *slog.Logger
}

func newMux(sess session) *http.ServeMux {
	f := &facade{sess: sess, lg: slog.Default()}
	mux := http.NewServeMux()
	mux.Handle("GET /healthcheck", http.HandlerFunc(healthcheck))
	mux.HandleFunc("GET /v1/session", f.sessionHandler)
	mux.HandleFunc("POST /v1/ask", f.askHandler)
	return mux
}

func healthcheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// sessionHandler returns the session information captured during the
// startup credential test.
func (f *facade) sessionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(f.sess.SessionInfo()); err != nil {
		f.lg.WarnContext(r.Context(), "response write failed", "error", err)
	}
}

// askRequest is the body of the ask endpoint request.
type askRequest struct {
	Prompt          string `json:"prompt"`
	ConversationID  string `json:"conversation_id,omitempty"`
	ParentMessageID string `json:"parent_message_id,omitempty"`
	Model           string `json:"model,omitempty"`
}

// askResponse is the reply of the ask endpoint in the JSON mode.
type askResponse struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
	Text           string `json:"text"`
}

const mimeEventStream = "text/event-stream"

func (f *facade) askHandler(w http.ResponseWriter, r *http.Request) {
	var aq askRequest
	if err := json.NewDecoder(r.Body).Decode(&aq); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(aq.Prompt) == "" {
		http.Error(w, "empty prompt", http.StatusBadRequest)
		return
	}
	req := backend.NewConversationRequest(aq.ConversationID, aq.ParentMessageID, aq.Model, aq.Prompt)
	if strings.Contains(r.Header.Get("Accept"), mimeEventStream) {
		f.askStream(w, r, req)
		return
	}
	f.askOnce(w, r, req)
}

func (f *facade) askOnce(w http.ResponseWriter, r *http.Request, req backend.ConversationRequest) {
	ev, err := f.sess.Ask(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), errStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(askResponse{
		ConversationID: ev.ConversationID,
		MessageID:      ev.MessageID(),
		Text:           ev.Text(),
	}); err != nil {
		f.lg.WarnContext(r.Context(), "response write failed", "error", err)
	}
}

// askStream relays the reply as server-sent events.  Each event carries the
// cumulative reply snapshot, mirroring the upstream stream.
func (f *facade) askStream(w http.ResponseWriter, r *http.Request, req backend.ConversationRequest) {
	fl, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	// headers are not written out until the first event.
	w.Header().Set("Content-Type", mimeEventStream)
	w.Header().Set("Cache-Control", "no-cache")

	var wrote bool
	err := f.sess.AskStream(r.Context(), req, func(ev backend.ConversationEvent) error {
		data, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		fl.Flush()
		wrote = true
		return nil
	})
	if err != nil {
		if !wrote {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		// too late for a status code, relay the error the way the upstream
		// does, in the event body.
		f.lg.ErrorContext(r.Context(), "stream failed", "error", err)
		data, _ := json.Marshal(backend.ConversationEvent{Error: err.Error()})
		fmt.Fprintf(w, "data: %s\n\n", data)
		fl.Flush()
		return
	}
	fmt.Fprint(w, "data: [DONE]\n\n")
	fl.Flush()
}

// errStatus maps a session error to the HTTP status code.  Upstream API
// errors keep their original status.
func errStatus(err error) int {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	if auth.IsInvalidAuthErr(err) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
