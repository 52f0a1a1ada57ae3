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

package gptok

// In this file: conversation operations.

import (
	"context"
	"runtime/trace"

	"github.com/rusq/gptok/internal/backend"
	"github.com/rusq/gptok/internal/network"
)

// Ask sends the prompt to the conversation endpoint and returns the final
// snapshot of the assistant reply.  If req.ConversationID is empty, the
// server starts a new conversation.  Missing request fields are populated
// with the session defaults.
func (s *Session) Ask(ctx context.Context, req backend.ConversationRequest) (*backend.ConversationEvent, error) {
	ctx, task := trace.NewTask(ctx, "Ask")
	defer task.End()

	if err := s.waitAsk(ctx); err != nil {
		return nil, err
	}
	return s.client.Ask(ctx, s.withDefaults(req))
}

// AskStream sends the prompt and calls fn for every reply snapshot on the
// event stream.  Snapshots are cumulative, each one carries the full reply
// text received so far.
func (s *Session) AskStream(ctx context.Context, req backend.ConversationRequest, fn func(backend.ConversationEvent) error) error {
	ctx, task := trace.NewTask(ctx, "AskStream")
	defer task.End()

	if err := s.waitAsk(ctx); err != nil {
		return err
	}
	return s.client.AskStream(ctx, s.withDefaults(req), fn)
}

func (s *Session) withDefaults(req backend.ConversationRequest) backend.ConversationRequest {
	if req.Model == "" {
		req.Model = s.cfg.model
	}
	return req
}

// waitAsk blocks until the conversation rate limiter allows the next
// request.  Asks are never retried, as replaying the prompt after a failed
// attempt would duplicate it on the server.
func (s *Session) waitAsk(ctx context.Context) error {
	var err error
	trace.WithRegion(ctx, "waitAsk", func() {
		err = s.limiter(network.TierAsk).Wait(ctx)
	})
	return err
}
