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

// In this file: MCP tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/gptok/internal/backend"
)

// errNoSession is returned by tool handlers when the server was constructed
// without a session.
var errNoSession = errors.New("no authenticated session")

// ─── get_session_info ─────────────────────────────────────────────────────────

func (s *Server) toolGetSessionInfo() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_session_info",
		mcplib.WithDescription(`Return the session information of the logged in user.

The document carries the user identity (id, name, email), the session expiry
and the access token.  It is captured when the server starts and does not
change during the server lifetime.`),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetSessionInfo}
}

func (s *Server) handleGetSessionInfo(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.sess == nil {
		return resultErr(errNoSession), nil
	}
	si := s.sess.SessionInfo()
	if si == nil {
		return resultErr(errors.New("get_session_info: session information is not available")), nil
	}
	result, err := resultJSON(si)
	if err != nil {
		return resultErr(fmt.Errorf("get_session_info: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_access_token ─────────────────────────────────────────────────────────

func (s *Server) toolGetAccessToken() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_access_token",
		mcplib.WithDescription(`Return the bearer access token of the session.

The token authorises requests to the backend API (the "Authorization:
Bearer" header).  Treat it as a secret: anyone holding it can use the
account until the session expires.`),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetAccessToken}
}

func (s *Server) handleGetAccessToken(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.sess == nil {
		return resultErr(errNoSession), nil
	}
	token := s.sess.AccessToken()
	if token == "" {
		return resultErr(errors.New("get_access_token: the session carries no token")), nil
	}
	return resultText(token), nil
}

// ─── ask ──────────────────────────────────────────────────────────────────────

func (s *Server) toolAsk() mcpsrv.ServerTool {
	tool := mcplib.NewTool("ask",
		mcplib.WithDescription(`Send a prompt to the conversation endpoint and return the reply.

The prompt is sent on behalf of the logged in user, same as typing it into
the web client.  To continue a conversation, pass the conversation_id and
parent_message_id from the previous reply.`),
		mcplib.WithString("prompt",
			mcplib.Description("The prompt text to send."),
			mcplib.Required(),
		),
		mcplib.WithString("conversation_id",
			mcplib.Description("Conversation to continue.  Empty starts a new one."),
		),
		mcplib.WithString("parent_message_id",
			mcplib.Description("Message to chain the prompt to (message_id of the previous reply)."),
		),
		mcplib.WithString("model",
			mcplib.Description("Conversation model slug.  Empty selects the account default."),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAsk}
}

// askResult is the JSON document returned by the ask tool.
type askResult struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
	Text           string `json:"text"`
}

func (s *Server) handleAsk(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.sess == nil {
		return resultErr(errNoSession), nil
	}
	prompt, ok := stringArg(req, "prompt")
	if !ok || prompt == "" {
		return resultErr(errors.New("ask: prompt is required")), nil
	}
	convID, _ := stringArg(req, "conversation_id")
	parentID, _ := stringArg(req, "parent_message_id")
	model, _ := stringArg(req, "model")

	s.logger.InfoContext(ctx, "mcp: ask", "conversation_id", convID, "model", model)

	ev, err := s.sess.Ask(ctx, backend.NewConversationRequest(convID, parentID, model, prompt))
	if err != nil {
		return resultErr(fmt.Errorf("ask: %w", err)), nil
	}
	result, err := resultJSON(askResult{
		ConversationID: ev.ConversationID,
		MessageID:      ev.MessageID(),
		Text:           ev.Text(),
	})
	if err != nil {
		return resultErr(fmt.Errorf("ask: serialise: %w", err)), nil
	}
	return result, nil
}
