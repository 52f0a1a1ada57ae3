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

// Package gptok extracts the chat web session credentials and drives the
// undocumented web API with them.  A Session authenticates with one of
// the auth providers, and then runs conversations on the account of the
// logged in user, within the limits that the service imposes on the web
// client.
package gptok

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/trace"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/internal/backend"
	"github.com/rusq/gptok/internal/network"
)

// Session stores the authenticated API session.  Zero value is not
// usable, must be initialised with New.
type Session struct {
	client *backend.Client
	prov   auth.Provider
	si     *auth.SessionInfo
	log    *slog.Logger

	cfg config
}

// New creates a new Session with the provided options and tests the
// credentials against the live service.  If the test fails, an
// *auth.Error is returned.
func New(ctx context.Context, prov auth.Provider, opts ...Option) (*Session, error) {
	ctx, task := trace.NewTask(ctx, "New")
	defer task.End()

	if err := prov.Validate(); err != nil {
		return nil, fmt.Errorf("auth provider validation error: %s", err)
	}

	s := &Session{
		prov: prov,
		cfg:  defConfig,
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.cfg.limits.Validate(); err != nil {
		var vErr validator.ValidationErrors
		if errors.As(err, &vErr) {
			return nil, fmt.Errorf("API limits failed validation: %s", vErr.Translate(network.ErrTranslations))
		}
		return nil, err
	}
	si, err := prov.Test(ctx)
	if err != nil {
		return nil, err
	}
	s.si = si
	s.log.DebugContext(ctx, "credentials tested", "user", si.User.Email, "auth_type", prov.Type())

	if s.client == nil {
		var copts []backend.Option
		if s.cfg.apiURL != "" {
			copts = append(copts, backend.OptionAPIURL(s.cfg.apiURL))
		}
		hcl, err := prov.HTTPClient()
		if err != nil {
			return nil, err
		}
		// the token from the live test supersedes the stored one, which may
		// have expired while the session cookie is still good.
		cl, err := backend.NewWithClient(s.AccessToken(), hcl, copts...)
		if err != nil {
			return nil, err
		}
		s.client = cl
	}

	return s, nil
}

// Client returns the underlying API client.
func (s *Session) Client() *backend.Client {
	return s.client
}

// SessionInfo returns the session information captured during
// initialisation, no API call is involved at this point.
func (s *Session) SessionInfo() *auth.SessionInfo {
	return s.si
}

// AccessToken returns the bearer token of the session.
func (s *Session) AccessToken() string {
	if s.si != nil && s.si.AccessToken != "" {
		return s.si.AccessToken
	}
	return s.prov.AccessToken()
}

// CurrentUser returns the email of the authenticated user, if known.
func (s *Session) CurrentUser() string {
	if s.si == nil {
		return ""
	}
	return s.si.User.Email
}

func (s *Session) limiter(t network.Tier) *rate.Limiter {
	var tl network.TierLimit
	switch t {
	case network.TierAsk:
		tl = s.cfg.limits.Ask
	case network.TierAPI:
		tl = s.cfg.limits.API
	default:
		tl = s.cfg.limits.API
	}
	return network.NewLimiter(t, tl.Burst, tl.Boost)
}
