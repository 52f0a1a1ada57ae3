package gptok

import (
	"log/slog"

	"github.com/rusq/gptok/internal/backend"
	"github.com/rusq/gptok/internal/network"
)

// Option is the signature of the option-setting function.
type Option func(*Session)

// WithLimits sets the API limits to use for the session.  If this option
// is not given, the session is initialised with network.DefLimits.
func WithLimits(l network.Limits) Option {
	return func(s *Session) {
		if l.Validate() == nil {
			s.cfg.limits = l
		}
	}
}

// WithModel sets the conversation model for the session.  If this option
// is not given, the service picks the default model of the account.
func WithModel(model string) Option {
	return func(s *Session) {
		s.cfg.model = model
	}
}

// WithAPIURL sets the base URL of the backend API, for use with proxy
// endpoints that relay the API.  If this option is not given, the live
// service URL is used.
func WithAPIURL(u string) Option {
	return func(s *Session) {
		s.cfg.apiURL = u
	}
}

// WithLogger sets the logger to use for the session.  If this option is
// not given, the default logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClient sets the API client to use for the session.  Mostly useful
// for testing.
func WithClient(cl *backend.Client) Option {
	return func(s *Session) {
		if cl != nil {
			s.client = cl
		}
	}
}
