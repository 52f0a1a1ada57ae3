// Package server implements the serve command, a local HTTP facade over
// the authenticated session.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/rusq/gptok/cmd/gptok/internal/bootstrap"
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
)

var CmdServe = &base.Command{
	UsageLine: "gptok serve [flags]",
	Short:     "start a local HTTP facade for the session",
	Long: `
# Serve Command

Starts a local HTTP server that exposes the authenticated session to other
programs on this machine:

	GET  /v1/session   session information, including the access token
	POST /v1/ask       send a prompt, receive the reply
	GET  /healthcheck  200 when the server is up

The ask endpoint accepts a JSON document:

	{"prompt": "...", "conversation_id": "...", "model": "..."}

and returns the complete reply as JSON.  If the request carries the
"Accept: text/event-stream" header, the reply is relayed as it is
generated, one server-sent event per snapshot, terminated with the
"data: [DONE]" line, same as the upstream protocol.

The server binds to localhost by default.  Anyone who can reach the
listen address can converse on your account and read your access token,
so think twice before binding to anything wider.
`,
	FlagMask:    cfg.OmitYesFlag,
	PrintFlags:  true,
	RequireAuth: true,
	Run:         runServe,
}

var listenAddr string

func init() {
	CmdServe.Flag.StringVar(&listenAddr, "listen", "127.0.0.1:8790", "address to listen on")
}

// grace period for the in-flight requests on interrupt.
const shutdownTimeout = 5 * time.Second

func runServe(ctx context.Context, cmd *base.Command, args []string) error {
	if len(args) != 0 {
		base.SetExitStatus(base.SInvalidParameters)
		return errors.New("serve accepts no arguments")
	}
	sess, err := bootstrap.Session(ctx)
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}

	addr := normalise(listenAddr)
	srv := &http.Server{
		Addr:    addr,
		Handler: middleware.Logger(newMux(sess)),
	}

	lg := cfg.Log
	lg.InfoContext(ctx, "listening on", "addr", addr, "user", sess.CurrentUser())

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		lg.InfoContext(ctx, "shutting down")
		stopctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(stopctx)
	})
	if err := eg.Wait(); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}
	lg.InfoContext(ctx, "bye")
	return nil
}

func normalise(addr string) string {
	if addr == "" {
		return "127.0.0.1:8790"
	}
	if addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	return addr
}
