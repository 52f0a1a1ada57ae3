package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
)

var cmdEzTest = &base.Command{
	Run:       runEzLoginTest,
	UsageLine: "gptok tools eztest",
	Short:     "EZ-Login 3000 test",
	Long: `
# EZ-Login 3000 Test tool

Eztest attempts to start EZ Login 3000 on the device.

The browser will open, and you will be offered to login to your account.  On
successful login it outputs the json with the test results.

You will see "OK" in the end if there were no issues, otherwise an error will
be printed and the test will be terminated.
`,
	CustomFlags: true,
	PrintFlags:  true,
}

type ezResult struct {
	Engine      string            `json:"engine,omitempty"`
	HasToken    bool              `json:"has_token,omitempty"`
	HasCookies  bool              `json:"has_cookies,omitempty"`
	Err         *string           `json:"error,omitempty"`
	Credentials *Credentials      `json:"credentials,omitempty"`
	Response    *auth.SessionInfo `json:"response,omitempty"`
}

type Credentials struct {
	Token   string         `json:"token,omitempty"`
	Cookies []*http.Cookie `json:"cookie,omitempty"`
}

type eztestOpts struct {
	printCreds bool
	legacy     bool
}

var eztestFlags eztestOpts

func init() {
	cmdEzTest.Flag.Usage = func() {
		fmt.Fprint(os.Stdout, "usage: gptok tools eztest [flags]\n\nFlags:\n")
		cmdEzTest.Flag.PrintDefaults()
	}
	cmdEzTest.Flag.BoolVar(&eztestFlags.printCreds, "p", false, "print credentials")
	cmdEzTest.Flag.BoolVar(&eztestFlags.legacy, "legacy-browser", false, "run with playwright")
}

func runEzLoginTest(ctx context.Context, cmd *base.Command, args []string) error {
	lg := cfg.Log

	if err := cmd.Flag.Parse(args); err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return err
	}

	var (
		res ezResult
	)

	if eztestFlags.legacy {
		res = tryPlaywrightAuth(ctx, eztestFlags.printCreds)
	} else {
		res = tryRodAuth(ctx, eztestFlags.printCreds)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}
	if res.Err == nil {
		lg.Info("OK")
	} else {
		lg.Error("ERROR", "error", *res.Err)
		base.SetExitStatus(base.SApplicationError)
		return errors.New(*res.Err)
	}
	return nil
}

func tryPlaywrightAuth(ctx context.Context, populateCreds bool) ezResult {
	var ret = ezResult{Engine: "playwright"}

	prov, err := auth.NewBrowserAuth(ctx)
	if err != nil {
		ret.Err = ptr(err.Error())
		return ret
	}

	ret.HasToken = len(prov.AccessToken()) > 0
	ret.HasCookies = len(prov.Cookies()) > 0
	if populateCreds {
		ret.Credentials = &Credentials{
			Token:   prov.AccessToken(),
			Cookies: prov.Cookies(),
		}
		resp, err := prov.Test(ctx)
		if err != nil {
			ret.Err = ptr(err.Error())
			return ret
		}
		ret.Response = resp
	}
	return ret
}

func ptr[T any](t T) *T { return &t }

func tryRodAuth(ctx context.Context, populateCreds bool) ezResult {
	ret := ezResult{Engine: "rod"}
	prov, err := auth.NewRODAuth(ctx)
	if err != nil {
		ret.Err = ptr(err.Error())
		return ret
	}

	ret.HasCookies = len(prov.Cookies()) > 0
	ret.HasToken = len(prov.AccessToken()) > 0
	if populateCreds {
		ret.Credentials = &Credentials{
			Token:   prov.AccessToken(),
			Cookies: prov.Cookies(),
		}
		resp, err := prov.Test(ctx)
		if err != nil {
			ret.Err = ptr(err.Error())
			return ret
		}
		ret.Response = resp
	}
	return ret
}
