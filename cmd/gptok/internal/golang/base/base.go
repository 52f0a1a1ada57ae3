// Package base defines shared basic pieces of the gptok command.
//
// The command subsystem is based on golang's `go` command implementation, which
// is BSD-licensed:
//
//	Copyright 2017 The Go Authors. All rights reserved.
//	Use of this source code is governed by a BSD-style
//	license that can be found in the LICENSE file.
package base

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
)

var CmdName string

// Executable returns the name of the running executable.
func Executable() string {
	exe, err := os.Executable()
	if err != nil {
		return "gptok"
	}
	return filepath.Base(exe)
}

// A Command is an implementation of a gptok command.
type Command struct {
	// Run runs the command.
	// The args are the arguments after the command name.
	Run func(ctx context.Context, cmd *Command, args []string) error

	// UsageLine is the one-line usage message.
	UsageLine string

	// Short is the short description shown in the 'go help' output.
	Short string

	// Long is the long message shown in the 'go help <this-command>' output.
	Long string

	// Flag is a set of flags specific to this command.
	Flag flag.FlagSet

	// CustomFlags indicates that the command will do its own
	// flag parsing.
	CustomFlags bool

	// PrintFlags indicates that generic help handler should print the
	// flags in the flagset.  Set it to false, if a Long lists all the flags.
	// It only matters for the commands that have no subcommands.
	PrintFlags bool

	// FlagMask defines the base flags to exclude from the command flag set.
	FlagMask cfg.FlagMask

	// RequireAuth indicates that the command requires a valid session, and
	// the main runner should initialise the auth provider before calling Run.
	RequireAuth bool

	// Commands lists the available commands and help topics.
	// The order here is the order in which they are printed by 'go help'.
	// Note that subcommands are in general best avoided.
	Commands []*Command
}

var Gptok = &Command{
	UsageLine: "gptok",
	Long:      `Gptok extracts the ChatGPT web session token and talks to the service with it.`,
	// Commands initialised in main.
}

var exitStatus = 0
var exitMu sync.Mutex

func SetExitStatus(n StatusCode) {
	exitMu.Lock()
	if exitStatus < int(n) {
		exitStatus = int(n)
	}
	exitMu.Unlock()
}

// SetExitStatusMsg sets the exit status and prints the message to stderr.
func SetExitStatusMsg(n StatusCode, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	SetExitStatus(n)
}

var atExitFuncs []func()

func AtExit(f func()) {
	atExitFuncs = append(atExitFuncs, f)
}

func Exit() {
	for _, f := range atExitFuncs {
		f()
	}
	os.Exit(exitStatus)
}

// Runnable reports whether the command can be run; otherwise
// it is a documentation pseudo-command such as importpath.
func (c *Command) Runnable() bool {
	return c.Run != nil
}

// LongName returns the command's long name: all the words in the usage line between "gptok" and a flag or argument,
func (c *Command) LongName() string {
	name := c.UsageLine
	if i := strings.Index(name, " ["); i >= 0 {
		name = name[:i]
	}
	if name == "gptok" {
		return ""
	}
	return strings.TrimPrefix(name, "gptok ")
}

// Name returns the command's short name: the last word in the usage line before a flag or argument.
func (c *Command) Name() string {
	name := c.LongName()
	if i := strings.LastIndex(name, " "); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Usage is the usage-reporting function, filled in by package main
// but here for reference by other packages.
var Usage func()

func (c *Command) Usage() {
	fmt.Fprintf(os.Stderr, "usage: %s\n", c.UsageLine)
	fmt.Fprintf(os.Stderr, "Run 'gptok help %s' for details.\n", c.LongName())
	SetExitStatus(SInvalidParameters)
	Exit()
}
