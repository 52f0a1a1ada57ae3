package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
	"github.com/rusq/gptok/internal/updater"
)

// Build information. These will be set during build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var CmdVersion = &base.Command{
	UsageLine:  "gptok version [flags]",
	Short:      "print version and exit",
	FlagMask:   cfg.OmitAll,
	PrintFlags: true,
	Long: `
# Version Command

Prints version and exits, not much else to say.

And by the way, version is: ` + version + `, commit: ` + commit + `, built on ` + date + `.
`,
	Run: versionRun,
}

var checkNew bool

func init() {
	CmdVersion.Flag.BoolVar(&checkNew, "check", false, "check Github for a newer release")
}

const updCheckTimeout = 10 * time.Second

func versionRun(ctx context.Context, cmd *base.Command, args []string) error {
	fmt.Printf("%s (commit: %s) built on: %s\n", version, commit, date)
	if !checkNew {
		return nil
	}
	if err := printLatest(ctx, os.Stdout); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return fmt.Errorf("update check failed: %w", err)
	}
	return nil
}

// printLatest prints the latest published release, if it is newer than the
// running version.
func printLatest(ctx context.Context, w io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, updCheckTimeout)
	defer cancel()

	rel, err := updater.New().Latest(ctx)
	if err != nil {
		return err
	}
	if !rel.IsNewer(version) {
		fmt.Fprintln(w, "you are running the latest version")
		return nil
	}
	fmt.Fprintf(w, "version %s is available (released on %s)\n", rel.Version, rel.ReleasedAt.Format("2006-01-02"))
	return nil
}
