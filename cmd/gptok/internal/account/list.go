package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/trace"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/rusq/gptok/auth"
	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
	"github.com/rusq/gptok/internal/cache"
)

var CmdList = &base.Command{
	UsageLine: baseCommand + " list [flags]",
	Short:     "list saved accounts",
	Long: `
# Account List Command

**List** allows to list the OpenAI accounts, that you have previously
authenticated in.
`,
	FlagMask:   flagmask,
	PrintFlags: true,
}

var (
	bare = CmdList.Flag.Bool("b", false, "bare output format (just names)")
	all  = CmdList.Flag.Bool("a", false, "all information, including the user and the token expiry")
)

func init() {
	CmdList.Run = runList
}

func runList(ctx context.Context, cmd *base.Command, args []string) error {
	m, err := CacheMgr()
	if err != nil {
		base.SetExitStatus(base.SCacheError)
		return err
	}

	formatter := printFull
	if *bare {
		formatter = printBare
	} else if *all {
		formatter = printAll
	}

	entries, err := m.List()
	if err != nil {
		if errors.Is(err, cache.ErrNoAccounts) {
			base.SetExitStatus(base.SUserError)
			return errors.New("no authenticated accounts, please run \"gptok account new\"")
		}
		base.SetExitStatus(base.SCacheError)
		return err
	}
	current, err := m.Current()
	if err != nil {
		if !errors.Is(err, cache.ErrNoDefault) {
			base.SetExitStatus(base.SAccountError)
			return fmt.Errorf("error getting the current account: %s", err)
		}
		current = entries[0]
		if err := m.Select(current); err != nil {
			base.SetExitStatus(base.SAccountError)
			return fmt.Errorf("error setting the current account: %s", err)
		}
	}

	return formatter(os.Stdout, m, current, entries)
}

func printAll(w io.Writer, m manager, current string, accs []string) error {
	_, task := trace.NewTask(context.Background(), "printAll")
	defer task.End()

	tw := tabwriter.NewWriter(w, 2, 8, 1, ' ', 0)

	fmt.Fprintln(tw, makeHeader(hdrItems...))
	for _, name := range accs {
		curr := ""
		if current == name {
			curr = "*"
		}
		fi, err := m.FileInfo(name)
		if err != nil {
			fmt.Fprintf(tw, "%s\t%s\t\t\t\t\t%s\n", curr, name, err)
			continue
		}
		info, err := tokenInfo(m, name)
		if err != nil {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\t\t%s\n", curr, name, fi.Name(), fi.ModTime().Format(timeLayout), err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", curr, name, fi.Name(), fi.ModTime().Format(timeLayout), info.user, info.expires, "OK")
	}
	return tw.Flush()
}

type accInfo struct {
	user    string
	expires string
}

// tokenInfo extracts the user and the expiry from the saved access token
// claims, without calling the live service.
func tokenInfo(m manager, name string) (accInfo, error) {
	prov, err := m.LoadProvider(name)
	if err != nil {
		return accInfo{}, err
	}
	info := accInfo{user: "-", expires: "unknown"}
	tok := prov.AccessToken()
	if user, err := auth.TokenUser(tok); err == nil {
		info.user = user
	}
	if exp, err := auth.TokenExpiry(tok); err == nil {
		info.expires = humanize.Time(exp)
	}
	return info, nil
}

func printFull(w io.Writer, m manager, current string, accs []string) error {
	ew := &errWriter{w: w}
	fmt.Fprintf(ew, "Accounts in %q:\n\n", cfg.CacheDir())
	for _, row := range simpleList(m, current, accs) {
		fmt.Fprintf(ew, "\t%s (file: %s, last modified: %s)\n", row[0], row[1], row[2])
	}
	fmt.Fprintf(ew, "\nCurrent account is marked with ' %s '.\n", defMark)
	return ew.Err()
}

func printBare(w io.Writer, _ manager, current string, accounts []string) error {
	ew := &errWriter{w: w}
	for _, name := range accounts {
		if current == name {
			fmt.Fprint(ew, "*")
		}
		fmt.Fprintln(ew, name)
	}
	return ew.Err()
}
