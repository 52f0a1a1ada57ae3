package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
	"github.com/rusq/gptok/internal/cache"
)

var CmdDel = &base.Command{
	UsageLine: baseCommand + " del [flags] <name>",
	Short:     "deletes the saved account login information",
	Long: `
Del can be used to delete the saved OpenAI account credentials (forgets
the account).

If the account login information is deleted, you will need to
re-authenticate by running "gptok account new <name>".
`,
	CustomFlags: false,
	FlagMask:    flagmask,
	PrintFlags:  true,
}

func init() {
	CmdDel.Run = runDel
}

var (
	delAll     = CmdDel.Flag.Bool("a", false, "delete all accounts")
	delConfirm = CmdDel.Flag.Bool("y", false, "answer yes to all questions")
)

func runDel(ctx context.Context, cmd *base.Command, args []string) error {
	if *delAll {
		return delAllAcc()
	}
	return delOneAcc(args)
}

func delAllAcc() error {
	m, err := CacheMgr()
	if err != nil {
		base.SetExitStatus(base.SCacheError)
		return err
	}

	accounts, err := m.List()
	if err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}

	if !*delConfirm && !yesno("This will delete ALL accounts") {
		base.SetExitStatus(base.SNoError)
		return ErrOpCancelled
	}
	for _, name := range accounts {
		if err := m.Delete(name); err != nil {
			base.SetExitStatus(base.SCacheError)
			return err
		}
		fmt.Printf("account %q deleted\n", name)
	}
	return nil
}

func delOneAcc(args []string) error {
	acc := argsAccount(args, "")
	if acc == "" {
		base.SetExitStatus(base.SInvalidParameters)
		return cache.ErrNameRequired
	}

	m, err := CacheMgr()
	if err != nil {
		base.SetExitStatus(base.SCacheError)
		return err
	}

	if !m.Exists(acc) {
		base.SetExitStatus(base.SUserError)
		return errors.New("account does not exist")
	}

	if !*delConfirm && !yesno(fmt.Sprintf("account %q is about to be deleted", acc)) {
		base.SetExitStatus(base.SNoError)
		return ErrOpCancelled
	}

	if err := m.Delete(acc); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}
	fmt.Printf("account %q deleted\n", acc)
	return nil
}
