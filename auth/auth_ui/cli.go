package auth_ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CLI is the plain text fallback UI for terminals where huh doesn't work.
type CLI struct{}

func (*CLI) instructions(w io.Writer) {
	const welcome = "Welcome to GPTok EZ-Login 3000"
	underline := color.Set(color.Underline)
	fmt.Fprintf(w, "%s\n\n", underline.Sprint(welcome))
	fmt.Fprintf(w, "Please read these instructions carefully:\n\n")
	fmt.Fprintf(w, "1. Choose the login type.  If your account uses Google, Apple or SSO,\n   pick the browser login.\n\n")
	fmt.Fprintf(w, "2. Browser will open, login as usual.\n\n")
	fmt.Fprintf(w, "3. Browser will close and gptok will be authenticated.\n\n\n")
}

func (cl *CLI) RequestEmail(w io.Writer) (string, error) {
	fmt.Fprint(w, "Enter OpenAI account email: ")
	username, err := readln(os.Stdin)
	if err != nil {
		return "", err
	}
	return username, nil
}

func (cl *CLI) RequestPassword(w io.Writer, account string) (string, error) {
	fmt.Fprintf(w, "Enter Password for %s (won't be visible): ", account)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(w)
	return string(password), nil
}

func (cl *CLI) RequestToken(w io.Writer) (string, error) {
	fmt.Fprint(w, "Paste the session credential and press Enter: ")
	return readln(os.Stdin)
}

func (cl *CLI) RequestLoginType(w io.Writer) (LoginType, error) {
	cl.instructions(w)
	var types = []struct {
		name  string
		value LoginType
	}{
		{"Login in your browser", LInteractive},
		{"Email and password (automatic)", LHeadless},
		{"Paste the session token", LUserBrowser},
		{"Cancel", LCancel},
	}

	var idx int
	for idx < 1 || idx > len(types) {
		fmt.Fprintf(w, "Select login type:\n")
		for i, t := range types {
			fmt.Fprintf(w, "\t%d. %s\n", i+1, t.name)
		}
		fmt.Fprintf(w, "Enter number: ")
		_, err := fmt.Fscanf(os.Stdin, "%d", &idx)
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}
		if idx < 1 || idx > len(types) {
			fmt.Fprintln(w, "invalid login type")
		}
	}
	return types[idx-1].value, nil
}

func (*CLI) Stop() {}

func readln(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
