package info

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rusq/gptok/cmd/gptok/internal/account"
)

// CollectAuth prints the cookie metadata of the current account to w.  The
// cookie values are never printed, only their lengths.  The operation
// requires the user to authenticate with their OS password first.
func CollectAuth(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(os.Stderr, "To confirm the operation, please enter your OS password.")
	if err := osValidateUser(ctx, os.Stderr); err != nil {
		return err
	}
	m, err := account.CacheMgr()
	if err != nil {
		return fmt.Errorf("cache error: %w", err)
	}
	cur, err := m.Current()
	if err != nil {
		return fmt.Errorf("cache error: %w", err)
	}
	prov, err := m.LoadProvider(cur)
	if err != nil {
		return fmt.Errorf("cache error: %w", err)
	}
	if err := dumpCookiesMozilla(ctx, w, prov.Cookies()); err != nil {
		return err
	}
	return nil
}

// dumpCookiesMozilla dumps cookies in Mozilla format.
func dumpCookiesMozilla(_ context.Context, w io.Writer, cookies []*http.Cookie) error {
	tw := tabwriter.NewWriter(w, 0, 8, 0, '\t', 0)
	defer tw.Flush()
	fmt.Fprintf(tw, "# name@domain\tvalue_len\tflag\tpath\tsecure\texpiration\n")
	for _, c := range cookies {
		fmt.Fprintf(tw, "%s\t%9d\t%s\t%s\t%s\t%d\n",
			c.Name+"@"+c.Domain, len(c.Value), "TRUE", c.Path, strings.ToUpper(fmt.Sprintf("%v", c.Secure)), c.Expires.Unix())
	}
	return nil
}
