// Package apiconfig implements the commands that manage the API limits
// configuration file.
package apiconfig

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
	"github.com/rusq/gptok/internal/network"
)

var CmdConfig = &base.Command{
	UsageLine: "gptok config",
	Short:     "API limits configuration",
	Long: `
# Config Command

Config command allows to perform different operations on the API limits
configuration file.
`,
	Commands: []*base.Command{
		CmdConfigNew,
		CmdConfigCheck,
	},
}

var ErrConfigInvalid = errors.New("config validation failed")

// Load reads, parses and validates the config file.  Values not present in
// the file keep their current values.
func Load(filename string) (network.Limits, error) {
	f, err := os.Open(filename)
	if err != nil {
		return network.Limits{}, err
	}
	defer f.Close()

	return readLimits(f)
}

// Save writes the limits to the file, overwriting it if it exists.
func Save(filename string, limits network.Limits) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return writeLimits(f, limits)
}

func readLimits(r io.Reader) (network.Limits, error) {
	var file network.Limits
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return network.Limits{}, err
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return network.Limits{}, fmt.Errorf("unknown keys in the config file: %v", keys)
	}

	limits := cfg.Limits
	if err := limits.Apply(file); err != nil {
		if err := printErrors(os.Stderr, err); err != nil {
			return network.Limits{}, err
		}
		return network.Limits{}, ErrConfigInvalid
	}
	return limits, nil
}

func writeLimits(w io.Writer, limits network.Limits) error {
	return toml.NewEncoder(w).Encode(limits)
}

func printErrors(w io.Writer, err error) error {
	if err == nil {
		return nil
	}

	var wErr error
	var printErr = func(format string, a ...any) {
		if wErr != nil {
			return
		}
		_, wErr = fmt.Fprintf(w, format, a...)
	}

	printErr("Detected problems:\n")
	var vErr validator.ValidationErrors
	if !errors.As(err, &vErr) {
		return err
	}
	for i, entry := range vErr {
		printErr("\t%2d: %s\n", i+1, entry.Translate(network.ErrTranslations))
	}
	return wErr
}
