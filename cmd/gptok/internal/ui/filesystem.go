package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

type fileSelectorOpt struct {
	defaultFilename string // if set, the empty filename will be replaced to this value
	mustExist       bool
}

func WithDefaultFilename(s string) Option {
	return func(io *inputOptions) {
		io.fileSelectorOpt.defaultFilename = s
	}
}

func WithMustExist(b bool) Option {
	return func(io *inputOptions) {
		io.mustExist = b
	}
}

// FileSelector asks the user to enter a filename.  Sequence of validation
// depends on the options: by default any name is accepted, WithMustExist
// requires the file to be present, and for new files the user is asked to
// confirm an overwrite.
func FileSelector(msg, descr string, opt ...Option) (string, error) {
	opts := defaultOpts().apply(opt...)

	var resp struct {
		Filename string
	}
	q := huh.NewInput().
		Title(msg).
		Description(descr).
		Value(&resp.Filename).
		Validate(func(ans string) error {
			filename := ans
			if filename == "" {
				if opts.defaultFilename == "" {
					return errors.New("empty filename")
				}
				if !opts.mustExist {
					return nil
				}
				return checkExists(opts.defaultFilename)
			}
			if opts.mustExist {
				return checkExists(filename)
			}
			return nil
		})

	for {
		if err := q.Run(); err != nil {
			return "", err
		}
		if resp.Filename == "" && opts.defaultFilename != "" {
			resp.Filename = opts.defaultFilename
		}
		if opts.mustExist {
			break
		}
		if _, err := os.Stat(resp.Filename); err != nil {
			break
		}
		overwrite, err := Confirm(fmt.Sprintf("File %q exists. Overwrite?", resp.Filename), false, opt...)
		if err != nil {
			return "", err
		}
		if overwrite {
			break
		}
	}
	return resp.Filename, nil
}

func checkExists(filename string) error {
	if _, err := os.Stat(filename); err != nil {
		if os.IsNotExist(err) {
			return errors.New("file must exist")
		}
		return err
	}
	return nil
}
