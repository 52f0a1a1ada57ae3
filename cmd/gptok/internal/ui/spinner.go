package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/huh/spinner"
)

// Spinner runs fn with an animated spinner titled title.  When the default
// logger is at debug level, the spinner is skipped and fn runs directly,
// keeping the log output readable.
func Spinner(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		return fn(ctx)
	}
	return spinner.New().
		Title(title).
		Context(ctx).
		ActionWithErr(fn).
		Run()
}
