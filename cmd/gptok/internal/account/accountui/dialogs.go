package accountui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/rusq/gptok/cmd/gptok/internal/ui"
)

func askRetry(ctx context.Context, name string, err error) (retry bool) {
	msg := fmt.Sprintf("The following error occurred: %s", err)
	if name != "" {
		msg = fmt.Sprintf("Error creating account %q: %s", name, err)
	}

	if err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title("Error Creating Account").
			Description(msg).
			Value(&retry).Affirmative("Retry").Negative("Cancel"),
	)).WithTheme(ui.HuhTheme()).RunWithContext(ctx); err != nil {
		return false
	}
	return retry
}

func success(ctx context.Context, account string) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewNote().Title("Great Success!").
			Description(fmt.Sprintf("Account %q was added and selected.\n\n", account)).
			Next(true).
			NextLabel("Exit"),
	)).WithTheme(ui.HuhTheme()).RunWithContext(ctx)
}
