// Package ui renders the migrate CLI prompts and status lines.
package ui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// ConfirmDown asks before reverting steps migrations. It returns false when
// the user declines or aborts the prompt.
func ConfirmDown(steps int, database string) (bool, error) {
	confirmed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Revert %d migration(s) on %s?", steps, database)).
				Description("Reverting drops tables and their data.").
				Affirmative("Revert").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// PrintTarget prints the database the command operates on.
func PrintTarget(database string) {
	fmt.Println(titleStyle.Render("Pets API migrations"))
	fmt.Println(subtleStyle.Render("  database: " + database))
	fmt.Println()
}

// PrintVersion prints the current schema version.
func PrintVersion(version uint, dirty bool) {
	line := fmt.Sprintf("Schema version: %d", version)
	if dirty {
		fmt.Println(warnStyle.Render(line + " (dirty, fix the failed migration and run force)"))
		return
	}
	fmt.Println(successStyle.Render(line))
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	fmt.Println(successStyle.Render(msg))
}

// PrintAborted prints a notice that nothing was changed.
func PrintAborted() {
	fmt.Println(subtleStyle.Render("Aborted, nothing changed."))
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Println(errorStyle.Render("Error: " + msg))
}
