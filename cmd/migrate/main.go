package main

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/redmonkez12/go-pets-api/cmd/migrate/ui"
	"github.com/redmonkez12/go-pets-api/internal/config"
	"github.com/redmonkez12/go-pets-api/internal/database/migrations"
	"github.com/redmonkez12/go-pets-api/internal/logging"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the pets API database schema",
		Long:         "Apply or revert the embedded PostgreSQL migrations.",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("database-url", "", "Database URL (defaults to the DB_* environment variables)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log each applied migration")

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE:  runUp,
	}

	downCmd := &cobra.Command{
		Use:   "down [n]",
		Short: "Revert the last n migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDown,
	}
	downCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}

	forceCmd := &cobra.Command{
		Use:   "force <version>",
		Short: "Set the schema version without running migrations",
		Args:  cobra.ExactArgs(1),
		RunE:  runForce,
	}

	rootCmd.AddCommand(upCmd, downCmd, versionCmd, forceCmd)

	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}

func runUp(cmd *cobra.Command, args []string) error {
	return withMigrator(cmd, func(m *migrations.Migrator) error {
		if err := m.Up(); err != nil {
			return err
		}
		version, _, err := m.Version()
		if err != nil {
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("Schema is up to date (version %d)", version))
		return nil
	})
}

func runDown(cmd *cobra.Command, args []string) error {
	steps := 1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid step count %q: must be a positive integer", args[0])
		}
		steps = n
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		ok, err := ui.ConfirmDown(steps, redact(databaseURL(cmd)))
		if err != nil {
			return fmt.Errorf("confirmation cancelled: %w", err)
		}
		if !ok {
			ui.PrintAborted()
			return nil
		}
	}

	return withMigrator(cmd, func(m *migrations.Migrator) error {
		if err := m.Down(steps); err != nil {
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("Reverted %d migration(s)", steps))
		return nil
	})
}

func runVersion(cmd *cobra.Command, args []string) error {
	return withMigrator(cmd, func(m *migrations.Migrator) error {
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		ui.PrintVersion(version, dirty)
		return nil
	})
}

func runForce(cmd *cobra.Command, args []string) error {
	version, err := strconv.Atoi(args[0])
	if err != nil || version < 0 {
		return fmt.Errorf("invalid version %q", args[0])
	}

	return withMigrator(cmd, func(m *migrations.Migrator) error {
		if err := m.Force(version); err != nil {
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("Schema version forced to %d", version))
		return nil
	})
}

func withMigrator(cmd *cobra.Command, fn func(m *migrations.Migrator) error) error {
	dbURL := databaseURL(cmd)
	ui.PrintTarget(redact(dbURL))

	m, err := migrations.NewFromURL(dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		m.SetLogger(logging.NewLogger(true))
	}

	return fn(m)
}

func databaseURL(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("database-url"); u != "" {
		return u
	}
	cfg := config.LoadDatabase()
	return cfg.URL()
}

// redact hides the password when printing a database URL
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}
	return u.Redacted()
}
