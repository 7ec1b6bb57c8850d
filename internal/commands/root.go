package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shakyaa89/MoneyTracker/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "moneytracker",
		Short:   "Single-user personal finance tracker",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newInitCommand(),
		newServeCommand(),
		newSummaryCommand(),
		newAddCommand(),
		newExportCommand(),
	)

	return rootCmd
}
