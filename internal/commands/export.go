package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shakyaa89/MoneyTracker/internal/remote"
)

func newExportCommand() *cobra.Command {
	var configPath, apiURL, out string
	var year, month int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, resolveClient(configPath, apiURL), out, year, month)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "moneytracker.yaml", "path to config file")
	cmd.Flags().StringVar(&apiURL, "api", "", "server base URL (overrides config)")
	cmd.Flags().StringVar(&out, "out", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&year, "year", 0, "restrict to a year (with --month)")
	cmd.Flags().IntVar(&month, "month", 0, "restrict to a month, 1-12")
	return cmd
}

func runExport(cmd *cobra.Command, client *remote.Client, out string, year, month int) error {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	s, err := loadStore(ctx, client)
	if err != nil {
		return err
	}

	transactions := s.Ledger().Transactions
	if year != 0 || month != 0 {
		y, m := defaultMonth(year, month)
		transactions = s.MonthTransactions(y, m)
	}

	var w io.Writer = cmd.OutOrStdout()
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return s.ExportCSV(w, transactions)
}
