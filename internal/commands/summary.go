package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/shakyaa89/MoneyTracker/internal/remote"
	"github.com/shakyaa89/MoneyTracker/internal/store"
)

// loadTimeout bounds the initial fetch of CLI commands; the HTTP client has
// its own per-request timeout underneath.
const loadTimeout = 30 * time.Second

func newSummaryCommand() *cobra.Command {
	var configPath, apiURL string
	var year, month int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show net worth and monthly totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			y, m := defaultMonth(year, month)
			return runSummary(cmd.OutOrStdout(), resolveClient(configPath, apiURL), y, m)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "moneytracker.yaml", "path to config file")
	cmd.Flags().StringVar(&apiURL, "api", "", "server base URL (overrides config)")
	cmd.Flags().IntVar(&year, "year", 0, "year to summarize (default: current)")
	cmd.Flags().IntVar(&month, "month", 0, "month to summarize, 1-12 (default: current)")
	return cmd
}

func defaultMonth(year, month int) (int, time.Month) {
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	return year, time.Month(month)
}

// resolveClient prefers the --api flag, then environment/config for the base
// URL and request timeout.
func resolveClient(configPath, apiURL string) *remote.Client {
	if apiURL != "" {
		return remote.NewClient(apiURL)
	}
	cfg := loadConfig(configPath)
	timeout := time.Duration(cfg.Client.TimeoutSeconds) * time.Second
	return remote.NewClientWithTimeout(cfg.Client.BaseURL, timeout)
}

func loadStore(ctx context.Context, client *remote.Client) (*store.Store, error) {
	s := store.New(client)
	if err := s.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}
	return s, nil
}

func runSummary(w io.Writer, client *remote.Client, year int, month time.Month) error {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	s, err := loadStore(ctx, client)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Net worth: Rs.%s\n", s.NetWorth().StringFixed(2))

	sum := s.MonthSummary(year, month)
	fmt.Fprintf(w, "\n%04d-%02d\n", year, int(month))
	fmt.Fprintf(w, "  Income:  Rs.%s\n", sum.Income.StringFixed(2))
	fmt.Fprintf(w, "  Expense: Rs.%s\n", sum.Expense.StringFixed(2))

	if len(sum.ByCategory) == 0 {
		return nil
	}

	ledger := s.Ledger()
	names := make(map[string]string, len(sum.ByCategory))
	var labels []string
	for categoryID := range sum.ByCategory {
		label := "Uncategorized"
		if c, ok := ledger.Category(categoryID); ok {
			label = c.Name
		}
		names[label] = categoryID
		labels = append(labels, label)
	}
	sort.Strings(labels)

	fmt.Fprintln(w, "\nExpenses by category:")
	for _, label := range labels {
		fmt.Fprintf(w, "  %-20s Rs.%s\n", label, sum.ByCategory[names[label]].StringFixed(2))
	}
	return nil
}
