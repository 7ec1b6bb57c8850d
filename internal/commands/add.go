package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/shakyaa89/MoneyTracker/internal/dates"
	"github.com/shakyaa89/MoneyTracker/internal/model"
	"github.com/shakyaa89/MoneyTracker/internal/remote"
)

func newAddCommand() *cobra.Command {
	var configPath, apiURL string
	var txType, amount, account, toAccount, category, note, date string
	var recurring bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amount, err)
			}
			tx := model.Transaction{
				Date:        dates.Normalize(date),
				Type:        model.TransactionType(txType),
				Amount:      amt,
				CategoryID:  category,
				AccountID:   account,
				ToAccountID: toAccount,
				Note:        note,
				IsRecurring: recurring,
			}
			return runAdd(cmd, resolveClient(configPath, apiURL), tx)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "moneytracker.yaml", "path to config file")
	cmd.Flags().StringVar(&apiURL, "api", "", "server base URL (overrides config)")
	cmd.Flags().StringVar(&txType, "type", "expense", "income, expense or transfer")
	cmd.Flags().StringVar(&amount, "amount", "", "amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&account, "account", "", "source account ID (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&toAccount, "to", "", "destination account ID (transfers)")
	cmd.Flags().StringVar(&category, "category", "", "category ID")
	cmd.Flags().StringVar(&note, "note", "", "note (required)")
	_ = cmd.MarkFlagRequired("note")
	cmd.Flags().StringVar(&date, "date", "", "date (default: now)")
	cmd.Flags().BoolVar(&recurring, "recurring", false, "mark as recurring")
	return cmd
}

func runAdd(cmd *cobra.Command, client *remote.Client, tx model.Transaction) error {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	s, err := loadStore(ctx, client)
	if err != nil {
		return err
	}
	if err := s.AddTransaction(ctx, tx); err != nil {
		return err
	}

	added := s.Ledger().Transactions
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s of Rs.%s (%s)\n",
		tx.Type, tx.Amount.StringFixed(2), added[len(added)-1].ID)
	return nil
}
