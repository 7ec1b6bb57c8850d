package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shakyaa89/MoneyTracker/internal/model"
)

var exportHeader = []string{"Date", "Type", "Amount", "Category", "Account", "To Account", "Note"}

// ExportCSV writes transactions as CSV, resolving category and account names
// from the current ledger. Unknown references render empty; a deleted
// category's transactions simply lose their label.
func (s *Store) ExportCSV(w io.Writer, transactions []model.Transaction) error {
	snapshot := s.Ledger()

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range transactions {
		if err := cw.Write(exportRow(snapshot, t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportRow(l model.Ledger, t model.Transaction) []string {
	var category, account, toAccount string
	if c, ok := l.Category(t.CategoryID); ok {
		category = c.Name
	}
	if a, ok := l.Account(t.AccountID); ok {
		account = a.Name
	}
	if a, ok := l.Account(t.ToAccountID); ok {
		toAccount = a.Name
	}
	// Commas in notes become semicolons, matching the app's export format.
	note := strings.ReplaceAll(t.Note, ",", ";")
	return []string{t.Date, string(t.Type), t.Amount.String(), category, account, toAccount, note}
}
