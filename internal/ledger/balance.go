// Package ledger implements the balance engine: pure functions that map a
// transaction's effect onto an account set and gate any mutation that could
// drive a balance negative.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shakyaa89/MoneyTracker/internal/model"
)

// InsufficientFundsError rejects an expense or transfer that would overdraw
// its source account.
type InsufficientFundsError struct {
	AccountName string
	Available   decimal.Decimal
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf("Insufficient balance in %q. Available: Rs.%s", e.AccountName, e.Available.StringFixed(2))
}

// Apply returns a fresh account set with tx's effect applied:
// income adds to the account, expense subtracts, transfer moves the amount
// from the source to the destination.
func Apply(accounts []model.Account, tx model.Transaction) []model.Account {
	out := make([]model.Account, len(accounts))
	copy(out, accounts)
	for i := range out {
		switch {
		case tx.Type == model.TransactionIncome && out[i].ID == tx.AccountID:
			out[i].Balance = out[i].Balance.Add(tx.Amount)
		case tx.Type == model.TransactionExpense && out[i].ID == tx.AccountID:
			out[i].Balance = out[i].Balance.Sub(tx.Amount)
		case tx.Type == model.TransactionTransfer && out[i].ID == tx.AccountID:
			out[i].Balance = out[i].Balance.Sub(tx.Amount)
		case tx.Type == model.TransactionTransfer && out[i].ID == tx.ToAccountID:
			out[i].Balance = out[i].Balance.Add(tx.Amount)
		}
	}
	return out
}

// Reverse returns a fresh account set with tx's effect undone. Reversal never
// needs a funds check: undoing an expense or transfer only raises the source
// balance.
func Reverse(accounts []model.Account, tx model.Transaction) []model.Account {
	out := make([]model.Account, len(accounts))
	copy(out, accounts)
	for i := range out {
		switch {
		case tx.Type == model.TransactionIncome && out[i].ID == tx.AccountID:
			out[i].Balance = out[i].Balance.Sub(tx.Amount)
		case tx.Type == model.TransactionExpense && out[i].ID == tx.AccountID:
			out[i].Balance = out[i].Balance.Add(tx.Amount)
		case tx.Type == model.TransactionTransfer && out[i].ID == tx.AccountID:
			out[i].Balance = out[i].Balance.Add(tx.Amount)
		case tx.Type == model.TransactionTransfer && out[i].ID == tx.ToAccountID:
			out[i].Balance = out[i].Balance.Sub(tx.Amount)
		}
	}
	return out
}

// CheckFunds rejects an expense or transfer whose amount exceeds the source
// account's pre-mutation balance. Income and unknown accounts pass.
func CheckFunds(accounts []model.Account, tx model.Transaction) error {
	if tx.Type != model.TransactionExpense && tx.Type != model.TransactionTransfer {
		return nil
	}
	for _, a := range accounts {
		if a.ID != tx.AccountID {
			continue
		}
		if a.Balance.Sub(tx.Amount).IsNegative() {
			return InsufficientFundsError{AccountName: a.Name, Available: a.Balance}
		}
		return nil
	}
	return nil
}
