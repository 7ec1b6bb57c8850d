package model

import "github.com/shopspring/decimal"

// TransactionType distinguishes money in, money out, and moves between accounts.
type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

// Transaction is a single ledger entry. A transaction is either categorized
// (income/expense) or a transfer between two accounts, never both.
type Transaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"` // local datetime, "YYYY-MM-DDTHH:MM"
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  string          `json:"categoryId,omitempty"`
	AccountID   string          `json:"accountId"`
	ToAccountID string          `json:"toAccountId,omitempty"` // transfers only
	Note        string          `json:"note"`
	IsRecurring bool            `json:"isRecurring,omitempty"`
}
