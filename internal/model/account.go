package model

import "github.com/shopspring/decimal"

// AccountType classifies where money is held.
type AccountType string

const (
	AccountTypeCash   AccountType = "cash"
	AccountTypeBank   AccountType = "bank"
	AccountTypeCard   AccountType = "card"
	AccountTypeWallet AccountType = "wallet"
)

// Account holds a running cached balance. The balance is maintained
// incrementally by the balance engine, never recomputed on read.
type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    AccountType     `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}
