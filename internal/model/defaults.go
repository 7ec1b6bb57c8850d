package model

import "github.com/shopspring/decimal"

// DefaultAccounts returns the seed accounts for a fresh ledger.
func DefaultAccounts() []Account {
	return []Account{
		{ID: "cash", Name: "Cash", Type: AccountTypeCash, Balance: decimal.Zero},
		{ID: "bank", Name: "Bank Account", Type: AccountTypeBank, Balance: decimal.Zero},
		{ID: "card", Name: "Credit Card", Type: AccountTypeCard, Balance: decimal.Zero},
	}
}

// DefaultCategories returns the seed categories for a fresh ledger.
func DefaultCategories() []Category {
	return []Category{
		{ID: "salary", Name: "Salary", Type: CategoryIncome},
		{ID: "freelance", Name: "Freelance", Type: CategoryIncome},
		{ID: "investments", Name: "Investments", Type: CategoryIncome},
		{ID: "gifts-in", Name: "Gifts", Type: CategoryIncome},
		{ID: "other-income", Name: "Other", Type: CategoryIncome},
		{ID: "food", Name: "Food & Dining", Type: CategoryExpense},
		{ID: "transport", Name: "Transport", Type: CategoryExpense},
		{ID: "housing", Name: "Housing", Type: CategoryExpense},
		{ID: "utilities", Name: "Utilities", Type: CategoryExpense},
		{ID: "entertainment", Name: "Entertainment", Type: CategoryExpense},
		{ID: "shopping", Name: "Shopping", Type: CategoryExpense},
		{ID: "health", Name: "Health", Type: CategoryExpense},
		{ID: "education", Name: "Education", Type: CategoryExpense},
		{ID: "subscriptions", Name: "Subscriptions", Type: CategoryExpense},
		{ID: "other-expense", Name: "Other", Type: CategoryExpense},
	}
}

// DefaultLedger returns the seeded empty ledger the server creates on first read.
func DefaultLedger() Ledger {
	return Ledger{
		Accounts:     DefaultAccounts(),
		Transactions: []Transaction{},
		Categories:   DefaultCategories(),
	}
}
