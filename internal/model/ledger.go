package model

// Ledger is the aggregate root and the single unit of persistence. Every
// mutation replaces the whole document on the remote store.
type Ledger struct {
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
	Categories   []Category    `json:"categories"`
}

// Clone returns an independent copy of the ledger. Entity fields are either
// plain values or immutable decimals, so copying the slices is enough.
func (l Ledger) Clone() Ledger {
	out := Ledger{
		Accounts:     make([]Account, len(l.Accounts)),
		Transactions: make([]Transaction, len(l.Transactions)),
		Categories:   make([]Category, len(l.Categories)),
	}
	copy(out.Accounts, l.Accounts)
	copy(out.Transactions, l.Transactions)
	copy(out.Categories, l.Categories)
	return out
}

// Account returns the account with the given ID.
func (l Ledger) Account(id string) (Account, bool) {
	for _, a := range l.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}

// Transaction returns the transaction with the given ID.
func (l Ledger) Transaction(id string) (Transaction, bool) {
	for _, t := range l.Transactions {
		if t.ID == id {
			return t, true
		}
	}
	return Transaction{}, false
}

// Category returns the category with the given ID.
func (l Ledger) Category(id string) (Category, bool) {
	for _, c := range l.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
