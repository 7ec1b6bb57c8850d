// Package store owns the canonical in-memory ledger and synchronizes it with
// the remote document store on every mutation. All mutations are copy-on-write:
// a candidate ledger is built from the current snapshot, persisted, and only
// the server's echoed document is adopted as new truth. A failed save leaves
// the previous snapshot intact.
package store

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shakyaa89/MoneyTracker/internal/dates"
	"github.com/shakyaa89/MoneyTracker/internal/id"
	"github.com/shakyaa89/MoneyTracker/internal/ledger"
	"github.com/shakyaa89/MoneyTracker/internal/model"
)

// Remote fetches and replaces the whole ledger document.
type Remote interface {
	Fetch(ctx context.Context) (model.Ledger, error)
	Save(ctx context.Context, l model.Ledger) (model.Ledger, error)
}

// Store holds the authoritative in-memory ledger. Mutations are serialized
// behind a mutex so overlapping save/adopt cycles cannot interleave. The
// loading/saving flags live outside that mutex so callers can observe an
// in-flight operation.
type Store struct {
	mu     sync.Mutex
	remote Remote
	ledger model.Ledger

	loading atomic.Bool
	saving  atomic.Bool

	errMu   sync.Mutex
	lastErr string
}

// New creates a Store seeded with the default ledger. The store reports
// Loading until the first Load completes.
func New(remote Remote) *Store {
	s := &Store{
		remote: remote,
		ledger: model.DefaultLedger(),
	}
	s.loading.Store(true)
	return s
}

func (s *Store) setErr(err error) {
	s.errMu.Lock()
	s.lastErr = err.Error()
	s.errMu.Unlock()
}

func (s *Store) clearErr() {
	s.errMu.Lock()
	s.lastErr = ""
	s.errMu.Unlock()
}

// Load fetches the remote document and adopts it. A canceled context simply
// returns the error; the in-memory snapshot is never half-updated.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearErr()
	defer s.loading.Store(false)

	fetched, err := s.remote.Fetch(ctx)
	if err != nil {
		s.setErr(err)
		return err
	}
	sanitize(&fetched)
	s.ledger = fetched
	return nil
}

// persist saves a candidate ledger and adopts the server's echo. The server
// is the source of truth after every write. Callers must hold s.mu.
func (s *Store) persist(ctx context.Context, next model.Ledger) error {
	s.saving.Store(true)
	defer s.saving.Store(false)

	sanitize(&next)
	saved, err := s.remote.Save(ctx, next)
	if err != nil {
		s.setErr(err)
		return err
	}
	sanitize(&saved)
	s.ledger = saved
	return nil
}

// sanitize normalizes every transaction date and keeps the three collections
// non-nil, since the server rejects documents whose fields are not arrays.
func sanitize(l *model.Ledger) {
	for i := range l.Transactions {
		l.Transactions[i].Date = dates.Normalize(l.Transactions[i].Date)
	}
	if l.Accounts == nil {
		l.Accounts = []model.Account{}
	}
	if l.Transactions == nil {
		l.Transactions = []model.Transaction{}
	}
	if l.Categories == nil {
		l.Categories = []model.Category{}
	}
}

// AddAccount appends an account, assigning an ID when absent.
func (s *Store) AddAccount(ctx context.Context, account model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearErr()

	if account.ID == "" {
		account.ID = id.New()
	}
	next := s.ledger.Clone()
	next.Accounts = append(next.Accounts, account)
	return s.persist(ctx, next)
}

// AccountUpdate carries the fields of a partial account update. Nil fields
// are left unchanged.
type AccountUpdate struct {
	Name    *string
	Type    *model.AccountType
	Balance *decimal.Decimal
}

// UpdateAccount applies a partial update to the account with the given ID.
func (s *Store) UpdateAccount(ctx context.Context, accountID string, update AccountUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearErr()

	next := s.ledger.Clone()
	for i := range next.Accounts {
		if next.Accounts[i].ID != accountID {
			continue
		}
		if update.Name != nil {
			next.Accounts[i].Name = *update.Name
		}
		if update.Type != nil {
			next.Accounts[i].Type = *update.Type
		}
		if update.Balance != nil {
			next.Accounts[i].Balance = *update.Balance
		}
	}
	return s.persist(ctx, next)
}

// DeleteAccount removes an account and cascades to every transaction that
// references it as source or destination.
func (s *Store) DeleteAccount(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearErr()

	next := s.ledger.Clone()
	accounts := make([]model.Account, 0, len(next.Accounts))
	for _, a := range next.Accounts {
		if a.ID != accountID {
			accounts = append(accounts, a)
		}
	}
	transactions := make([]model.Transaction, 0, len(next.Transactions))
	for _, t := range next.Transactions {
		if t.AccountID != accountID && t.ToAccountID != accountID {
			transactions = append(transactions, t)
		}
	}
	next.Accounts = accounts
	next.Transactions = transactions
	return s.persist(ctx, next)
}

// AddTransaction validates the transaction, checks the balance guard against
// the pre-mutation account set, applies the effect, and persists. On any
// failure nothing is mutated.
func (s *Store) AddTransaction(ctx context.Context, tx model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearErr()

	if tx.ID == "" {
		tx.ID = id.New()
	}
	tx.Date = dates.Normalize(tx.Date)

	if err := ledger.JoinValidationErrors(ledger.ValidateTransaction(tx)); err != nil {
		s.setErr(err)
		return err
	}
	if err := ledger.CheckFunds(s.ledger.Accounts, tx); err != nil {
		s.setErr(err)
		return err
	}

	next := s.ledger.Clone()
	next.Accounts = ledger.Apply(next.Accounts, tx)
	next.Transactions = append(next.Transactions, tx)
	return s.persist(ctx, next)
}

// UpdateTransaction reverses the old transaction's effect, validates the new
// one against that reversed baseline, and applies it. If the new transaction
// fails validation the original state is kept, with no partial reversal.
// Unknown IDs are a no-op.
func (s *Store) UpdateTransaction(ctx context.Context, txID string, updated model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearErr()

	old, ok := s.ledger.Transaction(txID)
	if !ok {
		return nil
	}

	updated.ID = txID
	updated.Date = dates.Normalize(updated.Date)

	if err := ledger.JoinValidationErrors(ledger.ValidateTransaction(updated)); err != nil {
		s.setErr(err)
		return err
	}

	reversed := ledger.Reverse(s.ledger.Accounts, old)
	if err := ledger.CheckFunds(reversed, updated); err != nil {
		s.setErr(err)
		return err
	}

	next := s.ledger.Clone()
	next.Accounts = ledger.Apply(reversed, updated)
	for i := range next.Transactions {
		if next.Transactions[i].ID == txID {
			next.Transactions[i] = updated
		}
	}
	return s.persist(ctx, next)
}

// DeleteTransaction reverses the transaction's effect unconditionally and
// removes it. Unknown IDs are a no-op.
func (s *Store) DeleteTransaction(ctx context.Context, txID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearErr()

	old, ok := s.ledger.Transaction(txID)
	if !ok {
		return nil
	}

	next := s.ledger.Clone()
	next.Accounts = ledger.Reverse(next.Accounts, old)
	transactions := make([]model.Transaction, 0, len(next.Transactions))
	for _, t := range next.Transactions {
		if t.ID != txID {
			transactions = append(transactions, t)
		}
	}
	next.Transactions = transactions
	return s.persist(ctx, next)
}

// AddCategory appends a category. Missing IDs get a slug of the name, or a
// random ID when the slug is empty or already taken.
func (s *Store) AddCategory(ctx context.Context, cat model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearErr()

	if cat.ID == "" {
		cat.ID = id.Slug(cat.Name)
	}
	if _, taken := s.ledger.Category(cat.ID); cat.ID == "" || taken {
		cat.ID = id.New()
	}
	next := s.ledger.Clone()
	next.Categories = append(next.Categories, cat)
	return s.persist(ctx, next)
}

// CategoryUpdate carries the fields of a partial category update.
type CategoryUpdate struct {
	Name *string
	Type *model.CategoryType
	Icon *string
}

// UpdateCategory applies a partial update to the category with the given ID.
func (s *Store) UpdateCategory(ctx context.Context, categoryID string, update CategoryUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearErr()

	next := s.ledger.Clone()
	for i := range next.Categories {
		if next.Categories[i].ID != categoryID {
			continue
		}
		if update.Name != nil {
			next.Categories[i].Name = *update.Name
		}
		if update.Type != nil {
			next.Categories[i].Type = *update.Type
		}
		if update.Icon != nil {
			next.Categories[i].Icon = *update.Icon
		}
	}
	return s.persist(ctx, next)
}

// DeleteCategory removes a category. Transactions keep their categoryId;
// dangling references render as "Uncategorized".
func (s *Store) DeleteCategory(ctx context.Context, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearErr()

	next := s.ledger.Clone()
	categories := make([]model.Category, 0, len(next.Categories))
	for _, c := range next.Categories {
		if c.ID != categoryID {
			categories = append(categories, c)
		}
	}
	next.Categories = categories
	return s.persist(ctx, next)
}

// Ledger returns an independent snapshot of the current ledger.
func (s *Store) Ledger() model.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Clone()
}

// NetWorth sums all account balances. Recomputed on every call.
func (s *Store) NetWorth() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, a := range s.ledger.Accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// MonthTransactions returns the month's transactions, newest first.
// Transactions with unparseable dates are excluded.
func (s *Store) MonthTransactions(year int, month time.Month) []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.monthTransactions(year, month)
}

func (s *Store) monthTransactions(year int, month time.Month) []model.Transaction {
	var out []model.Transaction
	for _, t := range s.ledger.Transactions {
		d, ok := dates.Parse(t.Date)
		if !ok {
			continue
		}
		if d.Year() == year && d.Month() == month {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return dates.Timestamp(out[i].Date) > dates.Timestamp(out[j].Date)
	})
	return out
}

// MonthSummary aggregates one month's income and expense totals, with a
// per-category expense breakdown. Transfers net to zero and are skipped.
type MonthSummary struct {
	Income     decimal.Decimal
	Expense    decimal.Decimal
	ByCategory map[string]decimal.Decimal
}

// MonthSummary computes the summary for a year/month.
func (s *Store) MonthSummary(year int, month time.Month) MonthSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := MonthSummary{
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
	}
	for _, t := range s.monthTransactions(year, month) {
		switch t.Type {
		case model.TransactionIncome:
			summary.Income = summary.Income.Add(t.Amount)
		case model.TransactionExpense:
			summary.Expense = summary.Expense.Add(t.Amount)
			summary.ByCategory[t.CategoryID] = summary.ByCategory[t.CategoryID].Add(t.Amount)
		}
	}
	return summary
}

// Loading reports whether the initial fetch is still in flight.
func (s *Store) Loading() bool {
	return s.loading.Load()
}

// Saving reports whether a mutation's save is in flight.
func (s *Store) Saving() bool {
	return s.saving.Load()
}

// Err returns the last failure message, cleared at the start of each
// operation.
func (s *Store) Err() string {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.lastErr
}
