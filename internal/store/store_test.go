package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakyaa89/MoneyTracker/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fakeRemote mimics the document server: whole-document replace, echo of the
// stored document, default seeding on first fetch.
type fakeRemote struct {
	ledger    model.Ledger
	exists    bool
	fetchErr  error
	saveErr   error
	saveCount int
	rewrite   func(model.Ledger) model.Ledger
}

func (f *fakeRemote) Fetch(_ context.Context) (model.Ledger, error) {
	if f.fetchErr != nil {
		return model.Ledger{}, f.fetchErr
	}
	if !f.exists {
		f.ledger = model.DefaultLedger()
		f.exists = true
	}
	return f.ledger.Clone(), nil
}

func (f *fakeRemote) Save(_ context.Context, l model.Ledger) (model.Ledger, error) {
	if f.saveErr != nil {
		return model.Ledger{}, f.saveErr
	}
	f.saveCount++
	if f.rewrite != nil {
		l = f.rewrite(l)
	}
	f.ledger = l.Clone()
	f.exists = true
	return f.ledger.Clone(), nil
}

func newLoadedStore(t *testing.T) (*Store, *fakeRemote) {
	t.Helper()
	remote := &fakeRemote{}
	s := New(remote)
	require.NoError(t, s.Load(context.Background()))
	return s, remote
}

func income(id, account, amount string) model.Transaction {
	return model.Transaction{
		ID: id, Date: "2026-02-10T09:00", Type: model.TransactionIncome,
		Amount: dec(amount), CategoryID: "salary", AccountID: account, Note: "pay",
	}
}

func expense(id, account, amount string) model.Transaction {
	return model.Transaction{
		ID: id, Date: "2026-02-11T12:30", Type: model.TransactionExpense,
		Amount: dec(amount), CategoryID: "food", AccountID: account, Note: "lunch",
	}
}

func transfer(id, from, to, amount string) model.Transaction {
	return model.Transaction{
		ID: id, Date: "2026-02-12T08:15", Type: model.TransactionTransfer,
		Amount: dec(amount), AccountID: from, ToAccountID: to, Note: "move",
	}
}

func balance(t *testing.T, s *Store, accountID string) decimal.Decimal {
	t.Helper()
	a, ok := s.Ledger().Account(accountID)
	require.True(t, ok, "account %s", accountID)
	return a.Balance
}

func TestLoad_AdoptsSeededDefaults(t *testing.T) {
	remote := &fakeRemote{}
	s := New(remote)
	assert.True(t, s.Loading())

	require.NoError(t, s.Load(context.Background()))

	assert.False(t, s.Loading())
	l := s.Ledger()
	assert.Len(t, l.Accounts, 3)
	assert.Len(t, l.Categories, 15)
	assert.Empty(t, l.Transactions)
}

func TestLoad_FetchFailureKeepsSnapshot(t *testing.T) {
	remote := &fakeRemote{fetchErr: errors.New("connection refused")}
	s := New(remote)

	err := s.Load(context.Background())
	require.Error(t, err)
	assert.False(t, s.Loading())
	assert.Equal(t, "connection refused", s.Err())
	// Pre-load seed is still in place.
	assert.Len(t, s.Ledger().Accounts, 3)
}

func TestAddTransaction_Scenario(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddTransaction(ctx, income("t1", "bank", "100")))
	assert.True(t, balance(t, s, "bank").Equal(dec("100")))

	err := s.AddTransaction(ctx, expense("t2", "bank", "150"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Insufficient balance in "Bank Account". Available: Rs.100.00`)
	assert.True(t, balance(t, s, "bank").Equal(dec("100")))
	assert.Len(t, s.Ledger().Transactions, 1)

	require.NoError(t, s.AddTransaction(ctx, expense("t3", "bank", "40")))
	assert.True(t, balance(t, s, "bank").Equal(dec("60")))
}

func TestAddTransaction_ValidationRejectedBeforeSave(t *testing.T) {
	s, remote := newLoadedStore(t)
	saves := remote.saveCount

	tx := expense("t1", "bank", "10")
	tx.Note = ""
	err := s.AddTransaction(context.Background(), tx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "note")
	assert.Equal(t, saves, remote.saveCount, "no save on validation failure")
	assert.Equal(t, err.Error(), s.Err())
}

func TestAddTransaction_AssignsIDAndNormalizesDate(t *testing.T) {
	s, _ := newLoadedStore(t)

	tx := income("", "bank", "5")
	tx.Date = "2026-02-17"
	require.NoError(t, s.AddTransaction(context.Background(), tx))

	got := s.Ledger().Transactions[0]
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "2026-02-17T00:00", got.Date)
}

func TestDeleteTransaction_RestoresBalances(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddTransaction(ctx, income("t1", "bank", "100")))
	require.NoError(t, s.AddTransaction(ctx, transfer("t2", "bank", "cash", "30")))
	assert.True(t, balance(t, s, "bank").Equal(dec("70")))
	assert.True(t, balance(t, s, "cash").Equal(dec("30")))

	require.NoError(t, s.DeleteTransaction(ctx, "t2"))
	assert.True(t, balance(t, s, "bank").Equal(dec("100")))
	assert.True(t, balance(t, s, "cash").Equal(dec("0")))

	// Unknown ID is a no-op.
	require.NoError(t, s.DeleteTransaction(ctx, "nope"))
	assert.Len(t, s.Ledger().Transactions, 1)
}

func TestUpdateTransaction_Atomicity(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddTransaction(ctx, income("t1", "bank", "100")))
	require.NoError(t, s.AddTransaction(ctx, expense("t2", "bank", "40")))

	// Raising the expense beyond the reversed baseline (100) must fail whole.
	bigger := expense("t2", "bank", "150")
	err := s.UpdateTransaction(ctx, "t2", bigger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient balance")

	got, ok := s.Ledger().Transaction("t2")
	require.True(t, ok)
	assert.True(t, got.Amount.Equal(dec("40")), "original transaction kept")
	assert.True(t, balance(t, s, "bank").Equal(dec("60")), "no partial reversal")
}

func TestUpdateTransaction_ReversesOldBeforeApplyingNew(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddTransaction(ctx, income("t1", "bank", "100")))
	require.NoError(t, s.AddTransaction(ctx, expense("t2", "bank", "40")))

	// 100 is affordable exactly because the old 40 is reversed first.
	require.NoError(t, s.UpdateTransaction(ctx, "t2", expense("t2", "bank", "100")))
	assert.True(t, balance(t, s, "bank").Equal(dec("0")))

	// Changing type income -> expense swings both directions.
	require.NoError(t, s.UpdateTransaction(ctx, "t2", income("t2", "bank", "25")))
	assert.True(t, balance(t, s, "bank").Equal(dec("125")))
}

func TestUpdateTransaction_UnknownIDIsNoop(t *testing.T) {
	s, remote := newLoadedStore(t)
	saves := remote.saveCount

	require.NoError(t, s.UpdateTransaction(context.Background(), "ghost", expense("ghost", "bank", "10")))
	assert.Equal(t, saves, remote.saveCount)
}

func TestDeleteAccount_Cascades(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddTransaction(ctx, income("t1", "bank", "100")))
	require.NoError(t, s.AddTransaction(ctx, income("t2", "cash", "50")))
	require.NoError(t, s.AddTransaction(ctx, transfer("t3", "bank", "cash", "20")))

	require.NoError(t, s.DeleteAccount(ctx, "cash"))

	l := s.Ledger()
	_, ok := l.Account("cash")
	assert.False(t, ok)
	require.Len(t, l.Transactions, 1)
	assert.Equal(t, "t1", l.Transactions[0].ID)
	for _, tx := range l.Transactions {
		assert.NotEqual(t, "cash", tx.AccountID)
		assert.NotEqual(t, "cash", tx.ToAccountID)
	}
}

func TestDeleteCategory_NoCascade(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddTransaction(ctx, income("t1", "bank", "100")))
	tx := expense("t2", "bank", "10")
	tx.CategoryID = "food"
	require.NoError(t, s.AddTransaction(ctx, tx))

	require.NoError(t, s.DeleteCategory(ctx, "food"))

	l := s.Ledger()
	_, ok := l.Category("food")
	assert.False(t, ok)
	got, ok := l.Transaction("t2")
	require.True(t, ok)
	assert.Equal(t, "food", got.CategoryID, "dangling reference is kept")
}

func TestAddCategory_SlugAndCollision(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddCategory(ctx, model.Category{Name: "Pet Care", Type: model.CategoryExpense}))
	_, ok := s.Ledger().Category("pet-care")
	assert.True(t, ok)

	// "Salary" collides with a seeded ID and falls back to a random one.
	require.NoError(t, s.AddCategory(ctx, model.Category{Name: "Salary", Type: model.CategoryIncome}))
	names := 0
	for _, c := range s.Ledger().Categories {
		if c.Name == "Salary" {
			names++
		}
	}
	assert.Equal(t, 2, names)
}

func TestUpdateAccount_Partial(t *testing.T) {
	s, _ := newLoadedStore(t)

	name := "Checking"
	require.NoError(t, s.UpdateAccount(context.Background(), "bank", AccountUpdate{Name: &name}))

	a, ok := s.Ledger().Account("bank")
	require.True(t, ok)
	assert.Equal(t, "Checking", a.Name)
	assert.Equal(t, model.AccountTypeBank, a.Type, "untouched fields survive")
}

func TestPersist_FailureRollsBack(t *testing.T) {
	s, remote := newLoadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddTransaction(ctx, income("t1", "bank", "100")))

	remote.saveErr = errors.New("request timed out, please try again")
	err := s.AddTransaction(ctx, expense("t2", "bank", "10"))
	require.Error(t, err)

	assert.True(t, balance(t, s, "bank").Equal(dec("100")), "snapshot untouched")
	assert.Len(t, s.Ledger().Transactions, 1)
	assert.Equal(t, "request timed out, please try again", s.Err())

	// Error clears at the start of the next successful operation.
	remote.saveErr = nil
	require.NoError(t, s.AddTransaction(ctx, expense("t2", "bank", "10")))
	assert.Empty(t, s.Err())
}

func TestPersist_ServerEchoWins(t *testing.T) {
	s, remote := newLoadedStore(t)
	remote.rewrite = func(l model.Ledger) model.Ledger {
		l.Accounts = append(l.Accounts, model.Account{
			ID: "wallet", Name: "Wallet", Type: model.AccountTypeWallet, Balance: dec("7"),
		})
		return l
	}

	require.NoError(t, s.AddTransaction(context.Background(), income("t1", "bank", "100")))

	_, ok := s.Ledger().Account("wallet")
	assert.True(t, ok, "store adopts the server's echoed document verbatim")
}

func TestNetWorth_BalanceConservation(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddTransaction(ctx, income("t1", "bank", "100")))
	require.NoError(t, s.AddTransaction(ctx, income("t2", "cash", "55.50")))
	require.NoError(t, s.AddTransaction(ctx, transfer("t3", "bank", "card", "25")))
	require.NoError(t, s.AddTransaction(ctx, expense("t4", "cash", "15.25")))
	require.NoError(t, s.DeleteTransaction(ctx, "t2"))

	// Remaining: +100 income, -15.25 expense; transfers net to zero.
	assert.True(t, s.NetWorth().Equal(dec("84.75")))
}

func TestMonthTransactions_FiltersAndSorts(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	jan := income("t1", "bank", "10")
	jan.Date = "2026-01-05T10:00"
	require.NoError(t, s.AddTransaction(ctx, jan))

	feb1 := income("t2", "bank", "20")
	feb1.Date = "2026-02-03T08:00"
	require.NoError(t, s.AddTransaction(ctx, feb1))

	feb2 := income("t3", "bank", "30")
	feb2.Date = "2026-02-20T22:10"
	require.NoError(t, s.AddTransaction(ctx, feb2))

	got := s.MonthTransactions(2026, time.February)
	require.Len(t, got, 2)
	assert.Equal(t, "t3", got[0].ID, "newest first")
	assert.Equal(t, "t2", got[1].ID)
}

func TestMonthSummary(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddTransaction(ctx, income("t1", "bank", "500")))
	groceries := expense("t2", "bank", "120")
	require.NoError(t, s.AddTransaction(ctx, groceries))
	bus := expense("t3", "bank", "30")
	bus.CategoryID = "transport"
	require.NoError(t, s.AddTransaction(ctx, bus))
	require.NoError(t, s.AddTransaction(ctx, transfer("t4", "bank", "cash", "50")))

	sum := s.MonthSummary(2026, time.February)
	assert.True(t, sum.Income.Equal(dec("500")))
	assert.True(t, sum.Expense.Equal(dec("150")))
	assert.True(t, sum.ByCategory["food"].Equal(dec("120")))
	assert.True(t, sum.ByCategory["transport"].Equal(dec("30")))
}

func TestSaving_ObservableDuringPersist(t *testing.T) {
	remote := &fakeRemote{}
	s := New(remote)
	require.NoError(t, s.Load(context.Background()))

	saw := make(chan bool, 1)
	remote.rewrite = func(l model.Ledger) model.Ledger {
		saw <- s.Saving()
		return l
	}
	require.NoError(t, s.AddTransaction(context.Background(), income("t1", "bank", "1")))
	assert.True(t, <-saw)
	assert.False(t, s.Saving())
}
