package commands

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakyaa89/MoneyTracker/internal/server"
)

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(server.New(server.NewMemoryRepository()).Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestAddAndSummary(t *testing.T) {
	srv := startServer(t)

	out, err := execute(t, "add", "--api", srv.URL,
		"--type", "income", "--amount", "500", "--account", "bank",
		"--category", "salary", "--note", "february pay", "--date", "2026-02-17T07:20")
	require.NoError(t, err)
	assert.Contains(t, out, "Added income of Rs.500.00")

	out, err = execute(t, "add", "--api", srv.URL,
		"--amount", "120.50", "--account", "bank",
		"--category", "food", "--note", "groceries", "--date", "2026-02-18")
	require.NoError(t, err)
	assert.Contains(t, out, "Added expense of Rs.120.50")

	out, err = execute(t, "summary", "--api", srv.URL, "--year", "2026", "--month", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Net worth: Rs.379.50")
	assert.Contains(t, out, "Income:  Rs.500.00")
	assert.Contains(t, out, "Expense: Rs.120.50")
	assert.Contains(t, out, "Food & Dining")
}

func TestAdd_InsufficientBalance(t *testing.T) {
	srv := startServer(t)

	_, err := execute(t, "add", "--api", srv.URL,
		"--amount", "50", "--account", "cash",
		"--category", "food", "--note", "snacks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient balance")
}

func TestExport(t *testing.T) {
	srv := startServer(t)

	_, err := execute(t, "add", "--api", srv.URL,
		"--type", "income", "--amount", "42", "--account", "cash",
		"--category", "gifts-in", "--note", "birthday", "--date", "2026-03-01")
	require.NoError(t, err)

	out, err := execute(t, "export", "--api", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Date,Type,Amount,Category,Account,To Account,Note")
	assert.Contains(t, out, "2026-03-01T00:00,income,42,Gifts,Cash,,birthday")
}
