package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakyaa89/MoneyTracker/internal/model"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/finance", r.URL.Path)
		_ = json.NewEncoder(w).Encode(model.DefaultLedger())
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Accounts, 3)
	assert.Len(t, got.Categories, 15)
}

func TestSave_EchoesServerDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in model.Ledger
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		// Server-side rewrite: the client must adopt what comes back.
		in.Accounts[0].Name = "Renamed"
		_ = json.NewEncoder(w).Encode(in)
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).Save(context.Background(), model.DefaultLedger())
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Accounts[0].Name)
}

func TestSave_ServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Invalid payload"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Save(context.Background(), model.Ledger{})
	require.Error(t, err)
	assert.Equal(t, "Invalid payload", err.Error())
}

func TestFetch_OpaqueErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, "request failed", err.Error())
}

func TestFetch_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding finance response")
}

func TestFetch_Timeout(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient(srv.URL).Fetch(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestFetch_ConnectionRefused(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:1").Fetch(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), "finance request")
}
