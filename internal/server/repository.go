// Package server implements the finance document endpoint: a singleton ledger
// document with whole-document replace semantics, seeded with defaults on
// first read.
package server

import (
	"context"

	"github.com/shakyaa89/MoneyTracker/internal/model"
)

// Repository stores the singleton ledger document.
type Repository interface {
	// Get returns the stored document; found is false when none exists yet.
	Get(ctx context.Context) (l model.Ledger, found bool, err error)
	// Replace upserts the document wholesale and returns the stored copy.
	Replace(ctx context.Context, l model.Ledger) (model.Ledger, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
