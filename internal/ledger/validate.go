package ledger

import (
	"fmt"
	"strings"

	"github.com/shakyaa89/MoneyTracker/internal/model"
)

// ValidationError describes a single malformed transaction field.
type ValidationError struct {
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// ValidateTransaction checks a transaction's fields before it may touch any
// balance. Returns one error per violation.
func ValidateTransaction(tx model.Transaction) []ValidationError {
	var errs []ValidationError

	switch tx.Type {
	case model.TransactionIncome, model.TransactionExpense, model.TransactionTransfer:
	default:
		errs = append(errs, ValidationError{Field: "type", Description: fmt.Sprintf("unknown transaction type %q", tx.Type)})
	}

	if !tx.Amount.IsPositive() {
		errs = append(errs, ValidationError{Field: "amount", Description: "must be greater than zero"})
	}

	if tx.AccountID == "" {
		errs = append(errs, ValidationError{Field: "accountId", Description: "must not be empty"})
	}

	if strings.TrimSpace(tx.Note) == "" {
		errs = append(errs, ValidationError{Field: "note", Description: "must not be empty"})
	}

	if tx.Type == model.TransactionTransfer {
		if tx.ToAccountID == "" {
			errs = append(errs, ValidationError{Field: "toAccountId", Description: "required for transfers"})
		} else if tx.ToAccountID == tx.AccountID {
			errs = append(errs, ValidationError{Field: "toAccountId", Description: "must differ from the source account"})
		}
		if tx.CategoryID != "" {
			errs = append(errs, ValidationError{Field: "categoryId", Description: "transfers cannot be categorized"})
		}
	} else if tx.CategoryID == "" {
		errs = append(errs, ValidationError{Field: "categoryId", Description: "required for income and expenses"})
	}

	return errs
}

// JoinValidationErrors flattens validation errors into a single error.
// Returns nil for an empty slice.
func JoinValidationErrors(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, ve := range errs {
		msgs[i] = ve.Error()
	}
	return fmt.Errorf("invalid transaction: %s", strings.Join(msgs, "; "))
}
