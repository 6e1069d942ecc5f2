package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CategorySum is an expense total keyed by the literal category string.
type CategorySum struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Store is the read-only transaction query surface the aggregation layer
// runs against. A zero Range means no date restriction.
type Store interface {
	// SumAmount returns the sum of amount magnitudes for the user's
	// transactions of the given type within r. No matches yields zero.
	SumAmount(ctx context.Context, userID int, txType string, r Range) (decimal.Decimal, error)

	// SumCategoryAmount is SumAmount restricted to EXPENSE transactions of a
	// single category.
	SumCategoryAmount(ctx context.Context, userID int, category string, r Range) (decimal.Decimal, error)

	// ExpenseCategorySums groups the user's EXPENSE transactions within r by
	// category, largest total first. Tie order is unspecified.
	ExpenseCategorySums(ctx context.Context, userID int, r Range) ([]CategorySum, error)

	// TransactionDateBounds returns the earliest and latest transaction dates
	// for the user; found is false when the user has no transactions.
	TransactionDateBounds(ctx context.Context, userID int) (min, max time.Time, found bool, err error)
}
