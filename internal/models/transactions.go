package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTypeIncome  = "INCOME"
	TransactionTypeExpense = "EXPENSE"
)

// ValidTransactionType reports whether t is one of the two accepted type tags.
func ValidTransactionType(t string) bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type Transaction struct {
	ID              int             `json:"id,omitempty" db:"id,omitempty"`
	UserID          int             `json:"user_id,omitempty" db:"user_id,omitempty"`
	TransactionType string          `json:"type,omitempty" db:"transaction_type,omitempty"`
	Category        string          `json:"category,omitempty" db:"category,omitempty"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	Description     string          `json:"description,omitempty" db:"description,omitempty"`
	Date            time.Time       `json:"date" db:"date"`
	CreatedAt       time.Time       `json:"created_at,omitempty" db:"created_at,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at,omitempty" db:"updated_at,omitempty"`
}

// SignedAmount is the transaction's net contribution: +amount for INCOME,
// -amount for EXPENSE. Every aggregation site must go through this convention
// rather than re-deriving the sign from the type tag.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.TransactionType == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
