package models

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name   string
		txType string
		amount int64
		want   int64
	}{
		{"income is positive", TransactionTypeIncome, 100, 100},
		{"expense is negated", TransactionTypeExpense, 50, -50},
		{"zero stays zero", TransactionTypeExpense, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := Transaction{TransactionType: tt.txType, Amount: decimal.NewFromInt(tt.amount)}
			if got := tx.SignedAmount(); !got.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("SignedAmount() = %s, want %d", got, tt.want)
			}
		})
	}
}

func TestSignedAmountOrdering(t *testing.T) {
	// Ascending amount sort orders by signed value, so an expense of 50
	// (-50) comes before an income of 100 (+100).
	txs := []Transaction{
		{TransactionType: TransactionTypeIncome, Amount: decimal.NewFromInt(100)},
		{TransactionType: TransactionTypeExpense, Amount: decimal.NewFromInt(50)},
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].SignedAmount().LessThan(txs[j].SignedAmount())
	})

	if txs[0].TransactionType != TransactionTypeExpense {
		t.Errorf("first after ascending sort = %s, want EXPENSE", txs[0].TransactionType)
	}
}

func TestValidTransactionType(t *testing.T) {
	for _, valid := range []string{TransactionTypeIncome, TransactionTypeExpense} {
		if !ValidTransactionType(valid) {
			t.Errorf("ValidTransactionType(%q) = false", valid)
		}
	}
	for _, invalid := range []string{"", "income", "TRANSFER", "Expense"} {
		if ValidTransactionType(invalid) {
			t.Errorf("ValidTransactionType(%q) = true", invalid)
		}
	}
}
