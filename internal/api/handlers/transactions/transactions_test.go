package transactions

import (
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

func TestSortClause(t *testing.T) {
	tests := []struct {
		sortBy    string
		sortOrder string
		want      string
	}{
		{"", "", " ORDER BY date DESC"},
		{"date", "asc", " ORDER BY date ASC"},
		{"amount", "desc", " ORDER BY " + signedAmountExpr + " DESC"},
		{"amount", "asc", " ORDER BY " + signedAmountExpr + " ASC"},
		{"bogus", "bogus", " ORDER BY date DESC"},
	}

	for _, tc := range tests {
		if got := sortClause(tc.sortBy, tc.sortOrder); got != tc.want {
			t.Errorf("sortClause(%q, %q) = %q, want %q", tc.sortBy, tc.sortOrder, got, tc.want)
		}
	}
}

func TestParseTransactionDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-03-15T10:30:00Z", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-03-15 10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		got, err := parseTransactionDate(tc.input)
		if err != nil {
			t.Errorf("parseTransactionDate(%q): %v", tc.input, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("parseTransactionDate(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}

	if _, err := parseTransactionDate("15/03/2024"); err == nil {
		t.Error("expected error for unsupported date layout")
	}
}

func TestTransactionRequestValidate(t *testing.T) {
	fallback := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	valid := transactionRequest{
		Amount:   decimal.NewFromInt(100),
		Type:     models.TransactionTypeExpense,
		Category: "Groceries",
		Date:     "2024-06-15",
	}
	date, msg, ok := valid.validate(fallback)
	if !ok {
		t.Fatalf("expected valid request, got %q", msg)
	}
	if want := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC); !date.Equal(want) {
		t.Errorf("resolved date = %v, want %v", date, want)
	}
}

func TestTransactionRequestValidateDateFallback(t *testing.T) {
	fallback := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	req := transactionRequest{
		Amount:   decimal.NewFromInt(50),
		Type:     models.TransactionTypeIncome,
		Category: "Salary",
	}
	date, msg, ok := req.validate(fallback)
	if !ok {
		t.Fatalf("expected valid request, got %q", msg)
	}
	if !date.Equal(fallback) {
		t.Errorf("expected fallback date %v, got %v", fallback, date)
	}
}

func TestTransactionRequestValidateRejections(t *testing.T) {
	fallback := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  transactionRequest
		msg  string
	}{
		{
			name: "zero amount",
			req:  transactionRequest{Type: models.TransactionTypeExpense, Category: "Rent"},
			msg:  "amount must be greater than zero",
		},
		{
			name: "negative amount",
			req:  transactionRequest{Amount: decimal.NewFromInt(-5), Type: models.TransactionTypeExpense, Category: "Rent"},
			msg:  "amount must be greater than zero",
		},
		{
			name: "bad type",
			req:  transactionRequest{Amount: decimal.NewFromInt(10), Type: "TRANSFER", Category: "Rent"},
			msg:  "invalid transaction type",
		},
		{
			name: "missing category",
			req:  transactionRequest{Amount: decimal.NewFromInt(10), Type: models.TransactionTypeExpense},
			msg:  "missing required fields",
		},
		{
			name: "bad date",
			req:  transactionRequest{Amount: decimal.NewFromInt(10), Type: models.TransactionTypeExpense, Category: "Rent", Date: "June 15"},
			msg:  "invalid date",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, msg, ok := tc.req.validate(fallback)
			if ok {
				t.Fatal("expected validation to fail")
			}
			if msg != tc.msg {
				t.Errorf("message = %q, want %q", msg, tc.msg)
			}
		})
	}
}
