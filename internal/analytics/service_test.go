package analytics

import (
	"context"
	"sort"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// memStore is an in-memory Store over a fixed transaction slice.
type memStore struct {
	txs []models.Transaction
}

func (m *memStore) SumAmount(_ context.Context, userID int, txType string, r Range) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, tx := range m.txs {
		if tx.UserID == userID && tx.TransactionType == txType && r.Contains(tx.Date) {
			total = total.Add(tx.Amount)
		}
	}
	return total, nil
}

func (m *memStore) SumCategoryAmount(_ context.Context, userID int, category string, r Range) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, tx := range m.txs {
		if tx.UserID == userID && tx.TransactionType == models.TransactionTypeExpense &&
			tx.Category == category && r.Contains(tx.Date) {
			total = total.Add(tx.Amount)
		}
	}
	return total, nil
}

func (m *memStore) ExpenseCategorySums(_ context.Context, userID int, r Range) ([]CategorySum, error) {
	byCategory := map[string]decimal.Decimal{}
	var order []string
	for _, tx := range m.txs {
		if tx.UserID != userID || tx.TransactionType != models.TransactionTypeExpense || !r.Contains(tx.Date) {
			continue
		}
		if _, ok := byCategory[tx.Category]; !ok {
			order = append(order, tx.Category)
		}
		byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
	}

	sums := []CategorySum{}
	for _, cat := range order {
		sums = append(sums, CategorySum{Category: cat, Amount: byCategory[cat]})
	}
	sort.SliceStable(sums, func(i, j int) bool {
		return sums[i].Amount.GreaterThan(sums[j].Amount)
	})
	return sums, nil
}

func (m *memStore) TransactionDateBounds(_ context.Context, userID int) (time.Time, time.Time, bool, error) {
	var min, max time.Time
	found := false
	for _, tx := range m.txs {
		if tx.UserID != userID {
			continue
		}
		if !found || tx.Date.Before(min) {
			min = tx.Date
		}
		if !found || tx.Date.After(max) {
			max = tx.Date
		}
		found = true
	}
	return min, max, found, nil
}

func tx(userID int, txType, category string, amount float64, date time.Time) models.Transaction {
	return models.Transaction{
		UserID:          userID,
		TransactionType: txType,
		Category:        category,
		Amount:          decimal.NewFromFloat(amount),
		Date:            date,
	}
}

func newTestService(txs ...models.Transaction) *Service {
	return NewService(&memStore{txs: txs})
}

func TestTotals(t *testing.T) {
	svc := newTestService(
		tx(1, models.TransactionTypeIncome, "Salary", 3000, date(2024, 6, 1, 12, 0, 0)),
		tx(1, models.TransactionTypeIncome, "Freelance", 1000, date(2024, 6, 20, 12, 0, 0)),
		tx(1, models.TransactionTypeExpense, "Home", 1500, date(2024, 6, 10, 12, 0, 0)),
		// Outside the range and for another user: both must be ignored.
		tx(1, models.TransactionTypeExpense, "Travel", 999, date(2024, 7, 1, 0, 0, 0)),
		tx(2, models.TransactionTypeIncome, "Salary", 5000, date(2024, 6, 5, 12, 0, 0)),
	)

	totals, err := svc.Totals(context.Background(), 1, MonthBounds(2024, 6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !totals.Income.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("income = %s, want 4000", totals.Income)
	}
	if !totals.Expenses.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expenses = %s, want 1500", totals.Expenses)
	}
	if !totals.Net.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("net = %s, want 2500", totals.Net)
	}
	if totals.SavingsRate != 62.5 {
		t.Errorf("savings rate = %v, want 62.5", totals.SavingsRate)
	}
}

func TestTotalsZeroIncome(t *testing.T) {
	tests := []struct {
		name    string
		expense float64
	}{
		{"expenses without income", 800},
		{"no transactions at all", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txs []models.Transaction
			if tt.expense > 0 {
				txs = append(txs, tx(1, models.TransactionTypeExpense, "Home", tt.expense, date(2024, 6, 10, 0, 0, 0)))
			}
			svc := newTestService(txs...)

			totals, err := svc.Totals(context.Background(), 1, MonthBounds(2024, 6))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if totals.SavingsRate != 0 {
				t.Errorf("savings rate = %v, want 0 when income is 0", totals.SavingsRate)
			}
		})
	}
}

func TestDailyBreakdown(t *testing.T) {
	svc := newTestService(
		tx(1, models.TransactionTypeIncome, "Salary", 100, date(2024, 2, 1, 9, 0, 0)),
		tx(1, models.TransactionTypeExpense, "Food & Dining", 40, date(2024, 2, 29, 21, 0, 0)),
	)

	points, err := svc.DailyBreakdown(context.Background(), 1, MonthBounds(2024, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 29 {
		t.Fatalf("got %d points, want 29", len(points))
	}

	if points[0].Date != "2024-02-01" || !points[0].Income.Equal(decimal.NewFromInt(100)) {
		t.Errorf("first point = %+v", points[0])
	}
	last := points[28]
	if last.Date != "2024-02-29" || !last.Expenses.Equal(decimal.NewFromInt(40)) || !last.Net.Equal(decimal.NewFromInt(-40)) {
		t.Errorf("last point = %+v", last)
	}
}

func TestTrailingMonths(t *testing.T) {
	svc := newTestService(
		tx(1, models.TransactionTypeIncome, "Salary", 2000, date(2024, 1, 15, 0, 0, 0)),
		tx(1, models.TransactionTypeIncome, "Salary", 2000, date(2024, 6, 15, 0, 0, 0)),
	)

	points, err := svc.TrailingMonths(context.Background(), 1, 2024, 6, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 6 {
		t.Fatalf("got %d points, want exactly 6", len(points))
	}
	if points[0].Month != "Jan 2024" || points[5].Month != "Jun 2024" {
		t.Errorf("labels = %q .. %q", points[0].Month, points[5].Month)
	}
	if !points[0].Income.Equal(decimal.NewFromInt(2000)) || !points[1].Income.Equal(decimal.Zero) {
		t.Errorf("unexpected income distribution: %+v", points[:2])
	}
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	svc := newTestService(
		tx(1, models.TransactionTypeIncome, "Salary", 2000, date(2024, 6, 15, 0, 0, 0)),
	)

	sums, err := svc.CategoryBreakdown(context.Background(), 1, MonthBounds(2024, 6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sums) != 0 {
		t.Errorf("got %d categories, want 0 (income must not be grouped)", len(sums))
	}

	trends, err := svc.CategoryTrends(context.Background(), 1, MonthBounds(2024, 6), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trends) != 0 {
		t.Errorf("got %d trends, want 0", len(trends))
	}
}

func TestCategoryBreakdownCaseSensitive(t *testing.T) {
	svc := newTestService(
		tx(1, models.TransactionTypeExpense, "Food", 10, date(2024, 6, 1, 0, 0, 0)),
		tx(1, models.TransactionTypeExpense, "food", 20, date(2024, 6, 2, 0, 0, 0)),
	)

	sums, err := svc.CategoryBreakdown(context.Background(), 1, MonthBounds(2024, 6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sums) != 2 {
		t.Errorf("got %d categories, want 2 distinct (no case folding)", len(sums))
	}
}

func TestCategoryTrends(t *testing.T) {
	r, err := CustomRange("2024-01-01", "2024-03-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var txs []models.Transaction
	// Six categories with distinct totals; only the top five may survive.
	categories := []string{"Home", "Travel", "Food & Dining", "Shopping", "Healthcare", "Education"}
	for i, cat := range categories {
		txs = append(txs, tx(1, models.TransactionTypeExpense, cat, float64(600-i*100), date(2024, 2, 10, 0, 0, 0)))
	}
	svc := newTestService(txs...)

	trends, err := svc.CategoryTrends(context.Background(), 1, r, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trends) != 5 {
		t.Fatalf("got %d trends, want 5", len(trends))
	}
	if trends[0].Category != "Home" {
		t.Errorf("largest category = %q, want Home", trends[0].Category)
	}
	for _, tr := range trends {
		if tr.Category == "Education" {
			t.Error("smallest category must be cut from the top five")
		}
		if len(tr.Data) != 3 {
			t.Fatalf("series length = %d, want 3 months", len(tr.Data))
		}
		if tr.Data[0].Month != "Jan 2024" || tr.Data[2].Month != "Mar 2024" {
			t.Errorf("labels = %q .. %q", tr.Data[0].Month, tr.Data[2].Month)
		}
	}
	// All spend is in February in this fixture.
	if !trends[0].Data[1].Amount.Equal(decimal.NewFromInt(600)) {
		t.Errorf("Home Feb amount = %s, want 600", trends[0].Data[1].Amount)
	}
	if !trends[0].Data[0].Amount.Equal(decimal.Zero) {
		t.Errorf("Home Jan amount = %s, want 0", trends[0].Data[0].Amount)
	}
}

func TestOverallBalance(t *testing.T) {
	svc := newTestService(
		tx(1, models.TransactionTypeIncome, "Salary", 5000, date(2023, 3, 1, 0, 0, 0)),
		tx(1, models.TransactionTypeExpense, "Home", 2000, date(2024, 4, 1, 0, 0, 0)),
	)

	income, expenses, net, err := svc.OverallBalance(context.Background(), 1, decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !income.Equal(decimal.NewFromInt(5000)) || !expenses.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("lifetime sums = %s / %s", income, expenses)
	}
	if !net.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("net balance = %s, want 4000 (base 1000 + 5000 - 2000)", net)
	}
}

func TestAvailableYears(t *testing.T) {
	now := date(2026, 8, 29, 0, 0, 0)

	t.Run("span", func(t *testing.T) {
		svc := newTestService(
			tx(1, models.TransactionTypeIncome, "Salary", 100, date(2022, 11, 1, 0, 0, 0)),
			tx(1, models.TransactionTypeExpense, "Home", 50, date(2025, 2, 1, 0, 0, 0)),
		)
		years, minYear, maxYear, err := svc.AvailableYears(context.Background(), 1, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []int{2022, 2023, 2024, 2025}
		if len(years) != len(want) {
			t.Fatalf("years = %v, want %v", years, want)
		}
		for i := range want {
			if years[i] != want[i] {
				t.Fatalf("years = %v, want %v", years, want)
			}
		}
		if minYear != 2022 || maxYear != 2025 {
			t.Errorf("bounds = %d..%d", minYear, maxYear)
		}
	})

	t.Run("fallback to current year", func(t *testing.T) {
		svc := newTestService()
		years, minYear, maxYear, err := svc.AvailableYears(context.Background(), 1, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(years) != 1 || years[0] != 2026 || minYear != 2026 || maxYear != 2026 {
			t.Errorf("years = %v (%d..%d), want [2026]", years, minYear, maxYear)
		}
	})
}
