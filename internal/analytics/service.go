package analytics

import (
	"context"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var oneHundred = decimal.NewFromInt(100)

// Totals holds income/expense sums for one range plus metrics derived from
// them. Income and Expenses are magnitudes, never negative.
type Totals struct {
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Net         decimal.Decimal `json:"net"`
	SavingsRate float64         `json:"savings_rate"`
}

// DailyPoint is one day bucket of a period breakdown.
type DailyPoint struct {
	Date     string          `json:"date"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// MonthlyPoint is one month bucket of a range breakdown.
type MonthlyPoint struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// TrendPoint is one month of a single category's spending series.
type TrendPoint struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryTrend is the monthly spending series for one top category.
type CategoryTrend struct {
	Category string       `json:"category"`
	Data     []TrendPoint `json:"data"`
}

// Service computes dashboard aggregates. Every method is a pure function of
// its arguments and the stored transaction set; no state is retained between
// calls.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// pairSums fetches the income and expense sums for one range. The two queries
// touch disjoint rows, so they run concurrently.
func (s *Service) pairSums(ctx context.Context, userID int, r Range) (income, expenses decimal.Decimal, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		income, err = s.store.SumAmount(gctx, userID, models.TransactionTypeIncome, r)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.store.SumAmount(gctx, userID, models.TransactionTypeExpense, r)
		return err
	})

	if err := g.Wait(); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return income, expenses, nil
}

// Totals computes income, expenses, net and savings rate for a range. Pass
// the zero Range for lifetime totals.
func (s *Service) Totals(ctx context.Context, userID int, r Range) (Totals, error) {
	income, expenses, err := s.pairSums(ctx, userID, r)
	if err != nil {
		return Totals{}, err
	}

	net := income.Sub(expenses)

	// Guard the zero-income case so the rate never becomes Inf or NaN.
	var savingsRate float64
	if income.IsPositive() {
		savingsRate, _ = net.Div(income).Mul(oneHundred).Float64()
	}

	return Totals{
		Income:      income,
		Expenses:    expenses,
		Net:         net,
		SavingsRate: savingsRate,
	}, nil
}

// DailyBreakdown aggregates each calendar day of r into an ordered series.
func (s *Service) DailyBreakdown(ctx context.Context, userID int, r Range) ([]DailyPoint, error) {
	days := DayRanges(r)
	points := make([]DailyPoint, 0, len(days))

	for _, day := range days {
		income, expenses, err := s.pairSums(ctx, userID, day)
		if err != nil {
			return nil, err
		}
		points = append(points, DailyPoint{
			Date:     DayLabel(day),
			Income:   income,
			Expenses: expenses,
			Net:      income.Sub(expenses),
		})
	}
	return points, nil
}

// MonthlyBreakdown aggregates each calendar month overlapping r into an
// ordered series.
func (s *Service) MonthlyBreakdown(ctx context.Context, userID int, r Range) ([]MonthlyPoint, error) {
	return s.monthlyPoints(ctx, userID, MonthRanges(r))
}

// TrailingMonths aggregates exactly n full months ending with the anchor
// month, oldest first. The dashboard summary always asks for six.
func (s *Service) TrailingMonths(ctx context.Context, userID, year, month, n int) ([]MonthlyPoint, error) {
	return s.monthlyPoints(ctx, userID, TrailingMonthRanges(year, month, n))
}

func (s *Service) monthlyPoints(ctx context.Context, userID int, months []Range) ([]MonthlyPoint, error) {
	points := make([]MonthlyPoint, 0, len(months))
	for _, m := range months {
		income, expenses, err := s.pairSums(ctx, userID, m)
		if err != nil {
			return nil, err
		}
		points = append(points, MonthlyPoint{
			Month:    MonthLabel(m),
			Income:   income,
			Expenses: expenses,
			Net:      income.Sub(expenses),
		})
	}
	return points, nil
}

// CategoryBreakdown groups expense spending within r by category.
func (s *Service) CategoryBreakdown(ctx context.Context, userID int, r Range) ([]CategorySum, error) {
	return s.store.ExpenseCategorySums(ctx, userID, r)
}

// CategoryTrends returns the monthly spending series of the topN categories
// by total magnitude over r. All series share the month labels of
// MonthlyBreakdown over the same range. No expenses yields an empty slice.
func (s *Service) CategoryTrends(ctx context.Context, userID int, r Range, topN int) ([]CategoryTrend, error) {
	sums, err := s.store.ExpenseCategorySums(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	if len(sums) > topN {
		sums = sums[:topN]
	}

	months := MonthRanges(r)
	trends := make([]CategoryTrend, 0, len(sums))

	for _, cs := range sums {
		data := make([]TrendPoint, 0, len(months))
		for _, m := range months {
			amount, err := s.store.SumCategoryAmount(ctx, userID, cs.Category, m)
			if err != nil {
				return nil, err
			}
			data = append(data, TrendPoint{Month: MonthLabel(m), Amount: amount})
		}
		trends = append(trends, CategoryTrend{Category: cs.Category, Data: data})
	}
	return trends, nil
}

// OverallBalance computes the lifetime picture: base balance plus lifetime
// income minus lifetime expenses.
func (s *Service) OverallBalance(ctx context.Context, userID int, baseBalance decimal.Decimal) (totalIncome, totalExpenses, netBalance decimal.Decimal, err error) {
	income, expenses, err := s.pairSums(ctx, userID, Range{})
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	return income, expenses, baseBalance.Add(income).Sub(expenses), nil
}

// AvailableYears returns the ascending span of years between the user's
// earliest and latest transaction, falling back to the current year when the
// user has none.
func (s *Service) AvailableYears(ctx context.Context, userID int, now time.Time) (years []int, minYear, maxYear int, err error) {
	min, max, found, err := s.store.TransactionDateBounds(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}
	if !found {
		year := now.Year()
		return []int{year}, year, year, nil
	}

	minYear, maxYear = min.Year(), max.Year()
	years = make([]int, 0, maxYear-minYear+1)
	for y := minYear; y <= maxYear; y++ {
		years = append(years, y)
	}
	return years, minYear, maxYear, nil
}
