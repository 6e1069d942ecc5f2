package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/api/handlers"
	"fintrack/internal/repositories/sqlconnect"
	"fintrack/pkg/utils"

	"github.com/shopspring/decimal"
)

const trailingMonthCount = 6

const topTrendCategories = 5

func service(db *sql.DB) *analytics.Service {
	return analytics.NewService(analytics.NewMySQLStore(db))
}

// selectedMonth resolves optional month/year query params, defaulting to the
// current calendar month.
func selectedMonth(r *http.Request, now time.Time) (month, year int, err error) {
	month, year = int(now.Month()), now.Year()

	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		month, err = strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			return 0, 0, errors.New("invalid month")
		}
	}
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err = strconv.Atoi(yearStr)
		if err != nil {
			return 0, 0, errors.New("invalid year")
		}
	}
	return month, year, nil
}

// FUNC FOR THE DASHBOARD SUMMARY (selected month + 6 trailing months)
func SummaryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := handlers.UserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	month, year, err := selectedMonth(r, time.Now().UTC())
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	svc := service(db)
	monthRange := analytics.MonthBounds(year, month)

	totals, err := svc.Totals(ctx, userID, monthRange)
	if err != nil {
		utils.Logger.Errorf("error computing month totals: %v", err)
		utils.WriteError(w, "error fetching dashboard data", http.StatusInternalServerError)
		return
	}

	monthlyData, err := svc.TrailingMonths(ctx, userID, year, month, trailingMonthCount)
	if err != nil {
		utils.Logger.Errorf("error computing trailing months: %v", err)
		utils.WriteError(w, "error fetching dashboard data", http.StatusInternalServerError)
		return
	}

	categoryData, err := svc.CategoryBreakdown(ctx, userID, monthRange)
	if err != nil {
		utils.Logger.Errorf("error computing category breakdown: %v", err)
		utils.WriteError(w, "error fetching dashboard data", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"current_month": map[string]interface{}{
				"total_income":   totals.Income,
				"total_expenses": totals.Expenses,
				"net_balance":    totals.Net,
				"month":          month,
				"year":           year,
			},
			"monthly_data":  monthlyData,
			"category_data": categoryData,
		},
	})
}

// FUNC FOR THE LIFETIME OVERALL BALANCE
func OverallHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := handlers.UserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var baseBalance decimal.Decimal
	var currency string
	err := db.QueryRowContext(ctx, "SELECT base_balance, currency FROM users WHERE id = ?", userID).Scan(&baseBalance, &currency)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "user not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching user: %v", err)
		utils.WriteError(w, "error fetching dashboard data", http.StatusInternalServerError)
		return
	}

	totalIncome, totalExpenses, netBalance, err := service(db).OverallBalance(ctx, userID, baseBalance)
	if err != nil {
		utils.Logger.Errorf("error computing overall balance: %v", err)
		utils.WriteError(w, "error fetching dashboard data", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"base_balance":   baseBalance,
			"total_income":   totalIncome,
			"total_expenses": totalExpenses,
			"net_balance":    netBalance,
			"currency":       currency,
		},
	})
}

// FUNC FOR PERIOD ANALYTICS (one month or one year, daily buckets)
func PeriodHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := handlers.UserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	now := time.Now().UTC()

	var periodRange analytics.Range
	response := map[string]interface{}{}

	if q.Get("type") == "yearly" && q.Get("year") != "" {
		year, err := strconv.Atoi(q.Get("year"))
		if err != nil {
			utils.WriteError(w, "invalid year", http.StatusBadRequest)
			return
		}
		periodRange = analytics.YearBounds(year)
		response["selected_year"] = year
	} else {
		month, year, err := selectedMonth(r, now)
		if err != nil {
			utils.WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		periodRange = analytics.MonthBounds(year, month)
		response["selected_month"] = month
		response["selected_year"] = year
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	svc := service(db)

	totals, err := svc.Totals(ctx, userID, periodRange)
	if err != nil {
		utils.Logger.Errorf("error computing period totals: %v", err)
		utils.WriteError(w, "error fetching period data", http.StatusInternalServerError)
		return
	}

	dailyData, err := svc.DailyBreakdown(ctx, userID, periodRange)
	if err != nil {
		utils.Logger.Errorf("error computing daily breakdown: %v", err)
		utils.WriteError(w, "error fetching period data", http.StatusInternalServerError)
		return
	}

	categoryData, err := svc.CategoryBreakdown(ctx, userID, periodRange)
	if err != nil {
		utils.Logger.Errorf("error computing category breakdown: %v", err)
		utils.WriteError(w, "error fetching period data", http.StatusInternalServerError)
		return
	}

	response["income"] = totals.Income
	response["expenses"] = totals.Expenses
	response["net_balance"] = totals.Net
	response["savings_rate"] = totals.SavingsRate
	response["daily_data"] = dailyData
	response["category_data"] = categoryData

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   response,
	})
}

// FUNC FOR RANGE ANALYTICS (preset or custom range, monthly buckets + trends)
func RangeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := handlers.UserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()

	dateRange, err := analytics.ResolveRange(q.Get("preset"), q.Get("startDate"), q.Get("endDate"), time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrUnknownPreset):
			utils.WriteError(w, "invalid preset", http.StatusBadRequest)
		case errors.Is(err, analytics.ErrInvalidDate):
			utils.WriteError(w, "invalid date", http.StatusBadRequest)
		default:
			utils.WriteError(w, "missing date parameters", http.StatusBadRequest)
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	svc := service(db)

	totals, err := svc.Totals(ctx, userID, dateRange)
	if err != nil {
		utils.Logger.Errorf("error computing range totals: %v", err)
		utils.WriteError(w, "error fetching range data", http.StatusInternalServerError)
		return
	}

	monthlyData, err := svc.MonthlyBreakdown(ctx, userID, dateRange)
	if err != nil {
		utils.Logger.Errorf("error computing monthly breakdown: %v", err)
		utils.WriteError(w, "error fetching range data", http.StatusInternalServerError)
		return
	}

	categoryData, err := svc.CategoryBreakdown(ctx, userID, dateRange)
	if err != nil {
		utils.Logger.Errorf("error computing category breakdown: %v", err)
		utils.WriteError(w, "error fetching range data", http.StatusInternalServerError)
		return
	}

	categoryTrends, err := svc.CategoryTrends(ctx, userID, dateRange, topTrendCategories)
	if err != nil {
		utils.Logger.Errorf("error computing category trends: %v", err)
		utils.WriteError(w, "error fetching range data", http.StatusInternalServerError)
		return
	}

	months := decimal.NewFromInt(int64(analytics.MonthsInRange(dateRange)))

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"start_date":               dateRange.Start.Format("2006-01-02"),
			"end_date":                 dateRange.End.Format("2006-01-02"),
			"total_income":             totals.Income,
			"total_expenses":           totals.Expenses,
			"net_balance":              totals.Net,
			"savings_rate":             totals.SavingsRate,
			"average_monthly_income":   totals.Income.Div(months),
			"average_monthly_expenses": totals.Expenses.Div(months),
			"monthly_data":             monthlyData,
			"category_data":            categoryData,
			"category_trends":          categoryTrends,
		},
	})
}

// FUNC FOR AVAILABLE YEARS
func YearsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := handlers.UserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	years, minYear, maxYear, err := service(db).AvailableYears(ctx, userID, time.Now().UTC())
	if err != nil {
		utils.Logger.Errorf("error fetching year range: %v", err)
		utils.WriteError(w, "failed to fetch year range", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"years":    years,
			"min_year": minYear,
			"max_year": maxYear,
		},
	})
}
