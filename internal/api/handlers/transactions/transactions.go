package transactions

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/api/handlers"
	"fintrack/internal/models"
	"fintrack/internal/repositories/sqlconnect"
	"fintrack/pkg/utils"

	"github.com/shopspring/decimal"
)

const transactionColumns = "id, user_id, transaction_type, category, amount, description, date, created_at, updated_at"

// signedAmountExpr mirrors models.Transaction.SignedAmount in SQL so amount
// sorting orders by net contribution, expenses negative.
const signedAmountExpr = "(CASE WHEN transaction_type = 'EXPENSE' THEN -amount ELSE amount END)"

func scanTransaction(row interface{ Scan(...interface{}) error }, tx *models.Transaction) error {
	var description sql.NullString
	err := row.Scan(&tx.ID, &tx.UserID, &tx.TransactionType, &tx.Category, &tx.Amount, &description, &tx.Date, &tx.CreatedAt, &tx.UpdatedAt)
	tx.Description = description.String
	return err
}

// sortClause maps the sortBy/sortOrder query params to an ORDER BY clause.
func sortClause(sortBy, sortOrder string) string {
	column := "date"
	if sortBy == "amount" {
		column = signedAmountExpr
	}

	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}

	return " ORDER BY " + column + " " + direction
}

func parseTransactionDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

type transactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// validate checks the shared create/update rules and resolves the date,
// falling back to fallbackDate when none was supplied.
func (req *transactionRequest) validate(fallbackDate time.Time) (time.Time, string, bool) {
	if !req.Amount.IsPositive() {
		return time.Time{}, "amount must be greater than zero", false
	}
	if !models.ValidTransactionType(req.Type) {
		return time.Time{}, "invalid transaction type", false
	}
	if req.Category == "" {
		return time.Time{}, "missing required fields", false
	}

	if req.Date == "" {
		return fallbackDate, "", true
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		return time.Time{}, "invalid date", false
	}
	return date, "", true
}

// FUNC TO LIST TRANSACTIONS FOR A USER
func ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
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

	q := r.URL.Query()

	query := "SELECT " + transactionColumns + " FROM transactions WHERE user_id = ?"
	args := []interface{}{userID}

	if yearStr := q.Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			utils.WriteError(w, "invalid year", http.StatusBadRequest)
			return
		}

		var dateRange analytics.Range
		if monthStr := q.Get("month"); monthStr != "" {
			month, err := strconv.Atoi(monthStr)
			if err != nil || month < 1 || month > 12 {
				utils.WriteError(w, "invalid month", http.StatusBadRequest)
				return
			}
			dateRange = analytics.MonthBounds(year, month)
		} else {
			dateRange = analytics.YearBounds(year)
		}

		query += " AND date BETWEEN ? AND ?"
		args = append(args, dateRange.Start, dateRange.End)
	}

	if txType := q.Get("type"); txType != "" {
		if !models.ValidTransactionType(txType) {
			utils.WriteError(w, "invalid transaction type", http.StatusBadRequest)
			return
		}
		query += " AND transaction_type = ?"
		args = append(args, txType)
	}

	if category := q.Get("category"); category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}

	query += sortClause(q.Get("sortBy"), q.Get("sortOrder"))

	page, limit := utils.GetPaginationParams(r)
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		utils.Logger.Errorf("error fetching transactions: %v", err)
		utils.WriteError(w, "error fetching transactions", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var tx models.Transaction
		if err := scanTransaction(rows, &tx); err != nil {
			utils.Logger.Errorf("error scanning transaction: %v", err)
			utils.WriteError(w, "error fetching transactions", http.StatusInternalServerError)
			return
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		utils.Logger.Errorf("error iterating transactions: %v", err)
		utils.WriteError(w, "error fetching transactions", http.StatusInternalServerError)
		return
	}

	response := struct {
		Status   string               `json:"status"`
		Count    int                  `json:"count"`
		Page     int                  `json:"page"`
		PageSize int                  `json:"page_size"`
		Data     []models.Transaction `json:"data"`
	}{
		Status:   "success",
		Count:    len(transactions),
		Page:     page,
		PageSize: limit,
		Data:     transactions,
	}

	utils.WriteJSON(w, response)
}

// FUNC TO CREATE A TRANSACTION
func CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
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

	var req transactionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	date, msg, ok := req.validate(time.Now().UTC())
	if !ok {
		utils.WriteError(w, msg, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ExecContext(ctx,
		"INSERT INTO transactions (user_id, transaction_type, category, amount, description, date) VALUES (?, ?, ?, ?, ?, ?)",
		userID, req.Type, req.Category, req.Amount, req.Description, date,
	)
	if err != nil {
		utils.Logger.Errorf("error creating transaction: %v", err)
		utils.WriteError(w, "error creating transaction", http.StatusInternalServerError)
		return
	}

	id, err := res.LastInsertId()
	if err != nil {
		utils.Logger.Errorf("failed to get last insert ID: %v", err)
		utils.WriteError(w, "error creating transaction", http.StatusInternalServerError)
		return
	}

	var tx models.Transaction
	err = scanTransaction(db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ? AND user_id = ?", id, userID), &tx)
	if err != nil {
		utils.Logger.Errorf("error fetching created transaction: %v", err)
		utils.WriteError(w, "error creating transaction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"data":   tx,
	})
}

// FUNC TO GET ONE TRANSACTION BY ID
func GetTransactionByIdHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	transactionID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
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

	// Scoping by owner collapses "absent" and "not yours" into one outcome.
	var tx models.Transaction
	err = scanTransaction(db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ? AND user_id = ?", transactionID, userID), &tx)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "transaction not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching transaction: %v", err)
		utils.WriteError(w, "error fetching transaction", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   tx,
	})
}

// FUNC TO UPDATE A TRANSACTION
func UpdateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	transactionID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
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

	var req transactionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Transaction
	err = scanTransaction(db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ? AND user_id = ?", transactionID, userID), &existing)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "transaction not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching transaction: %v", err)
		utils.WriteError(w, "error updating transaction", http.StatusInternalServerError)
		return
	}

	// An omitted date keeps the prior value.
	date, msg, ok := req.validate(existing.Date)
	if !ok {
		utils.WriteError(w, msg, http.StatusBadRequest)
		return
	}

	_, err = db.ExecContext(ctx,
		"UPDATE transactions SET transaction_type = ?, category = ?, amount = ?, description = ?, date = ? WHERE id = ? AND user_id = ?",
		req.Type, req.Category, req.Amount, req.Description, date, transactionID, userID,
	)
	if err != nil {
		utils.Logger.Errorf("error updating transaction: %v", err)
		utils.WriteError(w, "error updating transaction", http.StatusInternalServerError)
		return
	}

	var tx models.Transaction
	err = scanTransaction(db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ? AND user_id = ?", transactionID, userID), &tx)
	if err != nil {
		utils.Logger.Errorf("error fetching updated transaction: %v", err)
		utils.WriteError(w, "error updating transaction", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   tx,
	})
}

// FUNC TO DELETE A TRANSACTION
func DeleteTransactionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	transactionID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
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

	res, err := db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ? AND user_id = ?", transactionID, userID)
	if err != nil {
		utils.Logger.Errorf("error deleting transaction: %v", err)
		utils.WriteError(w, "error deleting transaction", http.StatusInternalServerError)
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		utils.Logger.Errorf("error reading rows affected: %v", err)
		utils.WriteError(w, "error deleting transaction", http.StatusInternalServerError)
		return
	}

	if affected == 0 {
		utils.WriteError(w, "transaction not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "transaction deleted successfully",
	})
}
