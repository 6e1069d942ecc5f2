package analytics

import (
	"context"
	"database/sql"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// MySQLStore implements Store over the transactions table.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) SumAmount(ctx context.Context, userID int, txType string, r Range) (decimal.Decimal, error) {
	query := "SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = ? AND transaction_type = ?"
	args := []interface{}{userID, txType}

	if !r.IsZero() {
		query += " AND date BETWEEN ? AND ?"
		args = append(args, r.Start, r.End)
	}

	var total decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (s *MySQLStore) SumCategoryAmount(ctx context.Context, userID int, category string, r Range) (decimal.Decimal, error) {
	query := "SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = ? AND transaction_type = ? AND category = ?"
	args := []interface{}{userID, models.TransactionTypeExpense, category}

	if !r.IsZero() {
		query += " AND date BETWEEN ? AND ?"
		args = append(args, r.Start, r.End)
	}

	var total decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (s *MySQLStore) ExpenseCategorySums(ctx context.Context, userID int, r Range) ([]CategorySum, error) {
	query := "SELECT category, COALESCE(SUM(amount), 0) AS total FROM transactions WHERE user_id = ? AND transaction_type = ?"
	args := []interface{}{userID, models.TransactionTypeExpense}

	if !r.IsZero() {
		query += " AND date BETWEEN ? AND ?"
		args = append(args, r.Start, r.End)
	}
	query += " GROUP BY category ORDER BY total DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := []CategorySum{}
	for rows.Next() {
		var cs CategorySum
		if err := rows.Scan(&cs.Category, &cs.Amount); err != nil {
			return nil, err
		}
		sums = append(sums, cs)
	}
	return sums, rows.Err()
}

func (s *MySQLStore) TransactionDateBounds(ctx context.Context, userID int) (time.Time, time.Time, bool, error) {
	var min, max sql.NullTime
	err := s.db.QueryRowContext(ctx,
		"SELECT MIN(date), MAX(date) FROM transactions WHERE user_id = ?", userID,
	).Scan(&min, &max)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if !min.Valid || !max.Valid {
		return time.Time{}, time.Time{}, false, nil
	}
	return min.Time, max.Time, true, nil
}
