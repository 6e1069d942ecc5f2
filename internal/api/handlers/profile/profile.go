package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/api/handlers"
	"fintrack/internal/models"
	"fintrack/internal/repositories/sqlconnect"
	"fintrack/pkg/utils"

	"github.com/shopspring/decimal"
)

// verifyCurrentPassword re-checks the session holder's password before a
// sensitive change. A mismatch is a validation failure, not an auth failure:
// the caller already holds a valid session.
func verifyCurrentPassword(ctx context.Context, db *sql.DB, userID int, currentPassword string) (int, string) {
	if currentPassword == "" {
		return http.StatusBadRequest, "current password is required"
	}

	var stored string
	if err := db.QueryRowContext(ctx, "SELECT password FROM users WHERE id = ?", userID).Scan(&stored); err != nil {
		if err == sql.ErrNoRows {
			return http.StatusNotFound, "user not found"
		}
		utils.Logger.Errorf("error fetching user password: %v", err)
		return http.StatusInternalServerError, "internal server error"
	}

	if err := utils.VerifyPassword(currentPassword, stored); err != nil {
		return http.StatusBadRequest, "invalid current password"
	}

	return 0, ""
}

func writeProfile(ctx context.Context, w http.ResponseWriter, db *sql.DB, userID int) {
	var user models.User
	err := db.QueryRowContext(ctx,
		"SELECT id, name, email, base_balance, currency, updated_at FROM users WHERE id = ?", userID,
	).Scan(&user.ID, &user.Name, &user.Email, &user.BaseBalance, &user.Currency, &user.UpdatedAt)
	if err != nil {
		utils.Logger.Errorf("error fetching profile: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   user,
	})
}

// FUNC TO GET THE PROFILE WITH LIFETIME TOTALS
func GetProfileHandler(w http.ResponseWriter, r *http.Request) {
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

	var user models.User
	err := db.QueryRowContext(ctx,
		"SELECT id, name, email, base_balance, currency, created_at, updated_at FROM users WHERE id = ?", userID,
	).Scan(&user.ID, &user.Name, &user.Email, &user.BaseBalance, &user.Currency, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "user not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching profile: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	svc := analytics.NewService(analytics.NewMySQLStore(db))
	totalIncome, totalExpenses, netBalance, err := svc.OverallBalance(ctx, userID, user.BaseBalance)
	if err != nil {
		utils.Logger.Errorf("error computing lifetime totals: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"id":             user.ID,
			"name":           user.Name,
			"email":          user.Email,
			"base_balance":   user.BaseBalance,
			"currency":       user.Currency,
			"total_income":   totalIncome,
			"total_expenses": totalExpenses,
			"net_balance":    netBalance,
			"created_at":     user.CreatedAt,
			"updated_at":     user.UpdatedAt,
		},
	})
}

// FUNC TO UPDATE NAME, BASE BALANCE AND CURRENCY
func UpdateBasicHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
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

	type basicRequest struct {
		Name        string           `json:"name"`
		BaseBalance *decimal.Decimal `json:"base_balance"`
		Currency    string           `json:"currency"`
	}

	var req basicRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	req.Name = strings.TrimSpace(req.Name)
	req.Currency = strings.TrimSpace(req.Currency)

	if req.Name == "" {
		utils.WriteError(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.BaseBalance == nil {
		utils.WriteError(w, "base balance is required", http.StatusBadRequest)
		return
	}
	if req.Currency == "" {
		utils.WriteError(w, "currency is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err := db.ExecContext(ctx,
		"UPDATE users SET name = ?, base_balance = ?, currency = ? WHERE id = ?",
		req.Name, req.BaseBalance, req.Currency, userID,
	)
	if err != nil {
		utils.Logger.Errorf("error updating profile: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeProfile(ctx, w, db, userID)
}

// FUNC TO UPDATE THE LOGIN EMAIL
func UpdateEmailHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
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

	type emailRequest struct {
		Email           string `json:"email"`
		CurrentPassword string `json:"current_password"`
	}

	var req emailRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		utils.WriteError(w, "email is required", http.StatusBadRequest)
		return
	}
	if !handlers.ValidEmail(req.Email) {
		utils.WriteError(w, "invalid email format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if code, msg := verifyCurrentPassword(ctx, db, userID, req.CurrentPassword); code != 0 {
		utils.WriteError(w, msg, code)
		return
	}

	var takenBy int
	err := db.QueryRowContext(ctx, "SELECT id FROM users WHERE email = ? AND id != ?", req.Email, userID).Scan(&takenBy)
	if err == nil {
		utils.WriteError(w, "email already exists", http.StatusBadRequest)
		return
	}
	if err != sql.ErrNoRows {
		utils.Logger.Errorf("error checking email uniqueness: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if _, err := db.ExecContext(ctx, "UPDATE users SET email = ? WHERE id = ?", req.Email, userID); err != nil {
		utils.Logger.Errorf("error updating email: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeProfile(ctx, w, db, userID)
}

// FUNC TO UPDATE THE PASSWORD
func UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
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

	var req models.UpdatePasswordRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.NewPassword == "" || req.ConfirmPassword == "" {
		utils.WriteError(w, "please enter all fields", http.StatusBadRequest)
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		utils.WriteError(w, "passwords do not match", http.StatusBadRequest)
		return
	}
	if len(req.NewPassword) < 6 {
		utils.WriteError(w, "password must be at least 6 characters long", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if code, msg := verifyCurrentPassword(ctx, db, userID, req.CurrentPassword); code != 0 {
		utils.WriteError(w, msg, code)
		return
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.Logger.Error("failed to hash password")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if _, err := db.ExecContext(ctx, "UPDATE users SET password = ? WHERE id = ?", hashedPassword, userID); err != nil {
		utils.Logger.Errorf("failed to update password: %v", err)
		utils.WriteError(w, "failed to update password", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "password updated successfully",
	})
}

// FUNC TO DELETE THE ACCOUNT AND ALL OWNED TRANSACTIONS
func DeleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
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

	var req struct {
		CurrentPassword string `json:"current_password"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if code, msg := verifyCurrentPassword(ctx, db, userID, req.CurrentPassword); code != 0 {
		utils.WriteError(w, msg, code)
		return
	}

	// The FK cascades, but the explicit delete keeps the behavior obvious and
	// makes both removals part of one transaction.
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		utils.Logger.Errorf("failed to start transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions WHERE user_id = ?", userID); err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to delete transactions: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", userID); err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to delete user: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to commit account deletion: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "Bearer",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		Expires:  time.Unix(0, 0),
		SameSite: http.SameSiteStrictMode,
	})

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "account deleted successfully",
	})
}
