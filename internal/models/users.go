package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID                   int             `json:"id,omitempty" db:"id,omitempty"`
	Name                 string          `json:"name,omitempty" db:"name,omitempty"`
	Email                string          `json:"email,omitempty" db:"email,omitempty"`
	Password             string          `json:"password,omitempty" db:"password,omitempty"`
	BaseBalance          decimal.Decimal `json:"base_balance" db:"base_balance"`
	Currency             string          `json:"currency,omitempty" db:"currency,omitempty"`
	PasswordResetToken   string          `json:"-" db:"password_reset_token,omitempty"`
	PasswordTokenExpires string          `json:"-" db:"password_token_expires,omitempty"`
	CreatedAt            time.Time       `json:"created_at,omitempty" db:"created_at,omitempty"`
	UpdatedAt            time.Time       `json:"updated_at,omitempty" db:"updated_at,omitempty"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}
