package cron

import (
	"context"
	"database/sql"
	"time"

	"fintrack/pkg/utils"

	"github.com/robfig/cron/v3"
)

func StartCronJob(db *sql.DB) *cron.Cron {
	c := cron.New()

	// Runs daily at midnight — clear expired password reset tokens
	_, err := c.AddFunc("0 0 * * *", func() {
		if err := PurgeExpiredResetTokens(db); err != nil {
			utils.Logger.Errorf("Cron job failed to purge expired reset tokens: %v", err)
		}
	})
	if err != nil {
		utils.Logger.Errorf("Failed to schedule reset token purge job: %v", err)
	}

	c.Start()
	utils.Logger.Info("Cron jobs started (reset token purge daily at midnight)")
	return c
}

// PurgeExpiredResetTokens clears reset tokens whose expiry has passed so
// stale hashes never linger in the users table.
func PurgeExpiredResetTokens(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := db.ExecContext(ctx, `
		UPDATE users
		SET password_reset_token = NULL, password_token_expires = NULL
		WHERE password_token_expires IS NOT NULL AND password_token_expires < ?
	`, time.Now().UTC())
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected > 0 {
		utils.Logger.Infof("Purged %d expired password reset tokens", rowsAffected)
	}
	return nil
}
