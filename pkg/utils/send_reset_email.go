package utils

import (
	"fmt"
	"time"
)

// SendPasswordResetEmail sends a password reset email with a secure link.
func SendPasswordResetEmail(to, name, resetURL string, expiresAt time.Time) error {
	subject := "Reset Your Fintrack Password"

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8" />
		<title>Password Reset</title>
		<style>
			body { font-family: 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f4f8f5; margin: 0; padding: 0; }
			.container { max-width: 520px; margin: 40px auto; background: #ffffff; border-radius: 12px; overflow: hidden; border-top: 5px solid #0a4d3c; }
			.header { background-color: #0a4d3c; color: #ffffff; text-align: center; padding: 24px 20px; }
			.header h1 { margin: 0; font-size: 22px; font-weight: 600; }
			.content { padding: 30px 35px; color: #333333; }
			.message { font-size: 15px; line-height: 1.6; color: #555555; }
			.cta { margin: 28px 0; text-align: center; }
			.cta a { background-color: #0a4d3c; color: #ffffff; text-decoration: none; padding: 12px 30px; border-radius: 8px; font-weight: 600; }
			.footer { text-align: center; padding: 20px; font-size: 13px; color: #888888; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>Password Reset</h1></div>
			<div class="content">
				<p class="message">Hi %s,</p>
				<p class="message">
					We received a request to reset your Fintrack password. Click the button
					below to choose a new one. The link expires at %s.
				</p>
				<div class="cta"><a href="%s">Reset Password</a></div>
				<p class="message">If you did not request this, you can safely ignore this email.</p>
			</div>
			<div class="footer">Fintrack — personal finance tracking</div>
		</div>
	</body>
	</html>`, name, expiresAt.Format("15:04 MST, Jan 2 2006"), resetURL)

	return SendEmail(to, subject, body)
}
