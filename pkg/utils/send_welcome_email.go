package utils

import "fmt"

func SendWelcomeEmail(to, name string) error {
	subject := fmt.Sprintf("Welcome to Fintrack, %s!", name)

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8" />
		<title>Welcome to Fintrack</title>
		<style>
			body { font-family: 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f4f8f5; margin: 0; padding: 0; }
			.container { max-width: 520px; margin: 40px auto; background: #ffffff; border-radius: 12px; overflow: hidden; border-top: 5px solid #0a4d3c; }
			.header { background-color: #0a4d3c; color: #ffffff; text-align: center; padding: 24px 20px; }
			.header h1 { margin: 0; font-size: 22px; font-weight: 600; }
			.content { padding: 30px 35px; color: #333333; }
			.message { font-size: 15px; line-height: 1.6; color: #555555; }
			.footer { text-align: center; padding: 20px; font-size: 13px; color: #888888; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>Welcome to Fintrack</h1></div>
			<div class="content">
				<p class="message">Hi %s,</p>
				<p class="message">
					Your account is ready. Start by recording your first income or expense,
					then head to the dashboard to see your monthly breakdown, category
					spending and savings rate.
				</p>
				<p class="message">Happy tracking!</p>
			</div>
			<div class="footer">You received this email because you signed up for Fintrack.</div>
		</div>
	</body>
	</html>`, name)

	return SendEmail(to, subject, body)
}
