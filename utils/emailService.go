package utils

import (
	"fmt"
	"log"
	"strings"

	"worldone/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a transactional email through SendGrid. With no API key
// configured the send is skipped, which keeps local development and tests
// quiet.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("SendGrid key not configured, skipping email to %s (%s)", toEmail, subject)
		return nil
	}

	from := mail.NewEmail(config.AppConfig.EmailName, config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}

func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1A2B4C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A2B4C; line-height: 1.6; }
			.button { display: inline-block; padding: 12px 24px; background-color: #1A2B4C; color: #FFFFFF; text-decoration: none; border-radius: 4px; }
			.footer { padding: 20px; text-align: center; color: #999999; font-size: 12px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">You are receiving this email because you have an account with us.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendVerificationEmail sends the account confirmation link. Fire and forget;
// signup must not block on the mail provider.
func SendVerificationEmail(toEmail, toName, verifyLink string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Thanks for signing up. Please confirm your email address to activate your account:</p>
		<p><a class="button" href="%s">Verify Email</a></p>
		<p>The link expires in 48 hours. If you did not create this account, you can ignore this email.</p>`,
		toName, verifyLink)

	go func() {
		if err := SendEmail(toEmail, toName, "Verify your email", emailTemplate("Welcome!", body)); err != nil {
			log.Printf("Error sending verification email: %v", err)
		}
	}()
}

// SendWelcomeEmail confirms a completed verification
func SendWelcomeEmail(toEmail, toName string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your email has been verified. You can now log in and start learning.</p>
		<p><a class="button" href="%s/login">Go to Login</a></p>`,
		toName, config.AppConfig.SiteURL)

	go func() {
		if err := SendEmail(toEmail, toName, "Your account is ready", emailTemplate("Email Verified", body)); err != nil {
			log.Printf("Error sending welcome email: %v", err)
		}
	}()
}

// SendReceiptEmail sends the purchase receipt after a successful checkout
func SendReceiptEmail(toEmail, toName, reference, amount string, courseTitles []string) {
	items := make([]string, len(courseTitles))
	for i, title := range courseTitles {
		items[i] = fmt.Sprintf("<li>%s</li>", title)
	}

	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Thank you for your purchase. Your payment has been processed.</p>
		<p>Reference: <strong>%s</strong><br>Total: <strong>%s</strong></p>
		<ul>%s</ul>
		<p><a class="button" href="%s/my-courses">Start Learning</a></p>`,
		toName, reference, amount, strings.Join(items, ""), config.AppConfig.SiteURL)

	go func() {
		if err := SendEmail(toEmail, toName, "Your purchase receipt", emailTemplate("Payment Received", body)); err != nil {
			log.Printf("Error sending receipt email: %v", err)
		}
	}()
}
