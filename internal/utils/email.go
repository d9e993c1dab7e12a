package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/wneessen/go-mail"
)

// Mailer sends the signup verification email. Handlers depend on the
// interface so tests don't need an SMTP server.
type Mailer interface {
	SendVerificationEmail(to, code string) error
}

// SMTPMailer sends through the configured SMTP relay.
type SMTPMailer struct{}

func (SMTPMailer) SendVerificationEmail(to, code string) error {
	msg := mail.NewMsg()

	sender := os.Getenv("SMTP_SENDER")
	if sender == "" {
		sender = "noreply@flashfit.app"
	}
	if err := msg.From(sender); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Verify your FlashFit account")
	msg.SetBodyString(mail.TypeTextHTML, verificationEmailHTML(code))

	port := 587
	if v, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && v > 0 {
		port = v
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending verification email to", to)
	return client.DialAndSend(msg)
}

func verificationEmailHTML(code string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Email Verification</title>
</head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2>Verify Your Email Address</h2>
	<p>Thank you for signing up with FlashFit! To complete your registration, please enter the following verification code in the app:</p>

	<div style="background: #f8f9fa; border-radius: 8px; padding: 15px; text-align: center; margin: 20px 0; font-size: 24px; font-weight: bold; letter-spacing: 2px;">
		%s
	</div>

	<p>This code will expire in 3 minutes. If you didn't request this code, you can safely ignore this email.</p>

	<div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eaeaea; font-size: 12px; color: #7f8c8d; text-align: center;">
		<p>&copy; %d FlashFit. All rights reserved.</p>
	</div>
</body>
</html>`, code, time.Now().Year())
}
