package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendPaymentConfirmation sends a payment confirmation email to a registrant.
// Returns nil without sending when SMTP is not configured, so environments
// without a mail account still verify payments normally.
func SendPaymentConfirmation(to, name, paymentID string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		LogDebug("SMTP not configured, skipping confirmation email to %s", to)
		return nil
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", "EventSphere Registration Confirmed")

	body := fmt.Sprintf(`
		<h2>Registration Confirmed!</h2>
		<p>Hi %s,</p>
		<p>Your payment has been received and your registration is confirmed.</p>
		<p>Payment reference: <strong>%s</strong></p>
		<p>Keep this reference handy at the venue. See you there!</p>
	`, name, paymentID)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
