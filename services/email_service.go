package services

import (
	"fmt"
	"strconv"

	"art-store/config"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService() (*EmailService, error) {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		port = 587
	}

	return &EmailService{
		dialer: gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPFrom,
	}, nil
}

func (s *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Password Reset - Art Store")

	body := fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Password Reset Request</h2>
	<p>You have requested to reset your password. Use the following token to proceed:</p>
	<p style="font-size: 18px; font-weight: bold; letter-spacing: 1px;">%s</p>
	<p><strong>This token will expire in 1 hour.</strong></p>
	<p>If you did not request a password reset, please ignore this email.</p>
	<p>Art Store Team</p>
</body>
</html>
	`, token)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *EmailService) SendOrderConfirmationEmail(toEmail, orderID string, total float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Order Confirmation %s - Art Store", orderID))

	body := fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Thank you for your order!</h2>
	<p><strong>Order ID:</strong> %s</p>
	<p><strong>Total Amount:</strong> $%.2f</p>
	<p>Your order has been received and is being processed. We'll notify you when it ships.</p>
	<p>Art Store Team</p>
</body>
</html>
	`, orderID, total)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
