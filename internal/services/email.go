package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"orumgs-api/internal/config"
)

// Mailer is the outbound mail transport. The SMTP implementation is injected
// at startup; tests substitute a fake.
type Mailer interface {
	SendPasswordResetEmail(to, resetLink string) error
}

type EmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

func (es *EmailService) SendPasswordResetEmail(to, resetLink string) error {
	subject := "Password Reset Request"
	body := fmt.Sprintf(`
	<html>
	<body>
		<h2>Password Reset Request</h2>
		<p>You requested to reset your password. The link below is valid for 1 hour:</p>
		<p><a href="%s">%s</a></p>
		<p>If you didn't request this, please ignore this email.</p>
	</body>
	</html>
	`, resetLink, resetLink)

	auth := smtp.PlainAuth("", es.cfg.SMTPUsername, es.cfg.SMTPPassword, es.cfg.SMTPHost)

	headers := make(map[string]string)
	headers["From"] = es.cfg.EmailFrom
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=\"utf-8\""

	var message strings.Builder
	for k, v := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	message.WriteString("\r\n" + body)

	return smtp.SendMail(
		es.cfg.SMTPHost+":"+es.cfg.SMTPPort,
		auth,
		es.cfg.EmailFrom,
		[]string{to},
		[]byte(message.String()),
	)
}
