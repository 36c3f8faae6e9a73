package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/greencycle/ewaste-backend/pkg/config"
)

// Sender delivers transactional notifications to users.
type Sender interface {
	SendApprovalEmail(ctx context.Context, to, name string, requestID int64, deviceType string) error
}

// Mailer sends mail over SMTP with plain auth.
type Mailer struct {
	cfg  config.SMTPConfig
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer builds an SMTP mailer from config. Returns an error when SMTP is not configured.
func NewMailer(cfg config.SMTPConfig) (*Mailer, error) {
	if !cfg.Enabled() {
		return nil, errors.New("smtp host is not configured")
	}
	return &Mailer{cfg: cfg, send: smtp.SendMail}, nil
}

// SendApprovalEmail notifies the requester that their pickup request was approved.
func (m *Mailer) SendApprovalEmail(ctx context.Context, to, name string, requestID int64, deviceType string) error {
	if strings.TrimSpace(to) == "" {
		return errors.New("recipient address is required")
	}
	if deviceType == "" {
		deviceType = "your device"
	}

	subject := "Your e-waste pickup request has been approved"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\n"+
			"Good news! Your e-waste pickup request #%d for %s has been approved.\r\n"+
			"Our team will reach out shortly to schedule the pickup.\r\n\r\n"+
			"Thank you for recycling responsibly.\r\n"+
			"The GreenCycle Team\r\n",
		name, requestID, deviceType,
	)

	return m.deliver(ctx, to, subject, body)
}

func (m *Mailer) deliver(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var headers strings.Builder
	headers.WriteString("From: " + m.cfg.From + "\r\n")
	headers.WriteString("To: " + to + "\r\n")
	headers.WriteString("Subject: " + subject + "\r\n")
	headers.WriteString("MIME-Version: 1.0\r\n")
	headers.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	headers.WriteString("\r\n")
	headers.WriteString(body)

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := m.send(addr, auth, m.cfg.From, []string{to}, []byte(headers.String())); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}
