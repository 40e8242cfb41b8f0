// internal/app/system/mailer/mailer.go
package mailer

import (
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Email is a single outbound message. Both bodies are sent as a
// multipart/alternative payload; clients pick whichever they render.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer sends transactional email over SMTP. Delivery is best effort:
// the application never blocks a user-facing operation on it.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	Log      *zap.Logger
}

// New constructs a Mailer from SMTP settings.
func New(host string, port int, username, password, from, fromName string, logger *zap.Logger) *Mailer {
	return &Mailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		FromName: fromName,
		Log:      logger,
	}
}

// Send delivers one email synchronously.
func (m *Mailer) Send(e Email) error {
	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	msg := m.buildMessage(e)
	if err := smtp.SendMail(addr, auth, m.From, []string{e.To}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", e.To, err)
	}
	return nil
}

// SendAsync delivers the email on a background goroutine. Failures are
// logged and dropped; callers must not depend on delivery.
func (m *Mailer) SendAsync(e Email) {
	go func() {
		if err := m.Send(e); err != nil {
			m.Log.Warn("transactional email failed",
				zap.String("to", e.To),
				zap.String("subject", e.Subject),
				zap.Error(err),
			)
		}
	}()
}

const boundary = "upcyclehub-alt-boundary"

func (m *Mailer) buildMessage(e Email) []byte {
	var b strings.Builder

	from := m.From
	if m.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", m.FromName), m.From)
	}

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", e.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", e.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(e.TextBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(e.HTMLBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
