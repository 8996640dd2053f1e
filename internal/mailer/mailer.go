// Package mailer delivers invitation mail. Enqueueing and delivery are
// split so the request path never blocks on SMTP; delivery runs on an
// asynq worker against Redis.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPSender sends a single HTML mail over plain-auth SMTP.
type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

var invitationTmpl = template.Must(template.New("invitation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1a1a1a;">
  <h2>You're invited to {{.BoxName}}</h2>
  <p>You've been invited to join <strong>{{.BoxName}}</strong> as a {{.Role}}.</p>
  <p><a href="{{.InviteURL}}" style="display:inline-block;padding:12px 24px;background:#e63946;color:#fff;text-decoration:none;border-radius:6px;">Accept invitation</a></p>
  <p style="color:#666;font-size:13px;">This link is valid until {{.ExpiresAt}} and can be used once.</p>
</body>
</html>`))

type invitationMailData struct {
	BoxName   string
	Role      string
	InviteURL string
	ExpiresAt string
}

// RenderInvitation produces the subject and HTML body of an invite mail.
func RenderInvitation(boxName, role, inviteURL string, expiresAt time.Time) (subject, body string, err error) {
	var buf bytes.Buffer
	err = invitationTmpl.Execute(&buf, invitationMailData{
		BoxName:   boxName,
		Role:      role,
		InviteURL: inviteURL,
		ExpiresAt: expiresAt.Format("January 2, 2006"),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to render invitation mail: %w", err)
	}
	return fmt.Sprintf("You're invited to %s", boxName), buf.String(), nil
}
