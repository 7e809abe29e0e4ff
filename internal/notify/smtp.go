package notify

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPSender delivers mail over a plain-auth SMTP relay. It implements
// common.EmailSender.
type SMTPSender struct {
	Addr     string // host:port
	Username string
	Password string
	From     string
}

// Send formats and submits one HTML message.
func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	host := s.Addr
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, host)
	}
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	if err := smtp.SendMail(s.Addr, auth, s.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
