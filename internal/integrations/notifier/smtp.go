package notifier

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// SMTPSender отправка писем через SMTP сервер (STARTTLS обеспечивает net/smtp)
type SMTPSender struct {
	addr     string
	host     string
	auth     smtp.Auth
	from     mail.Address
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender создает отправителя писем
func NewSMTPSender(host string, port int, username, password, from, fromName string) (*SMTPSender, error) {
	parsed, err := mail.ParseAddress(from)
	if err != nil {
		return nil, fmt.Errorf("%w: from address %q: %v", ErrInvalidRecipient, from, err)
	}
	if fromName != "" {
		parsed.Name = fromName
	}

	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPSender{
		addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		host:     host,
		auth:     auth,
		from:     *parsed,
		sendMail: smtp.SendMail,
	}, nil
}

// SendEmail отправляет текстовое письмо
func (s *SMTPSender) SendEmail(ctx context.Context, to, subject, body string) error {
	recipient, err := mail.ParseAddress(to)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidRecipient, to, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(s.from, *recipient, subject, body, time.Now())
	if err := s.sendMail(s.addr, s.auth, s.from.Address, []string{recipient.Address}, msg); err != nil {
		return fmt.Errorf("%w: smtp: %v", ErrSendFailed, err)
	}
	return nil
}

func buildMessage(from, to mail.Address, subject, body string, now time.Time) []byte {
	var b strings.Builder
	b.WriteString("From: " + from.String() + "\r\n")
	b.WriteString("To: " + to.String() + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("Date: " + now.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
