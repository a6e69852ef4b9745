package services

import (
	"errors"
	"fmt"
	"log"
	"net/smtp"

	"github.com/NguemsPrince/experience-tech-plateforme-sub002/config"
)

// ErrMailerNotConfigured is returned by NewMailer in production when the SMTP
// credentials are missing. Outside production the mailer degrades to a
// console implementation instead.
var ErrMailerNotConfigured = errors.New("mail transport is not configured")

// Email is a single outbound message with an HTML body and a plain text
// fallback.
type Email struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer delivers emails. It is constructed once at startup and injected into
// the notification service; there is no lazily initialized shared transport.
type Mailer interface {
	Send(email Email) error
}

// NewMailer builds the mail transport from configuration. Missing credentials
// are a hard error in production and a logged console fallback everywhere
// else, so a developer machine never needs real SMTP access.
func NewMailer(cfg *config.Config) (Mailer, error) {
	if cfg.SMTPHost == "" || cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
		if cfg.IsProduction() {
			return nil, ErrMailerNotConfigured
		}
		log.Println("SMTP credentials not set, emails will be logged to the console")
		return &ConsoleMailer{}, nil
	}

	return &SMTPMailer{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		fromName:  cfg.SMTPFromName,
	}, nil
}

// SMTPMailer sends multipart HTML+text emails through an SMTP relay.
type SMTPMailer struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	fromName  string
}

// Send delivers the email as a multipart/alternative message.
func (m *SMTPMailer) Send(email Email) error {
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	from := m.fromEmail
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	boundary := "----=_Part_experience_tech"

	message := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", email.To) +
		fmt.Sprintf("Subject: %s\r\n", email.Subject) +
		"MIME-Version: 1.0\r\n" +
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary) +
		"\r\n" +
		fmt.Sprintf("--%s\r\n", boundary) +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		email.TextBody + "\r\n"

	if email.HTMLBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary) +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			email.HTMLBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.fromEmail, []string{email.To}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// ConsoleMailer logs emails instead of sending them. Used in development and
// test environments where SMTP is not configured.
type ConsoleMailer struct{}

// Send logs the message and reports success.
func (m *ConsoleMailer) Send(email Email) error {
	log.Printf("[EMAIL] to=%s subject=%q (console mailer, not sent)", email.To, email.Subject)
	return nil
}
