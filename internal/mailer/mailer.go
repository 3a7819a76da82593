package mailer

import (
	"fmt"
	"log/slog"
	"sync"

	"gopkg.in/gomail.v2"

	"github.com/UCEM-2025/campus-event-service/internal/config"
)

// Mailer sends a single plain-text message. Delivery failures are
// reported but callers treat them as non-fatal side effects.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

func NewSMTPMailer(cfg config.SMTPConfig, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	m.logger.Debug("mail sent", "to", to, "subject", subject)
	return nil
}

// LogMailer is the fallback used when no SMTP host is configured: it
// logs the message instead of delivering it.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(to, subject, body string) error {
	m.logger.Info("mail delivery skipped (no SMTP configured)",
		"to", to, "subject", subject)
	return nil
}

// SentMessage is a captured message, used by RecordingMailer in tests.
type SentMessage struct {
	To      string
	Subject string
	Body    string
}

// RecordingMailer captures messages in memory. FailFor lets tests make
// delivery to specific recipients fail.
type RecordingMailer struct {
	mu       sync.Mutex
	messages []SentMessage
	FailFor  map[string]error
}

func NewRecordingMailer() *RecordingMailer {
	return &RecordingMailer{FailFor: make(map[string]error)}
}

func (m *RecordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FailFor[to]; ok {
		return err
	}
	m.messages = append(m.messages, SentMessage{To: to, Subject: subject, Body: body})
	return nil
}

func (m *RecordingMailer) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.messages))
	copy(out, m.messages)
	return out
}
