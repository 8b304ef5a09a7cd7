package mailer

import (
	"context"
	"fmt"

	"github.com/Eursukkul/nexo-service/pkg/logger"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To      []string
	Subject string
	Body    string
	HTML    string
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	cfg    Config
	dialer *gomail.Dialer
	log    *logger.Logger
}

func NewSMTPMailer(cfg Config, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		log:    log,
	}
}

// Configured is false when SMTP credentials are absent; Send then only logs.
func (m *SMTPMailer) Configured() bool {
	return m.cfg.Username != "" && m.cfg.Password != ""
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("mail %q has no recipients", msg.Subject)
	}
	if !m.Configured() {
		m.log.Info("smtp not configured, skipping mail", "to", msg.To, "subject", msg.Subject)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.cfg.From)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)
	if msg.HTML != "" {
		gm.AddAlternative("text/html", msg.HTML)
	}

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
