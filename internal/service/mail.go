package service

import (
	"context"
	"errors"
	"fmt"

	"bitwise74/social-api/config"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type MailMessage struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, m MailMessage) error
}

// NewMailer builds the provider named in cfg
func NewMailer(cfg config.Mail) (Mailer, error) {
	switch cfg.Provider {
	case "smtp":
		username := cfg.SMTPUsername
		if username == "" {
			username = cfg.From
		}

		return &smtpMailer{
			from:   cfg.From,
			dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, username, cfg.SMTPPassword),
		}, nil
	case "resend":
		return &resendMailer{
			from:   cfg.From,
			client: resend.NewClient(cfg.ResendAPIKey),
		}, nil
	case "console":
		return consoleMailer{}, nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}

type smtpMailer struct {
	from   string
	dialer *gomail.Dialer
}

func (s *smtpMailer) Send(_ context.Context, msg MailMessage) error {
	if msg.To == s.from {
		return errors.New("invalid email address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	return s.dialer.DialAndSend(m)
}

type resendMailer struct {
	from   string
	client *resend.Client
}

func (r *resendMailer) Send(ctx context.Context, msg MailMessage) error {
	_, err := r.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    r.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})

	return err
}

// consoleMailer logs mail instead of delivering it, for local development
type consoleMailer struct{}

func (consoleMailer) Send(_ context.Context, msg MailMessage) error {
	zap.L().Info("Outgoing mail",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.HTML),
	)

	return nil
}

func resetPasswordMail(to, password string) MailMessage {
	return MailMessage{
		To:      to,
		Subject: "Your password has been reset",
		HTML: fmt.Sprintf("<p>Your password has been reset.</p>"+
			"<p>Your new password is <b>%s</b></p>"+
			"<p>Log in with it and change it from your profile settings.</p>", password),
	}
}
