package mail

//go:generate go run go.uber.org/mock/mockgen -source=./mail.go -destination=./mocks/mail_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"lodge/config"
	"lodge/infras/otel"
	"lodge/shared/constant"

	goMail "github.com/wneessen/go-mail"
	"github.com/rs/zerolog/log"
)

var ErrNoRecipient = errors.New("mail: message has no recipient")

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, message Message) error
}

type mailerImpl struct {
	cfg  *config.Config
	otel otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Mailer {
	if !cfg.Mail.Enable {
		log.Warn().Msg("Mail delivery disabled, notifications will only be logged")
	}

	return &mailerImpl{
		cfg:  cfg,
		otel: otel,
	}
}

// Send dials the SMTP server for each message. Notification volume is a few mails per reservation.
func (m *mailerImpl) Send(ctx context.Context, message Message) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailScopeName, constant.OtelMailScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if message.To == constant.Empty {
		return ErrNoRecipient
	}

	if !m.cfg.Mail.Enable {
		log.Info().Str("to", message.To).Str("subject", message.Subject).Msg("mail disabled, skipping delivery")

		return nil
	}

	msg := goMail.NewMsg()
	if err = msg.From(m.cfg.Mail.From); err != nil {
		return fmt.Errorf("failed to set mail sender: %w", err)
	}

	if err = msg.To(message.To); err != nil {
		return fmt.Errorf("failed to set mail recipient: %w", err)
	}

	msg.Subject(message.Subject)
	msg.SetBodyString(goMail.TypeTextPlain, message.Body)

	client, err := goMail.NewClient(
		m.cfg.Mail.Host,
		goMail.WithPort(m.cfg.Mail.Port),
		goMail.WithSMTPAuth(goMail.SMTPAuthPlain),
		goMail.WithUsername(m.cfg.Mail.Username),
		goMail.WithPassword(m.cfg.Mail.Password),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create smtp client")

		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error().Err(err).Str("to", message.To).Msg("failed to send mail")

		return fmt.Errorf("failed to send mail: %w", err)
	}

	log.Info().Str("to", message.To).Str("subject", message.Subject).Msg("mail sent")

	return nil
}
