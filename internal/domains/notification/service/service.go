package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"lodge/config"
	"lodge/infras/amqp"
	"lodge/infras/kafka"
	"lodge/infras/mail"
	"lodge/infras/otel"
	"lodge/internal/domains/notification/model"
	"lodge/shared/constant"

	"github.com/rs/zerolog/log"
)

// Notifier publishes reservation events and turns consumed events into email.
type Notifier interface {
	// Notify never fails the caller. Publish errors are logged.
	Notify(ctx context.Context, event model.Event)
	Deliver(ctx context.Context, event model.Event) error
	// Decode parses a payload read from the broker.
	Decode(payload []byte) (model.Event, error)
}

type serviceImpl struct {
	cfg    *config.Config
	otel   otel.Otel
	mailer mail.Mailer
	kafka  kafka.Client
	amqp   amqp.Client
}

func New(cfg *config.Config, otel otel.Otel, mailer mail.Mailer, kafka kafka.Client, amqp amqp.Client) Notifier {
	return &serviceImpl{
		cfg:    cfg,
		otel:   otel,
		mailer: mailer,
		kafka:  kafka,
		amqp:   amqp,
	}
}

func (s *serviceImpl) Notify(ctx context.Context, event model.Event) {
	var err error

	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Notify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	switch s.cfg.Events.Driver {
	case constant.EventDriverKafka:
		err = s.kafka.Publish(ctx, s.cfg.Events.Topic, event.Key(), event)
	case constant.EventDriverAMQP:
		err = s.amqp.Publish(ctx, s.cfg.Events.Topic, event)
	default:
		err = s.Deliver(ctx, event)
	}

	if err != nil {
		log.Error().Err(err).Str("event", string(event.Type)).Str("reference", event.Reference).Msg("failed to notify")
	}
}

func (s *serviceImpl) Deliver(ctx context.Context, event model.Event) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Deliver")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if event.Recipient == constant.Empty {
		log.Warn().Str("reference", event.Reference).Msg("event has no recipient, skipping mail")

		return nil
	}

	if err = s.mailer.Send(ctx, Render(event)); err != nil {
		return fmt.Errorf("failed to deliver %s: %w", event.Type, err)
	}

	return nil
}

func (s *serviceImpl) Decode(payload []byte) (model.Event, error) {
	var event model.Event

	if err := json.Unmarshal(payload, &event); err != nil {
		return event, fmt.Errorf("failed to decode event: %w", err)
	}

	return event, nil
}

// Render builds the plain text email of an event.
func Render(event model.Event) mail.Message {
	name := event.RecipientName
	if name == constant.Empty {
		name = "Guest"
	}

	var subject, headline string

	switch event.Type {
	case model.EventBookingCreated:
		subject = "Booking received: " + event.Resource
		headline = "We have received your room booking."
	case model.EventReservationCreated:
		subject = "Reservation " + event.Reference + " received"
		headline = "We have received your venue reservation."
	case model.EventBookingStatusChanged, model.EventReservationStatusChanged:
		subject = fmt.Sprintf("Reservation %s is now %s", event.Reference, event.Status)
		headline = "The status of your reservation has changed."
	default:
		subject = "Reservation update " + event.Reference
		headline = "There is an update on your reservation."
	}

	var body strings.Builder

	fmt.Fprintf(&body, "Hello %s,\n\n%s\n\n", name, headline)
	fmt.Fprintf(&body, "Reference: %s\n", event.Reference)
	fmt.Fprintf(&body, "Resource: %s\n", event.Resource)

	if event.EndDate != constant.Empty && event.EndDate != event.StartDate {
		fmt.Fprintf(&body, "Dates: %s to %s\n", event.StartDate, event.EndDate)
	} else {
		fmt.Fprintf(&body, "Date: %s\n", event.StartDate)
	}

	fmt.Fprintf(&body, "Total: %s\n", event.Total)
	fmt.Fprintf(&body, "Status: %s\n", event.Status)

	return mail.Message{
		To:      event.Recipient,
		Subject: subject,
		Body:    body.String(),
	}
}
