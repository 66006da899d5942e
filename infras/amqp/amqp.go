package amqp

//go:generate go run go.uber.org/mock/mockgen -source=./amqp.go -destination=./mocks/amqp_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"lodge/config"
	"lodge/infras/otel"
	"lodge/shared/constant"
	"sync"

	amqpGo "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

var ErrNotConfigured = errors.New("amqp: url is not configured")

// Handler processes one delivery. A nil return acks it, an error requeues it once.
type Handler func(ctx context.Context, body []byte) error

type Client interface {
	Publish(ctx context.Context, queue string, value any) error
	Consume(ctx context.Context, queue string, handler Handler) error
	Close() error
}

type amqpClientImpl struct {
	cfg  *config.Config
	otel otel.Otel

	mu      sync.Mutex
	conn    *amqpGo.Connection
	channel *amqpGo.Channel
}

// New does not dial. The connection is opened on first use so a process configured for another driver never touches the broker.
func New(cfg *config.Config, otel otel.Otel) Client {
	return &amqpClientImpl{
		cfg:  cfg,
		otel: otel,
	}
}

func (a *amqpClientImpl) ensureChannel(queue string) (*amqpGo.Channel, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cfg.AMQP.URL == constant.Empty {
		return nil, ErrNotConfigured
	}

	if a.conn == nil || a.conn.IsClosed() {
		conn, err := amqpGo.Dial(a.cfg.AMQP.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to dial amqp: %w", err)
		}

		a.conn = conn
		a.channel = nil

		log.Info().Msg("AMQP connection established")
	}

	if a.channel == nil || a.channel.IsClosed() {
		ch, err := a.conn.Channel()
		if err != nil {
			return nil, fmt.Errorf("failed to open amqp channel: %w", err)
		}

		a.channel = ch
	}

	if _, err := a.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	return a.channel, nil
}

func (a *amqpClientImpl) Publish(ctx context.Context, queue string, value any) (err error) {
	ctx, scope := a.otel.NewScope(ctx, constant.OtelAMQPScopeName, constant.OtelAMQPScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal amqp message: %w", err)
	}

	ch, err := a.ensureChannel(queue)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to prepare amqp channel")

		return err
	}

	err = ch.PublishWithContext(ctx, constant.Empty, queue, false, false, amqpGo.Publishing{
		ContentType:  constant.ContentTypeJSON,
		DeliveryMode: amqpGo.Persistent,
		Body:         body,
	})
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to publish amqp message")

		return fmt.Errorf("failed to publish amqp message: %w", err)
	}

	return nil
}

// Consume blocks until ctx is done or the broker closes the delivery channel.
func (a *amqpClientImpl) Consume(ctx context.Context, queue string, handler Handler) error {
	ch, err := a.ensureChannel(queue)
	if err != nil {
		return err
	}

	deliveries, err := ch.ConsumeWithContext(ctx, queue, a.cfg.Events.ConsumeGroup, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume queue %s: %w", queue, err)
	}

	log.Info().Str("queue", queue).Msg("AMQP consumer started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("queue", queue).Msg("AMQP consumer stopped")

			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("amqp delivery channel closed for queue %s", queue)
			}

			if err := handler(ctx, d.Body); err != nil {
				log.Error().Err(err).Str("queue", queue).Msg("failed to handle amqp message")

				_ = d.Nack(false, !d.Redelivered)

				continue
			}

			_ = d.Ack(false)
		}
	}
}

func (a *amqpClientImpl) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conn == nil {
		return nil
	}

	err := a.conn.Close()
	a.conn = nil
	a.channel = nil

	if err != nil && !errors.Is(err, amqpGo.ErrClosed) {
		return fmt.Errorf("failed to close amqp connection: %w", err)
	}

	return nil
}
