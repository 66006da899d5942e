package event

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"lodge/config"
	"lodge/infras/amqp"
	"lodge/infras/kafka"
	notificationService "lodge/internal/domains/notification/service"
	"lodge/shared/constant"

	"github.com/rs/zerolog/log"
)

var ErrUnknownDriver = errors.New("event: unknown driver")

// Consumer reads published domain events and hands them to the notifier for delivery.
type Consumer struct {
	cfg      *config.Config
	notifier notificationService.Notifier
	kafka    kafka.Client
	amqp     amqp.Client

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfg *config.Config, notifier notificationService.Notifier, kafka kafka.Client, amqp amqp.Client) *Consumer {
	return &Consumer{
		cfg:      cfg,
		notifier: notifier,
		kafka:    kafka,
		amqp:     amqp,
	}
}

// Handle decodes and delivers one payload. Decode failures are dropped so a poison message cannot block the stream.
func (c *Consumer) Handle(ctx context.Context, payload []byte) error {
	event, err := c.notifier.Decode(payload)
	if err != nil {
		log.Error().Err(err).Msg("dropping undecodable event")

		return nil
	}

	if err = c.notifier.Deliver(ctx, event); err != nil {
		return fmt.Errorf("failed to deliver event %s: %w", event.ID, err)
	}

	return nil
}

// Start launches the consumer of the configured driver in the background. It is a no-op for the none driver.
func (c *Consumer) Start(ctx context.Context) error {
	var run func(ctx context.Context) error

	switch c.cfg.Events.Driver {
	case constant.EventDriverKafka:
		run = func(ctx context.Context) error {
			return c.kafka.Consume(ctx, c.cfg.Events.ConsumeGroup, c.cfg.Events.Topic, func(ctx context.Context, _ string, value []byte) error {
				return c.Handle(ctx, value)
			})
		}
	case constant.EventDriverAMQP:
		run = func(ctx context.Context) error {
			return c.amqp.Consume(ctx, c.cfg.Events.Topic, c.Handle)
		}
	case constant.EventDriverNone, constant.Empty:
		log.Info().Msg("Event consumer disabled, notifications are delivered inline")

		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownDriver, c.cfg.Events.Driver)
	}

	ctx, c.cancel = context.WithCancel(ctx)

	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if err := run(ctx); err != nil {
			log.Error().Err(err).Str("driver", c.cfg.Events.Driver).Msg("event consumer stopped with error")
		}
	}()

	log.Info().Str("driver", c.cfg.Events.Driver).Str("topic", c.cfg.Events.Topic).Msg("Event consumer started")

	return nil
}

func (c *Consumer) Shutdown() error {
	if c.cancel != nil {
		c.cancel()
	}

	c.wg.Wait()

	return errors.Join(c.kafka.Close(), c.amqp.Close())
}
