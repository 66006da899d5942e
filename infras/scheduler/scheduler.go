package scheduler

//go:generate go run go.uber.org/mock/mockgen -source=./scheduler.go -destination=./mocks/scheduler_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"lodge/infras/otel"
	"lodge/shared/constant"
	"lodge/shared/timezone"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// Task is one run of a recurring job. The context is cancelled on Shutdown.
type Task func(ctx context.Context) error

type Scheduler interface {
	Every(name string, interval time.Duration, task Task) error
	Start()
	Shutdown() error
}

type schedulerImpl struct {
	inner  gocron.Scheduler
	otel   otel.Otel
	ctx    context.Context
	cancel context.CancelFunc
}

func New(otel otel.Otel) Scheduler {
	inner, err := gocron.NewScheduler(gocron.WithLocation(timezone.GetLocation()))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &schedulerImpl{
		inner:  inner,
		otel:   otel,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Every registers a singleton duration job. A run that overlaps the previous one is skipped.
func (s *schedulerImpl) Every(name string, interval time.Duration, task Task) error {
	job, err := s.inner.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run, name, task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", name, err)
	}

	log.Info().Str("job", name).Str("id", job.ID().String()).Dur("interval", interval).Msg("Scheduled job registered")

	return nil
}

func (s *schedulerImpl) run(name string, task Task) {
	ctx, scope := s.otel.NewScope(s.ctx, constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+"."+name)
	defer scope.End()

	started := time.Now()

	if err := task(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("job", name).Msg("scheduled job failed")

		return
	}

	log.Debug().Str("job", name).Dur("took", time.Since(started)).Msg("scheduled job finished")
}

func (s *schedulerImpl) Start() {
	s.inner.Start()

	log.Info().Int("jobs", len(s.inner.Jobs())).Msg("Scheduler started")
}

func (s *schedulerImpl) Shutdown() error {
	s.cancel()

	if err := s.inner.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown scheduler: %w", err)
	}

	log.Info().Msg("Scheduler stopped")

	return nil
}
