package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lodge/config"
	infraScheduler "lodge/infras/scheduler"
	bookingService "lodge/internal/domains/booking/service"
	reservationService "lodge/internal/domains/reservation/service"

	"github.com/rs/zerolog/log"
)

const JobCompleteFinished = "complete-finished"

// Jobs owns the recurring maintenance work of the process.
type Jobs struct {
	cfg         *config.Config
	scheduler   infraScheduler.Scheduler
	booking     bookingService.Booking
	reservation reservationService.Reservation
}

func New(cfg *config.Config, scheduler infraScheduler.Scheduler, booking bookingService.Booking, reservation reservationService.Reservation) *Jobs {
	return &Jobs{
		cfg:         cfg,
		scheduler:   scheduler,
		booking:     booking,
		reservation: reservation,
	}
}

func (j *Jobs) Start() error {
	interval := time.Duration(j.cfg.Booking.CompletionIntervalMinutes) * time.Minute
	if interval <= 0 {
		log.Warn().Msg("Completion job disabled, interval is not positive")

		return nil
	}

	if err := j.scheduler.Every(JobCompleteFinished, interval, j.CompleteFinished); err != nil {
		return fmt.Errorf("failed to schedule completion job: %w", err)
	}

	j.scheduler.Start()

	return nil
}

// CompleteFinished closes finished bookings and reservations. A failure on one side does not skip the other.
func (j *Jobs) CompleteFinished(ctx context.Context) error {
	var errs []error

	if err := j.booking.CompleteFinished(ctx); err != nil {
		errs = append(errs, fmt.Errorf("bookings: %w", err))
	}

	if err := j.reservation.CompleteFinished(ctx); err != nil {
		errs = append(errs, fmt.Errorf("reservations: %w", err))
	}

	return errors.Join(errs...)
}

func (j *Jobs) Shutdown() error {
	return j.scheduler.Shutdown()
}
