package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"wheelshare/internal/pkg/clock"
	"wheelshare/internal/pkg/config"
	"wheelshare/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const sweepBatchSize = 100

// Notifier delivers a claimed notification job to its channel.
type Notifier interface {
	Send(ctx context.Context, job *shared.NotificationJob) error
}

// Sweeper drives the time-based transitions that no user action triggers:
// completing ended rentals, releasing unpaid holds and dispatching queued
// notifications.
type Sweeper struct {
	uow      shared.UnitOfWork
	notifier Notifier
	clock    clock.Clock
	cfg      config.SweepConfig
	cron     *cron.Cron
}

func NewSweeper(uow shared.UnitOfWork, notifier Notifier, clk clock.Clock, cfg config.SweepConfig) *Sweeper {
	return &Sweeper{
		uow:      uow,
		notifier: notifier,
		clock:    clk,
		cfg:      cfg,
		cron:     cron.New(),
	}
}

func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	slog.Info("booking sweeper started", "schedule", s.cfg.Schedule)
	return nil
}

func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("booking sweeper stopped")
}

// RunOnce executes a single sweep pass. Exposed so the scheduler and tests
// share the same entry point.
func (s *Sweeper) RunOnce(ctx context.Context) {
	s.completeEnded(ctx)
	s.expireUnpaidHolds(ctx)
	s.dispatchNotifications(ctx)
}

// completeEnded closes out CONFIRMED bookings whose rental period has passed.
func (s *Sweeper) completeEnded(ctx context.Context) {
	now := s.clock.Now()
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ids, err := tx.Bookings().FindEndedConfirmedIDs(ctx, now, sweepBatchSize)
		if err != nil {
			return err
		}
		for _, id := range ids {
			b, err := tx.Bookings().FindByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if err := b.Complete(now); err != nil {
				// Raced with a user transition since the id query; skip.
				slog.Warn("skipping completion sweep for booking", "booking_id", id, "error", err)
				continue
			}
			if err := tx.Bookings().Save(ctx, b); err != nil {
				return err
			}
			if err := tx.Cars().SetAvailableNow(ctx, b.CarID(), true); err != nil {
				return err
			}
			if err := s.enqueue(ctx, tx, "booking_completed", id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		slog.Error("completion sweep failed", "error", err)
	}
}

// expireUnpaidHolds releases PAYMENT_PENDING bookings whose payment hold
// elapsed without a verified payment.
func (s *Sweeper) expireUnpaidHolds(ctx context.Context) {
	now := s.clock.Now()
	cutoff := now.Add(-s.cfg.PaymentHold)
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ids, err := tx.Bookings().FindExpiredHoldIDs(ctx, cutoff, sweepBatchSize)
		if err != nil {
			return err
		}
		for _, id := range ids {
			b, err := tx.Bookings().FindByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if err := b.ExpireUnpaid(now, s.cfg.PaymentHold); err != nil {
				slog.Warn("skipping expiry sweep for booking", "booking_id", id, "error", err)
				continue
			}
			if err := tx.Bookings().Save(ctx, b); err != nil {
				return err
			}
			if b.Period().Contains(now) {
				if err := tx.Cars().SetAvailableNow(ctx, b.CarID(), true); err != nil {
					return err
				}
			}
			if err := s.enqueue(ctx, tx, "booking_expired", id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		slog.Error("expiry sweep failed", "error", err)
	}
}

// dispatchNotifications claims due jobs, then delivers them outside the
// claiming transaction so a slow or failing send never holds locks or rolls
// back the claims. Each outcome commits on its own.
func (s *Sweeper) dispatchNotifications(ctx context.Context) {
	now := s.clock.Now()
	var notificationJobs []*shared.NotificationJob
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		notificationJobs, err = tx.Notifications().ClaimPendingJobs(ctx, now, sweepBatchSize)
		return err
	})
	if err != nil {
		slog.Error("notification claim failed", "error", err)
		return
	}

	for _, job := range notificationJobs {
		sendErr := s.notifier.Send(ctx, job)
		if sendErr != nil {
			slog.Warn("notification delivery failed", "job_id", job.ID, "topic", job.Topic, "error", sendErr)
		}
		err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			if sendErr != nil {
				return tx.Notifications().MarkJobFailed(ctx, job.ID, sendErr.Error())
			}
			return tx.Notifications().MarkJobDone(ctx, job.ID)
		})
		if err != nil {
			slog.Error("notification outcome not recorded", "job_id", job.ID, "error", err)
		}
	}
}

func (s *Sweeper) enqueue(ctx context.Context, tx shared.Tx, topic string, bookingID uuid.UUID) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       topic,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, "email", topic, payload, s.clock.Now())
}

// LogNotifier writes notifications to the structured log. Stands in for a
// real delivery channel in environments without one configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) Send(_ context.Context, job *shared.NotificationJob) error {
	slog.Info("notification dispatched",
		"job_id", job.ID, "kind", job.Kind, "topic", job.Topic, "payload", string(job.Payload))
	return nil
}
