// Package reminder scans upcoming reservations and hands them to the
// notification workers shortly before they start.
package reminder

import (
	"context"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"room-reservation-backend/config"
	"room-reservation-backend/internal/model"
	"room-reservation-backend/internal/notification"
	"room-reservation-backend/internal/schedule"
	"room-reservation-backend/internal/store"
)

const dateLayout = "2006-01-02"

// Service periodically finds reservations starting within the lead time.
type Service struct {
	cfg        *config.Config
	store      store.Store
	workerPool *notification.WorkerPool
	log        *zap.Logger
	now        func() time.Time
}

// NewService creates the reminder service and its notification worker pool.
func NewService(cfg *config.Config, s store.Store, webpushOptions *webpush.Options, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		cfg:        cfg,
		store:      s,
		workerPool: notification.NewWorkerPool(cfg.WorkerPool.Size, s.DB(), webpushOptions, log),
		log:        log.Named("reminder"),
		now:        time.Now,
	}
}

// Run starts the worker pool and scans on every interval until ctx is done.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Reminder.Enabled {
		s.log.Info("reminders are disabled, not starting")
		return
	}
	s.log.Info("starting reminder service",
		zap.Duration("interval", s.cfg.Reminder.Interval), zap.Int("lead_minutes", s.cfg.Reminder.LeadMinutes))

	s.workerPool.Start(ctx)

	s.scan(ctx)

	timer := time.NewTimer(s.cfg.Reminder.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("reminder service shutting down")
			return
		case <-timer.C:
			s.scan(ctx)
			timer.Reset(s.cfg.Reminder.Interval)
		}
	}
}

func (s *Service) scan(ctx context.Context) {
	n, err := s.ScanOnce(ctx, s.now())
	if err != nil {
		s.log.Error("reminder scan failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("reminders dispatched", zap.Int("count", n))
	}
}

// ScanOnce dispatches every not-yet-reminded reservation of today whose start
// lies in [now, now+lead], marking them reminded first. It returns the number
// dispatched.
func (s *Service) ScanOnce(ctx context.Context, now time.Time) (int, error) {
	local := now.In(s.cfg.Schedule.Location)
	date := local.Format(dateLayout)
	nowMinutes := local.Hour()*60 + local.Minute()

	pending, err := s.store.PendingReminders(ctx, date)
	if err != nil {
		return 0, err
	}

	due := dueReservations(pending, nowMinutes, s.cfg.Reminder.LeadMinutes, s.log)
	if len(due) == 0 {
		return 0, nil
	}
	if err := s.store.MarkReminded(ctx, due, now.UTC()); err != nil {
		return 0, err
	}

	sent := 0
	for _, id := range due {
		if !s.workerPool.Dispatch(ctx, id) {
			break
		}
		sent++
	}
	return sent, nil
}

func dueReservations(pending []model.Reservation, nowMinutes, lead int, log *zap.Logger) []string {
	var ids []string
	for _, r := range pending {
		iv, err := schedule.ParseTimeRange(r.Time)
		if err != nil {
			log.Warn("skipping reservation with malformed time", zap.String("id", r.ID), zap.String("time", r.Time))
			continue
		}
		if iv.Start >= nowMinutes && iv.Start <= nowMinutes+lead {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
