package notification

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"room-reservation-backend/config"
	"room-reservation-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool sends reservation reminders to the reserver's subscriptions.
type WorkerPool struct {
	size    int
	jobs    chan string
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
	log     *zap.Logger
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options, log *zap.Logger) *WorkerPool {
	if log == nil {
		log = zap.NewNop()
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		log:     log.Named("notification"),
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log := wp.log.With(zap.Int("worker", id))
	log.Debug("worker started")
	for {
		select {
		case reservationID := <-wp.jobs:
			log.Debug("processing reservation", zap.String("reservation_id", reservationID))
			wp.remind(ctx, reservationID)
		case <-ctx.Done():
			log.Debug("worker shutting down")
			return
		}
	}
}

// Dispatch queues a reminder for the reservation. It reports false when ctx
// ends before a worker has room for the job.
func (wp *WorkerPool) Dispatch(ctx context.Context, reservationID string) bool {
	select {
	case wp.jobs <- reservationID:
		return true
	case <-ctx.Done():
		return false
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan string {
	return wp.jobs
}

// remind notifies every subscription registered under the reserver's name.
func (wp *WorkerPool) remind(ctx context.Context, reservationID string) {
	var r model.Reservation
	if err := wp.db.WithContext(ctx).First(&r, "id = ?", reservationID).Error; err != nil {
		wp.log.Warn("reservation lookup failed", zap.String("reservation_id", reservationID), zap.Error(err))
		return
	}

	var subscriptions []model.PushSubscription
	if err := wp.db.WithContext(ctx).Where("reserved_by = ?", r.Name).Find(&subscriptions).Error; err != nil {
		wp.log.Error("failed to fetch subscriptions", zap.String("name", r.Name), zap.Error(err))
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	wp.log.Info("sending reminders",
		zap.String("reservation_id", reservationID), zap.Int("subscriptions", len(subscriptions)))

	payload := []byte(Message(r))
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

// Message is the reminder text for r.
func Message(r model.Reservation) string {
	msg := fmt.Sprintf("%s %s の予約がまもなく始まります", r.Room, r.Time)
	if r.Subject != "" {
		msg += "（" + r.Subject + "）"
	}
	return msg
}

func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		wp.log.Error("failed to send notification", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		wp.log.Info("subscription expired, deleting", zap.String("endpoint", sub.Endpoint))
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			wp.log.Error("failed to delete expired subscription", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		}
	}
}

// NewWebPushOptions builds the VAPID options shared by the API and the workers.
func NewWebPushOptions(cfg *config.PushConfig) *webpush.Options {
	return &webpush.Options{
		VAPIDPublicKey:  cfg.PublicKey,
		VAPIDPrivateKey: cfg.PrivateKey,
		Subscriber:      cfg.Subject,
		TTL:             cfg.TTL,
	}
}
