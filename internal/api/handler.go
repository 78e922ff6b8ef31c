package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"room-reservation-backend/config"
	"room-reservation-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	webpush  *webpush.Options
	schedule config.ScheduleConfig
	reminder config.ReminderConfig
	rooms    map[string]bool
	log      *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, cfg *config.Config, webpushOptions *webpush.Options, log *zap.Logger) *Handler {
	rooms := make(map[string]bool, len(cfg.Rooms))
	for _, r := range cfg.Rooms {
		rooms[r.ID] = true
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		store:    s,
		webpush:  webpushOptions,
		schedule: cfg.Schedule,
		reminder: cfg.Reminder,
		rooms:    rooms,
		log:      log,
	}
}
