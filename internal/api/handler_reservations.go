package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"room-reservation-backend/internal/model"
	"room-reservation-backend/internal/schedule"
	"room-reservation-backend/internal/store"
)

const dateLayout = "2006-01-02"

type createReservationRequest struct {
	Date    string `json:"date" binding:"required"`
	Room    string `json:"room" binding:"required"`
	Start   string `json:"start" binding:"required"`
	End     string `json:"end" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Subject string `json:"subject"`
}

// reservationPayload is the stored shape, as kept by the browser-local list.
// ID is optional; a known ID keeps the stored reservation's identity.
type reservationPayload struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Room    string `json:"room"`
	Time    string `json:"time"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
}

type conflictResponse struct {
	Error     string                 `json:"error"`
	Conflicts []schedule.Reservation `json:"conflicts"`
}

// ListReservations handles GET /api/reservations in date and start-time order.
func (h *Handler) ListReservations(c *gin.Context) {
	rs, err := h.store.ListReservations(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to retrieve reservations", err)
		return
	}
	sorted := schedule.SortBy(rs, model.Reservation.Entry)
	c.JSON(http.StatusOK, sorted)
}

// CreateReservation handles POST /api/reservations.
func (h *Handler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := schedule.Reservation{
		Date:    req.Date,
		Room:    req.Room,
		Time:    schedule.FormatTimeRange(req.Start, req.End),
		Name:    strings.TrimSpace(req.Name),
		Subject: strings.TrimSpace(req.Subject),
	}
	if err := h.validate(entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	existing, err := h.store.ListReservations(ctx)
	if err != nil {
		h.internalError(c, "Failed to retrieve reservations", err)
		return
	}
	conflicts, err := schedule.Conflicts(entry, model.Entries(existing))
	if err != nil {
		h.internalError(c, "Stored reservations are malformed", err)
		return
	}
	if len(conflicts) > 0 {
		c.JSON(http.StatusConflict, conflictResponse{
			Error:     "the room is already reserved for part of this time",
			Conflicts: schedule.Sort(conflicts),
		})
		return
	}

	r := model.Reservation{
		Date:    entry.Date,
		Room:    entry.Room,
		Time:    entry.Time,
		Name:    entry.Name,
		Subject: entry.Subject,
	}
	if err := h.store.CreateReservation(ctx, &r); err != nil {
		h.internalError(c, "Failed to create reservation", err)
		return
	}
	h.log.Info("reservation created",
		zap.String("id", r.ID), zap.String("date", r.Date), zap.String("room", r.Room), zap.String("time", r.Time))
	c.JSON(http.StatusCreated, r)
}

// ReplaceReservations handles PUT /api/reservations, replacing the whole list.
func (h *Handler) ReplaceReservations(c *gin.Context) {
	var payload []reservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rs := make([]model.Reservation, 0, len(payload))
	seen := make(map[string]bool, len(payload))
	for i, p := range payload {
		id := strings.TrimSpace(p.ID)
		if id != "" && seen[id] {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("reservation %d: duplicate id %q", i, id)})
			return
		}
		seen[id] = true
		entry := schedule.Reservation{
			Date:    p.Date,
			Room:    p.Room,
			Time:    p.Time,
			Name:    strings.TrimSpace(p.Name),
			Subject: strings.TrimSpace(p.Subject),
		}
		if err := h.validate(entry); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("reservation %d: %v", i, err)})
			return
		}
		rs = append(rs, model.Reservation{
			ID:      id,
			Date:    entry.Date,
			Room:    entry.Room,
			Time:    entry.Time,
			Name:    entry.Name,
			Subject: entry.Subject,
		})
	}

	if err := h.store.ReplaceReservations(c.Request.Context(), rs); err != nil {
		h.internalError(c, "Failed to replace reservations", err)
		return
	}
	h.log.Info("reservations replaced", zap.Int("count", len(rs)))
	c.Status(http.StatusNoContent)
}

// CancelReservation handles DELETE /api/reservations/:id.
func (h *Handler) CancelReservation(c *gin.Context) {
	id := c.Param("id")
	err := h.store.CancelReservation(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to cancel reservation", err)
		return
	}
	h.log.Info("reservation cancelled", zap.String("id", id))
	c.Status(http.StatusNoContent)
}

// validate rejects incomplete or malformed reservations before they reach the store.
func (h *Handler) validate(r schedule.Reservation) error {
	switch {
	case r.Date == "":
		return errors.New("date is required")
	case r.Room == "":
		return errors.New("room is required")
	case r.Time == "":
		return errors.New("time is required")
	case r.Name == "":
		return errors.New("name is required")
	}
	if _, err := time.Parse(dateLayout, r.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD, got %q", r.Date)
	}
	if !h.rooms[r.Room] {
		return fmt.Errorf("unknown room %q", r.Room)
	}
	if _, err := schedule.ParseTimeRange(r.Time); err != nil {
		return err
	}
	return nil
}

func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	_ = c.Error(err)
	h.log.Error(msg, zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msg})
}
