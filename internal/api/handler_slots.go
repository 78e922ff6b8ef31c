package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"room-reservation-backend/internal/model"
	"room-reservation-backend/internal/schedule"
)

// SlotsResponse is the picker state for one date and room.
type SlotsResponse struct {
	Date         string                `json:"date"`
	Room         string                `json:"room"`
	Start        string                `json:"start,omitempty"`
	StartOptions []schedule.SlotOption `json:"start_options"`
	EndOptions   []schedule.SlotOption `json:"end_options"`
}

// GetRooms returns the configured rooms.
func (h *Handler) GetRooms(c *gin.Context) {
	rooms, err := h.store.ListRooms(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to retrieve rooms", err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetSlots handles GET /api/slots?date=&room=&start=.
// Start options are always returned; end options only once a start is given.
func (h *Handler) GetSlots(c *gin.Context) {
	date := c.Query("date")
	room := c.Query("room")
	start := c.Query("start")

	if _, err := time.Parse(dateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("date must be YYYY-MM-DD, got %q", date)})
		return
	}
	if !h.rooms[room] {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown room %q", room)})
		return
	}
	if start != "" {
		if _, err := schedule.ToMinutes(start); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	rs, err := h.store.ListReservations(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to retrieve reservations", err)
		return
	}
	existing := model.Entries(rs)

	resp := SlotsResponse{
		Date:       date,
		Room:       room,
		Start:      start,
		EndOptions: []schedule.SlotOption{},
	}
	resp.StartOptions, err = schedule.StartOptions(h.schedule.Start.Slots(), date, room, existing)
	if err != nil {
		h.internalError(c, "Stored reservations are malformed", err)
		return
	}

	if start != "" {
		resp.EndOptions, err = schedule.EndOptions(h.schedule.End.Slots(), start, date, room, existing)
		if err != nil {
			h.internalError(c, "Stored reservations are malformed", err)
			return
		}
	}

	c.JSON(http.StatusOK, resp)
}
