package model

import (
	"time"

	"room-reservation-backend/internal/schedule"
)

// Reservation claims a room for a date and time range.
type Reservation struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	Date       string     `gorm:"size:10;index:idx_reservations_date_room" json:"date"`
	Room       string     `gorm:"size:128;index:idx_reservations_date_room" json:"room"`
	Time       string     `gorm:"size:11" json:"time"`
	Name       string     `gorm:"column:reserved_by;size:128" json:"name"`
	Subject    string     `gorm:"size:512" json:"subject,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	RemindedAt *time.Time `json:"-"`
}

// Entry returns the fields the conflict engine works on.
func (r Reservation) Entry() schedule.Reservation {
	return schedule.Reservation{
		Date:    r.Date,
		Room:    r.Room,
		Time:    r.Time,
		Name:    r.Name,
		Subject: r.Subject,
	}
}

// Entries converts a list of stored reservations for the conflict engine.
func Entries(rs []Reservation) []schedule.Reservation {
	out := make([]schedule.Reservation, len(rs))
	for i, r := range rs {
		out[i] = r.Entry()
	}
	return out
}
