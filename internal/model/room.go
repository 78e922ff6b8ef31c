package model

import "time"

// Room is a bookable meeting room, e.g. ID "S/応接室".
type Room struct {
	ID        string    `gorm:"primaryKey;size:128" json:"id"`
	Building  string    `gorm:"size:32;not null" json:"building"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Label     string    `gorm:"size:256;not null" json:"label"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}
