package model

import "time"

// PushSubscription holds a browser push subscription and the reserver it follows.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	Name      string    `gorm:"column:reserved_by;index;not null"`
	CreatedAt time.Time `gorm:"not null"`
}
