package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"room-reservation-backend/internal/model"
)

// ErrNotFound is returned when a record addressed by key does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for all database operations.
type Store interface {
	ListReservations(ctx context.Context) ([]model.Reservation, error)
	PendingReminders(ctx context.Context, date string) ([]model.Reservation, error)
	CreateReservation(ctx context.Context, r *model.Reservation) error
	CancelReservation(ctx context.Context, id string) error
	ReplaceReservations(ctx context.Context, rs []model.Reservation) error
	MarkReminded(ctx context.Context, ids []string, at time.Time) error

	UpsertRooms(ctx context.Context, rooms []model.Room) error
	ListRooms(ctx context.Context) ([]model.Room, error)

	PutSubscription(ctx context.Context, sub *model.PushSubscription) error
	GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error

	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// ListReservations returns a snapshot of every reservation in insertion order.
func (s *gormStore) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	var rs []model.Reservation
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&rs).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return rs, nil
}

// PendingReminders returns the reservations on date that have not been reminded yet.
func (s *gormStore) PendingReminders(ctx context.Context, date string) ([]model.Reservation, error) {
	var rs []model.Reservation
	err := s.db.WithContext(ctx).
		Where("date = ? AND reminded_at IS NULL", date).
		Order("created_at, id").
		Find(&rs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reminders for %s: %w", date, err)
	}
	return rs, nil
}

// CreateReservation stores r, assigning an ID when it has none.
func (s *gormStore) CreateReservation(ctx context.Context, r *model.Reservation) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

// CancelReservation deletes the reservation with the given ID.
func (s *gormStore) CancelReservation(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Reservation{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to cancel reservation %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceReservations swaps the whole reservation list in one transaction.
// A replacement row that matches a stored one, by ID or else by date, room,
// time and name, keeps that row's ID, creation time and reminder mark.
func (s *gormStore) ReplaceReservations(ctx context.Context, rs []model.Reservation) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []model.Reservation
		if err := tx.Order("created_at, id").Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to load reservations: %w", err)
		}
		carryOver(rs, existing)

		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Reservation{}).Error; err != nil {
			return fmt.Errorf("failed to clear reservations: %w", err)
		}
		if len(rs) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&rs, 100).Error; err != nil {
			return fmt.Errorf("failed to insert %d reservations: %w", len(rs), err)
		}
		return nil
	})
}

func replaceKey(r model.Reservation) string {
	return r.Date + "\x00" + r.Room + "\x00" + r.Time + "\x00" + r.Name
}

// carryOver fills rs from the stored rows they replace. Each stored row is
// matched at most once; rows without a match get a fresh ID.
func carryOver(rs, existing []model.Reservation) {
	byID := make(map[string]*model.Reservation, len(existing))
	byKey := make(map[string][]*model.Reservation, len(existing))
	for i := range existing {
		old := &existing[i]
		byID[old.ID] = old
		byKey[replaceKey(*old)] = append(byKey[replaceKey(*old)], old)
	}
	claimed := make(map[string]bool, len(rs))

	adopt := func(r *model.Reservation, old *model.Reservation) {
		claimed[old.ID] = true
		r.ID = old.ID
		r.CreatedAt = old.CreatedAt
		r.RemindedAt = old.RemindedAt
	}

	for i := range rs {
		if rs[i].ID == "" {
			continue
		}
		if old, ok := byID[rs[i].ID]; ok && !claimed[old.ID] {
			adopt(&rs[i], old)
		}
	}
	for i := range rs {
		if rs[i].ID != "" {
			continue
		}
		for _, old := range byKey[replaceKey(rs[i])] {
			if !claimed[old.ID] {
				adopt(&rs[i], old)
				break
			}
		}
		if rs[i].ID == "" {
			rs[i].ID = uuid.NewString()
		}
	}
}

// MarkReminded records that reminders went out for ids.
func (s *gormStore) MarkReminded(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("id IN ?", ids).
		Update("reminded_at", at).Error
	if err != nil {
		return fmt.Errorf("failed to mark %d reservations reminded: %w", len(ids), err)
	}
	return nil
}

// UpsertRooms inserts or refreshes the configured rooms.
func (s *gormStore) UpsertRooms(ctx context.Context, rooms []model.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"building", "name", "label", "updated_at"}),
	}).Create(&rooms).Error
	if err != nil {
		return fmt.Errorf("batch upsert rooms failed: %w", err)
	}
	return nil
}

func (s *gormStore) ListRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).Order("id").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// PutSubscription creates or replaces a push subscription keyed by endpoint.
func (s *gormStore) PutSubscription(ctx context.Context, sub *model.PushSubscription) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "reserved_by"}),
	}).Create(sub).Error
	if err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error) {
	var sub model.PushSubscription
	err := s.db.WithContext(ctx).First(&sub, "endpoint = ?", endpoint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return &sub, nil
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	if err := s.db.WithContext(ctx).Delete(&model.PushSubscription{}, "endpoint = ?", endpoint).Error; err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}
