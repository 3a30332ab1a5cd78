package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Date        time.Time `gorm:"not null;index"`
	Time        string    `gorm:"not null"`
	Venue       string    `gorm:"not null"`
	Category    string    `gorm:"index"`
	EventType   string    `gorm:"not null"` // "free", "ticketed", or "premium"
	TicketPrice float64   `gorm:"not null;default:0"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedBy   uint      `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Order("date").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindByCreator(ctx context.Context, creatorID uint) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Where("created_by = ?", creatorID).Order("date").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindFiltered(ctx context.Context, category string, dateFrom *time.Time) ([]Event, error) {
	query := d.db.WithContext(ctx).Model(&Event{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if dateFrom != nil {
		query = query.Where("date >= ?", *dateFrom)
	}

	var events []Event
	result := query.Order("date").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// UpdateColumns writes only the given columns so a partial update never
// overwrites fields that were not explicitly provided.
func (d *EventDAO) UpdateColumns(ctx context.Context, id uint, columns map[string]interface{}) (Event, error) {
	result := d.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByID(ctx, id)
}

// Deactivate flips is_active off. The conditional WHERE keeps the
// operation idempotence-safe: an already inactive event reports not
// found rather than succeeding twice.
func (d *EventDAO) Deactivate(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Event{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
