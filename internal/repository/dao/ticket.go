package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrTicketNotOwned  = errors.New("ticket belongs to another user")
	ErrTicketCheckedIn = errors.New("ticket already checked in")
)

type Ticket struct {
	ID uint `gorm:"primaryKey"`

	EventID uint  `gorm:"not null;index"`
	Event   Event `gorm:"foreignKey:EventID"`
	UserID  uint  `gorm:"not null;index"`
	User    User  `gorm:"foreignKey:UserID"`

	TicketType  string  `gorm:"not null"`
	Price       float64 `gorm:"not null;default:0"`
	IsCheckedIn bool    `gorm:"not null;default:false"`
	CheckInTime *time.Time
	QRCode      string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

func (d *TicketDAO) Insert(ctx context.Context, ticket Ticket) (Ticket, error) {
	result := d.db.WithContext(ctx).Create(&ticket)
	if result.Error != nil {
		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByID(ctx context.Context, id uint) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).First(&ticket, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByIDWithEvent(ctx context.Context, id uint) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).Preload("Event").First(&ticket, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByUserID(ctx context.Context, userID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).Preload("Event").
		Where("user_id = ?", userID).Order("id").Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

func (d *TicketDAO) FindByEventID(ctx context.Context, eventID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).Preload("User").
		Where("event_id = ?", eventID).Order("id").Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

// CountOpenByEventID counts tickets for the event that have not been
// redeemed yet.
func (d *TicketDAO) CountOpenByEventID(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Ticket{}).
		Where("event_id = ? AND is_checked_in = ?", eventID, false).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *TicketDAO) AttachQRCode(ctx context.Context, id uint, qrCode string) (Ticket, error) {
	result := d.db.WithContext(ctx).Model(&Ticket{}).
		Where("id = ?", id).
		Update("qr_code", qrCode)
	if result.Error != nil {
		return Ticket{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Ticket{}, ErrTicketNotFound
	}

	return d.FindByIDWithEvent(ctx, id)
}

// CheckIn performs the booked-to-checked-in transition as a single
// conditional UPDATE. Two concurrent calls cannot both match the
// is_checked_in = false predicate, so exactly one wins; the loser is
// told the ticket was already redeemed.
func (d *TicketDAO) CheckIn(ctx context.Context, id uint, at time.Time) (Ticket, error) {
	result := d.db.WithContext(ctx).Model(&Ticket{}).
		Where("id = ? AND is_checked_in = ?", id, false).
		Updates(map[string]interface{}{
			"is_checked_in": true,
			"check_in_time": at,
		})
	if result.Error != nil {
		return Ticket{}, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := d.FindByID(ctx, id); err != nil {
			return Ticket{}, err
		}

		return Ticket{}, ErrTicketCheckedIn
	}

	return d.FindByID(ctx, id)
}

// DeleteOwned removes a ticket only when it belongs to ownerID and has
// not been redeemed. The caller distinguishes the zero-rows cases.
func (d *TicketDAO) DeleteOwned(ctx context.Context, id, ownerID uint) error {
	result := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_checked_in = ?", id, ownerID, false).
		Delete(&Ticket{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		ticket, err := d.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if ticket.UserID != ownerID {
			return ErrTicketNotOwned
		}

		return ErrTicketCheckedIn
	}

	return nil
}
