package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrEventFull     = errors.New("event is full")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string
	Location    string
	EventTime   string

	Date                 *time.Time
	RegistrationDeadline *time.Time

	// MaxParticipants of 0 means no capacity limit.
	MaxParticipants  int `gorm:"not null;default:0"`
	ParticipantCount int `gorm:"not null;default:0"`

	EventStatus        string `gorm:"not null;default:upcoming"`
	RegistrationStatus string `gorm:"not null;default:upcoming"`

	TeamEvent   bool `gorm:"not null;default:false"`
	MinTeamSize int  `gorm:"not null;default:1"`
	MaxTeamSize int  `gorm:"not null;default:1"`

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

	result := d.db.WithContext(ctx).Order("date ASC NULLS LAST").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Model(&Event{}).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"title":                 event.Title,
			"description":           event.Description,
			"location":              event.Location,
			"event_time":            event.EventTime,
			"date":                  event.Date,
			"registration_deadline": event.RegistrationDeadline,
			"max_participants":      event.MaxParticipants,
			"event_status":          event.EventStatus,
			"registration_status":   event.RegistrationStatus,
			"team_event":            event.TeamEvent,
			"min_team_size":         event.MinTeamSize,
			"max_team_size":         event.MaxTeamSize,
			"updated_at":            time.Now(),
		})
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByID(ctx, event.ID)
}

// UpdateStatuses persists freshly derived status values.
func (d *EventDAO) UpdateStatuses(ctx context.Context, id uint, eventStatus, registrationStatus string) error {
	result := d.db.WithContext(ctx).Model(&Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"event_status":        eventStatus,
			"registration_status": registrationStatus,
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// AddToParticipantCount bumps the aggregate counter by delta, guarded so the
// count can never pass max_participants. The guard and the increment are one
// statement, which is what keeps two concurrent registrations from both
// squeezing past a stale capacity read.
func (d *EventDAO) AddToParticipantCount(ctx context.Context, id uint, delta int) error {
	result := d.db.WithContext(ctx).Model(&Event{}).
		Where("id = ?", id).
		Where("max_participants = 0 OR participant_count + ? <= max_participants", delta).
		Update("participant_count", gorm.Expr("participant_count + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the event is gone or the guard rejected the increment.
		if _, err := d.FindByID(ctx, id); err != nil {
			return err
		}
		return ErrEventFull
	}

	return nil
}

// SubtractFromParticipantCount lowers the aggregate counter by delta,
// clamped at zero.
func (d *EventDAO) SubtractFromParticipantCount(ctx context.Context, id uint, delta int) error {
	result := d.db.WithContext(ctx).Model(&Event{}).
		Where("id = ?", id).
		Update("participant_count", gorm.Expr("GREATEST(participant_count - ?, 0)", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
