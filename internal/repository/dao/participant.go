package dao

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantExists   = errors.New("participant already registered for this event")
)

// TeamRosterEntry mirrors domain.TeamMember for the JSONB payload.
type TeamRosterEntry struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TeamRoster is the denormalized member list stored on every row of a team.
type TeamRoster []TeamRosterEntry

func (r TeamRoster) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

func (r *TeamRoster) Scan(src interface{}) error {
	if src == nil {
		*r = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for TeamRoster", src)
	}

	return json.Unmarshal(data, r)
}

type Participant struct {
	ID uint `gorm:"primaryKey"`

	EventID uint `gorm:"not null;uniqueIndex:idx_participants_event_user"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_participants_event_user"`

	Status string `gorm:"not null;default:registered"`

	TeamName     string     `gorm:"index"`
	TeamMembers  TeamRoster `gorm:"type:jsonb"`
	IsTeamLeader bool       `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ParticipantDAO struct {
	db *gorm.DB
}

func NewParticipantDAO(db *gorm.DB) *ParticipantDAO {
	return &ParticipantDAO{
		db: db,
	}
}

func (d *ParticipantDAO) Insert(ctx context.Context, participant Participant) (Participant, error) {
	result := d.db.WithContext(ctx).Create(&participant)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Participant{}, ErrParticipantExists
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

// InsertMany inserts all rows in one multi-row statement. It is best-effort:
// a failure means none-or-some of the rows landed and the caller is expected
// to compensate.
func (d *ParticipantDAO) InsertMany(ctx context.Context, participants []Participant) ([]Participant, error) {
	if len(participants) == 0 {
		return nil, nil
	}

	result := d.db.WithContext(ctx).Create(&participants)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return nil, ErrParticipantExists
		}

		return nil, result.Error
	}

	return participants, nil
}

func (d *ParticipantDAO) FindByID(ctx context.Context, id uint) (Participant, error) {
	var participant Participant

	result := d.db.WithContext(ctx).First(&participant, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) FindByEventAndUser(ctx context.Context, eventID, userID uint) (Participant, error) {
	var participant Participant

	result := d.db.WithContext(ctx).
		First(&participant, "event_id = ? AND user_id = ?", eventID, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) FindByEventAndUsers(ctx context.Context, eventID uint, userIDs []uint) ([]Participant, error) {
	var participants []Participant

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND user_id IN ?", eventID, userIDs).
		Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

func (d *ParticipantDAO) FindByEvent(ctx context.Context, eventID uint) ([]Participant, error) {
	var participants []Participant

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

func (d *ParticipantDAO) FindByUser(ctx context.Context, userID uint) ([]Participant, error) {
	var participants []Participant

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

// UpdateTeamRoster overwrites the cached roster on every row of a team in
// one statement.
func (d *ParticipantDAO) UpdateTeamRoster(ctx context.Context, eventID uint, teamName string, roster TeamRoster) (int64, error) {
	result := d.db.WithContext(ctx).Model(&Participant{}).
		Where("event_id = ? AND team_name = ?", eventID, teamName).
		Updates(map[string]interface{}{
			"team_members": roster,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (d *ParticipantDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Participant{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}

// DeleteTeam removes every row of a team and returns how many went away.
func (d *ParticipantDAO) DeleteTeam(ctx context.Context, eventID uint, teamName string) (int64, error) {
	result := d.db.WithContext(ctx).
		Where("event_id = ? AND team_name = ?", eventID, teamName).
		Delete(&Participant{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
