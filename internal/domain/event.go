package domain

import "time"

type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

type RegistrationStatus string

const (
	RegistrationOpen     RegistrationStatus = "open"
	RegistrationClosed   RegistrationStatus = "closed"
	RegistrationUpcoming RegistrationStatus = "upcoming"
)

type Event struct {
	ID                   uint               `json:"id"`
	Title                string             `json:"title"`
	Description          string             `json:"description"`
	Location             string             `json:"location"`
	EventTime            string             `json:"event_time"`
	Date                 *time.Time         `json:"date"`
	RegistrationDeadline *time.Time         `json:"registration_deadline"`
	MaxParticipants      int                `json:"max_participants"`
	ParticipantCount     int                `json:"participant_count"`
	EventStatus          EventStatus        `json:"event_status"`
	RegistrationStatus   RegistrationStatus `json:"registration_status"`
	TeamEvent            bool               `json:"team_event"`
	MinTeamSize          int                `json:"min_team_size"`
	MaxTeamSize          int                `json:"max_team_size"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// IsFull reports whether the event has a capacity and has reached it.
func (e Event) IsFull() bool {
	return e.MaxParticipants > 0 && e.ParticipantCount >= e.MaxParticipants
}
