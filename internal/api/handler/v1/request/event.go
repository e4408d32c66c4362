package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

var (
	errTeamSizeBounds = errors.New("min_team_size must be at least 1 and no greater than max_team_size")
)

type CreateEventRequest struct {
	Title                string `json:"title"`
	Description          string `json:"description"`
	Location             string `json:"location"`
	EventTime            string `json:"event_time"`
	Date                 string `json:"date,omitempty"`
	RegistrationDeadline string `json:"registration_deadline,omitempty"`
	MaxParticipants      int    `json:"max_participants"`
	TeamEvent            bool   `json:"team_event"`
	MinTeamSize          int    `json:"min_team_size,omitempty"`
	MaxTeamSize          int    `json:"max_team_size,omitempty"`
}

func (req *CreateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Date, validation.Date(DateLayout)),
		validation.Field(&req.RegistrationDeadline, validation.Date(DateLayout)),
		validation.Field(&req.MaxParticipants, validation.Min(0)),
	)
	if err != nil {
		return err
	}

	if req.TeamEvent {
		if req.MinTeamSize < 1 || req.MinTeamSize > req.MaxTeamSize {
			return errTeamSizeBounds
		}
	}

	return nil
}

type UpdateEventRequest struct {
	Title                string `json:"title"`
	Description          string `json:"description"`
	Location             string `json:"location"`
	EventTime            string `json:"event_time"`
	Date                 string `json:"date,omitempty"`
	RegistrationDeadline string `json:"registration_deadline,omitempty"`
	MaxParticipants      int    `json:"max_participants"`
	EventStatus          string `json:"event_status,omitempty"`
	TeamEvent            bool   `json:"team_event"`
	MinTeamSize          int    `json:"min_team_size,omitempty"`
	MaxTeamSize          int    `json:"max_team_size,omitempty"`
}

func (req *UpdateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Date, validation.Date(DateLayout)),
		validation.Field(&req.RegistrationDeadline, validation.Date(DateLayout)),
		validation.Field(&req.MaxParticipants, validation.Min(0)),
		validation.Field(&req.EventStatus, validation.In("upcoming", "ongoing", "completed", "cancelled")),
	)
	if err != nil {
		return err
	}

	if req.TeamEvent {
		if req.MinTeamSize < 1 || req.MinTeamSize > req.MaxTeamSize {
			return errTeamSizeBounds
		}
	}

	return nil
}
