package response

import "github.com/clubdesk/portal-api/internal/domain"

type RegistrationResponse struct {
	Message     string             `json:"message"`
	Participant domain.Participant `json:"participant"`
}

type RemoveMemberResponse struct {
	Message          string              `json:"message"`
	TeamUnregistered bool                `json:"team_unregistered"`
	RemovedCount     int                 `json:"removed_count"`
	TeamName         string              `json:"team_name"`
	Roster           []domain.TeamMember `json:"roster,omitempty"`
}
