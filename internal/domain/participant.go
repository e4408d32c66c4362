package domain

import (
	"strings"
	"time"
)

const ParticipantRegistered = "registered"

// TeamMember is a single entry of a team roster.
type TeamMember struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Participant is one registration row. For team events every row of a team
// carries the full roster, leader included.
type Participant struct {
	ID           uint         `json:"id"`
	EventID      uint         `json:"event_id"`
	UserID       uint         `json:"user_id"`
	Status       string       `json:"status"`
	TeamName     string       `json:"team_name,omitempty"`
	TeamMembers  []TeamMember `json:"team_members,omitempty"`
	IsTeamLeader bool         `json:"is_team_leader"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// RosterContains reports whether email appears in the roster, ignoring case.
func RosterContains(roster []TeamMember, email string) bool {
	for _, m := range roster {
		if strings.EqualFold(m.Email, email) {
			return true
		}
	}
	return false
}

// RosterWithout returns roster minus the entry with the given email.
func RosterWithout(roster []TeamMember, email string) []TeamMember {
	out := make([]TeamMember, 0, len(roster))
	for _, m := range roster {
		if !strings.EqualFold(m.Email, email) {
			out = append(out, m)
		}
	}
	return out
}
