package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/clubdesk/portal-api/internal/domain"
	"github.com/clubdesk/portal-api/internal/repository"
)

var (
	ErrParticipantNotFound = repository.ErrParticipantNotFound

	ErrRegistrationClosed            = errors.New("registration is closed for this event")
	ErrAlreadyRegistered             = errors.New("you are already registered for this event")
	ErrMemberAlreadyRegistered       = errors.New("team member is already registered for this event")
	ErrTeamNameRequired              = errors.New("team name is required for team events")
	ErrTeamMembersRequired           = errors.New("at least one team member is required")
	ErrTeamSizeOutOfRange            = errors.New("team size is out of range")
	ErrLeaderListedAsMember          = errors.New("the team leader must not be listed as a team member")
	ErrMemberNotFound                = errors.New("team member not found")
	ErrNotRegistered                 = errors.New("you are not registered for this event")
	ErrNotTeamLeader                 = errors.New("only the team leader can manage the team")
	ErrTeamAtCapacity                = errors.New("team is already at its maximum size")
	ErrCannotRemoveLeader            = errors.New("the team leader cannot be removed while the team is above its minimum size")
	ErrPermissionDenied              = errors.New("permission denied")
	ErrTeamRegistrationFailed        = errors.New("failed to register the team")
	ErrTeamMembersRegistrationFailed = errors.New("failed to register the team members")
)

type ParticipantRepository interface {
	Create(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	CreateBatch(ctx context.Context, participants []domain.Participant) ([]domain.Participant, error)
	FindByID(ctx context.Context, id uint) (domain.Participant, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (domain.Participant, error)
	FindByEventAndUsers(ctx context.Context, eventID uint, userIDs []uint) ([]domain.Participant, error)
	FindByEvent(ctx context.Context, eventID uint) ([]domain.Participant, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Participant, error)
	UpdateTeamRoster(ctx context.Context, eventID uint, teamName string, roster []domain.TeamMember) (int64, error)
	Delete(ctx context.Context, id uint) error
	DeleteTeam(ctx context.Context, eventID uint, teamName string) (int64, error)
}

// RemovalOutcome tells the caller whether removing one member cascaded into
// unregistering the whole team.
type RemovalOutcome struct {
	TeamUnregistered bool                `json:"team_unregistered"`
	RemovedCount     int                 `json:"removed_count"`
	TeamName         string              `json:"team_name"`
	Roster           []domain.TeamMember `json:"roster,omitempty"`
}

type RegistrationService struct {
	events       EventRepository
	participants ParticipantRepository
	users        UserRepository
}

func NewRegistrationService(events EventRepository, participants ParticipantRepository, users UserRepository) *RegistrationService {
	return &RegistrationService{
		events:       events,
		participants: participants,
		users:        users,
	}
}

// Register signs the caller up for an event, alone or as the leader of a new
// team. memberEmails is ignored for non-team events; for team events it lists
// the teammates to register alongside the caller.
func (s *RegistrationService) Register(ctx context.Context, eventID uint, callerEmail, teamName string, memberEmails []string) (domain.Participant, error) {
	caller, err := s.users.FindByEmail(ctx, callerEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Participant{}, ErrUserNotFound
		}
		return domain.Participant{}, fmt.Errorf("s.users.FindByEmail -> %w", err)
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Participant{}, ErrEventNotFound
		}
		return domain.Participant{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	// The derivation folds capacity into the closed status, but a full event
	// inside an open window is its own failure. Mask the counter out of the
	// gate check so the date and deadline rules alone decide closure.
	window := event
	window.ParticipantCount = 0
	if domain.DeriveRegistrationStatus(window, time.Now()) != domain.RegistrationOpen {
		return domain.Participant{}, ErrRegistrationClosed
	}

	if event.IsFull() {
		return domain.Participant{}, ErrEventFull
	}

	existing, err := s.participants.FindByEventAndUser(ctx, eventID, caller.ID)
	if err == nil {
		if existing.TeamName != "" {
			return domain.Participant{}, fmt.Errorf("%w (registered with team %q)", ErrAlreadyRegistered, existing.TeamName)
		}
		return domain.Participant{}, ErrAlreadyRegistered
	}
	if !errors.Is(err, repository.ErrParticipantNotFound) {
		return domain.Participant{}, fmt.Errorf("s.participants.FindByEventAndUser -> %w", err)
	}

	if !event.TeamEvent {
		return s.registerIndividual(ctx, event, caller)
	}

	return s.registerTeam(ctx, event, caller, teamName, memberEmails)
}

func (s *RegistrationService) registerIndividual(ctx context.Context, event domain.Event, caller domain.User) (domain.Participant, error) {
	participant, err := s.participants.Create(ctx, domain.Participant{
		EventID: event.ID,
		UserID:  caller.ID,
		Status:  domain.ParticipantRegistered,
	})
	if err != nil {
		if errors.Is(err, repository.ErrParticipantExists) {
			return domain.Participant{}, ErrAlreadyRegistered
		}
		return domain.Participant{}, fmt.Errorf("s.participants.Create -> %w", err)
	}

	if err := s.events.AddToParticipantCount(ctx, event.ID, 1); err != nil {
		if errors.Is(err, repository.ErrEventFull) {
			// Another registration took the last slot between our read and
			// the guarded increment. Undo the row.
			if delErr := s.participants.Delete(ctx, participant.ID); delErr != nil {
				zap.L().Error("failed to undo registration after capacity guard rejected it",
					zap.Uint("event_id", event.ID),
					zap.Uint("participant_id", participant.ID),
					zap.Error(delErr))
			}
			return domain.Participant{}, ErrEventFull
		}

		zap.L().Error("participant row inserted but counter update failed",
			zap.Uint("event_id", event.ID),
			zap.Uint("participant_id", participant.ID),
			zap.Error(err))
		return domain.Participant{}, fmt.Errorf("s.events.AddToParticipantCount -> %w", err)
	}

	return participant, nil
}

func (s *RegistrationService) registerTeam(ctx context.Context, event domain.Event, leader domain.User, teamName string, memberEmails []string) (domain.Participant, error) {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return domain.Participant{}, ErrTeamNameRequired
	}

	if len(memberEmails) == 0 {
		return domain.Participant{}, ErrTeamMembersRequired
	}

	totalSize := len(memberEmails) + 1
	if totalSize < event.MinTeamSize || totalSize > event.MaxTeamSize {
		return domain.Participant{}, fmt.Errorf("%w: team must have between %d and %d members including the leader",
			ErrTeamSizeOutOfRange, event.MinTeamSize, event.MaxTeamSize)
	}

	normalized := make([]string, len(memberEmails))
	for i, email := range memberEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if strings.EqualFold(email, leader.Email) {
			return domain.Participant{}, ErrLeaderListedAsMember
		}
		normalized[i] = email
	}

	members, err := s.resolveMembers(ctx, normalized)
	if err != nil {
		return domain.Participant{}, err
	}

	memberIDs := make([]uint, len(members))
	for i, m := range members {
		memberIDs[i] = m.ID
	}
	conflicts, err := s.participants.FindByEventAndUsers(ctx, event.ID, memberIDs)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.participants.FindByEventAndUsers -> %w", err)
	}
	if len(conflicts) > 0 {
		conflict := conflicts[0]
		email := emailForUserID(members, conflict.UserID)
		if conflict.TeamName != "" {
			return domain.Participant{}, fmt.Errorf("%w: %s (registered with team %q)",
				ErrMemberAlreadyRegistered, email, conflict.TeamName)
		}
		return domain.Participant{}, fmt.Errorf("%w: %s", ErrMemberAlreadyRegistered, email)
	}

	roster := make([]domain.TeamMember, 0, totalSize)
	roster = append(roster, domain.TeamMember{Email: leader.Email, Name: leader.Name})
	for _, m := range members {
		roster = append(roster, domain.TeamMember{Email: m.Email, Name: m.Name})
	}

	leaderRow, err := s.participants.Create(ctx, domain.Participant{
		EventID:      event.ID,
		UserID:       leader.ID,
		Status:       domain.ParticipantRegistered,
		TeamName:     teamName,
		TeamMembers:  roster,
		IsTeamLeader: true,
	})
	if err != nil {
		if errors.Is(err, repository.ErrParticipantExists) {
			return domain.Participant{}, ErrAlreadyRegistered
		}
		return domain.Participant{}, fmt.Errorf("%w: %v", ErrTeamRegistrationFailed, err)
	}

	memberRows := make([]domain.Participant, len(members))
	for i, m := range members {
		memberRows[i] = domain.Participant{
			EventID:      event.ID,
			UserID:       m.ID,
			Status:       domain.ParticipantRegistered,
			TeamName:     teamName,
			TeamMembers:  roster,
			IsTeamLeader: false,
		}
	}

	if _, err := s.participants.CreateBatch(ctx, memberRows); err != nil {
		// No transaction wraps the two inserts, so undo the leader row by
		// hand. If this delete also fails the store is left with a
		// leader-only team below minimum size, which only an out-of-band
		// sweep can repair.
		if delErr := s.participants.Delete(ctx, leaderRow.ID); delErr != nil {
			zap.L().Error("orphaned team leader row after failed member insert",
				zap.Uint("event_id", event.ID),
				zap.String("team_name", teamName),
				zap.Uint("leader_participant_id", leaderRow.ID),
				zap.Error(delErr))
		}
		return domain.Participant{}, fmt.Errorf("%w: %v", ErrTeamMembersRegistrationFailed, err)
	}

	if err := s.events.AddToParticipantCount(ctx, event.ID, totalSize); err != nil {
		if errors.Is(err, repository.ErrEventFull) {
			if _, delErr := s.participants.DeleteTeam(ctx, event.ID, teamName); delErr != nil {
				zap.L().Error("failed to undo team registration after capacity guard rejected it",
					zap.Uint("event_id", event.ID),
					zap.String("team_name", teamName),
					zap.Error(delErr))
			}
			return domain.Participant{}, ErrEventFull
		}

		zap.L().Error("team rows inserted but counter update failed",
			zap.Uint("event_id", event.ID),
			zap.String("team_name", teamName),
			zap.Int("team_size", totalSize),
			zap.Error(err))
		return domain.Participant{}, fmt.Errorf("s.events.AddToParticipantCount -> %w", err)
	}

	return leaderRow, nil
}

// resolveMembers looks up every email and fails if any of them is unknown.
// A partial match is a full failure.
func (s *RegistrationService) resolveMembers(ctx context.Context, emails []string) ([]domain.User, error) {
	found, err := s.users.FindByEmails(ctx, emails)
	if err != nil {
		return nil, fmt.Errorf("s.users.FindByEmails -> %w", err)
	}

	byEmail := make(map[string]domain.User, len(found))
	for _, u := range found {
		byEmail[strings.ToLower(u.Email)] = u
	}

	members := make([]domain.User, 0, len(emails))
	for _, email := range emails {
		u, ok := byEmail[email]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, email)
		}
		members = append(members, u)
	}

	return members, nil
}

func emailForUserID(users []domain.User, id uint) string {
	for _, u := range users {
		if u.ID == id {
			return u.Email
		}
	}
	return ""
}

// AddMember lets the team leader append one user to an already-registered
// team. The new roster is broadcast to every existing row of the team before
// the new member's own row is inserted.
func (s *RegistrationService) AddMember(ctx context.Context, eventID uint, callerEmail, newMemberEmail string) (domain.Participant, error) {
	_, leaderRow, event, err := s.loadLeader(ctx, eventID, callerEmail)
	if err != nil {
		return domain.Participant{}, err
	}

	roster := leaderRow.TeamMembers
	if event.MaxTeamSize > 0 && len(roster) >= event.MaxTeamSize {
		return domain.Participant{}, fmt.Errorf("%w (maximum %d)", ErrTeamAtCapacity, event.MaxTeamSize)
	}

	if event.IsFull() {
		return domain.Participant{}, ErrEventFull
	}

	newMemberEmail = strings.ToLower(strings.TrimSpace(newMemberEmail))
	member, err := s.users.FindByEmail(ctx, newMemberEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Participant{}, fmt.Errorf("%w: %s", ErrMemberNotFound, newMemberEmail)
		}
		return domain.Participant{}, fmt.Errorf("s.users.FindByEmail -> %w", err)
	}

	existing, err := s.participants.FindByEventAndUser(ctx, eventID, member.ID)
	if err == nil {
		if existing.TeamName != "" {
			return domain.Participant{}, fmt.Errorf("%w: %s (registered with team %q)",
				ErrMemberAlreadyRegistered, member.Email, existing.TeamName)
		}
		return domain.Participant{}, fmt.Errorf("%w: %s", ErrMemberAlreadyRegistered, member.Email)
	}
	if !errors.Is(err, repository.ErrParticipantNotFound) {
		return domain.Participant{}, fmt.Errorf("s.participants.FindByEventAndUser -> %w", err)
	}

	newRoster := make([]domain.TeamMember, 0, len(roster)+1)
	newRoster = append(newRoster, roster...)
	newRoster = append(newRoster, domain.TeamMember{Email: member.Email, Name: member.Name})

	if _, err := s.participants.UpdateTeamRoster(ctx, eventID, leaderRow.TeamName, newRoster); err != nil {
		return domain.Participant{}, fmt.Errorf("s.participants.UpdateTeamRoster -> %w", err)
	}

	created, err := s.participants.Create(ctx, domain.Participant{
		EventID:      eventID,
		UserID:       member.ID,
		Status:       domain.ParticipantRegistered,
		TeamName:     leaderRow.TeamName,
		TeamMembers:  newRoster,
		IsTeamLeader: false,
	})
	if err != nil {
		// The roster broadcast already landed, so every existing row now
		// lists a member who has no row of their own. Logged for the
		// reconciliation sweep; there is no compensating write here.
		zap.L().Error("roster broadcast succeeded but new member row insert failed",
			zap.Uint("event_id", eventID),
			zap.String("team_name", leaderRow.TeamName),
			zap.String("member_email", member.Email),
			zap.Error(err))
		return domain.Participant{}, fmt.Errorf("s.participants.Create -> %w", err)
	}

	if err := s.events.AddToParticipantCount(ctx, eventID, 1); err != nil {
		if errors.Is(err, repository.ErrEventFull) {
			if delErr := s.participants.Delete(ctx, created.ID); delErr != nil {
				zap.L().Error("failed to undo member addition after capacity guard rejected it",
					zap.Uint("event_id", eventID),
					zap.Uint("participant_id", created.ID),
					zap.Error(delErr))
			}
			if _, rbErr := s.participants.UpdateTeamRoster(ctx, eventID, leaderRow.TeamName, roster); rbErr != nil {
				zap.L().Error("failed to restore roster after capacity guard rejected member addition",
					zap.Uint("event_id", eventID),
					zap.String("team_name", leaderRow.TeamName),
					zap.Error(rbErr))
			}
			return domain.Participant{}, ErrEventFull
		}

		zap.L().Error("member row inserted but counter update failed",
			zap.Uint("event_id", eventID),
			zap.Uint("participant_id", created.ID),
			zap.Error(err))
		return domain.Participant{}, fmt.Errorf("s.events.AddToParticipantCount -> %w", err)
	}

	return created, nil
}

// RemoveMember drops one member from the caller's team. If that would push
// the team below the event's minimum size, the whole team is unregistered
// instead, leader included.
func (s *RegistrationService) RemoveMember(ctx context.Context, eventID uint, callerEmail, memberEmail string) (RemovalOutcome, error) {
	caller, leaderRow, event, err := s.loadLeader(ctx, eventID, callerEmail)
	if err != nil {
		return RemovalOutcome{}, err
	}

	memberEmail = strings.ToLower(strings.TrimSpace(memberEmail))
	member, err := s.users.FindByEmail(ctx, memberEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return RemovalOutcome{}, fmt.Errorf("%w: %s", ErrMemberNotFound, memberEmail)
		}
		return RemovalOutcome{}, fmt.Errorf("s.users.FindByEmail -> %w", err)
	}

	roster := leaderRow.TeamMembers
	if !domain.RosterContains(roster, member.Email) {
		return RemovalOutcome{}, fmt.Errorf("%w: %s is not on team %q", ErrMemberNotFound, member.Email, leaderRow.TeamName)
	}

	newRoster := domain.RosterWithout(roster, member.Email)
	currentSize := len(roster)
	newSize := len(newRoster)

	if newSize < event.MinTeamSize {
		return s.unregisterTeam(ctx, event, leaderRow.TeamName, currentSize)
	}

	// Removing the leader while the team stays above minimum would leave a
	// team with no leader row. There is no promote operation.
	if member.ID == caller.ID {
		return RemovalOutcome{}, ErrCannotRemoveLeader
	}

	if _, err := s.participants.UpdateTeamRoster(ctx, eventID, leaderRow.TeamName, newRoster); err != nil {
		return RemovalOutcome{}, fmt.Errorf("s.participants.UpdateTeamRoster -> %w", err)
	}

	memberRow, err := s.participants.FindByEventAndUser(ctx, eventID, member.ID)
	if err != nil {
		// Roster listed the member but their row is gone. The broadcast has
		// already removed them from every cached roster, so the lists are
		// now consistent again; only the counter may be off.
		zap.L().Warn("roster listed a member with no participant row",
			zap.Uint("event_id", eventID),
			zap.String("team_name", leaderRow.TeamName),
			zap.String("member_email", member.Email),
			zap.Error(err))
		return RemovalOutcome{
			RemovedCount: 0,
			TeamName:     leaderRow.TeamName,
			Roster:       newRoster,
		}, nil
	}

	if err := s.participants.Delete(ctx, memberRow.ID); err != nil {
		// The shrunk roster is already broadcast while the member's row
		// still exists. Logged for the reconciliation sweep.
		zap.L().Error("roster broadcast succeeded but member row delete failed",
			zap.Uint("event_id", eventID),
			zap.String("team_name", leaderRow.TeamName),
			zap.Uint("participant_id", memberRow.ID),
			zap.Error(err))
		return RemovalOutcome{}, fmt.Errorf("s.participants.Delete -> %w", err)
	}

	if err := s.events.SubtractFromParticipantCount(ctx, eventID, 1); err != nil {
		zap.L().Error("member row deleted but counter update failed",
			zap.Uint("event_id", eventID),
			zap.Error(err))
	}

	return RemovalOutcome{
		RemovedCount: 1,
		TeamName:     leaderRow.TeamName,
		Roster:       newRoster,
	}, nil
}

func (s *RegistrationService) unregisterTeam(ctx context.Context, event domain.Event, teamName string, currentSize int) (RemovalOutcome, error) {
	deleted, err := s.participants.DeleteTeam(ctx, event.ID, teamName)
	if err != nil {
		return RemovalOutcome{}, fmt.Errorf("s.participants.DeleteTeam -> %w", err)
	}
	if int(deleted) != currentSize {
		zap.L().Warn("team row count diverged from cached roster size",
			zap.Uint("event_id", event.ID),
			zap.String("team_name", teamName),
			zap.Int64("rows_deleted", deleted),
			zap.Int("roster_size", currentSize))
	}

	if err := s.events.SubtractFromParticipantCount(ctx, event.ID, currentSize); err != nil {
		zap.L().Error("team rows deleted but counter update failed",
			zap.Uint("event_id", event.ID),
			zap.String("team_name", teamName),
			zap.Int("team_size", currentSize),
			zap.Error(err))
	}

	return RemovalOutcome{
		TeamUnregistered: true,
		RemovedCount:     currentSize,
		TeamName:         teamName,
	}, nil
}

// loadLeader resolves the caller and checks they lead a team on the event.
func (s *RegistrationService) loadLeader(ctx context.Context, eventID uint, callerEmail string) (domain.User, domain.Participant, domain.Event, error) {
	caller, err := s.users.FindByEmail(ctx, callerEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, domain.Participant{}, domain.Event{}, ErrUserNotFound
		}
		return domain.User{}, domain.Participant{}, domain.Event{}, fmt.Errorf("s.users.FindByEmail -> %w", err)
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.User{}, domain.Participant{}, domain.Event{}, ErrEventNotFound
		}
		return domain.User{}, domain.Participant{}, domain.Event{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	row, err := s.participants.FindByEventAndUser(ctx, eventID, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return domain.User{}, domain.Participant{}, domain.Event{}, ErrNotRegistered
		}
		return domain.User{}, domain.Participant{}, domain.Event{}, fmt.Errorf("s.participants.FindByEventAndUser -> %w", err)
	}

	if !row.IsTeamLeader {
		return domain.User{}, domain.Participant{}, domain.Event{}, ErrNotTeamLeader
	}

	return caller, row, event, nil
}

// Cancel removes a single participant row. The caller must own the row or be
// an admin. Cancelling a team member this way does not re-broadcast the
// team's cached rosters; the staleness is logged so a periodic sweep can
// rebuild rosters from the surviving rows.
func (s *RegistrationService) Cancel(ctx context.Context, participantID uint, callerEmail string) error {
	caller, err := s.users.FindByEmail(ctx, callerEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("s.users.FindByEmail -> %w", err)
	}

	participant, err := s.participants.FindByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("s.participants.FindByID -> %w", err)
	}

	if !caller.IsAdmin && participant.UserID != caller.ID {
		return ErrPermissionDenied
	}

	if err := s.participants.Delete(ctx, participantID); err != nil {
		return fmt.Errorf("s.participants.Delete -> %w", err)
	}

	if err := s.events.SubtractFromParticipantCount(ctx, participant.EventID, 1); err != nil {
		zap.L().Error("participant row deleted but counter update failed",
			zap.Uint("event_id", participant.EventID),
			zap.Uint("participant_id", participantID),
			zap.Error(err))
	}

	if participant.TeamName != "" {
		zap.L().Warn("team member cancelled directly; cached team rosters are now stale",
			zap.Uint("event_id", participant.EventID),
			zap.String("team_name", participant.TeamName),
			zap.Uint("user_id", participant.UserID))
	}

	return nil
}

// GetRegistration returns the caller's participant row for an event.
func (s *RegistrationService) GetRegistration(ctx context.Context, eventID uint, callerEmail string) (domain.Participant, error) {
	caller, err := s.users.FindByEmail(ctx, callerEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Participant{}, ErrUserNotFound
		}
		return domain.Participant{}, fmt.Errorf("s.users.FindByEmail -> %w", err)
	}

	participant, err := s.participants.FindByEventAndUser(ctx, eventID, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return domain.Participant{}, ErrNotRegistered
		}
		return domain.Participant{}, fmt.Errorf("s.participants.FindByEventAndUser -> %w", err)
	}

	return participant, nil
}

// GetUserRegistrations lists every event registration the caller holds.
func (s *RegistrationService) GetUserRegistrations(ctx context.Context, callerEmail string) ([]domain.Participant, error) {
	caller, err := s.users.FindByEmail(ctx, callerEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("s.users.FindByEmail -> %w", err)
	}

	participants, err := s.participants.FindByUser(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("s.participants.FindByUser -> %w", err)
	}

	return participants, nil
}
