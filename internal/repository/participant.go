package repository

import (
	"context"
	"fmt"

	"github.com/clubdesk/portal-api/internal/domain"
	"github.com/clubdesk/portal-api/internal/repository/dao"
)

var (
	ErrParticipantNotFound = dao.ErrParticipantNotFound
	ErrParticipantExists   = dao.ErrParticipantExists
)

type ParticipantDAO interface {
	Insert(ctx context.Context, participant dao.Participant) (dao.Participant, error)
	InsertMany(ctx context.Context, participants []dao.Participant) ([]dao.Participant, error)
	FindByID(ctx context.Context, id uint) (dao.Participant, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (dao.Participant, error)
	FindByEventAndUsers(ctx context.Context, eventID uint, userIDs []uint) ([]dao.Participant, error)
	FindByEvent(ctx context.Context, eventID uint) ([]dao.Participant, error)
	FindByUser(ctx context.Context, userID uint) ([]dao.Participant, error)
	UpdateTeamRoster(ctx context.Context, eventID uint, teamName string, roster dao.TeamRoster) (int64, error)
	Delete(ctx context.Context, id uint) error
	DeleteTeam(ctx context.Context, eventID uint, teamName string) (int64, error)
}

type ParticipantRepository struct {
	dao ParticipantDAO
}

func NewParticipantRepository(dao ParticipantDAO) *ParticipantRepository {
	return &ParticipantRepository{
		dao: dao,
	}
}

func (r *ParticipantRepository) domainToDao(p domain.Participant) dao.Participant {
	return dao.Participant{
		ID:           p.ID,
		EventID:      p.EventID,
		UserID:       p.UserID,
		Status:       p.Status,
		TeamName:     p.TeamName,
		TeamMembers:  rosterToDao(p.TeamMembers),
		IsTeamLeader: p.IsTeamLeader,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (r *ParticipantRepository) daoToDomain(p dao.Participant) domain.Participant {
	return domain.Participant{
		ID:           p.ID,
		EventID:      p.EventID,
		UserID:       p.UserID,
		Status:       p.Status,
		TeamName:     p.TeamName,
		TeamMembers:  rosterToDomain(p.TeamMembers),
		IsTeamLeader: p.IsTeamLeader,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func rosterToDao(roster []domain.TeamMember) dao.TeamRoster {
	if roster == nil {
		return nil
	}
	out := make(dao.TeamRoster, len(roster))
	for i, m := range roster {
		out[i] = dao.TeamRosterEntry{Email: m.Email, Name: m.Name}
	}
	return out
}

func rosterToDomain(roster dao.TeamRoster) []domain.TeamMember {
	if roster == nil {
		return nil
	}
	out := make([]domain.TeamMember, len(roster))
	for i, m := range roster {
		out[i] = domain.TeamMember{Email: m.Email, Name: m.Name}
	}
	return out
}

func (r *ParticipantRepository) Create(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(participant))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ParticipantRepository) CreateBatch(ctx context.Context, participants []domain.Participant) ([]domain.Participant, error) {
	daoParticipants := make([]dao.Participant, len(participants))
	for i, p := range participants {
		daoParticipants[i] = r.domainToDao(p)
	}

	created, err := r.dao.InsertMany(ctx, daoParticipants)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertMany -> %w", err)
	}

	out := make([]domain.Participant, len(created))
	for i, p := range created {
		out[i] = r.daoToDomain(p)
	}

	return out, nil
}

func (r *ParticipantRepository) FindByID(ctx context.Context, id uint) (domain.Participant, error) {
	participant, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(participant), nil
}

func (r *ParticipantRepository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (domain.Participant, error) {
	participant, err := r.dao.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByEventAndUser -> %w", err)
	}

	return r.daoToDomain(participant), nil
}

func (r *ParticipantRepository) FindByEventAndUsers(ctx context.Context, eventID uint, userIDs []uint) ([]domain.Participant, error) {
	daoParticipants, err := r.dao.FindByEventAndUsers(ctx, eventID, userIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventAndUsers -> %w", err)
	}

	participants := make([]domain.Participant, len(daoParticipants))
	for i, p := range daoParticipants {
		participants[i] = r.daoToDomain(p)
	}

	return participants, nil
}

func (r *ParticipantRepository) FindByEvent(ctx context.Context, eventID uint) ([]domain.Participant, error) {
	daoParticipants, err := r.dao.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	participants := make([]domain.Participant, len(daoParticipants))
	for i, p := range daoParticipants {
		participants[i] = r.daoToDomain(p)
	}

	return participants, nil
}

func (r *ParticipantRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Participant, error) {
	daoParticipants, err := r.dao.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUser -> %w", err)
	}

	participants := make([]domain.Participant, len(daoParticipants))
	for i, p := range daoParticipants {
		participants[i] = r.daoToDomain(p)
	}

	return participants, nil
}

func (r *ParticipantRepository) UpdateTeamRoster(ctx context.Context, eventID uint, teamName string, roster []domain.TeamMember) (int64, error) {
	updated, err := r.dao.UpdateTeamRoster(ctx, eventID, teamName, rosterToDao(roster))
	if err != nil {
		return 0, fmt.Errorf("r.dao.UpdateTeamRoster -> %w", err)
	}

	return updated, nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ParticipantRepository) DeleteTeam(ctx context.Context, eventID uint, teamName string) (int64, error) {
	deleted, err := r.dao.DeleteTeam(ctx, eventID, teamName)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteTeam -> %w", err)
	}

	return deleted, nil
}
