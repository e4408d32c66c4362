package repository

import (
	"context"
	"fmt"

	"github.com/clubdesk/portal-api/internal/domain"
	"github.com/clubdesk/portal-api/internal/repository/dao"
)

var (
	ErrEventNotFound = dao.ErrEventNotFound
	ErrEventFull     = dao.ErrEventFull
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	UpdateStatuses(ctx context.Context, id uint, eventStatus, registrationStatus string) error
	AddToParticipantCount(ctx context.Context, id uint, delta int) error
	SubtractFromParticipantCount(ctx context.Context, id uint, delta int) error
	Delete(ctx context.Context, id uint) error
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:                   e.ID,
		Title:                e.Title,
		Description:          e.Description,
		Location:             e.Location,
		EventTime:            e.EventTime,
		Date:                 e.Date,
		RegistrationDeadline: e.RegistrationDeadline,
		MaxParticipants:      e.MaxParticipants,
		ParticipantCount:     e.ParticipantCount,
		EventStatus:          string(e.EventStatus),
		RegistrationStatus:   string(e.RegistrationStatus),
		TeamEvent:            e.TeamEvent,
		MinTeamSize:          e.MinTeamSize,
		MaxTeamSize:          e.MaxTeamSize,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:                   e.ID,
		Title:                e.Title,
		Description:          e.Description,
		Location:             e.Location,
		EventTime:            e.EventTime,
		Date:                 e.Date,
		RegistrationDeadline: e.RegistrationDeadline,
		MaxParticipants:      e.MaxParticipants,
		ParticipantCount:     e.ParticipantCount,
		EventStatus:          domain.EventStatus(e.EventStatus),
		RegistrationStatus:   domain.RegistrationStatus(e.RegistrationStatus),
		TeamEvent:            e.TeamEvent,
		MinTeamSize:          e.MinTeamSize,
		MaxTeamSize:          e.MaxTeamSize,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	event, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(event), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	daoEvents, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	events := make([]domain.Event, len(daoEvents))
	for i, e := range daoEvents {
		events[i] = r.daoToDomain(e)
	}

	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) UpdateStatuses(ctx context.Context, id uint, eventStatus domain.EventStatus, registrationStatus domain.RegistrationStatus) error {
	if err := r.dao.UpdateStatuses(ctx, id, string(eventStatus), string(registrationStatus)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatuses -> %w", err)
	}

	return nil
}

func (r *EventRepository) AddToParticipantCount(ctx context.Context, id uint, delta int) error {
	return r.dao.AddToParticipantCount(ctx, id, delta)
}

func (r *EventRepository) SubtractFromParticipantCount(ctx context.Context, id uint, delta int) error {
	return r.dao.SubtractFromParticipantCount(ctx, id, delta)
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
