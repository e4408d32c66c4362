package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clubdesk/portal-api/internal/domain"
	"github.com/clubdesk/portal-api/internal/repository"
)

var (
	ErrEventNotFound = repository.ErrEventNotFound
	ErrEventFull     = repository.ErrEventFull
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	UpdateStatuses(ctx context.Context, id uint, eventStatus domain.EventStatus, registrationStatus domain.RegistrationStatus) error
	AddToParticipantCount(ctx context.Context, id uint, delta int) error
	SubtractFromParticipantCount(ctx context.Context, id uint, delta int) error
	Delete(ctx context.Context, id uint) error
}

type EventService struct {
	repo            EventRepository
	participantRepo ParticipantRepository
}

func NewEventService(repo EventRepository, participantRepo ParticipantRepository) *EventService {
	return &EventService{
		repo:            repo,
		participantRepo: participantRepo,
	}
}

// refreshStatuses derives both statuses for the event and, when either
// differs from the stored value, persists the correction. Persisting is
// best-effort: a write failure is logged and the derived values are still
// returned to the caller.
func (s *EventService) refreshStatuses(ctx context.Context, event domain.Event) domain.Event {
	now := time.Now()
	eventStatus := domain.DeriveEventStatus(event, now)
	registrationStatus := domain.DeriveRegistrationStatus(event, now)

	if eventStatus != event.EventStatus || registrationStatus != event.RegistrationStatus {
		if err := s.repo.UpdateStatuses(ctx, event.ID, eventStatus, registrationStatus); err != nil {
			zap.L().Warn("failed to persist derived event statuses",
				zap.Uint("event_id", event.ID),
				zap.Error(err))
		}
		event.EventStatus = eventStatus
		event.RegistrationStatus = registrationStatus
	}

	return event
}

func (s *EventService) GetEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	for i, event := range events {
		events[i] = s.refreshStatuses(ctx, event)
	}

	return events, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return s.refreshStatuses(ctx, event), nil
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	now := time.Now()
	event.ParticipantCount = 0
	event.EventStatus = domain.DeriveEventStatus(event, now)
	event.RegistrationStatus = domain.DeriveRegistrationStatus(event, now)

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	current, err := s.repo.FindByID(ctx, event.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	// The aggregate counter is owned by the registration flows; an admin
	// edit never touches it. The stored statuses survive too, or a date-less
	// event explicitly closed by an admin would fall back to the default on
	// the next derivation.
	event.ParticipantCount = current.ParticipantCount
	event.RegistrationStatus = current.RegistrationStatus
	if event.EventStatus == "" {
		event.EventStatus = current.EventStatus
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return s.refreshStatuses(ctx, updated), nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *EventService) GetParticipants(ctx context.Context, eventID uint) ([]domain.Participant, error) {
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	participants, err := s.participantRepo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.participantRepo.FindByEvent -> %w", err)
	}

	return participants, nil
}
