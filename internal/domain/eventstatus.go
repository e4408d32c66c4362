package domain

import "time"

// startOfDay truncates t to local midnight.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DeriveEventStatus computes the lifecycle status of an event from its date
// and the stored status. A cancelled event stays cancelled regardless of the
// date. Events without a date keep their stored status.
func DeriveEventStatus(e Event, now time.Time) EventStatus {
	if e.EventStatus == EventCancelled {
		return EventCancelled
	}

	if e.Date == nil {
		if e.EventStatus == "" {
			return EventUpcoming
		}
		return e.EventStatus
	}

	today := startOfDay(now)
	date := startOfDay(*e.Date)

	switch {
	case date.After(today):
		return EventUpcoming
	case date.Equal(today):
		return EventOngoing
	default:
		return EventCompleted
	}
}

// DeriveRegistrationStatus computes whether registration is open.
// Rule order matters: a past event date closes registration outright, then
// a lapsed deadline, then capacity. Capacity is checked before the
// deadline-open rule, so a full event reports closed even when its deadline
// is still in the future.
func DeriveRegistrationStatus(e Event, now time.Time) RegistrationStatus {
	today := startOfDay(now)

	if e.Date != nil && startOfDay(*e.Date).Before(today) {
		return RegistrationClosed
	}

	if e.RegistrationDeadline != nil {
		endOfDeadline := startOfDay(*e.RegistrationDeadline).AddDate(0, 0, 1)
		if now.After(endOfDeadline) || now.Equal(endOfDeadline) {
			return RegistrationClosed
		}
	}

	if e.IsFull() {
		return RegistrationClosed
	}

	if e.RegistrationDeadline != nil && !startOfDay(*e.RegistrationDeadline).Before(today) {
		return RegistrationOpen
	}

	if e.RegistrationDeadline == nil && e.Date != nil && !startOfDay(*e.Date).Before(today) {
		return RegistrationOpen
	}

	if e.RegistrationStatus == "" {
		return RegistrationUpcoming
	}

	return e.RegistrationStatus
}
