package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrEventNotFound = errors.New("workout event not found")
	ErrInvalidRange  = errors.New("invalid date range")
)

// DayKeyFormat is how calendar days are keyed in range queries and the API.
const DayKeyFormat = "2006-01-02"

// EventView is an event with its display title resolved. The title falls
// back to the referenced template's title, then to the untitled placeholder,
// so a deleted template never blanks the calendar.
type EventView struct {
	Event        domain.WorkoutEvent
	DisplayTitle string
}

// EventService manages scheduled workout events and the calendar views over
// them.
type EventService interface {
	CreateEvent(ctx context.Context, title string, date time.Time, startTime *time.Time, notes string) (*domain.WorkoutEvent, error)
	ScheduleFromTemplate(ctx context.Context, templateID primitive.ObjectID, date time.Time, startTime *time.Time) (*domain.WorkoutEvent, error)
	GetEventByID(ctx context.Context, eventID primitive.ObjectID) (*EventView, error)
	UpdateEvent(ctx context.Context, eventID primitive.ObjectID, title string, date time.Time, startTime *time.Time, notes string) (*domain.WorkoutEvent, error)
	DeleteEvent(ctx context.Context, eventID primitive.ObjectID) error
	EventsOnDay(ctx context.Context, day time.Time) ([]EventView, error)
	EventsInRange(ctx context.Context, from, to time.Time) (map[string][]EventView, error)
	ReorderEvents(ctx context.Context, day time.Time, from []int, to int) error
}

type eventService struct {
	eventRepo     repository.EventRepository
	templateRepo  repository.TemplateRepository
	linkRepo      repository.LinkRepository
	targetSetRepo repository.TargetSetRepository
	setRecordRepo repository.SetRecordRepository
	tx            repository.TxRunner
}

// NewEventService creates a new instance of eventService.
func NewEventService(
	eventRepo repository.EventRepository,
	templateRepo repository.TemplateRepository,
	linkRepo repository.LinkRepository,
	targetSetRepo repository.TargetSetRepository,
	setRecordRepo repository.SetRecordRepository,
	tx repository.TxRunner,
) EventService {
	return &eventService{
		eventRepo:     eventRepo,
		templateRepo:  templateRepo,
		linkRepo:      linkRepo,
		targetSetRepo: targetSetRepo,
		setRecordRepo: setRecordRepo,
		tx:            tx,
	}
}

// CreateEvent schedules an ad hoc workout on a day, appended after the day's
// existing events.
func (s *eventService) CreateEvent(ctx context.Context, title string, date time.Time, startTime *time.Time, notes string) (*domain.WorkoutEvent, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidationFailed)
	}

	day := domain.DayOf(date)
	count, err := s.eventRepo.CountByDay(ctx, day)
	if err != nil {
		return nil, err
	}

	event := &domain.WorkoutEvent{
		Title:     title,
		Date:      day,
		StartTime: startTime,
		Notes:     notes,
		Order:     int(count),
	}
	eventID, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, eventID)
}

// ScheduleFromTemplate schedules a workout from a saved template. The event
// keeps a live reference to the template; nothing is copied. Its own
// exercise list starts empty and independent.
func (s *eventService) ScheduleFromTemplate(ctx context.Context, templateID primitive.ObjectID, date time.Time, startTime *time.Time) (*domain.WorkoutEvent, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidationFailed)
	}

	if _, err := s.templateRepo.GetByID(ctx, templateID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	day := domain.DayOf(date)
	count, err := s.eventRepo.CountByDay(ctx, day)
	if err != nil {
		return nil, err
	}

	event := &domain.WorkoutEvent{
		Date:       day,
		StartTime:  startTime,
		Order:      int(count),
		TemplateID: &templateID,
	}
	eventID, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, eventID)
}

// GetEventByID retrieves a single event with its display title resolved.
func (s *eventService) GetEventByID(ctx context.Context, eventID primitive.ObjectID) (*EventView, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	view := EventView{Event: *event, DisplayTitle: s.resolveTitle(ctx, event)}
	return &view, nil
}

// resolveTitle applies the display title fallback chain. A template lookup
// failure of any kind is treated as "no template": the event still renders.
func (s *eventService) resolveTitle(ctx context.Context, event *domain.WorkoutEvent) string {
	var template *domain.WorkoutTemplate
	if event.TemplateID != nil {
		template, _ = s.templateRepo.GetByID(ctx, *event.TemplateID)
	}
	return event.DisplayTitle(template)
}

// UpdateEvent edits an event's own fields. Moving it to a different day
// appends it to the target day and closes the gap in the day it left, both
// in one transaction.
func (s *eventService) UpdateEvent(ctx context.Context, eventID primitive.ObjectID, title string, date time.Time, startTime *time.Time, notes string) (*domain.WorkoutEvent, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidationFailed)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	oldDay := event.Date
	newDay := domain.DayOf(date)
	dayChanged := !newDay.Equal(oldDay)

	event.Title = title
	event.StartTime = startTime
	event.Notes = notes

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if dayChanged {
			count, err := s.eventRepo.CountByDay(ctx, newDay)
			if err != nil {
				return err
			}
			event.Date = newDay
			event.Order = int(count)
		}
		if err := s.eventRepo.Update(ctx, event); err != nil {
			return err
		}
		if dayChanged {
			return s.reindexDay(ctx, oldDay)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, eventID)
}

// DeleteEvent removes an event and everything it owns: its exercise links
// and their target sets and set records. One transaction; the remaining
// events of its day close ranks.
func (s *eventService) DeleteEvent(ctx context.Context, eventID primitive.ObjectID) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		owner := domain.EventOwner(eventID)
		links, err := s.linkRepo.GetByOwner(ctx, owner)
		if err != nil {
			return err
		}
		for _, link := range links {
			if err := s.targetSetRepo.DeleteByLinkID(ctx, link.ID); err != nil {
				return err
			}
			if err := s.setRecordRepo.DeleteByLinkID(ctx, link.ID); err != nil {
				return err
			}
		}
		if err := s.linkRepo.DeleteByOwner(ctx, owner); err != nil {
			return err
		}
		if err := s.eventRepo.Delete(ctx, eventID); err != nil {
			return err
		}
		return s.reindexDay(ctx, event.Date)
	})
}

// reindexDay reassigns dense 0..N-1 orders over one day's events.
func (s *eventService) reindexDay(ctx context.Context, day time.Time) error {
	events, err := s.eventRepo.GetByDay(ctx, day)
	if err != nil {
		return err
	}
	var updates []repository.OrderUpdate
	for i, e := range events {
		if e.Order != i {
			updates = append(updates, repository.OrderUpdate{ID: e.ID, Order: i})
		}
	}
	if len(updates) == 0 {
		return nil
	}
	return s.eventRepo.UpdateOrders(ctx, updates)
}

// EventsOnDay returns the events of one calendar day in display order.
func (s *eventService) EventsOnDay(ctx context.Context, day time.Time) ([]EventView, error) {
	events, err := s.eventRepo.GetByDay(ctx, domain.DayOf(day))
	if err != nil {
		return nil, err
	}
	views := make([]EventView, len(events))
	for i := range events {
		views[i] = EventView{Event: events[i], DisplayTitle: s.resolveTitle(ctx, &events[i])}
	}
	return views, nil
}

// EventsInRange groups the events of [from, to] (whole days, inclusive) by
// day. Days without events are absent from the map.
func (s *eventService) EventsInRange(ctx context.Context, from, to time.Time) (map[string][]EventView, error) {
	fromDay, toDay := domain.DayOf(from), domain.DayOf(to)
	if toDay.Before(fromDay) {
		return nil, ErrInvalidRange
	}

	// The repository range is half-open; push the end one day out so the
	// last day of the inclusive range is covered.
	events, err := s.eventRepo.GetBetween(ctx, fromDay, toDay.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]EventView)
	for i := range events {
		key := events[i].Date.Format(DayKeyFormat)
		grouped[key] = append(grouped[key], EventView{
			Event:        events[i],
			DisplayTitle: s.resolveTitle(ctx, &events[i]),
		})
	}
	return grouped, nil
}

// ReorderEvents moves the events at the from positions of one day, as one
// block, to offset to within that day.
func (s *eventService) ReorderEvents(ctx context.Context, day time.Time, from []int, to int) error {
	events, err := s.eventRepo.GetByDay(ctx, domain.DayOf(day))
	if err != nil {
		return err
	}

	arrangement, err := domain.MoveIndices(len(events), from, to)
	if err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.eventRepo.UpdateOrders(ctx, orderUpdates(arrangement, func(old int) primitive.ObjectID {
			return events[old].ID
		}))
	})
}
