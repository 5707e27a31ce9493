package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ticketapi/clock"
	"ticketapi/models"
)

const msgEventNotFound = "Event not found"

type EventService struct {
	repos models.Repositories
	clock clock.Clock
}

func NewEventService(repos models.Repositories, clk clock.Clock) *EventService {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &EventService{repos: repos, clock: clk}
}

func trimEvent(in EventInput) EventInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Venue = strings.TrimSpace(in.Venue)
	in.OrganizerID = strings.TrimSpace(in.OrganizerID)
	in.Date = in.Date.UTC()
	return in
}

// requireOrganizer 確認 event 指到的 organizer 還在
func (s *EventService) requireOrganizer(ctx context.Context, id string) error {
	_, err := s.repos.Organizers.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return notFound(msgOrganizerNotFound)
	}
	if err != nil {
		return fmt.Errorf("get organizer %s: %w", id, err)
	}
	return nil
}

func (s *EventService) Create(ctx context.Context, in EventInput) (models.Event, error) {
	in = trimEvent(in)
	if err := ValidateEvent(in, s.clock.Now()); err != nil {
		return models.Event{}, err
	}
	if err := s.requireOrganizer(ctx, in.OrganizerID); err != nil {
		return models.Event{}, err
	}

	e := models.Event{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Date:        in.Date,
		Venue:       in.Venue,
		Capacity:    in.Capacity,
		OrganizerID: in.OrganizerID,
	}
	if err := s.repos.Events.Create(ctx, &e); err != nil {
		return models.Event{}, fmt.Errorf("create event: %w", err)
	}
	return e, nil
}

func (s *EventService) Update(ctx context.Context, id string, in EventInput) (models.Event, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return models.Event{}, err
	}

	in = trimEvent(in)
	if err := ValidateEvent(in, s.clock.Now()); err != nil {
		return models.Event{}, err
	}
	if err := s.requireOrganizer(ctx, in.OrganizerID); err != nil {
		return models.Event{}, err
	}

	e.Title = in.Title
	e.Date = in.Date
	e.Venue = in.Venue
	e.Capacity = in.Capacity
	e.OrganizerID = in.OrganizerID
	if err := s.repos.Events.Update(ctx, &e); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Event{}, notFound(msgEventNotFound)
		}
		return models.Event{}, fmt.Errorf("update event %s: %w", id, err)
	}
	return e, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return deleteEventCascade(ctx, s.repos, id)
}

func (s *EventService) Get(ctx context.Context, id string) (models.Event, error) {
	e, err := s.repos.Events.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return models.Event{}, notFound(msgEventNotFound)
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("get event %s: %w", id, err)
	}
	return e, nil
}

func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	out, err := s.repos.Events.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return out, nil
}

// deleteEventCascade 先刪 tickets 再刪 event（不依賴 store 本身的 cascade）
func deleteEventCascade(ctx context.Context, repos models.Repositories, eventID string) error {
	if err := repos.Tickets.DeleteByEvent(ctx, eventID); err != nil {
		return fmt.Errorf("delete tickets of event %s: %w", eventID, err)
	}
	if err := repos.Events.Delete(ctx, eventID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound(msgEventNotFound)
		}
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}
	return nil
}
