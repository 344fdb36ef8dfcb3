package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"eventboard/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService backed by the given repository.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// First save: slug, date, and time are all derived unconditionally.
	if err := prepareEvent(event, true, true, true); err != nil {
		return err
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, changes domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Slug is re-derived only when the title actually changes; date and time
	// are re-normalized only when set. An update that doesn't touch them must
	// leave slug/date/time byte-identical.
	titleChanged := changes.Title != nil && strings.TrimSpace(*changes.Title) != event.Title
	dateChanged := changes.Date != nil && strings.TrimSpace(*changes.Date) != event.Date
	timeChanged := changes.Time != nil && strings.TrimSpace(*changes.Time) != event.Time

	applyEventUpdate(event, changes)

	if err := prepareEvent(event, titleChanged, dateChanged, timeChanged); err != nil {
		return nil, err
	}
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrNotFound
		case errors.Is(err, domain.ErrSlugTaken):
			return nil, domain.ErrSlugTaken
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func applyEventUpdate(e *domain.Event, c domain.EventUpdate) {
	if c.Title != nil {
		e.Title = *c.Title
	}
	if c.Description != nil {
		e.Description = *c.Description
	}
	if c.Overview != nil {
		e.Overview = *c.Overview
	}
	if c.Image != nil {
		e.Image = *c.Image
	}
	if c.Venue != nil {
		e.Venue = *c.Venue
	}
	if c.Location != nil {
		e.Location = *c.Location
	}
	if c.Date != nil {
		e.Date = *c.Date
	}
	if c.Time != nil {
		e.Time = *c.Time
	}
	if c.Mode != nil {
		e.Mode = *c.Mode
	}
	if c.Audience != nil {
		e.Audience = *c.Audience
	}
	if c.Agenda != nil {
		e.Agenda = c.Agenda
	}
	if c.Organizer != nil {
		e.Organizer = *c.Organizer
	}
	if c.Tags != nil {
		e.Tags = c.Tags
	}
}

// prepareEvent runs the pre-persist pipeline in fixed order, short-circuiting
// on the first failure: required string fields, non-empty lists, mode, slug
// derivation, date normalization, time normalization. Slug uniqueness is
// left to the storage layer's unique index.
func prepareEvent(e *domain.Event, deriveSlug, normalizeDate, normalizeTime bool) error {
	trimEventFields(e)

	required := []struct {
		name  string
		value string
	}{
		{"title", e.Title},
		{"description", e.Description},
		{"overview", e.Overview},
		{"image", e.Image},
		{"venue", e.Venue},
		{"location", e.Location},
		{"date", e.Date},
		{"time", e.Time},
		{"audience", e.Audience},
		{"organizer", e.Organizer},
	}
	for _, f := range required {
		if err := validation.Validate(f.value, validation.Required); err != nil {
			return &domain.ValidationError{Field: f.name, Reason: "must not be empty"}
		}
	}

	if err := validation.Validate(e.Agenda, validation.Required); err != nil {
		return &domain.ValidationError{Field: "agenda", Reason: "must have at least one item"}
	}
	if err := validation.Validate(e.Tags, validation.Required); err != nil {
		return &domain.ValidationError{Field: "tags", Reason: "must have at least one item"}
	}

	if !e.Mode.Valid() {
		return &domain.ValidationError{Field: "mode", Reason: "must be one of online, offline, hybrid"}
	}

	if deriveSlug {
		slug := Slugify(e.Title)
		if slug == "" {
			return &domain.ValidationError{Field: "title", Reason: "must contain at least one alphanumeric character"}
		}
		e.Slug = slug
	}

	if normalizeDate {
		date, err := NormalizeDate(e.Date)
		if err != nil {
			return err
		}
		e.Date = date
	}

	if normalizeTime {
		t, err := NormalizeTime(e.Time)
		if err != nil {
			return err
		}
		e.Time = t
	}
	return nil
}

func trimEventFields(e *domain.Event) {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	e.Overview = strings.TrimSpace(e.Overview)
	e.Image = strings.TrimSpace(e.Image)
	e.Venue = strings.TrimSpace(e.Venue)
	e.Location = strings.TrimSpace(e.Location)
	e.Date = strings.TrimSpace(e.Date)
	e.Time = strings.TrimSpace(e.Time)
	e.Audience = strings.TrimSpace(e.Audience)
	e.Organizer = strings.TrimSpace(e.Organizer)
}
