package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	apperrors "timetrack/internal/errors"
	"timetrack/internal/metrics"
	"timetrack/internal/model"
	"timetrack/internal/repository"
)

// EventService records, removes and queries a user's events.
type EventService interface {
	// Submit folds the category into the latest event when it matches, otherwise starts a new event.
	Submit(ctx context.Context, userID, categoryID uuid.UUID) (*model.Event, error)
	// Insert always creates a new event whose creation time is at.
	Insert(ctx context.Context, userID uuid.UUID, at time.Time, categoryID uuid.UUID) (*model.Event, error)
	Remove(ctx context.Context, userID uuid.UUID, filter model.EventFilter) (int64, error)
	Query(ctx context.Context, userID uuid.UUID, filter model.EventFilter, page model.Page) ([]model.Event, error)
}

type eventService struct {
	eventRepo       repository.EventRepository
	categoryRepo    repository.CategoryRepository
	metrics         *metrics.Metrics
	defaultPageSize int
	log             zerolog.Logger
}

// NewEventService creates a new event service.
func NewEventService(
	eventRepo repository.EventRepository,
	categoryRepo repository.CategoryRepository,
	m *metrics.Metrics,
	defaultPageSize int,
	log zerolog.Logger,
) EventService {
	return &eventService{
		eventRepo:       eventRepo,
		categoryRepo:    categoryRepo,
		metrics:         m,
		defaultPageSize: defaultPageSize,
		log:             log.With().Str("component", "events").Logger(),
	}
}

// Submit validates the category, then inside one transaction locks the owning user,
// reads the latest event and either increments it or creates a new one.
func (s *eventService) Submit(ctx context.Context, userID, categoryID uuid.UUID) (*model.Event, error) {
	if categoryID == uuid.Nil {
		return nil, apperrors.NewValidationError("You must include an event category.")
	}

	if _, err := s.categoryRepo.FindByID(ctx, userID, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewValidationError("Invalid category.")
		}
		return nil, persistenceFailure(s.log, "Event creation error", "Database error creating event", userID, err)
	}

	var (
		recorded *model.Event
		outcome  string
	)
	err := s.eventRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.EventRepository) error {
		if err := repo.LockOwner(ctx, userID); err != nil {
			return err
		}

		latest, err := repo.FindLatest(ctx, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if latest == nil || latest.CategoryID != categoryID {
			event := &model.Event{
				Count:      1,
				UserID:     userID,
				CategoryID: categoryID,
			}
			if err := repo.Create(ctx, event); err != nil {
				return err
			}
			recorded, outcome = event, metrics.OutcomeCreated
			return nil
		}

		latest.Count++
		if err := repo.Update(ctx, latest); err != nil {
			return err
		}
		recorded, outcome = latest, metrics.OutcomeConsolidated
		return nil
	})
	if err != nil {
		return nil, persistenceFailure(s.log, "Event creation error", "Database error creating event", userID, err)
	}

	s.metrics.ObserveSubmit(outcome)
	return recorded, nil
}

// Insert skips consolidation and the category ownership check.
func (s *eventService) Insert(ctx context.Context, userID uuid.UUID, at time.Time, categoryID uuid.UUID) (*model.Event, error) {
	if at.IsZero() {
		return nil, apperrors.NewValidationError("You must include an event time.")
	}
	if categoryID == uuid.Nil {
		return nil, apperrors.NewValidationError("You must include an event category.")
	}

	event := &model.Event{
		Count:      1,
		UserID:     userID,
		CategoryID: categoryID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, persistenceFailure(s.log, "Event insertion error", "Database error inserting event", userID, err)
	}

	at = at.UTC()
	if err := s.eventRepo.SetCreatedAt(ctx, event.ID, at); err != nil {
		return nil, persistenceFailure(s.log, "Event insertion error", "Database error setting event time", userID, err)
	}
	event.CreatedAt = at

	s.metrics.ObserveInsert()
	return event, nil
}

// Remove deletes by an explicit id set or by an update-time range, never both.
func (s *eventService) Remove(ctx context.Context, userID uuid.UUID, filter model.EventFilter) (int64, error) {
	hasRange := filter.Begin != nil || filter.End != nil
	hasIDs := len(filter.IDs) > 0
	switch {
	case hasIDs && hasRange:
		return 0, apperrors.NewValidationError("The events parameter must not be accompanied by begin or end.")
	case !hasIDs && !hasRange:
		return 0, apperrors.NewValidationError("You must include at least one of begin, end or events.")
	}

	filter.Categories = nil
	removed, err := s.eventRepo.Delete(ctx, userID, utcFilter(filter))
	if err != nil {
		return 0, persistenceFailure(s.log, "Event removal error", "Database error removing events", userID, err)
	}

	s.metrics.ObserveRemove(removed)
	return removed, nil
}

// Query returns a page of events. Result order is whatever the datastore yields.
func (s *eventService) Query(ctx context.Context, userID uuid.UUID, filter model.EventFilter, page model.Page) ([]model.Event, error) {
	page.Offset, page.Limit = defaultPage(page.Offset, page.Limit, s.defaultPageSize)
	filter.IDs = nil

	events, err := s.eventRepo.Query(ctx, userID, utcFilter(filter), page)
	if err != nil {
		return nil, persistenceFailure(s.log, "Error querying for events.", "Database error finding events", userID, err)
	}
	return events, nil
}

// utcFilter converts range bounds to UTC, the zone timestamps are stored in.
func utcFilter(filter model.EventFilter) model.EventFilter {
	if filter.Begin != nil {
		begin := filter.Begin.UTC()
		filter.Begin = &begin
	}
	if filter.End != nil {
		end := filter.End.UTC()
		filter.End = &end
	}
	return filter
}
