package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"timetrack/internal/model"
)

// EventRepository defines event persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, event *model.Event) error
	// FindLatest returns the user's event with the greatest update time.
	FindLatest(ctx context.Context, userID uuid.UUID) (*model.Event, error)
	SetCreatedAt(ctx context.Context, id uuid.UUID, createdAt time.Time) error
	Delete(ctx context.Context, userID uuid.UUID, filter model.EventFilter) (int64, error)
	Query(ctx context.Context, userID uuid.UUID, filter model.EventFilter, page model.Page) ([]model.Event, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo EventRepository) error) error
	LockOwner(ctx context.Context, userID uuid.UUID) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event.
func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// Update saves an existing event and refreshes its update time.
func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// FindLatest finds the most recently updated event. Ties are broken by whatever row
// the datastore returns first.
func (r *eventRepository) FindLatest(ctx context.Context, userID uuid.UUID) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Take(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// SetCreatedAt overwrites the creation time without touching the update time.
func (r *eventRepository) SetCreatedAt(ctx context.Context, id uuid.UUID, createdAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ?", id).
		UpdateColumn("created_at", createdAt)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the user's events matching filter and returns how many were removed.
func (r *eventRepository) Delete(ctx context.Context, userID uuid.UUID, filter model.EventFilter) (int64, error) {
	res := applyFilter(r.db.WithContext(ctx).Where("user_id = ?", userID), filter).
		Delete(&model.Event{})
	return res.RowsAffected, res.Error
}

// Query lists a page of the user's events matching filter.
func (r *eventRepository) Query(ctx context.Context, userID uuid.UUID, filter model.EventFilter, page model.Page) ([]model.Event, error) {
	events := []model.Event{}
	if err := applyFilter(r.db.WithContext(ctx).Where("user_id = ?", userID), filter).
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// WithTransaction executes a function within a database transaction.
func (r *eventRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo EventRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &eventRepository{db: tx}
		return fn(ctx, txRepo)
	})
}

// LockOwner takes a row lock on the owning user until the surrounding transaction ends,
// serializing event writes per user. SQLite has no row locks and ignores the clause.
func (r *eventRepository) LockOwner(ctx context.Context, userID uuid.UUID) error {
	var user model.User
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", userID).
		Take(&user).Error
}

// applyFilter narrows q by the inclusive update-time range, the id set and the category set.
func applyFilter(q *gorm.DB, filter model.EventFilter) *gorm.DB {
	if filter.Begin != nil {
		q = q.Where("updated_at >= ?", *filter.Begin)
	}
	if filter.End != nil {
		q = q.Where("updated_at <= ?", *filter.End)
	}
	if len(filter.IDs) > 0 {
		q = q.Where("id IN ?", filter.IDs)
	}
	if len(filter.Categories) > 0 {
		q = q.Where("category_id IN ?", filter.Categories)
	}
	return q
}
