package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	apperrors "timetrack/internal/errors"
	"timetrack/internal/model"
	"timetrack/internal/repository"
)

// CategoryInput describes a new category. Start defaults to false when nil.
type CategoryInput struct {
	Name    string
	Start   *bool
	Code    string
	Context string
}

// CategoryChanges lists the fields to modify. Nil and empty strings mean "not supplied".
type CategoryChanges struct {
	Name    *string
	Start   *bool
	Code    *string
	Context *string
}

// empty reports whether no field was supplied.
func (c CategoryChanges) empty() bool {
	return !supplied(c.Name) && c.Start == nil && !supplied(c.Code) && !supplied(c.Context)
}

// apply copies supplied fields that differ onto category and reports whether anything changed.
func (c CategoryChanges) apply(category *model.Category) bool {
	modified := false
	if supplied(c.Name) && *c.Name != category.Name {
		category.Name = *c.Name
		modified = true
	}
	if c.Start != nil && *c.Start != category.Start {
		category.Start = *c.Start
		modified = true
	}
	if supplied(c.Code) && *c.Code != category.Code {
		category.Code = *c.Code
		modified = true
	}
	if supplied(c.Context) && *c.Context != category.Context {
		category.Context = *c.Context
		modified = true
	}
	return modified
}

func supplied(s *string) bool {
	return s != nil && *s != ""
}

// CategoryService manages a user's categories.
type CategoryService interface {
	Create(ctx context.Context, userID uuid.UUID, in CategoryInput) (*model.Category, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Modify(ctx context.Context, userID, id uuid.UUID, changes CategoryChanges) (*model.Category, error)
	List(ctx context.Context, userID uuid.UUID, page model.Page) ([]model.Category, error)
}

type categoryService struct {
	repo            repository.CategoryRepository
	defaultPageSize int
	log             zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, defaultPageSize int, log zerolog.Logger) CategoryService {
	return &categoryService{
		repo:            repo,
		defaultPageSize: defaultPageSize,
		log:             log.With().Str("component", "categories").Logger(),
	}
}

func (s *categoryService) Create(ctx context.Context, userID uuid.UUID, in CategoryInput) (*model.Category, error) {
	if in.Name == "" {
		return nil, apperrors.NewValidationError("You must enter a category name.")
	}
	category := &model.Category{
		UserID:  userID,
		Name:    in.Name,
		Code:    in.Code,
		Context: in.Context,
	}
	if in.Start != nil {
		category.Start = *in.Start
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, persistenceFailure(s.log, "Category creation error", "Database error creating category", userID, err)
	}
	return category, nil
}

// Delete removes the category if the user owns it; otherwise nothing happens.
func (s *categoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if id == uuid.Nil {
		return apperrors.NewValidationError("No category specified.")
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return persistenceFailure(s.log, "Category removal error", "Database error removing category", userID, err)
	}
	return nil
}

// Modify applies the supplied fields that differ from the stored category.
func (s *categoryService) Modify(ctx context.Context, userID, id uuid.UUID, changes CategoryChanges) (*model.Category, error) {
	if id == uuid.Nil {
		return nil, apperrors.NewValidationError("No category specified.")
	}
	if changes.empty() {
		return nil, apperrors.NewValidationError("No parameters specified.")
	}

	category, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = apperrors.ErrNotFound
		}
		return nil, persistenceFailure(s.log, "Category modification error", "Database error modifying category", userID, err)
	}

	if !changes.apply(category) {
		return nil, apperrors.ErrNoModifiedParameters
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, persistenceFailure(s.log, "Category modification error", "Database error modifying category", userID, err)
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context, userID uuid.UUID, page model.Page) ([]model.Category, error) {
	page.Offset, page.Limit = defaultPage(page.Offset, page.Limit, s.defaultPageSize)
	categories, err := s.repo.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, persistenceFailure(s.log, "Error querying for categories.", "Database error finding categories", userID, err)
	}
	return categories, nil
}
