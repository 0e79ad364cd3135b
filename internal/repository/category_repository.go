package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"timetrack/internal/model"
)

// CategoryRepository defines category persistence operations. Every lookup is
// scoped to the owning user.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Category, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, page model.Page) ([]model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create creates a new category.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update saves every column of an existing category.
func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// FindByID finds a category by id owned by userID.
func (r *categoryRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes the category if userID owns it. Deleting nothing is not an error.
func (r *categoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Category{}).Error
}

// ListByUser lists a page of the user's categories in insertion order.
func (r *categoryRepository) ListByUser(ctx context.Context, userID uuid.UUID, page model.Page) ([]model.Category, error) {
	categories := []model.Category{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
