package repository

import (
	"context"

	"stackbase/internal/models"

	"gorm.io/gorm"
)

// TaxonomyRepository defines the interface for category and tag data operations
type TaxonomyRepository interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	GetCategoryByID(ctx context.Context, id uint) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	GetTagByName(ctx context.Context, name string) (*models.Tag, error)
}

// taxonomyRepository implements TaxonomyRepository
type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository creates a new taxonomy repository
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *taxonomyRepository) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("Tags").
		First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *taxonomyRepository) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("name = ?", name).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *taxonomyRepository) GetTagByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
