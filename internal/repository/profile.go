package repository

import (
	"context"

	"stackbase/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	UpdateScore(ctx context.Context, userID uint, score uint) error
	Leaderboard(ctx context.Context, limit int) ([]*models.Profile, error)
}

// profileRepository implements ProfileRepository
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).
		Model(profile).
		Select("Bio", "Phone", "Image").
		Updates(profile).Error
}

// UpdateScore overwrites the stored score. Returns gorm.ErrRecordNotFound
// when the user has no profile row.
func (r *profileRepository) UpdateScore(ctx context.Context, userID uint, score uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("score", score)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Leaderboard returns profiles ordered by score descending.
func (r *profileRepository) Leaderboard(ctx context.Context, limit int) ([]*models.Profile, error) {
	db := r.db.WithContext(ctx).
		Preload("User").
		Order("score DESC, user_id ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}

	var profiles []*models.Profile
	if err := db.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
