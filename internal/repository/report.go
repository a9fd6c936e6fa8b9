package repository

import (
	"context"

	"stackbase/internal/models"

	"gorm.io/gorm"
)

// ReportRepository defines the interface for report data operations
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	ListByQuestion(ctx context.Context, questionID uint) ([]*models.Report, error)
}

// reportRepository implements ReportRepository
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) ListByQuestion(ctx context.Context, questionID uint) ([]*models.Report, error) {
	var reports []*models.Report
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("question_id = ?", questionID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
