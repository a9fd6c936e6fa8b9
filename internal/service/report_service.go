package service

import (
	"context"
	"errors"

	"stackbase/internal/models"
	"stackbase/internal/repository"
	"stackbase/internal/validation"

	"gorm.io/gorm"
)

// ReportService handles abuse reports against questions.
type ReportService struct {
	reportRepo   repository.ReportRepository
	questionRepo repository.QuestionRepository
}

// CreateReportInput carries a report submission.
type CreateReportInput struct {
	UserID      uint
	QuestionID  uint
	Reason      string
	Description string
}

// NewReportService returns a new ReportService.
func NewReportService(reportRepo repository.ReportRepository, questionRepo repository.QuestionRepository) *ReportService {
	return &ReportService{
		reportRepo:   reportRepo,
		questionRepo: questionRepo,
	}
}

// CreateReport validates and persists a report. Nothing is written when any
// check fails.
func (s *ReportService) CreateReport(ctx context.Context, in CreateReportInput) (*models.Report, error) {
	if !models.ValidReportReason(in.Reason) {
		return nil, models.NewValidationError("Invalid report reason")
	}
	if !validation.IsValidText(in.Description) {
		return nil, models.NewValidationError("Invalid report description")
	}

	if _, err := s.questionRepo.GetByID(ctx, in.QuestionID, 0); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Question", in.QuestionID)
		}
		return nil, err
	}

	report := &models.Report{
		UserID:      in.UserID,
		QuestionID:  in.QuestionID,
		Reason:      in.Reason,
		Description: in.Description,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ListReports returns a question's reports, newest first (admin view).
func (s *ReportService) ListReports(ctx context.Context, questionID uint) ([]*models.Report, error) {
	if _, err := s.questionRepo.GetByID(ctx, questionID, 0); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Question", questionID)
		}
		return nil, err
	}
	return s.reportRepo.ListByQuestion(ctx, questionID)
}
