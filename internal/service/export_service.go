package service

import (
	"context"
	"errors"

	"stackbase/internal/export"
	"stackbase/internal/models"
	"stackbase/internal/observability"
	"stackbase/internal/repository"
	"stackbase/internal/search"

	"gorm.io/gorm"
)

// ExportService produces thread text and collection CSV downloads.
type ExportService struct {
	questionRepo repository.QuestionRepository
	commentRepo  repository.CommentRepository
	taxonomyRepo repository.TaxonomyRepository
}

// NewExportService returns a new ExportService.
func NewExportService(
	questionRepo repository.QuestionRepository,
	commentRepo repository.CommentRepository,
	taxonomyRepo repository.TaxonomyRepository,
) *ExportService {
	return &ExportService{
		questionRepo: questionRepo,
		commentRepo:  commentRepo,
		taxonomyRepo: taxonomyRepo,
	}
}

// ThreadText renders one question thread as plain text and returns the
// document with its download filename.
func (s *ExportService) ThreadText(ctx context.Context, questionID uint) ([]byte, string, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID, 0)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", models.NewNotFoundError("Question", questionID)
		}
		return nil, "", err
	}
	comments, err := s.commentRepo.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, "", err
	}

	observability.ExportsTotal.WithLabelValues("text").Inc()
	return export.ThreadText(question, comments), export.ThreadFilename(questionID), nil
}

// QuestionsCSV renders the questions in scope as CSV and returns the document
// with its download filename. A scope naming an unknown tag or category is a
// not-found error, matching the listing endpoints.
func (s *ExportService) QuestionsCSV(ctx context.Context, scope search.Scope) ([]byte, string, error) {
	switch scope.Kind {
	case search.ScopeTag:
		if _, err := s.taxonomyRepo.GetTagByName(ctx, scope.Name); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", models.NewNotFoundError("Tag", scope.Name)
			}
			return nil, "", err
		}
	case search.ScopeCategory:
		if _, err := s.taxonomyRepo.GetCategoryByName(ctx, scope.Name); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", models.NewNotFoundError("Category", scope.Name)
			}
			return nil, "", err
		}
	}

	questions, err := s.questionRepo.ListWithComments(ctx, scope)
	if err != nil {
		return nil, "", err
	}

	data, err := export.QuestionsCSV(questions)
	if err != nil {
		return nil, "", err
	}

	observability.ExportsTotal.WithLabelValues("csv").Inc()
	return data, export.CSVFilename, nil
}
