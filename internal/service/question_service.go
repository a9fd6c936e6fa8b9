package service

import (
	"context"
	"errors"

	"stackbase/internal/models"
	"stackbase/internal/repository"
	"stackbase/internal/search"
	"stackbase/internal/validation"

	"gorm.io/gorm"
)

// QuestionService implements question CRUD, like toggling, and filtered
// listing on top of the repositories.
type QuestionService struct {
	questionRepo repository.QuestionRepository
	taxonomyRepo repository.TaxonomyRepository
	scores       *ScoreService
	isAdmin      func(ctx context.Context, userID uint) (bool, error)
}

// CreateQuestionInput carries a question submission.
type CreateQuestionInput struct {
	UserID     uint
	Title      string
	Content    string
	CategoryID *uint
	TagIDs     []uint
}

// UpdateQuestionInput carries an owner's edit of an existing question.
type UpdateQuestionInput struct {
	UserID     uint
	QuestionID uint
	Title      string
	Content    string
	CategoryID *uint
	TagIDs     []uint
}

// NewQuestionService returns a new QuestionService.
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	taxonomyRepo repository.TaxonomyRepository,
	scores *ScoreService,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		taxonomyRepo: taxonomyRepo,
		scores:       scores,
		isAdmin:      isAdmin,
	}
}

// resolveSubmission validates the submitted text and resolves the tag IDs
// against the chosen category's tag set. Selectable tags are restricted to
// the category; nothing is written when any check fails.
func (s *QuestionService) resolveSubmission(ctx context.Context, title, content string, categoryID *uint, tagIDs []uint) ([]models.Tag, error) {
	if categoryID == nil {
		return nil, models.NewValidationError("Please select a category")
	}
	if !validation.IsValidText(title) {
		return nil, models.NewValidationError("Invalid question title")
	}
	if !validation.IsValidText(content) {
		return nil, models.NewValidationError("Invalid question content")
	}

	category, err := s.taxonomyRepo.GetCategoryByID(ctx, *categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", *categoryID)
		}
		return nil, err
	}

	allowed := make(map[uint]models.Tag, len(category.Tags))
	for _, tag := range category.Tags {
		allowed[tag.ID] = tag
	}

	tags := make([]models.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tag, ok := allowed[id]
		if !ok {
			return nil, models.NewValidationError("Tag is not available for the selected category")
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// CreateQuestion validates and persists a new question, then triggers a
// best-effort score recompute for the author.
func (s *QuestionService) CreateQuestion(ctx context.Context, in CreateQuestionInput) (*models.Question, error) {
	tags, err := s.resolveSubmission(ctx, in.Title, in.Content, in.CategoryID, in.TagIDs)
	if err != nil {
		return nil, err
	}

	question := &models.Question{
		Title:      in.Title,
		Content:    in.Content,
		UserID:     in.UserID,
		CategoryID: in.CategoryID,
		Tags:       tags,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}

	s.scores.RecomputeBestEffort(ctx, in.UserID)
	return question, nil
}

// GetQuestion fetches a question with its computed like data for the reader.
func (s *QuestionService) GetQuestion(ctx context.Context, id, currentUserID uint) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Question", id)
		}
		return nil, err
	}
	return question, nil
}

// ListQuestions returns questions matching the filter, newest first.
func (s *QuestionService) ListQuestions(ctx context.Context, f search.Filter) ([]*models.Question, error) {
	return s.questionRepo.List(ctx, f)
}

// UpdateQuestion applies an owner's edit. Only the owner may update.
func (s *QuestionService) UpdateQuestion(ctx context.Context, in UpdateQuestionInput) (*models.Question, error) {
	existing, err := s.GetQuestion(ctx, in.QuestionID, 0)
	if err != nil {
		return nil, err
	}
	if existing.UserID != in.UserID {
		return nil, models.NewForbiddenError("Only the question owner can update it")
	}

	tags, err := s.resolveSubmission(ctx, in.Title, in.Content, in.CategoryID, in.TagIDs)
	if err != nil {
		return nil, err
	}

	existing.Title = in.Title
	existing.Content = in.Content
	existing.CategoryID = in.CategoryID
	if err := s.questionRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	if err := s.questionRepo.ReplaceTags(ctx, existing, tags); err != nil {
		return nil, err
	}
	existing.Tags = tags
	return existing, nil
}

// DeleteQuestion removes a question and everything hanging off it. Allowed
// for the owner or an admin.
func (s *QuestionService) DeleteQuestion(ctx context.Context, userID, questionID uint) error {
	existing, err := s.GetQuestion(ctx, questionID, 0)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("Only the question owner or an admin can delete it")
		}
	}
	return s.questionRepo.Delete(ctx, questionID)
}

// ToggleQuestionLike flips the user's membership in the question's like set
// and reports the resulting state. Likes are a set: toggled, never counted
// twice for the same user.
func (s *QuestionService) ToggleQuestionLike(ctx context.Context, userID, questionID uint) (bool, error) {
	if _, err := s.GetQuestion(ctx, questionID, 0); err != nil {
		return false, err
	}

	liked, err := s.questionRepo.IsLiked(ctx, userID, questionID)
	if err != nil {
		return false, err
	}

	if liked {
		err = s.questionRepo.Unlike(ctx, userID, questionID)
	} else {
		err = s.questionRepo.Like(ctx, userID, questionID)
	}
	if err != nil {
		return false, err
	}

	s.scores.RecomputeBestEffort(ctx, userID)
	return !liked, nil
}
