package service

import (
	"context"
	"errors"

	"stackbase/internal/models"
	"stackbase/internal/repository"
	"stackbase/internal/validation"

	"gorm.io/gorm"
)

// CommentService implements comment creation, listing, and like toggling.
type CommentService struct {
	commentRepo  repository.CommentRepository
	questionRepo repository.QuestionRepository
	scores       *ScoreService
}

// CreateCommentInput carries a comment submission. Username becomes the
// denormalized display label alongside the authoritative UserID reference.
type CreateCommentInput struct {
	UserID     uint
	Username   string
	QuestionID uint
	Content    string
}

// NewCommentService returns a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	questionRepo repository.QuestionRepository,
	scores *ScoreService,
) *CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		questionRepo: questionRepo,
		scores:       scores,
	}
}

// CreateComment validates and persists a comment on a question, then triggers
// a best-effort score recompute for the commenter.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if !validation.IsValidText(in.Content) {
		return nil, models.NewValidationError("Invalid comment content")
	}

	if _, err := s.questionRepo.GetByID(ctx, in.QuestionID, 0); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Question", in.QuestionID)
		}
		return nil, err
	}

	comment := &models.Comment{
		QuestionID: in.QuestionID,
		UserID:     in.UserID,
		Name:       in.Username,
		Content:    in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.scores.RecomputeBestEffort(ctx, in.UserID)
	return comment, nil
}

// ListComments returns the question's comments in thread order.
func (s *CommentService) ListComments(ctx context.Context, questionID uint) ([]*models.Comment, error) {
	if _, err := s.questionRepo.GetByID(ctx, questionID, 0); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Question", questionID)
		}
		return nil, err
	}
	return s.commentRepo.ListByQuestion(ctx, questionID)
}

// ToggleCommentLike flips the user's membership in the comment's like set.
// It returns the resulting state and the owning question's ID.
func (s *CommentService) ToggleCommentLike(ctx context.Context, userID, commentID uint) (bool, uint, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, models.NewNotFoundError("Comment", commentID)
		}
		return false, 0, err
	}

	liked, err := s.commentRepo.IsLiked(ctx, userID, commentID)
	if err != nil {
		return false, 0, err
	}

	if liked {
		err = s.commentRepo.Unlike(ctx, userID, commentID)
	} else {
		err = s.commentRepo.Like(ctx, userID, commentID)
	}
	if err != nil {
		return false, 0, err
	}

	s.scores.RecomputeBestEffort(ctx, userID)
	return !liked, comment.QuestionID, nil
}
