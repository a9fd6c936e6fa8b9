package service

import (
	"context"
	"errors"
	"log/slog"

	"stackbase/internal/middleware"
	"stackbase/internal/models"
	"stackbase/internal/observability"
	"stackbase/internal/repository"

	"gorm.io/gorm"
)

// ScoreService recomputes a user's activity score. The score is a pure
// function of current counts: questions authored + comments authored +
// question likes given + comment likes given. It is always recomputed in
// full, never incremented, so repeated runs are idempotent.
type ScoreService struct {
	questionRepo repository.QuestionRepository
	commentRepo  repository.CommentRepository
	profileRepo  repository.ProfileRepository
}

// NewScoreService returns a new ScoreService.
func NewScoreService(
	questionRepo repository.QuestionRepository,
	commentRepo repository.CommentRepository,
	profileRepo repository.ProfileRepository,
) *ScoreService {
	return &ScoreService{
		questionRepo: questionRepo,
		commentRepo:  commentRepo,
		profileRepo:  profileRepo,
	}
}

// Recompute derives the user's score from current counts and persists it on
// the profile, overwriting any prior value.
func (s *ScoreService) Recompute(ctx context.Context, userID uint) (uint, error) {
	questionsAuthored, err := s.questionRepo.CountByUser(ctx, userID)
	if err != nil {
		return 0, s.fail(err)
	}
	commentsAuthored, err := s.commentRepo.CountByUser(ctx, userID)
	if err != nil {
		return 0, s.fail(err)
	}
	questionsLiked, err := s.questionRepo.CountLikedBy(ctx, userID)
	if err != nil {
		return 0, s.fail(err)
	}
	commentsLiked, err := s.commentRepo.CountLikedBy(ctx, userID)
	if err != nil {
		return 0, s.fail(err)
	}

	score := uint(questionsAuthored + commentsAuthored + questionsLiked + commentsLiked)

	if err := s.profileRepo.UpdateScore(ctx, userID, score); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, s.fail(models.NewNotFoundError("Profile for user", userID))
		}
		return 0, s.fail(err)
	}

	observability.ScoreRecomputes.WithLabelValues("ok").Inc()
	return score, nil
}

func (s *ScoreService) fail(err error) error {
	observability.ScoreRecomputes.WithLabelValues("error").Inc()
	return err
}

// RecomputeBestEffort runs Recompute after a scoring-relevant write. The
// primary write already succeeded, so a recompute failure is surfaced through
// logs and metrics but never propagated; the stale score is repaired by the
// next scoring event.
func (s *ScoreService) RecomputeBestEffort(ctx context.Context, userID uint) {
	if _, err := s.Recompute(ctx, userID); err != nil {
		middleware.Logger.ErrorContext(ctx, "score recompute failed",
			slog.Any("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}
