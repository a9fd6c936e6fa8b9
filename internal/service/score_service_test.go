package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gormNotFound() error { return gorm.ErrRecordNotFound }

func TestScoreService_Recompute_SumsAllCounts(t *testing.T) {
	t.Parallel()

	questionRepo := noopQuestionRepo()
	questionRepo.countByUserFn = func(_ context.Context, _ uint) (int64, error) { return 2, nil }
	questionRepo.countLikedByFn = func(_ context.Context, _ uint) (int64, error) { return 1, nil }

	commentRepo := noopCommentRepo()
	commentRepo.countByUserFn = func(_ context.Context, _ uint) (int64, error) { return 3, nil }
	commentRepo.countLikedByFn = func(_ context.Context, _ uint) (int64, error) { return 0, nil }

	var persisted uint
	profileRepo := noopProfileRepo()
	profileRepo.updateScoreFn = func(_ context.Context, _ uint, score uint) error {
		persisted = score
		return nil
	}

	svc := NewScoreService(questionRepo, commentRepo, profileRepo)
	score, err := svc.Recompute(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint(6), score)
	assert.Equal(t, uint(6), persisted)
}

func TestScoreService_Recompute_Idempotent(t *testing.T) {
	t.Parallel()

	questionRepo := noopQuestionRepo()
	questionRepo.countByUserFn = func(_ context.Context, _ uint) (int64, error) { return 4, nil }

	svc := NewScoreService(questionRepo, noopCommentRepo(), noopProfileRepo())
	ctx := context.Background()

	first, err := svc.Recompute(ctx, 1)
	require.NoError(t, err)
	second, err := svc.Recompute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScoreService_Recompute_ZeroActivity(t *testing.T) {
	t.Parallel()

	svc := noopScoreService()
	score, err := svc.Recompute(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestScoreService_Recompute_MissingProfile(t *testing.T) {
	t.Parallel()

	profileRepo := noopProfileRepo()
	profileRepo.updateScoreFn = func(_ context.Context, _, _ uint) error {
		return gorm.ErrRecordNotFound
	}

	svc := NewScoreService(noopQuestionRepo(), noopCommentRepo(), profileRepo)
	_, err := svc.Recompute(context.Background(), 404)
	assertNotFoundError(t, err)
}

func TestScoreService_Recompute_CountErrorPropagates(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("connection reset")
	commentRepo := noopCommentRepo()
	commentRepo.countByUserFn = func(_ context.Context, _ uint) (int64, error) { return 0, repoErr }

	svc := NewScoreService(noopQuestionRepo(), commentRepo, noopProfileRepo())
	_, err := svc.Recompute(context.Background(), 1)
	assert.ErrorIs(t, err, repoErr)
}

func TestScoreService_RecomputeBestEffort_SwallowsErrors(t *testing.T) {
	t.Parallel()

	questionRepo := noopQuestionRepo()
	questionRepo.countByUserFn = func(_ context.Context, _ uint) (int64, error) {
		return 0, errors.New("boom")
	}

	svc := NewScoreService(questionRepo, noopCommentRepo(), noopProfileRepo())
	assert.NotPanics(t, func() {
		svc.RecomputeBestEffort(context.Background(), 1)
	})
}
