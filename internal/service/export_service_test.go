package service

import (
	"context"
	"strings"
	"testing"

	"stackbase/internal/models"
	"stackbase/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportService_ThreadText(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("renders question and comments", func(t *testing.T) {
		t.Parallel()
		questionRepo := noopQuestionRepo()
		questionRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Question, error) {
			return &models.Question{ID: id, Title: "Deadlock on shutdown", Content: "The workers never exit."}, nil
		}
		commentRepo := noopCommentRepo()
		commentRepo.listByQuestionFn = func(_ context.Context, _ uint) ([]*models.Comment, error) {
			return []*models.Comment{{Content: "Close the jobs channel."}}, nil
		}

		svc := NewExportService(questionRepo, commentRepo, noopTaxonomyRepo())
		data, filename, err := svc.ThreadText(ctx, 12)
		require.NoError(t, err)
		assert.Equal(t, "question_12_comments.txt", filename)

		text := string(data)
		assert.Contains(t, text, "Question Title: Deadlock on shutdown")
		assert.Contains(t, text, "- Close the jobs channel.")
	})

	t.Run("missing question", func(t *testing.T) {
		t.Parallel()
		questionRepo := noopQuestionRepo()
		questionRepo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Question, error) {
			return nil, gormNotFound()
		}
		svc := NewExportService(questionRepo, noopCommentRepo(), noopTaxonomyRepo())
		_, _, err := svc.ThreadText(ctx, 404)
		assertNotFoundError(t, err)
	})
}

func TestExportService_QuestionsCSV(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("scope passed through to repository", func(t *testing.T) {
		t.Parallel()
		var seen search.Scope
		questionRepo := noopQuestionRepo()
		questionRepo.listWithCommentsFn = func(_ context.Context, scope search.Scope) ([]*models.Question, error) {
			seen = scope
			return nil, nil
		}
		svc := NewExportService(questionRepo, noopCommentRepo(), noopTaxonomyRepo())
		data, filename, err := svc.QuestionsCSV(ctx, search.TagScope("go"))
		require.NoError(t, err)
		assert.Equal(t, "questions_data.csv", filename)
		assert.Equal(t, search.TagScope("go"), seen)
		assert.True(t, strings.HasPrefix(string(data), "\ufeff"))
	})

	t.Run("unknown tag", func(t *testing.T) {
		t.Parallel()
		taxonomyRepo := noopTaxonomyRepo()
		taxonomyRepo.getTagByNameFn = func(_ context.Context, _ string) (*models.Tag, error) {
			return nil, gormNotFound()
		}
		svc := NewExportService(noopQuestionRepo(), noopCommentRepo(), taxonomyRepo)
		_, _, err := svc.QuestionsCSV(ctx, search.TagScope("missing"))
		assertNotFoundError(t, err)
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()
		taxonomyRepo := noopTaxonomyRepo()
		taxonomyRepo.getCategoryByNameFn = func(_ context.Context, _ string) (*models.Category, error) {
			return nil, gormNotFound()
		}
		svc := NewExportService(noopQuestionRepo(), noopCommentRepo(), taxonomyRepo)
		_, _, err := svc.QuestionsCSV(ctx, search.CategoryScope("missing"))
		assertNotFoundError(t, err)
	})

	t.Run("unscoped export skips taxonomy lookups", func(t *testing.T) {
		t.Parallel()
		taxonomyRepo := noopTaxonomyRepo()
		taxonomyRepo.getTagByNameFn = func(_ context.Context, _ string) (*models.Tag, error) {
			t.Fatal("tag lookup should not run for an unscoped export")
			return nil, nil
		}
		svc := NewExportService(noopQuestionRepo(), noopCommentRepo(), taxonomyRepo)
		_, _, err := svc.QuestionsCSV(ctx, search.Scope{})
		require.NoError(t, err)
	})
}
