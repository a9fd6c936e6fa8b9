package repository

import (
	"context"
	"regexp"
	"testing"

	"stackbase/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := &models.Comment{QuestionID: 1, UserID: 2, Name: "dana", Content: "Nice question!"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, comment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListByQuestion(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE question_id = $1 ORDER BY created_at ASC, id ASC`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "question_id", "user_id", "name", "content"}).
			AddRow(1, 1, 101, "user101", "First comment").
			AddRow(2, 1, 102, "user102", "Second comment"))

	comments, err := repo.ListByQuestion(ctx, 1)
	assert.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "First comment", comments[0].Content)
	assert.Equal(t, "user102", comments[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Counts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "comments" WHERE user_id = $1`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByUser(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "comment_likes" WHERE user_id = $1`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err = repo.CountLikedBy(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_LikeUnlike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO comment_likes (user_id, comment_id) VALUES ($1, $2)`)).
		WithArgs(7, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Like(ctx, 7, 3))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM comment_likes WHERE user_id = $1 AND comment_id = $2`)).
		WithArgs(7, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Unlike(ctx, 7, 3))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_IsLiked(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "comment_likes" WHERE user_id = $1 AND comment_id = $2`)).
		WithArgs(7, 3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	liked, err := repo.IsLiked(ctx, 7, 3)
	assert.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}
