package repository

import (
	"context"

	"stackbase/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByQuestion(ctx context.Context, questionID uint) ([]*models.Comment, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	CountLikedBy(ctx context.Context, userID uint) (int64, error)
	IsLiked(ctx context.Context, userID, commentID uint) (bool, error)
	Like(ctx context.Context, userID, commentID uint) error
	Unlike(ctx context.Context, userID, commentID uint) error
}

// commentRepository implements CommentRepository
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Select(`comments.*,
		(SELECT COUNT(*) FROM comment_likes cl WHERE cl.comment_id = comments.id) AS likes_count`).
		First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByQuestion returns the question's comments in creation order (the
// thread's natural order).
func (r *commentRepository) ListByQuestion(ctx context.Context, questionID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) CountLikedBy(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("comment_likes").
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) IsLiked(ctx context.Context, userID, commentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("comment_likes").
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	return count > 0, err
}

func (r *commentRepository) Like(ctx context.Context, userID, commentID uint) error {
	return r.db.WithContext(ctx).
		Exec("INSERT INTO comment_likes (user_id, comment_id) VALUES (?, ?)", userID, commentID).Error
}

func (r *commentRepository) Unlike(ctx context.Context, userID, commentID uint) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM comment_likes WHERE user_id = ? AND comment_id = ?", userID, commentID).Error
}
