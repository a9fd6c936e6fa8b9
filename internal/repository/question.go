// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"strings"
	"time"

	"stackbase/internal/models"
	"stackbase/internal/search"

	"gorm.io/gorm"
)

// QuestionRepository defines the interface for question data operations
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Question, error)
	List(ctx context.Context, f search.Filter) ([]*models.Question, error)
	ListWithComments(ctx context.Context, scope search.Scope) ([]*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	ReplaceTags(ctx context.Context, question *models.Question, tags []models.Tag) error
	Delete(ctx context.Context, id uint) error
	CountByUser(ctx context.Context, userID uint) (int64, error)
	CountLikedBy(ctx context.Context, userID uint) (int64, error)
	IsLiked(ctx context.Context, userID, questionID uint) (bool, error)
	Like(ctx context.Context, userID, questionID uint) error
	Unlike(ctx context.Context, userID, questionID uint) error
}

// likeEscaper neutralizes LIKE metacharacters so title terms match as
// literal substrings.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// questionRepository implements QuestionRepository
type questionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db, now: time.Now}
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

// applyQuestionDetails adds the computed likes_count and, for a signed-in
// reader, the liked flag.
func (r *questionRepository) applyQuestionDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectClause := `questions.*,
		(SELECT COUNT(*) FROM question_likes ql WHERE ql.question_id = questions.id) AS likes_count`
	if currentUserID != 0 {
		selectClause += `,
		EXISTS(SELECT 1 FROM question_likes ql2 WHERE ql2.question_id = questions.id AND ql2.user_id = ?) AS liked`
		return db.Select(selectClause, currentUserID)
	}
	return db.Select(selectClause)
}

func (r *questionRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Question, error) {
	var question models.Question
	err := r.applyQuestionDetails(r.db.WithContext(ctx).Model(&models.Question{}), currentUserID).
		Preload("User").
		Preload("Category").
		Preload("Tags").
		First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// List translates the filter into a query. Predicate
// composition follows the listing contract: extracted tag names use IN
// semantics, title terms OR together, and the title predicate is vacuous when
// tags were extracted but no terms remain. Window and scope always AND in.
func (r *questionRepository) List(ctx context.Context, f search.Filter) ([]*models.Question, error) {
	db := r.db.WithContext(ctx).Model(&models.Question{}).
		Preload("User").
		Preload("Category").
		Preload("Tags")

	if len(f.TagNames) > 0 {
		db = db.
			Joins("JOIN question_tags ON question_tags.question_id = questions.id").
			Joins("JOIN tags ON tags.id = question_tags.tag_id").
			Where("tags.name IN ?", f.TagNames).
			Distinct("questions.*")
	}

	if len(f.TitleTerms) > 0 {
		clauses := make([]string, 0, len(f.TitleTerms))
		args := make([]interface{}, 0, len(f.TitleTerms))
		for _, term := range f.TitleTerms {
			clauses = append(clauses, `LOWER(questions.title) LIKE ? ESCAPE '\'`)
			args = append(args, "%"+likeEscaper.Replace(strings.ToLower(term))+"%")
		}
		db = db.Where(strings.Join(clauses, " OR "), args...)
	}

	if from, to, ok := f.Window.Bounds(r.now()); ok {
		db = db.Where("questions.created_at >= ?", from)
		if !to.IsZero() {
			db = db.Where("questions.created_at < ?", to)
		}
	}

	db = applyScope(db, f.Scope)

	db = db.Order("questions.created_at DESC, questions.id DESC")
	if f.Limit > 0 {
		db = db.Limit(f.Limit).Offset(f.Offset)
	}

	var questions []*models.Question
	if err := db.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// ListWithComments fetches questions in scope with their comments in creation
// order, for export rendering.
func (r *questionRepository) ListWithComments(ctx context.Context, scope search.Scope) ([]*models.Question, error) {
	db := r.db.WithContext(ctx).Model(&models.Question{}).
		Preload("User").
		Preload("Category").
		Preload("Tags").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		})

	db = applyScope(db, scope)

	var questions []*models.Question
	if err := db.Order("questions.created_at DESC, questions.id DESC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// applyScope restricts the query to one tag or one category. The tag scope
// uses a subquery so it never collides with the search-tag join.
func applyScope(db *gorm.DB, scope search.Scope) *gorm.DB {
	switch scope.Kind {
	case search.ScopeTag:
		return db.Where(
			"questions.id IN (SELECT qt.question_id FROM question_tags qt JOIN tags t ON t.id = qt.tag_id WHERE t.name = ?)",
			scope.Name,
		)
	case search.ScopeCategory:
		return db.Where(
			"questions.category_id IN (SELECT id FROM categories WHERE name = ?)",
			scope.Name,
		)
	}
	return db
}

func (r *questionRepository) Update(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).
		Model(question).
		Select("Title", "Content", "CategoryID").
		Updates(question).Error
}

// ReplaceTags swaps the question's tag set for the given one.
func (r *questionRepository) ReplaceTags(ctx context.Context, question *models.Question, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(question).Association("Tags").Replace(tags)
}

// Delete removes the question and, in the same transaction, its comments'
// like rows, its comments, its reports, its own like rows, and its tag rows.
func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM comment_likes WHERE comment_id IN (SELECT id FROM comments WHERE question_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM question_likes WHERE question_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM question_tags WHERE question_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, id).Error
	})
}

func (r *questionRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *questionRepository) CountLikedBy(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("question_likes").
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *questionRepository) IsLiked(ctx context.Context, userID, questionID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("question_likes").
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Count(&count).Error
	return count > 0, err
}

func (r *questionRepository) Like(ctx context.Context, userID, questionID uint) error {
	return r.db.WithContext(ctx).
		Exec("INSERT INTO question_likes (user_id, question_id) VALUES (?, ?)", userID, questionID).Error
}

func (r *questionRepository) Unlike(ctx context.Context, userID, questionID uint) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM question_likes WHERE user_id = ? AND question_id = ?", userID, questionID).Error
}
