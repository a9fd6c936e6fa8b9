// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"stackbase/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user with its profile.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}

	profile := &models.Profile{
		UserID: user.ID,
		Bio:    gofakeit.Sentence(10),
		Phone:  gofakeit.Phone(),
	}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildQuestion constructs a question without persisting it. The created_at
// timestamp is spread over the past maxDays so the time-window tabs have
// something to show.
func (f *Factory) BuildQuestion(user *models.User, category *models.Category, maxDays int) *models.Question {
	title := strings.TrimSuffix(gofakeit.Question(), "?")
	if len(title) < 12 {
		title = title + " in " + gofakeit.BuzzWord()
	}

	question := &models.Question{
		Title:   title,
		Content: gofakeit.Paragraph(1, 3, 8, "\n"),
		UserID:  user.ID,
	}
	if category != nil {
		question.CategoryID = &category.ID
		if len(category.Tags) > 0 {
			picked := f.rand.Intn(len(category.Tags)) + 1
			question.Tags = append(question.Tags, category.Tags[:picked]...)
		}
	}

	if maxDays <= 0 {
		maxDays = 30
	}
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	question.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)
	return question
}

// CreateQuestionsBatch persists multiple questions in a single DB call.
func (f *Factory) CreateQuestionsBatch(questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return f.db.Create(&questions).Error
}

// CreateComment persists a comment by the given user on the given question.
func (f *Factory) CreateComment(user *models.User, question *models.Question) (*models.Comment, error) {
	comment := &models.Comment{
		QuestionID: question.ID,
		UserID:     user.ID,
		Name:       user.Username,
		Content:    gofakeit.Sentence(12),
		CreatedAt:  question.CreatedAt.Add(time.Duration(f.rand.Intn(720)) * time.Minute),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// LikeQuestion records a like without duplicating existing rows.
func (f *Factory) LikeQuestion(user *models.User, question *models.Question) error {
	var count int64
	if err := f.db.Table("question_likes").
		Where("question_id = ? AND user_id = ?", question.ID, user.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return f.db.Exec(
		"INSERT INTO question_likes (question_id, user_id) VALUES (?, ?)",
		question.ID, user.ID,
	).Error
}

// LikeComment records a like without duplicating existing rows.
func (f *Factory) LikeComment(user *models.User, comment *models.Comment) error {
	var count int64
	if err := f.db.Table("comment_likes").
		Where("comment_id = ? AND user_id = ?", comment.ID, user.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return f.db.Exec(
		"INSERT INTO comment_likes (comment_id, user_id) VALUES (?, ?)",
		comment.ID, user.ID,
	).Error
}
