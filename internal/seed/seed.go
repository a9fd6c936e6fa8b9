package seed

import (
	"context"
	"fmt"
	"log"

	"stackbase/internal/models"
	"stackbase/internal/repository"
	"stackbase/internal/service"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	NumQuestions int
	MaxDays      int
	ShouldClean  bool
}

// categoryTags maps the default categories to their selectable tags.
var categoryTags = map[string][]string{
	"Programming": {"go", "python", "javascript", "databases", "debugging", "testing"},
	"DevOps":      {"docker", "kubernetes", "ci-cd", "monitoring", "linux"},
	"Web":         {"frontend", "backend", "http", "css", "security"},
	"Data":        {"sql", "analytics", "etl", "visualization"},
	"Career":      {"interviews", "resume", "remote-work", "learning"},
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d questions...", opts.NumUsers, opts.NumQuestions)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	categories, err := createOrGetCategories(db)
	if err != nil {
		return fmt.Errorf("failed to create categories: %w", err)
	}
	log.Printf("✓ %d categories available", len(categories))

	questions, err := createQuestions(factory, users, categories, opts)
	if err != nil {
		return fmt.Errorf("failed to create questions: %w", err)
	}
	log.Printf("✓ %d questions created", len(questions))

	comments, err := createComments(factory, users, questions)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", len(comments))

	if err := createLikes(factory, users, questions, comments); err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Println("✓ likes created")

	if err := recomputeScores(db, users); err != nil {
		return fmt.Errorf("failed to recompute scores: %w", err)
	}
	log.Println("✓ profile scores recomputed")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	tables := []string{
		"comment_likes",
		"question_likes",
		"question_tags",
		"reports",
		"comments",
		"questions",
		"category_tags",
		"tags",
		"categories",
		"profiles",
		"users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	if count <= 0 {
		count = 10
	}
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := factory.CreateUser(func(u *models.User) {
			if i == 0 {
				u.Username = "admin"
				u.IsAdmin = true
			}
		})
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// createOrGetCategories ensures the default taxonomy exists, reusing rows
// already present so re-seeding stays idempotent.
func createOrGetCategories(db *gorm.DB) ([]*models.Category, error) {
	categories := make([]*models.Category, 0, len(categoryTags))
	for name, tagNames := range categoryTags {
		var category models.Category
		err := db.Preload("Tags").Where("name = ?", name).First(&category).Error
		if err == gorm.ErrRecordNotFound {
			category = models.Category{Name: name}
			for _, tagName := range tagNames {
				var tag models.Tag
				if tagErr := db.Where("name = ?", tagName).
					FirstOrCreate(&tag, models.Tag{Name: tagName}).Error; tagErr != nil {
					return nil, tagErr
				}
				category.Tags = append(category.Tags, tag)
			}
			if createErr := db.Create(&category).Error; createErr != nil {
				return nil, createErr
			}
		} else if err != nil {
			return nil, err
		}
		cat := category
		categories = append(categories, &cat)
	}
	return categories, nil
}

func createQuestions(factory *Factory, users []*models.User, categories []*models.Category, opts Options) ([]*models.Question, error) {
	count := opts.NumQuestions
	if count <= 0 {
		count = 50
	}
	questions := make([]*models.Question, 0, count)
	for i := 0; i < count; i++ {
		user := users[factory.rand.Intn(len(users))]
		category := categories[factory.rand.Intn(len(categories))]
		questions = append(questions, factory.BuildQuestion(user, category, opts.MaxDays))
	}
	if err := factory.CreateQuestionsBatch(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func createComments(factory *Factory, users []*models.User, questions []*models.Question) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0, len(questions)*2)
	for _, question := range questions {
		for i := 0; i < factory.rand.Intn(4); i++ {
			user := users[factory.rand.Intn(len(users))]
			comment, err := factory.CreateComment(user, question)
			if err != nil {
				return nil, err
			}
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func createLikes(factory *Factory, users []*models.User, questions []*models.Question, comments []*models.Comment) error {
	for _, question := range questions {
		for i := 0; i < factory.rand.Intn(5); i++ {
			if err := factory.LikeQuestion(users[factory.rand.Intn(len(users))], question); err != nil {
				return err
			}
		}
	}
	for _, comment := range comments {
		for i := 0; i < factory.rand.Intn(3); i++ {
			if err := factory.LikeComment(users[factory.rand.Intn(len(users))], comment); err != nil {
				return err
			}
		}
	}
	return nil
}

// recomputeScores brings every seeded profile's activity score in line with
// the questions, comments and likes just created.
func recomputeScores(db *gorm.DB, users []*models.User) error {
	scores := service.NewScoreService(
		repository.NewQuestionRepository(db),
		repository.NewCommentRepository(db),
		repository.NewProfileRepository(db),
	)
	ctx := context.Background()
	for _, user := range users {
		if _, err := scores.Recompute(ctx, user.ID); err != nil {
			return err
		}
	}
	return nil
}
