// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"stackbase/internal/config"
	"stackbase/internal/database"
	"stackbase/internal/middleware"
	"stackbase/internal/repository"
	"stackbase/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	promMiddleware *fiberprometheus.FiberPrometheus

	questionRepo repository.QuestionRepository
	commentRepo  repository.CommentRepository
	profileRepo  repository.ProfileRepository
	taxonomyRepo repository.TaxonomyRepository
	reportRepo   repository.ReportRepository
	userRepo     repository.UserRepository

	scoreService    *service.ScoreService
	questionService *service.QuestionService
	commentService  *service.CommentService
	reportService   *service.ReportService
	exportService   *service.ExportService
	profileService  *service.ProfileService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return NewServerWithDeps(cfg, db)
}

// NewServerWithDeps creates a Server using an already-initialized database.
// Tests use this directly.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) (*Server, error) {
	middleware.InitMiddleware(cfg)

	server := &Server{
		config:         cfg,
		db:             db,
		promMiddleware: middleware.InitMetrics("stackbase-api"),
		questionRepo:   repository.NewQuestionRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		profileRepo:    repository.NewProfileRepository(db),
		taxonomyRepo:   repository.NewTaxonomyRepository(db),
		reportRepo:     repository.NewReportRepository(db),
		userRepo:       repository.NewUserRepository(db),
	}

	server.scoreService = service.NewScoreService(server.questionRepo, server.commentRepo, server.profileRepo)
	server.questionService = service.NewQuestionService(server.questionRepo, server.taxonomyRepo, server.scoreService, server.isAdminByUserID)
	server.commentService = service.NewCommentService(server.commentRepo, server.questionRepo, server.scoreService)
	server.reportService = service.NewReportService(server.reportRepo, server.questionRepo)
	server.exportService = service.NewExportService(server.questionRepo, server.commentRepo, server.taxonomyRepo)
	server.profileService = service.NewProfileService(server.profileRepo, cfg.UploadDir)

	return server, nil
}

// isAdminByUserID checks the persisted admin flag, not the token claim, so a
// revoked admin loses privileges as soon as the row changes.
func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for log correlation
	app.Use(requestid.New())

	// Propagate request ID and user ID into the request context
	app.Use(middleware.ContextMiddleware())

	// Prometheus HTTP metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS before middlewares that can short-circuit, so browser clients
	// still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	questions := app.Group("/questions")
	questions.Get("/", middleware.OptionalAuth, s.ListQuestions)
	questions.Post("/new/", middleware.AuthRequired, s.CreateQuestion)
	questions.Get("/export_data/", s.ExportQuestionsCSV)
	questions.Get("/tags/:tag/export_data/", s.ExportQuestionsCSV)
	questions.Get("/tags/:tag/", middleware.OptionalAuth, s.ListQuestionsByTag)
	questions.Get("/category/:category/export_data/", s.ExportQuestionsCSV)
	questions.Get("/category/:category/", middleware.OptionalAuth, s.ListQuestionsByCategory)
	questions.Get("/:id/", middleware.OptionalAuth, s.GetQuestion)
	questions.Put("/:id/update/", middleware.AuthRequired, s.UpdateQuestion)
	questions.Patch("/:id/update/", middleware.AuthRequired, s.UpdateQuestion)
	questions.Delete("/:id/delete/", middleware.AuthRequired, s.DeleteQuestion)
	questions.Post("/:id/comment/", middleware.AuthRequired, s.CreateComment)
	questions.Get("/:id/export/", s.ExportThreadText)
	questions.Post("/:id/report", middleware.AuthRequired, s.CreateReport)
	questions.Get("/:id/reports/", middleware.AuthRequired, s.ListQuestionReports)

	app.Post("/like/:id", middleware.AuthRequired, s.ToggleQuestionLike)
	app.Post("/like-comment/:id/", middleware.AuthRequired, s.ToggleCommentLike)

	app.Get("/get_tags/", s.GetCategoryTags)
	app.Get("/categories/", s.ListCategories)
	app.Get("/leaderboard/", s.Leaderboard)

	app.Get("/profile/", middleware.AuthRequired, s.GetProfile)
	app.Put("/profile/", middleware.AuthRequired, s.UpdateProfile)
	app.Post("/profile/image", middleware.AuthRequired, s.UploadProfileImage)
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether the store is reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}
