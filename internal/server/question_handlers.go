package server

import (
	"net/url"

	"stackbase/internal/models"
	"stackbase/internal/observability"
	"stackbase/internal/search"
	"stackbase/internal/service"

	"github.com/gofiber/fiber/v2"
)

// questionBody is the JSON payload for creating or updating a question.
type questionBody struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID *uint  `json:"category_id"`
	TagIDs     []uint `json:"tag_ids"`
}

// listQuestions runs the shared listing flow for the home, tag and category views.
func (s *Server) listQuestions(c *fiber.Ctx, scope search.Scope) error {
	ctx := c.UserContext()

	tab := c.Query("tab")
	f := search.NewFilter(c.Query("search-bar"), tab, scope)
	f.Limit = c.QueryInt("limit", 0)
	f.Offset = c.QueryInt("offset", 0)
	if f.Limit < 0 {
		f.Limit = 0
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	observability.QuestionListings.WithLabelValues(tabLabel(f.Window)).Inc()

	questions, err := s.questionService.ListQuestions(ctx, f)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(questions)
}

func tabLabel(w search.Window) string {
	switch w {
	case search.WindowToday:
		return "today"
	case search.WindowWeek:
		return "week"
	case search.WindowMonth:
		return "month"
	default:
		return "all"
	}
}

// ListQuestions handles GET /questions/
func (s *Server) ListQuestions(c *fiber.Ctx) error {
	return s.listQuestions(c, search.Scope{})
}

// ListQuestionsByTag handles GET /questions/tags/:tag/
func (s *Server) ListQuestionsByTag(c *fiber.Ctx) error {
	tag, err := url.PathUnescape(c.Params("tag"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid tag name"))
	}
	return s.listQuestions(c, search.TagScope(tag))
}

// ListQuestionsByCategory handles GET /questions/category/:category/
func (s *Server) ListQuestionsByCategory(c *fiber.Ctx) error {
	category, err := url.PathUnescape(c.Params("category"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid category name"))
	}
	return s.listQuestions(c, search.CategoryScope(category))
}

// GetQuestion handles GET /questions/:id/
func (s *Server) GetQuestion(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	question, err := s.questionService.GetQuestion(ctx, id, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	comments, err := s.commentService.ListComments(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"question": question,
		"comments": comments,
	})
}

// CreateQuestion handles POST /questions/new/
func (s *Server) CreateQuestion(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req questionBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	created, err := s.questionService.CreateQuestion(ctx, service.CreateQuestionInput{
		UserID:     userID,
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateQuestion handles PUT/PATCH /questions/:id/update/
func (s *Server) UpdateQuestion(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req questionBody
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	updated, err := s.questionService.UpdateQuestion(ctx, service.UpdateQuestionInput{
		UserID:     userID,
		QuestionID: id,
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(updated)
}

// DeleteQuestion handles DELETE /questions/:id/delete/
func (s *Server) DeleteQuestion(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.questionService.DeleteQuestion(ctx, userID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleQuestionLike handles POST /like/:id
func (s *Server) ToggleQuestionLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.questionService.ToggleQuestionLike(ctx, userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"question_id": id,
		"liked":       liked,
	})
}
