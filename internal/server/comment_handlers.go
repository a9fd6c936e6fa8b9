package server

import (
	"stackbase/internal/models"
	"stackbase/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /questions/:id/comment/
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	questionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	created, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		UserID:     userID,
		Username:   s.currentUsername(c),
		QuestionID: questionID,
		Content:    req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ToggleCommentLike handles POST /like-comment/:id/
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, questionID, err := s.commentService.ToggleCommentLike(ctx, userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"comment_id":  id,
		"question_id": questionID,
		"liked":       liked,
	})
}
