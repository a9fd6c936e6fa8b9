package server

import (
	"stackbase/internal/models"
	"stackbase/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReport handles POST /questions/:id/report
func (s *Server) CreateReport(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	questionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason      string `json:"reason"`
		Description string `json:"description"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	created, err := s.reportService.CreateReport(ctx, service.CreateReportInput{
		UserID:      userID,
		QuestionID:  questionID,
		Reason:      req.Reason,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListQuestionReports handles GET /questions/:id/reports/ (admin only)
func (s *Server) ListQuestionReports(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	questionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	admin, err := s.isAdminByUserID(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !admin {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You do not have permission to view reports"))
	}

	reports, err := s.reportService.ListReports(ctx, questionID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(reports)
}
