package server

import (
	"fmt"
	"net/url"

	"stackbase/internal/models"
	"stackbase/internal/search"

	"github.com/gofiber/fiber/v2"
)

// ExportThreadText handles GET /questions/:id/export/
// It streams the question and its comments as a plain-text attachment.
func (s *Server) ExportThreadText(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	data, filename, err := s.exportService.ThreadText(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// ExportQuestionsCSV handles the CSV download for the home, tag and category
// listings. The scope comes from whichever route parameter is present.
func (s *Server) ExportQuestionsCSV(c *fiber.Ctx) error {
	ctx := c.UserContext()

	scope := search.Scope{}
	if raw := c.Params("tag"); raw != "" {
		tag, err := url.PathUnescape(raw)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid tag name"))
		}
		scope = search.TagScope(tag)
	} else if raw := c.Params("category"); raw != "" {
		category, err := url.PathUnescape(raw)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid category name"))
		}
		scope = search.CategoryScope(category)
	}

	data, filename, err := s.exportService.QuestionsCSV(ctx, scope)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
