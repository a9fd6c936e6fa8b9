package server

import (
	"errors"

	"stackbase/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetCategoryTags handles GET /get_tags/?category_id=N
// It returns the tags selectable for the given category, or an empty list
// when the category is missing or unspecified.
func (s *Server) GetCategoryTags(c *fiber.Ctx) error {
	ctx := c.UserContext()

	tags := []fiber.Map{}
	if categoryID := c.QueryInt("category_id", 0); categoryID > 0 {
		category, err := s.taxonomyRepo.GetCategoryByID(ctx, uint(categoryID))
		switch {
		case err == nil:
			for _, tag := range category.Tags {
				tags = append(tags, fiber.Map{"id": tag.ID, "name": tag.Name})
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// unknown category yields an empty list
		default:
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}
	return c.JSON(tags)
}

// ListCategories handles GET /categories/
func (s *Server) ListCategories(c *fiber.Ctx) error {
	ctx := c.UserContext()

	categories, err := s.taxonomyRepo.ListCategories(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(categories)
}
