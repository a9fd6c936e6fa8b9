package server

import (
	"io"

	"stackbase/internal/models"
	"stackbase/internal/service"

	"github.com/gofiber/fiber/v2"
)

// maxImageUploadSize caps profile image uploads at 5MB.
const maxImageUploadSize = 5 * 1024 * 1024

// GetProfile handles GET /profile/
func (s *Server) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	profile, err := s.profileService.GetProfile(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile handles PUT /profile/
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Bio   string `json:"bio"`
		Phone string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateProfile(ctx, service.UpdateProfileInput{
		UserID: userID,
		Bio:    req.Bio,
		Phone:  req.Phone,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UploadProfileImage handles POST /profile/image
// The image arrives as a multipart form file named "image".
func (s *Server) UploadProfileImage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Image file is required"))
	}
	if fileHeader.Size > maxImageUploadSize {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Image file is too large"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Could not read image file"))
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageUploadSize+1))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	path, err := s.profileService.SaveImage(ctx, userID, data)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"image": path})
}

// Leaderboard handles GET /leaderboard/
func (s *Server) Leaderboard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		limit = 0
	}

	profiles, err := s.profileService.Leaderboard(ctx, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profiles)
}
