package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder
	"os"
	"path/filepath"

	"stackbase/internal/models"
	"stackbase/internal/repository"

	xdraw "golang.org/x/image/draw"
	"gorm.io/gorm"
)

// maxProfileImageSize is the bounding box profile images are scaled to fit.
const maxProfileImageSize = 300

// jpegQuality for stored profile images.
const jpegQuality = 85

// ProfileService handles profile reads, edits, the leaderboard, and profile
// image storage.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	uploadDir   string
}

// UpdateProfileInput carries a user's edit of their own profile.
type UpdateProfileInput struct {
	UserID uint
	Bio    string
	Phone  string
}

// NewProfileService returns a new ProfileService storing images under uploadDir.
func NewProfileService(profileRepo repository.ProfileRepository, uploadDir string) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		uploadDir:   uploadDir,
	}
}

// GetProfile fetches a user's profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile for user", userID)
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile applies a user's bio/phone edit.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.GetProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	profile.Bio = in.Bio
	profile.Phone = in.Phone
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Leaderboard returns profiles ranked by score descending.
func (s *ProfileService) Leaderboard(ctx context.Context, limit int) ([]*models.Profile, error) {
	return s.profileRepo.Leaderboard(ctx, limit)
}

// SaveImage decodes an uploaded profile image, scales it down to fit the
// 300x300 bounding box when needed, stores it as JPEG, and records the path
// on the profile. Returns the stored path.
func (s *ProfileService) SaveImage(ctx context.Context, userID uint, data []byte) (string, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", models.NewValidationError("Unsupported image format")
	}

	img = fitImage(img, maxProfileImageSize)

	dir := filepath.Join(s.uploadDir, "profile_pic")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("user_%d.jpg", userID))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	profile.Image = path
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return "", err
	}
	return path, nil
}

// fitImage scales img down to fit a max-by-max box, preserving aspect ratio.
// Images already within the box are returned untouched.
func fitImage(img image.Image, max int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= max && height <= max {
		return img
	}

	scale := float64(max) / float64(width)
	if height > width {
		scale = float64(max) / float64(height)
	}
	newW := int(float64(width) * scale)
	newH := int(float64(height) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}
