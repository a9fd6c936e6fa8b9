package service

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"stackbase/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetProfile_Missing(t *testing.T) {
	t.Parallel()

	profileRepo := noopProfileRepo()
	profileRepo.getByUserIDFn = func(_ context.Context, _ uint) (*models.Profile, error) {
		return nil, gormNotFound()
	}
	svc := NewProfileService(profileRepo, t.TempDir())
	_, err := svc.GetProfile(context.Background(), 404)
	assertNotFoundError(t, err)
}

func TestProfileService_UpdateProfile(t *testing.T) {
	t.Parallel()

	var saved *models.Profile
	profileRepo := noopProfileRepo()
	profileRepo.updateFn = func(_ context.Context, p *models.Profile) error {
		saved = p
		return nil
	}

	svc := NewProfileService(profileRepo, t.TempDir())
	updated, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 3,
		Bio:    "Backend developer",
		Phone:  "555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend developer", updated.Bio)
	assert.Equal(t, "555-0100", updated.Phone)
	require.NotNil(t, saved)
	assert.Equal(t, uint(3), saved.UserID)
}

func TestProfileService_Leaderboard_PassesLimit(t *testing.T) {
	t.Parallel()

	var seenLimit int
	profileRepo := noopProfileRepo()
	profileRepo.leaderboardFn = func(_ context.Context, limit int) ([]*models.Profile, error) {
		seenLimit = limit
		return []*models.Profile{{UserID: 1, Score: 10}, {UserID: 2, Score: 4}}, nil
	}

	svc := NewProfileService(profileRepo, t.TempDir())
	profiles, err := svc.Leaderboard(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, 25, seenLimit)
	require.Len(t, profiles, 2)
	assert.GreaterOrEqual(t, profiles[0].Score, profiles[1].Score)
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func TestProfileService_SaveImage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores resized jpeg and records path", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		var saved *models.Profile
		profileRepo := noopProfileRepo()
		profileRepo.updateFn = func(_ context.Context, p *models.Profile) error {
			saved = p
			return nil
		}

		svc := NewProfileService(profileRepo, dir)
		path, err := svc.SaveImage(ctx, 4, pngBytes(t, 800, 600))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "profile_pic", "user_4.jpg"), path)
		require.NotNil(t, saved)
		assert.Equal(t, path, saved.Image)

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		img, err := jpeg.Decode(f)
		require.NoError(t, err)
		assert.LessOrEqual(t, img.Bounds().Dx(), 300)
		assert.LessOrEqual(t, img.Bounds().Dy(), 300)
	})

	t.Run("small image keeps its dimensions", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		svc := NewProfileService(noopProfileRepo(), dir)
		path, err := svc.SaveImage(ctx, 5, pngBytes(t, 120, 80))
		require.NoError(t, err)

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		img, err := jpeg.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, 120, img.Bounds().Dx())
		assert.Equal(t, 80, img.Bounds().Dy())
	})

	t.Run("rejects non-image data", func(t *testing.T) {
		t.Parallel()
		svc := NewProfileService(noopProfileRepo(), t.TempDir())
		_, err := svc.SaveImage(ctx, 6, []byte("definitely not an image"))
		assertValidationError(t, err)
	})
}

func TestFitImage_PreservesAspectRatio(t *testing.T) {
	t.Parallel()

	tall := image.NewRGBA(image.Rect(0, 0, 300, 600))
	fitted := fitImage(tall, 300)
	assert.Equal(t, 150, fitted.Bounds().Dx())
	assert.Equal(t, 300, fitted.Bounds().Dy())

	wide := image.NewRGBA(image.Rect(0, 0, 600, 300))
	fitted = fitImage(wide, 300)
	assert.Equal(t, 300, fitted.Bounds().Dx())
	assert.Equal(t, 150, fitted.Bounds().Dy())
}
