package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"photoshare/internal/models"
	"photoshare/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPhotoService_Upload(t *testing.T) {
	t.Parallel()

	store := storage.NewDiskStore(t.TempDir())
	ctx := context.Background()

	t.Run("rejects empty content", func(t *testing.T) {
		svc := NewPhotoService(noopPhotoRepo(), noopUserRepo(), store, nil)
		_, err := svc.Upload(ctx, UploadPhotoInput{UserID: 1, FileName: "a.png"})
		assertValidationError(t, err)
	})

	t.Run("rejects non-image content", func(t *testing.T) {
		svc := NewPhotoService(noopPhotoRepo(), noopUserRepo(), store, nil)
		_, err := svc.Upload(ctx, UploadPhotoInput{
			UserID: 1, FileName: "a.png", Content: []byte("definitely not an image"),
		})
		assertValidationError(t, err)
	})

	t.Run("stores blob and creates record", func(t *testing.T) {
		var created *models.Photo
		photoRepo := noopPhotoRepo()
		photoRepo.createFn = func(_ context.Context, p *models.Photo) error {
			p.ID = 11
			created = p
			return nil
		}

		svc := NewPhotoService(photoRepo, noopUserRepo(), store, nil)
		photo, err := svc.Upload(ctx, UploadPhotoInput{
			UserID: 3, FileName: "vacation pic.png", Content: pngBytes(t, 4, 4),
		})
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, uint(11), photo.ID)
		assert.Equal(t, uint(3), photo.UserID)
		assert.Regexp(t, `^U\d+vacation_pic\.png$`, photo.FileName)

		_, err = store.Path(photo.FileName)
		assert.NoError(t, err)
	})

	t.Run("removes blob when record creation fails", func(t *testing.T) {
		photoRepo := noopPhotoRepo()
		photoRepo.createFn = func(_ context.Context, p *models.Photo) error {
			return models.NewInternalError(assert.AnError)
		}

		svc := NewPhotoService(photoRepo, noopUserRepo(), store, nil)
		_, err := svc.Upload(ctx, UploadPhotoInput{
			UserID: 3, FileName: "doomed.png", Content: pngBytes(t, 4, 4),
		})
		require.Error(t, err)
	})
}

func TestPhotoService_AddLike(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("success returns fresh count", func(t *testing.T) {
		photoRepo := noopPhotoRepo()
		liked := false
		photoRepo.addLikeFn = func(_ context.Context, _, _ uint) error {
			liked = true
			return nil
		}
		photoRepo.countLikesFn = func(_ context.Context, _ uint) (int64, error) {
			if liked {
				return 4, nil
			}
			return 3, nil
		}

		svc := NewPhotoService(photoRepo, noopUserRepo(), nil, nil)
		count, err := svc.AddLike(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})

	t.Run("duplicate like is a conflict", func(t *testing.T) {
		photoRepo := noopPhotoRepo()
		photoRepo.isLikedFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
		photoRepo.countLikesFn = func(_ context.Context, _ uint) (int64, error) { return 3, nil }

		svc := NewPhotoService(photoRepo, noopUserRepo(), nil, nil)
		count, err := svc.AddLike(ctx, 1, 2)
		assertConflictError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("like count capped at total users", func(t *testing.T) {
		userRepo := noopUserRepo()
		userRepo.countFn = func(_ context.Context) (int64, error) { return 5, nil }
		photoRepo := noopPhotoRepo()
		photoRepo.countLikesFn = func(_ context.Context, _ uint) (int64, error) { return 5, nil }

		svc := NewPhotoService(photoRepo, userRepo, nil, nil)
		_, err := svc.AddLike(ctx, 1, 2)
		assertErrorCode(t, err, models.CodeLimitExceeded)
	})

	t.Run("duplicate like at the cap is still a conflict", func(t *testing.T) {
		userRepo := noopUserRepo()
		userRepo.countFn = func(_ context.Context) (int64, error) { return 5, nil }
		photoRepo := noopPhotoRepo()
		photoRepo.countLikesFn = func(_ context.Context, _ uint) (int64, error) { return 5, nil }
		photoRepo.isLikedFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }

		svc := NewPhotoService(photoRepo, userRepo, nil, nil)
		_, err := svc.AddLike(ctx, 1, 2)
		assertConflictError(t, err)
	})

	t.Run("missing photo propagates", func(t *testing.T) {
		photoRepo := noopPhotoRepo()
		photoRepo.getByIDFn = func(_ context.Context, id uint) (*models.Photo, error) {
			return nil, models.NewNotFoundError("Photo", id)
		}
		svc := NewPhotoService(photoRepo, noopUserRepo(), nil, nil)
		_, err := svc.AddLike(ctx, 1, 99)
		assertErrorCode(t, err, models.CodeNotFound)
	})
}

func TestPhotoService_RemoveLike(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("success returns fresh count", func(t *testing.T) {
		photoRepo := noopPhotoRepo()
		photoRepo.countLikesFn = func(_ context.Context, _ uint) (int64, error) { return 2, nil }

		svc := NewPhotoService(photoRepo, noopUserRepo(), nil, nil)
		count, err := svc.RemoveLike(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("unliking a never-liked photo is a conflict", func(t *testing.T) {
		photoRepo := noopPhotoRepo()
		photoRepo.removeLikeFn = func(_ context.Context, _, _ uint) (bool, error) { return false, nil }

		svc := NewPhotoService(photoRepo, noopUserRepo(), nil, nil)
		_, err := svc.RemoveLike(ctx, 1, 2)
		assertConflictError(t, err)
	})
}

func TestPhotoService_DeletePhoto_OwnerOnly(t *testing.T) {
	t.Parallel()

	store := storage.NewDiskStore(t.TempDir())
	photoRepo := noopPhotoRepo()
	photoRepo.getByIDFn = func(_ context.Context, id uint) (*models.Photo, error) {
		return &models.Photo{ID: id, UserID: 7, FileName: "U1x.jpg"}, nil
	}

	svc := NewPhotoService(photoRepo, noopUserRepo(), store, nil)
	err := svc.DeletePhoto(context.Background(), 1, 3)
	assertForbiddenError(t, err)

	err = svc.DeletePhoto(context.Background(), 7, 3)
	assert.NoError(t, err)
}

func TestPhotoService_ListUserPhotos_UnknownOwner(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewPhotoService(noopPhotoRepo(), userRepo, nil, nil)
	_, err := svc.ListUserPhotos(context.Background(), 99, 1, false)
	assertErrorCode(t, err, models.CodeNotFound)
}

func TestPhotoService_ListUserPhotos_IncludeLikes(t *testing.T) {
	t.Parallel()

	photoRepo := noopPhotoRepo()
	photoRepo.getByUserIDFn = func(_ context.Context, _ uint) ([]*models.Photo, error) {
		return []*models.Photo{
			{ID: 1, UserID: 2, Likes: []models.Like{{UserID: 5, PhotoID: 1}}},
			{ID: 2, UserID: 2},
		}, nil
	}
	photoRepo.likedPhotoIDsFn = func(_ context.Context, userID uint, ids []uint) ([]uint, error) {
		assert.Equal(t, uint(5), userID)
		assert.Equal(t, []uint{1, 2}, ids)
		return []uint{1}, nil
	}

	svc := NewPhotoService(photoRepo, noopUserRepo(), nil, nil)
	photos, err := svc.ListUserPhotos(context.Background(), 2, 5, true)
	require.NoError(t, err)
	require.Len(t, photos, 2)

	assert.Equal(t, 1, photos[0].LikesCount)
	assert.True(t, photos[0].Liked)
	assert.False(t, photos[1].Liked)
}

func TestComputeUsage(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("no photos yields nil slots", func(t *testing.T) {
		usage := computeUsage(nil)
		assert.Nil(t, usage.MostRecentPhoto)
		assert.Nil(t, usage.MostCommentedPhoto)
	})

	t.Run("picks most recent and most commented", func(t *testing.T) {
		photos := []*models.Photo{
			{ID: 1, FileName: "a", DateTime: now.Add(-2 * time.Hour), Comments: []models.Comment{{}, {}, {}}},
			{ID: 2, FileName: "b", DateTime: now, Comments: []models.Comment{{}}},
			{ID: 3, FileName: "c", DateTime: now.Add(-1 * time.Hour)},
		}
		usage := computeUsage(photos)

		require.NotNil(t, usage.MostRecentPhoto)
		assert.Equal(t, uint(2), usage.MostRecentPhoto.ID)

		require.NotNil(t, usage.MostCommentedPhoto)
		assert.Equal(t, uint(1), usage.MostCommentedPhoto.ID)
		assert.Equal(t, 3, usage.MostCommentedPhoto.CommentsCount)
	})

	t.Run("ties keep the first photo encountered", func(t *testing.T) {
		photos := []*models.Photo{
			{ID: 1, FileName: "a", DateTime: now, Comments: []models.Comment{{}}},
			{ID: 2, FileName: "b", DateTime: now, Comments: []models.Comment{{}}},
		}
		usage := computeUsage(photos)
		assert.Equal(t, uint(1), usage.MostRecentPhoto.ID)
		assert.Equal(t, uint(1), usage.MostCommentedPhoto.ID)
	})
}
