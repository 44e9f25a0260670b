package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"photoshare/internal/config"
	"photoshare/internal/middleware"
	"photoshare/internal/models"
	"photoshare/internal/repository"
	"photoshare/internal/storage"
)

const DefaultPhotoMaxSizeMB = 10

type PhotoService struct {
	photoRepo          repository.PhotoRepository
	userRepo           repository.UserRepository
	store              *storage.DiskStore
	maxUploadSizeBytes int64
}

type UploadPhotoInput struct {
	UserID   uint
	FileName string
	Content  []byte
}

func NewPhotoService(photoRepo repository.PhotoRepository, userRepo repository.UserRepository, store *storage.DiskStore, cfg *config.Config) *PhotoService {
	maxSizeMB := DefaultPhotoMaxSizeMB
	if cfg != nil && cfg.PhotoMaxSizeMB > 0 {
		maxSizeMB = cfg.PhotoMaxSizeMB
	}
	return &PhotoService{
		photoRepo:          photoRepo,
		userRepo:           userRepo,
		store:              store,
		maxUploadSizeBytes: int64(maxSizeMB) * 1024 * 1024,
	}
}

// Upload validates and stores a new photo, then creates its record. The blob
// is written first; if the record cannot be created the blob is removed again.
func (s *PhotoService) Upload(ctx context.Context, in UploadPhotoInput) (*models.Photo, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}
	if _, err := storage.ValidateImage(in.Content); err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	now := time.Now()
	fileName := storage.GenerateFileName(in.FileName, now)

	if err := s.store.Put(fileName, in.Content); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := s.store.PutThumbnail(fileName, in.Content); err != nil {
		// The thumbnail is a nicety; the original is what matters.
		middleware.Logger.WarnContext(ctx, "thumbnail generation failed",
			slog.String("file_name", fileName),
			slog.String("error", err.Error()))
	}

	photo := &models.Photo{
		UserID:   in.UserID,
		FileName: fileName,
		DateTime: now,
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		_ = s.store.Remove(fileName)
		return nil, err
	}

	middleware.PhotoUploads.Inc()
	middleware.PhotoUploadBytes.Observe(float64(len(in.Content)))
	return photo, nil
}

// ListUserPhotos returns all photos owned by the user, newest first. A user
// with no photos gets an empty list, but an unknown user is an error.
func (s *PhotoService) ListUserPhotos(ctx context.Context, ownerID, currentUserID uint, includeLikes bool) ([]*models.Photo, error) {
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	photos, err := s.photoRepo.GetByUserID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var likedSet map[uint]struct{}
	if includeLikes && currentUserID != 0 && len(photos) > 0 {
		ids := make([]uint, len(photos))
		for i, p := range photos {
			ids[i] = p.ID
		}
		liked, err := s.photoRepo.LikedPhotoIDs(ctx, currentUserID, ids)
		if err != nil {
			return nil, err
		}
		likedSet = make(map[uint]struct{}, len(liked))
		for _, id := range liked {
			likedSet[id] = struct{}{}
		}
	}

	for _, p := range photos {
		if includeLikes {
			s.decorate(p, currentUserID, likedSet)
		}
	}
	return photos, nil
}

// MentionedPhotos returns the photos whose comments mention the user,
// carrying only the mentioning comments.
func (s *PhotoService) MentionedPhotos(ctx context.Context, userID uint) ([]*models.Photo, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.photoRepo.GetByMentionedUser(ctx, userID)
}

func (s *PhotoService) decorate(photo *models.Photo, currentUserID uint, likedSet map[uint]struct{}) {
	photo.LikesCount = len(photo.Likes)
	if likedSet != nil {
		_, photo.Liked = likedSet[photo.ID]
		return
	}
	if currentUserID == 0 {
		return
	}
	for _, l := range photo.Likes {
		if l.UserID == currentUserID {
			photo.Liked = true
			return
		}
	}
}

// AddLike records a like. A photo can never carry more likes than there are
// registered users, and a user can like a photo at most once.
func (s *PhotoService) AddLike(ctx context.Context, userID, photoID uint) (int64, error) {
	if _, err := s.photoRepo.GetByID(ctx, photoID); err != nil {
		return 0, err
	}

	likes, err := s.photoRepo.CountLikes(ctx, photoID)
	if err != nil {
		return 0, err
	}

	// The duplicate check comes first: when every registered user has liked
	// the photo, a repeat like is still a conflict, not a limit error.
	liked, err := s.photoRepo.IsLiked(ctx, userID, photoID)
	if err != nil {
		return 0, err
	}
	if liked {
		return likes, models.NewConflictError("Photo already liked")
	}

	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if likes >= totalUsers {
		return likes, models.NewLimitExceededError("Like limit reached for this photo")
	}

	// A concurrent like between the check and the insert surfaces here as a
	// unique violation, which the repository maps to the same Conflict.
	if err := s.photoRepo.AddLike(ctx, userID, photoID); err != nil {
		return likes, err
	}
	return s.photoRepo.CountLikes(ctx, photoID)
}

// RemoveLike removes the user's like. Unliking a photo that was never liked
// is a conflict, mirroring the duplicate-like case.
func (s *PhotoService) RemoveLike(ctx context.Context, userID, photoID uint) (int64, error) {
	if _, err := s.photoRepo.GetByID(ctx, photoID); err != nil {
		return 0, err
	}

	removed, err := s.photoRepo.RemoveLike(ctx, userID, photoID)
	if err != nil {
		return 0, err
	}
	if !removed {
		count, _ := s.photoRepo.CountLikes(ctx, photoID)
		return count, models.NewConflictError("Photo not liked")
	}
	return s.photoRepo.CountLikes(ctx, photoID)
}

// DeletePhoto removes a photo, its blob, and the whole embedded aggregate.
// Only the owner may delete. The blob goes first; a missing blob is fine.
func (s *PhotoService) DeletePhoto(ctx context.Context, userID, photoID uint) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.UserID != userID {
		return models.NewForbiddenError("You can only delete your own photos")
	}

	if err := s.store.Remove(photo.FileName); err != nil {
		middleware.Logger.WarnContext(ctx, "photo blob removal failed",
			slog.String("file_name", photo.FileName),
			slog.String("error", err.Error()))
	}
	return s.photoRepo.Delete(ctx, photoID)
}

// PhotoUsage computes the most recent and most commented photo for a user
// with a single linear scan over their photos. Ties keep the first photo
// encountered. Both slots are nil when the user owns no photos.
func (s *PhotoService) PhotoUsage(ctx context.Context, userID uint) (*models.PhotoUsage, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	photos, err := s.photoRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	usage := computeUsage(photos)
	return &usage, nil
}

func computeUsage(photos []*models.Photo) models.PhotoUsage {
	var usage models.PhotoUsage
	var mostRecent, mostCommented *models.Photo

	for _, p := range photos {
		if mostRecent == nil || p.DateTime.After(mostRecent.DateTime) {
			mostRecent = p
		}
		if mostCommented == nil || len(p.Comments) > len(mostCommented.Comments) {
			mostCommented = p
		}
	}

	if mostRecent != nil {
		usage.MostRecentPhoto = &models.PhotoSummary{
			ID:       mostRecent.ID,
			FileName: mostRecent.FileName,
			DateTime: mostRecent.DateTime,
		}
	}
	if mostCommented != nil {
		usage.MostCommentedPhoto = &models.PhotoSummary{
			ID:            mostCommented.ID,
			FileName:      mostCommented.FileName,
			DateTime:      mostCommented.DateTime,
			CommentsCount: len(mostCommented.Comments),
		}
	}
	return usage
}
