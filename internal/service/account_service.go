package service

import (
	"context"
	"log/slog"

	"photoshare/internal/middleware"
	"photoshare/internal/models"
	"photoshare/internal/repository"
	"photoshare/internal/storage"
)

// AccountService owns the account deletion cascade.
type AccountService struct {
	userRepo  repository.UserRepository
	photoRepo repository.PhotoRepository
	store     *storage.DiskStore
}

func NewAccountService(userRepo repository.UserRepository, photoRepo repository.PhotoRepository, store *storage.DiskStore) *AccountService {
	return &AccountService{userRepo: userRepo, photoRepo: photoRepo, store: store}
}

// DeleteAccount removes a user and every trace of them. Steps run in a fixed
// order and each one is idempotent, so a failed run can be retried without
// harm: owned photos (blobs then records) go first, then comments and likes
// on other users' photos, then the user record itself. Blob removal failures
// are logged and skipped; the records are authoritative.
func (s *AccountService) DeleteAccount(ctx context.Context, requesterID, targetID uint) error {
	if requesterID != targetID {
		return models.NewForbiddenError("You can only delete your own account")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	photos, err := s.photoRepo.GetByUserID(ctx, targetID)
	if err != nil {
		return err
	}
	for _, photo := range photos {
		if err := s.store.Remove(photo.FileName); err != nil {
			middleware.Logger.WarnContext(ctx, "blob removal failed during account deletion",
				slog.Uint64("photo_id", uint64(photo.ID)),
				slog.String("file_name", photo.FileName),
				slog.String("error", err.Error()))
		}
		if err := s.photoRepo.Delete(ctx, photo.ID); err != nil {
			return err
		}
	}

	if err := s.photoRepo.PullUserReferences(ctx, targetID); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return err
	}

	middleware.AccountDeletions.Inc()
	middleware.Logger.InfoContext(ctx, "account deleted",
		slog.Uint64("user_id", uint64(targetID)),
		slog.Int("photos_removed", len(photos)))
	return nil
}
