// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"photoshare/internal/cache"
	"photoshare/internal/models"

	"gorm.io/gorm"
)

// PhotoRepository defines the interface for photo data operations
type PhotoRepository interface {
	Create(ctx context.Context, photo *models.Photo) error
	GetByID(ctx context.Context, id uint) (*models.Photo, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.Photo, error)
	GetByMentionedUser(ctx context.Context, userID uint) ([]*models.Photo, error)
	AppendComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, photoID, commentID uint) (*models.Comment, error)
	RemoveComment(ctx context.Context, photoID, commentID uint) error
	AddLike(ctx context.Context, userID, photoID uint) error
	RemoveLike(ctx context.Context, userID, photoID uint) (bool, error)
	CountLikes(ctx context.Context, photoID uint) (int64, error)
	IsLiked(ctx context.Context, userID, photoID uint) (bool, error)
	LikedPhotoIDs(ctx context.Context, userID uint, photoIDs []uint) ([]uint, error)
	Delete(ctx context.Context, id uint) error
	PullUserReferences(ctx context.Context, userID uint) error
}

// photoRepository implements PhotoRepository
type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *models.Photo) error {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, photo.UserID)
	return nil
}

// preloadDetails loads the full aggregate: comments with their authors and
// mention sets, plus the raw like rows.
func (r *photoRepository) preloadDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("date_time ASC")
		}).
		Preload("Comments.User").
		Preload("Comments.Mentions").
		Preload("Likes")
}

func (r *photoRepository) GetByID(ctx context.Context, id uint) (*models.Photo, error) {
	var photo models.Photo
	if err := r.preloadDetails(r.db.WithContext(ctx)).First(&photo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Photo", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &photo, nil
}

func (r *photoRepository) GetByUserID(ctx context.Context, userID uint) ([]*models.Photo, error) {
	var photos []*models.Photo
	if err := r.preloadDetails(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("date_time DESC").
		Find(&photos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return photos, nil
}

// GetByMentionedUser returns the photos that carry at least one comment
// mentioning the user. Each returned photo holds ONLY its mentioning
// comments; the rest of the aggregate is deliberately not loaded.
func (r *photoRepository) GetByMentionedUser(ctx context.Context, userID uint) ([]*models.Photo, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Joins("JOIN comment_mentions ON comment_mentions.comment_id = comments.id").
		Where("comment_mentions.user_id = ?", userID).
		Preload("User").
		Order("comments.date_time ASC").
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(comments) == 0 {
		return []*models.Photo{}, nil
	}

	photoIDs := make([]uint, 0, len(comments))
	seen := map[uint]struct{}{}
	for _, c := range comments {
		if _, ok := seen[c.PhotoID]; ok {
			continue
		}
		seen[c.PhotoID] = struct{}{}
		photoIDs = append(photoIDs, c.PhotoID)
	}

	var photos []*models.Photo
	if err := r.db.WithContext(ctx).
		Where("id IN ?", photoIDs).
		Order("date_time DESC").
		Find(&photos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	byPhoto := make(map[uint][]models.Comment, len(photos))
	for _, c := range comments {
		byPhoto[c.PhotoID] = append(byPhoto[c.PhotoID], c)
	}
	for _, p := range photos {
		p.Comments = byPhoto[p.ID]
	}
	return photos, nil
}

func (r *photoRepository) AppendComment(ctx context.Context, comment *models.Comment) error {
	// Create persists the comment row and its comment_mentions join rows in
	// one go via the association.
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *photoRepository) GetComment(ctx context.Context, photoID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND photo_id = ?", commentID, photoID).
		First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", commentID)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *photoRepository) RemoveComment(ctx context.Context, photoID, commentID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM comment_mentions WHERE comment_id = ?", commentID).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND photo_id = ?", commentID, photoID).
			Delete(&models.Comment{}).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *photoRepository) AddLike(ctx context.Context, userID, photoID uint) error {
	like := models.Like{UserID: userID, PhotoID: photoID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Photo already liked")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateLikeCount(ctx, photoID)
	return nil
}

func (r *photoRepository) RemoveLike(ctx context.Context, userID, photoID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND photo_id = ?", userID, photoID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateLikeCount(ctx, photoID)
		return true, nil
	}
	return false, nil
}

func (r *photoRepository) CountLikes(ctx context.Context, photoID uint) (int64, error) {
	var count int64
	err := cache.Aside(ctx, cache.LikeCountKey(photoID), &count, cache.LikeCountTTL, func() error {
		if err := r.db.WithContext(ctx).
			Model(&models.Like{}).
			Where("photo_id = ?", photoID).
			Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *photoRepository) IsLiked(ctx context.Context, userID, photoID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND photo_id = ?", userID, photoID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *photoRepository) LikedPhotoIDs(ctx context.Context, userID uint, photoIDs []uint) ([]uint, error) {
	if len(photoIDs) == 0 {
		return nil, nil
	}
	var liked []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND photo_id IN ?", userID, photoIDs).
		Pluck("photo_id", &liked).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return liked, nil
}

// Delete removes the photo together with its comments, likes, and mention
// join rows. The aggregate has no independent children, so everything goes.
func (r *photoRepository) Delete(ctx context.Context, id uint) error {
	var userID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var photo models.Photo
		if err := tx.First(&photo, id).Error; err != nil {
			return err
		}
		userID = photo.UserID

		if err := tx.Exec(
			"DELETE FROM comment_mentions WHERE comment_id IN (SELECT id FROM comments WHERE photo_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Photo{}, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Photo", id)
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateLikeCount(ctx, id)
	cache.InvalidateUser(ctx, userID)
	return nil
}

// PullUserReferences removes every trace of the user from other users'
// photos: comments they authored (with mention joins), likes they placed,
// and mention rows pointing at them. Each statement is idempotent so the
// cascade can be retried safely.
func (r *photoRepository) PullUserReferences(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM comment_mentions WHERE comment_id IN (SELECT id FROM comments WHERE user_id = ?)", userID,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Exec("DELETE FROM comment_mentions WHERE user_id = ?", userID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
