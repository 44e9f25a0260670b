package service

import (
	"context"
	"testing"

	"photoshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByLoginNameFn func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, *models.User) error
	deleteFn         func(context.Context, uint) error
	listFn           func(context.Context, int, int) ([]models.User, error)
	countFn          func(context.Context) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByLoginName(ctx context.Context, loginName string) (*models.User, error) {
	return s.getByLoginNameFn(ctx, loginName)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, LoginName: "user", FirstName: "First", LastName: "Last"}, nil
		},
		getByLoginNameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:         func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		listFn:           func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		countFn:          func(_ context.Context) (int64, error) { return 10, nil },
	}
}

// photoRepoStub is a stub for repository.PhotoRepository.
type photoRepoStub struct {
	createFn             func(context.Context, *models.Photo) error
	getByIDFn            func(context.Context, uint) (*models.Photo, error)
	getByUserIDFn        func(context.Context, uint) ([]*models.Photo, error)
	getByMentionedUserFn func(context.Context, uint) ([]*models.Photo, error)
	appendCommentFn      func(context.Context, *models.Comment) error
	getCommentFn         func(context.Context, uint, uint) (*models.Comment, error)
	removeCommentFn      func(context.Context, uint, uint) error
	addLikeFn            func(context.Context, uint, uint) error
	removeLikeFn         func(context.Context, uint, uint) (bool, error)
	countLikesFn         func(context.Context, uint) (int64, error)
	isLikedFn            func(context.Context, uint, uint) (bool, error)
	likedPhotoIDsFn      func(context.Context, uint, []uint) ([]uint, error)
	deleteFn             func(context.Context, uint) error
	pullUserRefsFn       func(context.Context, uint) error
}

func (s *photoRepoStub) Create(ctx context.Context, photo *models.Photo) error {
	return s.createFn(ctx, photo)
}
func (s *photoRepoStub) GetByID(ctx context.Context, id uint) (*models.Photo, error) {
	return s.getByIDFn(ctx, id)
}
func (s *photoRepoStub) GetByUserID(ctx context.Context, userID uint) ([]*models.Photo, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *photoRepoStub) GetByMentionedUser(ctx context.Context, userID uint) ([]*models.Photo, error) {
	return s.getByMentionedUserFn(ctx, userID)
}
func (s *photoRepoStub) AppendComment(ctx context.Context, comment *models.Comment) error {
	return s.appendCommentFn(ctx, comment)
}
func (s *photoRepoStub) GetComment(ctx context.Context, photoID, commentID uint) (*models.Comment, error) {
	return s.getCommentFn(ctx, photoID, commentID)
}
func (s *photoRepoStub) RemoveComment(ctx context.Context, photoID, commentID uint) error {
	return s.removeCommentFn(ctx, photoID, commentID)
}
func (s *photoRepoStub) AddLike(ctx context.Context, userID, photoID uint) error {
	return s.addLikeFn(ctx, userID, photoID)
}
func (s *photoRepoStub) RemoveLike(ctx context.Context, userID, photoID uint) (bool, error) {
	return s.removeLikeFn(ctx, userID, photoID)
}
func (s *photoRepoStub) CountLikes(ctx context.Context, photoID uint) (int64, error) {
	return s.countLikesFn(ctx, photoID)
}
func (s *photoRepoStub) IsLiked(ctx context.Context, userID, photoID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, photoID)
}
func (s *photoRepoStub) LikedPhotoIDs(ctx context.Context, userID uint, photoIDs []uint) ([]uint, error) {
	return s.likedPhotoIDsFn(ctx, userID, photoIDs)
}
func (s *photoRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *photoRepoStub) PullUserReferences(ctx context.Context, userID uint) error {
	return s.pullUserRefsFn(ctx, userID)
}

func noopPhotoRepo() *photoRepoStub {
	return &photoRepoStub{
		createFn: func(_ context.Context, p *models.Photo) error {
			p.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Photo, error) {
			return &models.Photo{ID: id, UserID: 1, FileName: "U1a.jpg"}, nil
		},
		getByUserIDFn:        func(_ context.Context, _ uint) ([]*models.Photo, error) { return nil, nil },
		getByMentionedUserFn: func(_ context.Context, _ uint) ([]*models.Photo, error) { return nil, nil },
		appendCommentFn: func(_ context.Context, c *models.Comment) error {
			c.ID = 1
			return nil
		},
		getCommentFn: func(_ context.Context, photoID, commentID uint) (*models.Comment, error) {
			return &models.Comment{ID: commentID, PhotoID: photoID, UserID: 1}, nil
		},
		removeCommentFn: func(_ context.Context, _, _ uint) error { return nil },
		addLikeFn:       func(_ context.Context, _, _ uint) error { return nil },
		removeLikeFn:    func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		countLikesFn:    func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		isLikedFn:       func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likedPhotoIDsFn: func(_ context.Context, _ uint, _ []uint) ([]uint, error) { return nil, nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		pullUserRefsFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertErrorCode(t, err, models.CodeValidation)
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assertErrorCode(t, err, models.CodeConflict)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertErrorCode(t, err, models.CodeForbidden)
}
