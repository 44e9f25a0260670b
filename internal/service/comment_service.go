package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"time"

	"photoshare/internal/models"
	"photoshare/internal/repository"
)

const maxCommentLen = 10000

// mentionMarkup matches @[display name](userID) references embedded in
// comment text by the client.
var mentionMarkup = regexp.MustCompile(`@\[(.+?)\]\((.+?)\)`)

type CommentService struct {
	photoRepo repository.PhotoRepository
	userRepo  repository.UserRepository
}

type AddCommentInput struct {
	UserID     uint
	PhotoID    uint
	Text       string
	MentionIDs []uint
}

type DeleteCommentInput struct {
	UserID    uint
	PhotoID   uint
	CommentID uint
}

func NewCommentService(photoRepo repository.PhotoRepository, userRepo repository.UserRepository) *CommentService {
	return &CommentService{photoRepo: photoRepo, userRepo: userRepo}
}

// AddComment appends a comment to a photo. Mentioned users are validated
// individually; ids that do not resolve to a user are silently dropped so a
// stale mention never blocks the comment itself.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if in.Text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if _, err := s.photoRepo.GetByID(ctx, in.PhotoID); err != nil {
		return nil, err
	}
	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	mentionIDs := in.MentionIDs
	if len(mentionIDs) == 0 {
		mentionIDs = ParseMentionIDs(in.Text)
	}
	mentions, err := s.resolveMentions(ctx, mentionIDs)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PhotoID:  in.PhotoID,
		UserID:   in.UserID,
		Text:     in.Text,
		DateTime: time.Now(),
		Mentions: mentions,
	}
	if err := s.photoRepo.AppendComment(ctx, comment); err != nil {
		return nil, err
	}
	comment.User = *author
	return comment, nil
}

// resolveMentions keeps only ids that belong to existing users, preserving
// order and dropping duplicates.
func (s *CommentService) resolveMentions(ctx context.Context, ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	mentions := make([]models.User, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
				continue
			}
			return nil, err
		}
		mentions = append(mentions, *user)
	}
	return mentions, nil
}

// ParseMentionIDs extracts user ids from @[name](id) markup in the text.
// Non-numeric ids are ignored.
func ParseMentionIDs(text string) []uint {
	matches := mentionMarkup.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(matches))
	for _, m := range matches {
		id, err := strconv.ParseUint(m[2], 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

// DeleteComment removes a comment from a photo. Only the comment's author
// may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.photoRepo.GetComment(ctx, in.PhotoID, in.CommentID)
	if err != nil {
		return err
	}
	if comment.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.photoRepo.RemoveComment(ctx, in.PhotoID, in.CommentID)
}
