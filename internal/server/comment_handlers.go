package server

import (
	"photoshare/internal/models"
	"photoshare/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment appends a comment to a photo (protected)
// @Summary Comment on a photo
// @Description Mentioned user ids are validated; unknown ids are dropped silently
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Photo ID"
// @Param request body object{comment=string,mentions=[]int} true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /photos/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	photoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Comment  string `json:"comment"`
		Mentions []uint `json:"mentions"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.commentService.AddComment(ctx, service.AddCommentInput{
		UserID:     userID,
		PhotoID:    photoID,
		Text:       req.Comment,
		MentionIDs: req.Mentions,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// DeleteComment removes a comment from a photo (author only, protected)
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Param id path int true "Photo ID"
// @Param commentId path int true "Comment ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /photos/{id}/comments/{commentId} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	photoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(ctx, service.DeleteCommentInput{
		UserID:    userID,
		PhotoID:   photoID,
		CommentID: commentID,
	}); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
