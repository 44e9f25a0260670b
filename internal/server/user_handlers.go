package server

import (
	"photoshare/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile returns the public profile for a user (public)
// @Summary Get user profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.PublicProfile
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.userService.GetProfile(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(profile)
}

// GetAllUsers returns the id+name roster of every registered user (protected)
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.UserRef
// @Failure 401 {object} models.ErrorResponse
// @Router /users [get]
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := parsePagination(c, maxPaginationLimit)

	users, err := s.userService.ListUsers(ctx, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(users)
}

// DeleteUser removes the caller's account and everything attached to it (protected)
// @Summary Delete account
// @Description Cascading delete: owned photos with their files, comments and likes placed elsewhere, then the account itself
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	requesterID := c.Locals("userID").(uint)

	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.accountService.DeleteAccount(ctx, requesterID, targetID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	// The account is gone; its session must not outlive it.
	s.revokeToken(c)
	return c.JSON(fiber.Map{"message": "Account deleted"})
}
