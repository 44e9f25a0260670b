package server

import (
	"io"
	"os"

	"photoshare/internal/models"
	"photoshare/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadPhoto handles POST /api/photos (multipart, protected)
// @Summary Upload a photo
// @Tags photos
// @Accept mpfd
// @Produce json
// @Param photo formData file true "Photo file"
// @Success 201 {object} models.Photo
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /photos [post]
func (s *Server) UploadPhoto(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	photo, err := s.photoService.Upload(ctx, service.UploadPhotoInput{
		UserID:   userID,
		FileName: fileHeader.Filename,
		Content:  content,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(photo)
}

// ServePhotoFile streams a stored photo blob by file name (public)
// @Summary Serve a photo file
// @Tags photos
// @Produce octet-stream
// @Param file path string true "Stored file name"
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Router /photos/{file} [get]
func (s *Server) ServePhotoFile(c *fiber.Ctx) error {
	fileName := c.Params("file")

	path, err := s.store.Path(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Photo", fileName))
		}
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid file name"))
	}
	return c.SendFile(path)
}

// GetUserPhotos returns all photos owned by a user (protected)
// @Summary List a user's photos
// @Tags photos
// @Produce json
// @Param id path int true "User ID"
// @Param includeLikes query bool false "Decorate each photo with like count and viewer's like status"
// @Success 200 {array} models.Photo
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/photos [get]
func (s *Server) GetUserPhotos(c *fiber.Ctx) error {
	ctx := c.UserContext()
	currentUserID := c.Locals("userID").(uint)

	ownerID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	includeLikes := c.QueryBool("includeLikes", false)

	photos, err := s.photoService.ListUserPhotos(ctx, ownerID, currentUserID, includeLikes)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	// An empty gallery is a valid gallery.
	if photos == nil {
		photos = []*models.Photo{}
	}
	return c.JSON(photos)
}

// GetPhotoUsage returns the most recent and most commented photo for a user (public)
// @Summary Photo usage summary
// @Tags photos
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.PhotoUsage
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/photos/usage [get]
func (s *Server) GetPhotoUsage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	usage, err := s.photoService.PhotoUsage(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(usage)
}

// GetUserMentions returns the photos whose comments mention the user (protected)
// @Summary Photos mentioning a user
// @Description Each photo carries only the comments that mention the user
// @Tags photos
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.Photo
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/mentions [get]
func (s *Server) GetUserMentions(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	photos, err := s.photoService.MentionedPhotos(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if photos == nil {
		photos = []*models.Photo{}
	}
	return c.JSON(photos)
}

// LikePhoto records a like on a photo (protected)
// @Summary Like a photo
// @Tags photos
// @Produce json
// @Param id path int true "Photo ID"
// @Success 200 {object} object{likes=int}
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /photos/{id}/like [post]
func (s *Server) LikePhoto(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	photoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likes, err := s.photoService.AddLike(ctx, userID, photoID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"likes": likes})
}

// UnlikePhoto removes the caller's like from a photo (protected)
// @Summary Unlike a photo
// @Tags photos
// @Produce json
// @Param id path int true "Photo ID"
// @Success 200 {object} object{likes=int}
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /photos/{id}/like [delete]
func (s *Server) UnlikePhoto(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	photoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likes, err := s.photoService.RemoveLike(ctx, userID, photoID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"likes": likes})
}

// DeletePhoto removes a photo the caller owns (protected)
// @Summary Delete a photo
// @Tags photos
// @Produce json
// @Param id path int true "Photo ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /photos/{id} [delete]
func (s *Server) DeletePhoto(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	photoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.photoService.DeletePhoto(ctx, userID, photoID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Photo deleted"})
}
