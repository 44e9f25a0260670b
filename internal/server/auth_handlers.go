// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"fmt"
	"strconv"
	"time"

	"photoshare/internal/cache"
	"photoshare/internal/models"
	"photoshare/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Register handles POST /api/users
// @Summary Register a new account
// @Description Create a user account with a unique login name
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{login_name=string,password=string,first_name=string,last_name=string,location=string,description=string,occupation=string} true "Registration request"
// @Success 201 {object} object{token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users [post]
func (s *Server) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		LoginName   string `json:"login_name"`
		Password    string `json:"password"`
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		Location    string `json:"location"`
		Description string `json:"description"`
		Occupation  string `json:"occupation"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(ctx, service.RegisterInput{
		LoginName:   req.LoginName,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Location:    req.Location,
		Description: req.Description,
		Occupation:  req.Occupation,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	token, err := s.generateToken(user.ID, user.LoginName)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate with login name and password, returns a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{login_name=string,password=string} true "Login credentials"
// @Success 200 {object} object{token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		LoginName string `json:"login_name"`
		Password  string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Authenticate(ctx, req.LoginName, req.Password)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	token, err := s.generateToken(user.ID, user.LoginName)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/auth/logout. The token's JTI is blacklisted for
// its remaining lifetime so it cannot be replayed.
// @Summary User logout
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	s.revokeToken(c)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// revokeToken blacklists the caller's token jti for the token's remaining
// lifetime. AuthRequired must have run first; without redis this is a no-op.
func (s *Server) revokeToken(c *fiber.Ctx) {
	if s.redis == nil {
		return
	}
	jti, _ := c.Locals("tokenJTI").(string)
	if jti == "" {
		return
	}

	ttl := tokenTTL
	if exp, ok := c.Locals("tokenExp").(int64); ok {
		if remaining := time.Until(time.Unix(exp, 0)); remaining > 0 {
			ttl = remaining
		}
	}
	s.redis.Set(c.Context(), cache.BlacklistKey(jti), "1", ttl)
}

// Me handles GET /api/auth/me
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} models.PublicProfile
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
func (s *Server) Me(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	profile, err := s.userService.GetProfile(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(profile)
}

const tokenTTL = time.Hour * 24 * 7

// generateToken creates a JWT token for the given user ID and login name
func (s *Server) generateToken(userID uint, loginName string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        strconv.FormatUint(uint64(userID), 10),
		"login_name": loginName,
		"iss":        tokenIssuer,
		"aud":        tokenAudience,
		"exp":        now.Add(tokenTTL).Unix(),
		"iat":        now.Unix(),
		"nbf":        now.Unix(),
		"jti":        s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
