// Package service contains the business logic layer.
package service

import (
	"context"
	"strings"

	"photoshare/internal/models"
	"photoshare/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	LoginName   string
	Password    string
	FirstName   string
	LastName    string
	Location    string
	Description string
	Occupation  string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new account. Login name, password, first name, and last
// name are mandatory; the rest of the profile is optional.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.LoginName = strings.TrimSpace(in.LoginName)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if in.LoginName == "" || in.Password == "" {
		return nil, models.NewValidationError("Login name and password are required")
	}
	if in.FirstName == "" || in.LastName == "" {
		return nil, models.NewValidationError("First name and last name are required")
	}

	existing, err := s.userRepo.GetByLoginName(ctx, in.LoginName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Login name already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		LoginName:   in.LoginName,
		Password:    string(hashed),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Location:    in.Location,
		Description: in.Description,
		Occupation:  in.Occupation,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the user. Missing users and
// wrong passwords produce the same error to avoid leaking which was wrong.
func (s *UserService) Authenticate(ctx context.Context, loginName, password string) (*models.User, error) {
	if loginName == "" || password == "" {
		return nil, models.NewValidationError("Login name and password are required")
	}

	user, err := s.userRepo.GetByLoginName(ctx, loginName)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// GetProfile returns the public profile for a user.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.PublicProfile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := user.Public()
	return &profile, nil
}

// ListUsers returns the id+name roster of all users.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.UserRef, error) {
	if limit <= 0 || limit > 500 {
		limit = 500
	}
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	refs := make([]models.UserRef, 0, len(users))
	for _, u := range users {
		refs = append(refs, u.Ref())
	}
	return refs, nil
}
