package service

import (
	"context"
	"errors"
	"time"

	"github.com/dev-abhisheks/recipe-app-api/internal/crypto"
	"github.com/dev-abhisheks/recipe-app-api/internal/model"
	"github.com/dev-abhisheks/recipe-app-api/internal/repository"
	"github.com/dev-abhisheks/recipe-app-api/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already taken")
)

// AuthService handles user account and authentication business logic.
type AuthService struct {
	repo      *repository.UserRepository
	validate  *validation.Validator
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.UserRepository, validate *validation.Validator, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		repo:      repo,
		validate:  validate,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) (model.UserResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		return model.UserResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	return userToResponse(user), nil
}

// Login verifies a user's credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, req model.TokenRequest) (model.TokenResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		return model.TokenResponse{}, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.TokenResponse{}, ErrInvalidCredentials
		}
		return model.TokenResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.TokenResponse{}, err
	}
	if !match {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{Token: token}, nil
}

// GetUser retrieves a user by ID and returns safe user data.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}

	return userToResponse(user), nil
}

// UpdateUser applies a partial update to the authenticated user. A new
// password is re-hashed before it is stored.
func (s *AuthService) UpdateUser(ctx context.Context, userID int64, req model.UpdateUserRequest) (model.UserResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		return model.UserResponse{}, err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			return model.UserResponse{}, err
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return model.UserResponse{}, err
	}

	return userToResponse(user), nil
}

func userToResponse(user *model.User) model.UserResponse {
	return model.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}
