package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sprintingbug/agricheck/internal/auth"
	"github.com/sprintingbug/agricheck/internal/model"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         "user",
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	resp := model.NewUserResponse(user)
	return &resp, nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// GetProfile returns the public profile for a user id.
func (s *Service) GetProfile(ctx context.Context, userID string) (*model.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	resp := model.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile renames the user and returns the updated profile.
func (s *Service) UpdateProfile(ctx context.Context, userID, name string) (*model.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if err := s.userRepo.UpdateUserName(ctx, userID, name); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user.Name = name
	resp := model.NewUserResponse(user)
	return &resp, nil
}

// GetUserStats aggregates the user's scan history counters.
func (s *Service) GetUserStats(ctx context.Context, userID string) (*model.UserStats, error) {
	stats, err := s.userRepo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}
	return stats, nil
}
