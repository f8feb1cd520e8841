package service

import (
	"errors"

	"github.com/sprintingbug/agricheck/internal/auth"
	"github.com/sprintingbug/agricheck/internal/classify"
	"github.com/sprintingbug/agricheck/internal/geocode"
	"github.com/sprintingbug/agricheck/internal/repository"
	"github.com/sprintingbug/agricheck/internal/weather"
	"go.uber.org/zap"
)

// Sentinel errors mapped to HTTP statuses at the API boundary
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrEmptyQuery         = errors.New("query must not be empty")
	ErrSecurityQuestion   = errors.New("security question not set")
	ErrWrongAnswer        = errors.New("security answer does not match")
	ErrResetToken         = errors.New("invalid or expired reset token")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// Service provides business logic for the API
type Service struct {
	userRepo   repository.UserRepository
	scanRepo   repository.ScanRepository
	suggester  geocode.Suggester
	fetcher    weather.Fetcher
	tokens     *auth.TokenIssuer
	classifier classify.Classifier
	logger     *zap.Logger
}

// NewService creates a new service instance
func NewService(
	userRepo repository.UserRepository,
	scanRepo repository.ScanRepository,
	suggester geocode.Suggester,
	fetcher weather.Fetcher,
	tokens *auth.TokenIssuer,
	classifier classify.Classifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		userRepo:   userRepo,
		scanRepo:   scanRepo,
		suggester:  suggester,
		fetcher:    fetcher,
		tokens:     tokens,
		classifier: classifier,
		logger:     logger,
	}
}

// VerifyToken resolves an access token to a user id.
func (s *Service) VerifyToken(token string) (string, error) {
	return s.tokens.Verify(token)
}
