package service

import (
	"context"

	"github.com/sprintingbug/agricheck/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	SuggestPlaces(ctx context.Context, query string) (*model.SuggestResponse, error)
	WeatherByKey(ctx context.Context, key string) (*model.WeatherReport, error)

	Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error)
	VerifyToken(token string) (string, error)

	SetSecurityQuestions(ctx context.Context, userID string, questions []model.SecurityQuestionInput) error
	SecurityQuestions(ctx context.Context, email string) (*model.SecurityQuestionsResponse, error)
	VerifySecurityAnswer(ctx context.Context, email string, questionIndex int, answer string) (*model.ResetTokenResponse, error)
	ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error

	GetProfile(ctx context.Context, userID string) (*model.UserResponse, error)
	UpdateProfile(ctx context.Context, userID, name string) (*model.UserResponse, error)
	GetUserStats(ctx context.Context, userID string) (*model.UserStats, error)

	RecordScan(ctx context.Context, userID string, req model.ScanRequest) (*model.Scan, error)
	ScanHistory(ctx context.Context, userID string, limit, offset int) (*model.ScanHistoryResponse, error)
	GetScan(ctx context.Context, userID, scanID string) (*model.Scan, error)
}
