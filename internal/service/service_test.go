package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sprintingbug/agricheck/internal/auth"
	"github.com/sprintingbug/agricheck/internal/classify"
	"github.com/sprintingbug/agricheck/internal/config"
	"github.com/sprintingbug/agricheck/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository implements repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserName(ctx context.Context, id, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateSecurityQuestions(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	args := m.Called(ctx, id, token, expires)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserStats(ctx context.Context, userID string) (*model.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserStats), args.Error(1)
}

// MockScanRepository implements repository.ScanRepository
type MockScanRepository struct {
	mock.Mock
}

func (m *MockScanRepository) CreateScan(ctx context.Context, scan *model.Scan) error {
	args := m.Called(ctx, scan)
	return args.Error(0)
}

func (m *MockScanRepository) ListScansByUser(ctx context.Context, userID string, limit, offset int) ([]model.Scan, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Scan), args.Error(1)
}

func (m *MockScanRepository) CountScansByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockScanRepository) GetScanByID(ctx context.Context, id string) (*model.Scan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Scan), args.Error(1)
}

type stubSuggester struct {
	records []model.PlaceRecord
	err     error
}

func (s *stubSuggester) FetchSuggestions(ctx context.Context, query string) ([]model.PlaceRecord, error) {
	return s.records, s.err
}

type stubFetcher struct {
	report *model.WeatherReport
	err    error
}

func (s *stubFetcher) FetchCurrent(ctx context.Context, key string) (*model.WeatherReport, error) {
	return s.report, s.err
}

func newTestService(userRepo *MockUserRepository, scanRepo *MockScanRepository, suggester *stubSuggester, fetcher *stubFetcher) *Service {
	if suggester == nil {
		suggester = &stubSuggester{}
	}
	if fetcher == nil {
		fetcher = &stubFetcher{}
	}
	tokens := auth.NewTokenIssuer(config.AuthConfig{
		JWTSecret:      "test-secret",
		AccessTokenTTL: time.Hour,
		ResetTokenTTL:  30 * time.Minute,
	})
	return NewService(userRepo, scanRepo, suggester, fetcher, tokens, classify.NewMockClassifier(), zap.NewNop())
}

func TestService_SuggestPlaces(t *testing.T) {
	suggester := &stubSuggester{records: []model.PlaceRecord{
		{Name: "Davao", State: "Davao del Sur", Country: "PH"},
		{Name: "Manila", Country: "PH"},
	}}
	svc := newTestService(nil, nil, suggester, nil)

	resp, err := svc.SuggestPlaces(context.Background(), " Dav ")
	require.NoError(t, err)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Davao, Davao del Sur, PH", resp.Results[0].DisplayLabel)
	assert.Equal(t, "Davao,Davao del Sur,PH", resp.Results[0].QueryKey)
	assert.Equal(t, "Manila, PH", resp.Results[1].DisplayLabel)
	assert.Equal(t, "Manila,PH", resp.Results[1].QueryKey)
}

func TestService_SuggestPlaces_UpstreamFailureIsSilent(t *testing.T) {
	suggester := &stubSuggester{err: errors.New("geocoding request returned status 500")}
	svc := newTestService(nil, nil, suggester, nil)

	resp, err := svc.SuggestPlaces(context.Background(), "Dav")
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestService_SuggestPlaces_EmptyQuery(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	_, err := svc.SuggestPlaces(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestService_WeatherByKey(t *testing.T) {
	fetcher := &stubFetcher{report: &model.WeatherReport{Location: "Davao", TempC: 31}}
	svc := newTestService(nil, nil, nil, fetcher)

	report, err := svc.WeatherByKey(context.Background(), "Davao,Davao del Sur,PH")
	require.NoError(t, err)
	assert.Equal(t, 31.0, report.TempC)
}

func TestService_WeatherByKey_FailureSurfaces(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("weather request returned status 404")}
	svc := newTestService(nil, nil, nil, fetcher)

	_, err := svc.WeatherByKey(context.Background(), "Nowhere,XX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestService_Register(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByEmail", mock.Anything, "juan@example.com").Return(nil, nil)
	userRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "juan@example.com" && u.Name == "Juan" && u.Role == "user" &&
			u.ID != "" && u.PasswordHash != "" && u.PasswordHash != "s3cret"
	})).Return(nil)

	svc := newTestService(userRepo, nil, nil, nil)

	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    " Juan@Example.com ",
		Name:     "Juan",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "juan@example.com", resp.Email)
	userRepo.AssertExpectations(t)
}

func TestService_Register_EmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByEmail", mock.Anything, "juan@example.com").
		Return(&model.User{ID: "u1", Email: "juan@example.com"}, nil)

	svc := newTestService(userRepo, nil, nil, nil)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "juan@example.com",
		Password: "s3cret",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_LoginAndVerifyToken(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByEmail", mock.Anything, "juan@example.com").
		Return(&model.User{ID: "u1", Email: "juan@example.com", PasswordHash: hash}, nil)

	svc := newTestService(userRepo, nil, nil, nil)

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "juan@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)

	sub, err := svc.VerifyToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", sub)
}

func TestService_Login_WrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByEmail", mock.Anything, "juan@example.com").
		Return(&model.User{ID: "u1", PasswordHash: hash}, nil)
	userRepo.On("GetUserByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	svc := newTestService(userRepo, nil, nil, nil)

	_, err = svc.Login(context.Background(), model.LoginRequest{Email: "juan@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), model.LoginRequest{Email: "nobody@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_UpdateProfile(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByID", mock.Anything, "u1").
		Return(&model.User{ID: "u1", Email: "juan@example.com", Name: "Juan"}, nil)
	userRepo.On("UpdateUserName", mock.Anything, "u1", "Juan Dela Cruz").Return(nil)

	svc := newTestService(userRepo, nil, nil, nil)

	resp, err := svc.UpdateProfile(context.Background(), "u1", "Juan Dela Cruz")
	require.NoError(t, err)
	assert.Equal(t, "Juan Dela Cruz", resp.Name)
	userRepo.AssertExpectations(t)
}

func TestService_UpdateProfile_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByID", mock.Anything, "ghost").Return(nil, nil)

	svc := newTestService(userRepo, nil, nil, nil)

	_, err := svc.UpdateProfile(context.Background(), "ghost", "Name")
	assert.ErrorIs(t, err, ErrNotFound)
}

func questionUser(t *testing.T, answer string) *model.User {
	t.Helper()
	hash, err := auth.HashSecurityAnswer(answer)
	require.NoError(t, err)

	question := "First pet's name?"
	return &model.User{
		ID:                "u1",
		Email:             "juan@example.com",
		SecurityQuestion1: &question,
		SecurityAnswer1:   &hash,
	}
}

func TestService_SetSecurityQuestions(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByID", mock.Anything, "u1").
		Return(&model.User{ID: "u1", Email: "juan@example.com"}, nil)
	userRepo.On("UpdateSecurityQuestions", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ID == "u1" &&
			u.SecurityQuestion1 != nil && *u.SecurityQuestion1 == "First pet's name?" &&
			u.SecurityAnswer1 != nil && auth.VerifySecurityAnswer("Fluffy", *u.SecurityAnswer1) &&
			u.SecurityQuestion2 == nil
	})).Return(nil)

	svc := newTestService(userRepo, nil, nil, nil)

	err := svc.SetSecurityQuestions(context.Background(), "u1", []model.SecurityQuestionInput{
		{Question: "First pet's name?", Answer: "Fluffy"},
	})
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestService_SetSecurityQuestions_RejectsBlankAndOversized(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByID", mock.Anything, "u1").
		Return(&model.User{ID: "u1"}, nil)

	svc := newTestService(userRepo, nil, nil, nil)

	err := svc.SetSecurityQuestions(context.Background(), "u1", []model.SecurityQuestionInput{
		{Question: "   ", Answer: "Fluffy"},
	})
	assert.ErrorIs(t, err, ErrSecurityQuestion)

	err = svc.SetSecurityQuestions(context.Background(), "u1", nil)
	assert.ErrorIs(t, err, ErrSecurityQuestion)

	four := make([]model.SecurityQuestionInput, 4)
	for i := range four {
		four[i] = model.SecurityQuestionInput{Question: "q", Answer: "a"}
	}
	err = svc.SetSecurityQuestions(context.Background(), "u1", four)
	assert.ErrorIs(t, err, ErrSecurityQuestion)
}

func TestService_SecurityQuestions(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByEmail", mock.Anything, "juan@example.com").
		Return(questionUser(t, "Fluffy"), nil)
	userRepo.On("GetUserByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	svc := newTestService(userRepo, nil, nil, nil)

	resp, err := svc.SecurityQuestions(context.Background(), " Juan@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, []string{"First pet's name?"}, resp.Questions)
	assert.Equal(t, []int{0}, resp.Indices)

	_, err = svc.SecurityQuestions(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_VerifySecurityAnswer(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByEmail", mock.Anything, "juan@example.com").
		Return(questionUser(t, "Fluffy"), nil)
	userRepo.On("SetResetToken", mock.Anything, "u1", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(userRepo, nil, nil, nil)

	resp, err := svc.VerifySecurityAnswer(context.Background(), "juan@example.com", 0, " fluffy ")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ResetToken)
	userRepo.AssertExpectations(t)
}

func TestService_VerifySecurityAnswer_Failures(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByEmail", mock.Anything, "juan@example.com").
		Return(questionUser(t, "Fluffy"), nil)

	svc := newTestService(userRepo, nil, nil, nil)

	_, err := svc.VerifySecurityAnswer(context.Background(), "juan@example.com", 0, "Rex")
	assert.ErrorIs(t, err, ErrWrongAnswer)

	// slot 1 was never configured
	_, err = svc.VerifySecurityAnswer(context.Background(), "juan@example.com", 1, "Fluffy")
	assert.ErrorIs(t, err, ErrSecurityQuestion)
}

func TestService_ResetPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	user := questionUser(t, "Fluffy")
	userRepo.On("GetUserByEmail", mock.Anything, "juan@example.com").Return(user, nil)
	userRepo.On("SetResetToken", mock.Anything, "u1", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			token := args.String(2)
			expires := args.Get(3).(time.Time)
			user.ResetToken = &token
			user.ResetTokenExpires = &expires
		}).Return(nil)
	userRepo.On("UpdatePassword", mock.Anything, "u1", mock.MatchedBy(func(hash string) bool {
		return auth.VerifyPassword("new-password-1", hash)
	})).Return(nil)

	svc := newTestService(userRepo, nil, nil, nil)

	resp, err := svc.VerifySecurityAnswer(context.Background(), "juan@example.com", 0, "Fluffy")
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), model.ResetPasswordRequest{
		Email:       "juan@example.com",
		ResetToken:  resp.ResetToken,
		NewPassword: "new-password-1",
	})
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestService_ResetPassword_Failures(t *testing.T) {
	stale := time.Now().UTC().Add(-time.Minute)
	token := "stored-token"

	user := questionUser(t, "Fluffy")
	user.ResetToken = &token
	user.ResetTokenExpires = &stale

	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByEmail", mock.Anything, "juan@example.com").Return(user, nil)

	svc := newTestService(userRepo, nil, nil, nil)

	err := svc.ResetPassword(context.Background(), model.ResetPasswordRequest{
		Email:       "juan@example.com",
		ResetToken:  "stored-token",
		NewPassword: "short",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)

	// token differs from the stored one
	err = svc.ResetPassword(context.Background(), model.ResetPasswordRequest{
		Email:       "juan@example.com",
		ResetToken:  "some-other-token",
		NewPassword: "new-password-1",
	})
	assert.ErrorIs(t, err, ErrResetToken)

	// stored token has expired
	err = svc.ResetPassword(context.Background(), model.ResetPasswordRequest{
		Email:       "juan@example.com",
		ResetToken:  "stored-token",
		NewPassword: "new-password-1",
	})
	assert.ErrorIs(t, err, ErrResetToken)
}

func TestService_RecordScan_ClassifiesWhenUnlabeled(t *testing.T) {
	scanRepo := new(MockScanRepository)
	scanRepo.On("CreateScan", mock.Anything, mock.MatchedBy(func(scan *model.Scan) bool {
		return scan.UserID == "u1" && scan.DiseaseName != "" &&
			scan.Confidence >= 65 && scan.Recommendations != nil
	})).Return(nil)

	svc := newTestService(nil, scanRepo, nil, nil)

	scan, err := svc.RecordScan(context.Background(), "u1", model.ScanRequest{
		ImagePath: "uploads/leaf-001.jpg",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, scan.ID)
	scanRepo.AssertExpectations(t)
}

func TestService_RecordScan_KeepsProvidedLabel(t *testing.T) {
	scanRepo := new(MockScanRepository)
	scanRepo.On("CreateScan", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(nil, scanRepo, nil, nil)

	scan, err := svc.RecordScan(context.Background(), "u1", model.ScanRequest{
		ImagePath:   "uploads/leaf-002.jpg",
		DiseaseName: "Leaf Blast",
		Confidence:  88.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Leaf Blast", scan.DiseaseName)
	assert.Equal(t, 88.5, scan.Confidence)
}

func TestService_ScanHistory(t *testing.T) {
	scanRepo := new(MockScanRepository)
	scanRepo.On("ListScansByUser", mock.Anything, "u1", 50, 0).Return([]model.Scan{
		{ID: "s2", UserID: "u1", DiseaseName: "Healthy"},
		{ID: "s1", UserID: "u1", DiseaseName: "Leaf Blast"},
	}, nil)
	scanRepo.On("CountScansByUser", mock.Anything, "u1").Return(2, nil)

	svc := newTestService(nil, scanRepo, nil, nil)

	resp, err := svc.ScanHistory(context.Background(), "u1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Scans, 2)
	assert.Equal(t, "s2", resp.Scans[0].ID)
}

func TestService_GetScan_OwnerScoped(t *testing.T) {
	scanRepo := new(MockScanRepository)
	scanRepo.On("GetScanByID", mock.Anything, "s1").
		Return(&model.Scan{ID: "s1", UserID: "u1"}, nil)

	svc := newTestService(nil, scanRepo, nil, nil)

	scan, err := svc.GetScan(context.Background(), "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", scan.ID)

	// another user's scan reads as not found
	_, err = svc.GetScan(context.Background(), "u2", "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}
