package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/sprintingbug/agricheck/internal/config"
	"github.com/sprintingbug/agricheck/internal/database"
	"github.com/sprintingbug/agricheck/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	cfg := config.DBConfig{
		Type: config.DBTypeMemory,
		Name: fmt.Sprintf("repodb_%d", rng.Int()),
	}

	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	require.NoError(t, err)

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations/sqlite",
		"sqlite3",
		driver,
	)
	require.NoError(t, err)
	require.NoError(t, m.Up())

	return db
}

func seedUser(t *testing.T, repos *Container, id, email string) {
	t.Helper()
	err := repos.User.CreateUser(context.Background(), &model.User{
		ID:           id,
		Email:        email,
		Name:         "Test User",
		PasswordHash: "hash",
		Role:         "user",
	})
	require.NoError(t, err)
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repos := NewRepositories(db, config.DBTypeMemory)
	ctx := context.Background()

	seedUser(t, repos, "u1", "juan@example.com")

	byEmail, err := repos.User.GetUserByEmail(ctx, "juan@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "u1", byEmail.ID)

	byID, err := repos.User.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "juan@example.com", byID.Email)

	missing, err := repos.User.GetUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_DuplicateEmailFails(t *testing.T) {
	db := setupTestDB(t)
	repos := NewRepositories(db, config.DBTypeMemory)

	seedUser(t, repos, "u1", "juan@example.com")

	err := repos.User.CreateUser(context.Background(), &model.User{
		ID:           "u2",
		Email:        "juan@example.com",
		PasswordHash: "hash",
		Role:         "user",
	})
	assert.Error(t, err)
}

func TestUserRepository_UpdateName(t *testing.T) {
	db := setupTestDB(t)
	repos := NewRepositories(db, config.DBTypeMemory)
	ctx := context.Background()

	seedUser(t, repos, "u1", "juan@example.com")
	require.NoError(t, repos.User.UpdateUserName(ctx, "u1", "Juan Dela Cruz"))

	user, err := repos.User.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Juan Dela Cruz", user.Name)
}

func TestUserRepository_SecurityQuestionsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repos := NewRepositories(db, config.DBTypeMemory)
	ctx := context.Background()

	seedUser(t, repos, "u1", "juan@example.com")

	question := "First pet's name?"
	answerHash := "answer-hash"
	err := repos.User.UpdateSecurityQuestions(ctx, &model.User{
		ID:                "u1",
		SecurityQuestion1: &question,
		SecurityAnswer1:   &answerHash,
	})
	require.NoError(t, err)

	user, err := repos.User.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, user.SecurityQuestion1)
	assert.Equal(t, question, *user.SecurityQuestion1)
	require.NotNil(t, user.SecurityAnswer1)
	assert.Equal(t, answerHash, *user.SecurityAnswer1)
	assert.Nil(t, user.SecurityQuestion2)

	prompts := user.SecurityPrompts()
	require.Len(t, prompts, 1)
	assert.Equal(t, 0, prompts[0].Index)
}

func TestUserRepository_ResetTokenLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repos := NewRepositories(db, config.DBTypeMemory)
	ctx := context.Background()

	seedUser(t, repos, "u1", "juan@example.com")

	expires := time.Now().UTC().Add(30 * time.Minute).Truncate(time.Second)
	require.NoError(t, repos.User.SetResetToken(ctx, "u1", "reset-token", expires))

	user, err := repos.User.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, user.ResetToken)
	assert.Equal(t, "reset-token", *user.ResetToken)
	require.NotNil(t, user.ResetTokenExpires)
	assert.WithinDuration(t, expires, *user.ResetTokenExpires, time.Second)

	// changing the password consumes the token
	require.NoError(t, repos.User.UpdatePassword(ctx, "u1", "new-hash"))

	user, err = repos.User.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", user.PasswordHash)
	assert.Nil(t, user.ResetToken)
	assert.Nil(t, user.ResetTokenExpires)
}

func TestScanRepository_CreateListAndCount(t *testing.T) {
	db := setupTestDB(t)
	repos := NewRepositories(db, config.DBTypeMemory)
	ctx := context.Background()

	seedUser(t, repos, "u1", "juan@example.com")

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	rec := "Apply fungicide as directed."
	scans := []model.Scan{
		{ID: "s1", UserID: "u1", ImagePath: "a.jpg", DiseaseName: "Leaf Blast", Confidence: 88, Recommendations: &rec, CreatedAt: base},
		{ID: "s2", UserID: "u1", ImagePath: "b.jpg", DiseaseName: model.HealthyLabel, Confidence: 95, CreatedAt: base.Add(time.Hour)},
		{ID: "s3", UserID: "u1", ImagePath: "c.jpg", DiseaseName: "Tungro Virus", Confidence: 72, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range scans {
		require.NoError(t, repos.Scan.CreateScan(ctx, &scans[i]))
	}

	listed, err := repos.Scan.ListScansByUser(ctx, "u1", 50, 0)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	// newest first
	assert.Equal(t, "s3", listed[0].ID)
	assert.Equal(t, "s1", listed[2].ID)
	require.NotNil(t, listed[2].Recommendations)
	assert.Equal(t, rec, *listed[2].Recommendations)

	page, err := repos.Scan.ListScansByUser(ctx, "u1", 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "s2", page[0].ID)

	count, err := repos.Scan.CountScansByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestScanRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repos := NewRepositories(db, config.DBTypeMemory)
	ctx := context.Background()

	seedUser(t, repos, "u1", "juan@example.com")
	require.NoError(t, repos.Scan.CreateScan(ctx, &model.Scan{
		ID: "s1", UserID: "u1", ImagePath: "a.jpg",
		DiseaseName: "Leaf Blast", Confidence: 88, CreatedAt: time.Now().UTC(),
	}))

	scan, err := repos.Scan.GetScanByID(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, scan)
	assert.Equal(t, "Leaf Blast", scan.DiseaseName)

	missing, err := repos.Scan.GetScanByID(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_GetUserStats(t *testing.T) {
	db := setupTestDB(t)
	repos := NewRepositories(db, config.DBTypeMemory)
	ctx := context.Background()

	seedUser(t, repos, "u1", "juan@example.com")
	seedUser(t, repos, "u2", "maria@example.com")

	now := time.Now().UTC()
	for i, disease := range []string{model.HealthyLabel, model.HealthyLabel, "Leaf Blast"} {
		require.NoError(t, repos.Scan.CreateScan(ctx, &model.Scan{
			ID: fmt.Sprintf("s%d", i), UserID: "u1", ImagePath: "x.jpg",
			DiseaseName: disease, Confidence: 80, CreatedAt: now,
		}))
	}
	// another user's scan must not leak into u1's stats
	require.NoError(t, repos.Scan.CreateScan(ctx, &model.Scan{
		ID: "other", UserID: "u2", ImagePath: "y.jpg",
		DiseaseName: "Tungro Virus", Confidence: 70, CreatedAt: now,
	}))

	stats, err := repos.User.GetUserStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalScans)
	assert.Equal(t, 2, stats.HealthyCrops)
	assert.Equal(t, 1, stats.Diseases)
	assert.Equal(t, 3, stats.Reports)
}

func TestUserRepository_StatsEmptyHistory(t *testing.T) {
	db := setupTestDB(t)
	repos := NewRepositories(db, config.DBTypeMemory)

	seedUser(t, repos, "u1", "juan@example.com")

	stats, err := repos.User.GetUserStats(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalScans)
	assert.Zero(t, stats.HealthyCrops)
	assert.Zero(t, stats.Diseases)
}
