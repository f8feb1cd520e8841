package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sprintingbug/agricheck/internal/config"
	"github.com/sprintingbug/agricheck/internal/model"
)

// UserRepository defines operations for user accounts
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	UpdateUserName(ctx context.Context, id, name string) error
	UpdateSecurityQuestions(ctx context.Context, user *model.User) error
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	GetUserStats(ctx context.Context, userID string) (*model.UserStats, error)
}

// ScanRepository defines operations for stored scan results
type ScanRepository interface {
	CreateScan(ctx context.Context, scan *model.Scan) error
	ListScansByUser(ctx context.Context, userID string, limit, offset int) ([]model.Scan, error)
	CountScansByUser(ctx context.Context, userID string) (int, error)
	GetScanByID(ctx context.Context, id string) (*model.Scan, error)
}

// Container holds all repositories
type Container struct {
	User UserRepository
	Scan ScanRepository
}

// NewRepositories creates repository implementations based on DB type
func NewRepositories(db *sqlx.DB, dbType config.DBType) *Container {
	if dbType == config.DBTypePostgreSQL {
		return &Container{
			User: &pgUserRepository{db: db},
			Scan: &pgScanRepository{db: db},
		}
	}

	// Default to SQLite
	return &Container{
		User: &sqliteUserRepository{db: db},
		Scan: &sqliteScanRepository{db: db},
	}
}
