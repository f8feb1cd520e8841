package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sprintingbug/agricheck/internal/model"
)

type sqliteUserRepository struct {
	db *sqlx.DB
}

func (r *sqliteUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	q := `
		INSERT INTO users (id, email, name, password_hash, role)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, q, user.ID, user.Email, user.Name, user.PasswordHash, user.Role)
	return err
}

func (r *sqliteUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE email = ?", email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *sqliteUserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *sqliteUserRepository) UpdateUserName(ctx context.Context, id, name string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE users SET name = ? WHERE id = ?", name, id)
	return err
}

func (r *sqliteUserRepository) UpdateSecurityQuestions(ctx context.Context, user *model.User) error {
	q := `
		UPDATE users SET
			security_question_1 = ?, security_answer_1 = ?,
			security_question_2 = ?, security_answer_2 = ?,
			security_question_3 = ?, security_answer_3 = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, q,
		user.SecurityQuestion1, user.SecurityAnswer1,
		user.SecurityQuestion2, user.SecurityAnswer2,
		user.SecurityQuestion3, user.SecurityAnswer3,
		user.ID,
	)
	return err
}

func (r *sqliteUserRepository) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	q := "UPDATE users SET reset_token = ?, reset_token_expires = ? WHERE id = ?"
	_, err := r.db.ExecContext(ctx, q, token, expires, id)
	return err
}

// UpdatePassword also clears any pending reset token so it cannot be replayed.
func (r *sqliteUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	q := "UPDATE users SET password_hash = ?, reset_token = NULL, reset_token_expires = NULL WHERE id = ?"
	_, err := r.db.ExecContext(ctx, q, passwordHash, id)
	return err
}

func (r *sqliteUserRepository) GetUserStats(ctx context.Context, userID string) (*model.UserStats, error) {
	q := `
		SELECT
			COUNT(*) AS total_scans,
			COALESCE(SUM(CASE WHEN disease_name = ? THEN 1 ELSE 0 END), 0) AS healthy_crops,
			COALESCE(SUM(CASE WHEN disease_name != ? THEN 1 ELSE 0 END), 0) AS diseases
		FROM scans
		WHERE user_id = ?
	`
	var stats model.UserStats
	if err := r.db.GetContext(ctx, &stats, q, model.HealthyLabel, model.HealthyLabel, userID); err != nil {
		return nil, err
	}
	stats.Reports = stats.TotalScans
	return &stats, nil
}

type sqliteScanRepository struct {
	db *sqlx.DB
}

func (r *sqliteScanRepository) CreateScan(ctx context.Context, scan *model.Scan) error {
	q := `
		INSERT INTO scans (id, user_id, image_path, disease_name, confidence, recommendations, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, q,
		scan.ID, scan.UserID, scan.ImagePath, scan.DiseaseName,
		scan.Confidence, scan.Recommendations, scan.CreatedAt,
	)
	return err
}

func (r *sqliteScanRepository) ListScansByUser(ctx context.Context, userID string, limit, offset int) ([]model.Scan, error) {
	q := `
		SELECT * FROM scans
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	var scans []model.Scan
	if err := r.db.SelectContext(ctx, &scans, q, userID, limit, offset); err != nil {
		return nil, err
	}
	return scans, nil
}

func (r *sqliteScanRepository) CountScansByUser(ctx context.Context, userID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM scans WHERE user_id = ?", userID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *sqliteScanRepository) GetScanByID(ctx context.Context, id string) (*model.Scan, error) {
	var scan model.Scan
	if err := r.db.GetContext(ctx, &scan, "SELECT * FROM scans WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &scan, nil
}
