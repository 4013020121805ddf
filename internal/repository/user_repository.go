package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/archilab/renderstudio/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `
SELECT id, username, COALESCE(display_name, ''), daily_limit, used_today,
       COALESCE(DATE_FORMAT(last_usage_date, '%Y-%m-%d'), ''), is_privileged, created_at, updated_at
FROM users WHERE username = ?`
	row := r.db.QueryRowContext(ctx, query, username)
	var u models.User
	var privileged int
	if err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.DailyLimit, &u.UsedToday, &u.LastUsageDate, &privileged, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.IsPrivileged = privileged != 0
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	const query = `
INSERT INTO users (username, display_name, daily_limit, is_privileged)
VALUES (?, NULLIF(?, ''), ?, ?)`
	privileged := 0
	if user.IsPrivileged {
		privileged = 1
	}
	res, err := r.db.ExecContext(ctx, query, user.Username, user.DisplayName, user.DailyLimit, privileged)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	user.ID = id
	return user, nil
}

// Ensure returns the quota record for the identity, creating it with the
// default daily limit on first sight.
func (r *UserRepository) Ensure(ctx context.Context, username string, dailyLimit int) (*models.User, bool, error) {
	user, err := r.FindByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		return user, false, nil
	}
	created, err := r.Create(ctx, &models.User{Username: username, DailyLimit: dailyLimit})
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// IncrementUsage bills one premium use for the given day. The rollover and
// the increment are a single conditional write: when the stored date is not
// the billed day the counter restarts at 1, otherwise it increments. Two
// concurrent billings therefore never count from the same base.
func (r *UserRepository) IncrementUsage(ctx context.Context, username string, day string) error {
	const query = `
UPDATE users
SET used_today = IF(last_usage_date = ?, used_today + 1, 1),
    last_usage_date = ?,
    updated_at = NOW()
WHERE username = ?`
	res, err := r.db.ExecContext(ctx, query, day, day, username)
	if err != nil {
		return fmt.Errorf("increment usage: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("usage rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no quota record for %s", username)
	}
	return nil
}

func (r *UserRepository) SetDailyLimit(ctx context.Context, username string, limit int) error {
	const query = `UPDATE users SET daily_limit = ?, updated_at = NOW() WHERE username = ?`
	if _, err := r.db.ExecContext(ctx, query, limit, username); err != nil {
		return fmt.Errorf("set daily limit: %w", err)
	}
	return nil
}
