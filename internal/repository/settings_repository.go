package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SettingGeminiAPIKey is the settings row holding the shared backend key
// used when neither an override nor a process-level key is available.
const SettingGeminiAPIKey = "gemini_api_key"

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the value for a setting name. A missing row is not an error;
// it returns an empty string so callers can fall through.
func (r *SettingsRepository) Get(ctx context.Context, name string) (string, error) {
	const query = `SELECT value FROM settings WHERE name = ?`
	row := r.db.QueryRowContext(ctx, query, name)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("scan setting %s: %w", name, err)
	}
	return value, nil
}

func (r *SettingsRepository) Set(ctx context.Context, name, value string) error {
	const query = `
INSERT INTO settings (name, value) VALUES (?, ?)
ON DUPLICATE KEY UPDATE value = VALUES(value)`
	if _, err := r.db.ExecContext(ctx, query, name, value); err != nil {
		return fmt.Errorf("upsert setting %s: %w", name, err)
	}
	return nil
}
