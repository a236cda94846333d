package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/moraleja/portfolio/internal/domain"
)

type configRepository struct {
	db *sql.DB
}

func NewConfigRepository(db *sql.DB) domain.SettingsRepository {
	return &configRepository{db: db}
}

func (r *configRepository) GetByKey(ctx context.Context, key string) (*domain.SiteSetting, error) {
	query := `SELECT setting_key, setting_value, description, updated_at
			  FROM site_settings
			  WHERE setting_key = $1`

	var s domain.SiteSetting
	err := r.db.QueryRowContext(ctx, query, key).Scan(&s.Key, &s.Value, &s.Description, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("setting %s: %w", key, domain.ErrNotFound)
		}
		return nil, err
	}
	return &s, nil
}

func (r *configRepository) Upsert(ctx context.Context, key, value string) error {
	query := `INSERT INTO site_settings (setting_key, setting_value, updated_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (setting_key) DO UPDATE
			  SET setting_value = excluded.setting_value, updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, query, key, value, now()); err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}

func (r *configRepository) GetAll(ctx context.Context) ([]domain.SiteSetting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT setting_key, setting_value, description, updated_at
	          FROM site_settings
	          ORDER BY setting_key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := []domain.SiteSetting{}
	for rows.Next() {
		var s domain.SiteSetting
		if err := rows.Scan(&s.Key, &s.Value, &s.Description, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}
