package repository

import (
	"context"
	"time"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/database"
	"github.com/MatheusRocha-X/GymFlow-sub000/internal/models"
)

type UserSettingsRepository struct {
	db *database.DB
}

func NewUserSettingsRepository(db *database.DB) *UserSettingsRepository {
	return &UserSettingsRepository{db: db}
}

// GetOrCreate retrieves user settings, creating the default row if none exists.
func (r *UserSettingsRepository) GetOrCreate(ctx context.Context) (*models.UserSettings, error) {
	settings := &models.UserSettings{}
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO user_settings (id) VALUES (1)
		 ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		 RETURNING display_name, weight_unit, timezone, week_starts_monday,
		           onboarding_completed, updated_at`,
	).Scan(
		&settings.DisplayName,
		&settings.WeightUnit,
		&settings.Timezone,
		&settings.WeekStartsMonday,
		&settings.OnboardingCompleted,
		&settings.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *UserSettingsRepository) Update(ctx context.Context, settings *models.UserSettings) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE user_settings SET
		    display_name = $1,
		    weight_unit = $2,
		    timezone = $3,
		    week_starts_monday = $4,
		    onboarding_completed = $5,
		    updated_at = $6
		 WHERE id = 1`,
		settings.DisplayName,
		settings.WeightUnit,
		settings.Timezone,
		settings.WeekStartsMonday,
		settings.OnboardingCompleted,
		time.Now(),
	)
	return err
}
