package repository

import (
	"context"
	"time"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/database"
	"github.com/MatheusRocha-X/GymFlow-sub000/internal/models"
)

type TelegramSettingsRepository struct {
	db *database.DB
}

func NewTelegramSettingsRepository(db *database.DB) *TelegramSettingsRepository {
	return &TelegramSettingsRepository{db: db}
}

const telegramSettingsColumns = `enabled, chat_id, bot_token, daily_motivation_enabled,
	daily_motivation_time, last_motivational_message, setup_completed, updated_at`

// GetOrCreate retrieves the settings row, inserting the default on first access.
func (r *TelegramSettingsRepository) GetOrCreate(ctx context.Context) (*models.TelegramSettings, error) {
	settings := &models.TelegramSettings{}
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO telegram_settings (id) VALUES (1)
		 ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		 RETURNING `+telegramSettingsColumns,
	).Scan(
		&settings.Enabled,
		&settings.ChatID,
		&settings.BotToken,
		&settings.DailyMotivationEnabled,
		&settings.DailyMotivationTime,
		&settings.LastMotivationalMessage,
		&settings.SetupCompleted,
		&settings.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *TelegramSettingsRepository) Update(ctx context.Context, settings *models.TelegramSettings) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE telegram_settings SET
		    enabled = $1,
		    chat_id = $2,
		    bot_token = $3,
		    daily_motivation_enabled = $4,
		    daily_motivation_time = $5,
		    setup_completed = $6,
		    updated_at = $7
		 WHERE id = 1`,
		settings.Enabled,
		settings.ChatID,
		settings.BotToken,
		settings.DailyMotivationEnabled,
		settings.DailyMotivationTime,
		settings.SetupCompleted,
		time.Now(),
	)
	return err
}

// SetLastMotivationalMessage records the daily-motivation send time.
func (r *TelegramSettingsRepository) SetLastMotivationalMessage(ctx context.Context, sentAt time.Time) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE telegram_settings SET last_motivational_message = $1 WHERE id = 1`,
		sentAt,
	)
	return err
}
