package repository

import (
	"context"
	"time"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/database"
	"github.com/MatheusRocha-X/GymFlow-sub000/internal/models"
)

type HydrationRepository struct {
	db *database.DB
}

func NewHydrationRepository(db *database.DB) *HydrationRepository {
	return &HydrationRepository{db: db}
}

// GetOrCreateSettings retrieves hydration settings, inserting the default
// row on first access.
func (r *HydrationRepository) GetOrCreateSettings(ctx context.Context) (*models.HydrationSettings, error) {
	settings := &models.HydrationSettings{}
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO hydration_settings (id) VALUES (1)
		 ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		 RETURNING daily_goal_ml, glass_size_ml, interval_minutes,
		           active_start_hour, active_end_hour, reminders_enabled, updated_at`,
	).Scan(
		&settings.DailyGoalML,
		&settings.GlassSizeML,
		&settings.IntervalMinutes,
		&settings.ActiveStartHour,
		&settings.ActiveEndHour,
		&settings.RemindersEnabled,
		&settings.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *HydrationRepository) UpdateSettings(ctx context.Context, settings *models.HydrationSettings) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE hydration_settings SET
		    daily_goal_ml = $1,
		    glass_size_ml = $2,
		    interval_minutes = $3,
		    active_start_hour = $4,
		    active_end_hour = $5,
		    reminders_enabled = $6,
		    updated_at = $7
		 WHERE id = 1`,
		settings.DailyGoalML,
		settings.GlassSizeML,
		settings.IntervalMinutes,
		settings.ActiveStartHour,
		settings.ActiveEndHour,
		settings.RemindersEnabled,
		time.Now(),
	)
	return err
}

func (r *HydrationRepository) AddLog(ctx context.Context, entry *models.HydrationLog) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO hydration_logs (amount_ml, logged_at) VALUES ($1, $2)
		 RETURNING logs_id`,
		entry.AmountML, entry.LoggedAt,
	).Scan(&entry.LogID)
}

// ListLogs returns logs within [from, to) ordered oldest first.
func (r *HydrationRepository) ListLogs(ctx context.Context, from, to time.Time) ([]*models.HydrationLog, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT logs_id, amount_ml, logged_at FROM hydration_logs
		 WHERE logged_at >= $1 AND logged_at < $2
		 ORDER BY logged_at ASC`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.HydrationLog
	for rows.Next() {
		entry := &models.HydrationLog{}
		if err := rows.Scan(&entry.LogID, &entry.AmountML, &entry.LoggedAt); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
