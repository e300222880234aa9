package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/database"
	"github.com/MatheusRocha-X/GymFlow-sub000/internal/models"
)

type ReminderRepository struct {
	db *database.DB
}

func NewReminderRepository(db *database.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

const reminderColumns = `reminders_id, type, title, message, anchor_time, recurrence, days_of_week, enabled, next_trigger, created_at`

func scanReminder(row interface{ Scan(dest ...any) error }) (*models.Reminder, error) {
	reminder := &models.Reminder{}
	var daysJSON []byte
	err := row.Scan(
		&reminder.ReminderID,
		&reminder.Type,
		&reminder.Title,
		&reminder.Message,
		&reminder.Time,
		&reminder.Recurrence,
		&daysJSON,
		&reminder.Enabled,
		&reminder.NextTrigger,
		&reminder.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(daysJSON) > 0 {
		if err := json.Unmarshal(daysJSON, &reminder.DaysOfWeek); err != nil {
			reminder.DaysOfWeek = nil
		}
	}
	return reminder, nil
}

func marshalDays(days []int) ([]byte, error) {
	if len(days) == 0 {
		return nil, nil
	}
	return json.Marshal(days)
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	daysJSON, err := marshalDays(reminder.DaysOfWeek)
	if err != nil {
		return err
	}
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO reminders (type, title, message, anchor_time, recurrence, days_of_week, enabled, next_trigger)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING reminders_id, created_at`,
		reminder.Type, reminder.Title, reminder.Message, reminder.Time, reminder.Recurrence,
		daysJSON, reminder.Enabled, reminder.NextTrigger,
	).Scan(&reminder.ReminderID, &reminder.CreatedAt)
}

func (r *ReminderRepository) List(ctx context.Context) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+reminderColumns+` FROM reminders ORDER BY next_trigger ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

// ListEnabled returns every reminder the engine must evaluate this cycle.
func (r *ReminderRepository) ListEnabled(ctx context.Context) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE enabled = true ORDER BY next_trigger ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

func (r *ReminderRepository) GetByID(ctx context.Context, reminderID int) (*models.Reminder, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE reminders_id = $1`,
		reminderID,
	)
	return scanReminder(row)
}

func (r *ReminderRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	daysJSON, err := marshalDays(reminder.DaysOfWeek)
	if err != nil {
		return err
	}
	_, err = r.db.Pool.Exec(ctx,
		`UPDATE reminders SET type = $1, title = $2, message = $3, anchor_time = $4,
		        recurrence = $5, days_of_week = $6, enabled = $7, next_trigger = $8
		 WHERE reminders_id = $9`,
		reminder.Type, reminder.Title, reminder.Message, reminder.Time, reminder.Recurrence,
		daysJSON, reminder.Enabled, reminder.NextTrigger, reminder.ReminderID,
	)
	return err
}

// SetNextTrigger advances a reminder. Updating a reminder that was deleted
// mid-cycle affects zero rows and is not an error.
func (r *ReminderRepository) SetNextTrigger(ctx context.Context, reminderID int, next time.Time) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET next_trigger = $1 WHERE reminders_id = $2`,
		next, reminderID,
	)
	return err
}

func (r *ReminderRepository) SetEnabled(ctx context.Context, reminderID int, enabled bool) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET enabled = $1 WHERE reminders_id = $2`,
		enabled, reminderID,
	)
	return err
}

func (r *ReminderRepository) Delete(ctx context.Context, reminderID int) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM reminders WHERE reminders_id = $1`,
		reminderID,
	)
	return err
}

// DeleteByType removes all reminders of one type. Used when reseeding the
// hydration schedule.
func (r *ReminderRepository) DeleteByType(ctx context.Context, reminderType string) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM reminders WHERE type = $1`,
		reminderType,
	)
	return err
}
