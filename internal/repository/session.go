package repository

import (
	"context"
	"time"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/database"
	"github.com/MatheusRocha-X/GymFlow-sub000/internal/models"
)

type SessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.WorkoutSession) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO workout_sessions (routine_id, notes, started_at)
		 VALUES ($1, $2, $3)
		 RETURNING sessions_id`,
		session.RoutineID, session.Notes, session.StartedAt,
	).Scan(&session.SessionID)
}

func (r *SessionRepository) List(ctx context.Context, limit int) ([]*models.WorkoutSession, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Pool.Query(ctx,
		`SELECT sessions_id, routine_id, notes, started_at, completed_at
		 FROM workout_sessions ORDER BY started_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.WorkoutSession
	for rows.Next() {
		session := &models.WorkoutSession{}
		if err := rows.Scan(&session.SessionID, &session.RoutineID, &session.Notes,
			&session.StartedAt, &session.CompletedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, session := range sessions {
		if err := r.loadSets(ctx, session); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID int) (*models.WorkoutSession, error) {
	session := &models.WorkoutSession{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT sessions_id, routine_id, notes, started_at, completed_at
		 FROM workout_sessions WHERE sessions_id = $1`,
		sessionID,
	).Scan(&session.SessionID, &session.RoutineID, &session.Notes,
		&session.StartedAt, &session.CompletedAt)
	if err != nil {
		return nil, err
	}
	if err := r.loadSets(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (r *SessionRepository) loadSets(ctx context.Context, session *models.WorkoutSession) error {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT sets_id, exercise_id, set_number, reps, weight_kg
		 FROM session_sets WHERE session_id = $1 ORDER BY sets_id ASC`,
		session.SessionID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var set models.SessionSet
		if err := rows.Scan(&set.SetID, &set.ExerciseID, &set.SetNumber, &set.Reps, &set.WeightKg); err != nil {
			return err
		}
		session.Sets = append(session.Sets, set)
	}
	return rows.Err()
}

func (r *SessionRepository) AddSet(ctx context.Context, sessionID int, set *models.SessionSet) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO session_sets (session_id, exercise_id, set_number, reps, weight_kg)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING sets_id`,
		sessionID, set.ExerciseID, set.SetNumber, set.Reps, set.WeightKg,
	).Scan(&set.SetID)
}

func (r *SessionRepository) Complete(ctx context.Context, sessionID int, completedAt time.Time, notes string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE workout_sessions SET completed_at = $1, notes = $2 WHERE sessions_id = $3`,
		completedAt, notes, sessionID,
	)
	return err
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID int) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM workout_sessions WHERE sessions_id = $1`,
		sessionID,
	)
	return err
}
