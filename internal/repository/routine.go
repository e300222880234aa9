package repository

import (
	"context"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/database"
	"github.com/MatheusRocha-X/GymFlow-sub000/internal/models"
)

type RoutineRepository struct {
	db *database.DB
}

func NewRoutineRepository(db *database.DB) *RoutineRepository {
	return &RoutineRepository{db: db}
}

func (r *RoutineRepository) Create(ctx context.Context, routine *models.Routine) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO routines (name, description) VALUES ($1, $2)
		 RETURNING routines_id, created_at`,
		routine.Name, routine.Description,
	).Scan(&routine.RoutineID, &routine.CreatedAt)
	if err != nil {
		return err
	}

	for i, ex := range routine.Exercises {
		routine.Exercises[i].Position = i
		_, err = tx.Exec(ctx,
			`INSERT INTO routine_exercises (routine_id, exercise_id, position, sets, reps, rest_seconds)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			routine.RoutineID, ex.ExerciseID, i, ex.Sets, ex.Reps, ex.RestSeconds,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *RoutineRepository) List(ctx context.Context) ([]*models.Routine, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT routines_id, name, description, created_at FROM routines ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routines []*models.Routine
	for rows.Next() {
		routine := &models.Routine{}
		if err := rows.Scan(&routine.RoutineID, &routine.Name, &routine.Description, &routine.CreatedAt); err != nil {
			return nil, err
		}
		routines = append(routines, routine)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, routine := range routines {
		if err := r.loadExercises(ctx, routine); err != nil {
			return nil, err
		}
	}
	return routines, nil
}

func (r *RoutineRepository) GetByID(ctx context.Context, routineID int) (*models.Routine, error) {
	routine := &models.Routine{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT routines_id, name, description, created_at FROM routines WHERE routines_id = $1`,
		routineID,
	).Scan(&routine.RoutineID, &routine.Name, &routine.Description, &routine.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := r.loadExercises(ctx, routine); err != nil {
		return nil, err
	}
	return routine, nil
}

func (r *RoutineRepository) loadExercises(ctx context.Context, routine *models.Routine) error {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT exercise_id, position, sets, reps, rest_seconds
		 FROM routine_exercises WHERE routine_id = $1 ORDER BY position ASC`,
		routine.RoutineID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ex models.RoutineExercise
		if err := rows.Scan(&ex.ExerciseID, &ex.Position, &ex.Sets, &ex.Reps, &ex.RestSeconds); err != nil {
			return err
		}
		routine.Exercises = append(routine.Exercises, ex)
	}
	return rows.Err()
}

// Update replaces the routine and its exercise list in one transaction.
func (r *RoutineRepository) Update(ctx context.Context, routine *models.Routine) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE routines SET name = $1, description = $2 WHERE routines_id = $3`,
		routine.Name, routine.Description, routine.RoutineID,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM routine_exercises WHERE routine_id = $1`, routine.RoutineID)
	if err != nil {
		return err
	}

	for i, ex := range routine.Exercises {
		routine.Exercises[i].Position = i
		_, err = tx.Exec(ctx,
			`INSERT INTO routine_exercises (routine_id, exercise_id, position, sets, reps, rest_seconds)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			routine.RoutineID, ex.ExerciseID, i, ex.Sets, ex.Reps, ex.RestSeconds,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *RoutineRepository) Delete(ctx context.Context, routineID int) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM routines WHERE routines_id = $1`,
		routineID,
	)
	return err
}
