package repository

import (
	"context"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/database"
	"github.com/MatheusRocha-X/GymFlow-sub000/internal/models"
)

type ExerciseRepository struct {
	db *database.DB
}

func NewExerciseRepository(db *database.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO exercises (name, category, equipment, description, is_custom)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING exercises_id, created_at`,
		exercise.Name, exercise.Category, exercise.Equipment, exercise.Description, exercise.IsCustom,
	).Scan(&exercise.ExerciseID, &exercise.CreatedAt)
}

func (r *ExerciseRepository) List(ctx context.Context, category string) ([]*models.Exercise, error) {
	query := `SELECT exercises_id, name, category, equipment, description, is_custom, created_at
	          FROM exercises`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []*models.Exercise
	for rows.Next() {
		exercise := &models.Exercise{}
		if err := rows.Scan(&exercise.ExerciseID, &exercise.Name, &exercise.Category,
			&exercise.Equipment, &exercise.Description, &exercise.IsCustom, &exercise.CreatedAt); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	return exercises, rows.Err()
}

func (r *ExerciseRepository) GetByID(ctx context.Context, exerciseID int) (*models.Exercise, error) {
	exercise := &models.Exercise{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT exercises_id, name, category, equipment, description, is_custom, created_at
		 FROM exercises WHERE exercises_id = $1`,
		exerciseID,
	).Scan(&exercise.ExerciseID, &exercise.Name, &exercise.Category,
		&exercise.Equipment, &exercise.Description, &exercise.IsCustom, &exercise.CreatedAt)
	if err != nil {
		return nil, err
	}
	return exercise, nil
}

func (r *ExerciseRepository) Update(ctx context.Context, exercise *models.Exercise) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE exercises SET name = $1, category = $2, equipment = $3, description = $4
		 WHERE exercises_id = $5`,
		exercise.Name, exercise.Category, exercise.Equipment, exercise.Description, exercise.ExerciseID,
	)
	return err
}

// Delete removes a custom exercise. Seeded library rows are kept.
func (r *ExerciseRepository) Delete(ctx context.Context, exerciseID int) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM exercises WHERE exercises_id = $1 AND is_custom = true`,
		exerciseID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
