package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/priyankaj04/Gymlogs/internal/models"
)

const exerciseColumns = `id, name, body_part, exercise_type, description, COALESCE(difficulty, ''), equipment, created_at, updated_at`

type ExerciseListFilter struct {
	BodyPart     models.BodyPart
	ExerciseType models.ExerciseType
	Difficulty   models.Difficulty
	Search       string
	Offset       int
	Limit        int
}

type ExerciseRepository struct {
	db DBTX
}

func NewExerciseRepository(db DBTX) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	query := `
		INSERT INTO exercises (id, name, body_part, exercise_type, description, difficulty, equipment)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		RETURNING created_at, updated_at
	`
	equipment := exercise.Equipment
	if equipment == nil {
		equipment = []string{}
	}
	return r.db.QueryRow(ctx, query,
		exercise.ID,
		exercise.Name,
		string(exercise.BodyPart),
		string(exercise.Type),
		exercise.Description,
		string(exercise.Difficulty),
		equipment,
	).Scan(&exercise.CreatedAt, &exercise.UpdatedAt)
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id string) (*models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = $1`
	return scanExercise(r.db.QueryRow(ctx, query, id))
}

func (r *ExerciseRepository) List(ctx context.Context, filter ExerciseListFilter) ([]models.Exercise, int, error) {
	var where whereBuilder
	if filter.BodyPart != "" {
		where.add("body_part = ?", string(filter.BodyPart))
	}
	if filter.ExerciseType != "" {
		where.add("exercise_type = ?", string(filter.ExerciseType))
	}
	if filter.Difficulty != "" {
		where.add("difficulty = ?", string(filter.Difficulty))
	}
	if filter.Search != "" {
		where.add("(name ILIKE ? OR description ILIKE ?)", likePattern(filter.Search), likePattern(filter.Search))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM exercises ` + where.sql()
	if err := r.db.QueryRow(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM exercises %s ORDER BY name ASC, id ASC LIMIT %s OFFSET %s`,
		exerciseColumns, where.sql(), where.next(filter.Limit), where.next(filter.Offset),
	)
	exercises, err := r.query(ctx, query, where.args...)
	if err != nil {
		return nil, 0, err
	}
	return exercises, total, nil
}

// ListAll returns the full catalog ordered by body part, then name.
func (r *ExerciseRepository) ListAll(ctx context.Context) ([]models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises ORDER BY body_part ASC, name ASC`
	return r.query(ctx, query)
}

func (r *ExerciseRepository) Update(ctx context.Context, id string, input models.ExerciseUpdate) (*models.Exercise, error) {
	query := `
		UPDATE exercises
		SET name = COALESCE($1, name),
			description = COALESCE($2, description),
			body_part = COALESCE($3, body_part),
			exercise_type = COALESCE($4, exercise_type),
			difficulty = COALESCE($5, difficulty),
			equipment = COALESCE($6, equipment),
			updated_at = NOW()
		WHERE id = $7
		RETURNING ` + exerciseColumns
	return scanExercise(r.db.QueryRow(ctx, query,
		input.Name,
		input.Description,
		stringPtr(input.BodyPart),
		stringPtr(input.Type),
		stringPtr(input.Difficulty),
		input.Equipment,
		id,
	))
}

func (r *ExerciseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ExerciseRepository) Stats(ctx context.Context) (*models.ExerciseStats, error) {
	stats := &models.ExerciseStats{
		ByBodyPart:   map[models.BodyPart]int{},
		ByType:       map[models.ExerciseType]int{},
		ByDifficulty: map[models.Difficulty]int{},
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM exercises`).Scan(&stats.TotalExercises); err != nil {
		return nil, err
	}
	if err := r.countBy(ctx, "body_part", func(key string, n int) { stats.ByBodyPart[models.BodyPart(key)] = n }); err != nil {
		return nil, err
	}
	if err := r.countBy(ctx, "exercise_type", func(key string, n int) { stats.ByType[models.ExerciseType(key)] = n }); err != nil {
		return nil, err
	}
	if err := r.countBy(ctx, "difficulty", func(key string, n int) { stats.ByDifficulty[models.Difficulty(key)] = n }); err != nil {
		return nil, err
	}
	return stats, nil
}

// countBy groups on a fixed column name; column is never user input.
func (r *ExerciseRepository) countBy(ctx context.Context, column string, set func(string, int)) error {
	query := fmt.Sprintf(
		`SELECT %[1]s, COUNT(*) FROM exercises WHERE %[1]s IS NOT NULL GROUP BY %[1]s`,
		column,
	)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		set(key, n)
	}
	return rows.Err()
}

func (r *ExerciseRepository) query(ctx context.Context, query string, args ...any) ([]models.Exercise, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]models.Exercise, 0)
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, *exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

func scanExercise(row pgx.Row) (*models.Exercise, error) {
	var (
		exercise     models.Exercise
		bodyPart     string
		exerciseType string
		difficulty   string
	)
	err := row.Scan(
		&exercise.ID,
		&exercise.Name,
		&bodyPart,
		&exerciseType,
		&exercise.Description,
		&difficulty,
		&exercise.Equipment,
		&exercise.CreatedAt,
		&exercise.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	exercise.BodyPart = models.BodyPart(bodyPart)
	exercise.Type = models.ExerciseType(exerciseType)
	exercise.Difficulty = models.Difficulty(difficulty)
	if exercise.Equipment == nil {
		exercise.Equipment = []string{}
	}
	return &exercise, nil
}

func stringPtr[T ~string](value *T) *string {
	if value == nil {
		return nil
	}
	s := string(*value)
	return &s
}
