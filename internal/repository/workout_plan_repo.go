package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/priyankaj04/Gymlogs/internal/models"
)

const planColumns = `id, user_id, name, description, COALESCE(difficulty_level, ''), estimated_duration, muscle_types, is_public, created_at, updated_at`

const planExerciseColumns = `
	pe.plan_id, pe.exercise_id, pe.sets, pe.reps, pe.weight, pe.duration, pe.rest_time, pe.notes, pe.order_index,
	e.id, e.name, e.body_part, e.exercise_type, e.description, COALESCE(e.difficulty, ''), e.equipment, e.created_at, e.updated_at`

// OwnedPlan pairs a plan with the user that created it.
type OwnedPlan struct {
	models.WorkoutPlan
	UserID string
}

type WorkoutPlanListFilter struct {
	ViewerID    string
	MuscleTypes []string
	Difficulty  models.Difficulty
	DurationMin int
	DurationMax int
	Search      string
	IsPublic    *bool
	Offset      int
	Limit       int
}

type WorkoutPlanRepository struct {
	db DBTX
}

func NewWorkoutPlanRepository(db DBTX) *WorkoutPlanRepository {
	return &WorkoutPlanRepository{db: db}
}

// Create inserts the plan row only; entries are added with AddExercise.
func (r *WorkoutPlanRepository) Create(ctx context.Context, userID string, plan *models.WorkoutPlan) error {
	query := `
		INSERT INTO workout_plans (id, user_id, name, description, difficulty_level, estimated_duration, muscle_types, is_public)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
		RETURNING created_at, updated_at
	`
	tags := plan.Tags
	if tags == nil {
		tags = []string{}
	}
	return r.db.QueryRow(ctx, query,
		plan.ID,
		userID,
		plan.Name,
		plan.Description,
		string(plan.Difficulty),
		plan.EstimatedDuration,
		tags,
		plan.IsPublic,
	).Scan(&plan.CreatedAt, &plan.UpdatedAt)
}

// GetByID loads the plan with its entries, each joined with its exercise.
func (r *WorkoutPlanRepository) GetByID(ctx context.Context, id string) (*OwnedPlan, error) {
	query := `SELECT ` + planColumns + ` FROM workout_plans WHERE id = $1`
	plan, err := scanPlan(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	entries, err := r.exercisesFor(ctx, []string{plan.ID})
	if err != nil {
		return nil, err
	}
	plan.Exercises = entries[plan.ID]
	if plan.Exercises == nil {
		plan.Exercises = []models.WorkoutPlanExercise{}
	}
	return plan, nil
}

// List returns plans the viewer owns plus public plans, newest first.
func (r *WorkoutPlanRepository) List(ctx context.Context, filter WorkoutPlanListFilter) ([]OwnedPlan, int, error) {
	var where whereBuilder
	where.add("(user_id = ? OR is_public)", filter.ViewerID)
	if len(filter.MuscleTypes) > 0 {
		where.add("muscle_types && ?", filter.MuscleTypes)
	}
	if filter.Difficulty != "" {
		where.add("difficulty_level = ?", string(filter.Difficulty))
	}
	if filter.DurationMin > 0 {
		where.add("estimated_duration >= ?", filter.DurationMin)
	}
	if filter.DurationMax > 0 {
		where.add("estimated_duration <= ?", filter.DurationMax)
	}
	if filter.Search != "" {
		where.add("(name ILIKE ? OR description ILIKE ?)", likePattern(filter.Search), likePattern(filter.Search))
	}
	if filter.IsPublic != nil {
		where.add("is_public = ?", *filter.IsPublic)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workout_plans `+where.sql(), where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM workout_plans %s ORDER BY created_at DESC, id DESC LIMIT %s OFFSET %s`,
		planColumns, where.sql(), where.next(filter.Limit), where.next(filter.Offset),
	)
	rows, err := r.db.Query(ctx, query, where.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	plans := make([]OwnedPlan, 0)
	ids := make([]string, 0)
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, 0, err
		}
		plans = append(plans, *plan)
		ids = append(ids, plan.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	entries, err := r.exercisesFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range plans {
		plans[i].Exercises = entries[plans[i].ID]
		if plans[i].Exercises == nil {
			plans[i].Exercises = []models.WorkoutPlanExercise{}
		}
	}
	return plans, total, nil
}

func (r *WorkoutPlanRepository) Update(ctx context.Context, id string, input models.WorkoutPlanUpdate) error {
	query := `
		UPDATE workout_plans
		SET name = COALESCE($1, name),
			description = COALESCE($2, description),
			muscle_types = COALESCE($3, muscle_types),
			difficulty_level = COALESCE($4, difficulty_level),
			estimated_duration = COALESCE($5, estimated_duration),
			is_public = COALESCE($6, is_public),
			updated_at = NOW()
		WHERE id = $7
	`
	tag, err := r.db.Exec(ctx, query,
		input.Name,
		input.Description,
		input.Tags,
		stringPtr(input.Difficulty),
		input.EstimatedDuration,
		input.IsPublic,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *WorkoutPlanRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM workout_plans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Touch bumps updated_at after an entry change.
func (r *WorkoutPlanRepository) Touch(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `UPDATE workout_plans SET updated_at = NOW() WHERE id = $1`, id)
	return err
}

// NextOrder returns the order_index after the last entry of the plan.
func (r *WorkoutPlanRepository) NextOrder(ctx context.Context, planID string) (int, error) {
	var next int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(order_index) + 1, 0) FROM workout_plan_exercises WHERE plan_id = $1`,
		planID,
	).Scan(&next)
	return next, err
}

// AddExercise fails with a unique violation when the exercise is already in
// the plan.
func (r *WorkoutPlanRepository) AddExercise(ctx context.Context, planID string, entry models.WorkoutPlanExercise) error {
	query := `
		INSERT INTO workout_plan_exercises (plan_id, exercise_id, sets, reps, weight, duration, rest_time, notes, order_index)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		planID,
		entry.ExerciseID,
		entry.Sets,
		entry.Reps,
		entry.Weight,
		entry.Duration,
		entry.RestTime,
		entry.Notes,
		entry.Order,
	)
	return err
}

func (r *WorkoutPlanRepository) UpdateExercise(ctx context.Context, planID, exerciseID string, input models.PlanExerciseUpdate) error {
	query := `
		UPDATE workout_plan_exercises
		SET sets = COALESCE($1, sets),
			reps = COALESCE($2, reps),
			weight = COALESCE($3, weight),
			duration = COALESCE($4, duration),
			rest_time = COALESCE($5, rest_time),
			notes = COALESCE($6, notes),
			order_index = COALESCE($7, order_index)
		WHERE plan_id = $8 AND exercise_id = $9
	`
	tag, err := r.db.Exec(ctx, query,
		input.Sets,
		input.Reps,
		input.Weight,
		input.Duration,
		input.RestTime,
		input.Notes,
		input.Order,
		planID,
		exerciseID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *WorkoutPlanRepository) GetExercise(ctx context.Context, planID, exerciseID string) (*models.WorkoutPlanExercise, error) {
	query := `
		SELECT ` + planExerciseColumns + `
		FROM workout_plan_exercises pe
		JOIN exercises e ON e.id = pe.exercise_id
		WHERE pe.plan_id = $1 AND pe.exercise_id = $2
	`
	_, entry, err := scanPlanExercise(r.db.QueryRow(ctx, query, planID, exerciseID))
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *WorkoutPlanRepository) RemoveExercise(ctx context.Context, planID, exerciseID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM workout_plan_exercises WHERE plan_id = $1 AND exercise_id = $2`,
		planID, exerciseID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Stats summarizes the plans owned by userID.
func (r *WorkoutPlanRepository) Stats(ctx context.Context, userID string) (*models.WorkoutPlanStats, error) {
	stats := &models.WorkoutPlanStats{
		ByDifficulty: map[models.Difficulty]int{},
		ByMuscleType: map[string]int{},
	}

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(AVG(estimated_duration), 0)
		FROM workout_plans
		WHERE user_id = $1
	`, userID).Scan(&stats.TotalPlans, &stats.AverageDuration)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM workout_plan_exercises pe
		JOIN workout_plans p ON p.id = pe.plan_id
		WHERE p.user_id = $1
	`, userID).Scan(&stats.TotalExercises)
	if err != nil {
		return nil, err
	}

	if err := r.countGroups(ctx, `
		SELECT difficulty_level, COUNT(*)
		FROM workout_plans
		WHERE user_id = $1 AND difficulty_level IS NOT NULL
		GROUP BY difficulty_level
	`, userID, func(key string, n int) { stats.ByDifficulty[models.Difficulty(key)] = n }); err != nil {
		return nil, err
	}

	if err := r.countGroups(ctx, `
		SELECT muscle_type, COUNT(*)
		FROM workout_plans, unnest(muscle_types) AS muscle_type
		WHERE user_id = $1
		GROUP BY muscle_type
	`, userID, func(key string, n int) { stats.ByMuscleType[key] = n }); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *WorkoutPlanRepository) countGroups(ctx context.Context, query, userID string, set func(string, int)) error {
	rows, err := r.db.Query(ctx, query, userID)
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

// exercisesFor loads the entries of several plans, ordered by order_index.
func (r *WorkoutPlanRepository) exercisesFor(ctx context.Context, planIDs []string) (map[string][]models.WorkoutPlanExercise, error) {
	out := make(map[string][]models.WorkoutPlanExercise, len(planIDs))
	if len(planIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT ` + planExerciseColumns + `
		FROM workout_plan_exercises pe
		JOIN exercises e ON e.id = pe.exercise_id
		WHERE pe.plan_id = ANY($1)
		ORDER BY pe.plan_id, pe.order_index ASC
	`
	rows, err := r.db.Query(ctx, query, planIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		planID, entry, err := scanPlanExercise(rows)
		if err != nil {
			return nil, err
		}
		out[planID] = append(out[planID], *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanPlan(row pgx.Row) (*OwnedPlan, error) {
	var (
		plan       OwnedPlan
		difficulty string
	)
	err := row.Scan(
		&plan.ID,
		&plan.UserID,
		&plan.Name,
		&plan.Description,
		&difficulty,
		&plan.EstimatedDuration,
		&plan.Tags,
		&plan.IsPublic,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	plan.Difficulty = models.Difficulty(difficulty)
	if plan.Tags == nil {
		plan.Tags = []string{}
	}
	return &plan, nil
}

func scanPlanExercise(row pgx.Row) (string, *models.WorkoutPlanExercise, error) {
	var (
		planID       string
		entry        models.WorkoutPlanExercise
		exercise     models.Exercise
		bodyPart     string
		exerciseType string
		difficulty   string
	)
	err := row.Scan(
		&planID,
		&entry.ExerciseID,
		&entry.Sets,
		&entry.Reps,
		&entry.Weight,
		&entry.Duration,
		&entry.RestTime,
		&entry.Notes,
		&entry.Order,
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
		return "", nil, err
	}
	exercise.BodyPart = models.BodyPart(bodyPart)
	exercise.Type = models.ExerciseType(exerciseType)
	exercise.Difficulty = models.Difficulty(difficulty)
	entry.Exercise = &exercise
	return planID, &entry, nil
}
