package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/priyankaj04/Gymlogs/internal/models"
	"github.com/priyankaj04/Gymlogs/internal/wire"
)

const workoutPlansPath = "/api/workout-plans"

type WorkoutPlanFilters struct {
	MuscleTypes []string
	Difficulty  models.Difficulty
	DurationMin int
	DurationMax int
	Search      string
	IsPublic    *bool
	Page        int
	Limit       int
}

func (f WorkoutPlanFilters) Values() url.Values {
	q := url.Values{}
	if len(f.MuscleTypes) > 0 {
		q.Set("muscle_types", strings.Join(f.MuscleTypes, ","))
	}
	setFilter(q, "difficulty", string(f.Difficulty))
	if f.DurationMin > 0 {
		q.Set("duration_min", strconv.Itoa(f.DurationMin))
	}
	if f.DurationMax > 0 {
		q.Set("duration_max", strconv.Itoa(f.DurationMax))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.IsPublic != nil {
		q.Set("is_public", strconv.FormatBool(*f.IsPublic))
	}
	setPage(q, f.Page, f.Limit)
	return q
}

type WorkoutPlanList struct {
	Plans      []models.WorkoutPlan
	Pagination models.PaginationMeta
}

type WorkoutPlanClient struct {
	api *Client
}

func NewWorkoutPlanClient(api *Client) *WorkoutPlanClient {
	return &WorkoutPlanClient{api: api}
}

func (c *WorkoutPlanClient) Create(ctx context.Context, plan models.WorkoutPlan) (*models.WorkoutPlan, error) {
	var env wire.Envelope[wire.WorkoutPlan]
	if err := c.api.do(ctx, http.MethodPost, workoutPlansPath, nil, c.api.sessionToken(ctx), wire.NewWorkoutPlanInput(plan), &env); err != nil {
		return nil, fmt.Errorf("create workout plan: %w", err)
	}
	created := env.Data.Model()
	return &created, nil
}

func (c *WorkoutPlanClient) List(ctx context.Context, filters WorkoutPlanFilters) (*WorkoutPlanList, error) {
	var env wire.Envelope[[]wire.WorkoutPlan]
	if err := c.api.do(ctx, http.MethodGet, workoutPlansPath, filters.Values(), c.api.sessionToken(ctx), nil, &env); err != nil {
		return nil, fmt.Errorf("list workout plans: %w", err)
	}
	return &WorkoutPlanList{
		Plans:      wire.WorkoutPlanModels(env.Data),
		Pagination: env.Pagination.Model(),
	}, nil
}

func (c *WorkoutPlanClient) Get(ctx context.Context, id string) (*models.WorkoutPlan, error) {
	var env wire.Envelope[wire.WorkoutPlan]
	if err := c.api.do(ctx, http.MethodGet, resourcePath(workoutPlansPath, id), nil, c.api.sessionToken(ctx), nil, &env); err != nil {
		return nil, fmt.Errorf("get workout plan %s: %w", id, err)
	}
	plan := env.Data.Model()
	return &plan, nil
}

func (c *WorkoutPlanClient) Update(ctx context.Context, id string, update models.WorkoutPlanUpdate) (*models.WorkoutPlan, error) {
	var env wire.Envelope[wire.WorkoutPlan]
	if err := c.api.do(ctx, http.MethodPut, resourcePath(workoutPlansPath, id), nil, c.api.sessionToken(ctx), wire.FromWorkoutPlanUpdate(update), &env); err != nil {
		return nil, fmt.Errorf("update workout plan %s: %w", id, err)
	}
	plan := env.Data.Model()
	return &plan, nil
}

func (c *WorkoutPlanClient) Delete(ctx context.Context, id string) error {
	if err := c.api.do(ctx, http.MethodDelete, resourcePath(workoutPlansPath, id), nil, c.api.sessionToken(ctx), nil, nil); err != nil {
		return fmt.Errorf("delete workout plan %s: %w", id, err)
	}
	return nil
}

func (c *WorkoutPlanClient) Stats(ctx context.Context) (*models.WorkoutPlanStats, error) {
	var env wire.Envelope[wire.WorkoutPlanStats]
	if err := c.api.do(ctx, http.MethodGet, workoutPlansPath+"/stats", nil, c.api.sessionToken(ctx), nil, &env); err != nil {
		return nil, fmt.Errorf("get workout plan stats: %w", err)
	}
	stats := env.Data.Model()
	return &stats, nil
}

func (c *WorkoutPlanClient) HealthCheck(ctx context.Context) bool {
	return c.api.healthy(ctx, workoutPlansPath+"/health")
}

// AddExercise appends entry to the plan. Adding an exercise the plan already
// holds fails with an error matching ErrConflict.
func (c *WorkoutPlanClient) AddExercise(ctx context.Context, planID string, entry models.WorkoutPlanExercise) (*models.WorkoutPlanExercise, error) {
	body := wire.FromPlanExercise(entry)
	body.Exercise = nil

	var env wire.Envelope[wire.PlanExercise]
	if err := c.api.do(ctx, http.MethodPost, resourcePath(workoutPlansPath, planID, "exercises"), nil, c.api.sessionToken(ctx), body, &env); err != nil {
		return nil, fmt.Errorf("add exercise %s to plan %s: %w", entry.ExerciseID, planID, err)
	}
	added := env.Data.Model()
	return &added, nil
}

func (c *WorkoutPlanClient) UpdateExercise(ctx context.Context, planID, exerciseID string, update models.PlanExerciseUpdate) (*models.WorkoutPlanExercise, error) {
	var env wire.Envelope[wire.PlanExercise]
	path := resourcePath(workoutPlansPath, planID, "exercises", exerciseID)
	if err := c.api.do(ctx, http.MethodPut, path, nil, c.api.sessionToken(ctx), wire.FromPlanExerciseUpdate(update), &env); err != nil {
		return nil, fmt.Errorf("update exercise %s in plan %s: %w", exerciseID, planID, err)
	}
	updated := env.Data.Model()
	return &updated, nil
}

func (c *WorkoutPlanClient) RemoveExercise(ctx context.Context, planID, exerciseID string) error {
	path := resourcePath(workoutPlansPath, planID, "exercises", exerciseID)
	if err := c.api.do(ctx, http.MethodDelete, path, nil, c.api.sessionToken(ctx), nil, nil); err != nil {
		return fmt.Errorf("remove exercise %s from plan %s: %w", exerciseID, planID, err)
	}
	return nil
}
