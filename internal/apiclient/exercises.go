package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/priyankaj04/Gymlogs/internal/models"
	"github.com/priyankaj04/Gymlogs/internal/wire"
)

const (
	exercisesPath = "/api/exercises"

	// FilterAll disables a filter in the same way an empty value does.
	FilterAll = "all"
)

type ExerciseFilters struct {
	BodyPart     models.BodyPart
	ExerciseType models.ExerciseType
	Difficulty   models.Difficulty
	Search       string
	Page         int
	Limit        int
}

func (f ExerciseFilters) Values() url.Values {
	q := url.Values{}
	setFilter(q, "body_part", string(f.BodyPart))
	setFilter(q, "exercise_type", string(f.ExerciseType))
	setFilter(q, "difficulty", string(f.Difficulty))
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	setPage(q, f.Page, f.Limit)
	return q
}

func setFilter(q url.Values, key, value string) {
	if value != "" && value != FilterAll {
		q.Set(key, value)
	}
}

func setPage(q url.Values, page, limit int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
}

type ExerciseList struct {
	Exercises  []models.Exercise
	Pagination models.PaginationMeta
}

type ExerciseClient struct {
	api *Client
}

func NewExerciseClient(api *Client) *ExerciseClient {
	return &ExerciseClient{api: api}
}

func (c *ExerciseClient) Create(ctx context.Context, exercise models.Exercise) (*models.Exercise, error) {
	var env wire.Envelope[wire.Exercise]
	if err := c.api.do(ctx, http.MethodPost, exercisesPath, nil, c.api.sessionToken(ctx), wire.NewExerciseInput(exercise), &env); err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	created := env.Data.Model()
	return &created, nil
}

func (c *ExerciseClient) List(ctx context.Context, filters ExerciseFilters) (*ExerciseList, error) {
	var env wire.Envelope[[]wire.Exercise]
	if err := c.api.do(ctx, http.MethodGet, exercisesPath, filters.Values(), c.api.sessionToken(ctx), nil, &env); err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return &ExerciseList{
		Exercises:  wire.ExerciseModels(env.Data),
		Pagination: env.Pagination.Model(),
	}, nil
}

func (c *ExerciseClient) Get(ctx context.Context, id string) (*models.Exercise, error) {
	var env wire.Envelope[wire.Exercise]
	if err := c.api.do(ctx, http.MethodGet, resourcePath(exercisesPath, id), nil, c.api.sessionToken(ctx), nil, &env); err != nil {
		return nil, fmt.Errorf("get exercise %s: %w", id, err)
	}
	exercise := env.Data.Model()
	return &exercise, nil
}

func (c *ExerciseClient) Update(ctx context.Context, id string, update models.ExerciseUpdate) (*models.Exercise, error) {
	var env wire.Envelope[wire.Exercise]
	if err := c.api.do(ctx, http.MethodPut, resourcePath(exercisesPath, id), nil, c.api.sessionToken(ctx), wire.FromExerciseUpdate(update), &env); err != nil {
		return nil, fmt.Errorf("update exercise %s: %w", id, err)
	}
	exercise := env.Data.Model()
	return &exercise, nil
}

func (c *ExerciseClient) Delete(ctx context.Context, id string) error {
	if err := c.api.do(ctx, http.MethodDelete, resourcePath(exercisesPath, id), nil, c.api.sessionToken(ctx), nil, nil); err != nil {
		return fmt.Errorf("delete exercise %s: %w", id, err)
	}
	return nil
}

func (c *ExerciseClient) Constants(ctx context.Context) (*models.ExerciseConstants, error) {
	var env wire.Envelope[wire.ExerciseConstants]
	if err := c.api.do(ctx, http.MethodGet, exercisesPath+"/constants", nil, "", nil, &env); err != nil {
		return nil, fmt.Errorf("get exercise constants: %w", err)
	}
	constants := env.Data.Model()
	return &constants, nil
}

func (c *ExerciseClient) FilterValues(ctx context.Context) (*models.ExerciseFilterValues, error) {
	var env wire.Envelope[wire.ExerciseFilterValues]
	if err := c.api.do(ctx, http.MethodGet, exercisesPath+"/filters", nil, "", nil, &env); err != nil {
		return nil, fmt.Errorf("get exercise filters: %w", err)
	}
	values := env.Data.Model()
	return &values, nil
}

func (c *ExerciseClient) Stats(ctx context.Context) (*models.ExerciseStats, error) {
	var env wire.Envelope[wire.ExerciseStats]
	if err := c.api.do(ctx, http.MethodGet, exercisesPath+"/stats", nil, c.api.sessionToken(ctx), nil, &env); err != nil {
		return nil, fmt.Errorf("get exercise stats: %w", err)
	}
	stats := env.Data.Model()
	return &stats, nil
}

func (c *ExerciseClient) ByBodyPart(ctx context.Context) (map[models.BodyPart][]models.Exercise, error) {
	var env wire.Envelope[map[models.BodyPart][]wire.Exercise]
	if err := c.api.do(ctx, http.MethodGet, exercisesPath+"/by-body-part", nil, c.api.sessionToken(ctx), nil, &env); err != nil {
		return nil, fmt.Errorf("get exercises by body part: %w", err)
	}
	grouped := make(map[models.BodyPart][]models.Exercise, len(env.Data))
	for part, exercises := range env.Data {
		grouped[part] = wire.ExerciseModels(exercises)
	}
	return grouped, nil
}

func (c *ExerciseClient) HealthCheck(ctx context.Context) bool {
	return c.api.healthy(ctx, exercisesPath+"/health")
}
