package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/priyankaj04/Gymlogs/internal/middleware"
	"github.com/priyankaj04/Gymlogs/internal/models"
	"github.com/priyankaj04/Gymlogs/internal/repository"
	"github.com/priyankaj04/Gymlogs/internal/services"
)

type stubPlanService struct {
	plans        []models.WorkoutPlan
	addErr       error
	getErr       error
	lastFilter   repository.WorkoutPlanListFilter
	lastCreate   models.WorkoutPlan
	lastEntry    models.WorkoutPlanExercise
	lastActorID  string
	lastPlanID   string
	lastUpdate   models.PlanExerciseUpdate
	removedEntry string
	planUpdates  int
}

func (s *stubPlanService) CreatePlan(_ context.Context, userID string, plan models.WorkoutPlan) (*models.WorkoutPlan, error) {
	s.lastActorID = userID
	s.lastCreate = plan
	plan.ID = "p-new"
	return &plan, nil
}

func (s *stubPlanService) ListPlans(_ context.Context, filter repository.WorkoutPlanListFilter) ([]models.WorkoutPlan, int, error) {
	s.lastFilter = filter
	return s.plans, len(s.plans), nil
}

func (s *stubPlanService) GetPlan(_ context.Context, actorID, planID string) (*models.WorkoutPlan, error) {
	s.lastActorID = actorID
	s.lastPlanID = planID
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &models.WorkoutPlan{ID: planID, Name: "Push Day"}, nil
}

func (s *stubPlanService) UpdatePlan(_ context.Context, actorID, planID string, update models.WorkoutPlanUpdate) (*models.WorkoutPlan, error) {
	s.lastActorID = actorID
	s.planUpdates++
	plan := &models.WorkoutPlan{ID: planID}
	if update.Name != nil {
		plan.Name = *update.Name
	}
	return plan, nil
}

func (s *stubPlanService) DeletePlan(_ context.Context, actorID, planID string) error {
	s.lastActorID = actorID
	s.lastPlanID = planID
	return nil
}

func (s *stubPlanService) AddExercise(_ context.Context, actorID, planID string, entry models.WorkoutPlanExercise) (*models.WorkoutPlanExercise, error) {
	s.lastActorID = actorID
	s.lastPlanID = planID
	s.lastEntry = entry
	if s.addErr != nil {
		return nil, s.addErr
	}
	return &entry, nil
}

func (s *stubPlanService) UpdateExercise(_ context.Context, _ string, _ string, exerciseID string, update models.PlanExerciseUpdate) (*models.WorkoutPlanExercise, error) {
	s.lastUpdate = update
	return &models.WorkoutPlanExercise{ExerciseID: exerciseID}, nil
}

func (s *stubPlanService) RemoveExercise(_ context.Context, _ string, _ string, exerciseID string) error {
	s.removedEntry = exerciseID
	return nil
}

func (s *stubPlanService) Stats(_ context.Context, actorID string) (*models.WorkoutPlanStats, error) {
	s.lastActorID = actorID
	return &models.WorkoutPlanStats{TotalPlans: 4, ByMuscleType: map[string]int{"chest": 2}}, nil
}

func newPlanTestApp(service *stubPlanService, userID string) *fiber.App {
	handler := NewWorkoutPlanHandler(service)
	app := fiber.New()
	plans := app.Group("/api/workout-plans", func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals(middleware.LocalUserID, userID)
		}
		return c.Next()
	})
	plans.Get("/", handler.ListPlans)
	plans.Post("/", handler.CreatePlan)
	plans.Get("/stats", handler.Stats)
	plans.Get("/:id", handler.GetPlan)
	plans.Put("/:id", handler.UpdatePlan)
	plans.Delete("/:id", handler.DeletePlan)
	plans.Post("/:id/exercises", handler.AddExercise)
	plans.Put("/:id/exercises/:exerciseId", handler.UpdateExercise)
	plans.Delete("/:id/exercises/:exerciseId", handler.RemoveExercise)
	return app
}

func TestListPlansParsesFilters(t *testing.T) {
	service := &stubPlanService{plans: []models.WorkoutPlan{{ID: "p1", Name: "Push Day", Tags: []string{"chest"}}}}
	app := newPlanTestApp(service, "u1")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/workout-plans?muscle_types=chest,%20triceps&difficulty=all&duration_max=60&is_public=true&page=1&limit=5", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	payload := decodeBody(t, resp)

	filter := service.lastFilter
	if filter.ViewerID != "u1" {
		t.Fatalf("expected viewer u1, got %q", filter.ViewerID)
	}
	if len(filter.MuscleTypes) != 2 || filter.MuscleTypes[1] != "triceps" {
		t.Fatalf("unexpected muscle types: %v", filter.MuscleTypes)
	}
	if filter.Difficulty != "" || filter.DurationMax != 60 || filter.Limit != 5 {
		t.Fatalf("unexpected filter: %+v", filter)
	}
	if filter.IsPublic == nil || !*filter.IsPublic {
		t.Fatalf("expected is_public=true, got %v", filter.IsPublic)
	}

	data, _ := payload["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("expected one plan, got %d", len(data))
	}
	plan, _ := data[0].(map[string]any)
	if tags, _ := plan["muscle_types"].([]any); len(tags) != 1 {
		t.Fatalf("expected muscle_types on the wire, got %v", plan)
	}
}

func TestListPlansRejectsBadNumbers(t *testing.T) {
	app := newPlanTestApp(&stubPlanService{}, "u1")

	for _, query := range []string{"duration_min=-1", "duration_max=abc", "is_public=maybe", "difficulty=expert"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/workout-plans?"+query, nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", query, resp.StatusCode)
		}
	}
}

func TestPlanRoutesRequireUserID(t *testing.T) {
	app := newPlanTestApp(&stubPlanService{}, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/workout-plans/p1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestCreatePlanForwardsEntries(t *testing.T) {
	service := &stubPlanService{}
	app := newPlanTestApp(service, "u1")

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/workout-plans", `{
		"name":"Legs",
		"muscle_types":["legs"],
		"difficulty_level":"intermediate",
		"exercises":[{"exercise_id":"e1","sets":3,"reps":10,"order_index":0}]
	}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()
	if service.lastActorID != "u1" {
		t.Fatalf("expected owner u1, got %q", service.lastActorID)
	}
	if len(service.lastCreate.Exercises) != 1 || service.lastCreate.Exercises[0].Reps != "10" {
		t.Fatalf("unexpected entries: %+v", service.lastCreate.Exercises)
	}
	if service.lastCreate.Difficulty != models.DifficultyIntermediate {
		t.Fatalf("expected intermediate, got %q", service.lastCreate.Difficulty)
	}
}

func TestUpdatePlanRejectsEmptyDifficulty(t *testing.T) {
	service := &stubPlanService{}
	app := newPlanTestApp(service, "u1")

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/workout-plans/p1", `{"difficulty_level":""}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonRequest(http.MethodPut, "/api/workout-plans/p1", `{"difficulty_level":"advanced"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.planUpdates != 1 {
		t.Fatalf("expected only the valid patch to reach the service, got %d calls", service.planUpdates)
	}
}

func TestGetPlanMapsErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: pgx.ErrNoRows, want: http.StatusNotFound},
		{err: services.ErrForbidden, want: http.StatusForbidden},
		{err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		app := newPlanTestApp(&stubPlanService{getErr: tt.err}, "u1")
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/workout-plans/p1", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		payload := decodeBody(t, resp)
		if resp.StatusCode != tt.want {
			t.Fatalf("%v: expected %d, got %d", tt.err, tt.want, resp.StatusCode)
		}
		if _, ok := payload["error"]; !ok {
			t.Fatalf("expected error field, got %v", payload)
		}
	}
}

func TestAddExerciseToPlan(t *testing.T) {
	service := &stubPlanService{}
	app := newPlanTestApp(service, "u1")

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/workout-plans/p1/exercises",
		`{"exercise_id":"e2","sets":4,"reps":"8-10","rest_time":90}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()
	if service.lastPlanID != "p1" || service.lastEntry.ExerciseID != "e2" {
		t.Fatalf("unexpected forward: plan=%s entry=%+v", service.lastPlanID, service.lastEntry)
	}
	if service.lastEntry.RestTime == nil || *service.lastEntry.RestTime != 90 {
		t.Fatalf("expected rest time 90, got %v", service.lastEntry.RestTime)
	}

	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/workout-plans/p1/exercises", `{"sets":4}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without exercise_id, got %d", resp.StatusCode)
	}
}

func TestAddExerciseErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("%w: exercise already in workout plan", services.ErrConflict), want: http.StatusConflict},
		{err: services.ErrExerciseNotFound, want: http.StatusBadRequest},
		{err: services.ErrForbidden, want: http.StatusForbidden},
	}
	for _, tt := range tests {
		app := newPlanTestApp(&stubPlanService{addErr: tt.err}, "u1")
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/workout-plans/p1/exercises", `{"exercise_id":"e1"}`))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.want {
			t.Fatalf("%v: expected %d, got %d", tt.err, tt.want, resp.StatusCode)
		}
	}
}

func TestUpdateAndRemovePlanExercise(t *testing.T) {
	service := &stubPlanService{}
	app := newPlanTestApp(service, "u1")

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/workout-plans/p1/exercises/e1", `{"reps":12,"order_index":2}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastUpdate.Reps == nil || *service.lastUpdate.Reps != "12" {
		t.Fatalf("expected reps 12, got %v", service.lastUpdate.Reps)
	}
	if service.lastUpdate.Order == nil || *service.lastUpdate.Order != 2 {
		t.Fatalf("expected order 2, got %v", service.lastUpdate.Order)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/workout-plans/p1/exercises/e1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	payload := decodeBody(t, resp)
	if service.removedEntry != "e1" {
		t.Fatalf("expected e1 removed, got %q", service.removedEntry)
	}
	if payload["message"] != "Exercise removed from workout plan" {
		t.Fatalf("unexpected message: %v", payload["message"])
	}
}

func TestPlanStatsUsesCaller(t *testing.T) {
	service := &stubPlanService{}
	app := newPlanTestApp(service, "u9")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/workout-plans/stats", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	payload := decodeBody(t, resp)
	if service.lastActorID != "u9" {
		t.Fatalf("expected stats for u9, got %q", service.lastActorID)
	}
	data, _ := payload["data"].(map[string]any)
	if data["total_plans"] != float64(4) {
		t.Fatalf("unexpected stats: %v", data)
	}
}
