package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/priyankaj04/Gymlogs/internal/middleware"
	"github.com/priyankaj04/Gymlogs/internal/models"
	"github.com/priyankaj04/Gymlogs/internal/repository"
	"github.com/priyankaj04/Gymlogs/internal/wire"
)

type workoutPlanService interface {
	CreatePlan(ctx context.Context, userID string, plan models.WorkoutPlan) (*models.WorkoutPlan, error)
	ListPlans(ctx context.Context, filter repository.WorkoutPlanListFilter) ([]models.WorkoutPlan, int, error)
	GetPlan(ctx context.Context, actorID, planID string) (*models.WorkoutPlan, error)
	UpdatePlan(ctx context.Context, actorID, planID string, update models.WorkoutPlanUpdate) (*models.WorkoutPlan, error)
	DeletePlan(ctx context.Context, actorID, planID string) error
	AddExercise(ctx context.Context, actorID, planID string, entry models.WorkoutPlanExercise) (*models.WorkoutPlanExercise, error)
	UpdateExercise(ctx context.Context, actorID, planID, exerciseID string, update models.PlanExerciseUpdate) (*models.WorkoutPlanExercise, error)
	RemoveExercise(ctx context.Context, actorID, planID, exerciseID string) error
	Stats(ctx context.Context, actorID string) (*models.WorkoutPlanStats, error)
}

type WorkoutPlanHandler struct {
	service workoutPlanService
}

func NewWorkoutPlanHandler(service workoutPlanService) *WorkoutPlanHandler {
	return &WorkoutPlanHandler{service: service}
}

func (h *WorkoutPlanHandler) ListPlans(c *fiber.Ctx) error {
	actorID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized(c)
	}
	page, limit := pageParams(c)

	difficulty, ok := parseEnumQuery[models.Difficulty](c.Query("difficulty"))
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request", "difficulty is not a known difficulty level")
	}
	durationMin, err := parseNonNegativeInt(c.Query("duration_min"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request", "duration_min must be a valid non-negative integer")
	}
	durationMax, err := parseNonNegativeInt(c.Query("duration_max"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request", "duration_max must be a valid non-negative integer")
	}

	var isPublic *bool
	if raw := c.Query("is_public"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return errorResponse(c, fiber.StatusBadRequest, "Invalid request", "is_public must be true or false")
		}
		isPublic = &value
	}

	plans, total, err := h.service.ListPlans(c.Context(), repository.WorkoutPlanListFilter{
		ViewerID:    actorID,
		MuscleTypes: splitList(c.Query("muscle_types")),
		Difficulty:  difficulty,
		DurationMin: durationMin,
		DurationMax: durationMax,
		Search:      strings.TrimSpace(c.Query("search")),
		IsPublic:    isPublic,
		Offset:      (page - 1) * limit,
		Limit:       limit,
	})
	if err != nil {
		return mapServiceError(c, err, "Workout plan")
	}

	return listResponse(c, wire.FromWorkoutPlans(plans), buildPaginationMeta(page, limit, total))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (h *WorkoutPlanHandler) CreatePlan(c *fiber.Ctx) error {
	actorID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized(c)
	}

	var req wire.WorkoutPlanInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	plan, err := h.service.CreatePlan(c.Context(), actorID, req.Model())
	if err != nil {
		return mapServiceError(c, err, "Workout plan")
	}
	return dataResponse(c, fiber.StatusCreated, wire.FromWorkoutPlan(*plan))
}

func (h *WorkoutPlanHandler) GetPlan(c *fiber.Ctx) error {
	actorID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized(c)
	}

	plan, err := h.service.GetPlan(c.Context(), actorID, c.Params("id"))
	if err != nil {
		return mapServiceError(c, err, "Workout plan")
	}
	return dataResponse(c, fiber.StatusOK, wire.FromWorkoutPlan(*plan))
}

func (h *WorkoutPlanHandler) UpdatePlan(c *fiber.Ctx) error {
	actorID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized(c)
	}

	var req wire.WorkoutPlanPatch
	if err := parseBody(c, &req); err != nil {
		return err
	}

	plan, err := h.service.UpdatePlan(c.Context(), actorID, c.Params("id"), req.Update())
	if err != nil {
		return mapServiceError(c, err, "Workout plan")
	}
	return dataResponse(c, fiber.StatusOK, wire.FromWorkoutPlan(*plan))
}

func (h *WorkoutPlanHandler) DeletePlan(c *fiber.Ctx) error {
	actorID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.service.DeletePlan(c.Context(), actorID, c.Params("id")); err != nil {
		return mapServiceError(c, err, "Workout plan")
	}
	return messageResponse(c, "Workout plan deleted successfully")
}

func (h *WorkoutPlanHandler) AddExercise(c *fiber.Ctx) error {
	actorID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized(c)
	}

	var req wire.PlanExercise
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req.Exercise = nil

	entry, err := h.service.AddExercise(c.Context(), actorID, c.Params("id"), req.Model())
	if err != nil {
		return mapServiceError(c, err, "Workout plan")
	}
	return dataResponse(c, fiber.StatusCreated, wire.FromPlanExercise(*entry))
}

func (h *WorkoutPlanHandler) UpdateExercise(c *fiber.Ctx) error {
	actorID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized(c)
	}

	var req wire.PlanExercisePatch
	if err := parseBody(c, &req); err != nil {
		return err
	}

	entry, err := h.service.UpdateExercise(c.Context(), actorID, c.Params("id"), c.Params("exerciseId"), req.Update())
	if err != nil {
		return mapServiceError(c, err, "Workout plan exercise")
	}
	return dataResponse(c, fiber.StatusOK, wire.FromPlanExercise(*entry))
}

func (h *WorkoutPlanHandler) RemoveExercise(c *fiber.Ctx) error {
	actorID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.service.RemoveExercise(c.Context(), actorID, c.Params("id"), c.Params("exerciseId")); err != nil {
		return mapServiceError(c, err, "Workout plan exercise")
	}
	return messageResponse(c, "Exercise removed from workout plan")
}

func (h *WorkoutPlanHandler) Stats(c *fiber.Ctx) error {
	actorID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized(c)
	}

	stats, err := h.service.Stats(c.Context(), actorID)
	if err != nil {
		return mapServiceError(c, err, "Workout plan")
	}
	return dataResponse(c, fiber.StatusOK, wire.FromWorkoutPlanStats(*stats))
}
