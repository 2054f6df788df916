package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/priyankaj04/Gymlogs/internal/models"
	"github.com/priyankaj04/Gymlogs/internal/repository"
	"github.com/priyankaj04/Gymlogs/internal/wire"
)

type exerciseCatalog interface {
	Create(ctx context.Context, exercise *models.Exercise) error
	GetByID(ctx context.Context, id string) (*models.Exercise, error)
	List(ctx context.Context, filter repository.ExerciseListFilter) ([]models.Exercise, int, error)
	ListAll(ctx context.Context) ([]models.Exercise, error)
	Update(ctx context.Context, id string, input models.ExerciseUpdate) (*models.Exercise, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.ExerciseStats, error)
}

type ExerciseHandler struct {
	exercises exerciseCatalog
}

func NewExerciseHandler(exercises exerciseCatalog) *ExerciseHandler {
	return &ExerciseHandler{exercises: exercises}
}

type enumValue interface {
	~string
	Valid() bool
}

// parseEnumQuery treats "" and "all" as no filter.
func parseEnumQuery[T enumValue](raw string) (T, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "all" {
		return "", true
	}
	value := T(raw)
	return value, value.Valid()
}

func (h *ExerciseHandler) ListExercises(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	bodyPart, ok := parseEnumQuery[models.BodyPart](c.Query("body_part"))
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request", "body_part is not a known body part")
	}
	exerciseType, ok := parseEnumQuery[models.ExerciseType](c.Query("exercise_type"))
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request", "exercise_type is not a known exercise type")
	}
	difficulty, ok := parseEnumQuery[models.Difficulty](c.Query("difficulty"))
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request", "difficulty is not a known difficulty level")
	}

	exercises, total, err := h.exercises.List(c.Context(), repository.ExerciseListFilter{
		BodyPart:     bodyPart,
		ExerciseType: exerciseType,
		Difficulty:   difficulty,
		Search:       strings.TrimSpace(c.Query("search")),
		Offset:       (page - 1) * limit,
		Limit:        limit,
	})
	if err != nil {
		return mapServiceError(c, err, "Exercise")
	}

	return listResponse(c, wire.FromExercises(exercises), buildPaginationMeta(page, limit, total))
}

func (h *ExerciseHandler) GetExercise(c *fiber.Ctx) error {
	exercise, err := h.exercises.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(c, err, "Exercise")
	}
	return dataResponse(c, fiber.StatusOK, wire.FromExercise(*exercise))
}

func (h *ExerciseHandler) CreateExercise(c *fiber.Ctx) error {
	var req wire.ExerciseInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	exercise := req.Model()
	exercise.Name = strings.TrimSpace(exercise.Name)
	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	if err := h.exercises.Create(c.Context(), &exercise); err != nil {
		if repository.IsUniqueViolation(err) {
			return errorResponse(c, fiber.StatusConflict, "Conflict", "Exercise id already exists")
		}
		return mapServiceError(c, err, "Exercise")
	}
	return dataResponse(c, fiber.StatusCreated, wire.FromExercise(exercise))
}

func (h *ExerciseHandler) UpdateExercise(c *fiber.Ctx) error {
	var req wire.ExercisePatch
	if err := parseBody(c, &req); err != nil {
		return err
	}

	exercise, err := h.exercises.Update(c.Context(), c.Params("id"), req.Update())
	if err != nil {
		return mapServiceError(c, err, "Exercise")
	}
	return dataResponse(c, fiber.StatusOK, wire.FromExercise(*exercise))
}

func (h *ExerciseHandler) DeleteExercise(c *fiber.Ctx) error {
	if err := h.exercises.Delete(c.Context(), c.Params("id")); err != nil {
		return mapServiceError(c, err, "Exercise")
	}
	return messageResponse(c, "Exercise deleted successfully")
}

func (h *ExerciseHandler) Constants(c *fiber.Ctx) error {
	return dataResponse(c, fiber.StatusOK, wire.FromExerciseConstants(models.ExerciseConstants{
		BodyParts:        models.AllBodyParts(),
		ExerciseTypes:    models.AllExerciseTypes(),
		DifficultyLevels: models.AllDifficulties(),
	}))
}

// FilterValues lists only the values that at least one exercise uses.
func (h *ExerciseHandler) FilterValues(c *fiber.Ctx) error {
	stats, err := h.exercises.Stats(c.Context())
	if err != nil {
		return mapServiceError(c, err, "Exercise")
	}

	return dataResponse(c, fiber.StatusOK, wire.FromExerciseFilterValues(models.ExerciseFilterValues{
		BodyParts:     presentIn(models.AllBodyParts(), stats.ByBodyPart),
		ExerciseTypes: presentIn(models.AllExerciseTypes(), stats.ByType),
		Difficulties:  presentIn(models.AllDifficulties(), stats.ByDifficulty),
	}))
}

func presentIn[T comparable](ordered []T, counts map[T]int) []T {
	out := make([]T, 0, len(counts))
	for _, value := range ordered {
		if counts[value] > 0 {
			out = append(out, value)
		}
	}
	return out
}

func (h *ExerciseHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.exercises.Stats(c.Context())
	if err != nil {
		return mapServiceError(c, err, "Exercise")
	}
	return dataResponse(c, fiber.StatusOK, wire.FromExerciseStats(*stats))
}

func (h *ExerciseHandler) ByBodyPart(c *fiber.Ctx) error {
	exercises, err := h.exercises.ListAll(c.Context())
	if err != nil {
		return mapServiceError(c, err, "Exercise")
	}

	grouped := make(map[models.BodyPart][]wire.Exercise)
	for _, exercise := range exercises {
		grouped[exercise.BodyPart] = append(grouped[exercise.BodyPart], wire.FromExercise(exercise))
	}
	return dataResponse(c, fiber.StatusOK, grouped)
}
