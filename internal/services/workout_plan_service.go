package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/priyankaj04/Gymlogs/internal/models"
	"github.com/priyankaj04/Gymlogs/internal/repository"
)

type txStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type workoutPlanStore interface {
	GetByID(ctx context.Context, id string) (*repository.OwnedPlan, error)
	List(ctx context.Context, filter repository.WorkoutPlanListFilter) ([]repository.OwnedPlan, int, error)
	Update(ctx context.Context, id string, input models.WorkoutPlanUpdate) error
	Delete(ctx context.Context, id string) error
	Touch(ctx context.Context, id string) error
	NextOrder(ctx context.Context, planID string) (int, error)
	AddExercise(ctx context.Context, planID string, entry models.WorkoutPlanExercise) error
	UpdateExercise(ctx context.Context, planID, exerciseID string, input models.PlanExerciseUpdate) error
	GetExercise(ctx context.Context, planID, exerciseID string) (*models.WorkoutPlanExercise, error)
	RemoveExercise(ctx context.Context, planID, exerciseID string) error
	Stats(ctx context.Context, userID string) (*models.WorkoutPlanStats, error)
}

type WorkoutPlanService struct {
	db    txStarter
	plans workoutPlanStore
}

func NewWorkoutPlanService(db txStarter, plans workoutPlanStore) *WorkoutPlanService {
	return &WorkoutPlanService{db: db, plans: plans}
}

// CreatePlan writes the plan and its entries in one transaction.
func (s *WorkoutPlanService) CreatePlan(ctx context.Context, userID string, plan models.WorkoutPlan) (*models.WorkoutPlan, error) {
	plan.Name = strings.TrimSpace(plan.Name)
	if plan.Name == "" {
		return nil, ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(plan.Exercises))
	for i, entry := range plan.Exercises {
		if entry.ExerciseID == "" {
			return nil, ErrInvalidInput
		}
		if _, dup := seen[entry.ExerciseID]; dup {
			return nil, ErrConflict
		}
		seen[entry.ExerciseID] = struct{}{}
		if entry.Order == 0 {
			plan.Exercises[i].Order = i
		}
	}
	plan.ID = uuid.NewString()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txPlans := repository.NewWorkoutPlanRepository(tx)
	if err := txPlans.Create(ctx, userID, &plan); err != nil {
		return nil, err
	}
	for _, entry := range plan.Exercises {
		if err := txPlans.AddExercise(ctx, plan.ID, entry); err != nil {
			return nil, mapEntryError(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	created, err := s.plans.GetByID(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	return &created.WorkoutPlan, nil
}

func (s *WorkoutPlanService) ListPlans(ctx context.Context, filter repository.WorkoutPlanListFilter) ([]models.WorkoutPlan, int, error) {
	owned, total, err := s.plans.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	plans := make([]models.WorkoutPlan, 0, len(owned))
	for _, plan := range owned {
		plans = append(plans, plan.WorkoutPlan)
	}
	return plans, total, nil
}

// GetPlan returns a plan the actor owns or one that is public.
func (s *WorkoutPlanService) GetPlan(ctx context.Context, actorID, planID string) (*models.WorkoutPlan, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != actorID && !plan.IsPublic {
		return nil, ErrForbidden
	}
	return &plan.WorkoutPlan, nil
}

func (s *WorkoutPlanService) UpdatePlan(ctx context.Context, actorID, planID string, update models.WorkoutPlanUpdate) (*models.WorkoutPlan, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		update.Name = &name
	}
	if err := s.requireOwner(ctx, actorID, planID); err != nil {
		return nil, err
	}
	if err := s.plans.Update(ctx, planID, update); err != nil {
		return nil, err
	}
	return s.GetPlan(ctx, actorID, planID)
}

func (s *WorkoutPlanService) DeletePlan(ctx context.Context, actorID, planID string) error {
	if err := s.requireOwner(ctx, actorID, planID); err != nil {
		return err
	}
	return s.plans.Delete(ctx, planID)
}

// AddExercise appends entry to the plan. An entry without an order goes
// after the current last one.
func (s *WorkoutPlanService) AddExercise(ctx context.Context, actorID, planID string, entry models.WorkoutPlanExercise) (*models.WorkoutPlanExercise, error) {
	if entry.ExerciseID == "" {
		return nil, ErrInvalidInput
	}
	if err := s.requireOwner(ctx, actorID, planID); err != nil {
		return nil, err
	}

	if entry.Order == 0 {
		next, err := s.plans.NextOrder(ctx, planID)
		if err != nil {
			return nil, err
		}
		entry.Order = next
	}

	if err := s.plans.AddExercise(ctx, planID, entry); err != nil {
		return nil, mapEntryError(err)
	}
	if err := s.plans.Touch(ctx, planID); err != nil {
		return nil, err
	}
	return s.plans.GetExercise(ctx, planID, entry.ExerciseID)
}

func (s *WorkoutPlanService) UpdateExercise(ctx context.Context, actorID, planID, exerciseID string, update models.PlanExerciseUpdate) (*models.WorkoutPlanExercise, error) {
	if err := s.requireOwner(ctx, actorID, planID); err != nil {
		return nil, err
	}
	if err := s.plans.UpdateExercise(ctx, planID, exerciseID, update); err != nil {
		return nil, err
	}
	if err := s.plans.Touch(ctx, planID); err != nil {
		return nil, err
	}
	return s.plans.GetExercise(ctx, planID, exerciseID)
}

func (s *WorkoutPlanService) RemoveExercise(ctx context.Context, actorID, planID, exerciseID string) error {
	if err := s.requireOwner(ctx, actorID, planID); err != nil {
		return err
	}
	if err := s.plans.RemoveExercise(ctx, planID, exerciseID); err != nil {
		return err
	}
	return s.plans.Touch(ctx, planID)
}

func (s *WorkoutPlanService) Stats(ctx context.Context, actorID string) (*models.WorkoutPlanStats, error) {
	return s.plans.Stats(ctx, actorID)
}

func (s *WorkoutPlanService) requireOwner(ctx context.Context, actorID, planID string) error {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return err
	}
	if plan.UserID != actorID {
		return ErrForbidden
	}
	return nil
}

func mapEntryError(err error) error {
	switch {
	case repository.IsUniqueViolation(err):
		return fmt.Errorf("%w: exercise already in workout plan", ErrConflict)
	case repository.IsForeignKeyViolation(err):
		return ErrExerciseNotFound
	default:
		return err
	}
}
