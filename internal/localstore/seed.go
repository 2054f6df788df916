package localstore

import (
	"context"
	"log"

	"github.com/priyankaj04/Gymlogs/internal/models"
)

// Seed fills an empty cache with a few starter exercises and plans. It does
// nothing once any exercise exists. It reports whether data was written.
func (c *Cache) Seed(ctx context.Context) (bool, error) {
	existing, err := c.Exercises.Load(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	now := c.Exercises.now()
	exercises := []models.Exercise{
		{
			ID:          "1",
			Name:        "Bench Press",
			BodyPart:    models.BodyPartChest,
			Type:        models.ExerciseTypeCompound,
			Description: "A compound exercise that primarily targets the chest, shoulders, and triceps.",
			Difficulty:  models.DifficultyIntermediate,
			Equipment:   []string{"barbell", "bench"},
		},
		{
			ID:          "2",
			Name:        "Pull-ups",
			BodyPart:    models.BodyPartBack,
			Type:        models.ExerciseTypeCompound,
			Description: "A bodyweight exercise that targets the back muscles and biceps.",
			Difficulty:  models.DifficultyIntermediate,
			Equipment:   []string{"pull-up bar"},
		},
		{
			ID:          "3",
			Name:        "Running",
			BodyPart:    models.BodyPartFullBody,
			Type:        models.ExerciseTypeCardio,
			Description: "Cardiovascular exercise for endurance and fat burning.",
			Difficulty:  models.DifficultyBeginner,
			Equipment:   []string{"treadmill"},
		},
	}
	for i := range exercises {
		exercises[i].CreatedAt, exercises[i].UpdatedAt = now, now
	}

	pushDuration, pullDuration := 60, 55
	plans := []models.WorkoutPlan{
		{
			ID:                "1",
			Name:              "Push Day",
			Description:       "Chest, shoulders, and triceps focused workout",
			Exercises:         []models.WorkoutPlanExercise{},
			EstimatedDuration: &pushDuration,
			Difficulty:        models.DifficultyIntermediate,
			Tags:              []string{"strength", "upper-body"},
		},
		{
			ID:                "2",
			Name:              "Pull Day",
			Description:       "Back and biceps focused workout",
			Exercises:         []models.WorkoutPlanExercise{},
			EstimatedDuration: &pullDuration,
			Difficulty:        models.DifficultyIntermediate,
			Tags:              []string{"strength", "upper-body"},
		},
	}
	for i := range plans {
		plans[i].CreatedAt, plans[i].UpdatedAt = now, now
	}

	if err := c.Exercises.Save(ctx, exercises); err != nil {
		return false, err
	}
	if err := c.Plans.Save(ctx, plans); err != nil {
		return false, err
	}
	log.Printf("Seeded local cache with %d exercises and %d workout plans", len(exercises), len(plans))
	return true, nil
}
