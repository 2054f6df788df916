package models

import (
	"sort"
	"time"
)

type WorkoutPlan struct {
	ID                string                `json:"id"`
	Name              string                `json:"name"`
	Description       string                `json:"description,omitempty"`
	Exercises         []WorkoutPlanExercise `json:"exercises"`
	EstimatedDuration *int                  `json:"estimatedDuration,omitempty"`
	Difficulty        Difficulty            `json:"difficulty,omitempty"`
	Tags              []string              `json:"tags"`
	IsPublic          bool                  `json:"isPublic"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

// WorkoutPlanExercise only exists inside a plan. Order is the explicit
// position within the plan and is independent of slice index.
type WorkoutPlanExercise struct {
	ExerciseID string    `json:"exerciseId"`
	Exercise   *Exercise `json:"exercise,omitempty"`
	Sets       *int      `json:"sets,omitempty"`
	Reps       string    `json:"reps,omitempty"`
	Weight     *float64  `json:"weight,omitempty"`
	Duration   *int      `json:"duration,omitempty"`
	RestTime   *int      `json:"restTime,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Order      int       `json:"order"`
}

// SortExercises orders plan entries by Order, keeping insertion order for ties.
func (p *WorkoutPlan) SortExercises() {
	sort.SliceStable(p.Exercises, func(i, j int) bool {
		return p.Exercises[i].Order < p.Exercises[j].Order
	})
}

// HasExercise reports whether the plan already references exerciseID.
func (p *WorkoutPlan) HasExercise(exerciseID string) bool {
	for _, entry := range p.Exercises {
		if entry.ExerciseID == exerciseID {
			return true
		}
	}
	return false
}

type WorkoutPlanStats struct {
	TotalPlans      int                `json:"totalPlans"`
	ByDifficulty    map[Difficulty]int `json:"byDifficulty"`
	ByMuscleType    map[string]int     `json:"byMuscleType"`
	AverageDuration float64            `json:"averageDuration"`
	TotalExercises  int                `json:"totalExercises"`
}
