package models

import "time"

type Mood string

const (
	MoodGreat      Mood = "great"
	MoodGood       Mood = "good"
	MoodOkay       Mood = "okay"
	MoodTired      Mood = "tired"
	MoodStruggling Mood = "struggling"
)

type WorkoutSession struct {
	ID                 string              `json:"id"`
	WorkoutPlanID      string              `json:"workoutPlanId"`
	WorkoutPlan        *WorkoutPlan        `json:"workoutPlan,omitempty"`
	Date               time.Time           `json:"date"`
	StartTime          *time.Time          `json:"startTime,omitempty"`
	EndTime            *time.Time          `json:"endTime,omitempty"`
	CompletedExercises []CompletedExercise `json:"completedExercises"`
	Notes              string              `json:"notes,omitempty"`
	Mood               Mood                `json:"mood,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

type CompletedExercise struct {
	ExerciseID string         `json:"exerciseId"`
	Sets       []CompletedSet `json:"sets"`
}

type CompletedSet struct {
	Reps      int      `json:"reps"`
	Weight    *float64 `json:"weight,omitempty"`
	Duration  *int     `json:"duration,omitempty"`
	Completed bool     `json:"completed"`
	Notes     string   `json:"notes,omitempty"`
}
