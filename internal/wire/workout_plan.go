package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/priyankaj04/Gymlogs/internal/models"
)

// Reps is sent as a string but older servers store it as a number; both
// decode into the same textual form.
type Reps string

func (r *Reps) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Reps(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("reps: %w", err)
	}
	*r = Reps(n.String())
	return nil
}

type PlanExercise struct {
	ExerciseID string    `json:"exercise_id" validate:"required"`
	Exercise   *Exercise `json:"exercise,omitempty"`
	Sets       *int      `json:"sets,omitempty" validate:"omitempty,gte=0"`
	Reps       Reps      `json:"reps,omitempty"`
	Weight     *float64  `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Duration   *int      `json:"duration,omitempty" validate:"omitempty,gte=0"`
	RestTime   *int      `json:"rest_time,omitempty" validate:"omitempty,gte=0"`
	Notes      string    `json:"notes,omitempty"`
	OrderIndex int       `json:"order_index"`
}

func FromPlanExercise(e models.WorkoutPlanExercise) PlanExercise {
	out := PlanExercise{
		ExerciseID: e.ExerciseID,
		Sets:       clonePtr(e.Sets),
		Reps:       Reps(e.Reps),
		Weight:     clonePtr(e.Weight),
		Duration:   clonePtr(e.Duration),
		RestTime:   clonePtr(e.RestTime),
		Notes:      e.Notes,
		OrderIndex: e.Order,
	}
	if e.Exercise != nil {
		exercise := FromExercise(*e.Exercise)
		out.Exercise = &exercise
	}
	return out
}

func (e PlanExercise) Model() models.WorkoutPlanExercise {
	out := models.WorkoutPlanExercise{
		ExerciseID: e.ExerciseID,
		Sets:       clonePtr(e.Sets),
		Reps:       string(e.Reps),
		Weight:     clonePtr(e.Weight),
		Duration:   clonePtr(e.Duration),
		RestTime:   clonePtr(e.RestTime),
		Notes:      e.Notes,
		Order:      e.OrderIndex,
	}
	if e.Exercise != nil {
		exercise := e.Exercise.Model()
		out.Exercise = &exercise
	}
	return out
}

type PlanExercisePatch struct {
	Sets       *int     `json:"sets,omitempty" validate:"omitempty,gte=0"`
	Reps       *Reps    `json:"reps,omitempty"`
	Weight     *float64 `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Duration   *int     `json:"duration,omitempty" validate:"omitempty,gte=0"`
	RestTime   *int     `json:"rest_time,omitempty" validate:"omitempty,gte=0"`
	Notes      *string  `json:"notes,omitempty"`
	OrderIndex *int     `json:"order_index,omitempty"`
}

func FromPlanExerciseUpdate(u models.PlanExerciseUpdate) PlanExercisePatch {
	patch := PlanExercisePatch{
		Sets:       clonePtr(u.Sets),
		Weight:     clonePtr(u.Weight),
		Duration:   clonePtr(u.Duration),
		RestTime:   clonePtr(u.RestTime),
		Notes:      clonePtr(u.Notes),
		OrderIndex: clonePtr(u.Order),
	}
	if u.Reps != nil {
		reps := Reps(*u.Reps)
		patch.Reps = &reps
	}
	return patch
}

func (p PlanExercisePatch) Update() models.PlanExerciseUpdate {
	update := models.PlanExerciseUpdate{
		Sets:     clonePtr(p.Sets),
		Weight:   clonePtr(p.Weight),
		Duration: clonePtr(p.Duration),
		RestTime: clonePtr(p.RestTime),
		Notes:    clonePtr(p.Notes),
		Order:    clonePtr(p.OrderIndex),
	}
	if p.Reps != nil {
		reps := string(*p.Reps)
		update.Reps = &reps
	}
	return update
}

func (p PlanExercisePatch) Apply(e *models.WorkoutPlanExercise) {
	if p.Sets != nil {
		e.Sets = clonePtr(p.Sets)
	}
	if p.Reps != nil {
		e.Reps = string(*p.Reps)
	}
	if p.Weight != nil {
		e.Weight = clonePtr(p.Weight)
	}
	if p.Duration != nil {
		e.Duration = clonePtr(p.Duration)
	}
	if p.RestTime != nil {
		e.RestTime = clonePtr(p.RestTime)
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	if p.OrderIndex != nil {
		e.Order = *p.OrderIndex
	}
}

type WorkoutPlan struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Description       string            `json:"description,omitempty"`
	Exercises         []PlanExercise    `json:"exercises"`
	EstimatedDuration *int              `json:"estimated_duration,omitempty"`
	Difficulty        models.Difficulty `json:"difficulty_level,omitempty"`
	MuscleTypes       []string          `json:"muscle_types"`
	IsPublic          bool              `json:"is_public"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func FromWorkoutPlan(p models.WorkoutPlan) WorkoutPlan {
	return WorkoutPlan{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Exercises:         convertAll(p.Exercises, FromPlanExercise),
		EstimatedDuration: clonePtr(p.EstimatedDuration),
		Difficulty:        p.Difficulty,
		MuscleTypes:       cloneStrings(p.Tags),
		IsPublic:          p.IsPublic,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (p WorkoutPlan) Model() models.WorkoutPlan {
	return models.WorkoutPlan{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Exercises:         convertAll(p.Exercises, PlanExercise.Model),
		EstimatedDuration: clonePtr(p.EstimatedDuration),
		Difficulty:        p.Difficulty,
		Tags:              cloneStrings(p.MuscleTypes),
		IsPublic:          p.IsPublic,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func WorkoutPlanModels(in []WorkoutPlan) []models.WorkoutPlan {
	out := make([]models.WorkoutPlan, 0, len(in))
	for _, p := range in {
		out = append(out, p.Model())
	}
	return out
}

func FromWorkoutPlans(in []models.WorkoutPlan) []WorkoutPlan {
	out := make([]WorkoutPlan, 0, len(in))
	for _, p := range in {
		out = append(out, FromWorkoutPlan(p))
	}
	return out
}

type WorkoutPlanInput struct {
	Name              string            `json:"name" validate:"required"`
	Description       string            `json:"description,omitempty"`
	MuscleTypes       []string          `json:"muscle_types"`
	Difficulty        models.Difficulty `json:"difficulty_level,omitempty" validate:"omitempty,enum"`
	EstimatedDuration *int              `json:"estimated_duration,omitempty" validate:"omitempty,gte=0"`
	IsPublic          bool              `json:"is_public"`
	Exercises         []PlanExercise    `json:"exercises,omitempty" validate:"dive"`
}

func NewWorkoutPlanInput(p models.WorkoutPlan) WorkoutPlanInput {
	in := WorkoutPlanInput{
		Name:              p.Name,
		Description:       p.Description,
		MuscleTypes:       cloneStrings(p.Tags),
		Difficulty:        p.Difficulty,
		EstimatedDuration: clonePtr(p.EstimatedDuration),
		IsPublic:          p.IsPublic,
	}
	for _, e := range p.Exercises {
		entry := FromPlanExercise(e)
		entry.Exercise = nil
		in.Exercises = append(in.Exercises, entry)
	}
	return in
}

func (in WorkoutPlanInput) Model() models.WorkoutPlan {
	return models.WorkoutPlan{
		Name:              in.Name,
		Description:       in.Description,
		Tags:              cloneStrings(in.MuscleTypes),
		Difficulty:        in.Difficulty,
		EstimatedDuration: clonePtr(in.EstimatedDuration),
		IsPublic:          in.IsPublic,
		Exercises:         convertAll(in.Exercises, PlanExercise.Model),
	}
}

type WorkoutPlanPatch struct {
	Name              *string            `json:"name,omitempty" validate:"omitempty,min=1"`
	Description       *string            `json:"description,omitempty"`
	MuscleTypes       *[]string          `json:"muscle_types,omitempty"`
	Difficulty        *models.Difficulty `json:"difficulty_level,omitempty" validate:"omitempty,enum"`
	EstimatedDuration *int               `json:"estimated_duration,omitempty" validate:"omitempty,gte=0"`
	IsPublic          *bool              `json:"is_public,omitempty"`
}

func FromWorkoutPlanUpdate(u models.WorkoutPlanUpdate) WorkoutPlanPatch {
	return WorkoutPlanPatch{
		Name:              clonePtr(u.Name),
		Description:       clonePtr(u.Description),
		MuscleTypes:       clonePtr(u.Tags),
		Difficulty:        clonePtr(u.Difficulty),
		EstimatedDuration: clonePtr(u.EstimatedDuration),
		IsPublic:          clonePtr(u.IsPublic),
	}
}

func (p WorkoutPlanPatch) Update() models.WorkoutPlanUpdate {
	return models.WorkoutPlanUpdate{
		Name:              clonePtr(p.Name),
		Description:       clonePtr(p.Description),
		Tags:              clonePtr(p.MuscleTypes),
		Difficulty:        clonePtr(p.Difficulty),
		EstimatedDuration: clonePtr(p.EstimatedDuration),
		IsPublic:          clonePtr(p.IsPublic),
	}
}

func (p WorkoutPlanPatch) Apply(plan *models.WorkoutPlan) {
	if p.Name != nil {
		plan.Name = *p.Name
	}
	if p.Description != nil {
		plan.Description = *p.Description
	}
	if p.MuscleTypes != nil {
		plan.Tags = cloneStrings(*p.MuscleTypes)
	}
	if p.Difficulty != nil {
		plan.Difficulty = *p.Difficulty
	}
	if p.EstimatedDuration != nil {
		plan.EstimatedDuration = clonePtr(p.EstimatedDuration)
	}
	if p.IsPublic != nil {
		plan.IsPublic = *p.IsPublic
	}
}

type WorkoutPlanStats struct {
	TotalPlans      int                       `json:"total_plans"`
	ByDifficulty    map[models.Difficulty]int `json:"by_difficulty"`
	ByMuscleType    map[string]int            `json:"by_muscle_type"`
	AverageDuration float64                   `json:"average_duration"`
	TotalExercises  int                       `json:"total_exercises"`
}

func FromWorkoutPlanStats(s models.WorkoutPlanStats) WorkoutPlanStats {
	return WorkoutPlanStats{
		TotalPlans:      s.TotalPlans,
		ByDifficulty:    s.ByDifficulty,
		ByMuscleType:    s.ByMuscleType,
		AverageDuration: s.AverageDuration,
		TotalExercises:  s.TotalExercises,
	}
}

func (s WorkoutPlanStats) Model() models.WorkoutPlanStats {
	return models.WorkoutPlanStats{
		TotalPlans:      s.TotalPlans,
		ByDifficulty:    s.ByDifficulty,
		ByMuscleType:    s.ByMuscleType,
		AverageDuration: s.AverageDuration,
		TotalExercises:  s.TotalExercises,
	}
}
