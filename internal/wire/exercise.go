package wire

import (
	"time"

	"github.com/priyankaj04/Gymlogs/internal/models"
)

type Exercise struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	BodyPart     models.BodyPart     `json:"body_part"`
	ExerciseType models.ExerciseType `json:"exercise_type"`
	Description  string              `json:"description"`
	Difficulty   models.Difficulty   `json:"difficulty,omitempty"`
	Equipment    []string            `json:"equipment"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func FromExercise(e models.Exercise) Exercise {
	return Exercise{
		ID:           e.ID,
		Name:         e.Name,
		BodyPart:     e.BodyPart,
		ExerciseType: e.Type,
		Description:  e.Description,
		Difficulty:   e.Difficulty,
		Equipment:    cloneStrings(e.Equipment),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func (e Exercise) Model() models.Exercise {
	return models.Exercise{
		ID:          e.ID,
		Name:        e.Name,
		BodyPart:    e.BodyPart,
		Type:        e.ExerciseType,
		Description: e.Description,
		Difficulty:  e.Difficulty,
		Equipment:   cloneStrings(e.Equipment),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ExerciseModels(in []Exercise) []models.Exercise {
	out := make([]models.Exercise, 0, len(in))
	for _, e := range in {
		out = append(out, e.Model())
	}
	return out
}

func FromExercises(in []models.Exercise) []Exercise {
	out := make([]Exercise, 0, len(in))
	for _, e := range in {
		out = append(out, FromExercise(e))
	}
	return out
}

// ExerciseInput is the create body. The id is optional; the server assigns
// one when it is empty.
type ExerciseInput struct {
	ID           string              `json:"id,omitempty"`
	Name         string              `json:"name" validate:"required"`
	BodyPart     models.BodyPart     `json:"body_part" validate:"required,enum"`
	ExerciseType models.ExerciseType `json:"exercise_type" validate:"required,enum"`
	Description  string              `json:"description"`
	Difficulty   models.Difficulty   `json:"difficulty,omitempty" validate:"omitempty,enum"`
	Equipment    []string            `json:"equipment"`
}

func NewExerciseInput(e models.Exercise) ExerciseInput {
	return ExerciseInput{
		ID:           e.ID,
		Name:         e.Name,
		BodyPart:     e.BodyPart,
		ExerciseType: e.Type,
		Description:  e.Description,
		Difficulty:   e.Difficulty,
		Equipment:    cloneStrings(e.Equipment),
	}
}

func (in ExerciseInput) Model() models.Exercise {
	return models.Exercise{
		ID:          in.ID,
		Name:        in.Name,
		BodyPart:    in.BodyPart,
		Type:        in.ExerciseType,
		Description: in.Description,
		Difficulty:  in.Difficulty,
		Equipment:   cloneStrings(in.Equipment),
	}
}

type ExercisePatch struct {
	Name         *string              `json:"name,omitempty" validate:"omitempty,min=1"`
	Description  *string              `json:"description,omitempty"`
	BodyPart     *models.BodyPart     `json:"body_part,omitempty" validate:"omitempty,enum"`
	ExerciseType *models.ExerciseType `json:"exercise_type,omitempty" validate:"omitempty,enum"`
	Difficulty   *models.Difficulty   `json:"difficulty,omitempty" validate:"omitempty,enum"`
	Equipment    *[]string            `json:"equipment,omitempty"`
}

func FromExerciseUpdate(u models.ExerciseUpdate) ExercisePatch {
	return ExercisePatch{
		Name:         clonePtr(u.Name),
		Description:  clonePtr(u.Description),
		BodyPart:     clonePtr(u.BodyPart),
		ExerciseType: clonePtr(u.Type),
		Difficulty:   clonePtr(u.Difficulty),
		Equipment:    clonePtr(u.Equipment),
	}
}

func (p ExercisePatch) Update() models.ExerciseUpdate {
	return models.ExerciseUpdate{
		Name:        clonePtr(p.Name),
		Description: clonePtr(p.Description),
		BodyPart:    clonePtr(p.BodyPart),
		Type:        clonePtr(p.ExerciseType),
		Difficulty:  clonePtr(p.Difficulty),
		Equipment:   clonePtr(p.Equipment),
	}
}

// Apply copies the set fields onto e.
func (p ExercisePatch) Apply(e *models.Exercise) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.BodyPart != nil {
		e.BodyPart = *p.BodyPart
	}
	if p.ExerciseType != nil {
		e.Type = *p.ExerciseType
	}
	if p.Difficulty != nil {
		e.Difficulty = *p.Difficulty
	}
	if p.Equipment != nil {
		e.Equipment = cloneStrings(*p.Equipment)
	}
}

type ExerciseConstants struct {
	BodyParts        []models.BodyPart     `json:"body_parts"`
	ExerciseTypes    []models.ExerciseType `json:"exercise_types"`
	DifficultyLevels []models.Difficulty   `json:"difficulty_levels"`
}

func FromExerciseConstants(c models.ExerciseConstants) ExerciseConstants {
	return ExerciseConstants{
		BodyParts:        c.BodyParts,
		ExerciseTypes:    c.ExerciseTypes,
		DifficultyLevels: c.DifficultyLevels,
	}
}

func (c ExerciseConstants) Model() models.ExerciseConstants {
	return models.ExerciseConstants{
		BodyParts:        c.BodyParts,
		ExerciseTypes:    c.ExerciseTypes,
		DifficultyLevels: c.DifficultyLevels,
	}
}

type ExerciseFilterValues struct {
	BodyParts     []models.BodyPart     `json:"body_parts"`
	ExerciseTypes []models.ExerciseType `json:"exercise_types"`
	Difficulties  []models.Difficulty   `json:"difficulties"`
}

func FromExerciseFilterValues(v models.ExerciseFilterValues) ExerciseFilterValues {
	return ExerciseFilterValues{
		BodyParts:     v.BodyParts,
		ExerciseTypes: v.ExerciseTypes,
		Difficulties:  v.Difficulties,
	}
}

func (v ExerciseFilterValues) Model() models.ExerciseFilterValues {
	return models.ExerciseFilterValues{
		BodyParts:     v.BodyParts,
		ExerciseTypes: v.ExerciseTypes,
		Difficulties:  v.Difficulties,
	}
}

type ExerciseStats struct {
	TotalExercises int                         `json:"total_exercises"`
	ByBodyPart     map[models.BodyPart]int     `json:"by_body_part"`
	ByType         map[models.ExerciseType]int `json:"by_type"`
	ByDifficulty   map[models.Difficulty]int   `json:"by_difficulty"`
}

func FromExerciseStats(s models.ExerciseStats) ExerciseStats {
	return ExerciseStats{
		TotalExercises: s.TotalExercises,
		ByBodyPart:     s.ByBodyPart,
		ByType:         s.ByType,
		ByDifficulty:   s.ByDifficulty,
	}
}

func (s ExerciseStats) Model() models.ExerciseStats {
	return models.ExerciseStats{
		TotalExercises: s.TotalExercises,
		ByBodyPart:     s.ByBodyPart,
		ByType:         s.ByType,
		ByDifficulty:   s.ByDifficulty,
	}
}
