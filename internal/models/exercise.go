package models

import "time"

type BodyPart string

const (
	BodyPartChest       BodyPart = "chest"
	BodyPartLowerBack   BodyPart = "lowerback"
	BodyPartBack        BodyPart = "back"
	BodyPartShoulders   BodyPart = "shoulders"
	BodyPartUpperAbs    BodyPart = "upperabs"
	BodyPartSideAbs     BodyPart = "sideabs"
	BodyPartBiceps      BodyPart = "biceps"
	BodyPartTriceps     BodyPart = "triceps"
	BodyPartLegs        BodyPart = "legs"
	BodyPartMiddleQuads BodyPart = "middlequads"
	BodyPartInnerQuads  BodyPart = "innerquads"
	BodyPartHamstrings  BodyPart = "hamstrings"
	BodyPartGlutes      BodyPart = "glutes"
	BodyPartCore        BodyPart = "core"
	BodyPartCalves      BodyPart = "calves"
	BodyPartFrontCalves BodyPart = "frontcalves"
	BodyPartForearms    BodyPart = "forearms"
	BodyPartLats        BodyPart = "lats"
	BodyPartTraps       BodyPart = "traps"
	BodyPartRearDelts   BodyPart = "reardelts"
	BodyPartFullBody    BodyPart = "full-body"
)

var bodyParts = []BodyPart{
	BodyPartChest, BodyPartLowerBack, BodyPartBack, BodyPartShoulders, BodyPartUpperAbs,
	BodyPartSideAbs, BodyPartBiceps, BodyPartTriceps, BodyPartLegs, BodyPartMiddleQuads,
	BodyPartInnerQuads, BodyPartHamstrings, BodyPartGlutes, BodyPartCore, BodyPartCalves,
	BodyPartFrontCalves, BodyPartForearms, BodyPartLats, BodyPartTraps, BodyPartRearDelts,
	BodyPartFullBody,
}

// AllBodyParts returns every body part in display order.
func AllBodyParts() []BodyPart {
	return append([]BodyPart(nil), bodyParts...)
}

func (b BodyPart) Valid() bool {
	for _, candidate := range bodyParts {
		if b == candidate {
			return true
		}
	}
	return false
}

type ExerciseType string

const (
	ExerciseTypeCardio       ExerciseType = "cardio"
	ExerciseTypeCompound     ExerciseType = "compound"
	ExerciseTypeIsolated     ExerciseType = "isolated"
	ExerciseTypeMobility     ExerciseType = "mobility"
	ExerciseTypeCalisthenics ExerciseType = "calisthenics"
	ExerciseTypeEndurance    ExerciseType = "endurance"
)

var exerciseTypes = []ExerciseType{
	ExerciseTypeCardio, ExerciseTypeCompound, ExerciseTypeIsolated,
	ExerciseTypeMobility, ExerciseTypeCalisthenics, ExerciseTypeEndurance,
}

func AllExerciseTypes() []ExerciseType {
	return append([]ExerciseType(nil), exerciseTypes...)
}

func (t ExerciseType) Valid() bool {
	for _, candidate := range exerciseTypes {
		if t == candidate {
			return true
		}
	}
	return false
}

// Difficulty is optional on exercises and plans; the empty value means unset.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

var difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

func AllDifficulties() []Difficulty {
	return append([]Difficulty(nil), difficulties...)
}

func (d Difficulty) Valid() bool {
	for _, candidate := range difficulties {
		if d == candidate {
			return true
		}
	}
	return false
}

type Exercise struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	BodyPart    BodyPart     `json:"bodyPart"`
	Type        ExerciseType `json:"type"`
	Description string       `json:"description"`
	Difficulty  Difficulty   `json:"difficulty,omitempty"`
	Equipment   []string     `json:"equipment"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type ExerciseConstants struct {
	BodyParts        []BodyPart     `json:"bodyParts"`
	ExerciseTypes    []ExerciseType `json:"exerciseTypes"`
	DifficultyLevels []Difficulty   `json:"difficultyLevels"`
}

type ExerciseFilterValues struct {
	BodyParts     []BodyPart     `json:"bodyParts"`
	ExerciseTypes []ExerciseType `json:"exerciseTypes"`
	Difficulties  []Difficulty   `json:"difficulties"`
}

type ExerciseStats struct {
	TotalExercises int                  `json:"totalExercises"`
	ByBodyPart     map[BodyPart]int     `json:"byBodyPart"`
	ByType         map[ExerciseType]int `json:"byType"`
	ByDifficulty   map[Difficulty]int   `json:"byDifficulty"`
}
