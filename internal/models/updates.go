package models

// Partial updates. A nil field is left untouched by the server.

type UserUpdate struct {
	Email    *string
	Name     *string
	Password *string
}

type ExerciseUpdate struct {
	Name        *string
	Description *string
	BodyPart    *BodyPart
	Type        *ExerciseType
	Difficulty  *Difficulty
	Equipment   *[]string
}

type WorkoutPlanUpdate struct {
	Name              *string
	Description       *string
	Tags              *[]string
	Difficulty        *Difficulty
	EstimatedDuration *int
	IsPublic          *bool
}

type PlanExerciseUpdate struct {
	Sets     *int
	Reps     *string
	Weight   *float64
	Duration *int
	RestTime *int
	Notes    *string
	Order    *int
}
