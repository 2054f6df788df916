package models

import (
	"errors"
	"time"
)

var ErrRestDayWithPlan = errors.New("rest day cannot reference a workout plan")

type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

var daysOfWeek = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func AllDaysOfWeek() []DayOfWeek {
	return append([]DayOfWeek(nil), daysOfWeek...)
}

func (d DayOfWeek) Valid() bool {
	for _, candidate := range daysOfWeek {
		if d == candidate {
			return true
		}
	}
	return false
}

type DailySchedule struct {
	ID            string       `json:"id"`
	DayOfWeek     DayOfWeek    `json:"dayOfWeek"`
	WorkoutPlanID string       `json:"workoutPlanId,omitempty"`
	WorkoutPlan   *WorkoutPlan `json:"workoutPlan,omitempty"`
	IsRestDay     bool         `json:"isRestDay"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func (s DailySchedule) Validate() error {
	if s.IsRestDay && s.WorkoutPlanID != "" {
		return ErrRestDayWithPlan
	}
	return nil
}
