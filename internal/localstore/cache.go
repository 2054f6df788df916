package localstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/priyankaj04/Gymlogs/internal/kv"
	"github.com/priyankaj04/Gymlogs/internal/models"
)

const (
	ExercisesKey       = "@gymlogs/exercises"
	WorkoutPlansKey    = "@gymlogs/workout_plans"
	DailyScheduleKey   = "@gymlogs/daily_schedule"
	WorkoutSessionsKey = "@gymlogs/workout_sessions"

	defaultRecentSessions = 10
)

type ScheduleCollection struct {
	*Collection[models.DailySchedule]
}

// FindByDay returns the schedule entry for day.
func (s *ScheduleCollection) FindByDay(ctx context.Context, day models.DayOfWeek) (models.DailySchedule, error) {
	return s.find(ctx, func(entry *models.DailySchedule) bool { return entry.DayOfWeek == day })
}

type SessionCollection struct {
	*Collection[models.WorkoutSession]
}

// Recent returns up to limit sessions, newest date first. A limit of zero or
// less means ten.
func (s *SessionCollection) Recent(ctx context.Context, limit int) ([]models.WorkoutSession, error) {
	if limit <= 0 {
		limit = defaultRecentSessions
	}
	sessions, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.After(sessions[j].Date)
	})
	if len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

// Cache is the device-local store. It never talks to the backend.
type Cache struct {
	Exercises *Collection[models.Exercise]
	Plans     *Collection[models.WorkoutPlan]
	Schedule  *ScheduleCollection
	Sessions  *SessionCollection
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now for timestamping records.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func New(store kv.Store, opts ...Option) *Cache {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}

	return &Cache{
		Exercises: newCollection(store, ExercisesKey, fields[models.Exercise]{
			id: func(e *models.Exercise) *string { return &e.ID },
			timestamps: func(e *models.Exercise) (*time.Time, *time.Time) {
				return &e.CreatedAt, &e.UpdatedAt
			},
		}, o.now),
		Plans: newCollection(store, WorkoutPlansKey, fields[models.WorkoutPlan]{
			id: func(p *models.WorkoutPlan) *string { return &p.ID },
			timestamps: func(p *models.WorkoutPlan) (*time.Time, *time.Time) {
				return &p.CreatedAt, &p.UpdatedAt
			},
		}, o.now),
		Schedule: &ScheduleCollection{newCollection(store, DailyScheduleKey, fields[models.DailySchedule]{
			id: func(s *models.DailySchedule) *string { return &s.ID },
			timestamps: func(s *models.DailySchedule) (*time.Time, *time.Time) {
				return &s.CreatedAt, &s.UpdatedAt
			},
			validate: models.DailySchedule.Validate,
		}, o.now)},
		Sessions: &SessionCollection{newCollection(store, WorkoutSessionsKey, fields[models.WorkoutSession]{
			id: func(s *models.WorkoutSession) *string { return &s.ID },
			timestamps: func(s *models.WorkoutSession) (*time.Time, *time.Time) {
				return &s.CreatedAt, &s.UpdatedAt
			},
		}, o.now)},
	}
}

// ClearAll removes every cached collection. Session credentials are not
// touched.
func (c *Cache) ClearAll(ctx context.Context) error {
	return errors.Join(
		c.Exercises.clear(ctx),
		c.Plans.clear(ctx),
		c.Schedule.clear(ctx),
		c.Sessions.clear(ctx),
	)
}
