package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/priyankaj04/Gymlogs/internal/apiclient"
	"github.com/priyankaj04/Gymlogs/internal/models"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	return nil
}

func (a *app) print(v any) error {
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// healthServices is the order failures are reported in.
var healthServices = []string{"users", "exercises", "workout-plans"}

func (a *app) health(ctx context.Context) error {
	status := map[string]bool{
		"users":         a.auth.HealthCheck(ctx),
		"exercises":     a.exercises.HealthCheck(ctx),
		"workout-plans": a.plans.HealthCheck(ctx),
	}
	if err := a.print(status); err != nil {
		return err
	}
	for _, service := range healthServices {
		if !status[service] {
			return fmt.Errorf("%s service is unhealthy", service)
		}
	}
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "display name")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *email == "" || *password == "" || *name == "" {
		return fmt.Errorf("%w: register needs -email, -password and -name", errUsage)
	}

	if err := a.manager.Register(ctx, apiclient.RegisterRequest{Email: *email, Password: *password, Name: *name}); err != nil {
		return authFailure(err)
	}
	return a.print(a.manager.State().User)
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("%w: login needs -email and -password", errUsage)
	}

	if err := a.manager.Login(ctx, *email, *password); err != nil {
		return authFailure(err)
	}
	return a.print(a.manager.State().User)
}

// authFailure surfaces the server's message for a rejected login or registration.
func authFailure(err error) error {
	var authErr *apiclient.AuthError
	if errors.As(err, &authErr) {
		return errors.New(authErr.Message())
	}
	return err
}

func (a *app) logout(ctx context.Context) error {
	a.manager.Logout(ctx)
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	state := a.manager.Start(ctx)
	if !state.IsAuthenticated() {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	return a.print(state.User)
}

func (a *app) listExercises(ctx context.Context, args []string) error {
	fs := newFlagSet("exercises")
	bodyPart := fs.String("body-part", apiclient.FilterAll, "body part or 'all'")
	exerciseType := fs.String("type", apiclient.FilterAll, "exercise type or 'all'")
	difficulty := fs.String("difficulty", apiclient.FilterAll, "difficulty or 'all'")
	search := fs.String("search", "", "free text search")
	page := fs.Int("page", 0, "page number")
	limit := fs.Int("limit", 0, "page size")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	list, err := a.exercises.List(ctx, apiclient.ExerciseFilters{
		BodyPart:     models.BodyPart(*bodyPart),
		ExerciseType: models.ExerciseType(*exerciseType),
		Difficulty:   models.Difficulty(*difficulty),
		Search:       *search,
		Page:         *page,
		Limit:        *limit,
	})
	if err != nil {
		return err
	}
	return a.print(list)
}

func (a *app) exerciseStats(ctx context.Context) error {
	stats, err := a.exercises.Stats(ctx)
	if err != nil {
		return err
	}
	return a.print(stats)
}

func (a *app) listPlans(ctx context.Context, args []string) error {
	fs := newFlagSet("plans")
	muscleTypes := fs.String("muscle-types", "", "comma separated muscle types")
	difficulty := fs.String("difficulty", apiclient.FilterAll, "difficulty or 'all'")
	minDuration := fs.Int("min-duration", 0, "minimum estimated duration in minutes")
	maxDuration := fs.Int("max-duration", 0, "maximum estimated duration in minutes")
	search := fs.String("search", "", "free text search")
	public := fs.String("public", "", "true or false to filter by visibility")
	page := fs.Int("page", 0, "page number")
	limit := fs.Int("limit", 0, "page size")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	filters := apiclient.WorkoutPlanFilters{
		Difficulty:  models.Difficulty(*difficulty),
		DurationMin: *minDuration,
		DurationMax: *maxDuration,
		Search:      *search,
		Page:        *page,
		Limit:       *limit,
	}
	for _, muscle := range strings.Split(*muscleTypes, ",") {
		if muscle = strings.TrimSpace(muscle); muscle != "" {
			filters.MuscleTypes = append(filters.MuscleTypes, muscle)
		}
	}
	if *public != "" {
		value, err := strconv.ParseBool(*public)
		if err != nil {
			return fmt.Errorf("%w: -public must be true or false", errUsage)
		}
		filters.IsPublic = &value
	}

	list, err := a.plans.List(ctx, filters)
	if err != nil {
		return err
	}
	return a.print(list)
}

func (a *app) showPlan(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: plan needs exactly one id", errUsage)
	}
	plan, err := a.plans.Get(ctx, args[0])
	if err != nil {
		return err
	}
	return a.print(plan)
}

func (a *app) addPlanExercise(ctx context.Context, args []string) error {
	fs := newFlagSet("plan-add-exercise")
	planID := fs.String("plan", "", "workout plan id")
	exerciseID := fs.String("exercise", "", "exercise id")
	sets := fs.Int("sets", 0, "number of sets")
	reps := fs.String("reps", "", "reps, e.g. 8-12")
	weight := fs.Float64("weight", 0, "working weight")
	rest := fs.Int("rest", 0, "rest between sets in seconds")
	notes := fs.String("notes", "", "notes")
	order := fs.Int("order", 0, "position in the plan; 0 appends")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *planID == "" || *exerciseID == "" {
		return fmt.Errorf("%w: plan-add-exercise needs -plan and -exercise", errUsage)
	}

	entry := models.WorkoutPlanExercise{
		ExerciseID: *exerciseID,
		Reps:       *reps,
		Notes:      *notes,
		Order:      *order,
	}
	if *sets > 0 {
		entry.Sets = sets
	}
	if *weight > 0 {
		entry.Weight = weight
	}
	if *rest > 0 {
		entry.RestTime = rest
	}

	added, err := a.plans.AddExercise(ctx, *planID, entry)
	if err != nil {
		return err
	}
	return a.print(added)
}

func (a *app) removePlanExercise(ctx context.Context, args []string) error {
	fs := newFlagSet("plan-remove-exercise")
	planID := fs.String("plan", "", "workout plan id")
	exerciseID := fs.String("exercise", "", "exercise id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *planID == "" || *exerciseID == "" {
		return fmt.Errorf("%w: plan-remove-exercise needs -plan and -exercise", errUsage)
	}

	if err := a.plans.RemoveExercise(ctx, *planID, *exerciseID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "removed")
	return nil
}

func (a *app) local(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: local needs a subcommand", errUsage)
	}

	switch args[0] {
	case "seed":
		seeded, err := a.cache.Seed(ctx)
		if err != nil {
			return err
		}
		if seeded {
			fmt.Fprintln(a.out, "seeded local cache")
		} else {
			fmt.Fprintln(a.out, "local cache already has exercises")
		}
		return nil
	case "exercises":
		exercises, err := a.cache.Exercises.Load(ctx)
		if err != nil {
			return err
		}
		return a.print(exercises)
	case "plans":
		plans, err := a.cache.Plans.Load(ctx)
		if err != nil {
			return err
		}
		return a.print(plans)
	case "schedule":
		schedule, err := a.cache.Schedule.Load(ctx)
		if err != nil {
			return err
		}
		return a.print(schedule)
	case "sessions":
		fs := newFlagSet("local sessions")
		limit := fs.Int("limit", 0, "how many sessions to show")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		sessions, err := a.cache.Sessions.Recent(ctx, *limit)
		if err != nil {
			return err
		}
		return a.print(sessions)
	case "clear":
		if err := a.cache.ClearAll(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "cleared local cache")
		return nil
	default:
		return fmt.Errorf("%w: unknown local subcommand %q", errUsage, args[0])
	}
}
