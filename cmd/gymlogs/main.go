package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/priyankaj04/Gymlogs/internal/apiclient"
	"github.com/priyankaj04/Gymlogs/internal/config"
	"github.com/priyankaj04/Gymlogs/internal/kv"
	"github.com/priyankaj04/Gymlogs/internal/localstore"
	"github.com/priyankaj04/Gymlogs/internal/session"
)

const usage = `usage: gymlogs <command> [flags]

commands:
  health                       check every backend service
  register -email -password -name
  login -email -password
  logout
  whoami
  exercises [-body-part -type -difficulty -search -page -limit]
  exercise-stats
  plans [-muscle-types -difficulty -min-duration -max-duration -search -public -page -limit]
  plan <id>
  plan-add-exercise -plan -exercise [-sets -reps -weight -rest -notes -order]
  plan-remove-exercise -plan -exercise
  local seed|exercises|plans|schedule|sessions|clear
`

var errUsage = errors.New("invalid usage")

// app holds everything a command can reach.
type app struct {
	out       io.Writer
	auth      *apiclient.AuthClient
	manager   *session.Manager
	exercises *apiclient.ExerciseClient
	plans     *apiclient.WorkoutPlanClient
	cache     *localstore.Cache
}

func newApp(cfg *config.Config, store kv.Store, out io.Writer) *app {
	sessions := session.NewStore(store)
	api := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.HTTPTimeout),
		apiclient.WithTokenSource(sessions),
	)
	auth := apiclient.NewAuthClient(api, sessions)

	return &app{
		out:       out,
		auth:      auth,
		manager:   session.NewManager(auth),
		exercises: apiclient.NewExerciseClient(api),
		plans:     apiclient.NewWorkoutPlanClient(api),
		cache:     localstore.New(store),
	}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("gymlogs: ")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := kv.Open(cfg.StorageBackend, cfg.StoragePath, cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(cfg, store, os.Stdout).run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	command, rest := args[0], args[1:]
	switch command {
	case "health":
		return a.health(ctx)
	case "register":
		return a.register(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "exercises":
		return a.listExercises(ctx, rest)
	case "exercise-stats":
		return a.exerciseStats(ctx)
	case "plans":
		return a.listPlans(ctx, rest)
	case "plan":
		return a.showPlan(ctx, rest)
	case "plan-add-exercise":
		return a.addPlanExercise(ctx, rest)
	case "plan-remove-exercise":
		return a.removePlanExercise(ctx, rest)
	case "local":
		return a.local(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}
