package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/priyankaj04/Gymlogs/internal/config"
)

const usage = "usage: migrate [up | down | steps <n> | force <version> | version]"

// migrator is the part of *migrate.Migrate the commands use.
type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Force(version int) error
	Version() (uint, bool, error)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}

	dir, err := migrationsDir(os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to open migrations in %s: %v", dir, err)
	}
	defer m.Close()

	message, err := run(m, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	log.Println(message)
}

// run executes one command and returns what to report on success.
func run(m migrator, args []string) (string, error) {
	command := "up"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "up":
		return applied("up", m.Up())
	case "down":
		return applied("down", m.Down())
	case "steps":
		n, err := intArg(args)
		if err != nil {
			return "", err
		}
		return applied(fmt.Sprintf("steps %d", n), m.Steps(n))
	case "force":
		version, err := intArg(args)
		if err != nil {
			return "", err
		}
		if err := m.Force(version); err != nil {
			return "", err
		}
		return fmt.Sprintf("Forced schema version %d", version), nil
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return "No migrations applied", nil
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Schema version %d (dirty=%t)", version, dirty), nil
	default:
		return "", fmt.Errorf("unknown command %q; %s", command, usage)
	}
}

func applied(what string, err error) (string, error) {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		return fmt.Sprintf("Migration %s: nothing to do", what), nil
	case err != nil:
		return "", fmt.Errorf("migration %s: %w", what, err)
	default:
		return fmt.Sprintf("Migration %s successful", what), nil
	}
}

func intArg(args []string) (int, error) {
	if len(args) != 2 {
		return 0, fmt.Errorf("%s needs one number; %s", args[0], usage)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", args[0], args[1])
	}
	return n, nil
}

// migrationsDir returns override when set, otherwise the migrations folder
// of the nearest enclosing module root.
func migrationsDir(override string) (string, error) {
	if override != "" {
		return filepath.Abs(override)
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			candidate := filepath.Join(dir, "migrations")
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("migrations directory not found; set MIGRATIONS_DIR")
		}
		dir = parent
	}
}
