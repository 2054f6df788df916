package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
)

type stubMigrator struct {
	upErr      error
	steps      int
	forced     int
	version    uint
	dirty      bool
	versionErr error
}

func (s *stubMigrator) Up() error   { return s.upErr }
func (s *stubMigrator) Down() error { return nil }

func (s *stubMigrator) Steps(n int) error {
	s.steps = n
	return nil
}

func (s *stubMigrator) Force(version int) error {
	s.forced = version
	return nil
}

func (s *stubMigrator) Version() (uint, bool, error) {
	return s.version, s.dirty, s.versionErr
}

func TestRunDefaultsToUp(t *testing.T) {
	message, err := run(&stubMigrator{}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if message != "Migration up successful" {
		t.Fatalf("unexpected message %q", message)
	}

	message, err = run(&stubMigrator{upErr: migrate.ErrNoChange}, []string{"up"})
	if err != nil {
		t.Fatalf("run with no change: %v", err)
	}
	if !strings.Contains(message, "nothing to do") {
		t.Fatalf("unexpected message %q", message)
	}

	boom := errors.New("boom")
	if _, err := run(&stubMigrator{upErr: boom}, []string{"up"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped failure, got %v", err)
	}
}

func TestRunStepsAndForce(t *testing.T) {
	m := &stubMigrator{}
	if _, err := run(m, []string{"steps", "-1"}); err != nil {
		t.Fatalf("steps: %v", err)
	}
	if m.steps != -1 {
		t.Fatalf("expected steps -1, got %d", m.steps)
	}

	if _, err := run(m, []string{"force", "1"}); err != nil {
		t.Fatalf("force: %v", err)
	}
	if m.forced != 1 {
		t.Fatalf("expected forced version 1, got %d", m.forced)
	}

	for _, args := range [][]string{{"steps"}, {"force", "x"}, {"sideways"}} {
		if _, err := run(m, args); err == nil {
			t.Fatalf("expected an error for %v", args)
		}
	}
}

func TestRunVersion(t *testing.T) {
	message, err := run(&stubMigrator{versionErr: migrate.ErrNilVersion}, []string{"version"})
	if err != nil || message != "No migrations applied" {
		t.Fatalf("unexpected result %q, %v", message, err)
	}

	message, err = run(&stubMigrator{version: 1, dirty: true}, []string{"version"})
	if err != nil || message != "Schema version 1 (dirty=true)" {
		t.Fatalf("unexpected result %q, %v", message, err)
	}
}

func TestMigrationsDirFindsModuleRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "migrations"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	nested := filepath.Join(root, "cmd", "migrate")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	previous, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(previous) })

	dir, err := migrationsDir("")
	if err != nil {
		t.Fatalf("migrationsDir: %v", err)
	}
	want, _ := filepath.EvalSymlinks(filepath.Join(root, "migrations"))
	got, _ := filepath.EvalSymlinks(dir)
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	override, err := migrationsDir("custom")
	if err != nil {
		t.Fatalf("migrationsDir override: %v", err)
	}
	if !filepath.IsAbs(override) || filepath.Base(override) != "custom" {
		t.Fatalf("unexpected override %s", override)
	}
}
