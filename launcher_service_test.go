package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestLauncher(t *testing.T) (*LauncherService, *SettingsService, string) {
	t.Helper()
	skipOnWindows(t)
	ss := newTestSettings(t)
	if err := ss.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	dir, _ := ss.BaseDir()

	python := NewPythonService(nil)
	python.SetBaseDir(dir)

	ls := NewLauncherService(ss, python, func(msg string) { t.Log(msg) })
	return ls, ss, dir
}

func TestLauncher_MissingScript(t *testing.T) {
	ls, _, _ := newTestLauncher(t)

	err := ls.LaunchBot()
	if !errors.Is(err, ErrBotScriptMissing) {
		t.Fatalf("err = %v, want ErrBotScriptMissing", err)
	}
}

func TestLauncher_MissingInterpreter(t *testing.T) {
	ls, _, dir := newTestLauncher(t)
	t.Setenv("PATH", t.TempDir())

	if err := os.WriteFile(filepath.Join(dir, botScriptName), []byte("print('hi')\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := ls.LaunchBot()
	if !errors.Is(err, ErrPythonMissing) {
		t.Fatalf("err = %v, want ErrPythonMissing", err)
	}
}

func TestLauncher_StartsDetached(t *testing.T) {
	ls, _, dir := newTestLauncher(t)

	marker := filepath.Join(dir, "bot-ran")
	// The fake interpreter records its script argument and exits; the
	// launcher must return without waiting on it.
	writeFakePython(t, filepath.Join(dir, "python", "bin", "python3"),
		`echo "$1" > `+marker)

	if err := os.WriteFile(filepath.Join(dir, botScriptName), []byte("print('hi')\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := ls.LaunchBot(); err != nil {
		t.Fatalf("LaunchBot failed: %v", err)
	}

	// Fire-and-forget: give the child a moment to run, then check it got
	// the absolute script path as its only argument.
	deadline := time.Now().Add(5 * time.Second)
	for {
		data, err := os.ReadFile(marker)
		if err == nil {
			got := string(data)
			want := filepath.Join(dir, botScriptName)
			if !filepath.IsAbs(want) || !strings.Contains(got, want) {
				t.Errorf("bot invoked with %q, want the absolute path %q", got, want)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("bot process never ran")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
