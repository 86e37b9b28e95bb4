package main

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("interpreter fixtures are POSIX shell")
	}
}

// writeFakePython drops an executable shell script posing as an interpreter.
func writeFakePython(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
}

func TestPython_FindInterpreter_PrefersBundled(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	bundled := filepath.Join(dir, "python", "bin", "python3")
	writeFakePython(t, bundled, "exit 0")

	ps := NewPythonService(nil)
	ps.SetBaseDir(dir)

	got, err := ps.FindInterpreter()
	if err != nil {
		t.Fatalf("FindInterpreter failed: %v", err)
	}
	if !strings.HasPrefix(got, dir) {
		t.Errorf("FindInterpreter = %q, want the bundled runtime under %q", got, dir)
	}
}

func TestPython_FindInterpreter_PathFallback(t *testing.T) {
	skipOnWindows(t)
	binDir := t.TempDir()
	writeFakePython(t, filepath.Join(binDir, "python3"), "exit 0")
	t.Setenv("PATH", binDir)

	ps := NewPythonService(nil)
	ps.SetBaseDir(t.TempDir()) // no bundled runtime here

	got, err := ps.FindInterpreter()
	if err != nil {
		t.Fatalf("FindInterpreter failed: %v", err)
	}
	if filepath.Base(got) != "python3" {
		t.Errorf("FindInterpreter = %q, want a python3 from PATH", got)
	}
}

func TestPython_FindInterpreter_NoneFound(t *testing.T) {
	skipOnWindows(t)
	t.Setenv("PATH", t.TempDir())

	ps := NewPythonService(nil)
	ps.SetBaseDir(t.TempDir())

	_, err := ps.FindInterpreter()
	if !errors.Is(err, ErrPythonMissing) {
		t.Fatalf("err = %v, want ErrPythonMissing", err)
	}
}

func TestPython_Version(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	fake := filepath.Join(dir, "python3")
	writeFakePython(t, fake, `echo "Python 3.12.1"`)

	ps := NewPythonService(nil)
	if got := ps.Version(fake); got != "Python 3.12.1" {
		t.Errorf("Version = %q", got)
	}
	if got := ps.Version(filepath.Join(dir, "missing")); got != "Unknown" {
		t.Errorf("Version on missing binary = %q, want Unknown", got)
	}
}

func TestPython_CheckPackage(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	ok := filepath.Join(dir, "python-ok")
	writeFakePython(t, ok, "exit 0")
	bad := filepath.Join(dir, "python-bad")
	writeFakePython(t, bad, "exit 1")

	ps := NewPythonService(nil)
	if !ps.CheckPackage(ok, "telegram") {
		t.Error("import success should report true")
	}
	if ps.CheckPackage(bad, "telegram") {
		t.Error("import failure should report false")
	}
}
