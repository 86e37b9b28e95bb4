package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrInstallerMissing reports that the bundled installer script is absent.
var ErrInstallerMissing = errors.New("installer script not found")

// Package the installer is expected to make importable; checked only to log
// the outcome, never to gate the launch.
const botPackage = "telegram"

// ProvisionService performs the one-time Python environment setup by running
// the bundled installer script. Two states, one transition: not provisioned
// -> provisioned, tracked by the PythonIns settings flag.
type ProvisionService struct {
	settings *SettingsService
	python   *PythonService
	logger   func(string)
}

// NewProvisionService creates a new ProvisionService.
func NewProvisionService(settings *SettingsService, python *PythonService, logger func(string)) *ProvisionService {
	return &ProvisionService{settings: settings, python: python, logger: logger}
}

// Name returns the service name.
func (ps *ProvisionService) Name() string {
	return "provision"
}

// Initialize prepares the provision service (no-op; provisioning itself is
// driven explicitly from startup so its blocking nature stays visible).
func (ps *ProvisionService) Initialize(ctx context.Context) error {
	return nil
}

// Shutdown closes the service (no-op).
func (ps *ProvisionService) Shutdown() error {
	return nil
}

// ScriptPath returns the fixed installer location beside the application.
func (ps *ProvisionService) ScriptPath() (string, error) {
	dir, err := ps.settings.BaseDir()
	if err != nil {
		return "", err
	}
	name := "install.sh"
	if runtime.GOOS == "windows" {
		name = "install.bat"
	}
	return filepath.Join(dir, name), nil
}

// EnsureProvisioned runs the installer script to completion if the
// provisioning flag is unset. The call blocks until the script exits.
//
// The script's exit code is deliberately not consulted: once it ran to
// completion the flag is set and the installer is never retried. A missing
// script or a failed process start leaves the flag unset so the next start
// retries.
func (ps *ProvisionService) EnsureProvisioned() error {
	if ps.settings.IsProvisioned() {
		return nil
	}

	scriptPath, err := ps.ScriptPath()
	if err != nil {
		return WrapError("provision", "EnsureProvisioned", err)
	}
	if _, err := os.Stat(scriptPath); err != nil {
		ps.log("Installer script missing: " + scriptPath)
		return WrapError("provision", "EnsureProvisioned", fmt.Errorf("%w: %s", ErrInstallerMissing, scriptPath))
	}

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command(scriptPath)
	} else {
		cmd = exec.Command("/bin/sh", scriptPath)
	}
	cmd.Dir = filepath.Dir(scriptPath)
	cmd.SysProcAttr = hiddenProcAttr()

	ps.log("Running installer: " + scriptPath)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The process never started; keep the flag unset for retry.
			return WrapError("provision", "EnsureProvisioned", err)
		}
		ps.log(fmt.Sprintf("Installer exited with %d (ignored)", exitErr.ExitCode()))
	}

	if err := ps.settings.SetProvisioned(true); err != nil {
		return WrapError("provision", "EnsureProvisioned", err)
	}
	ps.log("Provisioning flag set")

	ps.reportEnvironment()
	return nil
}

// reportEnvironment logs what the installer left behind.
func (ps *ProvisionService) reportEnvironment() {
	if ps.python == nil {
		return
	}
	path, err := ps.python.FindInterpreter()
	if err != nil {
		ps.log("Post-install check: no Python interpreter found")
		return
	}
	ps.log("Post-install check: " + path + " (" + ps.python.Version(path) + ")")
	if !ps.python.CheckPackage(path, botPackage) {
		ps.log("Post-install check: package " + botPackage + " not importable")
	}
}

func (ps *ProvisionService) log(msg string) {
	if ps.logger != nil {
		ps.logger(msg)
	}
}
