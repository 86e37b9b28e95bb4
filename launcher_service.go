package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrBotScriptMissing reports that the bundled bot script is absent.
var ErrBotScriptMissing = errors.New("bot script not found")

// The bot entrypoint ships beside the launcher and reads its token from the
// shared settings.ini.
const botScriptName = "TelegramBotMeetCore.py"

// LauncherService starts the bot as an independent Python process. Fire and
// forget: the child is never waited on, supervised or restarted.
type LauncherService struct {
	settings *SettingsService
	python   *PythonService
	logger   func(string)
}

// NewLauncherService creates a new LauncherService.
func NewLauncherService(settings *SettingsService, python *PythonService, logger func(string)) *LauncherService {
	return &LauncherService{settings: settings, python: python, logger: logger}
}

// Name returns the service name.
func (ls *LauncherService) Name() string {
	return "launcher"
}

// Initialize prepares the service (no-op).
func (ls *LauncherService) Initialize(ctx context.Context) error {
	return nil
}

// Shutdown closes the service. A launched bot outlives the launcher, so
// there is nothing to stop here.
func (ls *LauncherService) Shutdown() error {
	return nil
}

// BotScriptPath returns the fixed bot entrypoint beside the application.
func (ls *LauncherService) BotScriptPath() (string, error) {
	dir, err := ls.settings.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, botScriptName), nil
}

// LaunchBot starts the bot process and returns without waiting for it.
// Preconditions: the script file exists and an interpreter is available;
// otherwise nothing is started and the error names what was missing.
func (ls *LauncherService) LaunchBot() error {
	scriptPath, err := ls.BotScriptPath()
	if err != nil {
		return WrapError("launcher", "LaunchBot", err)
	}
	if _, err := os.Stat(scriptPath); err != nil {
		return WrapError("launcher", "LaunchBot", fmt.Errorf("%w: %s", ErrBotScriptMissing, scriptPath))
	}

	pythonExe, err := ls.python.FindInterpreter()
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(scriptPath)
	if err != nil {
		abs = scriptPath
	}

	cmd := exec.Command(pythonExe, abs)
	cmd.Dir = filepath.Dir(abs)
	cmd.Env = append(os.Environ(), "PYTHONUTF8=1")
	cmd.SysProcAttr = hiddenProcAttr()

	if err := cmd.Start(); err != nil {
		return WrapError("launcher", "LaunchBot", err)
	}
	ls.log(fmt.Sprintf("Bot started: %s %s (pid %d)", pythonExe, abs, cmd.Process.Pid))

	// Reap the child when it eventually exits so it does not linger as a
	// zombie while the launcher window stays open.
	go func() { _ = cmd.Wait() }()

	return nil
}

func (ls *LauncherService) log(msg string) {
	if ls.logger != nil {
		ls.logger(msg)
	}
}
