package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/ini.v1"
)

// Settings file layout, shared with the bot script which reads the token
// from the same file.
const (
	settingsFileName = "settings.ini"
	settingsSection  = "Settings"

	settingLanguage    = "Language"
	settingProvisioned = "PythonIns"
	settingToken       = "TelegramToken"

	defaultLanguage = "Russian"
)

// SettingsService is the durable section/key string store behind
// settings.ini. It is the only configuration surface of the launcher and is
// passed explicitly into every component that needs it.
type SettingsService struct {
	baseDir string
	logger  func(string)
	mu      sync.Mutex
}

// NewSettingsService creates a new SettingsService instance.
func NewSettingsService(logger func(string)) *SettingsService {
	return &SettingsService{logger: logger}
}

// Name returns the service name.
func (ss *SettingsService) Name() string {
	return "settings"
}

// Initialize ensures the settings file exists with the default entries.
// Existing values are never overwritten.
func (ss *SettingsService) Initialize(ctx context.Context) error {
	dir, err := ss.BaseDir()
	if err != nil {
		return WrapError("settings", "Initialize", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return WrapError("settings", "Initialize", fmt.Errorf("failed to create settings dir: %w", err))
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	path := filepath.Join(dir, settingsFileName)
	f, err := ini.LooseLoad(path)
	if err != nil {
		return WrapError("settings", "Initialize", err)
	}

	sec := f.Section(settingsSection)
	changed := false
	if !sec.HasKey(settingLanguage) {
		sec.Key(settingLanguage).SetValue(defaultLanguage)
		changed = true
	}
	if !sec.HasKey(settingProvisioned) {
		sec.Key(settingProvisioned).SetValue("False")
		changed = true
	}
	if changed {
		if err := f.SaveTo(path); err != nil {
			return WrapError("settings", "Initialize", err)
		}
	}

	ss.log(fmt.Sprintf("SettingsService initialized, file: %s", path))
	return nil
}

// Shutdown closes the settings service (no-op, writes are write-through).
func (ss *SettingsService) Shutdown() error {
	return nil
}

// BaseDir returns the directory holding settings.ini. Defaults to the
// directory of the running executable so the bot script can share the file.
func (ss *SettingsService) BaseDir() (string, error) {
	ss.mu.Lock()
	bd := ss.baseDir
	ss.mu.Unlock()

	if bd != "" {
		return bd, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", WrapError("settings", "BaseDir", err)
	}
	return filepath.Dir(exe), nil
}

// SetBaseDir overrides the settings directory (mainly for tests).
func (ss *SettingsService) SetBaseDir(dir string) {
	ss.mu.Lock()
	ss.baseDir = dir
	ss.mu.Unlock()
}

// FilePath returns the settings file path.
func (ss *SettingsService) FilePath() (string, error) {
	dir, err := ss.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFileName), nil
}

// Get returns the stored value for (section, key), or "" when the key,
// section or file is absent. Reads go to disk so external edits (the bot
// script shares the file) are always visible.
func (ss *SettingsService) Get(section, key string) string {
	path, err := ss.FilePath()
	if err != nil {
		return ""
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	f, err := ini.Load(path)
	if err != nil {
		return ""
	}
	return f.Section(section).Key(key).String()
}

// Set writes (section, key) = value through to disk, creating the file,
// section and key as needed. Unknown sections and keys already in the file
// are preserved. Last write wins; no locking against external writers.
func (ss *SettingsService) Set(section, key, value string) error {
	path, err := ss.FilePath()
	if err != nil {
		return err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return WrapError("settings", "Set", err)
	}
	f, err := ini.LooseLoad(path)
	if err != nil {
		return WrapError("settings", "Set", err)
	}
	f.Section(section).Key(key).SetValue(value)
	if err := f.SaveTo(path); err != nil {
		return WrapError("settings", "Set", err)
	}
	return nil
}

// Language returns the persisted UI language, falling back to the default.
func (ss *SettingsService) Language() string {
	if lang := ss.Get(settingsSection, settingLanguage); lang != "" {
		return lang
	}
	return defaultLanguage
}

// SetLanguage persists the UI language immediately.
func (ss *SettingsService) SetLanguage(lang string) error {
	return ss.Set(settingsSection, settingLanguage, lang)
}

// Token returns the persisted bot token, or "" when none was saved yet.
func (ss *SettingsService) Token() string {
	return ss.Get(settingsSection, settingToken)
}

// SetToken persists a validated bot token.
func (ss *SettingsService) SetToken(token string) error {
	return ss.Set(settingsSection, settingToken, token)
}

// IsProvisioned reports whether the one-time environment setup already ran.
// An absent flag or the literal "False" (case-insensitive) means it did not.
func (ss *SettingsService) IsProvisioned() bool {
	v := ss.Get(settingsSection, settingProvisioned)
	return v != "" && !strings.EqualFold(v, "false")
}

// SetProvisioned records the provisioning flag.
func (ss *SettingsService) SetProvisioned(done bool) error {
	v := "False"
	if done {
		v = "True"
	}
	return ss.Set(settingsSection, settingProvisioned, v)
}

func (ss *SettingsService) log(msg string) {
	if ss.logger != nil {
		ss.logger(msg)
	}
}
