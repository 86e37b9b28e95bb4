package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"botmeet/i18n"
	"botmeet/logger"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Help opens the official BotFather documentation, independent of all other
// launcher state.
const helpURL = "https://core.telegram.org/bots#botfather"

// App struct
type App struct {
	ctx              context.Context
	registry         *ServiceRegistry
	settingsService  *SettingsService
	pythonService    *PythonService
	provisionService *ProvisionService
	telegramService  *TelegramService
	launcherService  *LauncherService
	translator       *i18n.Translator
	logger           *logger.Logger
}

// UIState is everything the form needs to render itself.
type UIState struct {
	Language  string            `json:"language"`
	Languages []string          `json:"languages"`
	Token     string            `json:"token"`
	Labels    map[string]string `json:"labels"`
}

// SubmitResult reports the outcome of a token submission to the frontend.
type SubmitResult struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// NewApp creates a new App application struct
func NewApp() *App {
	l := logger.NewLogger()
	settings := NewSettingsService(l.Log)
	python := NewPythonService(l.Log)
	return &App{
		settingsService:  settings,
		pythonService:    python,
		provisionService: NewProvisionService(settings, python, l.Log),
		telegramService:  NewTelegramService(l.Log),
		launcherService:  NewLauncherService(settings, python, l.Log),
		translator:       i18n.GetTranslator(),
		logger:           l,
	}
}

// startup is called when the app starts.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	if dir, err := a.settingsService.BaseDir(); err == nil {
		if err := a.logger.Init(filepath.Join(dir, "logs")); err != nil {
			fmt.Printf("Logger init failed: %v\n", err)
		}
	}

	// System tray (Windows/Linux only, handled by build tags)
	runSystray(ctx)

	a.registry = NewServiceRegistry(ctx, a.Log)
	if err := a.registry.RegisterCritical(a.settingsService); err != nil {
		a.Log("[STARTUP] " + err.Error())
	}
	for _, svc := range []Service{a.pythonService, a.provisionService, a.telegramService, a.launcherService} {
		if err := a.registry.Register(svc); err != nil {
			a.Log("[STARTUP] " + err.Error())
		}
	}
	if err := a.registry.InitializeAll(); err != nil {
		// Without the settings store nothing else can work, but the window
		// stays up so the user sees what went wrong.
		a.Log("[STARTUP] " + err.Error())
		a.showError(err.Error())
		return
	}

	// One-time environment setup. Blocks: it runs once per install and
	// nothing else is useful until it finished.
	provisionErr := a.provisionService.EnsureProvisioned()

	a.loadLanguage(a.settingsService.Language())

	// Surfaced after the catalog load so the report is localized.
	if provisionErr != nil {
		a.Log("[STARTUP] provisioning: " + provisionErr.Error())
		if errors.Is(provisionErr, ErrInstallerMissing) {
			a.showError(a.translator.T(i18n.KeyBatNotFoundError))
		} else {
			a.showError(a.translator.T(i18n.KeyBatRunError) + "\n" + provisionErr.Error())
		}
	}
}

// shutdown is called when the app terminates.
func (a *App) shutdown(ctx context.Context) {
	if a.registry != nil {
		a.registry.ShutdownAll()
	}
	// Close logger last - other services may need to log during shutdown
	a.logger.Close()
}

// loadLanguage swaps the active catalog to the named language. A missing
// resource file degrades to raw-key rendering and a one-time warning.
func (a *App) loadLanguage(name string) {
	dir, err := a.settingsService.BaseDir()
	if err != nil {
		a.translator.SetCatalog(nil)
		return
	}

	catalog, err := i18n.LoadCatalog(filepath.Join(dir, i18n.DirName), name)
	if err != nil {
		a.Log("Language catalog load failed: " + err.Error())
		a.translator.SetCatalog(nil)
		a.showWarning(a.translator.T(i18n.KeyLanguageMissing) + ": " + name)
		return
	}
	a.translator.SetCatalog(catalog)
	a.Log(fmt.Sprintf("Language catalog loaded: %s (%d entries)", name, catalog.Len()))
}

// UIState returns the current form state for a full render.
func (a *App) UIState() UIState {
	languages := []string{}
	if dir, err := a.settingsService.BaseDir(); err == nil {
		if found := i18n.ListLanguages(filepath.Join(dir, i18n.DirName)); found != nil {
			languages = found
		}
	}
	return UIState{
		Language:  a.settingsService.Language(),
		Languages: languages,
		Token:     a.settingsService.Token(),
		Labels:    a.translator.Snapshot(),
	}
}

// SetLanguage persists the selected language, reloads the catalog and
// returns the refreshed state so the frontend re-renders every label.
func (a *App) SetLanguage(name string) UIState {
	if err := a.settingsService.SetLanguage(name); err != nil {
		a.Log("SetLanguage: " + err.Error())
	}
	a.loadLanguage(name)
	return a.UIState()
}

// SubmitToken validates the entered token and, when Telegram accepts it,
// persists it and starts the bot. The returned message is already localized.
func (a *App) SubmitToken(raw string) SubmitResult {
	token := strings.TrimSpace(raw)

	// The field renders its placeholder as content on some first
	// interactions; treat it the same as an empty submit.
	if token == "" || raw == a.translator.T(i18n.KeyTextBox) {
		return SubmitResult{Message: a.translator.T(i18n.KeyEmptyTokenError)}
	}
	if err := a.telegramService.ValidateFormat(token); err != nil {
		if errors.Is(err, ErrTokenEmpty) {
			return SubmitResult{Message: a.translator.T(i18n.KeyEmptyTokenError)}
		}
		return SubmitResult{Message: a.translator.T(i18n.KeyInvalidFormatError)}
	}

	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	status := a.telegramService.CheckToken(ctx, token)
	a.Log("Token check: " + status.String())
	if status != TokenAccepted {
		// Rejection and network failure collapse into one message; the
		// launcher does not tell "wrong token" from "no network".
		return SubmitResult{Message: a.translator.T(i18n.KeyInvalidTokenError)}
	}

	if err := a.settingsService.SetToken(token); err != nil {
		a.Log("SubmitToken: " + err.Error())
		return SubmitResult{Message: err.Error()}
	}

	if err := a.launcherService.LaunchBot(); err != nil {
		a.Log("SubmitToken: " + err.Error())
		// The token stays persisted; only the launch failed.
		if errors.Is(err, ErrBotScriptMissing) || errors.Is(err, ErrPythonMissing) {
			return SubmitResult{Message: a.translator.T(i18n.KeyPyNotFoundError)}
		}
		return SubmitResult{Message: err.Error()}
	}

	return SubmitResult{Ok: true}
}

// OpenHelp opens the help page in the user's default browser.
func (a *App) OpenHelp() {
	runtime.BrowserOpenURL(a.ctx, helpURL)
}

// Log writes a message through the application logger (also bound for the
// frontend).
func (a *App) Log(message string) {
	a.logger.Log(message)
}

func (a *App) showError(message string) {
	if a.ctx == nil {
		return
	}
	runtime.MessageDialog(a.ctx, runtime.MessageDialogOptions{
		Type:    runtime.ErrorDialog,
		Title:   a.translator.T(i18n.KeyErrorTitle),
		Message: message,
	})
}

func (a *App) showWarning(message string) {
	if a.ctx == nil {
		return
	}
	runtime.MessageDialog(a.ctx, runtime.MessageDialogOptions{
		Type:    runtime.WarningDialog,
		Title:   a.translator.T(i18n.KeyErrorTitle),
		Message: message,
	})
}
