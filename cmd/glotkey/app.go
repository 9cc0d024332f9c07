package main

import (
	"context"
	"log/slog"
	"sync"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/glotkey/glotkey/pkg/backends/catalog"
	"github.com/glotkey/glotkey/pkg/capture"
	"github.com/glotkey/glotkey/pkg/config"
	"github.com/glotkey/glotkey/pkg/hotkeys"
	"github.com/glotkey/glotkey/pkg/translator"
)

// App is the Wails-bound API surface. Everything behind it lives in pkg/.
// Wails dispatches each bound call on its own goroutine, so the mutable
// configuration sits behind a mutex.
type App struct {
	ctx     context.Context
	log     *slog.Logger
	cfgPath string

	mu  sync.RWMutex
	cfg config.Config

	svc      *translator.Service
	registry *hotkeys.Registry
	trigger  *capture.Trigger
	catalog  *catalog.Client
	clip     capture.SystemClipboard
}

// NewApp wires the core services together. The Wails context arrives later,
// in startup, so event emission before then is a no-op.
func NewApp(cfg config.Config, cfgPath string, log *slog.Logger) *App {
	app := &App{cfg: cfg, cfgPath: cfgPath, log: log, catalog: catalog.New()}

	sink := appSink{app: app}

	app.svc = translator.New(sink, log)
	app.svc.SetAPIKey(cfg.APIKey)

	app.trigger = capture.New(
		capture.SystemKeys{},
		capture.SystemClipboard{},
		appPresenter{app: app},
		sink,
		cfg.SettleDuration(),
		log,
	)

	app.registry = hotkeys.NewRegistry(app.trigger.Fire, log)

	return app
}

// startup saves the runtime context and registers the configured shortcut.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	a.mu.RLock()
	shortcut := a.cfg.Shortcut
	a.mu.RUnlock()

	binding, err := hotkeys.ParseBinding(shortcut)
	if err != nil {
		a.log.Warn("configured shortcut is invalid, no hotkey registered",
			"shortcut", shortcut, "error", err)
		return
	}

	if err := a.registry.Replace(binding); err != nil {
		a.log.Warn("register configured shortcut", "error", err)
	}
}

func (a *App) shutdown(_ context.Context) {
	_ = a.registry.Close()
}

// Translate streams a translation to the frontend and returns the full text.
func (a *App) Translate(req translator.Request) (string, error) {
	return a.svc.Translate(a.runCtx(), req)
}

// Explain streams a linguistic explanation to the frontend and returns the
// full text.
func (a *App) Explain(req translator.Request) (string, error) {
	return a.svc.Explain(a.runCtx(), req)
}

// UpdateShortcut swaps the global hotkey and persists the new binding.
func (a *App) UpdateShortcut(spec string) error {
	binding, err := hotkeys.ParseBinding(spec)
	if err != nil {
		return err
	}

	if err := a.registry.Replace(binding); err != nil {
		return err
	}

	a.mu.Lock()
	a.cfg.Shortcut = binding.String()
	cfg := a.cfg
	a.mu.Unlock()

	if err := cfg.Save(a.cfgPath); err != nil {
		a.log.Warn("persist shortcut", "error", err)
	}

	return nil
}

// GetClipboardText returns the current clipboard text.
func (a *App) GetClipboardText() (string, error) {
	return a.clip.ReadText()
}

// SetClipboardText replaces the clipboard text.
func (a *App) SetClipboardText(text string) error {
	return a.clip.WriteText(text)
}

// ListModels fetches the models available on a backend for the settings UI.
func (a *App) ListModels(provider, endpoint string) ([]catalog.Model, error) {
	a.mu.RLock()
	apiKey := a.cfg.APIKey
	a.mu.RUnlock()

	return a.catalog.List(a.runCtx(), provider, endpoint, apiKey)
}

// GetConfig returns the current configuration.
func (a *App) GetConfig() config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.cfg
}

// SaveConfig validates, persists, and applies a configuration edit, including
// re-registering the shortcut if it changed.
func (a *App) SaveConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cfg.Save(a.cfgPath); err != nil {
		return err
	}

	a.mu.RLock()
	prevShortcut := a.cfg.Shortcut
	a.mu.RUnlock()

	if cfg.Shortcut != prevShortcut {
		binding, err := hotkeys.ParseBinding(cfg.Shortcut)
		if err != nil {
			return err
		}
		if err := a.registry.Replace(binding); err != nil {
			return err
		}
	}

	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()

	a.svc.SetAPIKey(cfg.APIKey)

	return nil
}

func (a *App) runCtx() context.Context {
	if a.ctx != nil {
		return a.ctx
	}

	return context.Background()
}

// appSink bridges core notifications to Wails events so the frontend
// receives them in emission order.
type appSink struct{ app *App }

func (s appSink) Emit(name string, payload any) {
	if s.app.ctx == nil {
		return
	}

	wailsruntime.EventsEmit(s.app.ctx, name, payload)
}

// appPresenter makes the main window visible and focused before a captured
// selection is delivered.
type appPresenter struct{ app *App }

func (p appPresenter) ShowWindow() {
	if p.app.ctx == nil {
		return
	}

	wailsruntime.WindowUnminimise(p.app.ctx)
	wailsruntime.WindowShow(p.app.ctx)
}
