package app

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/regionav/internal/config"
	"github.com/dshills/regionav/internal/event"
	"github.com/dshills/regionav/internal/navigation"
	"github.com/dshills/regionav/internal/shell"
	"github.com/dshills/regionav/internal/views/luaview"
)

// Application coordinates the engine components and owns the main
// event loop.
type Application struct {
	cfg    config.Config
	logger *Logger

	bus      *event.Bus
	registry *navigation.Registry
	manager  *navigation.Manager
	root     *navigation.Region

	term    *shell.Terminal
	watcher *config.Watcher

	running  atomic.Bool
	shutdown sync.Once
	done     chan struct{}

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the TOML configuration file. A
	// missing file falls back to defaults.
	ConfigPath string

	// ViewsDir overrides the configured view script directory.
	ViewsDir string

	// LogLevel overrides the configured log level.
	LogLevel string

	// Headless runs against a simulated screen instead of the tty.
	Headless bool
}

// New creates an application and initializes all components in
// dependency order. The terminal is created but not entered; Run does
// that.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	// Config first; everything else reads it.
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if app.opts.ViewsDir != "" {
		cfg.ViewsDir = app.opts.ViewsDir
	}
	if app.opts.LogLevel != "" {
		cfg.LogLevel = app.opts.LogLevel
	}
	app.cfg = cfg

	logCfg := DefaultLoggerConfig()
	logCfg.Level = ParseLogLevel(cfg.LogLevel)
	if cfg.LogPath != "" {
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return &InitError{Component: "log file", Err: err}
		}
		logCfg.Output = f
	}
	app.logger = NewLogger(logCfg)

	app.bus = event.NewBus()
	app.subscribeEngineEvents()

	app.registry = navigation.NewRegistry()
	names, err := luaview.LoadDir(app.registry, cfg.ViewsDir)
	if err != nil {
		return &InitError{Component: "views", Err: err}
	}
	app.logger.Info("loaded %d views from %s", len(names), cfg.ViewsDir)

	app.manager = navigation.NewManager(app.registry, navigation.WithBus(app.bus))
	root, err := app.manager.Add(cfg.StartRegion, nil)
	if err != nil {
		return &InitError{Component: "root region", Err: err}
	}
	app.root = root

	if cfg.WatchViews {
		w, err := config.NewWatcher(cfg.ViewsDir)
		if err != nil {
			// Live reload is a convenience; run without it.
			app.logger.Warn("view watcher unavailable: %v", err)
		} else {
			app.watcher = w
		}
	}

	if app.opts.Headless {
		app.term, err = shell.NewSimulationTerminal()
	} else {
		app.term, err = shell.NewTerminal()
	}
	if err != nil {
		return &InitError{Component: "terminal", Err: err}
	}

	return nil
}

// subscribeEngineEvents logs engine activity at debug level.
func (app *Application) subscribeEngineEvents() {
	_, _ = app.bus.SubscribeFunc(event.Topic("region.*"), func(env event.Envelope) {
		app.logger.Debug("event %s: %+v", env.Topic, env.Payload)
	})
}

// Config returns the effective configuration.
func (app *Application) Config() config.Config { return app.cfg }

// Root returns the root navigation region.
func (app *Application) Root() *navigation.Region { return app.root }

// Manager returns the region manager.
func (app *Application) Manager() *navigation.Manager { return app.manager }

// Bus returns the application event bus.
func (app *Application) Bus() *event.Bus { return app.bus }

// Terminal returns the terminal shell.
func (app *Application) Terminal() *shell.Terminal { return app.term }

// Run enters the terminal, navigates to the start view, and drives
// the event loop until quit. It returns nil on a clean exit.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	if err := app.term.Init(); err != nil {
		app.running.Store(false)
		return &InitError{Component: "terminal", Err: err}
	}
	defer app.Shutdown()

	if app.watcher != nil {
		go app.reloadLoop()
	}

	if res := app.root.ReplaceAll(app.cfg.StartView, nil); !res.Success() {
		return fmt.Errorf("navigating to start view %s: %w", app.cfg.StartView, res.Err())
	}
	app.redraw()

	for {
		ev := app.term.PollEvent()
		if ev == nil {
			return nil
		}
		if err := app.handleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// Suspend broadcasts the window-suspended signal through the whole
// region tree.
func (app *Application) Suspend() {
	app.root.OnWindowLifecycleRecursively(false)
}

// Resume broadcasts the window-resumed signal through the whole region
// tree and redraws.
func (app *Application) Resume() {
	app.root.OnWindowLifecycleRecursively(true)
	if app.running.Load() {
		app.redraw()
	}
}

// Quit interrupts the event loop from another goroutine.
func (app *Application) Quit() {
	if !app.running.Load() {
		return
	}
	app.term.PostQuit()
}

// handleEvent dispatches one terminal event.
func (app *Application) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		return ErrQuit
	case *tcell.EventResize:
		app.term.Sync()
		app.redraw()
	case *tcell.EventKey:
		return app.handleKey(ev)
	}
	return nil
}

// handleKey maps key input to navigation operations. Failed
// navigations are logged, never fatal; boundary errors like "cannot
// go back" are expected during normal use.
func (app *Application) handleKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return ErrQuit
	case tcell.KeyLeft:
		app.navigate("back", func() navigation.Result { return app.root.GoBack(nil) })
	case tcell.KeyRight:
		app.navigate("forward", func() navigation.Result { return app.root.GoForward(nil) })
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return ErrQuit
		case 'r':
			app.navigate("restart", func() navigation.Result {
				return app.root.ReplaceAll(app.cfg.StartView, nil)
			})
		default:
			if name, ok := app.viewForRune(ev.Rune()); ok {
				app.navigate("push "+name, func() navigation.Result {
					return app.root.Push(name, nil)
				})
			}
		}
	}
	return nil
}

// viewForRune maps digit keys to registered views in name order, so
// pressing 1 pushes the first view, 2 the second, and so on.
func (app *Application) viewForRune(r rune) (string, bool) {
	if r < '1' || r > '9' {
		return "", false
	}
	names := app.registry.Names()
	idx := int(r - '1')
	if idx >= len(names) {
		return "", false
	}
	return names[idx], true
}

func (app *Application) navigate(what string, op func() navigation.Result) {
	if res := op(); !res.Success() {
		app.logger.Debug("navigation %s failed: %v", what, res.Err())
		return
	}
	app.redraw()
}

func (app *Application) redraw() {
	shell.Render(app.term, app.root)
}

// reloadLoop re-registers changed view scripts. New navigations pick
// up the edited script; live instances are untouched.
func (app *Application) reloadLoop() {
	for {
		select {
		case <-app.done:
			return
		case path, ok := <-app.watcher.Events():
			if !ok {
				return
			}
			name, err := luaview.Reload(app.registry, path)
			if err != nil {
				app.logger.Warn("reloading view %s: %v", path, err)
				continue
			}
			app.logger.Info("reloaded view %s", name)
		}
	}
}

// Shutdown tears down the application: destroys the root region tree,
// stops the watcher, and restores the terminal. Safe to call more
// than once.
func (app *Application) Shutdown() {
	app.shutdown.Do(func() {
		close(app.done)

		if err := app.root.DestroyAll(); err != nil {
			app.logger.Error("destroying regions: %v", err)
		}
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				app.logger.Error("closing watcher: %v", err)
			}
		}
		app.term.Fini()
		app.running.Store(false)
		app.logger.Info("shutdown complete")
	})
}
