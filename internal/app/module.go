// Package app wires flipdeck's components together with fx.
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"flipdeck/internal/deck"
	"flipdeck/internal/logging"
	"flipdeck/internal/trace"
	"flipdeck/internal/ui"
)

// Params holds the resolved command-line settings passed to the fx module.
type Params struct {
	// DeckPath is the deck file; empty uses deck.Example.
	DeckPath string

	// Overrides applied on top of the deck file. Zero/nil leaves the deck's value.
	Interval  time.Duration
	AutoStart *bool
	Keyboard  *bool

	Debug   bool
	LogPath string

	// ProgramOptions are passed to tea.NewProgram; empty means alt screen.
	ProgramOptions []tea.ProgramOption
}

// Module returns the fx module composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("flipdeck",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideTracing,
			provideDeck,
			provideModel,
			provideProgram,
		),
		fx.Invoke(registerLifecycle),
	)
}

// New builds the fx application. fx's own events go to the debug logger.
func New(p Params, opts ...fx.Option) *fx.App {
	return fx.New(append([]fx.Option{
		Module(p),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
	}, opts...)...)
}

func provideLogger(p Params) (*zap.Logger, error) {
	return logging.New(logging.Options{Debug: p.Debug, Path: p.LogPath})
}

func provideTracing() (*trace.Provider, error) {
	return trace.NewOTLPProvider(context.Background())
}

func provideDeck(p Params) (*deck.Deck, error) {
	d := deck.Example()
	if p.DeckPath != "" {
		loaded, err := deck.Load(p.DeckPath)
		if err != nil {
			return nil, err
		}
		d = loaded
	}

	if p.Interval > 0 {
		d.Interval = deck.Duration{Duration: p.Interval}
	}
	if p.AutoStart != nil {
		v := *p.AutoStart
		d.AutoStart = &v
	}
	if p.Keyboard != nil {
		d.Keyboard = *p.Keyboard
	}
	return d, d.Validate()
}

func provideModel(d *deck.Deck, log *zap.Logger, tp *trace.Provider) *ui.AppModel {
	return ui.NewAppModel(d, ui.WithLogger(log), ui.WithTracer(tp.Tracer()))
}

func provideProgram(p Params, m *ui.AppModel) *tea.Program {
	opts := p.ProgramOptions
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	return tea.NewProgram(m.AsTeaModel(), opts...)
}

func registerLifecycle(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	prog *tea.Program,
	model *ui.AppModel,
	tp *trace.Provider,
	log *zap.Logger,
) {
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				code := 0
				if _, err := prog.Run(); err != nil {
					log.Error("program exited", zap.Error(err))
					code = 1
				}
				if err := sd.Shutdown(fx.ExitCode(code)); err != nil {
					log.Error("shutdown", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			prog.Quit()
			select {
			case <-done:
			case <-ctx.Done():
			}
			model.Close()
			err := tp.Shutdown(ctx)
			_ = log.Sync()
			return err
		},
	})
}
