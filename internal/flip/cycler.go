// Package flip cycles a fixed set of panels with a rotateX flip transition.
//
// A Cycler is a Bubble Tea component. Timers are tea.Tick commands and their
// messages must be routed back through Update; all state is touched from the
// program's event loop only.
//
// Each advance is two-phase: both panels are rotated immediately, and a
// delayed SwapMsg (after the incoming panel's transition duration) hides the
// outgoing panel, reveals the incoming one and zeroes its rotation. The
// logical index moves at the start of the flip, not at the swap.
package flip

import (
	"context"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"flipdeck/internal/keybind"
)

// DefaultInterval is the time between automatic advances.
const DefaultInterval = 2000 * time.Millisecond

// Rotation angles, in degrees, used by a flip.
const (
	RotationAway     = 90
	RotationIncoming = -90
	RotationFlat     = 0
)

// Panel is one element in the rotating set. Panels are owned by the host and
// outlive the Cycler.
type Panel interface {
	Styler
	SetVisible(visible bool)
	SetRotation(degrees int)
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg is sent by the repeating timer.
type TickMsg struct {
	ID  int
	tag int
}

// SwapMsg completes a flip once the transition has had time to run.
type SwapMsg struct {
	ID  int
	seq int
}

// PauseToggleMsg asks the cycler with the given ID to pause or resume.
type PauseToggleMsg struct {
	ID int
}

// AdvanceMsg asks the cycler with the given ID to flip to the next panel.
type AdvanceMsg struct {
	ID int
}

// flight is a flip whose visibility swap has not happened yet.
type flight struct {
	seq      int
	from, to int
}

// Cycler owns the panel sequence and the current position.
type Cycler struct {
	id       int
	panels   []Panel
	current  int
	interval time.Duration

	running bool
	tag     int // bumped on every start/stop; ticks carrying an older tag are dropped

	pending *flight
	seq     int

	unbind []func()
	closed bool

	log    *zap.Logger
	tracer oteltrace.Tracer
}

type config struct {
	interval  time.Duration
	autoStart bool
	keys      *keybind.Registry
	log       *zap.Logger
	tracer    oteltrace.Tracer
}

// Option configures a Cycler.
type Option func(*config)

// WithInterval sets the time between automatic advances.
// Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithAutoStart controls whether the cycler is running after New.
// Defaults to true.
func WithAutoStart(on bool) Option {
	return func(c *config) { c.autoStart = on }
}

// WithKeyboard binds enter (pause/resume) and space (advance) on reg for the
// lifetime of the cycler. Keyboard handling is off by default.
func WithKeyboard(reg *keybind.Registry) Option {
	return func(c *config) { c.keys = reg }
}

// WithLogger sets the logger used for per-operation debug output.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithTracer records a span for every operation.
func WithTracer(t oteltrace.Tracer) Option {
	return func(c *config) {
		if t != nil {
			c.tracer = t
		}
	}
}

// New creates a Cycler over panels, which must be non-empty. The panel slice
// is copied; the panels themselves are not.
func New(panels []Panel, opts ...Option) *Cycler {
	cfg := config{
		interval:  DefaultInterval,
		autoStart: true,
		log:       zap.NewNop(),
		tracer:    noop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Cycler{
		id:       nextID(),
		panels:   append([]Panel(nil), panels...),
		interval: cfg.interval,
		log:      cfg.log,
		tracer:   cfg.tracer,
	}
	c.record("init", zap.Int("panels", len(c.panels)), zap.Duration("interval", c.interval))

	if cfg.keys != nil {
		c.bindKeys(cfg.keys)
	}
	if cfg.autoStart {
		c.Start()
	}
	return c
}

func (c *Cycler) bindKeys(reg *keybind.Registry) {
	id := c.id
	c.unbind = append(c.unbind,
		reg.BindWithDesc("enter", func() tea.Msg { return PauseToggleMsg{ID: id} }, "pause/resume"),
		reg.BindWithDesc(" ", func() tea.Msg { return AdvanceMsg{ID: id} }, "next"),
	)
}

// ID returns the identifier carried by this cycler's messages.
func (c *Cycler) ID() int { return c.id }

// Index returns the position of the current panel.
func (c *Cycler) Index() int { return c.current }

// Len returns the number of panels.
func (c *Cycler) Len() int { return len(c.panels) }

// Interval returns the time between automatic advances.
func (c *Cycler) Interval() time.Duration { return c.interval }

// IsRunning reports whether the repeating timer is active.
func (c *Cycler) IsRunning() bool { return c.running }

// Pending reports whether a flip is waiting for its visibility swap.
func (c *Cycler) Pending() bool { return c.pending != nil }

// Init returns the first tick when the cycler was auto-started.
func (c *Cycler) Init() tea.Cmd {
	if !c.running {
		return nil
	}
	return c.tick()
}

// Start begins the repeating timer. It does nothing when already running.
func (c *Cycler) Start() tea.Cmd {
	if c.running || c.closed {
		return nil
	}
	c.record("start")
	c.running = true
	c.tag++
	return c.tick()
}

// Stop cancels the repeating timer. A flip already in progress still
// completes.
func (c *Cycler) Stop() {
	c.record("stop")
	if !c.running {
		return
	}
	c.running = false
	c.tag++
}

// PauseToggle stops a running cycler or starts a stopped one.
func (c *Cycler) PauseToggle() tea.Cmd {
	c.record("pauseToggle")
	if c.IsRunning() {
		c.Stop()
		return nil
	}
	return c.Start()
}

// Advance flips from the current panel to the next one, wrapping around.
// A flip still waiting for its swap is settled first so that at most one
// swap is ever outstanding.
func (c *Cycler) Advance() tea.Cmd {
	if len(c.panels) == 0 {
		return nil
	}
	if c.pending != nil {
		c.settle(c.pending)
	}

	from := c.current
	to := (from + 1) % len(c.panels)
	d := TransitionDuration(c.panels[to], 0)
	c.record("next", zap.Int("from", from), zap.Int("to", to), zap.Duration("duration", d))

	c.panels[from].SetRotation(RotationAway)
	c.panels[to].SetRotation(RotationIncoming)

	c.seq++
	c.pending = &flight{seq: c.seq, from: from, to: to}
	c.current = to

	id, seq := c.id, c.seq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return SwapMsg{ID: id, seq: seq}
	})
}

// Update handles the cycler's own messages and ignores everything else.
func (c *Cycler) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.ID != c.id || msg.tag != c.tag || !c.running {
			return nil
		}
		return tea.Batch(c.Advance(), c.tick())
	case SwapMsg:
		if msg.ID != c.id || c.pending == nil || msg.seq != c.pending.seq {
			return nil
		}
		c.settle(c.pending)
		return nil
	case PauseToggleMsg:
		if msg.ID != c.id || c.closed {
			return nil
		}
		return c.PauseToggle()
	case AdvanceMsg:
		if msg.ID != c.id || c.closed {
			return nil
		}
		return c.Advance()
	}
	return nil
}

// Close stops the timer, drops any outstanding swap and removes key bindings.
// The panels keep whatever transform they currently have.
func (c *Cycler) Close() {
	if c.closed {
		return
	}
	c.Stop()
	c.record("close")
	c.closed = true
	c.pending = nil
	for _, unbind := range c.unbind {
		unbind()
	}
	c.unbind = nil
}

func (c *Cycler) settle(f *flight) {
	c.record("swap", zap.Int("from", f.from), zap.Int("to", f.to))
	c.panels[f.from].SetVisible(false)
	c.panels[f.to].SetVisible(true)
	c.panels[f.to].SetRotation(RotationFlat)
	if c.pending == f {
		c.pending = nil
	}
}

func (c *Cycler) tick() tea.Cmd {
	id, tag := c.id, c.tag
	return tea.Tick(c.interval, func(time.Time) tea.Msg {
		return TickMsg{ID: id, tag: tag}
	})
}

func (c *Cycler) record(op string, fields ...zap.Field) {
	c.log.Debug("flip - "+op, append(fields, zap.Int("cycler", c.id), zap.Int("index", c.current))...)

	_, span := c.tracer.Start(context.Background(), "flip."+op,
		oteltrace.WithAttributes(
			attribute.Int("flip.cycler", c.id),
			attribute.Int("flip.index", c.current),
			attribute.Bool("flip.running", c.running),
		))
	span.End()
}
