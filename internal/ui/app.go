package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"flipdeck/internal/card"
	"flipdeck/internal/deck"
	"flipdeck/internal/flip"
	"flipdeck/internal/keybind"
	"flipdeck/internal/ui/textutil"
)

// FrameInterval is the redraw period while a card is rotating.
const FrameInterval = time.Second / 30

// Default terminal size until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Card box limits.
const (
	maxCardWidth  = 64
	maxCardHeight = 14
)

// frameMsg drives redraws while a rotation animates.
type frameMsg struct{}

// ToggleHelpMsg switches between short and full help.
type ToggleHelpMsg struct{}

// AppModel is the root model: one deck of cards driven by a flip.Cycler.
type AppModel struct {
	Title      string
	Cycler     *flip.Cycler
	Cards      []*card.Card
	Registry   *keybind.Registry
	KeyHandler *keybind.Handler
	Help       help.Model

	Width, Height int

	framing bool
	now     func() time.Time
	log     *zap.Logger
}

type appConfig struct {
	log    *zap.Logger
	tracer oteltrace.Tracer
	now    func() time.Time
}

// Option configures an AppModel.
type Option func(*appConfig)

// WithLogger passes log to the cycler and the app.
func WithLogger(log *zap.Logger) Option {
	return func(c *appConfig) { c.log = log }
}

// WithTracer passes t to the cycler.
func WithTracer(t oteltrace.Tracer) Option {
	return func(c *appConfig) { c.tracer = t }
}

// WithClock replaces time.Now for cards and rendering.
func WithClock(now func() time.Time) Option {
	return func(c *appConfig) { c.now = now }
}

// NewAppModel creates the root application model for d.
// d must have at least one panel.
func NewAppModel(d *deck.Deck, opts ...Option) *AppModel {
	cfg := appConfig{log: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = zap.NewNop()
	}

	reg := keybind.NewRegistry()
	reg.BindWithDesc("q", tea.Quit, "quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "quit")
	reg.BindWithDesc("?", func() tea.Msg { return ToggleHelpMsg{} }, "help")

	cards := d.Cards(card.WithClock(cfg.now))
	panels := make([]flip.Panel, len(cards))
	for i, c := range cards {
		panels[i] = c
	}

	flipOpts := []flip.Option{
		flip.WithInterval(d.IntervalOrDefault()),
		flip.WithAutoStart(d.AutoStarts()),
		flip.WithLogger(cfg.log),
		flip.WithTracer(cfg.tracer),
	}
	if d.Keyboard {
		flipOpts = append(flipOpts, flip.WithKeyboard(reg))
	}

	title := d.Title
	if title == "" {
		title = "flipdeck"
	}

	return &AppModel{
		Title:      title,
		Cycler:     flip.New(panels, flipOpts...),
		Cards:      cards,
		Registry:   reg,
		KeyHandler: keybind.NewHandler(reg),
		Help:       help.New(),
		Width:      defaultWidth,
		Height:     defaultHeight,
		now:        cfg.now,
		log:        cfg.log,
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Close releases the cycler's timer and key bindings.
func (m *AppModel) Close() {
	m.Cycler.Close()
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.Cycler.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.Width, a.Height = msg.Width, msg.Height
		a.Help.Width = msg.Width
		a.log.Debug("resize", zap.Int("width", msg.Width), zap.Int("height", msg.Height))
		return a, nil
	case tea.KeyMsg:
		// Bound keys never reach the deck.
		if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
			return a, cmd
		}
		return a, nil
	case ToggleHelpMsg:
		a.Help.ShowAll = !a.Help.ShowAll
		return a, nil
	case frameMsg:
		a.framing = false
		return a, a.frames()
	}

	cmd := a.Cycler.Update(msg)
	return a, tea.Batch(cmd, a.frames())
}

// frames starts the redraw loop if a card is rotating and no loop is running.
func (a *appModelAdapter) frames() tea.Cmd {
	if a.framing || !a.animating() {
		return nil
	}
	a.framing = true
	return tea.Tick(FrameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (a *AppModel) animating() bool {
	now := a.now()
	for _, c := range a.Cards {
		if c.Animating(now) {
			return true
		}
	}
	return false
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	header := a.renderHeader()
	footer := a.Help.View(keybind.NewKeyMap(a.Registry))

	areaH := a.Height - lipgloss.Height(header) - lipgloss.Height(footer)
	if areaH < 1 {
		areaH = 1
	}
	body := lipgloss.Place(a.Width, areaH, lipgloss.Center, lipgloss.Center, a.renderCards(areaH))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (a *AppModel) renderHeader() string {
	status := Styles.Paused.Render("⏸ paused")
	if a.Cycler.IsRunning() {
		status = Styles.Running.Render("▶ " + a.Cycler.Interval().String())
	}
	pos := fmt.Sprintf("%d/%d", a.Cycler.Index()+1, a.Cycler.Len())
	right := Styles.Position.Render(pos) + "  " + status

	titleW := a.Width - lipgloss.Width(right) - 1
	if titleW < 0 {
		titleW = 0
	}
	title := Styles.Title.Render(textutil.Truncate(a.Title, titleW))
	gap := a.Width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + right
}

// renderCards draws every visible card. Normally exactly one is visible; during
// the swap of an overlapping flip two can be.
func (a *AppModel) renderCards(areaH int) string {
	w := a.Width - 4
	if w > maxCardWidth {
		w = maxCardWidth
	}
	h := areaH
	if h > maxCardHeight {
		h = maxCardHeight
	}

	now := a.now()
	var parts []string
	for _, c := range a.Cards {
		if out := c.Render(w, h, now); out != "" {
			parts = append(parts, out)
		}
	}
	if len(parts) == 0 {
		return Styles.Empty.Render("(nothing to show)")
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}
