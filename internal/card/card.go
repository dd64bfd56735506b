// Package card renders flip panels in the terminal.
//
// A Card stands in for a styled page element: it has a computed style map,
// a visibility flag and a rotateX angle. Rotation changes animate linearly
// over the card's transition duration; the rendered box height shrinks with
// |cos(angle)| so a card at 90 degrees collapses to a single rule.
package card

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"flipdeck/internal/flip"
	"flipdeck/internal/ui/textutil"
)

var _ flip.Panel = (*Card)(nil)

// Card is a terminal panel.
type Card struct {
	Title string
	Body  string

	style   map[string]string
	visible bool

	from      float64 // angle when the last rotation change happened
	to        int
	changedAt time.Time

	now func() time.Time
}

// Option configures a Card.
type Option func(*Card)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Card) { c.now = now }
}

// WithVisible sets the initial visibility. Cards start hidden.
func WithVisible(v bool) Option {
	return func(c *Card) { c.visible = v }
}

// New creates a hidden, flat card. style is copied.
func New(title, body string, style map[string]string, opts ...Option) *Card {
	c := &Card{
		Title: title,
		Body:  body,
		style: make(map[string]string, len(style)),
		now:   time.Now,
	}
	for k, v := range style {
		c.style[strings.ToLower(strings.TrimSpace(k))] = v
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ComputedStyle implements flip.Styler.
func (c *Card) ComputedStyle(prop string) string {
	return c.style[strings.ToLower(prop)]
}

// SetStyle sets a style property; an empty value removes it.
func (c *Card) SetStyle(prop, value string) {
	prop = strings.ToLower(strings.TrimSpace(prop))
	if value == "" {
		delete(c.style, prop)
		return
	}
	c.style[prop] = value
}

// SetVisible implements flip.Panel.
func (c *Card) SetVisible(v bool) { c.visible = v }

// Visible reports whether the card is shown.
func (c *Card) Visible() bool { return c.visible }

// SetRotation implements flip.Panel. The card animates from its current
// angle towards degrees over its transition duration.
func (c *Card) SetRotation(degrees int) {
	now := c.now()
	c.from = c.Angle(now)
	c.to = degrees
	c.changedAt = now
}

// Rotation returns the target angle.
func (c *Card) Rotation() int { return c.to }

// Duration returns the card's transition duration.
func (c *Card) Duration() time.Duration {
	return flip.TransitionDuration(c, 0)
}

// Angle returns the interpolated angle at t.
func (c *Card) Angle(t time.Time) float64 {
	p := c.progress(t)
	return c.from + (float64(c.to)-c.from)*p
}

// Animating reports whether a rotation is still in progress at t.
func (c *Card) Animating(t time.Time) bool {
	return c.progress(t) < 1
}

func (c *Card) progress(t time.Time) float64 {
	d := c.Duration()
	if d <= 0 || c.changedAt.IsZero() {
		return 1
	}
	elapsed := t.Sub(c.changedAt)
	if elapsed >= d {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(d)
}

// Scale returns the vertical scale factor at t, in [0, 1].
func (c *Card) Scale(t time.Time) float64 {
	return math.Abs(math.Cos(c.Angle(t) * math.Pi / 180))
}

// Render draws the card into a width x height box as it looks at t.
// Hidden cards render as the empty string.
func (c *Card) Render(width, height int, t time.Time) string {
	if !c.visible || width <= 0 || height <= 0 {
		return ""
	}

	rows := int(math.Round(float64(height) * c.Scale(t)))
	if rows < 3 {
		return Styles.Edge.Render(strings.Repeat("─", width))
	}

	innerW := width - Styles.Box.GetHorizontalFrameSize()
	innerH := rows - Styles.Box.GetVerticalFrameSize()
	if innerW < 1 || innerH < 1 {
		return Styles.Edge.Render(strings.Repeat("─", width))
	}

	lines := make([]string, 0, innerH)
	if c.Title != "" {
		lines = append(lines, Styles.Title.Render(textutil.Center(c.Title, innerW)))
	}
	for _, l := range strings.Split(c.Body, "\n") {
		lines = append(lines, Styles.Body.Render(textutil.Center(l, innerW)))
	}
	lines = fit(lines, innerH)

	return Styles.Box.
		Width(innerW + Styles.Box.GetHorizontalPadding()).
		Height(innerH).
		Render(strings.Join(lines, "\n"))
}

// fit keeps the vertical middle of lines when they overflow h, and pads
// evenly above and below when they don't.
func fit(lines []string, h int) []string {
	if len(lines) > h {
		start := (len(lines) - h) / 2
		return lines[start : start+h]
	}
	top := (h - len(lines)) / 2
	out := make([]string, 0, h)
	for i := 0; i < top; i++ {
		out = append(out, "")
	}
	out = append(out, lines...)
	for len(out) < h {
		out = append(out, "")
	}
	return out
}

// Styles used to draw cards.
var Styles = struct {
	Box   lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Edge  lipgloss.Style
}{
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("205")).
		Padding(0, 1),
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")),
	Body: lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")),
	Edge: lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")),
}
