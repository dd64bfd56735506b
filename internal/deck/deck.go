// Package deck loads and saves deck files: the panels a flipdeck cycles
// through plus the cycler settings, stored as TOML.
package deck

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"flipdeck/internal/card"
	"flipdeck/internal/flip"
)

// ErrEmptyDeck is returned when a deck has no panels.
var ErrEmptyDeck = errors.New("deck has no panels")

// Duration is a time.Duration written as a Go duration string ("2s", "1500ms").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Deck is the on-disk deck definition.
type Deck struct {
	Title     string   `toml:"title,omitempty"`
	Interval  Duration `toml:"interval"`
	AutoStart *bool    `toml:"autostart,omitempty"`
	Keyboard  bool     `toml:"keyboard"`
	Panels    []Panel  `toml:"panel"`
}

// Panel is one card in the deck.
type Panel struct {
	Title string            `toml:"title"`
	Body  string            `toml:"body"`
	Style map[string]string `toml:"style,omitempty"`
}

// AutoStarts reports whether the cycle starts on load. Defaults to true.
func (d *Deck) AutoStarts() bool {
	return d.AutoStart == nil || *d.AutoStart
}

// IntervalOrDefault returns the configured interval, or flip.DefaultInterval
// when unset.
func (d *Deck) IntervalOrDefault() time.Duration {
	if d.Interval.Duration == 0 {
		return flip.DefaultInterval
	}
	return d.Interval.Duration
}

// Validate checks the deck can drive a cycler.
func (d *Deck) Validate() error {
	if len(d.Panels) == 0 {
		return ErrEmptyDeck
	}
	if d.Interval.Duration < 0 {
		return fmt.Errorf("interval must be positive, got %s", d.Interval.Duration)
	}
	return nil
}

// Cards builds one card per panel. The first card is visible, the rest
// hidden.
func (d *Deck) Cards(opts ...card.Option) []*card.Card {
	cards := make([]*card.Card, len(d.Panels))
	for i, p := range d.Panels {
		cardOpts := append([]card.Option{card.WithVisible(i == 0)}, opts...)
		cards[i] = card.New(p.Title, p.Body, p.Style, cardOpts...)
	}
	return cards
}

// Decode reads a deck from r and validates it.
func Decode(r io.Reader) (*Deck, error) {
	var d Deck
	if _, err := toml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Load reads and validates the deck file at path.
func Load(path string) (*Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deck: %w", err)
	}
	defer f.Close()

	d, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Save writes d to path, creating parent dirs as needed.
func Save(path string, d *Deck) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(d)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// Example returns the deck shown when no file is given.
func Example() *Deck {
	style := func(d string) map[string]string {
		return map[string]string{"transition-duration": d}
	}
	return &Deck{
		Title:    "flipdeck",
		Interval: Duration{flip.DefaultInterval},
		Keyboard: true,
		Panels: []Panel{
			{
				Title: "flipdeck",
				Body:  "Cards flip over on a timer.\nEnter pauses, space flips by hand.",
				Style: style("0.3s"),
			},
			{
				Title: "Deck files",
				Body:  "Describe cards in TOML:\n[[panel]] title, body, [panel.style]",
				Style: style("0.3s"),
			},
			{
				Title: "Transitions",
				Body:  "transition-duration sets the flip speed.\n\"0.5s\", \"250ms\" and lists like \"0.2s, 0.1s\" all work.",
				Style: style("500ms"),
			},
		},
	}
}
