package deck

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"flipdeck/internal/flip"
)

const sample = `
title = "demo"
interval = "1500ms"
autostart = false
keyboard = true

[[panel]]
title = "one"
body = "first"
[panel.style]
transition-duration = "0.3s"

[[panel]]
title = "two"
body = """
second
card"""
`

func TestDecode(t *testing.T) {
	d, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if d.Title != "demo" {
		t.Errorf("Title = %q", d.Title)
	}
	if d.IntervalOrDefault() != 1500*time.Millisecond {
		t.Errorf("Interval = %v", d.IntervalOrDefault())
	}
	if d.AutoStarts() {
		t.Error("autostart = false should be honored")
	}
	if !d.Keyboard {
		t.Error("expected keyboard enabled")
	}
	if len(d.Panels) != 2 {
		t.Fatalf("len(Panels) = %d, want 2", len(d.Panels))
	}
	if got := d.Panels[0].Style["transition-duration"]; got != "0.3s" {
		t.Errorf("panel style = %q", got)
	}
	if d.Panels[1].Body != "second\ncard" {
		t.Errorf("Body = %q", d.Panels[1].Body)
	}
}

func TestDecode_Defaults(t *testing.T) {
	d, err := Decode(strings.NewReader("[[panel]]\ntitle = \"only\"\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !d.AutoStarts() {
		t.Error("autostart should default to true")
	}
	if d.Keyboard {
		t.Error("keyboard should default to false")
	}
	if d.IntervalOrDefault() != flip.DefaultInterval {
		t.Errorf("interval = %v, want %v", d.IntervalOrDefault(), flip.DefaultInterval)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		is    error
	}{
		{"empty", "", ErrEmptyDeck},
		{"no panels", "interval = \"1s\"\n", ErrEmptyDeck},
		{"bad interval", "interval = \"soon\"\n[[panel]]\ntitle = \"x\"\n", nil},
		{"negative interval", "interval = \"-1s\"\n[[panel]]\ntitle = \"x\"\n", nil},
		{"not toml", "[[panel", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("err = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestSaveLoad_Example(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "deck.toml")
	if err := Save(path, Example()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Example()
	if len(d.Panels) != len(want.Panels) {
		t.Fatalf("len(Panels) = %d, want %d", len(d.Panels), len(want.Panels))
	}
	if d.Interval.Duration != want.Interval.Duration {
		t.Errorf("Interval = %v, want %v", d.Interval, want.Interval)
	}
	if d.Panels[2].Body != want.Panels[2].Body {
		t.Errorf("Body = %q, want %q", d.Panels[2].Body, want.Panels[2].Body)
	}
}

func TestCards(t *testing.T) {
	d := Example()
	cards := d.Cards()
	if len(cards) != len(d.Panels) {
		t.Fatalf("len(cards) = %d", len(cards))
	}
	for i, c := range cards {
		if c.Visible() != (i == 0) {
			t.Errorf("card %d visible = %v", i, c.Visible())
		}
		if c.Title != d.Panels[i].Title {
			t.Errorf("card %d title = %q", i, c.Title)
		}
	}
	if cards[2].Duration() != 500*time.Millisecond {
		t.Errorf("card 2 duration = %v", cards[2].Duration())
	}
}
