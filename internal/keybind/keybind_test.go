package keybind

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRegistry_BindLookup(t *testing.T) {
	reg := NewRegistry()
	reg.Bind("q", tea.Quit)
	reg.Bind("space", tea.Quit)
	reg.Bind("j", nil)

	if reg.Lookup("q") == nil {
		t.Error("expected q to be bound")
	}
	if reg.Lookup(" ") == nil {
		t.Error("expected space to be bound under \" \"")
	}
	if reg.Lookup("SPC") == nil {
		t.Error("expected space to be bound under SPC")
	}
	if reg.Lookup("j") != nil {
		t.Error("expected nil command for j")
	}
	if reg.Lookup("unknown") != nil {
		t.Error("expected unknown to be unbound")
	}
}

func TestRegistry_UnbindFuncOnlyRemovesOwnBinding(t *testing.T) {
	reg := NewRegistry()
	first := reg.Bind("enter", tea.Quit)

	var second bool
	reg.Bind("enter", func() tea.Msg {
		second = true
		return nil
	})

	first()
	cmd := reg.Lookup("enter")
	if cmd == nil {
		t.Fatal("stale disposer removed a newer binding")
	}
	cmd()
	if !second {
		t.Error("expected the second binding to remain")
	}
}

func TestRegistry_UnbindFunc(t *testing.T) {
	reg := NewRegistry()
	unbind := reg.BindWithDesc(" ", tea.Quit, "next")
	if reg.Len() != 1 {
		t.Fatalf("Len = %d, want 1", reg.Len())
	}
	unbind()
	unbind()
	if reg.Len() != 0 {
		t.Errorf("Len = %d after unbind, want 0", reg.Len())
	}
	if _, ok := reg.Hints()["SPC"]; ok {
		t.Error("hint should be gone after unbind")
	}
}

func TestRegistry_Hints(t *testing.T) {
	reg := NewRegistry()
	reg.BindWithDesc("enter", tea.Quit, "pause")
	reg.Bind("x", tea.Quit)
	reg.Bind("y", nil)

	hints := reg.Hints()
	want := map[string]string{"enter": "pause", "x": "x"}
	if len(hints) != len(want) {
		t.Fatalf("hints = %v, want %v", hints, want)
	}
	for k, v := range want {
		if hints[k] != v {
			t.Errorf("hints[%q] = %q, want %q", k, hints[k], v)
		}
	}
}

func TestHandler_BoundKeyConsumed(t *testing.T) {
	reg := NewRegistry()
	var executed bool
	reg.Bind(" ", func() tea.Msg {
		executed = true
		return nil
	})
	h := NewHandler(reg)

	consumed, cmd := h.Handle(keyMsg(" "))
	if !consumed || cmd == nil {
		t.Fatalf("space: consumed=%v cmd=%v", consumed, cmd)
	}
	cmd()
	if !executed {
		t.Error("expected command to execute")
	}
}

func TestHandler_UnboundFallsThrough(t *testing.T) {
	reg := NewRegistry()
	reg.Bind("q", tea.Quit)
	h := NewHandler(reg)

	consumed, _ := h.Handle(keyMsg("j"))
	if consumed {
		t.Error("unbound j should not be consumed")
	}
}

func TestHandler_Nil(t *testing.T) {
	var h *Handler
	if consumed, cmd := h.Handle(keyMsg("q")); consumed || cmd != nil {
		t.Error("nil handler should pass keys through")
	}
}

func TestKeyMap_ShortHelpSorted(t *testing.T) {
	reg := NewRegistry()
	reg.BindWithDesc("q", tea.Quit, "quit")
	reg.BindWithDesc("enter", tea.Quit, "pause")
	reg.BindWithDesc(" ", tea.Quit, "next")

	km := NewKeyMap(reg)
	short := km.ShortHelp()
	if len(short) != 3 {
		t.Fatalf("ShortHelp len = %d, want 3", len(short))
	}
	var got []string
	for _, b := range short {
		got = append(got, b.Help().Key)
	}
	want := []string{"space", "⏎", "q"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ShortHelp keys = %v, want %v", got, want)
			break
		}
	}
	if full := km.FullHelp(); len(full) != 1 || len(full[0]) != 3 {
		t.Errorf("FullHelp = %v", full)
	}
}

func TestKeyMap_Empty(t *testing.T) {
	km := NewKeyMap(NewRegistry())
	if km.ShortHelp() != nil || km.FullHelp() != nil {
		t.Error("empty registry should produce no help")
	}
}

// keyMsg creates a tea.KeyMsg for testing.
// KeySpace.String() returns " ", KeyEnter returns "enter".
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
