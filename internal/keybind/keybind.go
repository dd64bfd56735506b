// Package keybind maps single-key presses to Bubble Tea commands.
//
// Components register bindings on a shared Registry and keep the returned
// disposer; the app routes every tea.KeyMsg through a Handler before any view
// sees it. A consumed key never reaches the views, which is how a binding
// suppresses a key's default action.
package keybind

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Registry maps key strings to commands.
// Keys use tea.KeyMsg.String() notation, except space which is stored as "SPC".
type Registry struct {
	bindings     map[string]*binding
	descriptions map[string]string
}

type binding struct {
	cmd tea.Cmd
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings:     make(map[string]*binding),
		descriptions: make(map[string]string),
	}
}

// Bind registers a key to a command and returns a function that removes it.
// Overwrites any existing binding for the key.
func (r *Registry) Bind(k string, cmd tea.Cmd) (unbind func()) {
	return r.BindWithDesc(k, cmd, "")
}

// BindWithDesc registers a key with a description for the help view.
// The returned function removes the binding only while it is still the one
// registered for k, so a later Bind of the same key survives it.
func (r *Registry) BindWithDesc(k string, cmd tea.Cmd, desc string) (unbind func()) {
	n := normalizeKey(k)
	b := &binding{cmd: cmd}
	r.bindings[n] = b
	if desc != "" {
		r.descriptions[n] = desc
	} else {
		delete(r.descriptions, n)
	}
	return func() {
		if r.bindings[n] == b {
			delete(r.bindings, n)
			delete(r.descriptions, n)
		}
	}
}

// Unbind removes whatever is bound to k.
func (r *Registry) Unbind(k string) {
	n := normalizeKey(k)
	delete(r.bindings, n)
	delete(r.descriptions, n)
}

// Lookup returns the command for a key, or nil if not bound.
func (r *Registry) Lookup(k string) tea.Cmd {
	b, ok := r.bindings[normalizeKey(k)]
	if !ok {
		return nil
	}
	return b.cmd
}

// Len returns the number of bound keys.
func (r *Registry) Len() int {
	return len(r.bindings)
}

// Hints returns all bound keys with descriptions for display.
// Values are descriptions, or the key itself if none was set.
func (r *Registry) Hints() map[string]string {
	out := make(map[string]string)
	for k, b := range r.bindings {
		if b.cmd == nil {
			continue
		}
		if d, ok := r.descriptions[k]; ok && d != "" {
			out[k] = d
		} else {
			out[k] = k
		}
	}
	return out
}

// normalizeKey converts tea key strings to our canonical format.
// "space" and " " -> "SPC"; everything else is unchanged.
func normalizeKey(k string) string {
	if k == " " || k == "space" {
		return "SPC"
	}
	return strings.TrimSpace(k)
}

// Handler dispatches key messages to a Registry.
type Handler struct {
	Registry *Registry
}

// NewHandler creates a handler over reg.
func NewHandler(reg *Registry) *Handler {
	return &Handler{Registry: reg}
}

// Handle processes a KeyMsg. Returns (consumed, cmd).
// If consumed is true, the key was bound and should not be passed to views.
func (h *Handler) Handle(msg tea.KeyMsg) (consumed bool, cmd tea.Cmd) {
	if h == nil || h.Registry == nil {
		return false, nil
	}
	if c := h.Registry.Lookup(msg.String()); c != nil {
		return true, c
	}
	return false, nil
}

// KeyMap implements help.KeyMap for rendering the registry with bubbles/help.
type KeyMap struct {
	registry *Registry
}

// NewKeyMap creates a KeyMap for the given registry.
func NewKeyMap(registry *Registry) help.KeyMap {
	return &KeyMap{registry: registry}
}

// ShortHelp returns one binding per registered key, sorted by key.
func (km *KeyMap) ShortHelp() []key.Binding {
	if km.registry == nil {
		return nil
	}
	hints := km.registry.Hints()
	if len(hints) == 0 {
		return nil
	}

	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bindings := make([]key.Binding, 0, len(keys))
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(displayKey(k), hints[k]),
		))
	}
	return bindings
}

// FullHelp returns a single column with the same bindings as ShortHelp.
func (km *KeyMap) FullHelp() [][]key.Binding {
	short := km.ShortHelp()
	if len(short) == 0 {
		return nil
	}
	return [][]key.Binding{short}
}

func displayKey(k string) string {
	switch k {
	case "SPC":
		return "space"
	case "enter":
		return "⏎"
	}
	return k
}
