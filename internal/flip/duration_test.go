package flip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTransitionDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		index int
		want  int
	}{
		{"seconds", "0.3s", 0, 300},
		{"milliseconds", "500ms", 0, 500},
		{"list first", "0.2s, 0.1s", 0, 200},
		{"list second", "0.2s, 0.1s", 1, 100},
		{"list past end", "0.2s, 0.1s", 2, 0},
		{"negative index", "0.2s", -1, 0},
		{"empty", "", 0, 0},
		{"bare zero", "0", 0, 0},
		{"bare number is seconds", "2", 0, 2000},
		{"trailing semicolon", "1.5s;", 0, 1500},
		{"fractional ms", "12.6ms", 0, 13},
		{"whitespace", "  0.25s  ", 0, 250},
		{"garbage", "fast", 0, 0},
		{"unit only", "ms", 0, 0},
		{"negative", "-1s", 0, 0},
		{"mixed list", "100ms, 2s", 1, 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTransitionDuration(tt.value, tt.index))
		})
	}
}

type styleMap map[string]string

func (s styleMap) ComputedStyle(prop string) string { return s[prop] }

func TestTransitionDuration_PropertyPriority(t *testing.T) {
	tests := []struct {
		name  string
		style styleMap
		want  time.Duration
	}{
		{"unset", styleMap{}, 0},
		{"standard", styleMap{"transition-duration": "0.3s"}, 300 * time.Millisecond},
		{"webkit only", styleMap{"-webkit-transition-duration": "200ms"}, 200 * time.Millisecond},
		{"moz only", styleMap{"-moz-transition-duration": "1s"}, time.Second},
		{
			"standard wins",
			styleMap{"transition-duration": "100ms", "-webkit-transition-duration": "900ms"},
			100 * time.Millisecond,
		},
		{
			"blank standard falls through",
			styleMap{"transition-duration": " ", "-webkit-transition-duration": "400ms"},
			400 * time.Millisecond,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TransitionDuration(tt.style, 0))
		})
	}
}

func TestTransitionDuration_NilStyler(t *testing.T) {
	assert.Equal(t, time.Duration(0), TransitionDuration(nil, 0))
}
