package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	m, cmd := New().Show("Saved order_shipped", StyleSuccess, time.Millisecond)

	require.NotNil(t, cmd)
	assert.True(t, m.Visible())
	assert.Equal(t, "Saved order_shipped", m.Message())

	view := m.View()
	assert.Contains(t, view, "✓ Saved order_shipped")
	assert.Contains(t, view, "╭")
}

func TestView_Styles(t *testing.T) {
	tests := []struct {
		style  Style
		prefix string
	}{
		{StyleSuccess, "✓ "},
		{StyleError, "✗ "},
		{StyleInfo, "i "},
	}
	for _, tt := range tests {
		m, _ := New().Show("msg", tt.style, time.Second)
		assert.Contains(t, m.View(), tt.prefix+"msg")
	}
}

func TestDismiss(t *testing.T) {
	m, cmd := New().Show("Hello", StyleInfo, time.Millisecond)

	msg := cmd()
	dismiss, ok := msg.(DismissMsg)
	require.True(t, ok)

	m = m.Update(dismiss)
	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestDismiss_StaleIsIgnored(t *testing.T) {
	m, first := New().Show("First", StyleSuccess, time.Millisecond)
	m, _ = m.Show("Second", StyleError, time.Second)

	m = m.Update(first())
	assert.True(t, m.Visible())
	assert.Contains(t, m.View(), "Second")
	assert.NotContains(t, m.View(), "First")
}

func TestOverlay_HiddenReturnsBackground(t *testing.T) {
	bg := "line one\nline two"
	assert.Equal(t, bg, New().Overlay(bg, 20, 2))
}

func TestOverlay_PlacesBottomCenter(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 30)+"\n", 8), "\n")
	m, _ := New().Show("ok", StyleSuccess, time.Second)

	out := strings.Split(ansi.Strip(m.Overlay(bg, 30, 8)), "\n")
	require.Len(t, out, 8)

	// Toast is 3 rows tall and sits one row above the bottom.
	assert.Equal(t, strings.Repeat(".", 30), out[0])
	assert.Contains(t, out[5], "✓ ok")
	assert.Equal(t, strings.Repeat(".", 30), out[7])
	for _, line := range out {
		assert.Equal(t, 30, ansi.StringWidth(line))
	}
}
