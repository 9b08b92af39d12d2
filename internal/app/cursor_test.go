package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorWrapsAround(t *testing.T) {
	for n := 1; n <= 5; n++ {
		for start := 0; start < n; start++ {
			c := Cursor{}
			c.Select(start, n)

			for i := 0; i < n; i++ {
				c.Next(n)
			}
			idx, ok := c.Index()
			assert.True(t, ok)
			assert.Equal(t, start, idx, "next x%d from %d", n, start)

			for i := 0; i < n; i++ {
				c.Prev(n)
			}
			idx, _ = c.Index()
			assert.Equal(t, start, idx, "prev x%d from %d", n, start)
		}
	}
}

func TestCursorEmptyList(t *testing.T) {
	c := NewCursor(0)
	c.Next(0)
	_, ok := c.Index()
	assert.False(t, ok)

	c.Prev(0)
	_, ok = c.Index()
	assert.False(t, ok)

	c.Clamp(0)
	_, ok = c.Index()
	assert.False(t, ok)
}

func TestCursorEdges(t *testing.T) {
	c := NewCursor(3)
	c.Prev(3)
	idx, _ := c.Index()
	assert.Equal(t, 2, idx, "previous from 0 wraps to last")

	c.Next(3)
	idx, _ = c.Index()
	assert.Equal(t, 0, idx, "next from last wraps to 0")

	unset := Cursor{}
	unset.Next(3)
	idx, ok := unset.Index()
	assert.True(t, ok)
	assert.Equal(t, 0, idx, "next with no selection starts at 0")
}

func TestCursorClamp(t *testing.T) {
	tests := []struct {
		name  string
		start int
		set   bool
		n     int
		want  int
		ok    bool
	}{
		{"within range", 1, true, 3, 1, true},
		{"past end", 4, true, 2, 1, true},
		{"unset treated as zero", 0, false, 3, 0, true},
		{"emptied", 2, true, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Cursor{index: tt.start, set: tt.set}
			c.Clamp(tt.n)
			idx, ok := c.Index()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, idx)
			}
		})
	}
}

func TestCursorSelectOutOfRange(t *testing.T) {
	c := NewCursor(2)
	assert.False(t, c.Select(5, 2))
	assert.False(t, c.Select(-1, 2))
	idx, _ := c.Index()
	assert.Equal(t, 0, idx)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "NAVIGATE", Normal.String())
	assert.Equal(t, "SELECT MOVE DEST", SelectingMoveDestination.String())
	assert.Equal(t, "SETTINGS", Settings.String())
	assert.Equal(t, "UNKNOWN", Mode(42).String())
}
