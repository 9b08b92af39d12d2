package app

// Cursor is a wrap-around selection over a list of n items. The zero value
// selects nothing.
type Cursor struct {
	index int
	set   bool
}

// NewCursor selects the first item, or nothing when the list is empty
func NewCursor(n int) Cursor {
	if n == 0 {
		return Cursor{}
	}
	return Cursor{index: 0, set: true}
}

// Index returns the selected position and whether anything is selected
func (c Cursor) Index() (int, bool) {
	return c.index, c.set
}

// Next moves forward, wrapping from the last item (or no selection) to 0
func (c *Cursor) Next(n int) {
	if n == 0 {
		*c = Cursor{}
		return
	}
	if !c.set || c.index >= n-1 {
		*c = Cursor{index: 0, set: true}
		return
	}
	c.index++
}

// Prev moves backward, wrapping from 0 (or no selection) to the last item
func (c *Cursor) Prev(n int) {
	if n == 0 {
		*c = Cursor{}
		return
	}
	if !c.set || c.index == 0 {
		*c = Cursor{index: n - 1, set: true}
		return
	}
	c.index--
}

// Clamp repairs the cursor after the list changed to n items:
// min(old, n-1), with no selection treated as 0.
func (c *Cursor) Clamp(n int) {
	if n == 0 {
		*c = Cursor{}
		return
	}
	idx := c.index
	if !c.set {
		idx = 0
	}
	*c = Cursor{index: min(idx, n-1), set: true}
}

// Select jumps to i when it is within a list of n items
func (c *Cursor) Select(i, n int) bool {
	if i < 0 || i >= n {
		return false
	}
	*c = Cursor{index: i, set: true}
	return true
}
