// Package window tracks the contiguous range of list indices that are
// materialized as live cells and adjusts it incrementally as the content
// scrolls.
package window

import "log/slog"

// Threshold is the smallest scroll delta that moves the window. Smaller
// deltas accumulate until they cross it.
const Threshold = 1.0

// Cells is the indexed cell store the tracker drives.
type Cells interface {
	// Len returns the number of indices.
	Len() int

	// Lead returns the scroll-space offset of the leading edge of cell i.
	// Leads never decrease as i grows.
	Lead(i int) float64

	// Attach materializes cell i.
	Attach(i int)

	// Detach releases the live cell at i.
	Detach(i int)
}

// Band is the visible band along the primary axis.
type Band struct {
	// Cell is the cell extent along the primary axis.
	Cell float64
	// View is the viewport extent along the primary axis.
	View float64
}

// Before reports whether a cell whose leading edge is at lead lies more than
// one cell ahead of the viewport's leading edge at scroll offset offset.
func (b Band) Before(lead, offset float64) bool {
	return lead-offset < -b.Cell
}

// After reports whether a cell whose leading edge is at lead starts beyond
// the viewport's trailing edge.
func (b Band) After(lead, offset float64) bool {
	return lead-offset > b.View
}

// OutOfRange reports whether the cell is outside the visible band plus the
// one-cell buffer on either side.
func (b Band) OutOfRange(lead, offset float64) bool {
	return b.Before(lead, offset) || b.After(lead, offset)
}

// Direction is the direction of a window move.
type Direction int8

// Possible Direction values.
const (
	None Direction = iota
	// Advance reveals later indices.
	Advance
	// Retreat reveals earlier indices.
	Retreat
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Advance:
		return "advance"
	case Retreat:
		return "retreat"
	default:
		return "none"
	}
}

// Tracker owns the window [min, max]. An empty window is min = max = -1.
// Every index inside the window is attached, every index outside it is not.
type Tracker struct {
	min, max int
	last     float64
}

// New returns a tracker with an empty window.
func New() *Tracker {
	return &Tracker{min: -1, max: -1}
}

// Range returns the window bounds.
func (t *Tracker) Range() (minIdx, maxIdx int) {
	return t.min, t.max
}

// Empty reports whether no index is materialized.
func (t *Tracker) Empty() bool {
	return t.min < 0 || t.max < t.min
}

// Len returns the number of materialized indices.
func (t *Tracker) Len() int {
	if t.Empty() {
		return 0
	}
	return t.max - t.min + 1
}

// Contains reports whether i is inside the window.
func (t *Tracker) Contains(i int) bool {
	return !t.Empty() && i >= t.min && i <= t.max
}

// Last returns the scroll offset the window was last reconciled against.
func (t *Tracker) Last() float64 {
	return t.last
}

// Reset empties the window without detaching anything and records offset as
// the reference point for the next scroll. Callers must have released the
// cells already.
func (t *Tracker) Reset(offset float64) {
	t.min, t.max = -1, -1
	t.last = offset
}

// Fill materializes every in-range index at offset into an empty window,
// starting from the first index that is not ahead of the viewport.
func (t *Tracker) Fill(c Cells, offset float64, b Band) {
	n := c.Len()
	i := 0
	for i < n && b.Before(c.Lead(i), offset) {
		i++
	}
	for ; i < n && !b.OutOfRange(c.Lead(i), offset); i++ {
		if t.Empty() {
			t.min = i
		}
		t.max = i
		c.Attach(i)
	}
	t.last = offset
}

// Scroll moves the window toward offset. Deltas below [Threshold] are
// ignored but not discarded: the reference offset stays put, so slow
// scrolling accumulates until it crosses the threshold instead of drifting.
func (t *Tracker) Scroll(c Cells, offset float64, b Band) Direction {
	if c.Len() == 0 {
		return None
	}
	delta := offset - t.last
	if delta < Threshold && -delta < Threshold {
		return None
	}
	return t.Sync(c, offset, b)
}

// Sync reconciles the window with offset regardless of the delta size.
func (t *Tracker) Sync(c Cells, offset float64, b Band) Direction {
	dir := None
	switch {
	case t.Empty():
		t.Fill(c, offset, b)
		return None
	case offset > t.last:
		dir = Advance
		t.advance(c, offset, b)
	case offset < t.last:
		dir = Retreat
		t.retreat(c, offset, b)
	}
	t.last = offset
	if dir != None {
		slog.Debug("Window moved", "direction", dir, "min", t.min, "max", t.max, "offset", offset)
	}
	return dir
}

// advance evicts trailing cells from min and acquires leading cells past
// max, one index at a time.
func (t *Tracker) advance(c Cells, offset float64, b Band) {
	n := c.Len()
	for t.min <= t.max && b.OutOfRange(c.Lead(t.min), offset) {
		if t.max >= n-1 {
			break
		}
		c.Detach(t.min)
		t.min++
		t.max++
		c.Attach(t.max)
	}
	for t.max < n-1 && !b.OutOfRange(c.Lead(t.max+1), offset) {
		t.max++
		c.Attach(t.max)
	}
}

// retreat mirrors advance: it evicts from max and acquires before min.
func (t *Tracker) retreat(c Cells, offset float64, b Band) {
	for t.min <= t.max && b.OutOfRange(c.Lead(t.max), offset) {
		if t.min <= 0 {
			break
		}
		c.Detach(t.max)
		t.max--
		t.min--
		c.Attach(t.min)
	}
	for t.min > 0 && !b.OutOfRange(c.Lead(t.min-1), offset) {
		t.min--
		c.Attach(t.min)
	}
}

// Grow handles indices appended from index from onward without moving the
// content. Each appended index in range first evicts now out-of-range cells
// from the leading edge, then attaches up to it.
func (t *Tracker) Grow(c Cells, from int, offset float64, b Band) {
	for i := from; i < c.Len(); i++ {
		lead := c.Lead(i)
		if b.After(lead, offset) {
			break
		}
		if b.Before(lead, offset) {
			continue
		}
		if t.Empty() {
			t.min, t.max = i, i-1
		}
		for t.min <= t.max && b.OutOfRange(c.Lead(t.min), offset) {
			c.Detach(t.min)
			t.min++
		}
		if t.min > t.max {
			t.min, t.max = i, i-1
		}
		for t.max < i {
			t.max++
			c.Attach(t.max)
		}
	}
}

// Shrink detaches every window index at or beyond n. The caller truncates
// its cell store afterwards and is expected to [Tracker.Sync] once the
// scroll offset has been clamped.
func (t *Tracker) Shrink(c Cells, n int) {
	if t.Empty() {
		return
	}
	for t.max >= n && t.max >= t.min {
		c.Detach(t.max)
		t.max--
	}
	if t.max < t.min {
		t.min, t.max = -1, -1
	}
}
