// Package layout maps linear list indices onto a uniform grid.
//
// Coordinates use a top-left pivot. For a vertical list the primary axis
// grows downward as Y decreases; for a horizontal list it grows rightward as
// X increases. Scroll-space ("lead") values are always non-negative along the
// primary axis so the window tracker can reason about them without caring
// about the axis.
package layout

import "math"

// Axis is the scroll axis of a list.
type Axis uint8

// Possible Axis values.
const (
	Vertical Axis = iota
	Horizontal
)

// String implements fmt.Stringer.
func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Vec is a 2D point or offset.
type Vec struct {
	X, Y float64
}

// Size is a 2D extent.
type Size struct {
	W, H float64
}

// Padding is the inset of the content surface.
type Padding struct {
	Left, Right, Top, Bottom float64
}

// Grid describes a uniform grid of cells.
type Grid struct {
	Axis Axis
	// Constraint is the number of rows (vertical) or columns (horizontal)
	// per line. Values below 1 are treated as 1.
	Constraint int
	Cell       Size
	Spacing    Vec
	Padding    Padding
}

func (g Grid) constraint() int {
	return max(1, g.Constraint)
}

// CellExtent returns the cell size along the primary axis.
func (g Grid) CellExtent() float64 {
	if g.Axis == Horizontal {
		return g.Cell.W
	}
	return g.Cell.H
}

// Stride returns the distance between consecutive lines along the primary
// axis.
func (g Grid) Stride() float64 {
	if g.Axis == Horizontal {
		return g.Cell.W + g.Spacing.X
	}
	return g.Cell.H + g.Spacing.Y
}

// Line returns the line (row for vertical, column for horizontal) that
// index i belongs to.
func (g Grid) Line(i int) int {
	return i / g.constraint()
}

// Lines returns the number of lines needed for n cells.
func (g Grid) Lines(n int) int {
	if n <= 0 {
		return 0
	}
	r := g.constraint()
	return (n + r - 1) / r
}

// bias is the padding folded into each axis.
func (g Grid) bias() Vec {
	return Vec{
		X: g.Padding.Left - g.Padding.Right,
		Y: g.Padding.Bottom - g.Padding.Top,
	}
}

// Position returns the content-space position of the cell at index i.
func (g Grid) Position(i int) Vec {
	r := g.constraint()
	primary := float64(g.Line(i)) * g.Stride()
	b := g.bias()
	if g.Axis == Horizontal {
		cross := float64(i%r) * (g.Cell.H + g.Spacing.Y)
		return Vec{X: primary + b.X, Y: -cross + b.Y}
	}
	cross := float64(i%r) * (g.Cell.W + g.Spacing.X)
	return Vec{X: cross + b.X, Y: -primary + b.Y}
}

// Lead converts a content-space position into its scroll-space offset along
// the primary axis.
func (g Grid) Lead(p Vec) float64 {
	if g.Axis == Horizontal {
		return p.X
	}
	return -p.Y
}

// ContentExtent returns the total content size along the primary axis for n
// cells. It never returns a negative value.
func (g Grid) ContentExtent(n int) float64 {
	var front, back, spacing float64
	if g.Axis == Horizontal {
		front, back, spacing = g.Padding.Left, g.Padding.Right, g.Spacing.X
	} else {
		front, back, spacing = g.Padding.Top, g.Padding.Bottom, g.Spacing.Y
	}
	extent := g.Stride()*float64(g.Lines(n)) + front + back - spacing
	return math.Max(0, extent)
}

// ContentSize returns the content surface size for n cells, keeping the
// given cross-axis extent.
func (g Grid) ContentSize(n int, cross float64) Size {
	if g.Axis == Horizontal {
		return Size{W: g.ContentExtent(n), H: cross}
	}
	return Size{W: cross, H: g.ContentExtent(n)}
}

// ScrollOffset extracts the scroll-space offset from a content offset.
func (g Grid) ScrollOffset(offset Vec) float64 {
	if g.Axis == Horizontal {
		return -offset.X
	}
	return offset.Y
}

// ContentOffset builds a content offset for the scroll-space value s,
// keeping the cross-axis component of prev.
func (g Grid) ContentOffset(s float64, prev Vec) Vec {
	if g.Axis == Horizontal {
		return Vec{X: -s, Y: prev.Y}
	}
	return Vec{X: prev.X, Y: s}
}

// ViewExtent returns the viewport size along the primary axis.
func (g Grid) ViewExtent(view Size) float64 {
	if g.Axis == Horizontal {
		return view.W
	}
	return view.H
}

// CrossExtent returns the size along the cross axis.
func (g Grid) CrossExtent(s Size) float64 {
	if g.Axis == Horizontal {
		return s.H
	}
	return s.W
}
