// Package list implements a virtualized, uniformly gridded list that keeps
// only the cells near the viewport alive and recycles the rest.
package list

import (
	"github.com/taigrr/picklist/internal/ui/host"
	"github.com/taigrr/picklist/internal/ui/layout"
)

// CellInfo is the bookkeeping entry of one index.
type CellInfo struct {
	Index    int
	Position layout.Vec
	// Handle is the live cell bound to this index, or [host.NoHandle]. The
	// list owns its lifecycle through the pool.
	Handle host.Handle
}

// store adapts the list to the window tracker.
type store struct {
	l *List
}

func (l *List) store() store {
	return store{l: l}
}

func (s store) Len() int           { return len(s.l.cells) }
func (s store) Lead(i int) float64 { return s.l.lead(i) }
func (s store) Attach(i int)       { s.l.addCell(i) }
func (s store) Detach(i int)       { s.l.removeCell(i) }
