package picklist

import "github.com/taigrr/picklist/internal/ui/host"

// Data is a dataset entry. Its index is assigned by [PickList.SetDataSet]
// and is only stable until the dataset is replaced or resorted.
//
// Implementations must be comparable, typically pointers; the selection
// engine compares entries by identity.
type Data interface {
	Index() int
	SetIndex(int)
	Picked() bool
	SetPicked(bool)
	// IsDirty reports whether the entry refuses to be picked.
	IsDirty() bool
}

// BaseData implements the bookkeeping half of [Data]. Embed it in a
// pointer-typed entry and override IsDirty as needed.
type BaseData struct {
	index  int
	picked bool
}

var _ Data = (*BaseData)(nil)

// Index implements Data.
func (d *BaseData) Index() int { return d.index }

// SetIndex implements Data.
func (d *BaseData) SetIndex(i int) { d.index = i }

// Picked implements Data.
func (d *BaseData) Picked() bool { return d.picked }

// SetPicked implements Data.
func (d *BaseData) SetPicked(v bool) { d.picked = v }

// IsDirty implements Data. Entries are never dirty by default.
func (d *BaseData) IsDirty() bool { return false }

// Item is the visual binding of one live cell. A cell handle keeps the same
// Item for its whole lifetime while the bound entry changes as the cell is
// recycled.
type Item interface {
	// Refresh renders d into the cell, including its picked state.
	Refresh(d Data)
	// SetPick shows the cell as picked.
	SetPick()
	// SetUnPick shows the cell as not picked.
	SetUnPick()
}

// ItemFactory creates the Item for a cell handle the first time it is
// bound.
type ItemFactory func(h host.Handle) Item

// PickFunc is a veto callback. It receives the entry and whether the
// gesture repeats the current pick, and returns false to block the change.
type PickFunc func(d Data, isRepeat bool) bool

type binding struct {
	item Item
	data Data
}
