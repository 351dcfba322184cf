// Package picklist layers selection over a virtualized [list.List]: it
// owns the dataset, the picked set and the pick/unpick state machine, and
// keeps the visuals of live cells in sync with it.
package picklist

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/taigrr/picklist/internal/ui/host"
	"github.com/taigrr/picklist/internal/ui/list"
)

// Options is the selection policy.
type Options struct {
	// SingleUnpickable lets a repeated pick clear the only selection in
	// single mode.
	SingleUnpickable bool
	// MultiPickable enables multi selection.
	MultiPickable bool
	// DisablePick ignores every pick gesture.
	DisablePick bool
}

// DefaultOptions returns single selection with toggling allowed.
func DefaultOptions() Options {
	return Options{SingleUnpickable: true}
}

// DataSetOptions controls [PickList.SetDataSet].
type DataSetOptions struct {
	// Sort orders the dataset with the comparison set via
	// [PickList.SetComparison] before indices are assigned.
	Sort bool
	// Refresh shows the list for the new dataset.
	Refresh bool
	// KeepPick rebuilds the selection from the entries' picked flags
	// instead of clearing it.
	KeepPick bool
}

// Option configures a [PickList].
type Option func(*PickList)

// WithPickProperty sets the selection policy.
func WithPickProperty(o Options) Option {
	return func(p *PickList) { p.opts = o }
}

// WithOnPick sets the pick veto.
func WithOnPick(fn PickFunc) Option {
	return func(p *PickList) { p.onPick = fn }
}

// WithOnUnPick sets the unpick veto.
func WithOnUnPick(fn PickFunc) Option {
	return func(p *PickList) { p.onUnPick = fn }
}

// WithComparison sets the sort comparison.
func WithComparison(fn func(a, b Data) int) Option {
	return func(p *PickList) { p.compare = fn }
}

// WithConstraint sets the rows or columns per line.
func WithConstraint(r int) Option {
	return func(p *PickList) { p.constraint = r }
}

// PickList is a selectable virtualized list.
type PickList struct {
	list    *list.List
	factory ItemFactory

	opts       Options
	compare    func(a, b Data) int
	constraint int

	onPick   PickFunc
	onUnPick PickFunc

	data    []Data
	current int
	picked  map[int]Data

	// bindings is keyed by handle identity so recycled cells keep their
	// Item while the bound entry changes.
	bindings map[host.Handle]*binding

	picking bool
}

// New creates a pick list on top of l. It takes over the refresh callback
// of l; factory creates the visual binding for each new cell handle.
func New(l *list.List, factory ItemFactory, opts ...Option) *PickList {
	p := &PickList{
		list:       l,
		factory:    factory,
		opts:       DefaultOptions(),
		constraint: 1,
		current:    -1,
		picked:     make(map[int]Data),
		bindings:   make(map[host.Handle]*binding),
	}
	for _, opt := range opts {
		opt(p)
	}
	l.SetRefresh(p.refreshItem)
	return p
}

// List returns the underlying list engine.
func (p *PickList) List() *list.List {
	return p.list
}

// SetTemplate sets the cell template. A template change destroys every
// cell, so all bindings are dropped.
func (p *PickList) SetTemplate(path string) error {
	changed := path != p.list.Template()
	if err := p.list.SetTemplate(path); err != nil {
		return err
	}
	if changed {
		clear(p.bindings)
	}
	return nil
}

// SetPadding sets the content padding.
func (p *PickList) SetPadding(left, right, top, bottom float64) {
	p.list.SetPadding(left, right, top, bottom)
}

// SetSpacing sets the spacing between cells.
func (p *PickList) SetSpacing(x, y float64) {
	p.list.SetSpacing(x, y)
}

// SetConstraint sets the rows or columns per line used by the next
// [PickList.Refresh].
func (p *PickList) SetConstraint(r int) {
	p.constraint = r
}

// SetComparison sets the comparison used when a dataset is sorted.
func (p *PickList) SetComparison(fn func(a, b Data) int) {
	p.compare = fn
}

// SetOnPick sets the pick veto.
func (p *PickList) SetOnPick(fn PickFunc) {
	p.onPick = fn
}

// SetOnUnPick sets the unpick veto.
func (p *PickList) SetOnUnPick(fn PickFunc) {
	p.onUnPick = fn
}

// SetPickProperty replaces the selection policy. Leaving multi mode keeps
// only the first picked entry and makes it current.
func (p *PickList) SetPickProperty(o Options) {
	wasMulti := p.opts.MultiPickable
	p.opts = o
	if wasMulti && !o.MultiPickable && len(p.picked) > 0 {
		p.SyncPicked()
		p.RefreshDisplay()
	}
}

// PickProperty returns the selection policy.
func (p *PickList) PickProperty() Options {
	return p.opts
}

// SetDisablePick toggles the global pick gate.
func (p *PickList) SetDisablePick(v bool) {
	p.opts.DisablePick = v
}

// SetDataSet replaces the dataset. A nil dataset is ignored. Indices are
// reassigned after the optional sort. Without KeepPick the selection and
// every picked flag are cleared.
func (p *PickList) SetDataSet(data []Data, o DataSetOptions) error {
	if data == nil {
		return nil
	}
	p.data = data
	if o.Sort && p.compare != nil {
		slices.SortStableFunc(p.data, p.compare)
	}
	for i, d := range p.data {
		d.SetIndex(i)
	}

	if o.KeepPick {
		p.SyncPicked()
	} else {
		p.current = -1
		clear(p.picked)
		for _, d := range p.data {
			d.SetPicked(false)
		}
	}

	slog.Debug("Data set changed", "count", len(p.data), "sort", o.Sort, "keep_pick", o.KeepPick)
	if o.Refresh {
		return p.Refresh()
	}
	return nil
}

// Refresh syncs the selection with the picked flags and shows the list
// for the whole dataset.
func (p *PickList) Refresh() error {
	if p.data == nil {
		return nil
	}
	p.SyncPicked()
	return p.list.ShowList(len(p.data), p.constraint)
}

// RefreshDisplay re-renders every live cell.
func (p *PickList) RefreshDisplay() {
	for _, h := range p.list.Live() {
		if b, ok := p.bindings[h]; ok && b.data != nil {
			b.item.Refresh(b.data)
		}
	}
}

// SyncPicked rebuilds the selection from the picked flags, for callers
// that changed them directly. In single mode the first picked entry wins
// and the others are cleared.
func (p *PickList) SyncPicked() {
	clear(p.picked)
	p.current = -1
	for _, d := range p.data {
		if !d.Picked() {
			continue
		}
		if !p.opts.MultiPickable && p.current >= 0 {
			d.SetPicked(false)
			continue
		}
		p.current = d.Index()
		p.picked[d.Index()] = d
	}
}

// OnPick runs the pick state machine for d. It is a no-op when picking is
// disabled, d is dirty or d is not in the current dataset. Picks issued
// from within a veto callback are rejected.
func (p *PickList) OnPick(d Data) {
	if d == nil || p.opts.DisablePick || d.IsDirty() {
		return
	}
	if !p.owns(d) {
		slog.Debug("Ignoring pick of entry outside the data set", "index", d.Index())
		return
	}
	if p.picking {
		slog.Warn("Rejected reentrant pick", "index", d.Index())
		return
	}
	p.picking = true
	defer func() { p.picking = false }()

	if p.opts.MultiPickable {
		p.pickMulti(d)
	} else {
		p.pickSingle(d)
	}
}

// PickHandle picks the entry bound to the cell h. It reports whether h is
// bound.
func (p *PickList) PickHandle(h host.Handle) bool {
	b, ok := p.bindings[h]
	if !ok || b.data == nil {
		return false
	}
	p.OnPick(b.data)
	return true
}

// PickAll picks every entry. It only works in multi mode.
func (p *PickList) PickAll() {
	if !p.opts.MultiPickable {
		return
	}
	for _, d := range p.data {
		d.SetPicked(true)
		p.picked[d.Index()] = d
	}
	for _, h := range p.list.Live() {
		if b, ok := p.bindings[h]; ok {
			b.item.SetPick()
		}
	}
}

// UnpickAll clears the selection.
func (p *PickList) UnpickAll() {
	for _, d := range p.picked {
		d.SetPicked(false)
	}
	clear(p.picked)
	p.current = -1
	for _, h := range p.list.Live() {
		if b, ok := p.bindings[h]; ok {
			b.item.SetUnPick()
		}
	}
}

// GetPickedList returns the picked entries ordered by index.
func (p *PickList) GetPickedList() []Data {
	picked := make([]Data, 0, len(p.picked))
	for _, d := range p.picked {
		picked = append(picked, d)
	}
	slices.SortFunc(picked, func(a, b Data) int {
		return cmp.Compare(a.Index(), b.Index())
	})
	return picked
}

// GetPickData returns the entry at index.
func (p *PickList) GetPickData(index int) (Data, bool) {
	if index < 0 || index >= len(p.data) {
		return nil, false
	}
	return p.data[index], true
}

// Current returns the most recently picked entry, or nil.
func (p *PickList) Current() Data {
	if p.current < 0 {
		return nil
	}
	return p.picked[p.current]
}

// Count returns the dataset size.
func (p *PickList) Count() int {
	return len(p.data)
}

// PickedCount returns the selection size.
func (p *PickList) PickedCount() int {
	return len(p.picked)
}

// Prev picks the entry before the current one, wrapping around, and
// scrolls it into view. With nothing picked it picks the last entry.
func (p *PickList) Prev() {
	n := len(p.data)
	if n == 0 {
		return
	}
	idx := n - 1
	if p.current >= 0 {
		idx = (p.current - 1 + n) % n
	}
	p.step(idx)
}

// Next picks the entry after the current one, wrapping around, and
// scrolls it into view. With nothing picked it picks the first entry.
func (p *PickList) Next() {
	n := len(p.data)
	if n == 0 {
		return
	}
	idx := 0
	if p.current >= 0 {
		idx = (p.current + 1) % n
	}
	p.step(idx)
}

// JumpTo scrolls d into view.
func (p *PickList) JumpTo(d Data) {
	if d == nil {
		return
	}
	p.list.JumpTo(d.Index())
}

func (p *PickList) step(idx int) {
	p.OnPick(p.data[idx])
	if p.current >= 0 {
		p.JumpTo(p.data[p.current])
	}
}

func (p *PickList) pickMulti(d Data) {
	idx := d.Index()
	if _, ok := p.picked[idx]; ok {
		if !p.veto(p.onUnPick, d, true) {
			slog.Debug("Unpick vetoed", "index", idx)
			return
		}
		p.unpick(d)
		if p.current == idx {
			p.current = -1
		}
		return
	}
	if !p.veto(p.onPick, d, false) {
		slog.Debug("Pick vetoed", "index", idx)
		return
	}
	p.current = idx
	p.pick(d)
}

func (p *PickList) pickSingle(d Data) {
	idx := d.Index()
	if idx == p.current {
		if p.opts.SingleUnpickable {
			if !p.veto(p.onUnPick, d, true) {
				slog.Debug("Unpick vetoed", "index", idx)
				return
			}
			p.unpick(d)
			p.current = -1
			return
		}
		// Repeat picks are reported but always re-mark the entry.
		p.veto(p.onPick, d, true)
		p.pick(d)
		return
	}

	var cur Data
	if p.current >= 0 {
		cur = p.data[p.current]
	}
	same := cur == d
	if !p.veto(p.onPick, d, same) {
		slog.Debug("Pick vetoed", "index", idx)
		return
	}
	if cur != nil {
		// The previous entry is released even if its unpick is vetoed.
		p.veto(p.onUnPick, cur, same)
		p.unpick(cur)
	}
	p.current = idx
	p.pick(d)
}

func (p *PickList) veto(fn PickFunc, d Data, repeat bool) bool {
	if fn == nil {
		return true
	}
	return fn(d, repeat)
}

func (p *PickList) pick(d Data) {
	d.SetPicked(true)
	p.picked[d.Index()] = d
	if item, ok := p.liveItem(d.Index()); ok {
		item.SetPick()
	}
}

func (p *PickList) unpick(d Data) {
	d.SetPicked(false)
	delete(p.picked, d.Index())
	if item, ok := p.liveItem(d.Index()); ok {
		item.SetUnPick()
	}
}

// liveItem returns the binding of the live cell showing index. Entries
// outside the window pick up their state on the next refresh.
func (p *PickList) liveItem(index int) (Item, bool) {
	c, ok := p.list.Cell(index)
	if !ok || c.Handle == host.NoHandle {
		return nil, false
	}
	b, ok := p.bindings[c.Handle]
	if !ok {
		return nil, false
	}
	return b.item, true
}

func (p *PickList) owns(d Data) bool {
	idx := d.Index()
	return idx >= 0 && idx < len(p.data) && p.data[idx] == d
}

func (p *PickList) refreshItem(h host.Handle, index int) {
	if index < 0 || index >= len(p.data) {
		slog.Warn("Refresh for index outside the data set", "index", index, "count", len(p.data))
		return
	}
	b, ok := p.bindings[h]
	if !ok {
		b = &binding{item: p.factory(h)}
		p.bindings[h] = b
	}
	b.data = p.data[index]
	b.item.Refresh(b.data)
}
