package list

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/charmbracelet/x/exp/ordered"
	"github.com/taigrr/picklist/internal/ui/host"
	"github.com/taigrr/picklist/internal/ui/layout"
	"github.com/taigrr/picklist/internal/ui/pool"
	"github.com/taigrr/picklist/internal/ui/window"
)

var (
	// ErrNoViewport is returned by window operations on a list that has no
	// renderer or viewport.
	ErrNoViewport = errors.New("list has no viewport")
	// ErrNoTemplate is returned when cells are requested before a template
	// is set.
	ErrNoTemplate = errors.New("list has no cell template")
	// ErrInvalidCount is returned for negative item counts.
	ErrInvalidCount = errors.New("invalid item count")
	// ErrInvalidConstraint is returned for constraints below 1.
	ErrInvalidConstraint = errors.New("invalid constraint")
)

// RefreshFunc hydrates the live cell h with the content of index. It is
// called every time a cell is bound to an index and on explicit updates.
type RefreshFunc func(h host.Handle, index int)

// List is a virtualized grid list. Only the cells inside the window (the
// viewport plus a one-cell buffer on both ends) are live; everything else
// is recycled through a pool.
type List struct {
	renderer host.Renderer
	viewport host.Viewport

	pool    *pool.Pool
	tracker *window.Tracker

	axis       layout.Axis
	constraint int
	spacing    layout.Vec
	padding    layout.Padding

	templatePath string
	cellSize     layout.Size

	// cells holds one entry per index. Its length is the item count.
	cells []CellInfo
	shown bool

	refresh RefreshFunc
}

// Option configures a [List].
type Option func(*List)

// WithAxis sets the scroll axis.
func WithAxis(axis layout.Axis) Option {
	return func(l *List) { l.axis = axis }
}

// WithSpacing sets the spacing between cells.
func WithSpacing(x, y float64) Option {
	return func(l *List) { l.SetSpacing(x, y) }
}

// WithPadding sets the content padding.
func WithPadding(left, right, top, bottom float64) Option {
	return func(l *List) { l.SetPadding(left, right, top, bottom) }
}

// WithRefresh sets the refresh callback.
func WithRefresh(fn RefreshFunc) Option {
	return func(l *List) { l.refresh = fn }
}

// New creates a list that places cells through r inside vp.
func New(r host.Renderer, vp host.Viewport, opts ...Option) *List {
	l := &List{
		renderer:   r,
		viewport:   vp,
		tracker:    window.New(),
		constraint: 1,
	}
	if r != nil {
		l.pool = pool.New(r)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetRefresh sets the refresh callback.
func (l *List) SetRefresh(fn RefreshFunc) {
	l.refresh = fn
}

// SetSpacing sets the spacing between cells. It takes effect on the next
// [List.ShowList] or [List.Relayout].
func (l *List) SetSpacing(x, y float64) {
	l.spacing = layout.Vec{X: x, Y: y}
}

// SetPadding sets the content padding. It takes effect on the next
// [List.ShowList] or [List.Relayout].
func (l *List) SetPadding(left, right, top, bottom float64) {
	l.padding = layout.Padding{Left: left, Right: right, Top: top, Bottom: bottom}
}

// SetTemplate loads the cell template at path. Changing the template
// destroys every pooled and live cell and empties the window; the list must
// be shown again afterwards.
func (l *List) SetTemplate(path string) error {
	if l.renderer == nil {
		return ErrNoViewport
	}
	if path == l.templatePath {
		return nil
	}

	t, err := l.renderer.LoadTemplate(path)
	if err != nil {
		return fmt.Errorf("failed to load template %q: %w", path, err)
	}

	if l.templatePath != "" {
		l.pool.Clear()
		for i := range l.cells {
			if h := l.cells[i].Handle; h != host.NoHandle {
				l.renderer.DestroyCell(h)
				l.cells[i].Handle = host.NoHandle
			}
		}
		l.tracker.Reset(l.scrollOffset())
		l.shown = false
	}

	l.templatePath = path
	l.cellSize = t.Extent
	l.pool.SetTemplate(t)
	slog.Debug("Cell template set", "path", path, "width", t.Extent.W, "height", t.Extent.H)
	return nil
}

// Template returns the current template path.
func (l *List) Template() string {
	return l.templatePath
}

// ShowList resets the list to count items laid out with the given
// constraint, scrolls back to the origin and materializes the first window.
func (l *List) ShowList(count, constraint int) error {
	if err := l.validate(count, constraint); err != nil {
		return err
	}

	l.constraint = constraint
	l.releaseAll()
	l.viewport.SetContentOffset(layout.Vec{})
	l.resizeContent(count)
	l.rebuild(count)

	l.tracker.Reset(0)
	l.tracker.Fill(l.store(), 0, l.band())
	l.shown = true

	lo, hi := l.tracker.Range()
	slog.Debug("List shown", "count", count, "constraint", constraint, "min", lo, "max", hi)
	return nil
}

// ChangeList resizes the list to count items without resetting the scroll
// position. Growing appends cells and materializes the ones that land in
// range; shrinking releases trailing cells and clamps the scroll offset to
// the smaller content. A constraint change reflows the whole list.
func (l *List) ChangeList(count, constraint int) error {
	if err := l.validate(count, constraint); err != nil {
		return err
	}
	if !l.shown {
		return l.ShowList(count, constraint)
	}
	if constraint != l.constraint {
		l.constraint = constraint
		l.relayout(count)
		return nil
	}

	old := len(l.cells)
	l.resizeContent(count)

	switch {
	case count > old:
		g := l.grid()
		for i := old; i < count; i++ {
			l.cells = append(l.cells, CellInfo{Index: i, Position: g.Position(i)})
		}
		l.tracker.Grow(l.store(), old, l.scrollOffset(), l.band())
	case count < old:
		l.tracker.Shrink(l.store(), count)
		clear(l.cells[count:])
		l.cells = l.cells[:count]
		l.clampOffset()
	}

	l.UpdateList()
	return nil
}

// Relayout recomputes every position and the window for the current
// count, keeping the scroll offset clamped to the content. Use it after
// changing spacing, padding or the viewport size. It is a no-op until the
// list has been shown.
func (l *List) Relayout() error {
	if err := l.ready(); err != nil {
		return err
	}
	if !l.shown {
		return nil
	}
	l.relayout(len(l.cells))
	return nil
}

// UpdateList refreshes every live cell. Window indices that lost their
// handle are materialized again.
func (l *List) UpdateList() {
	if l.tracker.Empty() {
		return
	}
	lo, hi := l.tracker.Range()
	for i := lo; i <= hi; i++ {
		if h := l.cells[i].Handle; h != host.NoHandle {
			l.hydrate(h, i)
		} else {
			l.addCell(i)
		}
	}
}

// UpdateCell refreshes a single index if it is live and in range.
func (l *List) UpdateCell(index int) {
	if index < 0 || index >= len(l.cells) || !l.tracker.Contains(index) {
		return
	}
	c := l.cells[index]
	if c.Handle == host.NoHandle {
		return
	}
	if l.band().OutOfRange(l.lead(index), l.scrollOffset()) {
		return
	}
	l.hydrate(c.Handle, index)
}

// JumpTo scrolls by the smallest amount that makes the cell at index fully
// visible, snapping it to the edge it was outside of.
func (l *List) JumpTo(index int) {
	if !l.shown || index < 0 || index >= len(l.cells) {
		return
	}

	b := l.band()
	s := l.scrollOffset()
	lead := l.lead(index)

	var target float64
	switch rel := lead - s; {
	case rel < 0:
		target = lead
	case rel+b.Cell > b.View:
		target = lead + b.Cell - b.View
	default:
		return
	}
	l.scrollTo(target)
}

// SetOriginalPos scrolls back to the origin.
func (l *List) SetOriginalPos() {
	if l.viewport == nil {
		return
	}
	l.viewport.SetContentOffset(layout.Vec{})
	if l.shown {
		l.tracker.Sync(l.store(), 0, l.band())
	}
}

// HandleScroll must be called whenever the host content offset changes. It
// moves the window toward the new offset.
func (l *List) HandleScroll() {
	if !l.shown || len(l.cells) == 0 {
		return
	}
	l.tracker.Scroll(l.store(), l.scrollOffset(), l.band())
}

// Len returns the item count.
func (l *List) Len() int {
	return len(l.cells)
}

// Range returns the window bounds; both are -1 when nothing is live.
func (l *List) Range() (minIdx, maxIdx int) {
	return l.tracker.Range()
}

// Shown reports whether the list has been shown since the last template
// change.
func (l *List) Shown() bool {
	return l.shown
}

// Axis returns the scroll axis.
func (l *List) Axis() layout.Axis {
	return l.axis
}

// Constraint returns the current rows or columns per line.
func (l *List) Constraint() int {
	return l.constraint
}

// Cell returns the cell info for index.
func (l *List) Cell(index int) (CellInfo, bool) {
	if index < 0 || index >= len(l.cells) {
		return CellInfo{}, false
	}
	return l.cells[index], true
}

// Position returns the content-space position of index.
func (l *List) Position(index int) (layout.Vec, bool) {
	c, ok := l.Cell(index)
	return c.Position, ok
}

// ContentExtent returns the content size along the scroll axis.
func (l *List) ContentExtent() float64 {
	return l.grid().ContentExtent(len(l.cells))
}

// Live iterates over the live cells in index order.
func (l *List) Live() iter.Seq2[int, host.Handle] {
	return func(yield func(int, host.Handle) bool) {
		if l.tracker.Empty() {
			return
		}
		lo, hi := l.tracker.Range()
		for i := lo; i <= hi; i++ {
			h := l.cells[i].Handle
			if h == host.NoHandle {
				continue
			}
			if !yield(i, h) {
				return
			}
		}
	}
}

func (l *List) ready() error {
	if l.renderer == nil || l.viewport == nil {
		return ErrNoViewport
	}
	if l.templatePath == "" {
		return ErrNoTemplate
	}
	return nil
}

func (l *List) validate(count, constraint int) error {
	if err := l.ready(); err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if constraint < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidConstraint, constraint)
	}
	return nil
}

func (l *List) grid() layout.Grid {
	return layout.Grid{
		Axis:       l.axis,
		Constraint: l.constraint,
		Cell:       l.cellSize,
		Spacing:    l.spacing,
		Padding:    l.padding,
	}
}

func (l *List) band() window.Band {
	g := l.grid()
	return window.Band{
		Cell: g.CellExtent(),
		View: g.ViewExtent(l.viewport.ViewportExtent()),
	}
}

func (l *List) scrollOffset() float64 {
	if l.viewport == nil {
		return 0
	}
	return l.grid().ScrollOffset(l.viewport.ContentOffset())
}

func (l *List) lead(index int) float64 {
	return l.grid().Lead(l.cells[index].Position)
}

func (l *List) maxScroll() float64 {
	g := l.grid()
	return max(0, g.ContentExtent(len(l.cells))-g.ViewExtent(l.viewport.ViewportExtent()))
}

// scrollTo moves the content to scroll-space offset s and reconciles the
// window immediately.
func (l *List) scrollTo(s float64) {
	s = ordered.Clamp(s, 0, l.maxScroll())
	l.viewport.SetContentOffset(l.grid().ContentOffset(s, l.viewport.ContentOffset()))
	l.tracker.Sync(l.store(), s, l.band())
}

func (l *List) clampOffset() {
	s := l.scrollOffset()
	clamped := ordered.Clamp(s, 0, l.maxScroll())
	if clamped != s {
		l.viewport.SetContentOffset(l.grid().ContentOffset(clamped, l.viewport.ContentOffset()))
	}
	l.tracker.Sync(l.store(), clamped, l.band())
}

func (l *List) resizeContent(count int) {
	g := l.grid()
	cross := g.CrossExtent(l.viewport.ContentExtent())
	l.viewport.SetContentExtent(g.ContentSize(count, cross))
}

func (l *List) rebuild(count int) {
	g := l.grid()
	cells := make([]CellInfo, count)
	for i := range cells {
		cells[i] = CellInfo{Index: i, Position: g.Position(i)}
	}
	l.cells = cells
}

func (l *List) relayout(count int) {
	l.releaseAll()
	l.resizeContent(count)
	l.rebuild(count)

	s := l.scrollOffset()
	clamped := ordered.Clamp(s, 0, l.maxScroll())
	if clamped != s {
		l.viewport.SetContentOffset(l.grid().ContentOffset(clamped, l.viewport.ContentOffset()))
	}
	l.tracker.Reset(clamped)
	l.tracker.Fill(l.store(), clamped, l.band())
	l.shown = true
}

func (l *List) releaseAll() {
	for i := range l.cells {
		l.removeCell(i)
	}
	l.tracker.Reset(l.scrollOffset())
}

func (l *List) hydrate(h host.Handle, index int) {
	if l.refresh != nil {
		l.refresh(h, index)
	}
}

func (l *List) addCell(index int) {
	h := l.pool.Acquire()
	l.hydrate(h, index)
	l.cells[index].Handle = h
	l.renderer.SetPosition(h, l.cells[index].Position)
}

func (l *List) removeCell(index int) {
	h := l.cells[index].Handle
	if h == host.NoHandle {
		return
	}
	l.pool.Release(h)
	l.cells[index].Handle = host.NoHandle
}
