package picklist

import (
	"cmp"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taigrr/picklist/internal/ui/host"
	"github.com/taigrr/picklist/internal/ui/host/hosttest"
	"github.com/taigrr/picklist/internal/ui/layout"
	"github.com/taigrr/picklist/internal/ui/list"
)

type entry struct {
	BaseData
	name  string
	size  int
	dirty bool
}

func (e *entry) IsDirty() bool { return e.dirty }

type fakeItem struct {
	handle    host.Handle
	data      Data
	picked    bool
	refreshes int
}

func (f *fakeItem) Refresh(d Data) {
	f.data = d
	f.picked = d.Picked()
	f.refreshes++
}

func (f *fakeItem) SetPick()   { f.picked = true }
func (f *fakeItem) SetUnPick() { f.picked = false }

type call struct {
	index  int
	repeat bool
}

type fixture struct {
	host    *hosttest.Host
	list    *list.List
	pick    *PickList
	entries []*entry
	items   map[host.Handle]*fakeItem
	made    int
}

func newFixture(t *testing.T, n int, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		host: hosttest.New(layout.Size{W: 100, H: 500}).
			AddTemplate("row", layout.Size{W: 100, H: 50}).
			AddTemplate("tile", layout.Size{W: 50, H: 25}),
		items: make(map[host.Handle]*fakeItem),
	}
	f.list = list.New(f.host, f.host)
	f.pick = New(f.list, func(h host.Handle) Item {
		f.made++
		item := &fakeItem{handle: h}
		f.items[h] = item
		return item
	}, opts...)
	require.NoError(t, f.pick.SetTemplate("row"))
	require.NoError(t, f.pick.SetDataSet(f.dataset(n), DataSetOptions{Refresh: true}))
	return f
}

func (f *fixture) dataset(n int) []Data {
	f.entries = make([]*entry, n)
	data := make([]Data, n)
	for i := range n {
		f.entries[i] = &entry{name: fmt.Sprintf("entry-%02d", i), size: i}
		data[i] = f.entries[i]
	}
	return data
}

// visual returns the item bound to the live cell showing index, or nil.
func (f *fixture) visual(index int) *fakeItem {
	c, ok := f.list.Cell(index)
	if !ok || c.Handle == host.NoHandle {
		return nil
	}
	return f.items[c.Handle]
}

func (f *fixture) tap(index int) {
	f.pick.OnPick(f.entries[index])
}

func pickedIndices(p *PickList) []int {
	var out []int
	for _, d := range p.GetPickedList() {
		out = append(out, d.Index())
	}
	return out
}

func recorder(calls *[]call, result func(call) bool) PickFunc {
	return func(d Data, repeat bool) bool {
		c := call{index: d.Index(), repeat: repeat}
		*calls = append(*calls, c)
		return result(c)
	}
}

func allow(call) bool { return true }
func deny(call) bool  { return false }

func TestSingleUnpickable(t *testing.T) {
	t.Parallel()

	var unpicks []call
	f := newFixture(t, 100, WithOnUnPick(recorder(&unpicks, allow)))

	f.tap(3)
	require.Equal(t, 1, f.pick.PickedCount())
	require.Equal(t, 3, f.pick.Current().Index())
	require.True(t, f.visual(3).picked)

	f.tap(3)
	require.Zero(t, f.pick.PickedCount())
	require.Nil(t, f.pick.Current())
	require.False(t, f.entries[3].Picked())
	require.False(t, f.visual(3).picked)
	require.Equal(t, []call{{index: 3, repeat: true}}, unpicks)
}

func TestSingleRepick(t *testing.T) {
	t.Parallel()

	var picks []call
	f := newFixture(t, 100,
		WithPickProperty(Options{SingleUnpickable: false}),
		WithOnPick(recorder(&picks, func(c call) bool { return !c.repeat })),
	)

	f.tap(3)
	f.tap(3)
	require.Equal(t, []call{{3, false}, {3, true}}, picks)
	require.Equal(t, []int{3}, pickedIndices(f.pick))
	require.Equal(t, 3, f.pick.Current().Index())
	require.True(t, f.visual(3).picked)
}

func TestSingleSwitch(t *testing.T) {
	t.Parallel()

	var picks, unpicks []call
	f := newFixture(t, 100,
		WithOnPick(recorder(&picks, allow)),
		WithOnUnPick(recorder(&unpicks, deny)),
	)

	f.tap(2)
	f.tap(5)
	require.Equal(t, []call{{2, false}, {5, false}}, picks)
	// The unpick veto on a switch is reported but does not keep the old pick.
	require.Equal(t, []call{{2, false}}, unpicks)
	require.Equal(t, []int{5}, pickedIndices(f.pick))
	require.False(t, f.entries[2].Picked())
	require.False(t, f.visual(2).picked)
	require.True(t, f.visual(5).picked)
}

func TestPickVetoed(t *testing.T) {
	t.Parallel()

	for _, multi := range []bool{false, true} {
		t.Run(fmt.Sprintf("multi=%v", multi), func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, 10,
				WithPickProperty(Options{MultiPickable: multi}),
				WithOnPick(func(Data, bool) bool { return false }),
			)
			f.tap(1)
			require.Zero(t, f.pick.PickedCount())
			require.Nil(t, f.pick.Current())
			require.False(t, f.entries[1].Picked())
			require.False(t, f.visual(1).picked)
		})
	}
}

func TestMultiPick(t *testing.T) {
	t.Parallel()

	var unpicks []call
	f := newFixture(t, 100,
		WithPickProperty(Options{MultiPickable: true}),
		WithOnUnPick(recorder(&unpicks, allow)),
	)

	f.tap(2)
	f.tap(5)
	require.Equal(t, []int{2, 5}, pickedIndices(f.pick))
	require.Equal(t, 5, f.pick.Current().Index())

	f.tap(5)
	require.Equal(t, []int{2}, pickedIndices(f.pick))
	require.Nil(t, f.pick.Current())
	require.Equal(t, []call{{5, true}}, unpicks)

	f.tap(2)
	require.Zero(t, f.pick.PickedCount())
}

func TestMultiUnpickVetoed(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 10,
		WithPickProperty(Options{MultiPickable: true}),
		WithOnUnPick(func(Data, bool) bool { return false }),
	)
	f.tap(4)
	f.tap(4)
	require.Equal(t, []int{4}, pickedIndices(f.pick))
	require.True(t, f.visual(4).picked)
}

func TestPickAllUnpickAll(t *testing.T) {
	t.Parallel()

	t.Run("multi", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, 100, WithPickProperty(Options{MultiPickable: true}))
		f.tap(7)

		f.pick.PickAll()
		require.Equal(t, 100, f.pick.PickedCount())
		for i, h := range f.list.Live() {
			require.True(t, f.items[h].picked, "index %d", i)
		}

		f.pick.UnpickAll()
		require.Zero(t, f.pick.PickedCount())
		require.Nil(t, f.pick.Current())
		for _, e := range f.entries {
			require.False(t, e.Picked())
		}
		for i, h := range f.list.Live() {
			require.False(t, f.items[h].picked, "index %d", i)
		}
	})

	t.Run("single ignores pick all", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, 10)
		f.pick.PickAll()
		require.Zero(t, f.pick.PickedCount())
	})
}

func TestPickGates(t *testing.T) {
	t.Parallel()

	var picks []call
	f := newFixture(t, 10, WithOnPick(recorder(&picks, allow)))

	f.pick.SetDisablePick(true)
	f.tap(1)
	require.Zero(t, f.pick.PickedCount())

	f.pick.SetDisablePick(false)
	f.entries[2].dirty = true
	f.tap(2)
	require.Zero(t, f.pick.PickedCount())

	f.pick.OnPick(nil)
	f.pick.OnPick(&entry{})
	require.Zero(t, f.pick.PickedCount())
	require.Empty(t, picks)
}

func TestReentrantPickRejected(t *testing.T) {
	t.Parallel()

	var f *fixture
	calls := 0
	f = newFixture(t, 10, WithOnPick(func(d Data, _ bool) bool {
		calls++
		f.tap(7)
		return true
	}))

	f.tap(3)
	require.Equal(t, 1, calls)
	require.Equal(t, []int{3}, pickedIndices(f.pick))
	require.False(t, f.entries[7].Picked())
}

func TestOffscreenPickShowsOnScroll(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 100)
	f.tap(50)
	require.Nil(t, f.visual(50))
	require.True(t, f.entries[50].Picked())

	f.host.Offset = layout.Vec{Y: 2300}
	f.list.HandleScroll()
	require.NotNil(t, f.visual(50))
	require.True(t, f.visual(50).picked)
	require.False(t, f.visual(48).picked)
}

func TestBindingsFollowHandles(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 100)
	for _, y := range []float64{250, 1200, 3000, 400} {
		f.host.Offset = layout.Vec{Y: y}
		f.list.HandleScroll()
	}
	require.Equal(t, f.host.Created, f.made, "one item per distinct handle")
	for i, h := range f.list.Live() {
		require.Equal(t, i, f.items[h].data.Index())
		require.Same(t, f.entries[i], f.items[h].data)
	}
}

func TestSetDataSet(t *testing.T) {
	t.Parallel()

	t.Run("sort reassigns indices", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, 5, WithComparison(func(a, b Data) int {
			return cmp.Compare(b.(*entry).size, a.(*entry).size)
		}))
		data := f.dataset(5)
		require.NoError(t, f.pick.SetDataSet(data, DataSetOptions{Sort: true, Refresh: true}))
		for i := range 5 {
			d, ok := f.pick.GetPickData(i)
			require.True(t, ok)
			require.Equal(t, i, d.Index())
			require.Equal(t, 4-i, d.(*entry).size)
			require.Same(t, d, f.visual(i).data)
		}
	})

	t.Run("clears selection", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, 10)
		f.tap(4)
		data := make([]Data, len(f.entries))
		for i, e := range f.entries {
			data[i] = e
		}
		require.NoError(t, f.pick.SetDataSet(data, DataSetOptions{Refresh: true}))
		require.Zero(t, f.pick.PickedCount())
		require.Nil(t, f.pick.Current())
		require.False(t, f.entries[4].Picked())
		require.False(t, f.visual(4).picked)
	})

	t.Run("keeps selection", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, 10, WithComparison(func(a, b Data) int {
			return cmp.Compare(b.(*entry).size, a.(*entry).size)
		}))
		f.tap(4)
		data := make([]Data, len(f.entries))
		for i, e := range f.entries {
			data[i] = e
		}
		require.NoError(t, f.pick.SetDataSet(data, DataSetOptions{Sort: true, KeepPick: true, Refresh: true}))
		require.Equal(t, 1, f.pick.PickedCount())
		require.Same(t, f.entries[4], f.pick.Current())
		require.Equal(t, 5, f.pick.Current().Index())
		require.True(t, f.visual(5).picked)
	})

	t.Run("nil is ignored", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, 10)
		require.NoError(t, f.pick.SetDataSet(nil, DataSetOptions{Refresh: true}))
		require.Equal(t, 10, f.pick.Count())
	})
}

func TestPrevNext(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 100)
	f.pick.Next()
	require.Equal(t, 0, f.pick.Current().Index())

	f.pick.Prev()
	require.Equal(t, 99, f.pick.Current().Index())
	require.Equal(t, 4500.0, f.host.Offset.Y)
	require.True(t, f.visual(99).picked)

	f.pick.Next()
	require.Equal(t, 0, f.pick.Current().Index())
	require.Equal(t, 0.0, f.host.Offset.Y)
	require.Equal(t, 1, f.pick.PickedCount())
}

func TestPrevWithoutCurrentPicksLast(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 100)
	f.pick.Prev()
	require.Equal(t, 99, f.pick.Current().Index())
	require.Equal(t, []int{99}, pickedIndices(f.pick))
	require.Equal(t, 4500.0, f.host.Offset.Y)
}

func TestPrevNextEmpty(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 0)
	f.pick.Next()
	f.pick.Prev()
	require.Nil(t, f.pick.Current())
}

func TestGetPickData(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 3)
	d, ok := f.pick.GetPickData(2)
	require.True(t, ok)
	require.Same(t, f.entries[2], d)

	for _, i := range []int{-1, 3} {
		d, ok = f.pick.GetPickData(i)
		require.False(t, ok)
		require.Nil(t, d)
	}
}

func TestSyncPicked(t *testing.T) {
	t.Parallel()

	t.Run("single keeps first", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, 10)
		f.entries[4].SetPicked(true)
		f.entries[9].SetPicked(true)
		f.pick.SyncPicked()
		require.Equal(t, []int{4}, pickedIndices(f.pick))
		require.Equal(t, 4, f.pick.Current().Index())
		require.False(t, f.entries[9].Picked())
	})

	t.Run("multi keeps all", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, 10, WithPickProperty(Options{MultiPickable: true}))
		f.entries[4].SetPicked(true)
		f.entries[9].SetPicked(true)
		f.pick.SyncPicked()
		require.Equal(t, []int{4, 9}, pickedIndices(f.pick))
		require.Equal(t, 9, f.pick.Current().Index())
	})
}

func TestPickHandle(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 10)
	c, ok := f.list.Cell(2)
	require.True(t, ok)
	require.True(t, f.pick.PickHandle(c.Handle))
	require.Equal(t, 2, f.pick.Current().Index())

	require.False(t, f.pick.PickHandle(host.Handle(9999)))
}

func TestSetTemplateDropsBindings(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 10)
	made := f.made
	require.NoError(t, f.pick.SetTemplate("row"))
	require.Equal(t, made, f.made)

	require.NoError(t, f.pick.SetTemplate("tile"))
	require.NoError(t, f.pick.Refresh())
	require.Equal(t, 2*made, f.made)
	for _, h := range f.list.Live() {
		require.Equal(t, "tile", f.host.Cells[h].Template)
	}
}

func TestSetPickPropertyLeavingMulti(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 10, WithPickProperty(Options{MultiPickable: true}))
	f.tap(2)
	f.tap(5)

	f.pick.SetPickProperty(DefaultOptions())
	require.Equal(t, []int{2}, pickedIndices(f.pick))
	require.Equal(t, 2, f.pick.Current().Index())
	require.False(t, f.entries[5].Picked())
	require.False(t, f.visual(5).picked)
}

func TestSetPickPropertyLeavingMultiWithoutCurrent(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 10, WithPickProperty(Options{MultiPickable: true}))
	f.tap(2)
	f.tap(5)
	f.tap(5)
	require.Equal(t, []int{2}, pickedIndices(f.pick))

	f.pick.SetPickProperty(DefaultOptions())
	require.Equal(t, 2, f.pick.Current().Index())

	f.tap(3)
	require.Equal(t, []int{3}, pickedIndices(f.pick))
	require.Equal(t, 3, f.pick.Current().Index())
	require.False(t, f.entries[2].Picked())
	require.False(t, f.visual(2).picked)
}

func TestRefreshDisplay(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 10)
	before := f.visual(1).refreshes
	f.entries[1].name = "renamed"
	f.pick.RefreshDisplay()
	require.Equal(t, before+1, f.visual(1).refreshes)
}
