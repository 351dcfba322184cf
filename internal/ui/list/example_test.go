package list_test

import (
	"fmt"

	"github.com/taigrr/picklist/internal/ui/host"
	"github.com/taigrr/picklist/internal/ui/host/hosttest"
	"github.com/taigrr/picklist/internal/ui/layout"
	"github.com/taigrr/picklist/internal/ui/list"
)

// Example shows a hundred rows in a viewport that fits ten of them. Only
// the visible rows plus a one-row buffer are materialized.
func Example() {
	h := hosttest.New(layout.Size{W: 100, H: 500}).
		AddTemplate("row", layout.Size{W: 100, H: 50})

	l := list.New(h, h, list.WithRefresh(func(_ host.Handle, index int) {
		// Bind the content of index to the cell here.
	}))
	if err := l.SetTemplate("row"); err != nil {
		panic(err)
	}
	if err := l.ShowList(100, 1); err != nil {
		panic(err)
	}
	fmt.Println(l.Range())

	h.Offset = layout.Vec{Y: 250}
	l.HandleScroll()
	fmt.Println(l.Range())
	fmt.Println(len(h.Live()), "live cells")

	// Output:
	// 0 10
	// 4 15
	// 12 live cells
}
