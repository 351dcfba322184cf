package model

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/taigrr/picklist/internal/ui/host"
	"github.com/taigrr/picklist/internal/ui/picklist"
	"github.com/taigrr/picklist/internal/ui/styles"
	"github.com/taigrr/picklist/internal/ui/termhost"
)

// cellItem renders an [Entry] into a terminal host cell.
type cellItem struct {
	handle host.Handle
	host   *termhost.Host
	sty    *styles.Styles
	width  int

	// current reports whether e is the current pick.
	current func(e *Entry) bool

	entry  *Entry
	picked bool
}

var _ picklist.Item = (*cellItem)(nil)

// Refresh implements [picklist.Item].
func (c *cellItem) Refresh(d picklist.Data) {
	c.entry, _ = d.(*Entry)
	c.picked = d.Picked()
	c.render()
}

// SetPick implements [picklist.Item].
func (c *cellItem) SetPick() {
	c.picked = true
	c.render()
}

// SetUnPick implements [picklist.Item].
func (c *cellItem) SetUnPick() {
	c.picked = false
	c.render()
}

func (c *cellItem) render() {
	if c.entry == nil {
		c.host.SetContent(c.handle, "")
		return
	}

	icon := styles.UncheckIcon
	style := c.sty.Cell.Normal
	switch {
	case c.entry.Locked:
		icon = styles.LockIcon
		style = c.sty.Cell.Dirty
	case c.picked:
		icon = styles.CheckIcon
		style = c.sty.Cell.Picked
	}
	if c.current != nil && c.current(c.entry) {
		style = c.sty.Cell.Current
	}

	size := c.sty.Cell.Size.Render(humanize.Bytes(c.entry.Size))
	nameWidth := max(0, c.width-lipgloss.Width(size)-4)
	name := ansi.Truncate(c.entry.Name, nameWidth, "…")
	gap := max(1, c.width-lipgloss.Width(name)-lipgloss.Width(size)-3)

	line := fmt.Sprintf("%s %s%*s%s", icon, name, gap, "", size)
	c.host.SetContent(c.handle, style.Width(c.width).MaxWidth(c.width).Render(line))
}
