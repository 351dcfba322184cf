// Package hosttest provides an in-memory host that records every directive
// it receives, for use in tests.
package hosttest

import (
	"fmt"

	"github.com/taigrr/picklist/internal/ui/host"
	"github.com/taigrr/picklist/internal/ui/layout"
)

// Cell is the recorded state of a handle.
type Cell struct {
	Template  string
	Parent    host.Container
	Visible   bool
	Position  layout.Vec
	Destroyed bool
}

// Host is a recording implementation of [host.Renderer] and
// [host.Viewport].
type Host struct {
	Templates map[string]layout.Size
	Cells     map[host.Handle]*Cell

	View    layout.Size
	Offset  layout.Vec
	Content layout.Size

	Created   int
	Destroyed int

	next host.Handle
}

var (
	_ host.Renderer = (*Host)(nil)
	_ host.Viewport = (*Host)(nil)
)

// New returns a host with the given viewport size.
func New(view layout.Size) *Host {
	return &Host{
		Templates: make(map[string]layout.Size),
		Cells:     make(map[host.Handle]*Cell),
		View:      view,
	}
}

// AddTemplate registers a template path with its cell extent.
func (h *Host) AddTemplate(path string, extent layout.Size) *Host {
	h.Templates[path] = extent
	return h
}

// LoadTemplate implements [host.Renderer].
func (h *Host) LoadTemplate(path string) (host.Template, error) {
	extent, ok := h.Templates[path]
	if !ok {
		return host.Template{}, fmt.Errorf("template %q not found", path)
	}
	return host.Template{Path: path, Extent: extent}, nil
}

// CreateCell implements [host.Renderer].
func (h *Host) CreateCell(t host.Template) host.Handle {
	h.next++
	h.Created++
	h.Cells[h.next] = &Cell{Template: t.Path, Visible: true}
	return h.next
}

// DestroyCell implements [host.Renderer].
func (h *Host) DestroyCell(handle host.Handle) {
	c := h.cell(handle)
	c.Destroyed = true
	c.Visible = false
	h.Destroyed++
}

// SetParent implements [host.Renderer].
func (h *Host) SetParent(handle host.Handle, parent host.Container) {
	h.cell(handle).Parent = parent
}

// SetVisible implements [host.Renderer].
func (h *Host) SetVisible(handle host.Handle, visible bool) {
	h.cell(handle).Visible = visible
}

// SetPosition implements [host.Renderer].
func (h *Host) SetPosition(handle host.Handle, p layout.Vec) {
	h.cell(handle).Position = p
}

// ViewportExtent implements [host.Viewport].
func (h *Host) ViewportExtent() layout.Size { return h.View }

// ContentOffset implements [host.Viewport].
func (h *Host) ContentOffset() layout.Vec { return h.Offset }

// SetContentOffset implements [host.Viewport].
func (h *Host) SetContentOffset(p layout.Vec) { h.Offset = p }

// SetContentExtent implements [host.Viewport].
func (h *Host) SetContentExtent(s layout.Size) { h.Content = s }

// ContentExtent implements [host.Viewport].
func (h *Host) ContentExtent() layout.Size { return h.Content }

// Live returns the handles that are shown on the content surface.
func (h *Host) Live() []host.Handle {
	var live []host.Handle
	for handle, c := range h.Cells {
		if !c.Destroyed && c.Visible && c.Parent == host.ContainerContent {
			live = append(live, handle)
		}
	}
	return live
}

// cell panics on unknown or destroyed handles so tests catch use after
// destroy.
func (h *Host) cell(handle host.Handle) *Cell {
	c, ok := h.Cells[handle]
	if !ok {
		panic(fmt.Sprintf("hosttest: unknown handle %d", handle))
	}
	if c.Destroyed {
		panic(fmt.Sprintf("hosttest: handle %d used after destroy", handle))
	}
	return c
}
