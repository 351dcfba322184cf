// Package host defines the contract between the list engines and the
// rendering collaborator that owns the actual visual nodes.
package host

import "github.com/taigrr/picklist/internal/ui/layout"

// Handle is an opaque, non-owning reference to a live cell owned by the
// host. The zero value means "no handle"; hosts must never hand out zero.
type Handle uint64

// NoHandle is the absent handle.
const NoHandle Handle = 0

// Container identifies where a handle is parented.
type Container uint8

// Possible Container values.
const (
	// ContainerContent is the scrollable content surface. Live cells are
	// parented here.
	ContainerContent Container = iota
	// ContainerInactive holds pooled cells that are detached but not
	// destroyed.
	ContainerInactive
)

// Template is a loaded prototype used to instantiate cells.
type Template struct {
	Path string
	// Extent is the intrinsic cell size of the template.
	Extent layout.Size
}

// Renderer creates, destroys and places cell handles.
type Renderer interface {
	// LoadTemplate loads the template at path and reports its intrinsic
	// cell extent.
	LoadTemplate(path string) (Template, error)

	// CreateCell instantiates a new cell from the template.
	CreateCell(t Template) Handle

	// DestroyCell releases the host resources of a cell. The handle is
	// invalid afterwards.
	DestroyCell(h Handle)

	// SetParent reparents a cell.
	SetParent(h Handle, c Container)

	// SetVisible toggles a cell between shown and zero-scale.
	SetVisible(h Handle, visible bool)

	// SetPosition places a cell in content coordinates (top-left pivot).
	SetPosition(h Handle, p layout.Vec)
}

// Viewport exposes the scrollable area.
type Viewport interface {
	// ViewportExtent returns the visible area size.
	ViewportExtent() layout.Size

	// ContentOffset returns the current content offset.
	ContentOffset() layout.Vec

	// SetContentOffset moves the content.
	SetContentOffset(p layout.Vec)

	// SetContentExtent resizes the scrollable content surface.
	SetContentExtent(s layout.Size)

	// ContentExtent returns the current content size.
	ContentExtent() layout.Size
}
