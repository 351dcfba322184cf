// Package termhost hosts list cells on a terminal screen. Cells are plain
// strings positioned in content space and drawn through ultraviolet, one
// line at a time, clipped to the viewport.
package termhost

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/exp/ordered"
	"github.com/taigrr/picklist/internal/ui/host"
	"github.com/taigrr/picklist/internal/ui/layout"
)

// ErrUnknownTemplate is returned when loading a template that was never
// registered.
var ErrUnknownTemplate = errors.New("unknown template")

type cell struct {
	template string
	parent   host.Container
	visible  bool
	pos      layout.Vec
	content  string
}

func (c *cell) live() bool {
	return c.visible && c.parent == host.ContainerContent
}

// Host is a terminal [host.Renderer] and [host.Viewport]. Extents are in
// terminal cells.
type Host struct {
	templates map[string]layout.Size
	cells     map[host.Handle]*cell
	next      host.Handle

	view    layout.Size
	offset  layout.Vec
	content layout.Size
}

var (
	_ host.Renderer = (*Host)(nil)
	_ host.Viewport = (*Host)(nil)
)

// New returns an empty host.
func New() *Host {
	return &Host{
		templates: make(map[string]layout.Size),
		cells:     make(map[host.Handle]*cell),
	}
}

// Register makes a template loadable under path with the given cell size.
func (h *Host) Register(path string, width, height int) {
	h.templates[path] = layout.Size{W: float64(width), H: float64(height)}
}

// SetViewport resizes the viewport.
func (h *Host) SetViewport(width, height int) {
	h.view = layout.Size{W: float64(width), H: float64(height)}
}

// LoadTemplate implements [host.Renderer].
func (h *Host) LoadTemplate(path string) (host.Template, error) {
	size, ok := h.templates[path]
	if !ok {
		return host.Template{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, path)
	}
	return host.Template{Path: path, Extent: size}, nil
}

// CreateCell implements [host.Renderer].
func (h *Host) CreateCell(t host.Template) host.Handle {
	h.next++
	h.cells[h.next] = &cell{template: t.Path, visible: true}
	return h.next
}

// DestroyCell implements [host.Renderer].
func (h *Host) DestroyCell(handle host.Handle) {
	delete(h.cells, handle)
}

// SetParent implements [host.Renderer].
func (h *Host) SetParent(handle host.Handle, parent host.Container) {
	if c, ok := h.cells[handle]; ok {
		c.parent = parent
	}
}

// SetVisible implements [host.Renderer].
func (h *Host) SetVisible(handle host.Handle, visible bool) {
	if c, ok := h.cells[handle]; ok {
		c.visible = visible
	}
}

// SetPosition implements [host.Renderer].
func (h *Host) SetPosition(handle host.Handle, p layout.Vec) {
	if c, ok := h.cells[handle]; ok {
		c.pos = p
	}
}

// SetContent sets the rendered string of a cell.
func (h *Host) SetContent(handle host.Handle, s string) {
	if c, ok := h.cells[handle]; ok {
		c.content = s
	}
}

// Content returns the rendered string of a cell.
func (h *Host) Content(handle host.Handle) string {
	if c, ok := h.cells[handle]; ok {
		return c.content
	}
	return ""
}

// Len returns the number of cells the host owns, pooled ones included.
func (h *Host) Len() int {
	return len(h.cells)
}

// ViewportExtent implements [host.Viewport].
func (h *Host) ViewportExtent() layout.Size { return h.view }

// ContentOffset implements [host.Viewport].
func (h *Host) ContentOffset() layout.Vec { return h.offset }

// SetContentOffset implements [host.Viewport].
func (h *Host) SetContentOffset(p layout.Vec) { h.offset = p }

// SetContentExtent implements [host.Viewport].
func (h *Host) SetContentExtent(s layout.Size) { h.content = s }

// ContentExtent implements [host.Viewport].
func (h *Host) ContentExtent() layout.Size { return h.content }

// ScrollBy moves the content by delta along axis, clamped to the content
// bounds, and reports whether the offset changed. Positive deltas reveal
// later entries.
func (h *Host) ScrollBy(axis layout.Axis, delta float64) bool {
	prev := h.offset
	switch axis {
	case layout.Horizontal:
		limit := max(0, h.content.W-h.view.W)
		h.offset.X = -ordered.Clamp(-h.offset.X+delta, 0, limit)
	default:
		limit := max(0, h.content.H-h.view.H)
		h.offset.Y = ordered.Clamp(h.offset.Y+delta, 0, limit)
	}
	return h.offset != prev
}

// screenPos maps a content position to viewport coordinates.
func (h *Host) screenPos(p layout.Vec) (x, y int) {
	x = int(math.Round(p.X + h.offset.X))
	y = int(math.Round(-(p.Y + h.offset.Y)))
	return x, y
}

func (h *Host) handles() []host.Handle {
	return slices.Sorted(maps.Keys(h.cells))
}

// HitTest returns the live cell under viewport coordinates (x, y).
func (h *Host) HitTest(x, y int) (host.Handle, bool) {
	for _, handle := range h.handles() {
		c := h.cells[handle]
		if !c.live() {
			continue
		}
		size := h.templates[c.template]
		cx, cy := h.screenPos(c.pos)
		if x >= cx && x < cx+int(size.W) && y >= cy && y < cy+int(size.H) {
			return handle, true
		}
	}
	return host.NoHandle, false
}

// Draw draws every live cell that intersects the viewport into area.
func (h *Host) Draw(scr uv.Screen, area uv.Rectangle) {
	width, height := area.Dx(), area.Dy()
	for _, handle := range h.handles() {
		c := h.cells[handle]
		if !c.live() {
			continue
		}
		size := h.templates[c.template]
		cw, ch := int(size.W), int(size.H)
		x, y := h.screenPos(c.pos)

		// Skip cells entirely outside the viewport.
		if cw <= 0 || ch <= 0 || x+cw <= 0 || x >= width || y+ch <= 0 || y >= height {
			continue
		}

		tmp := uv.NewScreenBuffer(cw, ch)
		uv.NewStyledString(c.content).Draw(&tmp, uv.Rect(0, 0, cw, ch))

		buf := tmp.Buffer
		for sy := max(0, -y); sy < ch && y+sy < height; sy++ {
			if sy >= buf.Height() {
				break
			}
			line := buf.Line(sy)
			for sx := max(0, -x); sx < len(line) && x+sx < width; sx++ {
				scr.SetCell(area.Min.X+x+sx, area.Min.Y+y+sy, line.At(sx))
			}
		}
	}
}
