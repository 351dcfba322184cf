// Package pool keeps detached cell handles around for reuse so scrolling
// does not churn host objects.
package pool

import (
	"log/slog"

	"github.com/taigrr/picklist/internal/ui/host"
)

// Pool is a LIFO store of detached handles. A handle is either in the pool
// or owned by exactly one caller, never both.
type Pool struct {
	renderer host.Renderer
	template host.Template

	stack  []host.Handle
	pooled map[host.Handle]struct{}
}

// New creates a pool that instantiates cells through r.
func New(r host.Renderer) *Pool {
	return &Pool{
		renderer: r,
		pooled:   make(map[host.Handle]struct{}),
	}
}

// SetTemplate sets the template used for new handles.
func (p *Pool) SetTemplate(t host.Template) {
	p.template = t
}

// Template returns the current template.
func (p *Pool) Template() host.Template {
	return p.template
}

// Len returns the number of pooled handles.
func (p *Pool) Len() int {
	return len(p.stack)
}

// Acquire pops a pooled handle, or creates one from the template when the
// pool is empty, and attaches it to the content surface as shown.
func (p *Pool) Acquire() host.Handle {
	var h host.Handle
	if n := len(p.stack); n > 0 {
		h = p.stack[n-1]
		p.stack = p.stack[:n-1]
		delete(p.pooled, h)
	} else {
		h = p.renderer.CreateCell(p.template)
	}

	p.renderer.SetParent(h, host.ContainerContent)
	p.renderer.SetVisible(h, true)
	return h
}

// Release pushes h back into the pool, detaching it and hiding it.
// Releasing [host.NoHandle] is a no-op. Releasing an already pooled handle is
// ignored.
func (p *Pool) Release(h host.Handle) {
	if h == host.NoHandle {
		return
	}
	if _, ok := p.pooled[h]; ok {
		slog.Warn("Handle released twice", "handle", h)
		return
	}

	p.stack = append(p.stack, h)
	p.pooled[h] = struct{}{}
	p.renderer.SetParent(h, host.ContainerInactive)
	p.renderer.SetVisible(h, false)
}

// Clear destroys every pooled handle.
func (p *Pool) Clear() {
	for _, h := range p.stack {
		p.renderer.DestroyCell(h)
	}
	p.stack = p.stack[:0]
	clear(p.pooled)
}
