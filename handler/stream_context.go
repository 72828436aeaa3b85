package handler

import (
	"sync"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// StreamContext sends patches over an open SSE response. It is safe for
// concurrent use, so delayed tasks may write while the handler still runs.
type StreamContext interface {
	Context

	SendComponent(component templ.Component, opts ...TemplOption) error
	SendMultiple(patches ...TemplPatch) error
	// Remove deletes the elements matching selector.
	Remove(selector string) error
	ExecuteScript(script string) error
	Redirect(url string) error
}

type streamContext struct {
	Context
	mu  sync.Mutex
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendComponent(component templ.Component, opts ...TemplOption) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sse.PatchElementTempl(component, opts...)
}

func (c *streamContext) SendMultiple(patches ...TemplPatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range patches {
		if err := c.sse.PatchElementTempl(p.Component, p.Options...); err != nil {
			return err
		}
	}
	return nil
}

func (c *streamContext) Remove(selector string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sse.PatchElements("", datastar.WithSelector(selector), datastar.WithMode(datastar.ElementPatchModeRemove))
}

func (c *streamContext) ExecuteScript(script string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sse.ExecuteScript(script)
}

func (c *streamContext) Redirect(url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sse.Redirect(url)
}
