package fleet

import (
	"context"
	"sync"

	"sustainabot/src/model"
)

// Context is an in-process shared context holding findings in append order
type Context struct {
	mu       sync.Mutex
	findings []model.Finding
}

// NewContext creates an empty shared context
func NewContext() *Context {
	return &Context{}
}

// AddFinding appends a finding
func (c *Context) AddFinding(_ context.Context, f model.Finding) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.findings = append(c.findings, f)
	return nil
}

// Findings returns a copy of the findings in append order
func (c *Context) Findings() []model.Finding {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Finding, len(c.findings))
	copy(out, c.findings)
	return out
}

// FindingsBy returns findings produced by the given bot
func (c *Context) FindingsBy(bot model.BotID) []model.Finding {
	var out []model.Finding
	for _, f := range c.Findings() {
		if f.Bot == bot {
			out = append(out, f)
		}
	}
	return out
}
