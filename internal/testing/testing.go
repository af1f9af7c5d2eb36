// package testing contains shared testing utilities
package testing

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wanderwise/wander/internal/models"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// TogglableProbe is a connectivity probe whose state tests flip at will.
type TogglableProbe struct {
	online atomic.Bool
}

func NewTogglableProbe(online bool) *TogglableProbe {
	p := &TogglableProbe{}
	p.online.Store(online)
	return p
}

func (p *TogglableProbe) Set(online bool) { p.online.Store(online) }
func (p *TogglableProbe) Probe() bool     { return p.online.Load() }

// MemoryGuideCache is an in-memory test double for the pin engine's cache
// dependency.
type MemoryGuideCache struct {
	mu     sync.Mutex
	Guides map[string]models.Guide
	Pins   map[string]models.Pin

	// PinErr, when set, fails every PinForOffline call.
	PinErr error
}

func NewMemoryGuideCache(guides ...models.Guide) *MemoryGuideCache {
	c := &MemoryGuideCache{
		Guides: make(map[string]models.Guide),
		Pins:   make(map[string]models.Pin),
	}
	for _, g := range guides {
		c.Guides[g.ID] = g
	}
	return c
}

func (c *MemoryGuideCache) GuideByID(id string) *models.Guide {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.Guides[id]
	if !ok {
		return nil
	}
	return &g
}

func (c *MemoryGuideCache) PinForOffline(guide models.Guide) (models.Pin, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.PinErr != nil {
		return models.Pin{}, c.PinErr
	}
	c.Guides[guide.ID] = guide
	pin := models.Pin{Guide: guide, PinnedAt: time.Now().UTC()}
	c.Pins[guide.ID] = pin
	return pin, nil
}

func (c *MemoryGuideCache) Pinned() []models.Pin {
	c.mu.Lock()
	defer c.mu.Unlock()
	pins := make([]models.Pin, 0, len(c.Pins))
	for _, p := range c.Pins {
		pins = append(pins, p)
	}
	return pins
}
