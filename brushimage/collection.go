package brushimage

import (
	"image"
	"slices"
	"sync"

	"github.com/gogpu/brush"
)

var _ brush.BrushSource = (*Collection)(nil)

// Collection is a named set of brush tips. It is safe for concurrent use.
// Stored images are never modified, so a tip returned by Brush may be
// shared freely.
type Collection struct {
	mu      sync.RWMutex
	brushes map[string]*image.RGBA
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{brushes: make(map[string]*image.RGBA)}
}

// Brush implements brush.BrushSource.
func (c *Collection) Brush(name string) (image.Image, bool) {
	c.mu.RLock()
	img, ok := c.brushes[name]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return img, true
}

// Add stores brushes, replacing any with the same name.
// Brushes without an image are ignored.
func (c *Collection) Add(brushes ...Brush) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range brushes {
		if b.Image != nil {
			c.brushes[b.Name] = b.Image
		}
	}
}

// Remove deletes the named brush and reports whether it existed.
func (c *Collection) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.brushes[name]
	delete(c.brushes, name)
	return ok
}

// Names returns the brush names in sorted order.
func (c *Collection) Names() []string {
	c.mu.RLock()
	names := make([]string, 0, len(c.brushes))
	for name := range c.brushes {
		names = append(names, name)
	}
	c.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Len returns the number of brushes.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.brushes)
}
