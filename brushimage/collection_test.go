package brushimage

import (
	"fmt"
	"image"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tip(name string) Brush {
	return Brush{Name: name, Image: image.NewRGBA(image.Rect(0, 0, 2, 2))}
}

func TestCollection(t *testing.T) {
	c := NewCollection()
	c.Add(tip("b"), tip("a"), Brush{Name: "nil"})

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"a", "b"}, c.Names())

	img, ok := c.Brush("a")
	require.True(t, ok)
	assert.NotNil(t, img)

	img, ok = c.Brush("missing")
	assert.False(t, ok)
	assert.Nil(t, img, "missing brush must be an untyped nil")

	replacement := tip("a")
	c.Add(replacement)
	img, _ = c.Brush("a")
	assert.Same(t, replacement.Image, img)

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.Equal(t, []string{"b"}, c.Names())
}

func TestCollectionConcurrent(t *testing.T) {
	c := NewCollection()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				name := fmt.Sprintf("%d-%d", i, j)
				c.Add(tip(name))
				_, _ = c.Brush(name)
				_ = c.Names()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 400, c.Len())
}
