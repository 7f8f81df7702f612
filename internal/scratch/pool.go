// Package scratch provides reusable RGBA buffers for stamp rendering.
package scratch

import (
	"image"
	"math/bits"
	"sync"
)

// Pool is a thread-safe pool of *image.RGBA scratch buffers.
//
// Buffers are grouped by the power-of-two size class of their pixel storage,
// so stamps whose size varies from one placement to the next still reuse
// memory.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]uint8
	maxSize int // max buffers per bucket
}

// NewPool creates a pool that keeps at most maxPerBucket buffers per size
// class. A maxPerBucket of 0 or less means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]uint8),
		maxSize: maxPerBucket,
	}
}

// sizeClass returns the exponent of the smallest power of two >= n.
func sizeClass(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// Get returns a cleared buffer with bounds (0, 0, width, height).
// Non-positive dimensions yield nil.
func (p *Pool) Get(width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return nil
	}
	n := width * height * 4
	class := sizeClass(n)

	var pix []uint8
	p.mu.Lock()
	if bucket := p.buckets[class]; len(bucket) > 0 {
		pix = bucket[len(bucket)-1]
		p.buckets[class] = bucket[:len(bucket)-1]
	}
	p.mu.Unlock()

	if pix == nil {
		pix = make([]uint8, n, 1<<class)
	} else {
		pix = pix[:n]
		clear(pix)
	}
	return &image.RGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
}

// Put returns a buffer to the pool. Buffers not obtained from Get, or
// arriving when their bucket is full, are dropped.
func (p *Pool) Put(img *image.RGBA) {
	if img == nil || cap(img.Pix) == 0 {
		return
	}
	c := cap(img.Pix)
	if c&(c-1) != 0 {
		return
	}
	class := sizeClass(c)

	p.mu.Lock()
	defer p.mu.Unlock()
	bucket := p.buckets[class]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[class] = append(bucket, img.Pix[:0])
}
