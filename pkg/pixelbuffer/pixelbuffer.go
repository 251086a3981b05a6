// Package pixelbuffer holds the flat, bounds-checked RGB grid that backs a
// render. A PixelBuffer is shared across worker goroutines during a render;
// see the package doc on PixelBuffer for the concurrency contract.
package pixelbuffer

import (
	"github.com/brightlane/pathtracer/pkg/rendererr"
	"github.com/brightlane/pathtracer/pkg/vecmath"
)

// PixelBuffer is a W x H grid of linear-light RGB samples, stored as a flat
// contiguous slice indexed by raster coordinates (x, y) with y growing
// downward.
//
// Safe for concurrent use PROVIDED distinct callers never write the same
// (x, y): the stripe scheduler in pkg/dispatch guarantees that partition, so
// WritePixel performs no locking of its own. Reading a pixel that a
// concurrent writer might still be touching is the caller's responsibility
// to avoid (the dispatcher never reads mid-render).
type PixelBuffer struct {
	width, height int
	pixels        []vecmath.Vec3
}

// New creates a PixelBuffer of the given dimensions, initialized to black.
func New(width, height int) *PixelBuffer {
	return &PixelBuffer{
		width:  width,
		height: height,
		pixels: make([]vecmath.Vec3, width*height),
	}
}

// Width returns the buffer's width in pixels.
func (b *PixelBuffer) Width() int { return b.width }

// Height returns the buffer's height in pixels.
func (b *PixelBuffer) Height() int { return b.height }

func (b *PixelBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *PixelBuffer) index(x, y int) int {
	return y*b.width + x
}

// WritePixel stores a sample at raster coordinate (x, y). Returns a
// BoundsError if the coordinate is out of range.
func (b *PixelBuffer) WritePixel(x, y int, value vecmath.Vec3) error {
	if !b.inBounds(x, y) {
		return rendererr.NewBoundsError(x, y, b.width, b.height)
	}
	b.pixels[b.index(x, y)] = value
	return nil
}

// At returns the sample at raster coordinate (x, y). Returns a BoundsError
// if the coordinate is out of range.
func (b *PixelBuffer) At(x, y int) (vecmath.Vec3, error) {
	if !b.inBounds(x, y) {
		return vecmath.Vec3{}, rendererr.NewBoundsError(x, y, b.width, b.height)
	}
	return b.pixels[b.index(x, y)], nil
}

// Fill sets every pixel to the given value.
func (b *PixelBuffer) Fill(value vecmath.Vec3) {
	for i := range b.pixels {
		b.pixels[i] = value
	}
}

// ForEach applies fn to every pixel in raster order, replacing each sample
// with fn's return value. It takes no lock of its own.
func (b *PixelBuffer) ForEach(fn func(x, y int, c vecmath.Vec3) vecmath.Vec3) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			idx := b.index(x, y)
			b.pixels[idx] = fn(x, y, b.pixels[idx])
		}
	}
}
