// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// Package filters contains smoothing, derivative and rank filters which
// operate on rasters of float values.
package filters

import (
	"image"
	"math"

	"rescribe.xyz/pageseg/morph"
)

// Grid is a raster of float values, stored in row order
type Grid struct {
	W, H int
	Pix  []float64
}

// NewGrid creates a zeroed Grid
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, Pix: make([]float64, w*h)}
}

// FromBitmap creates a Grid which is 1 where b is set and 0 elsewhere
func FromBitmap(b *morph.Bitmap) *Grid {
	g := NewGrid(b.W, b.H)
	for i, v := range b.Pix {
		if v {
			g.Pix[i] = 1
		}
	}
	return g
}

// FromGray creates a Grid of the values of a grey image scaled to
// the range 0 to 1
func FromGray(img *image.Gray) *Grid {
	b := img.Bounds()
	g := NewGrid(b.Dx(), b.Dy())
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			g.Pix[y*g.W+x] = float64(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y) / 255
		}
	}
	return g
}

// Gray converts a Grid to a grey image, mapping 0 to black and 1 to
// white, clamping anything outside that range
func (g *Grid) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.W, g.H))
	for i, v := range g.Pix {
		v = math.Max(0, math.Min(1, v))
		img.Pix[i] = uint8(math.Round(v * 255))
	}
	return img
}

// At returns the value at x, y
func (g *Grid) At(x, y int) float64 {
	return g.Pix[y*g.W+x]
}

// Copy returns a copy of the Grid
func (g *Grid) Copy() *Grid {
	c := NewGrid(g.W, g.H)
	copy(c.Pix, g.Pix)
	return c
}

// Max returns the largest value in the Grid, or 0 for an empty Grid
func (g *Grid) Max() float64 {
	if len(g.Pix) == 0 {
		return 0
	}
	m := g.Pix[0]
	for _, v := range g.Pix[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Map returns a new Grid with f applied to every value
func (g *Grid) Map(f func(float64) float64) *Grid {
	out := NewGrid(g.W, g.H)
	for i, v := range g.Pix {
		out.Pix[i] = f(v)
	}
	return out
}

// Mul returns a new Grid with every value outside of b set to 0
func (g *Grid) Mul(b *morph.Bitmap) *Grid {
	out := NewGrid(g.W, g.H)
	for i, v := range g.Pix {
		if b.Pix[i] {
			out.Pix[i] = v
		}
	}
	return out
}

// NormMax divides every value by the largest value. A Grid whose
// largest value is not positive is returned unchanged.
func (g *Grid) NormMax() *Grid {
	m := g.Max()
	if m <= 0 {
		return g.Copy()
	}
	return g.Map(func(v float64) float64 { return v / m })
}

// Greater returns a Bitmap set wherever the value is more than t
func (g *Grid) Greater(t float64) *morph.Bitmap {
	b := morph.NewBitmap(g.W, g.H)
	for i, v := range g.Pix {
		b.Pix[i] = v > t
	}
	return b
}

// Less returns a Bitmap set wherever the value is less than t
func (g *Grid) Less(t float64) *morph.Bitmap {
	b := morph.NewBitmap(g.W, g.H)
	for i, v := range g.Pix {
		b.Pix[i] = v < t
	}
	return b
}
