// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package morph

import (
	"image"
	"image/color"
)

// Labels is a raster of non-negative integer labels stored row-major.
// 0 is the background.
type Labels struct {
	W, H int
	Pix  []int
}

// NewLabels creates an empty Labels raster of the given size
func NewLabels(w, h int) *Labels {
	return &Labels{W: w, H: h, Pix: make([]int, w*h)}
}

func (l *Labels) At(x, y int) int {
	return l.Pix[y*l.W+x]
}

func (l *Labels) Set(x, y int, v int) {
	l.Pix[y*l.W+x] = v
}

// Max returns the highest label present
func (l *Labels) Max() int {
	m := 0
	for _, v := range l.Pix {
		if v > m {
			m = v
		}
	}
	return m
}

// Objects returns the bounding box of each label. The box for label
// n is at index n-1; labels which are not present get an empty
// rectangle.
func (l *Labels) Objects() []image.Rectangle {
	n := l.Max()
	objs := make([]image.Rectangle, n)
	seen := make([]bool, n)
	for y := 0; y < l.H; y++ {
		for x := 0; x < l.W; x++ {
			v := l.Pix[y*l.W+x]
			if v == 0 {
				continue
			}
			i := v - 1
			if !seen[i] {
				seen[i] = true
				objs[i] = image.Rect(x, y, x+1, y+1)
				continue
			}
			o := &objs[i]
			if x < o.Min.X {
				o.Min.X = x
			}
			if x >= o.Max.X {
				o.Max.X = x + 1
			}
			if y >= o.Max.Y {
				o.Max.Y = y + 1
			}
		}
	}
	return objs
}

// Sizes returns the number of pixels with each label, indexed by
// label (so index 0 counts the background)
func (l *Labels) Sizes() []int {
	sizes := make([]int, l.Max()+1)
	for _, v := range l.Pix {
		sizes[v]++
	}
	return sizes
}

// Mask returns a Bitmap the size of r which is set where the label
// in r equals label
func (l *Labels) Mask(label int, r image.Rectangle) *Bitmap {
	m := NewBitmap(r.Dx(), r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if l.Pix[y*l.W+x] == label {
				m.Pix[(y-r.Min.Y)*m.W+(x-r.Min.X)] = true
			}
		}
	}
	return m
}

// Renumber returns a new Labels with every label v replaced by m[v]
func (l *Labels) Renumber(m []int) *Labels {
	n := NewLabels(l.W, l.H)
	for i, v := range l.Pix {
		n.Pix[i] = m[v]
	}
	return n
}

// Mul returns the labels only where b is set
func (l *Labels) Mul(b *Bitmap) *Labels {
	n := NewLabels(l.W, l.H)
	for i, v := range l.Pix {
		if b.Pix[i] {
			n.Pix[i] = v
		}
	}
	return n
}

// RGBA encodes the labels as 24 bit colours, with red holding the
// highest byte, as used for page segmentation files
func (l *Labels) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, l.W, l.H))
	for i, v := range l.Pix {
		img.SetRGBA(i%l.W, i/l.W, color.RGBA{
			R: uint8(v >> 16 & 0xff),
			G: uint8(v >> 8 & 0xff),
			B: uint8(v & 0xff),
			A: 0xff,
		})
	}
	return img
}

// Label finds the 4-connected components of a Bitmap. Components are
// numbered from 1 in the raster order of their first pixel. The
// number of components is returned alongside the labels.
func Label(b *Bitmap) (*Labels, int) {
	l := NewLabels(b.W, b.H)
	n := 0
	var stack []int
	for start, v := range b.Pix {
		if !v || l.Pix[start] != 0 {
			continue
		}
		n++
		l.Pix[start] = n
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%b.W, i/b.W
			if x > 0 && b.Pix[i-1] && l.Pix[i-1] == 0 {
				l.Pix[i-1] = n
				stack = append(stack, i-1)
			}
			if x < b.W-1 && b.Pix[i+1] && l.Pix[i+1] == 0 {
				l.Pix[i+1] = n
				stack = append(stack, i+1)
			}
			if y > 0 && b.Pix[i-b.W] && l.Pix[i-b.W] == 0 {
				l.Pix[i-b.W] = n
				stack = append(stack, i-b.W)
			}
			if y < b.H-1 && b.Pix[i+b.W] && l.Pix[i+b.W] == 0 {
				l.Pix[i+b.W] = n
				stack = append(stack, i+b.W)
			}
		}
	}
	return l, n
}
