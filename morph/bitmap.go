// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// Package morph contains the binary morphology and connected
// component operations used for page segmentation: labeling,
// rectangular dilation and erosion, region selection, and label
// propagation and spreading.
package morph

import (
	"image"
	"image/color"
)

// Bitmap is a binary raster stored row-major, with true for set
// (ink) pixels.
type Bitmap struct {
	W, H int
	Pix  []bool
}

// NewBitmap creates an empty Bitmap of the given size
func NewBitmap(w, h int) *Bitmap {
	return &Bitmap{W: w, H: h, Pix: make([]bool, w*h)}
}

// FromGray creates a Bitmap which is set wherever the grey value
// is darker than thresh
func FromGray(img *image.Gray, thresh uint8) *Bitmap {
	r := img.Bounds()
	b := NewBitmap(r.Dx(), r.Dy())
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			b.Pix[y*b.W+x] = img.GrayAt(r.Min.X+x, r.Min.Y+y).Y < thresh
		}
	}
	return b
}

// Gray renders the Bitmap as black set pixels on a white background
func (b *Bitmap) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.W, b.H))
	for i, v := range b.Pix {
		if v {
			img.Pix[i] = 0
		} else {
			img.Pix[i] = 255
		}
	}
	return img
}

// Mask renders the Bitmap with set pixels white, which is the usual
// way to view intermediate masks
func (b *Bitmap) Mask() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.W, b.H))
	for i, v := range b.Pix {
		if v {
			img.SetGray(i%b.W, i/b.W, color.Gray{255})
		}
	}
	return img
}

func (b *Bitmap) At(x, y int) bool {
	return b.Pix[y*b.W+x]
}

func (b *Bitmap) Set(x, y int, v bool) {
	b.Pix[y*b.W+x] = v
}

// Copy returns a deep copy of the Bitmap
func (b *Bitmap) Copy() *Bitmap {
	n := NewBitmap(b.W, b.H)
	copy(n.Pix, b.Pix)
	return n
}

// Count returns the number of set pixels
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.Pix {
		if v {
			n++
		}
	}
	return n
}

// Equal reports whether two Bitmaps have the same size and pixels
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b.W != o.W || b.H != o.H {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// And returns the intersection of two same sized Bitmaps
func (b *Bitmap) And(o *Bitmap) *Bitmap {
	n := NewBitmap(b.W, b.H)
	for i := range b.Pix {
		n.Pix[i] = b.Pix[i] && o.Pix[i]
	}
	return n
}

// AndNot returns the pixels of b which are not set in o
func (b *Bitmap) AndNot(o *Bitmap) *Bitmap {
	n := NewBitmap(b.W, b.H)
	for i := range b.Pix {
		n.Pix[i] = b.Pix[i] && !o.Pix[i]
	}
	return n
}

// Or returns the union of two same sized Bitmaps
func (b *Bitmap) Or(o *Bitmap) *Bitmap {
	n := NewBitmap(b.W, b.H)
	for i := range b.Pix {
		n.Pix[i] = b.Pix[i] || o.Pix[i]
	}
	return n
}

// Not returns the inverse of the Bitmap
func (b *Bitmap) Not() *Bitmap {
	n := NewBitmap(b.W, b.H)
	for i := range b.Pix {
		n.Pix[i] = !b.Pix[i]
	}
	return n
}

// FillRect sets every pixel of r, clipped to the Bitmap, to v
func (b *Bitmap) FillRect(r image.Rectangle, v bool) {
	r = r.Intersect(image.Rect(0, 0, b.W, b.H))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.Pix[y*b.W+x] = v
		}
	}
}

// CountRect returns the number of set pixels in r, clipped to the
// Bitmap
func (b *Bitmap) CountRect(r image.Rectangle) int {
	r = r.Intersect(image.Rect(0, 0, b.W, b.H))
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if b.Pix[y*b.W+x] {
				n++
			}
		}
	}
	return n
}

// Pad returns a copy of the Bitmap with n unset pixels added on
// every side
func (b *Bitmap) Pad(n int) *Bitmap {
	p := NewBitmap(b.W+2*n, b.H+2*n)
	for y := 0; y < b.H; y++ {
		copy(p.Pix[(y+n)*p.W+n:(y+n)*p.W+n+b.W], b.Pix[y*b.W:(y+1)*b.W])
	}
	return p
}
