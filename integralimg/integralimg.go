// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// Package integralimg contains a summed area table over a raster of
// float values, which can be used to quickly find the sum or mean of
// any rectangular part of it.
package integralimg

// I is the Integral Image. It has one more row and column than the
// raster it was built from, with the first row and column zero.
type I struct {
	W, H int
	sums []float64
}

// Window is a part of an Integral Image
type Window struct {
	topleft     float64
	topright    float64
	bottomleft  float64
	bottomright float64
	width       int
	height      int
}

// ToIntegralImg creates an integral image from w*h values stored in
// row order
func ToIntegralImg(pix []float64, w, h int) I {
	i := I{W: w, H: h, sums: make([]float64, (w+1)*(h+1))}
	stride := w + 1
	for y := 0; y < h; y++ {
		var row float64
		for x := 0; x < w; x++ {
			row += pix[y*w+x]
			i.sums[(y+1)*stride+x+1] = i.sums[y*stride+x+1] + row
		}
	}
	return i
}

func (i I) at(x, y int) float64 {
	return i.sums[y*(i.W+1)+x]
}

// GetWindow gets the values of the corners of the part of an Integral
// Image starting at x, y with the given width and height, clipped to
// the image, which can be used to quickly calculate the mean of the
// area
func (i I) GetWindow(x, y, width, height int) Window {
	minx, miny := x, y
	maxx, maxy := x+width, y+height
	if minx < 0 {
		minx = 0
	}
	if miny < 0 {
		miny = 0
	}
	if minx > i.W {
		minx = i.W
	}
	if miny > i.H {
		miny = i.H
	}
	if maxx > i.W {
		maxx = i.W
	}
	if maxy > i.H {
		maxy = i.H
	}
	if maxx < minx {
		maxx = minx
	}
	if maxy < miny {
		maxy = miny
	}

	return Window{i.at(minx, miny), i.at(maxx, miny), i.at(minx, maxy), i.at(maxx, maxy), maxx - minx, maxy - miny}
}

// Sum returns the sum of all pixels in the rectangle starting at x, y
func (i I) Sum(x, y, width, height int) float64 {
	return i.GetWindow(x, y, width, height).Sum()
}

// Sum returns the sum of all pixels in a Window
func (w Window) Sum() float64 {
	return w.bottomright + w.topleft - w.topright - w.bottomleft
}

// Size returns the total size of a Window
func (w Window) Size() int {
	return w.width * w.height
}

// Mean returns the average value of pixels in a Window, or 0 for an
// empty Window
func (w Window) Mean() float64 {
	if w.Size() == 0 {
		return 0
	}
	return w.Sum() / float64(w.Size())
}

// MeanWindow calculates the mean value of a section of an Integral
// Image
func (i I) MeanWindow(x, y, width, height int) float64 {
	return i.GetWindow(x, y, width, height).Mean()
}
