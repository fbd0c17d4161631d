// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package morph

// window returns the clipped range [lo, hi] covered by a filter of
// size n centred on i, in a line of length max
func window(i, n, max int) (int, int) {
	lo := i - n/2
	hi := lo + n - 1
	if lo < 0 {
		lo = 0
	}
	if hi > max-1 {
		hi = max - 1
	}
	return lo, hi
}

// filter1d runs a min or max filter of size n over a line of pixels
// read with get and written with put. counts is scratch space of at
// least length+1.
func filter1d(length, n int, dilate bool, counts []int, get func(int) bool, put func(int, bool)) {
	counts[0] = 0
	for i := 0; i < length; i++ {
		counts[i+1] = counts[i]
		if get(i) {
			counts[i+1]++
		}
	}
	for i := 0; i < length; i++ {
		lo, hi := window(i, n, length)
		c := counts[hi+1] - counts[lo]
		if dilate {
			put(i, c > 0)
		} else {
			put(i, c == hi-lo+1)
		}
	}
}

// rectFilter applies a separable rectangular min or max filter of h
// rows by w columns
func rectFilter(b *Bitmap, h, w int, dilate bool) *Bitmap {
	cur := b.Copy()
	if w > 1 {
		next := NewBitmap(b.W, b.H)
		counts := make([]int, b.W+1)
		for y := 0; y < b.H; y++ {
			row := y * b.W
			filter1d(b.W, w, dilate, counts,
				func(x int) bool { return cur.Pix[row+x] },
				func(x int, v bool) { next.Pix[row+x] = v })
		}
		cur = next
	}
	if h > 1 {
		next := NewBitmap(b.W, b.H)
		counts := make([]int, b.H+1)
		for x := 0; x < b.W; x++ {
			col := x
			filter1d(b.H, h, dilate, counts,
				func(y int) bool { return cur.Pix[y*b.W+col] },
				func(y int, v bool) { next.Pix[y*b.W+col] = v })
		}
		cur = next
	}
	return cur
}

// Dilate sets every pixel within a rectangle of h rows by w columns
// around a set pixel. Sizes of 1 or less leave that axis alone.
func Dilate(b *Bitmap, h, w int) *Bitmap {
	return rectFilter(b, h, w, true)
}

// Erode keeps only pixels whose whole surrounding rectangle of h rows
// by w columns, clipped to the image, is set
func Erode(b *Bitmap, h, w int) *Bitmap {
	return rectFilter(b, h, w, false)
}

// Open erodes then dilates, removing anything smaller than the
// rectangle
func Open(b *Bitmap, h, w int) *Bitmap {
	return Dilate(Erode(b, h, w), h, w)
}

// Close dilates then erodes, filling gaps smaller than the rectangle
func Close(b *Bitmap, h, w int) *Bitmap {
	return Erode(Dilate(b, h, w), h, w)
}
