// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package morph

import (
	"image"
	"sort"
)

// Dim0 is the height of a box
func Dim0(r image.Rectangle) float64 {
	return float64(r.Dy())
}

// Dim1 is the width of a box
func Dim1(r image.Rectangle) float64 {
	return float64(r.Dx())
}

// Aspect is the height of a box divided by its width
func Aspect(r image.Rectangle) float64 {
	return float64(r.Dy()) / float64(r.Dx())
}

// Area is the number of pixels in a box
func Area(r image.Rectangle) float64 {
	return float64(r.Dx() * r.Dy())
}

// SelectRegions keeps the components of b whose box scores more than
// min, keeping at most nbest of the highest scoring. Equal scores are
// ranked by the order the components were found in.
func SelectRegions(b *Bitmap, score func(image.Rectangle) float64, min float64, nbest int) *Bitmap {
	labels, n := Label(b)
	objs := labels.Objects()
	scores := make([]float64, n)
	idx := make([]int, n)
	for i, o := range objs {
		scores[i] = score(o)
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return scores[idx[i]] > scores[idx[j]] })

	keep := make([]bool, n+1)
	for i, o := range idx {
		if i >= nbest {
			break
		}
		if scores[o] <= min {
			continue
		}
		keep[o+1] = true
	}

	out := NewBitmap(b.W, b.H)
	for i, v := range labels.Pix {
		out.Pix[i] = keep[v]
	}
	return out
}

// FilterRegions keeps the components of b for which keep returns true
func FilterRegions(b *Bitmap, keep func(r image.Rectangle) bool) *Bitmap {
	labels, n := Label(b)
	objs := labels.Objects()
	ok := make([]bool, n+1)
	for i, o := range objs {
		ok[i+1] = keep(o)
	}
	out := NewBitmap(b.W, b.H)
	for i, v := range labels.Pix {
		out.Pix[i] = ok[v]
	}
	return out
}

// RemoveNoise clears components with fewer than minsize pixels
func RemoveNoise(b *Bitmap, minsize int) *Bitmap {
	if minsize <= 0 {
		return b.Copy()
	}
	labels, _ := Label(b)
	sizes := labels.Sizes()
	out := NewBitmap(b.W, b.H)
	for i, v := range labels.Pix {
		out.Pix[i] = v != 0 && sizes[v] >= minsize
	}
	return out
}
