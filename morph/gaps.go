// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package morph

// CloseGaps fills, in place, every run of unset values no longer than
// maxgap which has a set value on both sides
func CloseGaps(run []bool, maxgap int) {
	last := -1
	for i, v := range run {
		if !v {
			continue
		}
		if last >= 0 && i-last-1 > 0 && i-last-1 <= maxgap {
			for j := last + 1; j < i; j++ {
				run[j] = true
			}
		}
		last = i
	}
}

// CloseRowGaps runs CloseGaps along every row
func (b *Bitmap) CloseRowGaps(maxgap int) {
	for y := 0; y < b.H; y++ {
		CloseGaps(b.Pix[y*b.W:(y+1)*b.W], maxgap)
	}
}

// CloseColGaps runs CloseGaps down every column
func (b *Bitmap) CloseColGaps(maxgap int) {
	col := make([]bool, b.H)
	for x := 0; x < b.W; x++ {
		for y := 0; y < b.H; y++ {
			col[y] = b.Pix[y*b.W+x]
		}
		CloseGaps(col, maxgap)
		for y := 0; y < b.H; y++ {
			b.Pix[y*b.W+x] = col[y]
		}
	}
}
