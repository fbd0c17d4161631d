// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"image"

	"rescribe.xyz/pageseg/morph"
)

// ExtractMasked crops a line from a page image, with pad pixels added
// around its box. Pixels outside the line's mask, dilated by an expand
// by expand square, are set to the lightest value in the crop. Parts of the
// crop beyond the edge of the page repeat the nearest edge pixel.
func ExtractMasked(img *image.Gray, line Line, pad, expand int) *image.Gray {
	b := img.Bounds()
	r := line.Bounds.Inset(-pad)
	crop := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	var lightest uint8
	for y := 0; y < r.Dy(); y++ {
		sy := clamp(r.Min.Y+y, 0, b.Dy()-1) + b.Min.Y
		for x := 0; x < r.Dx(); x++ {
			sx := clamp(r.Min.X+x, 0, b.Dx()-1) + b.Min.X
			v := img.GrayAt(sx, sy).Y
			crop.Pix[y*crop.Stride+x] = v
			if v > lightest {
				lightest = v
			}
		}
	}

	mask := line.Mask
	if pad > 0 {
		mask = mask.Pad(pad)
	}
	if expand > 0 {
		mask = morph.Dilate(mask, expand, expand)
	}
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			if !mask.At(x, y) {
				crop.Pix[y*crop.Stride+x] = lightest
			}
		}
	}
	return crop
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
