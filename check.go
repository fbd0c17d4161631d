// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"fmt"

	"rescribe.xyz/pageseg/morph"
)

const (
	minPageSize = 600
	maxPageSize = 10000
	minComps    = 10
	// compSlot is the area, in pixels, of the smallest reasonable
	// component
	compSlot = 30 * 30
)

// CheckPage returns an *InputShapeError if a binarized page is
// unlikely to be a page of text, or nil if it looks fine
func CheckPage(ink *morph.Bitmap) error {
	w, h := ink.W, ink.H
	if ink.Count()*2 > w*h {
		return &InputShapeError{"image may be inverted"}
	}
	if h < minPageSize {
		return &InputShapeError{fmt.Sprintf("image not tall enough for a page image (%dx%d)", w, h)}
	}
	if h > maxPageSize {
		return &InputShapeError{fmt.Sprintf("image too tall for a page image (%dx%d)", w, h)}
	}
	if w < minPageSize {
		return &InputShapeError{fmt.Sprintf("image too narrow for a page image (%dx%d)", w, h)}
	}
	if w > maxPageSize {
		return &InputShapeError{fmt.Sprintf("image too wide for a page image (%dx%d)", w, h)}
	}

	slots := w * h / compSlot
	_, n := morph.Label(ink)
	if n < minComps {
		return &InputShapeError{fmt.Sprintf("too few connected components for a page image (got %d)", n)}
	}
	if n > slots {
		return &InputShapeError{fmt.Sprintf("too many connected components for a page image (%d > %d)", n, slots)}
	}
	return nil
}
