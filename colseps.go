// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"image"
	"math"

	"rescribe.xyz/pageseg/filters"
	"rescribe.xyz/pageseg/morph"
)

// Gaps in separators, in pixels, which are filled along each row and
// down each column
const (
	sepRowGap = 50
	sepColGap = 400
)

// ComputeSeparatorsMorph finds black vertical rules, such as those
// printed between columns
func ComputeSeparatorsMorph(ink *morph.Bitmap, scale float64, conf *Config) *morph.Bitmap {
	d0 := int(math.Max(5, scale/4))
	d1 := int(math.Max(5, scale)) + conf.SepWiden
	thick := morph.Dilate(ink, d0, d1)
	vert := morph.Open(thick, int(10*scale), 1)
	vert = morph.Erode(vert, d0/2, conf.SepWiden)
	vert = morph.SelectRegions(vert, morph.Dim1, 3, 2*conf.MaxSeps)
	return morph.SelectRegions(vert, morph.Dim0, 20*scale, conf.MaxSeps)
}

// ComputeColsepsConv finds column separators from vertical strips of
// whitespace which lie next to the left edge of a block of text
func ComputeColsepsConv(ink *morph.Bitmap, scale float64, conf *Config) *morph.Bitmap {
	return computeColsepsConv(ink, scale, conf, nil)
}

func computeColsepsConv(ink *morph.Bitmap, scale float64, conf *Config, dbg *debugger) *morph.Bitmap {
	g := filters.FromBitmap(ink)

	density := filters.Gaussian(g, scale, scale/2, 0, 0)
	density = filters.Uniform(density, int(5*scale), 1)
	whitespace := density.Less(0.1 * density.Max())
	dbg.saveBitmap("colwsseps", whitespace)

	grad := filters.Gaussian(g, scale, scale/2, 0, 1)
	grad = filters.Uniform(grad, int(10*scale), 1)
	edges := grad.Greater(0.25 * grad.Max())
	edges = morph.SelectRegions(edges, morph.Dim0, conf.CsMinHeight*scale, conf.MaxColSeps+10)
	dbg.saveBitmap("colgrad", edges)

	seps := whitespace.And(morph.Dilate(edges, int(scale), int(5*scale)))
	seps = morph.Dilate(seps, int(2*scale), 1)
	seps.CloseRowGaps(sepRowGap)
	seps.CloseColGaps(sepColGap)
	dbg.saveBitmap("colseps_candidates", seps)

	seps = morph.FilterRegions(seps, func(r image.Rectangle) bool {
		return morph.Aspect(r) > conf.CsMinAspect && inkBeside(ink, r)
	})
	return morph.SelectRegions(seps, morph.Dim0, conf.CsMinHeight*scale, conf.MaxColSeps)
}

// inkBeside reports whether there is ink both to the left and to the
// right of r, within the rows it spans. Whitespace at the margin of a
// page has ink on one side only.
func inkBeside(ink *morph.Bitmap, r image.Rectangle) bool {
	left := image.Rect(0, r.Min.Y, r.Min.X, r.Max.Y)
	right := image.Rect(r.Max.X, r.Min.Y, ink.W, r.Max.Y)
	return ink.CountRect(left) > 0 && ink.CountRect(right) > 0
}

// ComputeColseps finds the column separators of a page. If black
// separators are enabled, they are included in the separators and
// removed from the ink, which is returned.
func ComputeColseps(ink *morph.Bitmap, scale float64, conf *Config) (*morph.Bitmap, *morph.Bitmap) {
	return computeColseps(ink, scale, conf, nil)
}

func computeColseps(ink *morph.Bitmap, scale float64, conf *Config, dbg *debugger) (*morph.Bitmap, *morph.Bitmap) {
	colseps := computeColsepsConv(ink, scale, conf, dbg)
	if conf.BlackSeps {
		seps := ComputeSeparatorsMorph(ink, scale, conf)
		dbg.saveBitmap("sepwiden", seps)
		colseps = colseps.Or(seps)
		ink = ink.AndNot(seps)
	}
	dbg.saveBitmap("colseps", colseps)
	return colseps, ink
}
