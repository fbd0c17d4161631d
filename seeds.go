// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"math"
	"sort"

	"rescribe.xyz/pageseg/filters"
	"rescribe.xyz/pageseg/morph"
)

// Bounds on the size of components which are considered to be
// letters, as multiples of the scale
const (
	boxMinSize = 0.4
	boxMaxSize = 5
)

// ComputeBoxmap returns a Bitmap with the boxes of every letter sized
// component filled
func ComputeBoxmap(ink *morph.Bitmap, scale float64) *morph.Bitmap {
	labels, _ := morph.Label(ink)
	boxmap := morph.NewBitmap(ink.W, ink.H)
	for _, o := range labels.Objects() {
		if o.Empty() {
			continue
		}
		s := math.Sqrt(morph.Area(o))
		if s < boxMinSize*scale || s > boxMaxSize*scale {
			continue
		}
		boxmap.FillRect(o, true)
	}
	return boxmap
}

// ComputeGradmaps returns maps of the strength of the bottom and top
// edges of lines of text, each normalised to a maximum of 1, along
// with the box map of letter sized components they were found from
func ComputeGradmaps(ink *morph.Bitmap, scale float64, conf *Config) (*filters.Grid, *filters.Grid, *morph.Bitmap) {
	boxmap := ComputeBoxmap(ink, scale)
	cleaned := filters.FromBitmap(boxmap.And(ink))

	var grad *filters.Grid
	if conf.UseGauss {
		grad = filters.Gaussian(cleaned, conf.VScale*0.3*scale, conf.HScale*6*scale, 1, 0)
	} else {
		grad = filters.Gaussian(cleaned, math.Max(4, conf.VScale*0.3*scale), conf.HScale*scale, 1, 0)
		grad = filters.Uniform(grad, int(conf.VScale), int(conf.HScale*6*scale))
	}

	bottom := grad.Map(func(v float64) float64 { return math.Max(-v, 0) }).NormMax()
	top := grad.Map(func(v float64) float64 { return math.Max(v, 0) }).NormMax()
	return bottom, top, boxmap
}

// markers returns the pixels of g which are the largest within vrange
// rows, grown slightly, where g is more than thresh and outside of the
// separators
func markers(g *filters.Grid, vrange int, thresh float64, colseps *morph.Bitmap) *morph.Bitmap {
	localmax := filters.MaxFilter(g, vrange, 1)
	peaks := morph.NewBitmap(g.W, g.H)
	for i, v := range g.Pix {
		peaks.Pix[i] = v == localmax.Pix[i]
	}
	peaks = morph.Dilate(peaks, 2, 2)
	return peaks.And(g.Greater(thresh)).AndNot(colseps)
}

// ComputeLineSeeds finds a seed for each line of text, lying between
// its bottom and top edges, and labels them
func ComputeLineSeeds(ink *morph.Bitmap, bottom, top *filters.Grid, colseps *morph.Bitmap, scale float64, conf *Config) *morph.Labels {
	t := conf.Threshold
	vrange := int(conf.VScale * scale)
	bmarked := markers(bottom, vrange, t*t*bottom.Max(), colseps)
	tmarked := markers(top, vrange, t*t*top.Max()/2, colseps)
	tmarked = morph.Dilate(tmarked, 1, 20)

	seeds := morph.NewBitmap(ink.W, ink.H)
	delta := int(math.Max(3, float64(int(scale/2))))
	maxspan := 5 * scale
	col := make([]bool, ink.H)
	for x := 0; x < ink.W; x++ {
		var events []edgeEvent
		for y := 0; y < ink.H; y++ {
			if bmarked.Pix[y*ink.W+x] {
				events = append(events, edgeEvent{y, true})
			}
			if tmarked.Pix[y*ink.W+x] {
				events = append(events, edgeEvent{y, false})
			}
		}
		for y := range col {
			col[y] = false
		}
		seedIntervals(events, delta, maxspan, col)
		for y, v := range col {
			if v {
				seeds.Pix[y*ink.W+x] = true
			}
		}
	}

	seeds = morph.Dilate(seeds, 1, int(1+scale))
	seeds = seeds.AndNot(colseps)
	labels, _ := morph.Label(seeds)
	return labels
}

// edgeEvent is a marker found in a column, either at the bottom of a
// line or at the top of one
type edgeEvent struct {
	y      int
	bottom bool
}

// seedState is the state of the scan up a column
type seedState int

const (
	idle seedState = iota
	inSeed
)

// seedIntervals sets the rows of col which are part of a line seed,
// scanning the events from the bottom of the page upwards. A bottom
// edge always seeds the delta rows above it. The seed is extended up
// to the next top edge if that comes before any other bottom edge and
// is within maxspan rows.
func seedIntervals(events []edgeEvent, delta int, maxspan float64, col []bool) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].y != events[j].y {
			return events[i].y > events[j].y
		}
		return events[i].bottom && !events[j].bottom
	})

	mark := func(from, to int) {
		if from < 0 {
			from = 0
		}
		if to > len(col) {
			to = len(col)
		}
		for y := from; y < to; y++ {
			col[y] = true
		}
	}

	state := idle
	var y0 int
	for _, e := range events {
		switch {
		case e.bottom:
			mark(e.y-delta, e.y)
			state = inSeed
			y0 = e.y
		case state == inSeed:
			if float64(y0-e.y) < maxspan {
				mark(e.y, y0)
			}
			state = idle
		}
	}
}
