// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"image"

	"rescribe.xyz/pageseg/morph"
)

// LineLabelBase is added to the rank of each line to give its label
// in a saved page segmentation
const LineLabelBase = 0x010000

// Line is a line of text found on a page
type Line struct {
	// Label is the line's label in the segmentation it was found in
	Label int
	// Bounds is the box containing the line
	Bounds image.Rectangle
	// Mask is set for the pixels within Bounds which are part of the
	// line
	Mask *morph.Bitmap
	// Rank is the position of the line in reading order, from 1.
	// It is 0 until the reading order is known.
	Rank int
}

// ComputeLines finds the lines of a segmentation, ignoring any
// narrower than twice the scale or shorter than the scale
func ComputeLines(seg *morph.Labels, scale float64) []Line {
	var lines []Line
	for i, o := range seg.Objects() {
		if o.Empty() {
			continue
		}
		if float64(o.Dx()) < 2*scale || float64(o.Dy()) < scale {
			continue
		}
		lines = append(lines, Line{
			Label:  i + 1,
			Bounds: o,
			Mask:   seg.Mask(i+1, o),
		})
	}
	return lines
}

func lineBounds(lines []Line) []image.Rectangle {
	boxes := make([]image.Rectangle, len(lines))
	for i, l := range lines {
		boxes[i] = l.Bounds
	}
	return boxes
}

func xOverlaps(u, v image.Rectangle) bool {
	return u.Min.X < v.Max.X && u.Max.X > v.Min.X
}

func above(u, v image.Rectangle) bool {
	return u.Min.Y < v.Min.Y
}

func leftOf(u, v image.Rectangle) bool {
	return u.Max.X < v.Min.X
}

// separates reports whether w lies between u and v vertically and
// spans the horizontal gap between them
func separates(w, u, v image.Rectangle) bool {
	if w.Max.Y < min(u.Min.Y, v.Min.Y) {
		return false
	}
	if w.Min.Y > max(u.Max.Y, v.Max.Y) {
		return false
	}
	return w.Min.X < u.Max.X && w.Max.X > v.Min.X
}

// ReadingOrder returns a matrix in which order[i][j] is true if box i
// should be read before box j. Boxes which overlap horizontally are
// read top to bottom. Otherwise the left box is read first, unless
// some other box lies between them, such as a heading spanning both
// columns.
func ReadingOrder(boxes []image.Rectangle) [][]bool {
	n := len(boxes)
	order := make([][]bool, n)
	for i := range order {
		order[i] = make([]bool, n)
	}
	for i, u := range boxes {
		for j, v := range boxes {
			if xOverlaps(u, v) {
				order[i][j] = above(u, v)
				continue
			}
			separated := false
			for _, w := range boxes {
				if separates(w, u, v) {
					separated = true
					break
				}
			}
			if !separated && leftOf(u, v) {
				order[i][j] = true
			}
		}
	}
	return order
}

type topoState struct {
	n       int
	order   [][]bool
	visited []bool
	sorted  []int
}

// visit adds everything which comes before k, then k itself
func (ts *topoState) visit(k int) {
	if ts.visited[k] {
		return
	}
	ts.visited[k] = true
	for l := 0; l < ts.n; l++ {
		if ts.order[l][k] {
			ts.visit(l)
		}
	}
	ts.sorted = append(ts.sorted, k)
}

// TopSort returns the indices of an order matrix sorted so that every
// index comes after those which should come before it. Cycles are
// broken by visiting each index only once.
func TopSort(order [][]bool) []int {
	ts := topoState{
		n:       len(order),
		order:   order,
		visited: make([]bool, len(order)),
	}
	for k := 0; k < ts.n; k++ {
		ts.visit(k)
	}
	return ts.sorted
}

// Renumber returns a map from each label of a segmentation with
// maxlabel labels to LineLabelBase plus the rank of the line, given
// the lines and their sorted indices. Labels of lines which were not
// kept map to 0.
func Renumber(maxlabel int, lines []Line, sorted []int) []int {
	m := make([]int, maxlabel+1)
	for rank, i := range sorted {
		m[lines[i].Label] = LineLabelBase + rank + 1
	}
	return m
}
