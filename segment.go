// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"log"

	"rescribe.xyz/pageseg/morph"
)

// Result is the segmentation of a page
type Result struct {
	// Scale is the scale of the text on the page
	Scale float64
	// Colseps is the mask of column separators found
	Colseps *morph.Bitmap
	// Segmentation holds for each ink pixel the label of the line it
	// is part of, numbered from LineLabelBase+1 in reading order
	Segmentation *morph.Labels
	// Lines are the lines found, in reading order
	Lines []Line
}

// ComputeSegmentation gives every ink pixel of a page the label of the
// line it is part of, returning the labels and the column separators.
// The ink is left unchanged.
func ComputeSegmentation(ink *morph.Bitmap, scale float64, conf *Config) (*morph.Labels, *morph.Bitmap) {
	return computeSegmentation(ink, scale, conf, nil)
}

func computeSegmentation(ink *morph.Bitmap, scale float64, conf *Config, dbg *debugger) (*morph.Labels, *morph.Bitmap) {
	ink = ink.Copy()
	RemoveHLines(ink, scale, hlineSize)
	dbg.saveBitmap("hlines_removed", ink)

	colseps, ink := computeColseps(ink, scale, conf, dbg)

	bottom, top, boxmap := ComputeGradmaps(ink, scale, conf)
	dbg.saveGrid("bottom", bottom)
	dbg.saveGrid("top", top)

	seeds := ComputeLineSeeds(ink, bottom, top, colseps, scale, conf)
	dbg.saveLabels("seeds", seeds)

	llabels := morph.Propagate(boxmap, seeds)
	spread := morph.Spread(seeds, scale)
	for i, v := range llabels.Pix {
		if v == 0 {
			llabels.Pix[i] = spread.Pix[i]
		}
	}
	seg := llabels.Mul(ink)
	dbg.saveLabels("segmentation", seg)
	return seg, colseps
}

// Process segments a binarized page into lines in reading order. The
// name is used to identify the page in logs and debug images.
func Process(name string, ink *morph.Bitmap, conf *Config, logger *log.Logger) (*Result, error) {
	var dbg *debugger
	if conf.Debug {
		dbg = &debugger{dir: conf.DebugDir, name: name, logger: logger}
	}

	if !conf.NoCheck {
		err := CheckPage(ink)
		if err != nil {
			return nil, err
		}
	}

	scale := conf.Scale
	if scale <= 0 {
		var err error
		scale, err = EstimateScale(ink)
		if err != nil {
			return nil, err
		}
	}
	err := CheckScale(scale, conf)
	if err != nil {
		return nil, err
	}
	if !conf.Quiet {
		logger.Printf("%s: scale %.2f\n", name, scale)
	}

	seg, colseps := computeSegmentation(ink, scale, conf, dbg)
	if n := seg.Max(); n > conf.MaxLines {
		return nil, &OverSegmentationError{Lines: n, Max: conf.MaxLines}
	}

	lines := ComputeLines(seg, scale)
	order := ReadingOrder(lineBounds(lines))
	sorted := TopSort(order)
	renumber := Renumber(seg.Max(), lines, sorted)

	ordered := make([]Line, len(sorted))
	for rank, i := range sorted {
		ordered[rank] = lines[i]
		ordered[rank].Rank = rank + 1
	}
	final := seg.Renumber(renumber)
	dbg.saveLabels("pseg", final)

	if !conf.Quiet {
		logger.Printf("%s: %d lines\n", name, len(ordered))
	}

	return &Result{
		Scale:        scale,
		Colseps:      colseps,
		Segmentation: final,
		Lines:        ordered,
	}, nil
}
