// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

// Config holds the tuning parameters for segmenting a page. It should
// not be changed once processing has started.
type Config struct {
	// Zoom is the factor pages are scaled by when estimating the
	// background of a grey page, before binarization
	Zoom float64
	// MinScale is the smallest acceptable text scale, in pixels
	MinScale float64
	// MaxLines is the most lines a page may have before it is
	// rejected as over segmented
	MaxLines int
	// Scale overrides the estimated text scale if more than 0
	Scale float64

	// HScale and VScale are multipliers for the horizontal and
	// vertical sizes of the line finding filters
	HScale float64
	VScale float64
	// Threshold is the fraction of the strongest gradient a line
	// edge must exceed, before squaring
	Threshold float64
	// Noise is the size, in pixels, below which ink is removed from
	// line images
	Noise int
	// UseGauss uses gaussian smoothing alone for the gradient maps,
	// rather than gaussian followed by uniform smoothing
	UseGauss bool

	// MaxSeps is the most black column separators to find
	MaxSeps int
	// SepWiden is how much to widen black separators, in pixels
	SepWiden int
	// BlackSeps enables detection of black column separators. Most
	// pages have none, and searching for them is slow.
	BlackSeps bool
	// MaxColSeps is the most whitespace column separators to find
	MaxColSeps int
	// CsMinAspect is the smallest height to width ratio of a column
	// separator
	CsMinAspect float64
	// CsMinHeight is the smallest height of a column separator, in
	// multiples of the scale
	CsMinHeight float64

	// Pad is the number of pixels added around each line image
	Pad int
	// Expand is how far the line mask is grown before cropping
	Expand int

	// Parallel is the number of pages processed at once
	Parallel int
	// Debug saves intermediate images to DebugDir
	Debug    bool
	DebugDir string
	// Gray also saves grey line images, from the .nrm.png companion
	Gray bool
	// NoCheck skips the checks that a page is suitable
	NoCheck bool
	// Quiet stops progress messages being logged
	Quiet bool
	// Binarize is the method used to binarize grey input, either
	// "otsu" or "sauvola"
	Binarize string
}

// DefaultConfig returns the configuration that works well for most
// printed books
func DefaultConfig() *Config {
	return &Config{
		Zoom:        0.5,
		MinScale:    8,
		MaxLines:    300,
		HScale:      1,
		VScale:      1.7,
		Threshold:   0.2,
		Noise:       8,
		MaxSeps:     2,
		SepWiden:    10,
		MaxColSeps:  2,
		CsMinAspect: 1.1,
		CsMinHeight: 6.5,
		Pad:         3,
		Expand:      3,
		Parallel:    1,
		Binarize:    "otsu",
	}
}
