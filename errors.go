// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import "fmt"

// InputShapeError is returned when a page is not suitable for
// segmentation, for example because it is colour, inverted, or an
// unreasonable size
type InputShapeError struct {
	Reason string
}

func (e *InputShapeError) Error() string {
	return fmt.Sprintf("Unsuitable page: %s", e.Reason)
}

// ScaleError is returned when the text scale of a page is missing or
// outside of the acceptable range
type ScaleError struct {
	Scale  float64
	Reason string
}

func (e *ScaleError) Error() string {
	return fmt.Sprintf("Bad scale (%g): %s", e.Scale, e.Reason)
}

// OverSegmentationError is returned when a page is found to have more
// lines than is plausible
type OverSegmentationError struct {
	Lines, Max int
}

func (e *OverSegmentationError) Error() string {
	return fmt.Sprintf("Too many lines: found %d, maximum is %d", e.Lines, e.Max)
}
