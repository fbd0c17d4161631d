// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"math"
	"sort"

	"rescribe.xyz/pageseg/morph"
)

const maxScale = 1000

// EstimateScale estimates the scale of the text on a page, which is
// roughly the height of a lower case letter. Each component's box is
// painted with the square root of its area, smallest first, skipping
// boxes which overlap one already painted. The scale is the median of
// the painted values between 3 and 100.
func EstimateScale(ink *morph.Bitmap) (float64, error) {
	labels, _ := morph.Label(ink)
	objs := labels.Objects()
	sort.SliceStable(objs, func(i, j int) bool { return morph.Area(objs[i]) < morph.Area(objs[j]) })

	scalemap := make([]float64, ink.W*ink.H)
	for _, o := range objs {
		if o.Empty() {
			continue
		}
		painted := false
		for y := o.Min.Y; y < o.Max.Y && !painted; y++ {
			for x := o.Min.X; x < o.Max.X; x++ {
				if scalemap[y*ink.W+x] > 0 {
					painted = true
					break
				}
			}
		}
		if painted {
			continue
		}
		v := math.Sqrt(morph.Area(o))
		for y := o.Min.Y; y < o.Max.Y; y++ {
			for x := o.Min.X; x < o.Max.X; x++ {
				scalemap[y*ink.W+x] = v
			}
		}
	}

	var vals []float64
	for _, v := range scalemap {
		if v > 3 && v < 100 {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return math.NaN(), &ScaleError{math.NaN(), "no components of a usable size"}
	}
	return median(vals), nil
}

// median returns the middle value, or the mean of the two middle
// values, of a non-empty list. The list is sorted in place.
func median(v []float64) float64 {
	sort.Float64s(v)
	n := len(v)
	if n%2 == 1 {
		return v[n/2]
	}
	return (v[n/2-1] + v[n/2]) / 2
}

// CheckScale returns a *ScaleError if scale is unusable
func CheckScale(scale float64, conf *Config) error {
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return &ScaleError{scale, "not a number"}
	}
	if scale > maxScale {
		return &ScaleError{scale, "too large"}
	}
	if scale < conf.MinScale {
		return &ScaleError{scale, "too small"}
	}
	return nil
}
