// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import "rescribe.xyz/pageseg/morph"

// hlineSize is how many times wider than the scale a component must
// be to be treated as a horizontal rule
const hlineSize = 10

// RemoveHLines clears, in place, every component of ink which is more
// than maxsize times wider than scale
func RemoveHLines(ink *morph.Bitmap, scale, maxsize float64) {
	labels, _ := morph.Label(ink)
	objs := labels.Objects()
	wide := make([]bool, len(objs)+1)
	for i, o := range objs {
		wide[i+1] = float64(o.Dx()) > maxsize*scale
	}
	for i, v := range labels.Pix {
		if wide[v] {
			ink.Pix[i] = false
		}
	}
}
