// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package morph

import "math"

// conflict marks a component which touches more than one seed label
const conflict = -1

// Propagate labels every component of img with the seed label it
// overlaps. Components overlapping more than one seed label are left
// unlabeled, as are components touching no seed.
func Propagate(img *Bitmap, seeds *Labels) *Labels {
	comps, n := Label(img)
	outputs := make([]int, n+1)
	for i, c := range comps.Pix {
		s := seeds.Pix[i]
		if c == 0 || s == 0 {
			continue
		}
		switch outputs[c] {
		case 0:
			outputs[c] = s
		case s, conflict:
		default:
			outputs[c] = conflict
		}
	}
	for i, v := range outputs {
		if v == conflict {
			outputs[i] = 0
		}
	}
	outputs[0] = 0
	return comps.Renumber(outputs)
}

// far is used in place of an infinite distance so that the distance
// transform arithmetic stays finite
const far = 1e20

// Spread gives every pixel the label of the nearest labeled pixel, by
// Euclidean distance, so long as that distance is less than maxdist.
// Pixels further away are left as 0.
func Spread(seeds *Labels, maxdist float64) *Labels {
	w, h := seeds.W, seeds.H
	out := NewLabels(w, h)

	found := false
	for _, v := range seeds.Pix {
		if v != 0 {
			found = true
			break
		}
	}
	if !found {
		return out
	}

	// the nearest seed row in each column, and its squared distance
	colDist := make([]float64, w*h)
	colRow := make([]int, w*h)
	for x := 0; x < w; x++ {
		last := -1
		for y := 0; y < h; y++ {
			i := y*w + x
			if seeds.Pix[i] != 0 {
				last = y
			}
			colRow[i] = last
			if last < 0 {
				colDist[i] = far
			} else {
				d := float64(y - last)
				colDist[i] = d * d
			}
		}
		last = -1
		for y := h - 1; y >= 0; y-- {
			i := y*w + x
			if seeds.Pix[i] != 0 {
				last = y
			}
			if last < 0 {
				continue
			}
			d := float64(last - y)
			if d*d < colDist[i] {
				colDist[i] = d * d
				colRow[i] = last
			}
		}
	}

	f := make([]float64, w)
	d := make([]float64, w)
	arg := make([]int, w)
	v := make([]int, w)
	z := make([]float64, w+1)
	limit := maxdist * maxdist
	for y := 0; y < h; y++ {
		copy(f, colDist[y*w:(y+1)*w])
		lowerEnvelope(f, d, arg, v, z)
		for x := 0; x < w; x++ {
			if d[x] >= limit || d[x] >= far {
				continue
			}
			sx := arg[x]
			sy := colRow[y*w+sx]
			out.Pix[y*w+x] = seeds.Pix[sy*w+sx]
		}
	}
	return out
}

// lowerEnvelope computes the 1D squared distance transform of f, as
// described by Felzenszwalb and Huttenlocher in "Distance Transforms
// of Sampled Functions" (2012). d receives the distances and arg the
// index of the sample each distance was measured to.
func lowerEnvelope(f, d []float64, arg, v []int, z []float64) {
	n := len(f)
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)
	for q := 1; q < n; q++ {
		s := intersect(f, q, v[k])
		for s <= z[k] {
			k--
			s = intersect(f, q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}
	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
		arg[q] = v[k]
	}
}

// intersect returns the position at which the parabolas rooted at q
// and p cross
func intersect(f []float64, q, p int) float64 {
	fq, fp := float64(q), float64(p)
	return ((f[q] + fq*fq) - (f[p] + fp*fp)) / (2*fq - 2*fp)
}
