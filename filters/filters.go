// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package filters

import (
	"math"

	"rescribe.xyz/pageseg/integralimg"
)

// kernel returns a normalised Gaussian of the given order (0 or 1)
// with offsets running from -radius to radius. The first order kernel
// gives positive results where values increase with the index.
func kernel(sigma float64, order int) []float64 {
	radius := int(4*sigma + 0.5)
	k := make([]float64, 2*radius+1)
	var sum float64
	for i := range k {
		x := float64(i - radius)
		k[i] = math.Exp(-0.5 * x * x / (sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	if order == 1 {
		for i := range k {
			x := float64(i - radius)
			k[i] *= x / (sigma * sigma)
		}
	}
	return k
}

// reflect maps an index outside of [0, n) back into it, mirroring
// about the edges with the edge value repeated
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i - 1
	}
	return i
}

// correlate1d applies kernel k to the first n values of in, writing
// the results to out
func correlate1d(n int, k []float64, in, out []float64) {
	radius := len(k) / 2
	for i := 0; i < n; i++ {
		var v float64
		for j, kv := range k {
			v += kv * in[reflect(i+j-radius, n)]
		}
		out[i] = v
	}
}

// Gaussian smooths g with a Gaussian of standard deviation sigmaY down
// the columns and sigmaX along the rows. An order of 1 takes the first
// derivative along that axis instead of smoothing. A sigma of 0 or
// less leaves that axis alone.
func Gaussian(g *Grid, sigmaY, sigmaX float64, orderY, orderX int) *Grid {
	cur := g.Copy()
	if sigmaX > 0 {
		k := kernel(sigmaX, orderX)
		next := NewGrid(g.W, g.H)
		for y := 0; y < g.H; y++ {
			row := y * g.W
			correlate1d(g.W, k, cur.Pix[row:row+g.W], next.Pix[row:row+g.W])
		}
		cur = next
	}
	if sigmaY > 0 {
		k := kernel(sigmaY, orderY)
		next := NewGrid(g.W, g.H)
		in := make([]float64, g.H)
		out := make([]float64, g.H)
		for x := 0; x < g.W; x++ {
			for y := 0; y < g.H; y++ {
				in[y] = cur.Pix[y*g.W+x]
			}
			correlate1d(g.H, k, in, out)
			for y := 0; y < g.H; y++ {
				next.Pix[y*g.W+x] = out[y]
			}
		}
		cur = next
	}
	return cur
}

// Uniform replaces every value with the mean of the h rows by w
// columns around it, clipped to the grid. Sizes of 1 or less leave
// that axis alone.
func Uniform(g *Grid, h, w int) *Grid {
	if h < 1 {
		h = 1
	}
	if w < 1 {
		w = 1
	}
	integral := integralimg.ToIntegralImg(g.Pix, g.W, g.H)
	out := NewGrid(g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			out.Pix[y*g.W+x] = integral.MeanWindow(x-w/2, y-h/2, w, h)
		}
	}
	return out
}

// max1d sets out[i] to the largest value in the window of size n
// around i, clipped to the line
func max1d(in []float64, n int, out []float64, deque []int) {
	length := len(in)
	deque = deque[:0]
	next := 0
	for i := 0; i < length; i++ {
		lo := i - n/2
		hi := lo + n - 1
		if hi > length-1 {
			hi = length - 1
		}
		for ; next <= hi; next++ {
			for len(deque) > 0 && in[deque[len(deque)-1]] <= in[next] {
				deque = deque[:len(deque)-1]
			}
			deque = append(deque, next)
		}
		for deque[0] < lo {
			deque = deque[1:]
		}
		out[i] = in[deque[0]]
	}
}

// MaxFilter replaces every value with the largest value in the h rows
// by w columns around it, clipped to the grid
func MaxFilter(g *Grid, h, w int) *Grid {
	cur := g.Copy()
	if w > 1 {
		next := NewGrid(g.W, g.H)
		deque := make([]int, 0, g.W)
		for y := 0; y < g.H; y++ {
			row := y * g.W
			max1d(cur.Pix[row:row+g.W], w, next.Pix[row:row+g.W], deque)
		}
		cur = next
	}
	if h > 1 {
		next := NewGrid(g.W, g.H)
		deque := make([]int, 0, g.H)
		in := make([]float64, g.H)
		out := make([]float64, g.H)
		for x := 0; x < g.W; x++ {
			for y := 0; y < g.H; y++ {
				in[y] = cur.Pix[y*g.W+x]
			}
			max1d(in, h, out, deque)
			for y := 0; y < g.H; y++ {
				next.Pix[y*g.W+x] = out[y]
			}
		}
		cur = next
	}
	return cur
}
