// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"fmt"
	"image"

	"github.com/ernyoke/imger/threshold"
	"golang.org/x/image/draw"
	"rescribe.xyz/preproc"

	"rescribe.xyz/pageseg/filters"
)

// bgFilterSize is the size, in pixels of the zoomed image, of the
// filter used to find the page background
const bgFilterSize = 20

// sauvolaK is the k value used for sauvola binarization
const sauvolaK = 0.3

// Normalise evens out the background of a grey page, so that paper
// is white everywhere. The background is found by taking the lightest
// value around each pixel of the page scaled by zoom.
func Normalise(img *image.Gray, zoom float64) *image.Gray {
	b := img.Bounds()
	if zoom <= 0 || zoom > 1 {
		zoom = 1
	}
	zw, zh := int(float64(b.Dx())*zoom), int(float64(b.Dy())*zoom)
	if zw < 1 {
		zw = 1
	}
	if zh < 1 {
		zh = 1
	}

	small := image.NewGray(image.Rect(0, 0, zw, zh))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), img, b, draw.Src, nil)
	bg := filters.MaxFilter(filters.FromGray(small), bgFilterSize, bgFilterSize).Gray()

	full := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.BiLinear.Scale(full, full.Bounds(), bg, bg.Bounds(), draw.Src, nil)

	out := image.NewGray(full.Bounds())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			v := float64(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			background := float64(full.GrayAt(x, y).Y)
			n := 255.0
			if background > 0 && v < background {
				n = 255 * v / background
			}
			out.Pix[y*out.Stride+x] = uint8(n)
		}
	}
	return out
}

// autowsize returns a sauvola window size suited to the resolution
// of a page
func autowsize(bounds image.Rectangle) int {
	w := bounds.Dx() / 60
	if w%2 == 0 {
		w++
	}
	if w < 3 {
		w = 3
	}
	return w
}

// Binarize converts a grey page to black and white, using either the
// "otsu" or "sauvola" method
func Binarize(img *image.Gray, method string) (*image.Gray, error) {
	switch method {
	case "otsu", "":
		bin, err := threshold.OtsuThreshold(img, threshold.ThreshBinary)
		if err != nil {
			return nil, fmt.Errorf("Error binarizing with otsu: %w", err)
		}
		return bin, nil
	case "sauvola":
		return preproc.IntegralSauvola(img, sauvolaK, autowsize(img.Bounds())), nil
	default:
		return nil, fmt.Errorf("Error binarizing: unknown method %s", method)
	}
}
