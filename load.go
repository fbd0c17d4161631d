// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"

	"rescribe.xyz/pageseg/morph"
)

// Suffixes of the companion files of a page
const (
	binSuffix = ".bin.png"
	nrmSuffix = ".nrm.png"
)

// inkThresh is the grey level below which a pixel of a two level
// image counts as ink
const inkThresh = 128

// Page is a page loaded ready for segmentation
type Page struct {
	// Name is the path of the page with its extensions removed
	Name string
	// Ink is set for every ink pixel
	Ink *morph.Bitmap
	// Gray is the grey version of the page, used for grey line images
	Gray *image.Gray
}

// PageBase returns a path with every extension of its file name
// removed, so that both "0001.png" and "0001.bin.png" give "0001"
func PageBase(path string) string {
	dir, file := filepath.Split(path)
	if i := strings.Index(file, "."); i > 0 {
		file = file[:i]
	}
	return dir + file
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// decodeGray decodes an image file, returning an *InputShapeError if
// it is in colour
func decodeGray(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Error opening %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("Error decoding %s: %w", path, err)
	}
	if isColour(img) {
		return nil, &InputShapeError{fmt.Sprintf("input image is color image (%s)", path)}
	}
	return toGray(img), nil
}

// isColour reports whether any pixel of an image has differing red,
// green and blue values
func isColour(img image.Image) bool {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return false
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r != g || g != bl {
				return true
			}
		}
	}
	return false
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// isBinary reports whether an image contains only black and white
func isBinary(img *image.Gray) bool {
	for _, v := range img.Pix {
		if v != 0 && v != 255 {
			return false
		}
	}
	return true
}

// LoadPage loads a page for segmentation. If a binarized companion
// (path with extensions replaced by .bin.png) exists it is used,
// otherwise the page itself, which is binarized if it is not already.
// When grey line images are wanted, the grey companion (.nrm.png) is
// used for them if it exists, otherwise the normalised page is.
func LoadPage(path string, conf *Config) (*Page, error) {
	base := PageBase(path)

	binpath := path
	if exists(base + binSuffix) {
		binpath = base + binSuffix
	}
	img, err := decodeGray(binpath)
	if err != nil {
		return nil, err
	}

	p := Page{Name: base}
	if isBinary(img) {
		p.Ink = morph.FromGray(img, inkThresh)
		p.Gray = img
	} else {
		normalised := Normalise(img, conf.Zoom)
		bin, err := Binarize(normalised, conf.Binarize)
		if err != nil {
			return nil, err
		}
		p.Ink = morph.FromGray(bin, inkThresh)
		p.Gray = normalised
	}

	if conf.Gray && exists(base+nrmSuffix) {
		gray, err := decodeGray(base + nrmSuffix)
		if err != nil {
			return nil, err
		}
		if !gray.Bounds().Eq(img.Bounds()) {
			return nil, &InputShapeError{fmt.Sprintf("%s is not the same size as %s", base+nrmSuffix, binpath)}
		}
		p.Gray = gray
	}

	return &p, nil
}
