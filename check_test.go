// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"errors"
	"image"
	"testing"

	"rescribe.xyz/pageseg/morph"
)

// blocks returns a page with n small blocks of ink spread along it
func blocks(w, h, n int) *morph.Bitmap {
	b := morph.NewBitmap(w, h)
	for i := 0; i < n; i++ {
		x := 20 + (i%20)*25
		y := 20 + (i/20)*25
		b.FillRect(image.Rect(x, y, x+10, y+10), true)
	}
	return b
}

func TestCheckPage(t *testing.T) {
	full := morph.NewBitmap(600, 600)
	full.FillRect(image.Rect(0, 0, 600, 600), true)

	cases := []struct {
		name string
		ink  *morph.Bitmap
		ok   bool
	}{
		{"fine", blocks(600, 600, 12), true},
		{"inverted", full, false},
		{"short", blocks(700, 500, 12), false},
		{"narrow", blocks(500, 700, 12), false},
		{"toowide", blocks(10001, 600, 12), false},
		{"fewcomponents", blocks(600, 600, 3), false},
		{"manycomponents", blocks(600, 600, 20*23), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckPage(c.ink)
			if c.ok {
				if err != nil {
					t.Errorf("Unexpected error: %v\n", err)
				}
				return
			}
			var shapeErr *InputShapeError
			if !errors.As(err, &shapeErr) {
				t.Errorf("Expected an InputShapeError, got %v\n", err)
			}
		})
	}
}
