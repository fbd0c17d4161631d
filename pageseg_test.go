// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"errors"
	"image"
	"io"
	"log"
	"math"
	"testing"

	"rescribe.xyz/pageseg/morph"
)

// Dimensions of the letters of synthetic pages. Each letter is a solid
// block, so the estimated scale is sqrt(glyphW*glyphH).
const (
	glyphW    = 8
	glyphH    = 12
	glyphStep = 10
	linePitch = 22
)

var glyphScale = math.Sqrt(glyphW * glyphH)

// drawLine draws a line of letters with its top at y, from x0 up to
// at most x1
func drawLine(b *morph.Bitmap, x0, x1, y int) {
	for x := x0; x+glyphW <= x1; x += glyphStep {
		b.FillRect(image.Rect(x, y, x+glyphW, y+glyphH), true)
	}
}

// singleColumn is a page with 3 lines of text
func singleColumn() *morph.Bitmap {
	b := morph.NewBitmap(420, 300)
	for i := 0; i < 3; i++ {
		drawLine(b, 40, 380, 100+i*linePitch)
	}
	return b
}

// twoColumns is a page with 8 lines of text in each of two columns
func twoColumns() *morph.Bitmap {
	b := morph.NewBitmap(440, 320)
	for i := 0; i < 8; i++ {
		drawLine(b, 40, 180, 60+i*linePitch)
		drawLine(b, 260, 400, 60+i*linePitch)
	}
	return b
}

func testConfig() *Config {
	conf := DefaultConfig()
	conf.NoCheck = true
	conf.Quiet = true
	return conf
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestSingleColumn(t *testing.T) {
	res, err := Process("single", singleColumn(), testConfig(), testLogger())
	if err != nil {
		t.Fatalf("Error processing page: %v\n", err)
	}
	if math.Abs(res.Scale-glyphScale) > 0.01 {
		t.Errorf("Expected scale %f, got %f\n", glyphScale, res.Scale)
	}
	if n := res.Colseps.Count(); n != 0 {
		t.Errorf("Expected no column separators, got %d pixels\n", n)
	}
	if len(res.Lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d\n", len(res.Lines))
	}
	for i, l := range res.Lines {
		if l.Rank != i+1 {
			t.Errorf("Line %d has rank %d\n", i, l.Rank)
		}
		top := 100 + i*linePitch
		if l.Bounds.Min.Y != top || l.Bounds.Max.Y != top+glyphH {
			t.Errorf("Line ranked %d has bounds %v, expected top %d\n", l.Rank, l.Bounds, top)
		}
		if got := res.Segmentation.At(l.Bounds.Min.X, l.Bounds.Min.Y); got != LineLabelBase+l.Rank {
			t.Errorf("Expected label %x for line ranked %d, got %x\n", LineLabelBase+l.Rank, l.Rank, got)
		}
	}
}

func TestTwoColumns(t *testing.T) {
	res, err := Process("two", twoColumns(), testConfig(), testLogger())
	if err != nil {
		t.Fatalf("Error processing page: %v\n", err)
	}
	if !res.Colseps.At(240, 140) {
		t.Errorf("Expected a column separator in the gutter\n")
	}
	if res.Colseps.At(100, 140) || res.Colseps.At(330, 140) {
		t.Errorf("Column separator found over text\n")
	}
	if len(res.Lines) != 16 {
		t.Fatalf("Expected 16 lines, got %d\n", len(res.Lines))
	}

	maxLeft, minRight := 0, len(res.Lines)+1
	for _, l := range res.Lines {
		if l.Bounds.Max.X <= 220 {
			maxLeft = max(maxLeft, l.Rank)
		} else if l.Bounds.Min.X >= 220 {
			minRight = min(minRight, l.Rank)
		} else {
			t.Errorf("Line %v spans both columns\n", l.Bounds)
		}
	}
	if maxLeft >= minRight {
		t.Errorf("Left column lines should all come before right column lines, but %d >= %d\n", maxLeft, minRight)
	}
	for i := 1; i < len(res.Lines); i++ {
		prev, cur := res.Lines[i-1].Bounds, res.Lines[i].Bounds
		if (cur.Max.X <= 220) == (prev.Max.X <= 220) && cur.Min.Y <= prev.Min.Y {
			t.Errorf("Lines in a column out of order: %v then %v\n", prev, cur)
		}
	}
}

func TestCheckScale(t *testing.T) {
	conf := DefaultConfig()
	cases := []struct {
		scale float64
		ok    bool
	}{
		{500, true},
		{8, true},
		{1200, false},
		{7.9, false},
		{math.NaN(), false},
		{math.Inf(1), false},
	}
	for _, c := range cases {
		err := CheckScale(c.scale, conf)
		if c.ok && err != nil {
			t.Errorf("Expected scale %f to be fine, got %v\n", c.scale, err)
		}
		var serr *ScaleError
		if !c.ok && !errors.As(err, &serr) {
			t.Errorf("Expected a ScaleError for scale %f, got %v\n", c.scale, err)
		}
	}

	conf = testConfig()
	conf.Scale = 1200
	_, err := Process("big", singleColumn(), conf, testLogger())
	var serr *ScaleError
	if !errors.As(err, &serr) {
		t.Errorf("Expected a ScaleError for an overridden scale of 1200, got %v\n", err)
	}
}

func TestEstimateScale(t *testing.T) {
	s, err := EstimateScale(singleColumn())
	if err != nil {
		t.Fatalf("Error estimating scale: %v\n", err)
	}
	if math.Abs(s-glyphScale) > 1e-9 {
		t.Errorf("Expected scale %f, got %f\n", glyphScale, s)
	}

	_, err = EstimateScale(morph.NewBitmap(100, 100))
	var serr *ScaleError
	if !errors.As(err, &serr) {
		t.Errorf("Expected a ScaleError for an empty page, got %v\n", err)
	}
}

func TestHLines(t *testing.T) {
	page := singleColumn()
	page.FillRect(image.Rect(20, 200, 400, 203), true)

	ink := page.Copy()
	RemoveHLines(ink, glyphScale, hlineSize)
	if ink.At(200, 201) {
		t.Errorf("Rule was not removed\n")
	}
	if !ink.At(45, 105) {
		t.Errorf("Letter was removed with the rule\n")
	}

	res, err := Process("rule", page, testConfig(), testLogger())
	if err != nil {
		t.Fatalf("Error processing page: %v\n", err)
	}
	if len(res.Lines) != 3 {
		t.Errorf("Expected 3 lines, got %d\n", len(res.Lines))
	}
	for _, l := range res.Lines {
		if l.Bounds.Overlaps(image.Rect(20, 200, 400, 203)) {
			t.Errorf("Rule found as a line: %v\n", l.Bounds)
		}
	}
	if res.Segmentation.At(200, 201) != 0 {
		t.Errorf("Rule pixels labelled in segmentation\n")
	}
}

func TestOverSegmentation(t *testing.T) {
	conf := testConfig()
	conf.MaxLines = 2
	_, err := Process("over", singleColumn(), conf, testLogger())
	var oerr *OverSegmentationError
	if !errors.As(err, &oerr) {
		t.Fatalf("Expected an OverSegmentationError, got %v\n", err)
	}
	if oerr.Lines != 3 || oerr.Max != 2 {
		t.Errorf("Wrong error details: %v\n", oerr)
	}
}

func TestDeterministic(t *testing.T) {
	page := twoColumns()
	res1, err := Process("a", page, testConfig(), testLogger())
	if err != nil {
		t.Fatalf("Error processing page: %v\n", err)
	}
	res2, err := Process("b", page, testConfig(), testLogger())
	if err != nil {
		t.Fatalf("Error processing page: %v\n", err)
	}
	if !res1.Colseps.Equal(res2.Colseps) {
		t.Errorf("Column separators differ between runs\n")
	}
	for i, v := range res1.Segmentation.Pix {
		if res2.Segmentation.Pix[i] != v {
			t.Fatalf("Segmentation differs between runs at pixel %d\n", i)
		}
	}
}

func TestSegmentationCoverage(t *testing.T) {
	page := twoColumns()
	res, err := Process("cover", page, testConfig(), testLogger())
	if err != nil {
		t.Fatalf("Error processing page: %v\n", err)
	}
	ranks := make(map[int]bool)
	for _, l := range res.Lines {
		ranks[LineLabelBase+l.Rank] = true
	}
	for i, v := range res.Segmentation.Pix {
		if v != 0 && !page.Pix[i] {
			t.Fatalf("Pixel %d labelled but not ink\n", i)
		}
		if v != 0 && !ranks[v] {
			t.Fatalf("Pixel %d has label %x which is not a line\n", i, v)
		}
	}
	for _, l := range res.Lines {
		for y := 0; y < l.Mask.H; y++ {
			for x := 0; x < l.Mask.W; x++ {
				if !l.Mask.At(x, y) {
					continue
				}
				got := res.Segmentation.At(l.Bounds.Min.X+x, l.Bounds.Min.Y+y)
				if got != LineLabelBase+l.Rank {
					t.Fatalf("Mask of line ranked %d covers label %x\n", l.Rank, got)
				}
			}
		}
	}
}

func TestBlackSeps(t *testing.T) {
	page := twoColumns()
	page.FillRect(image.Rect(218, 40, 222, 260), true)
	conf := testConfig()
	conf.BlackSeps = true
	res, err := Process("blackseps", page, conf, testLogger())
	if err != nil {
		t.Fatalf("Error processing page: %v\n", err)
	}
	if !res.Colseps.At(220, 150) {
		t.Errorf("Black rule not found as a separator\n")
	}
	if res.Segmentation.At(220, 150) != 0 {
		t.Errorf("Black rule labelled as part of a line\n")
	}
	for _, l := range res.Lines {
		if l.Bounds.Min.X < 220 && l.Bounds.Max.X > 220 {
			t.Errorf("Line %v crosses the black rule\n", l.Bounds)
		}
	}
}
