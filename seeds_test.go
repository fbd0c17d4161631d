// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"fmt"
	"image"
	"strings"
	"testing"

	"rescribe.xyz/pageseg/morph"
)

func TestSeedIntervals(t *testing.T) {
	b := func(y int) edgeEvent { return edgeEvent{y, true} }
	top := func(y int) edgeEvent { return edgeEvent{y, false} }

	cases := []struct {
		name   string
		events []edgeEvent
		expect string
	}{
		{"none", nil, "...................."},
		{"bottomonly", []edgeEvent{b(10)}, "......####.........."},
		{"bottomtop", []edgeEvent{top(3), b(10)}, "...#######.........."},
		{"toofar", []edgeEvent{top(0), b(15)}, "...........####....."},
		{"toponly", []edgeEvent{top(5)}, "...................."},
		{"twobottoms", []edgeEvent{top(2), b(8), b(14)}, "..######..####......"},
		{"sameline", []edgeEvent{top(6), b(6)}, "..####.............."},
		{"twolines", []edgeEvent{top(2), b(6), top(10), b(16)}, "..####....######...."},
		{"clipped", []edgeEvent{b(2)}, "##.................."},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			col := make([]bool, 20)
			seedIntervals(c.events, 4, 10, col)
			var s strings.Builder
			for _, v := range col {
				if v {
					s.WriteByte('#')
				} else {
					s.WriteByte('.')
				}
			}
			if s.String() != c.expect {
				t.Errorf("Expected %s, got %s\n", c.expect, s.String())
			}
		})
	}
}

func TestBoxmap(t *testing.T) {
	ink := morph.NewBitmap(200, 80)
	// letter sized
	ink.FillRect(image.Rect(10, 10, 18, 22), true)
	// too small
	ink.FillRect(image.Rect(30, 10, 31, 11), true)
	// too big
	ink.FillRect(image.Rect(100, 0, 200, 80), true)
	// L shape, whose whole box is filled
	ink.FillRect(image.Rect(20, 10, 22, 22), true)
	ink.FillRect(image.Rect(20, 20, 28, 22), true)

	boxmap := ComputeBoxmap(ink, 10)
	cases := []struct {
		x, y   int
		expect bool
	}{
		{12, 12, true},
		{30, 10, false},
		{150, 40, false},
		{25, 12, true},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d_%d", c.x, c.y), func(t *testing.T) {
			if boxmap.At(c.x, c.y) != c.expect {
				t.Errorf("Expected %v\n", c.expect)
			}
		})
	}
}

func TestGradmaps(t *testing.T) {
	conf := DefaultConfig()
	page := singleColumn()
	for _, usegauss := range []bool{false, true} {
		t.Run(fmt.Sprintf("usegauss_%v", usegauss), func(t *testing.T) {
			conf.UseGauss = usegauss
			bottom, top, _ := ComputeGradmaps(page, glyphScale, conf)
			if bottom.Max() != 1 || top.Max() != 1 {
				t.Fatalf("Gradient maps not normalised: %f %f\n", bottom.Max(), top.Max())
			}
			// below the last line, and above the first
			if bottom.At(200, 160) <= bottom.At(200, 140) {
				t.Errorf("Bottom edge weaker below a line than above it\n")
			}
			if top.At(200, 98) <= top.At(200, 114) {
				t.Errorf("Top edge weaker above a line than below it\n")
			}
		})
	}

	bottom, top, _ := ComputeGradmaps(morph.NewBitmap(50, 50), 10, conf)
	if bottom.Max() != 0 || top.Max() != 0 {
		t.Errorf("Expected zero gradients for an empty page\n")
	}
}

func TestLineSeeds(t *testing.T) {
	conf := DefaultConfig()
	page := singleColumn()
	bottom, top, _ := ComputeGradmaps(page, glyphScale, conf)
	seeds := ComputeLineSeeds(page, bottom, top, morph.NewBitmap(page.W, page.H), glyphScale, conf)
	if n := seeds.Max(); n != 3 {
		t.Fatalf("Expected 3 seeds, got %d\n", n)
	}
	for i := 0; i < 3; i++ {
		mid := 100 + i*linePitch + glyphH/2
		if seeds.At(200, mid) != i+1 {
			t.Errorf("Expected seed %d in the middle of line %d, got %d\n", i+1, i, seeds.At(200, mid))
		}
	}

	colseps := morph.NewBitmap(page.W, page.H)
	colseps.FillRect(image.Rect(195, 0, 205, page.H), true)
	seeds = ComputeLineSeeds(page, bottom, top, colseps, glyphScale, conf)
	if n := seeds.Max(); n != 6 {
		t.Errorf("Expected a separator to split each seed in two, got %d seeds\n", n)
	}
	if seeds.At(200, 106) != 0 {
		t.Errorf("Seed found inside a separator\n")
	}
}
