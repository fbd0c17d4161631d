// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package morph

import (
	"fmt"
	"image"
	"strings"
	"testing"
)

// parse creates a Bitmap from rows of text, where '#' is set
func parse(rows ...string) *Bitmap {
	b := NewBitmap(len(rows[0]), len(rows))
	for y, r := range rows {
		for x, c := range r {
			b.Set(x, y, c == '#')
		}
	}
	return b
}

func (b *Bitmap) String() string {
	var s strings.Builder
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if b.At(x, y) {
				s.WriteByte('#')
			} else {
				s.WriteByte('.')
			}
		}
		s.WriteByte('\n')
	}
	return s.String()
}

func TestLabel(t *testing.T) {
	cases := []struct {
		name string
		img  *Bitmap
		n    int
	}{
		{"empty", parse("....", "...."), 0},
		{"single", parse(".#..", "...."), 1},
		{"diagonalsseparate", parse("#.", ".#"), 2},
		{"ushape", parse("#.#", "#.#", "###"), 1},
		{"three", parse("#.#.#", "#.#.#"), 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			labels, n := Label(c.img)
			if n != c.n {
				t.Fatalf("Expected %d components, got %d\n", c.n, n)
			}
			if labels.Max() != c.n {
				t.Errorf("Expected max label %d, got %d\n", c.n, labels.Max())
			}
			for i, v := range c.img.Pix {
				if v != (labels.Pix[i] != 0) {
					t.Fatalf("Label coverage differs from image at pixel %d\n", i)
				}
			}
		})
	}
}

func TestLabelOrder(t *testing.T) {
	img := parse(
		"...#",
		"#..#",
		"#...",
	)
	labels, _ := Label(img)
	if labels.At(3, 0) != 1 || labels.At(0, 1) != 2 {
		t.Errorf("Labels not in raster order:\n%v", labels.Pix)
	}
	objs := labels.Objects()
	if !objs[0].Eq(image.Rect(3, 0, 4, 2)) {
		t.Errorf("Wrong box for label 1: %v\n", objs[0])
	}
	if !objs[1].Eq(image.Rect(0, 1, 1, 3)) {
		t.Errorf("Wrong box for label 2: %v\n", objs[1])
	}
}

func TestDilateErode(t *testing.T) {
	cases := []struct {
		name   string
		f      func(*Bitmap, int, int) *Bitmap
		h, w   int
		in     *Bitmap
		expect *Bitmap
	}{
		{"dilate3x3", Dilate, 3, 3,
			parse(".....", ".....", "..#..", ".....", "....."),
			parse(".....", ".###.", ".###.", ".###.", ".....")},
		{"dilaterow", Dilate, 1, 3,
			parse(".....", "..#..", "....."),
			parse(".....", ".###.", ".....")},
		{"dilateeven", Dilate, 1, 2,
			parse("..#.."),
			parse("..##.")},
		{"erode3x3", Erode, 3, 3,
			parse(".....", ".###.", ".###.", ".###.", "....."),
			parse(".....", ".....", "..#..", ".....", ".....")},
		{"erodeborder", Erode, 1, 3,
			parse("###.."),
			parse("##...")},
		{"identity", Dilate, 1, 1,
			parse("#...", "..#."),
			parse("#...", "..#.")},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.f(c.in, c.h, c.w)
			if !got.Equal(c.expect) {
				t.Errorf("Expected:\n%sGot:\n%s", c.expect, got)
			}
		})
	}
}

func TestOpenClose(t *testing.T) {
	in := parse(
		"#.....",
		"..###.",
		"..###.",
		"..###.",
	)
	opened := Open(in, 3, 3)
	if opened.At(0, 0) {
		t.Errorf("Open did not remove small component:\n%s", opened)
	}
	if !opened.At(3, 2) {
		t.Errorf("Open removed large component:\n%s", opened)
	}

	gappy := parse("##.##")
	closed := Close(gappy, 1, 3)
	if !closed.Equal(parse("#####")) {
		t.Errorf("Close did not fill gap:\n%s", closed)
	}
}

func TestSelectRegions(t *testing.T) {
	img := parse(
		"#.#..#",
		"#.#..#",
		"#....#",
		"#.....",
	)
	cases := []struct {
		name  string
		min   float64
		nbest int
		keep  []image.Point
		clear []image.Point
	}{
		{"tallest", 0, 1, []image.Point{{0, 0}}, []image.Point{{2, 0}, {5, 0}}},
		{"twotallest", 0, 2, []image.Point{{0, 0}, {5, 0}}, []image.Point{{2, 0}}},
		{"min", 2, 10, []image.Point{{0, 0}, {5, 0}}, []image.Point{{2, 0}}},
		{"nonebigenough", 4, 10, []image.Point{}, []image.Point{{0, 0}, {2, 0}, {5, 0}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SelectRegions(img, Dim0, c.min, c.nbest)
			for _, p := range c.keep {
				if !got.At(p.X, p.Y) {
					t.Errorf("Expected region at %v to be kept:\n%s", p, got)
				}
			}
			for _, p := range c.clear {
				if got.At(p.X, p.Y) {
					t.Errorf("Expected region at %v to be removed:\n%s", p, got)
				}
			}
		})
	}
}

func TestSelectRegionsTies(t *testing.T) {
	img := parse("#.#.#", "#.#.#")
	got := SelectRegions(img, Dim0, 0, 2)
	if !got.Equal(parse("#.#..", "#.#..")) {
		t.Errorf("Ties should keep earliest regions, got:\n%s", got)
	}
}

func TestCloseGaps(t *testing.T) {
	cases := []struct {
		in     string
		maxgap int
		expect string
	}{
		{"#..#", 2, "####"},
		{"#...#", 2, "#...#"},
		{"..#.#..", 5, "..###.."},
		{"#.#...#", 1, "###...#"},
		{"......", 10, "......"},
		{"#", 3, "#"},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%s_%d", c.in, c.maxgap), func(t *testing.T) {
			b := parse(c.in)
			CloseGaps(b.Pix, c.maxgap)
			got := strings.TrimSpace(b.String())
			if got != c.expect {
				t.Errorf("Expected %s, got %s\n", c.expect, got)
			}
		})
	}
}

func TestColGaps(t *testing.T) {
	b := parse("#.", "..", "..", "#.")
	b.CloseColGaps(2)
	if !b.Equal(parse("#.", "#.", "#.", "#.")) {
		t.Errorf("Column gap not filled:\n%s", b)
	}
	b = parse("#..#", "....")
	b.CloseRowGaps(2)
	if !b.Equal(parse("####", "....")) {
		t.Errorf("Row gap not filled:\n%s", b)
	}
}

func TestRemoveNoise(t *testing.T) {
	img := parse(
		"#...##",
		"....##",
	)
	got := RemoveNoise(img, 2)
	if !got.Equal(parse("....##", "....##")) {
		t.Errorf("Small component not removed:\n%s", got)
	}
	if !RemoveNoise(img, 0).Equal(img) {
		t.Errorf("minsize 0 should leave the image alone\n")
	}
}

func TestPropagate(t *testing.T) {
	img := parse(
		"###..###",
		"###..###",
		"........",
		"####....",
	)
	seeds := NewLabels(img.W, img.H)
	seeds.Set(0, 0, 1)
	seeds.Set(5, 0, 2)
	seeds.Set(7, 1, 3)
	seeds.Set(2, 2, 4)

	got := Propagate(img, seeds)

	if got.At(2, 1) != 1 {
		t.Errorf("Expected left component to take label 1, got %d\n", got.At(2, 1))
	}
	for _, p := range []image.Point{{5, 0}, {6, 1}, {7, 0}} {
		if got.At(p.X, p.Y) != 0 {
			t.Errorf("Conflicting component pixel %v labeled %d\n", p, got.At(p.X, p.Y))
		}
	}
	if got.At(0, 3) != 0 {
		t.Errorf("Component touching no seed was labeled %d\n", got.At(0, 3))
	}
	if got.At(2, 2) != 0 {
		t.Errorf("Pixel outside the image was labeled %d\n", got.At(2, 2))
	}
}

func TestSpread(t *testing.T) {
	seeds := NewLabels(10, 3)
	seeds.Set(0, 1, 1)
	seeds.Set(9, 1, 2)

	got := Spread(seeds, 3)
	cases := []struct {
		p     image.Point
		label int
	}{
		{image.Point{0, 1}, 1},
		{image.Point{2, 1}, 1},
		{image.Point{2, 0}, 1},
		{image.Point{3, 1}, 0},
		{image.Point{5, 1}, 0},
		{image.Point{7, 2}, 2},
		{image.Point{9, 0}, 2},
	}
	for _, c := range cases {
		if got.At(c.p.X, c.p.Y) != c.label {
			t.Errorf("Expected label %d at %v, got %d\n", c.label, c.p, got.At(c.p.X, c.p.Y))
		}
	}

	wide := Spread(seeds, 100)
	for x := 0; x < 10; x++ {
		expect := 1
		if x >= 5 {
			expect = 2
		}
		if wide.At(x, 1) != expect {
			t.Errorf("Expected nearest label %d at x=%d, got %d\n", expect, x, wide.At(x, 1))
		}
	}

	empty := Spread(NewLabels(4, 4), 10)
	if empty.Max() != 0 {
		t.Errorf("Spreading no seeds produced labels\n")
	}
}

func TestRGBA(t *testing.T) {
	l := NewLabels(2, 1)
	l.Set(1, 0, 0x010203)
	img := l.RGBA()
	c := img.RGBAAt(1, 0)
	if c.R != 1 || c.G != 2 || c.B != 3 || c.A != 255 {
		t.Errorf("Wrong encoding of label: %v\n", c)
	}
}
