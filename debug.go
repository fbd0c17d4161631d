// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"rescribe.xyz/pageseg/filters"
	"rescribe.xyz/pageseg/morph"
)

// debugger saves intermediate images of a page. A nil debugger
// saves nothing, so calls to it needn't be guarded.
type debugger struct {
	dir    string
	name   string
	logger *log.Logger
}

func (d *debugger) save(step string, img image.Image) {
	if d == nil {
		return
	}
	path := filepath.Join(d.dir, fmt.Sprintf("%s_%s.png", filepath.Base(d.name), step))
	err := writePNG(path, img)
	if err != nil && d.logger != nil {
		d.logger.Printf("Error saving debug image %s: %v\n", path, err)
	}
}

func (d *debugger) saveBitmap(step string, b *morph.Bitmap) {
	if d == nil {
		return
	}
	d.save(step, b.Mask())
}

func (d *debugger) saveGrid(step string, g *filters.Grid) {
	if d == nil {
		return
	}
	d.save(step, g.Gray())
}

func (d *debugger) saveLabels(step string, l *morph.Labels) {
	if d == nil {
		return
	}
	d.save(step, l.RGBA())
}

// writePNG encodes an image as PNG to path
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Error creating file %s: %w", path, err)
	}
	err = png.Encode(f, img)
	if err != nil {
		f.Close()
		return fmt.Errorf("Error encoding png %s: %w", path, err)
	}
	return f.Close()
}
