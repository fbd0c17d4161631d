// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/jung-kurt/gofpdf"
)

const pageWidth = 5 // pageWidth in inches

// pxToPt converts a pixel value into a pt value (72 pts per inch)
// This uses pageWidth to determine the appropriate value
func pxToPt(i int) float64 {
	return float64(i) / pageWidth
}

// Fpdf is a PDF for reviewing segmentations, with each page showing
// the boxes of its lines and their reading order
type Fpdf struct {
	fpdf *gofpdf.Fpdf
}

// Setup creates a new PDF with appropriate settings and fonts
func (p *Fpdf) Setup() error {
	p.fpdf = gofpdf.New("P", "pt", "A4", "")
	p.fpdf.SetFont("Helvetica", "B", 10)
	p.fpdf.SetAutoPageBreak(false, float64(0))
	return p.fpdf.Error()
}

// AddPage adds a page to the pdf showing img with a numbered box
// drawn around each line
func (p *Fpdf) AddPage(name string, img image.Image, lines []Line) error {
	var buf bytes.Buffer
	err := png.Encode(&buf, img)
	if err != nil {
		return fmt.Errorf("Could not encode image %s: %v", name, err)
	}

	b := img.Bounds()
	p.fpdf.AddPageFormat("P", gofpdf.SizeType{Wd: pxToPt(b.Dx()), Ht: pxToPt(b.Dy())})

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	_ = p.fpdf.RegisterImageOptionsReader(name, opts, &buf)
	p.fpdf.ImageOptions(name, 0, 0, pxToPt(b.Dx()), pxToPt(b.Dy()), false, opts, 0, "")

	p.fpdf.SetDrawColor(255, 0, 0)
	p.fpdf.SetTextColor(255, 0, 0)
	p.fpdf.SetLineWidth(0.5)
	for _, l := range lines {
		r := l.Bounds
		p.fpdf.Rect(pxToPt(r.Min.X), pxToPt(r.Min.Y), pxToPt(r.Dx()), pxToPt(r.Dy()), "D")
		p.fpdf.SetXY(pxToPt(r.Min.X), pxToPt(r.Min.Y)-10)
		p.fpdf.CellFormat(20, 10, fmt.Sprintf("%d", l.Rank), "", 0, "LB", false, 0, "")
	}
	return p.fpdf.Error()
}

// Save saves the PDF to the file at path
func (p *Fpdf) Save(path string) error {
	return p.fpdf.OutputFileAndClose(path)
}
