// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// pageseg finds the lines of text on page images, in reading order,
// saving a page segmentation and an image of each line.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"rescribe.xyz/pageseg"
	"rescribe.xyz/pageseg/internal/pipeline"
)

const usage = `Usage: pageseg [-v] [-o outdir] [-aws bucket] [-graph graph.png] [-pdf review.pdf] page.png|pagedir...

Segments page images into lines of text, in reading order.

For each page a page segmentation (page.pseg.png) is saved, in which
each line is coloured 0x01nnnn, where nnnn is its position in reading
order, along with a black and white image of each line
(page/01nnnn.bin.png). Pages which have been binarized already can be
given as page.bin.png, and a grey image of the page can be provided as
page.nrm.png, which is used for grey line images.

Pages which can't be segmented are skipped, and the exit status is 1
if any were.
`

// Storage is where the results for each page are saved
type Storage interface {
	Init() error
	Log(v ...interface{})
	Upload(bucket string, key string, path string) error
	DeleteObjects(bucket string, keys []string) error
	StorageId() string
}

// findAll expands any directories in args into the pages they contain
func findAll(ctx context.Context, args []string) ([]string, error) {
	var paths []string
	for _, a := range args {
		info, err := os.Stat(a)
		if err != nil {
			return paths, fmt.Errorf("Error opening %s: %v", a, err)
		}
		if !info.IsDir() {
			paths = append(paths, a)
			continue
		}
		found, err := pipeline.FindPages(ctx, a)
		if err != nil {
			return paths, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func saveGraph(outcomes []pipeline.Outcome, path string) error {
	var stats []pageseg.PageStat
	for _, o := range outcomes {
		if o.Err != nil {
			continue
		}
		stats = append(stats, pageseg.PageStat{Name: o.Name, Lines: o.Lines, Scale: o.Scale})
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Error creating file %s: %v", path, err)
	}
	defer f.Close()
	return pageseg.Graph(stats, filepath.Base(filepath.Dir(path)), f)
}

func savePdf(outcomes []pipeline.Outcome, conf *pageseg.Config, path string) error {
	var p pageseg.Fpdf
	err := p.Setup()
	if err != nil {
		return fmt.Errorf("Error setting up pdf: %v", err)
	}
	for _, o := range outcomes {
		if o.Err != nil {
			continue
		}
		page, err := pageseg.LoadPage(o.Path, conf)
		if err != nil {
			return fmt.Errorf("Error reloading %s for pdf: %v", o.Path, err)
		}
		var lines []pageseg.Line
		for i, b := range o.Boxes {
			lines = append(lines, pageseg.Line{Bounds: b, Rank: i + 1})
		}
		err = p.AddPage(filepath.Base(o.Name), page.Gray, lines)
		if err != nil {
			return fmt.Errorf("Error adding %s to pdf: %v", o.Path, err)
		}
	}
	return p.Save(path)
}

func main() {
	def := pageseg.DefaultConfig()

	verbose := flag.Bool("v", false, "verbose")
	outdir := flag.String("o", ".", "directory to save results to")
	bucket := flag.String("aws", "", "save results to this S3 bucket, rather than the output directory")
	graph := flag.String("graph", "", "save a graph of lines and scale per page to this file")
	pdfpath := flag.String("pdf", "", "save a pdf showing the lines found on each page to this file")

	conf := pageseg.DefaultConfig()
	flag.Float64Var(&conf.Zoom, "zoom", def.Zoom, "zoom used to estimate the background of grey pages")
	flag.Float64Var(&conf.MinScale, "minscale", def.MinScale, "minimum scale permitted")
	flag.IntVar(&conf.MaxLines, "maxlines", def.MaxLines, "maximum number of lines permitted")
	flag.Float64Var(&conf.Scale, "scale", def.Scale, "the basic scale of the text, estimated if 0")
	flag.Float64Var(&conf.HScale, "hscale", def.HScale, "non-standard scaling of horizontal parameters")
	flag.Float64Var(&conf.VScale, "vscale", def.VScale, "non-standard scaling of vertical parameters")
	flag.Float64Var(&conf.Threshold, "threshold", def.Threshold, "baseline threshold")
	flag.IntVar(&conf.Noise, "noise", def.Noise, "noise threshold for removing small components from lines")
	flag.BoolVar(&conf.UseGauss, "usegauss", def.UseGauss, "use gaussian instead of uniform smoothing")
	flag.IntVar(&conf.MaxSeps, "maxseps", def.MaxSeps, "maximum black column separators")
	flag.IntVar(&conf.SepWiden, "sepwiden", def.SepWiden, "widen black separators, to account for warping")
	flag.BoolVar(&conf.BlackSeps, "blackseps", def.BlackSeps, "also check for black column separators")
	flag.IntVar(&conf.MaxColSeps, "maxcolseps", def.MaxColSeps, "maximum whitespace column separators")
	flag.Float64Var(&conf.CsMinAspect, "csminaspect", def.CsMinAspect, "minimum aspect ratio for column separators")
	flag.Float64Var(&conf.CsMinHeight, "csminheight", def.CsMinHeight, "minimum column height, in multiples of the scale")
	flag.IntVar(&conf.Pad, "pad", def.Pad, "padding for extracted lines")
	flag.IntVar(&conf.Expand, "expand", def.Expand, "expand mask for grey line extraction")
	flag.IntVar(&conf.Parallel, "parallel", def.Parallel, "number of pages to process at once")
	flag.BoolVar(&conf.Debug, "debug", def.Debug, "save intermediate images")
	flag.StringVar(&conf.DebugDir, "debugdir", ".", "directory to save intermediate images to")
	flag.BoolVar(&conf.Gray, "gray", def.Gray, "also save grey line images")
	flag.BoolVar(&conf.NoCheck, "nocheck", def.NoCheck, "skip checking that pages look like pages of text")
	flag.StringVar(&conf.Binarize, "binarize", def.Binarize, "method to binarize grey pages with (otsu or sauvola)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	var verboselog *log.Logger
	if *verbose {
		verboselog = log.New(os.Stdout, "", log.LstdFlags)
	} else {
		var n pipeline.NullWriter
		verboselog = log.New(n, "", log.LstdFlags)
		conf.Quiet = true
	}
	logger := log.New(os.Stderr, "", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	paths, err := findAll(ctx, flag.Args())
	if err != nil {
		log.Fatalln(err)
	}

	var conn Storage
	if *bucket != "" {
		aws := &pageseg.AwsConn{Bucket: *bucket, Logger: verboselog}
		conn = aws
		err = conn.Init()
		if err != nil {
			log.Fatalln("Error setting up cloud connection:", err)
		}
		err = aws.CreateBucket(*bucket)
		if err != nil {
			log.Fatalln(err)
		}
	} else {
		conn = &pageseg.LocalConn{Dir: *outdir, Logger: verboselog}
		err = conn.Init()
		if err != nil {
			log.Fatalln("Error setting up output directory:", err)
		}
	}

	outcomes := pipeline.Run(ctx, paths, conf, conn, logger)

	skipped := 0
	for _, o := range outcomes {
		if o.Err != nil {
			skipped++
			continue
		}
		verboselog.Printf("%s: %d lines, scale %.2f\n", o.Path, o.Lines, o.Scale)
	}

	if *graph != "" {
		err = saveGraph(outcomes, *graph)
		if err != nil {
			log.Println("Error saving graph:", err)
		}
	}
	if *pdfpath != "" {
		err = savePdf(outcomes, conf, *pdfpath)
		if err != nil {
			log.Println("Error saving pdf:", err)
		}
	}

	if skipped > 0 {
		log.Printf("Skipped %d of %d pages\n", skipped, len(outcomes))
		os.Exit(1)
	}
}
