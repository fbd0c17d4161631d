// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// pipeline is a package used by the pageseg command, which segments
// batches of pages concurrently, using channels to hand pages to a
// pool of workers. Note that it is considered an "internal" package,
// not intended for external use, and no guarantee is made of the
// stability of any interfaces provided.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"strings"
	"sync"

	"rescribe.xyz/pageseg"
)

type Uploader interface {
	Log(v ...interface{})
	Upload(bucket string, key string, path string) error
	DeleteObjects(bucket string, keys []string) error
	StorageId() string
}

// Outcome is the result of processing one page. If Err is set the
// page was skipped, and nothing was saved for it.
type Outcome struct {
	Path  string
	Name  string
	Scale float64
	Lines int
	// Boxes are the bounds of each line, in reading order
	Boxes []image.Rectangle
	Err   error
}

// Run segments each page in paths, using conf.Parallel workers, and
// saves the results with conn. A page which fails is logged and
// skipped, without affecting any other page. Cancelling ctx stops
// any more pages from being started; those pages are returned with
// the context's error. Outcomes are returned in the same order as
// paths.
func Run(ctx context.Context, paths []string, conf *pageseg.Config, conn Uploader, logger *log.Logger) []Outcome {
	workers := conf.Parallel
	if workers < 1 {
		workers = 1
	}

	outcomes := make([]Outcome, len(paths))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = processPage(paths[i], conf, conn, logger)
			}
		}()
	}

	sent := 0
feed:
	for sent < len(paths) && ctx.Err() == nil {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- sent:
			sent++
		}
	}
	close(jobs)
	wg.Wait()

	for i := sent; i < len(paths); i++ {
		outcomes[i] = Outcome{Path: paths[i], Err: ctx.Err()}
	}
	return outcomes
}

// processPage loads, segments and saves a single page. Any panic is
// recovered and returned as the page's error.
func processPage(path string, conf *pageseg.Config, conn Uploader, logger *log.Logger) (o Outcome) {
	o.Path = path
	defer func() {
		if r := recover(); r != nil {
			o.Err = fmt.Errorf("Error processing %s: %v", path, r)
		}
		if o.Err != nil {
			logger.Printf("Skipping %s: %v\n", path, o.Err)
		}
	}()

	page, err := pageseg.LoadPage(path, conf)
	if err != nil {
		o.Err = err
		return o
	}
	o.Name = page.Name

	res, err := pageseg.Process(page.Name, page.Ink, conf, logger)
	if err != nil {
		o.Err = err
		return o
	}

	dir, err := os.MkdirTemp("", "pageseg")
	if err != nil {
		o.Err = fmt.Errorf("Error creating staging directory: %w", err)
		return o
	}
	defer os.RemoveAll(dir)

	outputs, err := pageseg.WriteOutputs(dir, page, res, conf)
	if err != nil {
		o.Err = err
		return o
	}

	err = upload(outputs, conn, conf.Quiet)
	if err != nil {
		o.Err = err
		return o
	}

	o.Scale = res.Scale
	o.Lines = len(res.Lines)
	for _, l := range res.Lines {
		o.Boxes = append(o.Boxes, l.Bounds)
	}
	return o
}

// upload saves each output with conn. The page segmentation is saved
// last, so a page is only complete once it is present. If any upload
// fails, the outputs already saved are deleted again.
func upload(outputs []pageseg.Output, conn Uploader, quiet bool) error {
	var ordered []pageseg.Output
	var segs []pageseg.Output
	for _, out := range outputs {
		if strings.HasSuffix(out.Key, pageseg.SegSuffix) {
			segs = append(segs, out)
		} else {
			ordered = append(ordered, out)
		}
	}
	ordered = append(ordered, segs...)

	var done []string
	for _, out := range ordered {
		if !quiet {
			conn.Log("Uploading", out.Key)
		}
		err := conn.Upload(conn.StorageId(), out.Key, out.Path)
		if err != nil {
			delerr := conn.DeleteObjects(conn.StorageId(), done)
			if delerr != nil {
				conn.Log("Error removing partial upload:", delerr)
			}
			return fmt.Errorf("Error uploading %s: %w", out.Key, err)
		}
		done = append(done, out.Key)
	}
	return nil
}
