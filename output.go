// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"rescribe.xyz/pageseg/morph"
)

// Output is a file written for a page, and the key it should be
// stored under
type Output struct {
	Key, Path string
}

// SegSuffix is the suffix of the key of a page segmentation
const SegSuffix = ".pseg.png"

// SegKey returns the storage key of the page segmentation of a page
func SegKey(name string) string {
	return filepath.Base(name) + SegSuffix
}

// LineKey returns the storage key of a line image of a page, with
// suffix either ".bin.png" or ".nrm.png"
func LineKey(name string, rank int, suffix string) string {
	return fmt.Sprintf("%s/01%04x%s", filepath.Base(name), rank, suffix)
}

// WriteOutputs saves the page segmentation and line images of a page
// into dir, returning the files written
func WriteOutputs(dir string, page *Page, res *Result, conf *Config) ([]Output, error) {
	var outputs []Output
	write := func(key string, img image.Image) error {
		path := filepath.Join(dir, filepath.FromSlash(key))
		err := os.MkdirAll(filepath.Dir(path), 0755)
		if err != nil {
			return fmt.Errorf("Error creating directory for %s: %w", key, err)
		}
		err = writePNG(path, img)
		if err != nil {
			return err
		}
		outputs = append(outputs, Output{Key: key, Path: path})
		return nil
	}

	err := write(SegKey(page.Name), res.Segmentation.RGBA())
	if err != nil {
		return outputs, err
	}

	bin := morph.RemoveNoise(page.Ink, conf.Noise).Gray()
	for _, l := range res.Lines {
		line := ExtractMasked(bin, l, conf.Pad, conf.Expand)
		err = write(LineKey(page.Name, l.Rank, binSuffix), line)
		if err != nil {
			return outputs, err
		}
		if conf.Gray && page.Gray != nil {
			line = ExtractMasked(page.Gray, l, conf.Pad, conf.Expand)
			err = write(LineKey(page.Name, l.Rank, nrmSuffix), line)
			if err != nil {
				return outputs, err
			}
		}
	}
	return outputs, nil
}
