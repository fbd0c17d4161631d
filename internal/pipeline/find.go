// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rescribe.xyz/pageseg"
)

// null writer to enable non-verbose logging to be discarded
type NullWriter bool

func (w NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// pageSuffixes are the (lower case) suffixes of page images
var pageSuffixes = []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp"}

// derivedSuffixes are the suffixes of files made from a page, which
// are not pages themselves
var derivedSuffixes = []string{".nrm.png", ".pseg.png"}

const binSuffix = ".bin.png"

// IsPage reports whether a file name looks like a page image, rather
// than something made from one such as a page segmentation
func IsPage(path string) bool {
	lpath := strings.ToLower(path)
	for _, s := range derivedSuffixes {
		if strings.HasSuffix(lpath, s) {
			return false
		}
	}
	for _, s := range pageSuffixes {
		if strings.HasSuffix(lpath, s) {
			return true
		}
	}
	return false
}

// FindPages returns the paths of all page images in a directory
// (skipping dotfiles and subdirectories), sorted by name. A .bin.png
// is only included if there is no original page alongside it.
func FindPages(ctx context.Context, dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("Failed to read directory %s: %v", dir, err)
	}

	var found []string
	originals := make(map[string]bool)
	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		// skip files starting with . to prevent automatically generated
		// files like .DS_Store getting in the way
		if file.IsDir() || strings.HasPrefix(file.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, file.Name())
		if !IsPage(path) {
			continue
		}
		found = append(found, path)
		if !strings.HasSuffix(strings.ToLower(path), binSuffix) {
			originals[pageseg.PageBase(path)] = true
		}
	}

	var pages []string
	for _, p := range found {
		if strings.HasSuffix(strings.ToLower(p), binSuffix) && originals[pageseg.PageBase(p)] {
			continue
		}
		pages = append(pages, p)
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("No images found in %s", dir)
	}
	sort.Strings(pages)
	return pages, nil
}
