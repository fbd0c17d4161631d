// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalConn is a storage connection that doesn't rely on any "cloud"
// services, instead saving everything to a directory on the local
// machine. This is particularly useful for testing.
type LocalConn struct {
	// these should be set before running Init(), or left to defaults
	Dir    string
	Bucket string
	Logger *log.Logger
}

// Init creates the storage directory if needed
func (a *LocalConn) Init() error {
	if a.Dir == "" {
		a.Dir = "."
	}
	err := os.MkdirAll(filepath.Join(a.Dir, a.Bucket), 0755)
	if err != nil {
		return fmt.Errorf("Error creating storage directory: %v", err)
	}

	if a.Logger == nil {
		a.Logger = log.New(os.Stdout, "", 0)
	}

	return nil
}

// StorageId returns the bucket results are saved to
func (a *LocalConn) StorageId() string {
	return a.Bucket
}

// ListObjects lists the keys in a bucket starting with prefix
func (a *LocalConn) ListObjects(bucket string, prefix string) ([]string, error) {
	var names []string
	dir := filepath.Join(a.Dir, bucket)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		n, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		n = filepath.ToSlash(n)
		if strings.HasPrefix(n, prefix) {
			names = append(names, n)
		}
		return nil
	})
	sort.Strings(names)
	return names, err
}

// Upload just copies the file from path to Dir/bucket/key
func (a *LocalConn) Upload(bucket string, key string, path string) error {
	d := filepath.Join(a.Dir, bucket, filepath.Dir(key))
	err := os.MkdirAll(d, 0755)
	if err != nil {
		return fmt.Errorf("Error creating directory %s: %v", d, err)
	}
	f, err := os.Create(filepath.Join(a.Dir, bucket, key))
	if err != nil {
		return err
	}
	defer f.Close()

	fin, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fin.Close()
	_, err = io.Copy(f, fin)
	return err
}

// DeleteObjects removes the files for keys from Dir/bucket. Keys
// which are not present are ignored.
func (a *LocalConn) DeleteObjects(bucket string, keys []string) error {
	for _, k := range keys {
		err := os.Remove(filepath.Join(a.Dir, bucket, filepath.FromSlash(k)))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("Error deleting %s: %v", k, err)
		}
	}
	return nil
}

// Log records an item with the Logger. Arguments are handled as with
// fmt.Println.
func (a *LocalConn) Log(v ...interface{}) {
	a.Logger.Println(v...)
}
