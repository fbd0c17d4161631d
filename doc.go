// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

/*
Package pageseg finds the text lines on scanned book pages and puts
them in reading order.

A page is processed in a series of steps:

	- the scale of the text (roughly the height of a letter) is
	  estimated from the sizes of the ink components
	- horizontal rules much wider than a letter are removed
	- column separators are detected, from vertical strips of
	  whitespace with text edges on either side, and optionally from
	  black vertical rules
	- line seeds are found between the bottom and top edges of each
	  line of text
	- every ink component is given the label of the seed it touches,
	  with anything left over given the label of the nearest seed
	- the resulting lines are sorted into reading order, so that
	  within a column lines run top to bottom, and columns run left
	  to right

The result is a label raster, saved as <page>.pseg.png, in which each
pixel holds the number of the line it belongs to, plus an image of
each line saved as <page>/01xxxx.bin.png (and .nrm.png for the grey
version), with xxxx the line number in hexadecimal.

Results are saved through a storage connection, either LocalConn,
which writes to a local directory, or AwsConn, which uploads to S3.
Batches of pages are processed concurrently by the pipeline in
internal/pipeline, and the pageseg command in cmd/pageseg drives it.
*/
package pageseg
