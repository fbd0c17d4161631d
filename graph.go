// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pageseg

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
)

const maxticks = 40

// PageStat records the results of segmenting a page, for graphing
type PageStat struct {
	Name  string
	Lines int
	Scale float64
}

type graphStat struct {
	pgnum, lines, scale float64
}

// pgnum finds the page number from the start of a page name, such as
// 12 from "0012" or "0012_bin"
func pgnum(name string) (float64, error) {
	name = filepath.Base(name)
	numend := strings.IndexAny(name, "_.")
	if numend == -1 {
		numend = len(name)
	}
	return strconv.ParseFloat(name[0:numend], 64)
}

// Graph creates a graph of the number of lines and the scale of each
// page in a book
func Graph(stats []PageStat, bookname string, w io.Writer) error {
	if len(stats) < 2 {
		return errors.New("Not enough pages to graph")
	}

	// Organise stats to sort them by page
	var graphstats []graphStat
	for _, s := range stats {
		n, err := pgnum(s.Name)
		if err != nil {
			continue
		}
		graphstats = append(graphstats, graphStat{n, float64(s.Lines), s.Scale})
	}

	// If we failed to get any page numbers, just fake the lot
	if len(graphstats) != len(stats) {
		graphstats = graphstats[:0]
		for i, s := range stats {
			graphstats = append(graphstats, graphStat{float64(i + 1), float64(s.Lines), s.Scale})
		}
	}

	sort.Slice(graphstats, func(i, j int) bool { return graphstats[i].pgnum < graphstats[j].pgnum })

	var xvalues, lines, scales []float64
	var ticks []chart.Tick
	tickevery := len(graphstats) / maxticks
	if tickevery < 1 {
		tickevery = 1
	}
	for i, s := range graphstats {
		xvalues = append(xvalues, s.pgnum)
		lines = append(lines, s.lines)
		scales = append(scales, s.scale)
		if i%tickevery == 0 {
			ticks = append(ticks, chart.Tick{Value: s.pgnum, Label: fmt.Sprintf("%.0f", s.pgnum)})
		}
	}
	// Make last tick the final page
	final := graphstats[len(graphstats)-1]
	ticks[len(ticks)-1] = chart.Tick{Value: final.pgnum, Label: fmt.Sprintf("%.0f", final.pgnum)}

	linesSeries := chart.ContinuousSeries{
		Name: "Lines",
		Style: chart.Style{
			StrokeColor: chart.ColorBlue,
			FillColor:   chart.ColorAlternateBlue,
		},
		XValues: xvalues,
		YValues: lines,
	}
	scaleSeries := chart.ContinuousSeries{
		Name: "Scale",
		Style: chart.Style{
			StrokeColor:     chart.ColorRed,
			StrokeDashArray: []float64{5.0, 5.0},
		},
		YAxis:   chart.YAxisSecondary,
		XValues: xvalues,
		YValues: scales,
	}

	graph := chart.Chart{
		Title:  bookname,
		Width:  3840,
		Height: 2160,
		XAxis: chart.XAxis{
			Name: "Page number",
			Range: &chart.ContinuousRange{
				Min: 0.0,
			},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: "Lines",
			Range: &chart.ContinuousRange{
				Min: 0.0,
			},
		},
		YAxisSecondary: chart.YAxis{
			Name: "Scale",
			Range: &chart.ContinuousRange{
				Min: 0.0,
			},
		},
		Series: []chart.Series{
			linesSeries,
			scaleSeries,
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}
