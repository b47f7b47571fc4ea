package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

// Series is a named sequence of values drawn as one line of a plot.
type Series struct {
	Name   string
	Values []float64
}

type seriesRange struct {
	min float64
	max float64
}

type lineStyle struct {
	name   string
	period int
	on     int
}

const (
	defaultPlotHeight = 8
	minPlotWidth      = 10
	axisLabelTop      = "max"
	axisLabelBottom   = "min"
	axisSeparator     = " │ "
	scaleNote         = "Each series is scaled to its own range."
	colorReset        = "\x1b[0m"
)

var lineStyles = []lineStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

var seriesColors = []string{
	"\x1b[36m", // cyan
	"\x1b[35m", // magenta
	"\x1b[33m", // yellow
}

// PlotSeries draws the series as a braille line chart, width cells wide and
// height rows tall. Empty series are skipped.
func PlotSeries(w io.Writer, title string, series []Series, width, height int, useColor bool) error {
	series = nonEmptySeries(series)
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	width = max(width, minPlotWidth)

	scaled := make([]Series, len(series))
	ranges := make([]seriesRange, len(series))
	cells := make([][][]uint8, len(series))
	for i, s := range series {
		scaled[i] = Series{Name: s.Name, Values: resampleSeries(s.Values, width)}
		ranges[i] = valueRange(scaled[i].Values)
		cells[i] = makeCells(height, width)
		drawSeries(cells[i], scaled[i].Values, ranges[i], lineStyles[i%len(lineStyles)], height)
	}

	lines := []string{}
	if title != "" {
		lines = append(lines, title)
	}
	lines = append(lines, scaleNote)
	for i, s := range scaled {
		lines = append(lines, fmt.Sprintf("%s: min=%.2f max=%.2f", s.Name, ranges[i].min, ranges[i].max))
	}
	labelWidth := max(len(axisLabelTop), len(axisLabelBottom))
	for y := 0; y < height; y++ {
		label := ""
		switch {
		case y == 0:
			label = axisLabelTop
		case y == height-1:
			label = axisLabelBottom
		}
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%*s%s", labelWidth, label, axisSeparator))
		for x := 0; x < width; x++ {
			mask, owner := composeCell(cells, x, y)
			ch := rune(0x2800 + int(mask))
			if useColor && owner >= 0 {
				row.WriteString(seriesColors[owner%len(seriesColors)])
				row.WriteRune(ch)
				row.WriteString(colorReset)
			} else {
				row.WriteRune(ch)
			}
		}
		lines = append(lines, row.String())
	}
	lines = append(lines, renderLegend(scaled, useColor), "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// PlotWidthFor returns the number of plot cells that fit in totalWidth
// columns once the axis is drawn.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axisWidth := max(len(axisLabelTop), len(axisLabelBottom)) + utf8.RuneCountInString(axisSeparator)
	return max(totalWidth-axisWidth, minPlotWidth)
}

func nonEmptySeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func valueRange(values []float64) seriesRange {
	r := seriesRange{min: math.Inf(1), max: math.Inf(-1)}
	for _, v := range values {
		r.min = math.Min(r.min, v)
		r.max = math.Max(r.max, v)
	}
	// A flat series is drawn through the middle.
	if math.Abs(r.max-r.min) < 1e-9 {
		r.min--
		r.max++
	}
	return r
}

func drawSeries(cells [][]uint8, values []float64, r seriesRange, style lineStyle, height int) {
	dotRows := height * 4
	prevX, prevY := -1, -1
	for x, v := range values {
		px, py := x*2, valueToRow(v, r, dotRows)
		if prevX >= 0 {
			drawLine(prevX, prevY, px, py, func(dx, dy int) {
				if style.shouldPlot(dx) {
					setBrailleDot(cells, dx, dy)
				}
			})
		} else if style.shouldPlot(px) {
			setBrailleDot(cells, px, py)
		}
		prevX, prevY = px, py
	}
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return cells
}

// composeCell merges the dots of every series; the first series with a dot
// in the cell owns its colour.
func composeCell(cells [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	owner := -1
	for i, c := range cells {
		if c[y][x] == 0 {
			continue
		}
		if owner == -1 {
			owner = i
		}
		mask |= c[y][x]
	}
	return mask, owner
}

func (ls lineStyle) shouldPlot(x int) bool {
	if ls.period <= 1 {
		return true
	}
	return x%ls.period < ls.on
}

// resampleSeries averages buckets when shrinking and interpolates linearly
// when stretching.
func resampleSeries(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	switch {
	case len(values) == width:
		copy(out, values)
	case len(values) > width:
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := max((i+1)*len(values)/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := 0; i < width; i++ {
			pos := float64(i) * float64(len(values)-1) / float64(width-1)
			idx := int(pos)
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func valueToRow(v float64, r seriesRange, rows int) int {
	if rows <= 1 {
		return 0
	}
	pos := (v - r.min) / (r.max - r.min)
	row := int(math.Round((1 - pos) * float64(rows-1)))
	return max(0, min(row, rows-1))
}

func renderLegend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := fmt.Sprintf("%s (%s)", s.Name, lineStyles[i%len(lineStyles)].name)
		if useColor {
			label = seriesColors[i%len(seriesColors)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// drawLine walks the Bresenham line from (x0, y0) to (x1, y1).
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// brailleDots maps a dot position within a 2x4 braille cell to its bit.
var brailleDots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func setBrailleDot(cells [][]uint8, x, y int) {
	cellY, cellX := y/4, x/2
	if x < 0 || y < 0 || cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDots[x%2][y%4]
}
