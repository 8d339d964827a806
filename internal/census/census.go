// Package census records breed populations over time and exports them as CSV
// or as a line chart.
package census

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"rps-ca/internal/combat"
	"rps-ca/internal/render"
)

// ErrTooFewSamples is returned when a chart is requested with fewer than two samples.
var ErrTooFewSamples = errors.New("census: need at least two samples to chart")

// Sample is the population of every breed after a given number of iterations.
type Sample struct {
	Iterations uint64
	Counts     [combat.Count]int
}

// Total returns the number of cells covered by the sample.
func (s Sample) Total() int {
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	return total
}

// Survivors returns how many breeds still hold at least one cell.
func (s Sample) Survivors() int {
	alive := 0
	for _, n := range s.Counts {
		if n > 0 {
			alive++
		}
	}
	return alive
}

// History is an append-only series of samples.
type History struct {
	Samples []Sample
}

// Record appends a sample.
func (h *History) Record(iterations uint64, counts [combat.Count]int) {
	h.Samples = append(h.Samples, Sample{Iterations: iterations, Counts: counts})
}

// Last returns the most recent sample.
func (h *History) Last() (Sample, bool) {
	if len(h.Samples) == 0 {
		return Sample{}, false
	}
	return h.Samples[len(h.Samples)-1], true
}

// FirstExtinction returns the iteration count of the first sample in which
// some breed had died out.
func (h *History) FirstExtinction() (uint64, bool) {
	for _, s := range h.Samples {
		if s.Survivors() < combat.Count {
			return s.Iterations, true
		}
	}
	return 0, false
}

// WriteCSV writes one row per sample: iterations followed by each breed count.
func (h *History) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{"iterations"}
	for _, b := range combat.Breeds() {
		header = append(header, b.String())
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	row := make([]string, 1+combat.Count)
	for _, s := range h.Samples {
		row[0] = strconv.FormatUint(s.Iterations, 10)
		for i, n := range s.Counts {
			row[1+i] = strconv.Itoa(n)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// RenderChart draws the population of each breed against iterations as a PNG.
func (h *History) RenderChart(w io.Writer, width, height int) error {
	if len(h.Samples) < 2 {
		return ErrTooFewSamples
	}
	xs := make([]float64, len(h.Samples))
	for i, s := range h.Samples {
		xs[i] = float64(s.Iterations)
	}
	total := float64(h.Samples[0].Total())

	series := make([]chart.Series, 0, combat.Count)
	for _, b := range combat.Breeds() {
		ys := make([]float64, len(h.Samples))
		for i, s := range h.Samples {
			ys[i] = float64(s.Counts[b])
		}
		c := render.BreedColor(b)
		series = append(series, chart.ContinuousSeries{
			Name:    b.String(),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A},
				StrokeWidth: 2,
			},
		})
	}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name: "Iterations",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.FormatFloat(f, 'f', 0, 64)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:  "Cells",
			Range: &chart.ContinuousRange{Min: 0, Max: total},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
