// Package render draws analysis results as terminal block graphics. It is
// the thin rendering adapter between the selection engine and a plain
// text surface; anything fancier (a real canvas, a GUI plot) replaces this
// package behind the same Renderer contract.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/cwbudde/algo-trim/analyze"
)

var shadeChars = []rune(" ░▒▓█")

// Text renders waveform and spectrum plots as rows of block characters,
// with the selection boundaries marked above the waveform.
type Text struct {
	w      io.Writer
	width  int
	height int
}

// NewText creates a text renderer. Width is the plot width in columns,
// height the waveform height in rows.
func NewText(w io.Writer, width, height int) *Text {
	if width < 8 {
		width = 8
	}
	if height < 1 {
		height = 1
	}
	return &Text{w: w, width: width, height: height}
}

// Render draws the waveform with boundary markers, then the spectrum.
func (t *Text) Render(res analyze.Result, startDisplay, endDisplay float64) {
	fmt.Fprintf(t.w, "selection [%g, %g]\n", startDisplay, endDisplay)

	if len(res.Amplitudes) == 0 {
		fmt.Fprintln(t.w, "(empty selection)")
		return
	}

	t.drawMarkers(startDisplay, endDisplay)
	t.drawWaveform(res.Amplitudes)
	t.drawSpectrum(res.SpectrumMagnitudes)
}

// drawMarkers prints the start/end marker line. Markers sit at the plot
// edges because the plotted range always spans exactly the selection.
func (t *Text) drawMarkers(startDisplay, endDisplay float64) {
	line := make([]rune, t.width)
	for i := range line {
		line[i] = ' '
	}
	line[0] = 'S'
	line[t.width-1] = 'E'
	if endDisplay < startDisplay {
		line[0], line[t.width-1] = 'E', 'S'
	}
	fmt.Fprintln(t.w, string(line))
}

func (t *Text) drawWaveform(amps []float64) {
	cols := columnPeaks(amps, t.width)

	for row := t.height; row >= 1; row-- {
		threshold := float64(row-1) / float64(t.height)
		var b strings.Builder
		for _, amp := range cols {
			if amp > threshold {
				b.WriteRune('█')
			} else {
				b.WriteRune(' ')
			}
		}
		fmt.Fprintln(t.w, b.String())
	}
}

func (t *Text) drawSpectrum(mags []float64) {
	if len(mags) == 0 {
		return
	}

	cols := columnPeaks(mags, t.width)

	peak := 0.0
	for _, v := range cols {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range cols {
		idx := int(v / peak * float64(len(shadeChars)-1))
		if idx >= len(shadeChars) {
			idx = len(shadeChars) - 1
		}
		b.WriteRune(shadeChars[idx])
	}
	fmt.Fprintln(t.w, b.String())
}

// columnPeaks downsamples a series to width columns, keeping the peak
// magnitude of each column.
func columnPeaks(data []float64, width int) []float64 {
	cols := make([]float64, width)
	perCol := float64(len(data)) / float64(width)

	for c := range cols {
		lo := int(float64(c) * perCol)
		hi := int(float64(c+1) * perCol)
		if hi > len(data) {
			hi = len(data)
		}
		if lo >= hi {
			continue
		}
		for i := lo; i < hi; i++ {
			if a := math.Abs(data[i]); a > cols[c] {
				cols[c] = a
			}
		}
	}

	return cols
}
