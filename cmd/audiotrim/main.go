// Command audiotrim loads an audio file, renders the selected range as
// terminal plots, and optionally exports the selection to a new file.
//
// Usage:
//
//	audiotrim [flags] input-file
//
// Examples:
//
//	audiotrim song.wav
//	audiotrim -start 12.5 -end 31.2 -o chorus.wav song.wav
//	audiotrim -unit ms -start 1500 -end 9000 song.wav
//	audiotrim -mixdown -window hann song.wav
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-dsp/dsp/window"
	"github.com/cwbudde/algo-trim/analyze"
	"github.com/cwbudde/algo-trim/audio"
	"github.com/cwbudde/algo-trim/render"
	"github.com/cwbudde/algo-trim/timebase"
	"github.com/cwbudde/algo-trim/trim"

	_ "github.com/cwbudde/algo-trim/codec/wav"
)

func main() {
	start := flag.Float64("start", -1, "selection start in the chosen unit (default: 0)")
	end := flag.Float64("end", -1, "selection end in the chosen unit (default: full duration)")
	unitName := flag.String("unit", "seconds", "display unit: seconds or milliseconds")
	output := flag.String("o", "", "export the selection to this file (mp3, wav, ogg)")
	width := flag.Int("width", 72, "plot width in columns")
	height := flag.Int("height", 8, "waveform height in rows")
	mixdown := flag.Bool("mixdown", false, "average channels before analysis instead of flattening")
	windowName := flag.String("window", "", "analysis window (hann, hamming, blackman, blackmanharris, flattop)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: audiotrim [flags] input-file\n\n")
		fmt.Fprintf(os.Stderr, "Selects a time range of an audio file, plots it, and can export it.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *start, *end, *unitName, *output, *width, *height, *mixdown, *windowName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(input string, start, end float64, unitName, output string, width, height int, mixdown bool, windowName string) error {
	unit, err := timebase.ParseUnit(unitName)
	if err != nil {
		return err
	}

	buf, err := audio.Load(input)
	if err != nil {
		return err
	}

	printInfo(buf)

	var opts []analyze.Option
	if windowName != "" {
		t, ok := windowType(windowName)
		if !ok {
			return fmt.Errorf("unknown window %q", windowName)
		}
		opts = append(opts, analyze.WithWindow(t))
	}
	if mixdown {
		opts = append(opts, analyze.WithMixdown(buf.Channels()))
	}

	c := trim.NewController(render.NewText(os.Stdout, width, height), opts...)
	c.SetUnit(unit)
	c.SetBuffer(buf)

	if start >= 0 {
		c.StartSliderChanged(start)
	}
	if end >= 0 {
		c.EndSliderChanged(end)
	}

	if output == "" {
		return nil
	}

	if err := c.Export(output); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", output)

	return nil
}

func windowType(name string) (window.Type, bool) {
	switch name {
	case "hann":
		return window.TypeHann, true
	case "hamming":
		return window.TypeHamming, true
	case "blackman":
		return window.TypeBlackman, true
	case "blackmanharris":
		return window.TypeBlackmanHarris4Term, true
	case "flattop":
		return window.TypeFlatTop, true
	default:
		return 0, false
	}
}

func printInfo(buf *audio.Buffer) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "sample rate:\t%d Hz\n", buf.SampleRate())
	fmt.Fprintf(tw, "channels:\t%d\n", buf.Channels())
	fmt.Fprintf(tw, "duration:\t%d ms\n", buf.DurationMs())
	tw.Flush()
}
