// Package audio holds the decoded sample buffer the selection engine
// operates on.
package audio

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-trim/codec"
	"github.com/cwbudde/algo-trim/timebase"
)

// Buffer is an immutable decoded audio file: flat interleaved samples, a
// channel count, a sample rate, and the duration derived from them. A new
// file replaces the buffer wholesale; nothing mutates it in place.
type Buffer struct {
	samples    []float64
	channels   int
	sampleRate int
	durationMs int
}

// DecodeError reports an unreadable or unsupported input file.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NewBuffer wraps decoded samples. The sample count must be a whole number
// of frames. The caller hands over ownership of samples.
func NewBuffer(samples []float64, channels, sampleRate int) (*Buffer, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("audio: channels must be > 0: %d", channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: sample rate must be > 0: %d", sampleRate)
	}
	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("audio: %d samples is not a whole number of %d-channel frames", len(samples), channels)
	}

	frames := len(samples) / channels

	return &Buffer{
		samples:    samples,
		channels:   channels,
		sampleRate: sampleRate,
		durationMs: timebase.SamplesToMs(frames, sampleRate),
	}, nil
}

// Load decodes an audio file via the codec registered for its extension.
func Load(path string) (*Buffer, error) {
	format, err := codec.DecodeFormat(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	dec, err := codec.DecoderFor(format)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	decoded, err := dec.Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	buf, err := NewBuffer(decoded.Samples, decoded.Channels, decoded.SampleRate)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	return buf, nil
}

// Samples returns the backing sample slice. Callers must treat it as
// read-only.
func (b *Buffer) Samples() []float64 { return b.samples }

// Channels returns the channel count.
func (b *Buffer) Channels() int { return b.channels }

// SampleRate returns the sample rate in Hz.
func (b *Buffer) SampleRate() int { return b.sampleRate }

// DurationMs returns the total duration in whole milliseconds.
func (b *Buffer) DurationMs() int { return b.durationMs }

// Frames returns the number of sample frames.
func (b *Buffer) Frames() int { return len(b.samples) / b.channels }

// Slice returns the interleaved samples between two millisecond positions.
// Both bounds are clamped into [0, DurationMs]; an inverted or degenerate
// range yields an empty slice. Interactive dragging produces such requests
// routinely, so Slice never fails.
func (b *Buffer) Slice(startMs, endMs int) []float64 {
	startMs = clampMs(startMs, b.durationMs)
	endMs = clampMs(endMs, b.durationMs)
	if startMs >= endMs {
		return nil
	}

	startFrame := timebase.MsToSamples(startMs, b.sampleRate)
	endFrame := timebase.MsToSamples(endMs, b.sampleRate)
	if endFrame > b.Frames() {
		endFrame = b.Frames()
	}
	if startFrame >= endFrame {
		return nil
	}

	return b.samples[startFrame*b.channels : endFrame*b.channels]
}

func clampMs(ms, durationMs int) int {
	if ms < 0 {
		return 0
	}
	if ms > durationMs {
		return durationMs
	}
	return ms
}
