// Package codec defines the narrow decode/encode contract between the
// selection engine and audio file formats.
//
// Formats register themselves, in the manner of the standard image package.
// The engine only ever sees flat interleaved float64 samples in [-1, 1].
package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
)

// Format identifies an audio file format by its canonical extension.
type Format string

const (
	FormatMP3  Format = "mp3"
	FormatWAV  Format = "wav"
	FormatOGG  Format = "ogg"
	FormatFLAC Format = "flac"
)

// ErrUnsupportedFormat reports an extension outside the allow-list or a
// format with no registered implementation.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decoded holds the output of a successful decode.
//
// Samples are interleaved frame by frame: frame i occupies
// Samples[i*Channels : (i+1)*Channels].
type Decoded struct {
	Samples    []float64
	Channels   int
	SampleRate int
}

// Decoder reads an audio stream into interleaved float64 samples.
type Decoder interface {
	Decode(r io.Reader) (*Decoded, error)
}

// Encoder writes interleaved float64 samples as an audio stream.
type Encoder interface {
	Encode(w io.Writer, samples []float64, channels, sampleRate int) error
}

var (
	mu       sync.RWMutex
	decoders = map[Format]Decoder{}
	encoders = map[Format]Encoder{}
)

// decodable and encodable are the fixed extension allow-lists. Saving to
// flac is intentionally absent.
var (
	decodable = map[Format]bool{FormatMP3: true, FormatWAV: true, FormatOGG: true, FormatFLAC: true}
	encodable = map[Format]bool{FormatMP3: true, FormatWAV: true, FormatOGG: true}
)

// RegisterDecoder makes a decoder available for a format.
func RegisterDecoder(f Format, d Decoder) {
	mu.Lock()
	defer mu.Unlock()
	decoders[f] = d
}

// RegisterEncoder makes an encoder available for a format.
func RegisterEncoder(f Format, e Encoder) {
	mu.Lock()
	defer mu.Unlock()
	encoders[f] = e
}

// DecodeFormat resolves the format of an input path from its extension,
// restricted to the open allow-list (mp3, wav, ogg, flac).
func DecodeFormat(path string) (Format, error) {
	f := formatFromPath(path)
	if !decodable[f] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	return f, nil
}

// EncodeFormat resolves the target format of an output path from its
// extension, restricted to the save allow-list (mp3, wav, ogg).
func EncodeFormat(path string) (Format, error) {
	f := formatFromPath(path)
	if !encodable[f] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	return f, nil
}

// DecoderFor returns the registered decoder for a format.
func DecoderFor(f Format) (Decoder, error) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := decoders[f]
	if !ok {
		return nil, fmt.Errorf("%w: no decoder for %q", ErrUnsupportedFormat, f)
	}
	return d, nil
}

// EncoderFor returns the registered encoder for a format.
func EncoderFor(f Format) (Encoder, error) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := encoders[f]
	if !ok {
		return nil, fmt.Errorf("%w: no encoder for %q", ErrUnsupportedFormat, f)
	}
	return e, nil
}

func formatFromPath(path string) Format {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return Format(ext)
}
