// Package wav implements the codec contract for RIFF/WAVE files.
//
// Decoding accepts PCM (8/16/24/32-bit integer) and IEEE float (32/64-bit)
// data, including the extensible format variant. Encoding always writes
// 16-bit PCM, which every consumer of the trimmed output understands.
package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-trim/codec"
)

func init() {
	codec.RegisterDecoder(codec.FormatWAV, Codec{})
	codec.RegisterEncoder(codec.FormatWAV, Codec{})
}

var (
	subFormatPCM   = [16]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71}
	subFormatFloat = [16]byte{0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71}
)

const (
	formatPCM        = 1
	formatFloat      = 3
	formatExtensible = 0xFFFE

	// maxDataSize caps decodable payloads at 1 GiB.
	maxDataSize = 1 << 30
)

// Codec decodes and encodes WAV streams.
type Codec struct{}

type header struct {
	audioFormat   uint16
	channels      uint16
	sampleRate    uint32
	blockAlign    uint16
	bitsPerSample uint16
	subFormat     [16]byte
	hasSubFormat  bool
}

// Decode reads a complete WAV stream into interleaved float64 samples.
func (Codec) Decode(r io.Reader) (*codec.Decoded, error) {
	hdr, data, err := readChunks(r)
	if err != nil {
		return nil, err
	}

	isFloat := hdr.audioFormat == formatFloat
	isPCM := hdr.audioFormat == formatPCM

	if hdr.audioFormat == formatExtensible {
		if !hdr.hasSubFormat {
			return nil, fmt.Errorf("wav: extensible format without subformat")
		}
		switch hdr.subFormat {
		case subFormatPCM:
			isPCM = true
		case subFormatFloat:
			isFloat = true
		default:
			return nil, fmt.Errorf("wav: unsupported extensible subformat")
		}
	}

	if !isPCM && !isFloat {
		return nil, fmt.Errorf("wav: unsupported audio format %d", hdr.audioFormat)
	}

	bytesPerSample := int(hdr.bitsPerSample) / 8
	if bytesPerSample == 0 {
		return nil, fmt.Errorf("wav: invalid bit depth %d", hdr.bitsPerSample)
	}

	count := len(data) / bytesPerSample
	samples := make([]float64, count)

	for i := 0; i < count; i++ {
		raw := data[i*bytesPerSample : (i+1)*bytesPerSample]

		s, err := decodeSample(raw, hdr.bitsPerSample, isFloat)
		if err != nil {
			return nil, err
		}
		samples[i] = s
	}

	// Drop a trailing partial frame so frame math stays exact.
	frames := count / int(hdr.channels)
	samples = samples[:frames*int(hdr.channels)]

	return &codec.Decoded{
		Samples:    samples,
		Channels:   int(hdr.channels),
		SampleRate: int(hdr.sampleRate),
	}, nil
}

func decodeSample(raw []byte, bits uint16, isFloat bool) (float64, error) {
	if isFloat {
		switch bits {
		case 32:
			return float64(math.Float32frombits(binary.LittleEndian.Uint32(raw))), nil
		case 64:
			return math.Float64frombits(binary.LittleEndian.Uint64(raw)), nil
		default:
			return 0, fmt.Errorf("wav: unsupported float bit depth %d", bits)
		}
	}

	switch bits {
	case 8:
		// 8-bit PCM is unsigned.
		return (float64(raw[0]) - 128) / 128, nil
	case 16:
		return float64(int16(binary.LittleEndian.Uint16(raw))) / 32768, nil
	case 24:
		v := int32(raw[0]) | int32(raw[1])<<8 | int32(raw[2])<<16
		if v&0x800000 != 0 {
			v |= ^int32(0xFFFFFF)
		}
		return float64(v) / 8388608, nil
	case 32:
		return float64(int32(binary.LittleEndian.Uint32(raw))) / 2147483648, nil
	default:
		return 0, fmt.Errorf("wav: unsupported PCM bit depth %d", bits)
	}
}

func readChunks(r io.Reader) (header, []byte, error) {
	var hdr header

	var riff [4]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return hdr, nil, fmt.Errorf("wav: read RIFF header: %w", err)
	}
	if string(riff[:]) != "RIFF" {
		return hdr, nil, fmt.Errorf("wav: missing RIFF marker")
	}

	var chunkSize uint32
	if err := binary.Read(r, binary.LittleEndian, &chunkSize); err != nil {
		return hdr, nil, fmt.Errorf("wav: read chunk size: %w", err)
	}

	var wave [4]byte
	if _, err := io.ReadFull(r, wave[:]); err != nil {
		return hdr, nil, fmt.Errorf("wav: read WAVE marker: %w", err)
	}
	if string(wave[:]) != "WAVE" {
		return hdr, nil, fmt.Errorf("wav: missing WAVE marker")
	}

	fmtFound := false
	for {
		var id [4]byte
		if _, err := io.ReadFull(r, id[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return hdr, nil, fmt.Errorf("wav: data chunk not found")
			}
			return hdr, nil, fmt.Errorf("wav: read chunk id: %w", err)
		}

		var size uint32
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return hdr, nil, fmt.Errorf("wav: read chunk size: %w", err)
		}

		switch string(id[:]) {
		case "fmt ":
			if err := readFmtChunk(r, size, &hdr); err != nil {
				return hdr, nil, err
			}
			fmtFound = true

		case "data":
			if !fmtFound {
				return hdr, nil, fmt.Errorf("wav: data chunk before fmt chunk")
			}
			if size > maxDataSize {
				return hdr, nil, fmt.Errorf("wav: data chunk too large: %d bytes", size)
			}
			if hdr.channels == 0 || hdr.sampleRate == 0 {
				return hdr, nil, fmt.Errorf("wav: invalid fmt chunk: %d channels at %d Hz", hdr.channels, hdr.sampleRate)
			}

			data := make([]byte, size)
			n, err := io.ReadFull(r, data)
			if err != nil && err != io.ErrUnexpectedEOF {
				return hdr, nil, fmt.Errorf("wav: read sample data: %w", err)
			}
			return hdr, data[:n], nil

		default:
			// Skip unknown chunks.
			if _, err := io.CopyN(io.Discard, r, int64(size)); err != nil {
				return hdr, nil, fmt.Errorf("wav: skip %q chunk: %w", id[:], err)
			}
		}
	}
}

func readFmtChunk(r io.Reader, size uint32, hdr *header) error {
	if size < 16 {
		return fmt.Errorf("wav: invalid fmt chunk size %d", size)
	}

	fields := []any{
		&hdr.audioFormat,
		&hdr.channels,
		&hdr.sampleRate,
		new(uint32), // byte rate, recomputed on write
		&hdr.blockAlign,
		&hdr.bitsPerSample,
	}
	for _, f := range fields {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("wav: read fmt chunk: %w", err)
		}
	}

	if size > 16 {
		extra := make([]byte, size-16)
		if _, err := io.ReadFull(r, extra); err != nil {
			return fmt.Errorf("wav: read fmt extension: %w", err)
		}
		if hdr.audioFormat == formatExtensible {
			// Extension layout: cbSize, valid bits, channel mask, subformat GUID.
			if len(extra) < 24 {
				return fmt.Errorf("wav: truncated extensible fmt chunk")
			}
			copy(hdr.subFormat[:], extra[8:24])
			hdr.hasSubFormat = true
		}
	}

	return nil
}

// Encode writes interleaved samples as 16-bit PCM.
func (Codec) Encode(w io.Writer, samples []float64, channels, sampleRate int) error {
	if channels <= 0 {
		return fmt.Errorf("wav: channels must be > 0: %d", channels)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("wav: sample rate must be > 0: %d", sampleRate)
	}

	const bitsPerSample = 16
	bytesPerSample := bitsPerSample / 8
	blockAlign := channels * bytesPerSample
	dataSize := len(samples) * bytesPerSample

	if err := writeHeader(w, channels, sampleRate, blockAlign, dataSize); err != nil {
		return err
	}

	buf := make([]byte, 2)
	for _, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.LittleEndian.PutUint16(buf, uint16(int16(s*32767)))
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("wav: write samples: %w", err)
		}
	}

	return nil
}

func writeHeader(w io.Writer, channels, sampleRate, blockAlign, dataSize int) error {
	byteRate := sampleRate * blockAlign

	fields := []any{
		[]byte("RIFF"),
		uint32(36 + dataSize),
		[]byte("WAVE"),
		[]byte("fmt "),
		uint32(16),
		uint16(formatPCM),
		uint16(channels),
		uint32(sampleRate),
		uint32(byteRate),
		uint16(blockAlign),
		uint16(16),
		[]byte("data"),
		uint32(dataSize),
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("wav: write header: %w", err)
		}
	}

	return nil
}
