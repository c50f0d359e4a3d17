package trim

import (
	"errors"
	"fmt"
	"os"

	"github.com/cwbudde/algo-trim/audio"
	"github.com/cwbudde/algo-trim/codec"
)

// ErrInvalidRange rejects an export whose selection is inverted or empty.
// This is the one place where the permissive drag-time policy is finally
// enforced.
var ErrInvalidRange = errors.New("end must exceed start")

// ErrNoBuffer rejects an export with no audio loaded.
var ErrNoBuffer = errors.New("no audio loaded")

// EncodeError reports a failed write. A partial output file may remain;
// callers should treat the export as failed either way.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Export validates the selection and writes its slice of buf to outPath,
// encoded in the format implied by the path's extension (mp3, wav, ogg).
// Validation failures occur before anything touches the filesystem.
func Export(buf *audio.Buffer, sel *Selection, outPath string) error {
	if buf == nil {
		return ErrNoBuffer
	}
	if sel.StartMs() >= sel.EndMs() {
		return fmt.Errorf("export %s: %w", outPath, ErrInvalidRange)
	}

	format, err := codec.EncodeFormat(outPath)
	if err != nil {
		return err
	}

	enc, err := codec.EncoderFor(format)
	if err != nil {
		return err
	}

	slice := buf.Slice(sel.StartMs(), sel.EndMs())

	f, err := os.Create(outPath)
	if err != nil {
		return &EncodeError{Path: outPath, Err: err}
	}

	if err := enc.Encode(f, slice, buf.Channels(), buf.SampleRate()); err != nil {
		f.Close()
		return &EncodeError{Path: outPath, Err: err}
	}

	if err := f.Close(); err != nil {
		return &EncodeError{Path: outPath, Err: err}
	}

	return nil
}
