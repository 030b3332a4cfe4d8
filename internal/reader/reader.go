// Package reader finds telegram frame boundaries in an unbounded, possibly
// lossy byte stream and hands out complete readouts.
package reader

import (
	"errors"
	"io"

	"gitlab.com/d21d3q/godsmr/internal/frame"
)

// ErrOverflow reports a frame that exhausted the readout capacity before a
// terminator was seen. It is recoverable: the next call resynchronizes on
// the live stream and later well formed frames still come through.
var ErrOverflow = errors.New("telegram exceeds readout capacity")

// ErrTruncated reports that the byte source ended in the middle of a frame.
// The partial frame is discarded; the following call reports io.EOF.
var ErrTruncated = errors.New("byte source ended inside a telegram")

// Reader scans a byte source for telegram frames. It owns its source: a
// single Reader must not be shared between goroutines without external
// serialization.
type Reader struct {
	src     io.ByteReader
	readout frame.Readout
}

// New returns a Reader scanning src. Wrap plain io.Readers in a
// bufio.Reader first.
func New(src io.ByteReader) *Reader {
	return &Reader{src: src}
}

// Next blocks on the byte source until a complete candidate frame was
// copied, discarding everything before the '/' start marker. The returned
// readout aliases the Reader's internal buffer and is only valid until the
// following call. Source errors pass through unchanged; a clean end of the
// source while seeking is io.EOF.
func (r *Reader) Next() (*frame.Readout, error) {
	// Seeking: discard until a start marker.
	for {
		b, err := r.src.ReadByte()
		if err != nil {
			return nil, err
		}
		if b == '/' {
			break
		}
	}

	// Copying: append up to the terminator, then four checksum bytes.
	r.readout = frame.Readout{}
	r.readout.Buffer[0] = '/'
	n := 1
	copyByte := func() (byte, error) {
		b, err := r.src.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, ErrTruncated
			}
			return 0, err
		}
		if n >= frame.ReadoutCapacity {
			return 0, ErrOverflow
		}
		r.readout.Buffer[n] = b
		n++
		return b, nil
	}
	for {
		b, err := copyByte()
		if err != nil {
			return nil, err
		}
		if b != '!' {
			continue
		}
		for i := 0; i < 4; i++ {
			if _, err := copyByte(); err != nil {
				return nil, err
			}
		}
		r.readout.Length = n
		return &r.readout, nil
	}
}
