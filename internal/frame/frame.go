// Package frame turns a raw readout buffer into a validated telegram view.
package frame

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sigurn/crc16"

	"gitlab.com/d21d3q/godsmr/internal/cosem"
)

// ReadoutCapacity is the fixed size of a readout buffer. A P1 telegram may
// not exceed it.
const ReadoutCapacity = 2048

// ErrInvalidChecksum reports a structurally sound frame whose CRC trailer
// does not match the frame content. It signals likely transmission
// corruption, not a malformed telegram.
var ErrInvalidChecksum = errors.New("checksum mismatch")

var crcTable = crc16.MakeTable(crc16.CRC16_ARC)

// Checksum computes the CRC-16/ARC over a frame region, from the start
// marker through the '!' terminator inclusive.
func Checksum(data []byte) uint16 {
	return crc16.Checksum(data, crcTable)
}

// Readout is fixed capacity storage for exactly one candidate telegram,
// written by the streaming reader and reused frame over frame.
type Readout struct {
	Buffer [ReadoutCapacity]byte
	Length int
}

// Telegram is a checksum verified view over a readout. It borrows the
// readout's buffer and must not outlive it.
type Telegram struct {
	// Prefix is the 3 character device brand prefix.
	Prefix string
	// Identification is the free form identification string.
	Identification string
	// Checksum is the verified 16 bit CRC from the frame trailer.
	Checksum uint16

	objects string
}

// Telegram validates the readout content and exposes it as a Telegram.
// A CRC mismatch is reported as ErrInvalidChecksum; every structural
// problem as a format violation.
func (r *Readout) Telegram() (Telegram, error) {
	content := r.Buffer[:r.Length]
	if !utf8.Valid(content) {
		return Telegram{}, fmt.Errorf("%w: readout is not valid text", cosem.ErrInvalidFormat)
	}
	buffer := string(content)
	if len(buffer) < 16 {
		return Telegram{}, fmt.Errorf("%w: readout of %d bytes is too short", cosem.ErrInvalidFormat, len(buffer))
	}

	dataEnd := strings.IndexByte(buffer, '!')
	if dataEnd < 0 {
		return Telegram{}, fmt.Errorf("%w: no '!' terminator", cosem.ErrInvalidFormat)
	}
	data, postfix := buffer[:dataEnd+1], buffer[dataEnd+1:]

	if len(postfix) < 4 {
		return Telegram{}, fmt.Errorf("%w: checksum trailer truncated", cosem.ErrInvalidFormat)
	}
	given, err := strconv.ParseUint(postfix[:4], 16, 16)
	if err != nil {
		return Telegram{}, fmt.Errorf("%w: checksum trailer %q is not hex", cosem.ErrInvalidFormat, postfix[:4])
	}
	computed := Checksum(content[:dataEnd+1])
	if uint16(given) != computed {
		return Telegram{}, fmt.Errorf("%w: declared %04X, computed %04X", ErrInvalidChecksum, given, computed)
	}

	dataStart := strings.Index(data, "\r\n\r\n")
	if dataStart < 0 {
		return Telegram{}, fmt.Errorf("%w: no header separator", cosem.ErrInvalidFormat)
	}
	header, body := data[:dataStart], data[dataStart:]

	if len(header) < 5 {
		return Telegram{}, fmt.Errorf("%w: header %q too short", cosem.ErrInvalidFormat, header)
	}
	// The body still carries the separator up front and "\r\n!" at the end.
	if len(body) < 7 {
		return Telegram{}, fmt.Errorf("%w: object body too short", cosem.ErrInvalidFormat)
	}

	return Telegram{
		Prefix:         header[1:4],
		Identification: header[5:],
		Checksum:       uint16(given),
		objects:        body[4 : len(body)-3],
	}, nil
}

// Objects returns a fresh iterator over the object lines of the body.
// Iteration is restartable and stays valid as long as the readout does.
func (t Telegram) Objects() Lines {
	return Lines{rest: t.objects}
}

// Lines iterates the CRLF separated object lines of a telegram body.
type Lines struct {
	rest string
	done bool
}

// Next returns the next object line, or false once the body is exhausted.
func (l *Lines) Next() (string, bool) {
	if l.done || l.rest == "" {
		return "", false
	}
	if i := strings.Index(l.rest, "\r\n"); i >= 0 {
		line := l.rest[:i]
		l.rest = l.rest[i+2:]
		return line, true
	}
	line := l.rest
	l.done = true
	return line, true
}
