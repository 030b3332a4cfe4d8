package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/d21d3q/godsmr/internal/frame"
)

// LoadJSON loads a JSON fixture from testdata relative to the repo root.
func LoadJSON(t *testing.T, rel string, v any) {
	t.Helper()
	data := readTestdata(t, rel)
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
}

// LoadRaw returns the exact bytes of a testdata file, CRLF included.
func LoadRaw(t *testing.T, rel string) []byte {
	t.Helper()
	return readTestdata(t, rel)
}

// Telegram renders a complete frame from a header and object lines,
// computing the CRC trailer.
func Telegram(header string, lines ...string) []byte {
	var b bytes.Buffer
	b.WriteByte('/')
	b.WriteString(header)
	b.WriteString("\r\n\r\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\r\n")
	}
	b.WriteByte('!')
	fmt.Fprintf(&b, "%04X\r\n", frame.Checksum(b.Bytes()))
	return b.Bytes()
}

// NewReadout copies a raw frame into a readout buffer.
func NewReadout(t *testing.T, raw []byte) *frame.Readout {
	t.Helper()
	if len(raw) > frame.ReadoutCapacity {
		t.Fatalf("frame of %d bytes exceeds readout capacity", len(raw))
	}
	r := &frame.Readout{Length: len(raw)}
	copy(r.Buffer[:], raw)
	return r
}

func readTestdata(t *testing.T, rel string) []byte {
	t.Helper()
	candidates := []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
		filepath.Join("..", "..", "..", "testdata", rel),
	}
	for _, path := range candidates {
		if data, err := os.ReadFile(path); err == nil {
			return data
		}
	}
	t.Fatalf("unable to locate testdata file %s", rel)
	return nil
}
