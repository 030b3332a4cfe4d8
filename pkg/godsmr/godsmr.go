// Package godsmr is the public face of the telegram decoder. It extracts
// frames from raw text or a live byte stream, verifies them, decodes the
// object lines against a selected vocabulary and flattens the snapshot into
// a dynamic field map.
package godsmr

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"gitlab.com/d21d3q/godsmr/internal/frame"
	"gitlab.com/d21d3q/godsmr/internal/reader"
	"gitlab.com/d21d3q/godsmr/internal/state"
)

// Result captures one decoded telegram.
type Result struct {
	Vocabulary     string
	Prefix         string
	Identification string
	Checksum       uint16
	Fields         map[string]any
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"vocabulary":     r.Vocabulary,
		"prefix":         r.Prefix,
		"identification": r.Identification,
		"checksum":       fmt.Sprintf("0x%04X", r.Checksum),
	}
	if len(r.Fields) > 0 {
		summary["fields"] = r.Fields
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("vocabulary: %s prefix:%s (marshal error: %v)", r.Vocabulary, r.Prefix, err)
	}
	return string(data)
}

// Analyze decodes a single raw frame held in memory.
func Analyze(raw string, opts AnalyzeOptions) (Result, error) {
	if len(raw) > frame.ReadoutCapacity {
		return Result{}, fmt.Errorf("telegram of %d bytes exceeds readout capacity of %d", len(raw), frame.ReadoutCapacity)
	}
	var readout frame.Readout
	readout.Length = copy(readout.Buffer[:], raw)
	return analyzeReadout(&readout, opts)
}

// Scanner decodes consecutive telegrams from a byte stream, resynchronizing
// after corrupt or oversized frames.
type Scanner struct {
	frames *reader.Reader
	opts   AnalyzeOptions
}

// NewScanner returns a Scanner reading from src.
func NewScanner(src io.Reader, opts AnalyzeOptions) *Scanner {
	return &Scanner{frames: reader.New(bufio.NewReader(src)), opts: opts}
}

// Next blocks until the next complete frame was decoded. A clean end of the
// stream is io.EOF; frame level errors (reader.ErrOverflow, checksum and
// format violations) are per-telegram and later calls keep delivering.
func (s *Scanner) Next() (Result, error) {
	readout, err := s.frames.Next()
	if err != nil {
		return Result{}, err
	}
	return analyzeReadout(readout, s.opts)
}

func analyzeReadout(readout *frame.Readout, opts AnalyzeOptions) (Result, error) {
	vocabulary, err := opts.vocabulary()
	if err != nil {
		return Result{}, err
	}
	telegram, err := readout.Telegram()
	if err != nil {
		return Result{}, err
	}
	result := Result{
		Vocabulary:     string(vocabulary),
		Prefix:         telegram.Prefix,
		Identification: telegram.Identification,
		Checksum:       telegram.Checksum,
	}
	switch vocabulary {
	case VocabularyDSMR4:
		s, err := state.ReduceDSMR4(telegram)
		if err != nil {
			return result, err
		}
		result.Fields = fieldsDSMR4(s)
	case VocabularyDSMR5:
		s, err := state.ReduceDSMR5(telegram)
		if err != nil {
			return result, err
		}
		result.Fields = fieldsDSMR5(s)
	case VocabularyEMUCS:
		s, err := state.ReduceEMUCS(telegram)
		if err != nil {
			return result, err
		}
		result.Fields = fieldsEMUCS(s)
	}
	return result, nil
}
