package frame_test

import (
	"errors"
	"testing"

	"gitlab.com/d21d3q/godsmr/internal/cosem"
	"gitlab.com/d21d3q/godsmr/internal/frame"
	"gitlab.com/d21d3q/godsmr/internal/testutil"
)

func TestChecksumVector(t *testing.T) {
	if got := frame.Checksum([]byte("123456789")); got != 0xBB3D {
		t.Fatalf("CRC-16/ARC check vector mismatch: %04X", got)
	}
}

func TestTelegram(t *testing.T) {
	readout := testutil.NewReadout(t, testutil.LoadRaw(t, "isk.txt"))
	telegram, err := readout.Telegram()
	if err != nil {
		t.Fatalf("Telegram: %v", err)
	}
	if telegram.Prefix != "ISK" {
		t.Fatalf("prefix mismatch: %q", telegram.Prefix)
	}
	if telegram.Identification != "\\2M550E-1012" {
		t.Fatalf("identification mismatch: %q", telegram.Identification)
	}
	if telegram.Checksum != 0xF7D7 {
		t.Fatalf("checksum mismatch: %04X", telegram.Checksum)
	}

	lines := telegram.Objects()
	first, ok := lines.Next()
	if !ok || first != "1-3:0.2.8(50)" {
		t.Fatalf("first line mismatch: %q %v", first, ok)
	}
	count := 1
	for {
		if _, ok := lines.Next(); !ok {
			break
		}
		count++
	}
	if count != 23 {
		t.Fatalf("line count mismatch: %d", count)
	}

	// Iteration restarts from the top.
	again := telegram.Objects()
	if line, ok := again.Next(); !ok || line != first {
		t.Fatalf("iteration is not restartable: %q %v", line, ok)
	}
}

func TestTelegramTamperedChecksum(t *testing.T) {
	raw := testutil.LoadRaw(t, "isk.txt")
	raw[len(raw)-3] ^= 0x01 // flip a bit in the CRC trailer
	_, err := testutil.NewReadout(t, raw).Telegram()
	if !errors.Is(err, frame.ErrInvalidChecksum) {
		t.Fatalf("expected ErrInvalidChecksum, got %v", err)
	}
	if errors.Is(err, cosem.ErrInvalidFormat) {
		t.Fatal("corruption must not be reported as a format violation")
	}
}

func TestTelegramMutatedBody(t *testing.T) {
	raw := testutil.LoadRaw(t, "isk.txt")
	raw[40] ^= 0x01
	if _, err := testutil.NewReadout(t, raw).Telegram(); !errors.Is(err, frame.ErrInvalidChecksum) {
		t.Fatalf("expected ErrInvalidChecksum, got %v", err)
	}
}

func TestTelegramFormatViolations(t *testing.T) {
	cases := map[string][]byte{
		"too short":       []byte("/ISK!AAAA"),
		"no terminator":   []byte("/ISK5\\id\r\n\r\n1-3:0.2.8(50)\r\n"),
		"bad trailer hex": []byte("/ISK5\\id\r\n\r\n1-3:0.2.8(50)\r\n!ZZZZ"),
		"not text":        append([]byte("/ISK5\\id\r\n\r\n"), 0xFF, 0xFE, '!', 'A', 'A', 'A', 'A'),
	}
	for name, raw := range cases {
		if _, err := testutil.NewReadout(t, raw).Telegram(); !errors.Is(err, cosem.ErrInvalidFormat) {
			t.Fatalf("%s: expected format violation, got %v", name, err)
		}
	}
}

func TestTelegramMissingSeparator(t *testing.T) {
	data := []byte("/ISK5\\id\n1-3:0.2.8(50)\n!")
	raw := append(data, []byte(formatChecksum(frame.Checksum(data)))...)
	if _, err := testutil.NewReadout(t, raw).Telegram(); !errors.Is(err, cosem.ErrInvalidFormat) {
		t.Fatalf("expected format violation, got %v", err)
	}
}

func formatChecksum(sum uint16) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{
		digits[sum>>12&0xF], digits[sum>>8&0xF], digits[sum>>4&0xF], digits[sum&0xF],
	})
}
