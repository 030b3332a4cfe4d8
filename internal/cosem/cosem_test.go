package cosem

import (
	"errors"
	"math"
	"testing"
)

func TestParseOctetString(t *testing.T) {
	s, err := ParseOctetString("(4530303433303037303532383730333138)", 34)
	if err != nil {
		t.Fatalf("ParseOctetString: %v", err)
	}
	octets, err := s.Octets()
	if err != nil {
		t.Fatalf("Octets: %v", err)
	}
	if got := string(octets); got != "E0043007052870318" {
		t.Fatalf("octets mismatch: %q", got)
	}
}

func TestParseOctetStringTooShort(t *testing.T) {
	if _, err := ParseOctetString("(42)", 4); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestParseOctetStringMax(t *testing.T) {
	s, err := ParseOctetStringMax("(303032)(rest)", 96)
	if err != nil {
		t.Fatalf("ParseOctetStringMax: %v", err)
	}
	if s != "303032" {
		t.Fatalf("content mismatch: %q", s)
	}
	if _, err := ParseOctetStringMax("(303032)", 4); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected length violation, got %v", err)
	}
	if _, err := ParseOctetStringMax("(303032", 96); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected missing ')' violation, got %v", err)
	}
}

func TestOctetsRejectsBadHex(t *testing.T) {
	if _, err := OctetString("4X").Octets(); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("(190320181403W)")
	if err != nil {
		t.Fatalf("ParseTimestamp: %v", err)
	}
	want := Timestamp{Year: 19, Month: 3, Day: 20, Hour: 18, Minute: 14, Second: 3, DST: false}
	if ts != want {
		t.Fatalf("timestamp mismatch: %+v", ts)
	}

	ts, err = ParseTimestamp("(220901152201S)")
	if err != nil {
		t.Fatalf("ParseTimestamp: %v", err)
	}
	if !ts.DST {
		t.Fatal("expected DST active")
	}
}

func TestParseTimestampViolations(t *testing.T) {
	for _, body := range []string{
		"(19032018140W)",  // too short
		"(190320181403X)", // bad DST marker
		"(19032018B403W)", // non digit field
	} {
		if _, err := ParseTimestamp(body); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("%q: expected ErrInvalidFormat, got %v", body, err)
		}
	}
}

func TestParseUFixedDouble(t *testing.T) {
	d, err := ParseUFixedDouble("(000576.239*kWh)", 9, 3)
	if err != nil {
		t.Fatalf("ParseUFixedDouble: %v", err)
	}
	if d.Mantissa != 576239 || d.Point != 3 {
		t.Fatalf("mantissa/point mismatch: %+v", d)
	}
	if math.Abs(d.Float()-576.239) > 1e-9 {
		t.Fatalf("float mismatch: %v", d.Float())
	}
}

func TestParseUFixedDoubleViolations(t *testing.T) {
	if _, err := ParseUFixedDouble("(0057.239)", 9, 3); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected short buffer violation, got %v", err)
	}
	if _, err := ParseUFixedDouble("(00A576.239)", 9, 3); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected digit violation, got %v", err)
	}
}

func TestParseUFixedDoubleRepeatable(t *testing.T) {
	body := "(0236.1*V)"
	first, err := ParseUFixedDouble(body, 4, 1)
	if err != nil {
		t.Fatalf("ParseUFixedDouble: %v", err)
	}
	second, err := ParseUFixedDouble(body, 4, 1)
	if err != nil {
		t.Fatalf("ParseUFixedDouble: %v", err)
	}
	if first != second {
		t.Fatalf("decode not repeatable: %+v vs %+v", first, second)
	}
}

func TestParseUFixedInteger(t *testing.T) {
	n, err := ParseUFixedInteger("(00009)", 5)
	if err != nil {
		t.Fatalf("ParseUFixedInteger: %v", err)
	}
	if n != 9 {
		t.Fatalf("value mismatch: %d", n)
	}
	if _, err := ParseUFixedInteger("(9)", 5); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}
