// Package cosem implements the COSEM value encodings used inside P1 telegram
// object lines: octet strings, timestamps, fixed point decimals and fixed
// width integers.
//
// All parsers take a body slice that starts at the literal '(' opening the
// value group. The closing ')' is never consumed nor validated here; lines
// carrying multiple groups are split by the caller.
package cosem

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidFormat reports a value group that does not match its declared
// encoding: too short, a non-digit where a digit is required, or a malformed
// DST marker.
var ErrInvalidFormat = errors.New("invalid format")

// OctetString is a hex encoded string value. It is a view into the telegram
// buffer and must not outlive it.
type OctetString string

// ParseOctetString reads exactly length characters following the '('.
func ParseOctetString(body string, length int) (OctetString, error) {
	if len(body) < length+1 {
		return "", fmt.Errorf("%w: octet string needs %d characters, have %d", ErrInvalidFormat, length, len(body)-1)
	}
	return OctetString(body[1 : length+1]), nil
}

// ParseOctetStringMax reads a variable length string bounded by maxLength,
// using the closing ')' to determine the actual length.
func ParseOctetStringMax(body string, maxLength int) (OctetString, error) {
	end := -1
	for i := 0; i < len(body); i++ {
		if body[i] == ')' {
			end = i
			break
		}
	}
	if end < 1 {
		return "", fmt.Errorf("%w: octet string missing ')'", ErrInvalidFormat)
	}
	length := end - 1
	if length > maxLength {
		return "", fmt.Errorf("%w: octet string length %d exceeds maximum %d", ErrInvalidFormat, length, maxLength)
	}
	return ParseOctetString(body, length)
}

// Octets decodes the hex digit pairs into bytes.
func (s OctetString) Octets() ([]byte, error) {
	out := make([]byte, 0, len(s)/2)
	for i := 0; i+1 < len(s); i += 2 {
		b, err := strconv.ParseUint(string(s[i:i+2]), 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: octet %q is not hex", ErrInvalidFormat, s[i:i+2])
		}
		out = append(out, byte(b))
	}
	return out, nil
}

// Timestamp is a meter timestamp in the YYMMDDhhmmssX encoding, where X
// marks daylight saving time as active (S) or inactive (W).
type Timestamp struct {
	Year   uint8 `json:"year"`
	Month  uint8 `json:"month"`
	Day    uint8 `json:"day"`
	Hour   uint8 `json:"hour"`
	Minute uint8 `json:"minute"`
	Second uint8 `json:"second"`
	DST    bool  `json:"dst"`
}

// ParseTimestamp reads the six two-digit fields and the DST marker.
func ParseTimestamp(body string) (Timestamp, error) {
	if len(body) < 15 {
		return Timestamp{}, fmt.Errorf("%w: timestamp needs 15 characters, have %d", ErrInvalidFormat, len(body))
	}
	var fields [6]uint8
	for i := range fields {
		offset := 1 + 2*i
		n, err := strconv.ParseUint(body[offset:offset+2], 10, 8)
		if err != nil {
			return Timestamp{}, fmt.Errorf("%w: timestamp field %q is not a number", ErrInvalidFormat, body[offset:offset+2])
		}
		fields[i] = uint8(n)
	}
	ts := Timestamp{
		Year:   fields[0],
		Month:  fields[1],
		Day:    fields[2],
		Hour:   fields[3],
		Minute: fields[4],
		Second: fields[5],
	}
	switch body[13] {
	case 'S':
		ts.DST = true
	case 'W':
		ts.DST = false
	default:
		return Timestamp{}, fmt.Errorf("%w: timestamp DST marker %q", ErrInvalidFormat, body[13])
	}
	return ts, nil
}

// UFixedDouble is an unsigned fixed point decimal: an integer mantissa plus
// the number of digits behind the decimal point.
type UFixedDouble struct {
	Mantissa uint64
	Point    uint8
}

// ParseUFixedDouble reads length digits plus the literal decimal point, with
// point digits behind it.
func ParseUFixedDouble(body string, length int, point uint8) (UFixedDouble, error) {
	if len(body) < length+2 {
		return UFixedDouble{}, fmt.Errorf("%w: decimal needs %d characters, have %d", ErrInvalidFormat, length+1, len(body)-1)
	}
	buffer := body[1 : length+2]
	split := length - int(point)
	upper, err := strconv.ParseUint(buffer[:split], 10, 64)
	if err != nil {
		return UFixedDouble{}, fmt.Errorf("%w: decimal integer part %q", ErrInvalidFormat, buffer[:split])
	}
	lower, err := strconv.ParseUint(buffer[split+1:], 10, 64)
	if err != nil {
		return UFixedDouble{}, fmt.Errorf("%w: decimal fraction part %q", ErrInvalidFormat, buffer[split+1:])
	}
	return UFixedDouble{
		Mantissa: upper*pow10(point) + lower,
		Point:    point,
	}, nil
}

// Float converts the fixed point value to a floating point number.
func (d UFixedDouble) Float() float64 {
	return float64(d.Mantissa) / float64(pow10(d.Point))
}

func pow10(n uint8) uint64 {
	out := uint64(1)
	for ; n > 0; n-- {
		out *= 10
	}
	return out
}

// UFixedInteger is an unsigned fixed width integer.
type UFixedInteger uint64

// ParseUFixedInteger reads exactly length digits following the '('.
func ParseUFixedInteger(body string, length int) (UFixedInteger, error) {
	if len(body) < length+1 {
		return 0, fmt.Errorf("%w: integer needs %d characters, have %d", ErrInvalidFormat, length, len(body)-1)
	}
	n, err := strconv.ParseUint(body[1:length+1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: integer %q", ErrInvalidFormat, body[1:length+1])
	}
	return UFixedInteger(n), nil
}
