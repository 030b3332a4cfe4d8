// Package obis holds the pieces shared by all vocabulary revisions: the
// channel index types, reference splitting and the generic slave channel
// pattern.
package obis

import (
	"errors"
	"fmt"
	"strings"

	"gitlab.com/d21d3q/godsmr/internal/cosem"
)

// ErrUnknownReference reports a well formed reference that no vocabulary
// revision defines. It is recoverable: callers may skip the line.
var ErrUnknownReference = errors.New("unknown reference")

// Tariff is one of the two billing rates used by the meter.
type Tariff int

const (
	Tariff1 Tariff = iota
	Tariff2
)

// Line is one of up to three power lines connected to the meter.
type Line int

const (
	Line1 Line = iota
	Line2
	Line3
)

// Slave is one of up to four slave meters relayed through the meter, such as
// a gas, water or heat meter.
type Slave int

const (
	Slave1 Slave = iota
	Slave2
	Slave3
	Slave4
)

// SplitLine splits an object line at the first '(' into the reference and
// the value body.
func SplitLine(line string) (reference, body string, err error) {
	i := strings.IndexByte(line, '(')
	if i < 0 {
		return "", "", fmt.Errorf("%w: object line %q has no value group", cosem.ErrInvalidFormat, line)
	}
	return line[:i], line[i:], nil
}

// SplitSlave matches a reference against the generic slave channel pattern:
// exactly 10 characters, a "0-" prefix and the channel digit at offset 2.
// References outside the pattern are unknown; a channel digit outside 1-4 is
// a format violation.
func SplitSlave(reference string) (Slave, string, error) {
	if len(reference) != 10 || reference[:2] != "0-" {
		return 0, "", fmt.Errorf("%w: %q", ErrUnknownReference, reference)
	}
	digit := reference[2]
	if digit < '1' || digit > '4' {
		return 0, "", fmt.Errorf("%w: slave channel %q outside 1-4", cosem.ErrInvalidFormat, digit)
	}
	return Slave(digit - '1'), reference[4:], nil
}

// SplitPair splits a two group body "(time)(value...)" at the second '('.
func SplitPair(body string) (timePart, valuePart string, err error) {
	if len(body) < 2 {
		return "", "", fmt.Errorf("%w: body %q too short for a pair", cosem.ErrInvalidFormat, body)
	}
	i := strings.IndexByte(body[1:], '(')
	if i < 0 {
		return "", "", fmt.Errorf("%w: body %q has no second group", cosem.ErrInvalidFormat, body)
	}
	return body[:i+1], body[i+1:], nil
}

// DynamicPoint derives the decimal point position of a slave reading group
// from where the literal '.' sits inside it.
func DynamicPoint(valuePart string) (uint8, error) {
	i := strings.IndexByte(valuePart, '.')
	if i < 0 || i > 9 {
		return 0, fmt.Errorf("%w: value group %q has no decimal point", cosem.ErrInvalidFormat, valuePart)
	}
	return uint8(9 - i), nil
}

// ParseTimedReading decodes a two group (timestamp)(value) slave reading.
// The value is always 8 digits wide; its decimal point position varies per
// slave device and is derived from the group itself.
func ParseTimedReading(body string) (cosem.Timestamp, cosem.UFixedDouble, error) {
	timePart, valuePart, err := SplitPair(body)
	if err != nil {
		return cosem.Timestamp{}, cosem.UFixedDouble{}, err
	}
	ts, err := cosem.ParseTimestamp(timePart)
	if err != nil {
		return cosem.Timestamp{}, cosem.UFixedDouble{}, err
	}
	point, err := DynamicPoint(valuePart)
	if err != nil {
		return cosem.Timestamp{}, cosem.UFixedDouble{}, err
	}
	d, err := cosem.ParseUFixedDouble(valuePart, 8, point)
	if err != nil {
		return cosem.Timestamp{}, cosem.UFixedDouble{}, err
	}
	return ts, d, nil
}
