// Package state folds decoded object sequences into flat per-telegram
// snapshots. One snapshot type exists per vocabulary revision, each wrapping
// the previous revision's records the same way the dispatchers wrap their
// objects.
//
// Snapshots hold owned scalar copies: unlike the decoded objects they may
// outlive the readout buffer they were derived from.
package state

import (
	"errors"
	"fmt"

	"gitlab.com/d21d3q/godsmr/internal/cosem"
)

// ErrUnhandled reports an object the dispatcher recognized but no reducer
// rule covers. It signals the snapshot vocabulary lagging the dispatch
// vocabulary, not a malformed telegram.
var ErrUnhandled = errors.New("object not handled by snapshot")

// MeterReading is the consumed/produced energy register pair of one tariff.
type MeterReading struct {
	To *float64 `json:"to,omitempty"`
	By *float64 `json:"by,omitempty"`
}

// TimedReading is a slave meter value with the moment it was captured.
type TimedReading struct {
	Time  cosem.Timestamp `json:"time"`
	Value float64         `json:"value"`
}

// Base holds the flat quantities shared by every revision's snapshot.
type Base struct {
	DateTime          *cosem.Timestamp `json:"datetime,omitempty"`
	MeterReadings     [2]MeterReading  `json:"meter_readings"`
	TariffIndicator   *[2]byte         `json:"tariff_indicator,omitempty"`
	PowerDelivered    *float64         `json:"power_delivered,omitempty"`
	PowerReceived     *float64         `json:"power_received,omitempty"`
	PowerFailures     *uint64          `json:"power_failures,omitempty"`
	LongPowerFailures *uint64          `json:"long_power_failures,omitempty"`
}

func floatPtr(d cosem.UFixedDouble) *float64 {
	v := d.Float()
	return &v
}

func uintPtr(n cosem.UFixedInteger) *uint64 {
	v := uint64(n)
	return &v
}

func tariffIndicator(s cosem.OctetString) (*[2]byte, error) {
	octets, err := s.Octets()
	if err != nil {
		return nil, err
	}
	if len(octets) < 2 {
		return nil, fmt.Errorf("%w: tariff indicator needs 2 octets, have %d", cosem.ErrInvalidFormat, len(octets))
	}
	return &[2]byte{octets[0], octets[1]}, nil
}
