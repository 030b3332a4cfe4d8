// Package dsmr5 extends the base vocabulary with the instantaneous voltage
// readings introduced by the fifth revision. Everything it does not define
// itself falls back to the base tables.
package dsmr5

import (
	"errors"

	"gitlab.com/d21d3q/godsmr/internal/cosem"
	"gitlab.com/d21d3q/godsmr/internal/obis"
	"gitlab.com/d21d3q/godsmr/internal/obis/dsmr4"
)

// Kind tags the decoded variant held by an Object.
type Kind int

const (
	// KindDSMR4 wraps an object decoded by the base revision.
	KindDSMR4 Kind = iota
	KindInstantaneousVoltage
)

// Object is one decoded object line of this revision.
type Object struct {
	Kind Kind

	Line   obis.Line
	Double cosem.UFixedDouble

	// DSMR4 holds the wrapped base object when Kind is KindDSMR4.
	DSMR4 dsmr4.Object
}

// Wrap lifts a base object into this revision.
func Wrap(o dsmr4.Object) Object {
	return Object{Kind: KindDSMR4, DSMR4: o}
}

// LineIndex reports the power line an object is associated with.
func (o Object) LineIndex() (obis.Line, bool) {
	switch o.Kind {
	case KindInstantaneousVoltage:
		return o.Line, true
	case KindDSMR4:
		return o.DSMR4.LineIndex()
	}
	return 0, false
}

// TariffIndex reports the tariff an object is associated with.
func (o Object) TariffIndex() (obis.Tariff, bool) {
	if o.Kind == KindDSMR4 {
		return o.DSMR4.TariffIndex()
	}
	return 0, false
}

// SlaveIndex reports the slave channel an object is associated with.
func (o Object) SlaveIndex() (obis.Slave, bool) {
	if o.Kind == KindDSMR4 {
		return o.DSMR4.SlaveIndex()
	}
	return 0, false
}

// ParseLine splits an object line and parses it against this revision.
func ParseLine(line string) (Object, error) {
	reference, body, err := obis.SplitLine(line)
	if err != nil {
		return Object{}, err
	}
	return Parse(reference, body)
}

// Parse decodes a reference/body pair, trying this revision's own table
// before falling back to the base revision.
func Parse(reference, body string) (Object, error) {
	o, err := parseSpecific(reference, body)
	if errors.Is(err, obis.ErrUnknownReference) {
		inner, err := dsmr4.Parse(reference, body)
		if err != nil {
			return Object{}, err
		}
		return Wrap(inner), nil
	}
	return o, err
}

func parseSpecific(reference, body string) (Object, error) {
	switch reference {
	case "1-0:32.7.0":
		return voltage(obis.Line1, body)
	case "1-0:52.7.0":
		return voltage(obis.Line2, body)
	case "1-0:72.7.0":
		return voltage(obis.Line3, body)
	}
	return Object{}, obis.ErrUnknownReference
}

func voltage(line obis.Line, body string) (Object, error) {
	d, err := cosem.ParseUFixedDouble(body, 4, 1)
	return Object{Kind: KindInstantaneousVoltage, Line: line, Double: d}, err
}
