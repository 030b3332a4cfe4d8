// Package emucs implements the Belgian eMUCs profile on top of the fifth
// revision. It both adds entries (breaker and valve state, demand registers,
// thresholds) and overrides entries of the older tables with different field
// widths or decoder kinds, most notably the instantaneous current which
// becomes a two decimal fixed point value.
package emucs

import (
	"errors"

	"gitlab.com/d21d3q/godsmr/internal/cosem"
	"gitlab.com/d21d3q/godsmr/internal/obis"
	"gitlab.com/d21d3q/godsmr/internal/obis/dsmr4"
	"gitlab.com/d21d3q/godsmr/internal/obis/dsmr5"
)

// Kind tags the decoded variant held by an Object.
type Kind int

const (
	// KindDSMR5 wraps an object decoded by an older revision.
	KindDSMR5 Kind = iota
	KindInstantaneousCurrent
	// KindSlaveMeterReadingNonCorrected is a slave reading without
	// temperature correction.
	KindSlaveMeterReadingNonCorrected
	KindSlaveValveState
	KindBreakerState
	KindLimiterThreshold
	KindFuseSupervisionThreshold
	KindCurrentAverageDemand
	KindMaximumDemandMonth
	KindMaximumDemandYear
)

// Object is one decoded object line of this revision.
type Object struct {
	Kind Kind

	Line  obis.Line
	Slave obis.Slave

	Timestamp cosem.Timestamp
	Double    cosem.UFixedDouble
	Integer   cosem.UFixedInteger

	// DSMR5 holds the wrapped older object when Kind is KindDSMR5.
	DSMR5 dsmr5.Object
}

// Wrap lifts an older revision object into this one.
func Wrap(o dsmr5.Object) Object {
	return Object{Kind: KindDSMR5, DSMR5: o}
}

func wrapBase(o dsmr4.Object) Object {
	return Wrap(dsmr5.Wrap(o))
}

// LineIndex reports the power line an object is associated with.
func (o Object) LineIndex() (obis.Line, bool) {
	switch o.Kind {
	case KindInstantaneousCurrent:
		return o.Line, true
	case KindDSMR5:
		return o.DSMR5.LineIndex()
	}
	return 0, false
}

// TariffIndex reports the tariff an object is associated with.
func (o Object) TariffIndex() (obis.Tariff, bool) {
	if o.Kind == KindDSMR5 {
		return o.DSMR5.TariffIndex()
	}
	return 0, false
}

// SlaveIndex reports the slave channel an object is associated with.
func (o Object) SlaveIndex() (obis.Slave, bool) {
	switch o.Kind {
	case KindSlaveMeterReadingNonCorrected, KindSlaveValveState:
		return o.Slave, true
	case KindDSMR5:
		return o.DSMR5.SlaveIndex()
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
// before falling back to the older revisions.
func Parse(reference, body string) (Object, error) {
	o, err := parseSpecific(reference, body)
	if errors.Is(err, obis.ErrUnknownReference) {
		inner, err := dsmr5.Parse(reference, body)
		if err != nil {
			return Object{}, err
		}
		return Wrap(inner), nil
	}
	return o, err
}

func parseSpecific(reference, body string) (Object, error) {
	switch reference {
	case "0-0:96.1.1":
		s, err := cosem.ParseOctetStringMax(body, 96)
		if err != nil {
			return Object{}, err
		}
		return wrapBase(dsmr4.Object{Kind: dsmr4.KindEquipmentIdentifier, OctetString: s}), nil
	case "0-0:96.1.4":
		// eMUCs moves the version to its own reference and widens it.
		s, err := cosem.ParseOctetString(body, 5)
		if err != nil {
			return Object{}, err
		}
		return wrapBase(dsmr4.Object{Kind: dsmr4.KindVersion, OctetString: s}), nil
	case "1-0:31.7.0":
		return current(obis.Line1, body)
	case "1-0:51.7.0":
		return current(obis.Line2, body)
	case "1-0:71.7.0":
		return current(obis.Line3, body)
	case "0-0:96.3.10":
		n, err := cosem.ParseUFixedInteger(body, 1)
		return Object{Kind: KindBreakerState, Integer: n}, err
	case "0-0:17.0.0":
		d, err := cosem.ParseUFixedDouble(body, 4, 1)
		return Object{Kind: KindLimiterThreshold, Double: d}, err
	case "1-0:31.4.0":
		n, err := cosem.ParseUFixedInteger(body, 3)
		return Object{Kind: KindFuseSupervisionThreshold, Integer: n}, err
	case "1-0:1.4.0":
		d, err := cosem.ParseUFixedDouble(body, 5, 3)
		return Object{Kind: KindCurrentAverageDemand, Double: d}, err
	case "1-0:1.6.0":
		timePart, valuePart, err := obis.SplitPair(body)
		if err != nil {
			return Object{}, err
		}
		ts, err := cosem.ParseTimestamp(timePart)
		if err != nil {
			return Object{}, err
		}
		d, err := cosem.ParseUFixedDouble(valuePart, 5, 3)
		if err != nil {
			return Object{}, err
		}
		return Object{Kind: KindMaximumDemandMonth, Timestamp: ts, Double: d}, nil
	case "0-0:98.1.0":
		return Object{Kind: KindMaximumDemandYear}, nil
	}

	channel, subreference, err := obis.SplitSlave(reference)
	if err != nil {
		return Object{}, err
	}
	switch subreference {
	case "96.1.1":
		s, err := cosem.ParseOctetStringMax(body, 96)
		if err != nil {
			return Object{}, err
		}
		return wrapBase(dsmr4.Object{Kind: dsmr4.KindSlaveEquipmentIdentifier, Slave: channel, OctetString: s}), nil
	case "24.4.0":
		n, err := cosem.ParseUFixedInteger(body, 1)
		return Object{Kind: KindSlaveValveState, Slave: channel, Integer: n}, err
	case "24.2.3":
		ts, d, err := obis.ParseTimedReading(body)
		if err != nil {
			return Object{}, err
		}
		return Object{Kind: KindSlaveMeterReadingNonCorrected, Slave: channel, Timestamp: ts, Double: d}, nil
	}
	return Object{}, obis.ErrUnknownReference
}

func current(line obis.Line, body string) (Object, error) {
	d, err := cosem.ParseUFixedDouble(body, 5, 2)
	return Object{Kind: KindInstantaneousCurrent, Line: line, Double: d}, err
}
