// Package dsmr4 implements the base vocabulary revision of the P1 object
// code tables.
package dsmr4

import (
	"gitlab.com/d21d3q/godsmr/internal/cosem"
	"gitlab.com/d21d3q/godsmr/internal/obis"
)

// Kind tags the decoded variant held by an Object.
type Kind int

const (
	KindVersion Kind = iota
	KindDateTime
	KindEquipmentIdentifier
	KindMeterReadingTo
	KindMeterReadingBy
	KindTariffIndicator
	KindPowerDelivered
	KindPowerReceived
	KindPowerFailures
	KindLongPowerFailures
	KindPowerFailureEventLog
	KindTextMessageCode
	KindTextMessage
	KindVoltageSags
	KindVoltageSwells
	KindInstantaneousCurrent
	KindInstantaneousActivePowerPlus
	KindInstantaneousActivePowerNeg
	KindSlaveDeviceType
	KindSlaveEquipmentIdentifier
	KindSlaveMeterReading
)

// Object is one decoded object line. Only the payload fields named by the
// Kind are meaningful; the rest stay zero.
type Object struct {
	Kind Kind

	Tariff obis.Tariff
	Line   obis.Line
	Slave  obis.Slave

	OctetString cosem.OctetString
	Timestamp   cosem.Timestamp
	Double      cosem.UFixedDouble
	Integer     cosem.UFixedInteger
}

// LineIndex reports the power line an object is associated with.
func (o Object) LineIndex() (obis.Line, bool) {
	switch o.Kind {
	case KindVoltageSags, KindVoltageSwells, KindInstantaneousCurrent,
		KindInstantaneousActivePowerPlus, KindInstantaneousActivePowerNeg:
		return o.Line, true
	}
	return 0, false
}

// TariffIndex reports the tariff an object is associated with.
func (o Object) TariffIndex() (obis.Tariff, bool) {
	switch o.Kind {
	case KindMeterReadingTo, KindMeterReadingBy:
		return o.Tariff, true
	}
	return 0, false
}

// SlaveIndex reports the slave channel an object is associated with.
func (o Object) SlaveIndex() (obis.Slave, bool) {
	switch o.Kind {
	case KindSlaveDeviceType, KindSlaveEquipmentIdentifier, KindSlaveMeterReading:
		return o.Slave, true
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

// Parse decodes a reference/body pair against the base tables.
func Parse(reference, body string) (Object, error) {
	switch reference {
	case "1-3:0.2.8":
		return octets(KindVersion, body, 2)
	case "0-0:1.0.0":
		ts, err := cosem.ParseTimestamp(body)
		return Object{Kind: KindDateTime, Timestamp: ts}, err
	case "0-0:96.1.1":
		return octetsMax(KindEquipmentIdentifier, body, 96)
	case "1-0:1.8.1":
		return tariffDouble(KindMeterReadingTo, obis.Tariff1, body, 9, 3)
	case "1-0:1.8.2":
		return tariffDouble(KindMeterReadingTo, obis.Tariff2, body, 9, 3)
	case "1-0:2.8.1":
		return tariffDouble(KindMeterReadingBy, obis.Tariff1, body, 9, 3)
	case "1-0:2.8.2":
		return tariffDouble(KindMeterReadingBy, obis.Tariff2, body, 9, 3)
	case "0-0:96.14.0":
		return octets(KindTariffIndicator, body, 4)
	case "1-0:1.7.0":
		return double(KindPowerDelivered, body, 5, 3)
	case "1-0:2.7.0":
		return double(KindPowerReceived, body, 5, 3)
	case "0-0:96.7.21":
		return integer(KindPowerFailures, body, 5)
	case "0-0:96.7.9":
		return integer(KindLongPowerFailures, body, 5)
	case "1-0:99.97.0":
		return Object{Kind: KindPowerFailureEventLog}, nil
	case "1-0:32.32.0":
		return lineInteger(KindVoltageSags, obis.Line1, body, 5)
	case "1-0:52.32.0":
		return lineInteger(KindVoltageSags, obis.Line2, body, 5)
	case "1-0:72.32.0":
		return lineInteger(KindVoltageSags, obis.Line3, body, 5)
	case "1-0:32.36.0":
		return lineInteger(KindVoltageSwells, obis.Line1, body, 5)
	case "1-0:52.36.0":
		return lineInteger(KindVoltageSwells, obis.Line2, body, 5)
	case "1-0:72.36.0":
		return lineInteger(KindVoltageSwells, obis.Line3, body, 5)
	case "0-0:96.13.1":
		return Object{Kind: KindTextMessageCode}, nil
	case "0-0:96.13.0":
		return Object{Kind: KindTextMessage}, nil
	case "1-0:31.7.0":
		return lineInteger(KindInstantaneousCurrent, obis.Line1, body, 3)
	case "1-0:51.7.0":
		return lineInteger(KindInstantaneousCurrent, obis.Line2, body, 3)
	case "1-0:71.7.0":
		return lineInteger(KindInstantaneousCurrent, obis.Line3, body, 3)
	case "1-0:21.7.0":
		return lineDouble(KindInstantaneousActivePowerPlus, obis.Line1, body, 5, 3)
	case "1-0:41.7.0":
		return lineDouble(KindInstantaneousActivePowerPlus, obis.Line2, body, 5, 3)
	case "1-0:61.7.0":
		return lineDouble(KindInstantaneousActivePowerPlus, obis.Line3, body, 5, 3)
	case "1-0:22.7.0":
		return lineDouble(KindInstantaneousActivePowerNeg, obis.Line1, body, 5, 3)
	case "1-0:42.7.0":
		return lineDouble(KindInstantaneousActivePowerNeg, obis.Line2, body, 5, 3)
	case "1-0:62.7.0":
		return lineDouble(KindInstantaneousActivePowerNeg, obis.Line3, body, 5, 3)
	}

	channel, subreference, err := obis.SplitSlave(reference)
	if err != nil {
		return Object{}, err
	}
	switch subreference {
	case "24.1.0":
		n, err := cosem.ParseUFixedInteger(body, 3)
		return Object{Kind: KindSlaveDeviceType, Slave: channel, Integer: n}, err
	case "96.1.0":
		s, err := cosem.ParseOctetStringMax(body, 96)
		return Object{Kind: KindSlaveEquipmentIdentifier, Slave: channel, OctetString: s}, err
	case "24.2.1":
		ts, d, err := obis.ParseTimedReading(body)
		if err != nil {
			return Object{}, err
		}
		return Object{Kind: KindSlaveMeterReading, Slave: channel, Timestamp: ts, Double: d}, nil
	}
	return Object{}, obis.ErrUnknownReference
}

func octets(kind Kind, body string, length int) (Object, error) {
	s, err := cosem.ParseOctetString(body, length)
	return Object{Kind: kind, OctetString: s}, err
}

func octetsMax(kind Kind, body string, maxLength int) (Object, error) {
	s, err := cosem.ParseOctetStringMax(body, maxLength)
	return Object{Kind: kind, OctetString: s}, err
}

func double(kind Kind, body string, length int, point uint8) (Object, error) {
	d, err := cosem.ParseUFixedDouble(body, length, point)
	return Object{Kind: kind, Double: d}, err
}

func integer(kind Kind, body string, length int) (Object, error) {
	n, err := cosem.ParseUFixedInteger(body, length)
	return Object{Kind: kind, Integer: n}, err
}

func lineInteger(kind Kind, line obis.Line, body string, length int) (Object, error) {
	n, err := cosem.ParseUFixedInteger(body, length)
	return Object{Kind: kind, Line: line, Integer: n}, err
}

func lineDouble(kind Kind, line obis.Line, body string, length int, point uint8) (Object, error) {
	d, err := cosem.ParseUFixedDouble(body, length, point)
	return Object{Kind: kind, Line: line, Double: d}, err
}

func tariffDouble(kind Kind, tariff obis.Tariff, body string, length int, point uint8) (Object, error) {
	d, err := cosem.ParseUFixedDouble(body, length, point)
	return Object{Kind: kind, Tariff: tariff, Double: d}, err
}
