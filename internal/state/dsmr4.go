package state

import (
	"fmt"

	"gitlab.com/d21d3q/godsmr/internal/frame"
	"gitlab.com/d21d3q/godsmr/internal/obis/dsmr4"
)

// DSMR4Line is the per power line record of the base snapshot.
type DSMR4Line struct {
	VoltageSags     *uint64  `json:"voltage_sags,omitempty"`
	VoltageSwells   *uint64  `json:"voltage_swells,omitempty"`
	ActivePowerPlus *float64 `json:"active_power_plus,omitempty"`
	ActivePowerNeg  *float64 `json:"active_power_neg,omitempty"`
	Current         *uint64  `json:"current,omitempty"`
}

func (l *DSMR4Line) apply(o dsmr4.Object) error {
	switch o.Kind {
	case dsmr4.KindVoltageSags:
		l.VoltageSags = uintPtr(o.Integer)
	case dsmr4.KindVoltageSwells:
		l.VoltageSwells = uintPtr(o.Integer)
	case dsmr4.KindInstantaneousActivePowerPlus:
		l.ActivePowerPlus = floatPtr(o.Double)
	case dsmr4.KindInstantaneousActivePowerNeg:
		l.ActivePowerNeg = floatPtr(o.Double)
	case dsmr4.KindInstantaneousCurrent:
		l.Current = uintPtr(o.Integer)
	default:
		return fmt.Errorf("%w: base line object kind %d", ErrUnhandled, o.Kind)
	}
	return nil
}

// DSMR4Slave is the per slave channel record of the base snapshot.
type DSMR4Slave struct {
	DeviceType   *uint64       `json:"device_type,omitempty"`
	MeterReading *TimedReading `json:"meter_reading,omitempty"`
}

func (s *DSMR4Slave) apply(o dsmr4.Object) error {
	switch o.Kind {
	case dsmr4.KindSlaveDeviceType:
		s.DeviceType = uintPtr(o.Integer)
	case dsmr4.KindSlaveMeterReading:
		s.MeterReading = &TimedReading{Time: o.Timestamp, Value: o.Double.Float()}
	case dsmr4.KindSlaveEquipmentIdentifier:
		// Identifier strings stay views into the readout; the snapshot
		// keeps no slot for them.
	default:
		return fmt.Errorf("%w: base slave object kind %d", ErrUnhandled, o.Kind)
	}
	return nil
}

func (b *Base) applyDSMR4(o dsmr4.Object) error {
	switch o.Kind {
	case dsmr4.KindDateTime:
		ts := o.Timestamp
		b.DateTime = &ts
	case dsmr4.KindMeterReadingTo:
		b.MeterReadings[o.Tariff].To = floatPtr(o.Double)
	case dsmr4.KindMeterReadingBy:
		b.MeterReadings[o.Tariff].By = floatPtr(o.Double)
	case dsmr4.KindTariffIndicator:
		ti, err := tariffIndicator(o.OctetString)
		if err != nil {
			return err
		}
		b.TariffIndicator = ti
	case dsmr4.KindPowerDelivered:
		b.PowerDelivered = floatPtr(o.Double)
	case dsmr4.KindPowerReceived:
		b.PowerReceived = floatPtr(o.Double)
	case dsmr4.KindPowerFailures:
		b.PowerFailures = uintPtr(o.Integer)
	case dsmr4.KindLongPowerFailures:
		b.LongPowerFailures = uintPtr(o.Integer)
	default:
		// Identifiers, event logs and text messages have no snapshot slot.
	}
	return nil
}

// DSMR4 is the snapshot of one base revision telegram.
type DSMR4 struct {
	Base
	Lines  [3]DSMR4Line  `json:"lines"`
	Slaves [4]DSMR4Slave `json:"slaves"`
}

// Apply folds one decoded object into the snapshot, last write wins.
func (s *DSMR4) Apply(o dsmr4.Object) error {
	if l, ok := o.LineIndex(); ok {
		return s.Lines[l].apply(o)
	}
	if sl, ok := o.SlaveIndex(); ok {
		return s.Slaves[sl].apply(o)
	}
	return s.Base.applyDSMR4(o)
}

// ReduceDSMR4 folds a telegram into a base revision snapshot, stopping at
// the first decode or reduce error.
func ReduceDSMR4(t frame.Telegram) (DSMR4, error) {
	var s DSMR4
	lines := t.Objects()
	for {
		line, ok := lines.Next()
		if !ok {
			return s, nil
		}
		o, err := dsmr4.ParseLine(line)
		if err != nil {
			return DSMR4{}, err
		}
		if err := s.Apply(o); err != nil {
			return DSMR4{}, err
		}
	}
}
