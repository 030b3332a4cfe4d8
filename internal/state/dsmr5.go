package state

import (
	"fmt"

	"gitlab.com/d21d3q/godsmr/internal/frame"
	"gitlab.com/d21d3q/godsmr/internal/obis/dsmr5"
)

// DSMR5Line extends the base line record with the instantaneous voltage.
type DSMR5Line struct {
	DSMR4Line
	Voltage *float64 `json:"voltage,omitempty"`
}

func (l *DSMR5Line) apply(o dsmr5.Object) error {
	switch o.Kind {
	case dsmr5.KindInstantaneousVoltage:
		l.Voltage = floatPtr(o.Double)
		return nil
	case dsmr5.KindDSMR4:
		return l.DSMR4Line.apply(o.DSMR4)
	}
	return fmt.Errorf("%w: fifth revision line object kind %d", ErrUnhandled, o.Kind)
}

// DSMR5Slave is the per slave channel record of the fifth revision snapshot.
type DSMR5Slave struct {
	DSMR4Slave
}

func (s *DSMR5Slave) apply(o dsmr5.Object) error {
	if o.Kind == dsmr5.KindDSMR4 {
		return s.DSMR4Slave.apply(o.DSMR4)
	}
	return fmt.Errorf("%w: fifth revision slave object kind %d", ErrUnhandled, o.Kind)
}

// DSMR5 is the snapshot of one fifth revision telegram.
type DSMR5 struct {
	Base
	Lines  [3]DSMR5Line  `json:"lines"`
	Slaves [4]DSMR5Slave `json:"slaves"`
}

// Apply folds one decoded object into the snapshot, last write wins.
func (s *DSMR5) Apply(o dsmr5.Object) error {
	if l, ok := o.LineIndex(); ok {
		return s.Lines[l].apply(o)
	}
	if sl, ok := o.SlaveIndex(); ok {
		return s.Slaves[sl].apply(o)
	}
	if o.Kind != dsmr5.KindDSMR4 {
		return fmt.Errorf("%w: fifth revision object kind %d", ErrUnhandled, o.Kind)
	}
	return s.Base.applyDSMR4(o.DSMR4)
}

// ReduceDSMR5 folds a telegram into a fifth revision snapshot, stopping at
// the first decode or reduce error.
func ReduceDSMR5(t frame.Telegram) (DSMR5, error) {
	var s DSMR5
	lines := t.Objects()
	for {
		line, ok := lines.Next()
		if !ok {
			return s, nil
		}
		o, err := dsmr5.ParseLine(line)
		if err != nil {
			return DSMR5{}, err
		}
		if err := s.Apply(o); err != nil {
			return DSMR5{}, err
		}
	}
}
