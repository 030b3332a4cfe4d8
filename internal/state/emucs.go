package state

import (
	"fmt"

	"gitlab.com/d21d3q/godsmr/internal/frame"
	"gitlab.com/d21d3q/godsmr/internal/obis/dsmr5"
	"gitlab.com/d21d3q/godsmr/internal/obis/emucs"
)

// EMUCSLine extends the fifth revision line record. The decimal current of
// the Belgian profile shadows the integer current of the older revisions;
// under this profile the inner field is never written.
type EMUCSLine struct {
	DSMR5Line
	Current *float64 `json:"current,omitempty"`
}

func (l *EMUCSLine) apply(o emucs.Object) error {
	switch o.Kind {
	case emucs.KindInstantaneousCurrent:
		l.Current = floatPtr(o.Double)
		return nil
	case emucs.KindDSMR5:
		return l.DSMR5Line.apply(o.DSMR5)
	}
	return fmt.Errorf("%w: eMUCs line object kind %d", ErrUnhandled, o.Kind)
}

// EMUCSSlave extends the fifth revision slave record with the valve state.
type EMUCSSlave struct {
	DSMR5Slave
	ValveState *uint64 `json:"valve_state,omitempty"`
}

func (s *EMUCSSlave) apply(o emucs.Object) error {
	switch o.Kind {
	case emucs.KindSlaveValveState:
		s.ValveState = uintPtr(o.Integer)
		return nil
	case emucs.KindSlaveMeterReadingNonCorrected:
		// Non corrected values never overwrite the corrected reading.
		return nil
	case emucs.KindDSMR5:
		return s.DSMR5Slave.apply(o.DSMR5)
	}
	return fmt.Errorf("%w: eMUCs slave object kind %d", ErrUnhandled, o.Kind)
}

// EMUCS is the snapshot of one Belgian profile telegram.
type EMUCS struct {
	Base
	BreakerState             *uint64       `json:"breaker_state,omitempty"`
	LimiterThreshold         *float64      `json:"limiter_threshold,omitempty"`
	FuseSupervisionThreshold *uint64       `json:"fuse_supervision_threshold,omitempty"`
	AverageDemand            *float64      `json:"average_demand,omitempty"`
	Lines                    [3]EMUCSLine  `json:"lines"`
	Slaves                   [4]EMUCSSlave `json:"slaves"`
}

// Apply folds one decoded object into the snapshot, last write wins.
func (s *EMUCS) Apply(o emucs.Object) error {
	if l, ok := o.LineIndex(); ok {
		return s.Lines[l].apply(o)
	}
	if sl, ok := o.SlaveIndex(); ok {
		return s.Slaves[sl].apply(o)
	}
	switch o.Kind {
	case emucs.KindBreakerState:
		s.BreakerState = uintPtr(o.Integer)
	case emucs.KindLimiterThreshold:
		s.LimiterThreshold = floatPtr(o.Double)
	case emucs.KindFuseSupervisionThreshold:
		s.FuseSupervisionThreshold = uintPtr(o.Integer)
	case emucs.KindCurrentAverageDemand:
		s.AverageDemand = floatPtr(o.Double)
	case emucs.KindMaximumDemandMonth, emucs.KindMaximumDemandYear:
		// Demand history has no snapshot slot.
	case emucs.KindDSMR5:
		if o.DSMR5.Kind != dsmr5.KindDSMR4 {
			return fmt.Errorf("%w: eMUCs wrapped object kind %d", ErrUnhandled, o.DSMR5.Kind)
		}
		return s.Base.applyDSMR4(o.DSMR5.DSMR4)
	default:
		return fmt.Errorf("%w: eMUCs object kind %d", ErrUnhandled, o.Kind)
	}
	return nil
}

// ReduceEMUCS folds a telegram into a Belgian profile snapshot, stopping at
// the first decode or reduce error.
func ReduceEMUCS(t frame.Telegram) (EMUCS, error) {
	var s EMUCS
	lines := t.Objects()
	for {
		line, ok := lines.Next()
		if !ok {
			return s, nil
		}
		o, err := emucs.ParseLine(line)
		if err != nil {
			return EMUCS{}, err
		}
		if err := s.Apply(o); err != nil {
			return EMUCS{}, err
		}
	}
}
