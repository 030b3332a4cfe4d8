package dsmr5

import (
	"errors"
	"testing"

	"gitlab.com/d21d3q/godsmr/internal/cosem"
	"gitlab.com/d21d3q/godsmr/internal/obis"
	"gitlab.com/d21d3q/godsmr/internal/obis/dsmr4"
)

func TestParseInstantaneousVoltage(t *testing.T) {
	o, err := ParseLine("1-0:32.7.0(236.1*V)")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if o.Kind != KindInstantaneousVoltage {
		t.Fatalf("wrong variant: %+v", o)
	}
	if got := o.Double.Float(); got != 236.1 {
		t.Fatalf("voltage mismatch: %v", got)
	}
	line, ok := o.LineIndex()
	if !ok || line != obis.Line1 {
		t.Fatalf("LineIndex: %v %v", line, ok)
	}
}

func TestFallbackWrapsBase(t *testing.T) {
	o, err := ParseLine("1-0:1.8.2(000465.162*kWh)")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if o.Kind != KindDSMR4 {
		t.Fatalf("expected wrapped base object, got %+v", o)
	}
	if o.DSMR4.Kind != dsmr4.KindMeterReadingTo || o.DSMR4.Tariff != obis.Tariff2 {
		t.Fatalf("wrong inner variant: %+v", o.DSMR4)
	}
	tariff, ok := o.TariffIndex()
	if !ok || tariff != obis.Tariff2 {
		t.Fatalf("TariffIndex did not delegate: %v %v", tariff, ok)
	}
}

func TestFallbackSlaveAccessor(t *testing.T) {
	o, err := ParseLine("0-2:24.1.0(007)")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	slave, ok := o.SlaveIndex()
	if !ok || slave != obis.Slave2 {
		t.Fatalf("SlaveIndex did not delegate: %v %v", slave, ok)
	}
}

func TestUnknownPropagates(t *testing.T) {
	if _, err := ParseLine("9-9:9.9.9(1)"); !errors.Is(err, obis.ErrUnknownReference) {
		t.Fatalf("expected ErrUnknownReference, got %v", err)
	}
}

func TestFormatViolationDoesNotFallBack(t *testing.T) {
	// A voltage reference with a broken body must fail in this layer, not
	// reach the base tables.
	if _, err := ParseLine("1-0:32.7.0(23*V)"); !errors.Is(err, cosem.ErrInvalidFormat) {
		t.Fatalf("expected format violation, got %v", err)
	}
}
