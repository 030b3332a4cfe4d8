package godsmr

import (
	"fmt"

	"gitlab.com/d21d3q/godsmr/internal/cosem"
	"gitlab.com/d21d3q/godsmr/internal/state"
)

func formatTimestamp(ts cosem.Timestamp) string {
	return fmt.Sprintf("20%02d-%02d-%02d %02d:%02d:%02d",
		ts.Year, ts.Month, ts.Day, ts.Hour, ts.Minute, ts.Second)
}

func putFloat(fields map[string]any, key string, p *float64) {
	if p != nil {
		fields[key] = *p
	}
}

func putUint(fields map[string]any, key string, p *uint64) {
	if p != nil {
		fields[key] = *p
	}
}

func fieldsBase(b state.Base) map[string]any {
	fields := map[string]any{}
	if b.DateTime != nil {
		fields["datetime"] = formatTimestamp(*b.DateTime)
		fields["dst"] = b.DateTime.DST
	}
	putFloat(fields, "tariff1_to_kwh", b.MeterReadings[0].To)
	putFloat(fields, "tariff1_by_kwh", b.MeterReadings[0].By)
	putFloat(fields, "tariff2_to_kwh", b.MeterReadings[1].To)
	putFloat(fields, "tariff2_by_kwh", b.MeterReadings[1].By)
	if b.TariffIndicator != nil {
		fields["tariff_indicator"] = fmt.Sprintf("%02X%02X", b.TariffIndicator[0], b.TariffIndicator[1])
	}
	putFloat(fields, "power_delivered_kw", b.PowerDelivered)
	putFloat(fields, "power_received_kw", b.PowerReceived)
	putUint(fields, "power_failures", b.PowerFailures)
	putUint(fields, "long_power_failures", b.LongPowerFailures)
	return fields
}

func putDSMR4Line(fields map[string]any, prefix string, l state.DSMR4Line) {
	putUint(fields, prefix+"voltage_sags", l.VoltageSags)
	putUint(fields, prefix+"voltage_swells", l.VoltageSwells)
	putFloat(fields, prefix+"power_plus_kw", l.ActivePowerPlus)
	putFloat(fields, prefix+"power_neg_kw", l.ActivePowerNeg)
	putUint(fields, prefix+"current_a", l.Current)
}

func putDSMR4Slave(fields map[string]any, prefix string, s state.DSMR4Slave) {
	putUint(fields, prefix+"device_type", s.DeviceType)
	if s.MeterReading != nil {
		fields[prefix+"reading"] = s.MeterReading.Value
		fields[prefix+"reading_time"] = formatTimestamp(s.MeterReading.Time)
	}
}

func linePrefix(i int) string {
	return fmt.Sprintf("line%d_", i+1)
}

func slavePrefix(i int) string {
	return fmt.Sprintf("slave%d_", i+1)
}

func fieldsDSMR4(s state.DSMR4) map[string]any {
	fields := fieldsBase(s.Base)
	for i, l := range s.Lines {
		putDSMR4Line(fields, linePrefix(i), l)
	}
	for i, sl := range s.Slaves {
		putDSMR4Slave(fields, slavePrefix(i), sl)
	}
	return fields
}

func fieldsDSMR5(s state.DSMR5) map[string]any {
	fields := fieldsBase(s.Base)
	for i, l := range s.Lines {
		prefix := linePrefix(i)
		putDSMR4Line(fields, prefix, l.DSMR4Line)
		putFloat(fields, prefix+"voltage_v", l.Voltage)
	}
	for i, sl := range s.Slaves {
		putDSMR4Slave(fields, slavePrefix(i), sl.DSMR4Slave)
	}
	return fields
}

func fieldsEMUCS(s state.EMUCS) map[string]any {
	fields := fieldsBase(s.Base)
	putUint(fields, "breaker_state", s.BreakerState)
	putFloat(fields, "limiter_threshold_kw", s.LimiterThreshold)
	putUint(fields, "fuse_supervision_a", s.FuseSupervisionThreshold)
	putFloat(fields, "average_demand_kw", s.AverageDemand)
	for i, l := range s.Lines {
		prefix := linePrefix(i)
		putDSMR4Line(fields, prefix, l.DSMR4Line)
		putFloat(fields, prefix+"voltage_v", l.Voltage)
		// The Belgian decimal current shadows the base integer current.
		if l.Current != nil {
			fields[prefix+"current_a"] = *l.Current
		}
	}
	for i, sl := range s.Slaves {
		prefix := slavePrefix(i)
		putDSMR4Slave(fields, prefix, sl.DSMR4Slave)
		putUint(fields, prefix+"valve_state", sl.ValveState)
	}
	return fields
}
