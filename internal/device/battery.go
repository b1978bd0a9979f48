package device

import (
	"fmt"
	"strconv"
	"strings"
)

// BatteryStatus is the charging status reported by the battery service.
type BatteryStatus int

const (
	BatteryStatusUnknown BatteryStatus = iota
	BatteryCharging
	BatteryDischarging
	BatteryNotCharging
	BatteryFull
)

// String returns the display name of the status.
func (s BatteryStatus) String() string {
	switch s {
	case BatteryCharging:
		return "Charging"
	case BatteryDischarging:
		return "Discharging"
	case BatteryNotCharging:
		return "Not Charging"
	case BatteryFull:
		return "Full"
	default:
		return "Unknown"
	}
}

// BatteryHealth is the battery health reported by the battery service.
type BatteryHealth int

const (
	BatteryHealthUnknown BatteryHealth = iota
	BatteryGood
	BatteryOverheat
	BatteryDead
	BatteryOvervoltage
	BatteryUnknownFailure
	BatteryCold
)

// String returns the display name of the health value.
func (h BatteryHealth) String() string {
	switch h {
	case BatteryGood:
		return "Good"
	case BatteryOverheat:
		return "Overheat"
	case BatteryDead:
		return "Dead"
	case BatteryOvervoltage:
		return "Overvoltage"
	case BatteryUnknownFailure:
		return "Unknown Failure"
	case BatteryCold:
		return "Cold"
	default:
		return "Unknown"
	}
}

// BatterySnapshot is the parsed battery facet. Numeric sentinels are -1,
// boolean sentinels false and string sentinels empty.
type BatterySnapshot struct {
	OnAcPower       bool
	OnUsbPower      bool
	OnWirelessPower bool
	StatusCode      int
	HealthCode      int
	Present         bool
	Level           int
	Scale           int
	// VoltageMillivolts is the pack voltage in mV.
	VoltageMillivolts int
	// TemperatureTenths is the pack temperature in tenths of a degree
	// Celsius.
	TemperatureTenths int
	Technology        string
	Raw               string

	Completeness Completeness
	Gaps         []string
}

// batteryMarker opens the battery section of the dump; everything before
// it is unrelated preamble.
const batteryMarker = "Current Battery Service state"

func unavailableBattery() BatterySnapshot {
	return BatterySnapshot{
		StatusCode:        -1,
		HealthCode:        -1,
		Level:             -1,
		Scale:             -1,
		VoltageMillivolts: -1,
		TemperatureTenths: -1,
	}
}

// Status maps the raw status code to the enumeration; out-of-range codes
// fall back to unknown.
func (b BatterySnapshot) Status() BatteryStatus {
	if b.StatusCode >= 1 && b.StatusCode <= 5 {
		return BatteryStatus(b.StatusCode - 1)
	}
	return BatteryStatusUnknown
}

// StatusText is the display form of the status. An out-of-range positive
// code keeps its numeric value visible.
func (b BatterySnapshot) StatusText() string {
	if b.StatusCode > 5 || b.StatusCode == 0 {
		return fmt.Sprintf("Unknown Value: %d", b.StatusCode)
	}
	return b.Status().String()
}

// Health maps the raw health code to the enumeration; out-of-range codes
// fall back to unknown.
func (b BatterySnapshot) Health() BatteryHealth {
	if b.HealthCode >= 1 && b.HealthCode <= 7 {
		return BatteryHealth(b.HealthCode - 1)
	}
	return BatteryHealthUnknown
}

// HealthText is the display form of the health value.
func (b BatterySnapshot) HealthText() string {
	if b.HealthCode > 7 || b.HealthCode == 0 {
		return fmt.Sprintf("Unknown Value: %d", b.HealthCode)
	}
	return b.Health().String()
}

// parseBatteryDump converts raw "dumpsys battery" output into a snapshot.
// The dump tool prepends unrelated preamble, so parsing starts at the
// marker line. One malformed field falls back to its sentinel without
// invalidating the rest of the snapshot.
func parseBatteryDump(raw string) BatterySnapshot {
	snap := unavailableBattery()
	snap.Raw = raw

	lines := strings.Split(raw, "\n")
	start := -1
	for i, line := range lines {
		if strings.Contains(line, batteryMarker) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		snap.Completeness = Partial
		snap.Gaps = []string{"battery service marker"}
		return snap
	}

	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch {
		case strings.Contains(line, "AC powered"):
			snap.OnAcPower = boolAfter(line, "AC powered", &snap.Gaps)
		case strings.Contains(line, "USB powered"):
			snap.OnUsbPower = boolAfter(line, "USB powered", &snap.Gaps)
		case strings.Contains(line, "Wireless powered"):
			snap.OnWirelessPower = boolAfter(line, "Wireless powered", &snap.Gaps)
		case strings.Contains(line, "status"):
			snap.StatusCode = intAfter(line, "status", &snap.Gaps)
		case strings.Contains(line, "health"):
			snap.HealthCode = intAfter(line, "health", &snap.Gaps)
		case strings.Contains(line, "present"):
			snap.Present = boolAfter(line, "present", &snap.Gaps)
		case strings.Contains(line, "level"):
			snap.Level = intAfter(line, "level", &snap.Gaps)
		case strings.Contains(line, "scale"):
			snap.Scale = intAfter(line, "scale", &snap.Gaps)
		case strings.Contains(line, "voltage"):
			snap.VoltageMillivolts = intAfter(line, "voltage", &snap.Gaps)
		case strings.Contains(line, "temp"):
			snap.TemperatureTenths = intAfter(line, "temp", &snap.Gaps)
		case strings.Contains(line, "tech"):
			snap.Technology = stringAfter(line, "tech")
		}
	}

	if len(snap.Gaps) > 0 {
		snap.Completeness = Partial
	} else {
		snap.Completeness = Complete
	}
	return snap
}

// valueAfter returns the text following the keyword and its label
// punctuation. Labels are right-padded inconsistently across versions,
// so everything up to and including the first colon after the keyword is
// discarded.
func valueAfter(line, keyword string) string {
	idx := strings.Index(line, keyword)
	if idx < 0 {
		return ""
	}
	rest := line[idx+len(keyword):]
	if c := strings.Index(rest, ":"); c >= 0 {
		rest = rest[c+1:]
	}
	return strings.TrimSpace(rest)
}

func intAfter(line, keyword string, gaps *[]string) int {
	n, err := strconv.Atoi(valueAfter(line, keyword))
	if err != nil {
		*gaps = append(*gaps, keyword)
		return -1
	}
	return n
}

func boolAfter(line, keyword string, gaps *[]string) bool {
	v, err := strconv.ParseBool(valueAfter(line, keyword))
	if err != nil {
		*gaps = append(*gaps, keyword)
		return false
	}
	return v
}

func stringAfter(line, keyword string) string {
	return valueAfter(line, keyword)
}

// readBattery fetches and parses the battery dump.
func (d *Device) readBattery() BatterySnapshot {
	out, err := d.session.Shell(d.serial, "dumpsys", "battery")
	if err != nil {
		d.log.Debug().Err(err).Str("serial", d.serial).Msg("battery dump failed")
		return unavailableBattery()
	}
	return parseBatteryDump(out)
}
