// Package units provides shared constants and conversion for speed units.
package units

// Unit constants. Telemetry records positions in world units and seconds,
// so the native speed unit is world units per second; the metric and
// imperial conversions treat one world unit as one meter.
const (
	UPS  = "ups"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{UPS, MPH, KMPH, KPH}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "ups, mph, kmph, kph"
}

// ConvertSpeed converts a speed from world units per second to the target
// units. Analysis results always carry speeds in units per second.
func ConvertSpeed(speedUPS float64, targetUnits string) float64 {
	switch targetUnits {
	case UPS:
		return speedUPS
	case MPH:
		return speedUPS * 2.2369362920544
	case KMPH, KPH:
		return speedUPS * 3.6
	default:
		return speedUPS
	}
}

// Label returns the display suffix for a unit, used by the report formatter.
func Label(unit string) string {
	switch unit {
	case MPH:
		return "mph"
	case KMPH, KPH:
		return "km/h"
	default:
		return "units/second"
	}
}
