package units

import "errors"

// Unit provides common values for units used to describe a vehicle quantity.
type Unit string

// The valid units.
const (
	// Velocity
	MPH             Unit = "mph"
	KMH             Unit = "km/h"
	MetersPerSecond Unit = "m/s"

	// Distance
	Meters Unit = "m"
	Feet   Unit = "ft"

	// Mass
	Pounds    Unit = "lb"
	Kilograms Unit = "kg"

	// Angle
	Degrees Unit = "deg"
	Radians Unit = "rad"

	// Angular rate
	DegreesPerSecond Unit = "deg/s"
	RadiansPerSecond Unit = "rad/s"
)

// Conversion factors shared with callers that need the raw multiplier.
const (
	MPHToMS  = 1.609344 / 3.6
	KPHToMS  = 1 / 3.6
	MSToMPH  = 3.6 / 1.609344
	MSToKPH  = 3.6
	LbToKg   = 0.453592
	DegToRad = 3.14159265358979323846 / 180
	RadToDeg = 1 / DegToRad
	FtToM    = 0.3048
)

// ErrorInvalidConversion is returned when an invalid unit conversion attempt is made.
var ErrorInvalidConversion = errors.New("units are invalid for conversion")

// Convert converts value from one unit to another. Converting a unit to
// itself always succeeds.
func Convert(value float64, from, to Unit) (float64, error) {
	if from == to {
		return value, nil
	}

	cvs := UnitConversions[from]
	if cvs == nil {
		return 0, ErrorInvalidConversion
	}

	cv := cvs[to]
	if cv == nil {
		return 0, ErrorInvalidConversion
	}

	return cv(value), nil
}

// MustConvert is like Convert but panics on an invalid conversion. It is meant
// for conversions between fixed units known at compile time.
func MustConvert(value float64, from, to Unit) float64 {
	v, err := Convert(value, from, to)
	if err != nil {
		panic(err)
	}
	return v
}

// UnitConversions provides conversion functions for the package-defined Units.
var UnitConversions = map[Unit]map[Unit]func(v float64) float64{
	MPH: {
		KMH: func(v float64) float64 {
			return v * 1.609344
		},
		MetersPerSecond: func(v float64) float64 {
			return v * MPHToMS
		},
	},
	KMH: {
		MPH: func(v float64) float64 {
			return v / 1.609344
		},
		MetersPerSecond: func(v float64) float64 {
			return v * KPHToMS
		},
	},
	MetersPerSecond: {
		MPH: func(v float64) float64 {
			return v * MSToMPH
		},
		KMH: func(v float64) float64 {
			return v * MSToKPH
		},
	},
	Feet: {
		Meters: func(v float64) float64 {
			return v * FtToM
		},
	},
	Meters: {
		Feet: func(v float64) float64 {
			return v / FtToM
		},
	},
	Pounds: {
		Kilograms: func(v float64) float64 {
			return v * LbToKg
		},
	},
	Kilograms: {
		Pounds: func(v float64) float64 {
			return v / LbToKg
		},
	},
	Degrees: {
		Radians: func(v float64) float64 {
			return v * DegToRad
		},
	},
	Radians: {
		Degrees: func(v float64) float64 {
			return v * RadToDeg
		},
	},
	DegreesPerSecond: {
		RadiansPerSecond: func(v float64) float64 {
			return v * DegToRad
		},
	},
	RadiansPerSecond: {
		DegreesPerSecond: func(v float64) float64 {
			return v * RadToDeg
		},
	},
}
