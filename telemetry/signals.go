// Package telemetry provides decoders that feed a vehicle interface from
// sources other than a live bus decoder: synthetic data, and CSV telemetry
// streamed from a file or a serial-attached logger.
package telemetry

import (
	"strconv"

	"github.com/gavinwade12/carif/car"
	"github.com/pkg/errors"
)

// ErrUnknownSignal is returned for a column that names no known signal.
var ErrUnknownSignal = errors.New("unknown signal")

type signal struct {
	name string
	set  func(s *car.DecodedState, v string) error
	get  func(s car.DecodedState) string
}

func floatSignal(name string, field func(s *car.DecodedState) *float64) signal {
	return signal{
		name: name,
		set: func(s *car.DecodedState, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return errors.Wrapf(err, "parsing %s", name)
			}
			*field(s) = f
			return nil
		},
		get: func(s car.DecodedState) string {
			return strconv.FormatFloat(*field(&s), 'f', -1, 64)
		},
	}
}

func boolSignal(name string, field func(s *car.DecodedState) *bool) signal {
	return signal{
		name: name,
		set: func(s *car.DecodedState, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errors.Wrapf(err, "parsing %s", name)
			}
			*field(s) = b
			return nil
		},
		get: func(s car.DecodedState) string {
			if *field(&s) {
				return "1"
			}
			return "0"
		},
	}
}

// signals lists every column the CSV decoder understands, in the order
// WriteStates and FormatState use.
var signals = []signal{
	floatSignal("wheel_speed_fl", func(s *car.DecodedState) *float64 { return &s.WheelSpeeds.FL }),
	floatSignal("wheel_speed_fr", func(s *car.DecodedState) *float64 { return &s.WheelSpeeds.FR }),
	floatSignal("wheel_speed_rl", func(s *car.DecodedState) *float64 { return &s.WheelSpeeds.RL }),
	floatSignal("wheel_speed_rr", func(s *car.DecodedState) *float64 { return &s.WheelSpeeds.RR }),
	floatSignal("v_ego", func(s *car.DecodedState) *float64 { return &s.VEgo }),
	floatSignal("v_ego_raw", func(s *car.DecodedState) *float64 { return &s.VEgoRaw }),
	floatSignal("a_ego", func(s *car.DecodedState) *float64 { return &s.AEgo }),
	floatSignal("steering_angle", func(s *car.DecodedState) *float64 { return &s.SteeringAngle }),
	floatSignal("steering_rate", func(s *car.DecodedState) *float64 { return &s.SteeringRate }),
	floatSignal("steering_torque", func(s *car.DecodedState) *float64 { return &s.SteeringTorque }),
	boolSignal("cruise_active", func(s *car.DecodedState) *bool { return &s.CruiseActive }),
	boolSignal("main_on", func(s *car.DecodedState) *bool { return &s.MainOn }),
	boolSignal("left_blinker", func(s *car.DecodedState) *bool { return &s.LeftBlinker }),
	boolSignal("right_blinker", func(s *car.DecodedState) *bool { return &s.RightBlinker }),
	boolSignal("doors_closed", func(s *car.DecodedState) *bool { return &s.DoorsClosed }),
	boolSignal("seatbelt_latched", func(s *car.DecodedState) *bool { return &s.SeatbeltLatched }),
	boolSignal("can_valid", func(s *car.DecodedState) *bool { return &s.CANValid }),
}

func lookupSignal(name string) (signal, error) {
	for _, s := range signals {
		if s.name == name {
			return s, nil
		}
	}
	return signal{}, errors.Wrapf(ErrUnknownSignal, "%q", name)
}

// SignalNames returns the CSV column names in their canonical order.
func SignalNames() []string {
	names := make([]string, len(signals))
	for i, s := range signals {
		names[i] = s.name
	}
	return names
}

// FormatState returns the state as CSV fields in SignalNames order.
func FormatState(s car.DecodedState) []string {
	fields := make([]string, len(signals))
	for i, sig := range signals {
		fields[i] = sig.get(s)
	}
	return fields
}
