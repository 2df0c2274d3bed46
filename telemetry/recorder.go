package telemetry

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/gavinwade12/carif/car"
	"github.com/pkg/errors"
)

var recorderHeader = []string{
	"nanos", "v_ego", "a_ego", "v_ego_raw", "yaw_rate", "standstill",
	"steering_angle", "steering_rate", "steering_torque",
	"cruise_available", "cruise_enabled", "left_blinker", "right_blinker",
	"door_open", "seatbelt_unlatched", "buttons", "events",
}

// Recorder writes one CSV line per car state.
type Recorder struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewRecorder returns a Recorder writing to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: csv.NewWriter(w)}
}

// Record writes the car state observed at nanos. The header is written
// before the first record.
func (r *Recorder) Record(nanos int64, cs car.CarState) error {
	if !r.wroteHeader {
		if err := r.w.Write(recorderHeader); err != nil {
			return errors.Wrap(err, "writing header")
		}
		r.wroteHeader = true
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	b := func(v bool) string {
		if v {
			return "1"
		}
		return "0"
	}

	buttons := make([]string, len(cs.ButtonEvents))
	for i, be := range cs.ButtonEvents {
		buttons[i] = string(be.Type) + ":" + b(be.Pressed)
	}
	events := make([]string, len(cs.Events))
	for i, e := range cs.Events {
		events[i] = string(e.Name)
	}

	err := r.w.Write([]string{
		strconv.FormatInt(nanos, 10),
		f(cs.VEgo), f(cs.AEgo), f(cs.VEgoRaw), f(cs.YawRate), b(cs.Standstill),
		f(cs.SteeringAngle), f(cs.SteeringRate), f(cs.SteeringTorque),
		b(cs.CruiseState.Available), b(cs.CruiseState.Enabled),
		b(cs.LeftBlinker), b(cs.RightBlinker),
		b(cs.DoorOpen), b(cs.SeatbeltUnlatched),
		strings.Join(buttons, " "), strings.Join(events, " "),
	})
	if err != nil {
		return errors.Wrap(err, "writing car state")
	}
	return nil
}

// Flush writes any buffered records to the underlying writer.
func (r *Recorder) Flush() error {
	r.w.Flush()
	return r.w.Error()
}

// WriteStates writes decoded states as CSV telemetry that NewCSVDecoder can
// read back, header first.
func WriteStates(w io.Writer, states []car.DecodedState) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SignalNames()); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for _, s := range states {
		if err := cw.Write(FormatState(s)); err != nil {
			return errors.Wrap(err, "writing state")
		}
	}
	cw.Flush()
	return cw.Error()
}
