package mazda

import (
	"github.com/gavinwade12/carif/car"
	"github.com/gavinwade12/carif/units"
	"github.com/gavinwade12/carif/vehiclemodel"
	"github.com/pkg/errors"
)

// StandstillSpeed is the raw speed (m/s) below which the car is at a standstill.
const StandstillSpeed = 0.01

// ErrReadOnly is returned by Apply on an interface built without a Controller.
var ErrReadOnly = errors.New("interface is read-only")

// Config holds the collaborators and settings used to build an Interface.
type Config struct {
	Car    Car
	Wiring Wiring

	// Decoder is required.
	Decoder car.Decoder
	// Model defaults to a bicycle model built from the car's params.
	Model car.KinematicModel
	// Controller may be nil, which makes the interface read-only.
	Controller car.Controller
	// Clock defaults to a monotonic clock started at construction.
	Clock car.Clock
	// Logger defaults to car.NopLogger.
	Logger car.Logger
}

// Interface adapts a Mazda's decoded bus data to car states for the control
// loop and forwards the loop's commands to the controller.
//
// Update and Apply are meant to be called by a single control loop, once per
// cycle each. An Interface is not safe for concurrent use; a host calling it
// from several goroutines must serialize the whole cycle.
type Interface struct {
	params car.Params
	bus    CanBus

	decoder    car.Decoder
	model      car.KinematicModel
	controller car.Controller
	clock      car.Clock
	logger     car.Logger

	prev  Previous
	frame uint64
}

// New builds an Interface. It fails for an unknown car or wiring, or when no
// decoder is given.
func New(cfg Config) (*Interface, error) {
	params, err := GetParams(cfg.Car)
	if err != nil {
		return nil, err
	}
	bus, err := BusFor(cfg.Wiring)
	if err != nil {
		return nil, errors.Wrap(err, "assigning buses")
	}
	if cfg.Decoder == nil {
		return nil, errors.New("a decoder is required")
	}

	ci := &Interface{
		params:     params,
		bus:        bus,
		decoder:    cfg.Decoder,
		model:      cfg.Model,
		controller: cfg.Controller,
		clock:      cfg.Clock,
		logger:     cfg.Logger,
	}
	if ci.model == nil {
		ci.model = vehiclemodel.New(params)
	}
	if ci.clock == nil {
		ci.clock = car.NewMonotonicClock()
	}
	if ci.logger == nil {
		ci.logger = car.NopLogger
	}

	ci.logger.Debugf("mazda interface for %s: powertrain bus %d, cam bus %d, read-only %v",
		params.CarFingerprint, bus.Powertrain, bus.Cam, ci.controller == nil)
	return ci, nil
}

// Params returns the car's parameters.
func (ci *Interface) Params() car.Params {
	return ci.params
}

// Bus returns the bus assignment.
func (ci *Interface) Bus() CanBus {
	return ci.bus
}

// Frame returns the number of commands applied so far.
func (ci *Interface) Frame() uint64 {
	return ci.frame
}

// CANInvalidCount returns the number of consecutive cycles with invalid bus data.
func (ci *Interface) CANInvalidCount() int {
	return ci.prev.CANInvalidCount
}

// Update refreshes the decoded state from the latest frames and returns the
// car state for this cycle. It never blocks on the decoder.
func (ci *Interface) Update() car.CarState {
	ci.decoder.Refresh(ci.clock.Nanos(), false)
	cs := ci.decoder.State()

	buttons, events, next := DetectEvents(cs, ci.prev)
	if next.CANInvalidCount == CommIssueCycles {
		ci.logger.Debugf("bus data invalid for %d cycles", next.CANInvalidCount)
	}
	ci.prev = next

	return car.CarState{
		VEgo:    cs.VEgo,
		AEgo:    cs.AEgo,
		VEgoRaw: cs.VEgoRaw,
		YawRate: ci.model.YawRate(
			units.MustConvert(cs.SteeringAngle, units.Degrees, units.Radians), cs.VEgo),
		Standstill:  cs.VEgoRaw < StandstillSpeed,
		WheelSpeeds: cs.WheelSpeeds,

		SteeringAngle:  units.MustConvert(cs.SteeringAngle, units.Degrees, units.Radians),
		SteeringRate:   units.MustConvert(cs.SteeringRate, units.DegreesPerSecond, units.RadiansPerSecond),
		SteeringTorque: cs.SteeringTorque,

		CruiseState: car.CruiseState{
			Available: cs.MainOn,
			Enabled:   cs.CruiseActive,
		},

		LeftBlinker:       cs.LeftBlinker,
		RightBlinker:      cs.RightBlinker,
		DoorOpen:          !cs.DoorsClosed,
		SeatbeltUnlatched: !cs.SeatbeltLatched,

		ButtonEvents: buttons,
		Events:       events,
	}
}

// Apply forwards the command to the controller along with the current decoded
// state, then advances the frame counter by one.
func (ci *Interface) Apply(c car.ControlCommand) error {
	if ci.controller == nil {
		ci.logger.Debugf("dropping command for frame %d: %v", ci.frame, ErrReadOnly)
		return ErrReadOnly
	}

	ci.controller.Update(c.Enabled, ci.decoder.State(), ci.frame, c.Actuators)
	ci.frame++
	return nil
}
