package telemetry

import (
	"math"
	"math/rand"

	"github.com/gavinwade12/carif/car"
)

// FakeDecoder is a car.Decoder that isn't connected to a car. Every Refresh
// advances a short synthetic drive: the driver buckles up, engages cruise,
// accelerates, signals and steers through a curve. The noise is seeded, so
// a given seed always yields the same drive.
type FakeDecoder struct {
	// DropEvery marks the bus data invalid on every n-th refresh. Zero never drops.
	DropEvery int

	rnd   *rand.Rand
	ticks int
	state car.DecodedState
}

// NewFakeDecoder returns a FakeDecoder seeded with seed.
func NewFakeDecoder(seed int64) *FakeDecoder {
	return &FakeDecoder{
		rnd: rand.New(rand.NewSource(seed)),
		state: car.DecodedState{
			DoorsClosed: true,
			CANValid:    true,
		},
	}
}

// Refresh advances the drive by one sample. The timestamp is ignored.
func (d *FakeDecoder) Refresh(nanos int64, blocking bool) {
	d.ticks++
	t := float64(d.ticks) / 100 // seconds at 100 Hz

	s := &d.state
	s.SeatbeltLatched = d.ticks > 50
	s.MainOn = d.ticks > 100
	s.CruiseActive = d.ticks > 150

	speed := math.Min(t*1.5, 25)
	wheel := func() float64 { return math.Max(0, speed+(d.rnd.Float64()-0.5)*0.05) }
	s.WheelSpeeds = car.WheelSpeeds{
		FL: wheel(), FR: wheel(),
		RL: wheel(), RR: wheel(),
	}
	s.VEgoRaw = (s.WheelSpeeds.FL + s.WheelSpeeds.FR + s.WheelSpeeds.RL + s.WheelSpeeds.RR) / 4
	s.VEgo = speed
	s.AEgo = 0
	if speed < 25 {
		s.AEgo = 1.5
	}

	angle := 0.0
	if t > 10 {
		angle = 20 * math.Sin((t-10)/4)
	}
	s.SteeringRate = (angle - s.SteeringAngle) * 100
	s.SteeringAngle = angle
	s.SteeringTorque = angle * 0.3

	s.LeftBlinker = t > 8 && t < 10
	s.CANValid = d.DropEvery <= 0 || d.ticks%d.DropEvery != 0
}

// State returns the current synthetic state.
func (d *FakeDecoder) State() car.DecodedState {
	return d.state
}
