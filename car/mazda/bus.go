package mazda

import "github.com/pkg/errors"

// Wiring identifies how the interface harness connects the car's buses to
// the bus adapter.
type Wiring string

// The supported wirings.
const (
	WiringStandard Wiring = "standard"
)

// CanBus maps logical buses to the adapter's physical bus numbers.
type CanBus struct {
	Powertrain uint8
	Obstacle   uint8
	Cam        uint8
}

var buses = map[Wiring]CanBus{
	// the obstacle radar and the camera share a bus
	WiringStandard: {Powertrain: 0, Obstacle: 1, Cam: 1},
}

// ErrUnknownWiring is returned for a wiring with no bus assignment.
var ErrUnknownWiring = errors.New("unknown wiring")

// BusFor returns the bus assignment for the wiring.
func BusFor(w Wiring) (CanBus, error) {
	b, ok := buses[w]
	if !ok {
		return CanBus{}, errors.Wrapf(ErrUnknownWiring, "%q", w)
	}
	return b, nil
}
