package car

// WheelSpeeds holds the per-wheel speeds in m/s.
type WheelSpeeds struct {
	FL float64 `json:"fl"`
	FR float64 `json:"fr"`
	RL float64 `json:"rl"`
	RR float64 `json:"rr"`
}

// DecodedState is the telemetry reconstructed from the latest bus frames.
// It is owned by a Decoder and read by the vehicle interface once per cycle.
//
// Speeds are in m/s, acceleration in m/s², the steering angle in degrees and
// the steering rate in degrees/s, as reported on the bus.
type DecodedState struct {
	WheelSpeeds WheelSpeeds

	VEgo    float64
	VEgoRaw float64
	AEgo    float64

	SteeringAngle  float64
	SteeringRate   float64
	SteeringTorque float64

	CruiseActive bool
	MainOn       bool

	LeftBlinker  bool
	RightBlinker bool

	DoorsClosed     bool
	SeatbeltLatched bool

	// CANValid is false when the decoder saw missing or out-of-date frames.
	CANValid bool
}

// CruiseState describes the cruise control state reported by the car.
type CruiseState struct {
	Available bool `json:"available"`
	Enabled   bool `json:"enabled"`
}

// CarState is the snapshot produced by a vehicle interface for one cycle.
// Units are SI: m/s, m/s², rad and rad/s.
//
// A CarState is built fresh every cycle and nothing retains a reference to
// it or its slices after it is returned. Consumers must treat it as read-only.
type CarState struct {
	VEgo    float64 `json:"vEgo"`
	AEgo    float64 `json:"aEgo"`
	VEgoRaw float64 `json:"vEgoRaw"`
	YawRate float64 `json:"yawRate"`

	Standstill  bool        `json:"standstill"`
	WheelSpeeds WheelSpeeds `json:"wheelSpeeds"`

	SteeringAngle  float64 `json:"steeringAngle"`
	SteeringRate   float64 `json:"steeringRate"`
	SteeringTorque float64 `json:"steeringTorque"`

	CruiseState CruiseState `json:"cruiseState"`

	LeftBlinker       bool `json:"leftBlinker"`
	RightBlinker      bool `json:"rightBlinker"`
	DoorOpen          bool `json:"doorOpen"`
	SeatbeltUnlatched bool `json:"seatbeltUnlatched"`

	ButtonEvents []ButtonEvent `json:"buttonEvents"`
	Events       []Event       `json:"events"`
}

// HasEventType reports whether any event in the snapshot carries t.
func (cs CarState) HasEventType(t EventType) bool {
	for _, e := range cs.Events {
		if e.Types.Has(t) {
			return true
		}
	}
	return false
}

// Actuators are the targets for the low-level controller.
type Actuators struct {
	Gas        float64 `json:"gas"`
	Brake      float64 `json:"brake"`
	Steer      float64 `json:"steer"`
	SteerAngle float64 `json:"steerAngle"`
}

// ControlCommand is the command returned by the control loop for one cycle.
type ControlCommand struct {
	Enabled   bool      `json:"enabled"`
	Actuators Actuators `json:"actuators"`
}
