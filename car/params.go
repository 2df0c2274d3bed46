package car

// SafetyModel identifies the safety hooks the panda firmware applies to a car.
type SafetyModel string

// The supported safety models.
const (
	SafetyModelNoOutput SafetyModel = "noOutput"
	SafetyModelMazda    SafetyModel = "mazda"
)

// SteerControlType describes what the steering actuator is commanded with.
type SteerControlType string

// The supported steering control types.
const (
	SteerControlTorque SteerControlType = "torque"
	SteerControlAngle  SteerControlType = "angle"
)

// Params holds the static physical and control parameters for one vehicle
// variant. All units are SI: kg, m, kg·m², N/rad, s.
//
// Params values are produced by a car package's GetParams and must be
// treated as read-only for the lifetime of the process.
type Params struct {
	CarName        string `json:"carName"`
	CarFingerprint string `json:"carFingerprint"`

	EnableCruise    bool `json:"enableCruise"`
	EnableCamera    bool `json:"enableCamera"`
	StoppingControl bool `json:"stoppingControl"`
	SteerLimitAlert bool `json:"steerLimitAlert"`

	Mass               float64 `json:"mass"`
	Wheelbase          float64 `json:"wheelbase"`
	CenterToFront      float64 `json:"centerToFront"`
	RotationalInertia  float64 `json:"rotationalInertia"`
	TireStiffnessFront float64 `json:"tireStiffnessFront"`
	TireStiffnessRear  float64 `json:"tireStiffnessRear"`
	SteerRatio         float64 `json:"steerRatio"`

	// lateral control
	SteerKf            float64 `json:"steerKf"`
	SteerKp            Curve   `json:"steerKp"`
	SteerKi            Curve   `json:"steerKi"`
	SteerMax           Curve   `json:"steerMax"`
	SteerActuatorDelay float64 `json:"steerActuatorDelay"`
	SteerRateCost      float64 `json:"steerRateCost"`

	// longitudinal control
	GasMax          Curve   `json:"gasMax"`
	BrakeMax        Curve   `json:"brakeMax"`
	LongPidDeadzone Curve   `json:"longPidDeadzone"`
	LongitudinalKp  Curve   `json:"longitudinalKp"`
	LongitudinalKi  Curve   `json:"longitudinalKi"`
	StartAccel      float64 `json:"startAccel"`

	SafetyModel      SafetyModel      `json:"safetyModel"`
	SteerControlType SteerControlType `json:"steerControlType"`
}

// CenterToRear returns the distance from the center of gravity to the rear axle.
func (p Params) CenterToRear() float64 {
	return p.Wheelbase - p.CenterToFront
}

// Curve is a piecewise-linear gain schedule given as breakpoints (BP) and
// the values (V) at those breakpoints.
type Curve struct {
	BP []float64 `json:"bp"`
	V  []float64 `json:"v"`
}

// NewCurve returns a curve holding copies of bp and v.
func NewCurve(bp, v []float64) Curve {
	return Curve{
		BP: append([]float64(nil), bp...),
		V:  append([]float64(nil), v...),
	}
}

// Clone returns a deep copy of the curve.
func (c Curve) Clone() Curve {
	return NewCurve(c.BP, c.V)
}

// Interp linearly interpolates the curve at x. Values outside the breakpoint
// range are clamped to the first or last value. An empty curve returns 0.
func (c Curve) Interp(x float64) float64 {
	n := len(c.BP)
	if n == 0 || len(c.V) < n {
		return 0
	}
	if x <= c.BP[0] {
		return c.V[0]
	}
	if x >= c.BP[n-1] {
		return c.V[n-1]
	}

	for i := 1; i < n; i++ {
		if x < c.BP[i] {
			x0, x1 := c.BP[i-1], c.BP[i]
			y0, y1 := c.V[i-1], c.V[i]
			return y0 + (x-x0)*(y1-y0)/(x1-x0)
		}
	}
	return c.V[n-1]
}
