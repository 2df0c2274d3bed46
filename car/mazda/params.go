package mazda

import (
	"github.com/gavinwade12/carif/car"
	"github.com/gavinwade12/carif/units"
	"github.com/pkg/errors"
)

// StdCargo is the mass (kg) added to every curb weight for occupants and cargo.
const StdCargo = 350

// Reference vehicle: a 2016 Honda Civic Touring. Its dynamics parameters are
// well characterized, and cars without measured values are scaled from it by
// mass and geometry. The results are plausible defaults, not measurements.
var (
	civicMass               = 2923/2.205 + StdCargo
	civicWheelbase          = 2.70
	civicCenterToFront      = civicWheelbase * 0.4
	civicCenterToRear       = civicWheelbase - civicCenterToFront
	civicRotationalInertia  = 2500.
	civicTireStiffnessFront = 192150.
	civicTireStiffnessRear  = 202500.
)

// variant holds the values known exactly for one car. Everything not listed
// here is either shared by all Mazdas or scaled from the reference vehicle.
type variant struct {
	massLb     float64 // curb weight, without StdCargo
	wheelbase  float64
	cgFraction float64 // center-to-front as a fraction of the wheelbase
	steerRatio float64
	steerKf    float64
	steerKp    car.Curve
	steerKi    car.Curve
	steerMax   car.Curve
}

var variants = map[Car]variant{
	CX5: {
		massLb:     4361,
		wheelbase:  2.93,
		cgFraction: 0.41,
		steerRatio: 17.6,
		steerKf:    0.00004,
		steerKp:    car.NewCurve([]float64{0}, []float64{0.2}),
		steerKi:    car.NewCurve([]float64{0}, []float64{0.18}),
		steerMax:   car.NewCurve([]float64{0}, []float64{1}), // m/s
	},
}

// GetParams returns the parameters for the candidate car. It fails with
// ErrUnknownCar for a car missing from the variant table rather than
// returning partially populated parameters.
//
// The returned Params own their curves; two calls never share storage and
// always produce identical values.
func GetParams(candidate Car) (car.Params, error) {
	v, ok := variants[candidate]
	if !ok {
		return car.Params{}, errors.Wrapf(ErrUnknownCar, "deriving params for %q", candidate)
	}

	ret := car.Params{
		CarName:        CarName,
		CarFingerprint: string(candidate),

		EnableCruise: false,
		// TODO: gate this on camera detection once the decoder reports it
		EnableCamera: true,

		Mass:       units.MustConvert(v.massLb, units.Pounds, units.Kilograms) + StdCargo,
		Wheelbase:  v.wheelbase,
		SteerRatio: v.steerRatio,

		SteerKf:  v.steerKf,
		SteerKp:  v.steerKp.Clone(),
		SteerKi:  v.steerKi.Clone(),
		SteerMax: v.steerMax.Clone(),

		SteerActuatorDelay: 0.1,
		SteerRateCost:      0.5,

		SafetyModel:      car.SafetyModelMazda,
		SteerControlType: car.SteerControlTorque,
		SteerLimitAlert:  false,

		GasMax:          car.NewCurve([]float64{0}, []float64{0.5}),
		BrakeMax:        car.NewCurve([]float64{5, 20}, []float64{1, 0.8}),
		LongPidDeadzone: car.NewCurve([]float64{0}, []float64{0}),
		LongitudinalKp:  car.NewCurve([]float64{5, 35}, []float64{2.4, 1.5}),
		LongitudinalKi:  car.NewCurve([]float64{0}, []float64{0.36}),
		StoppingControl: true,
		StartAccel:      0.8,
	}
	ret.CenterToFront = ret.Wheelbase * v.cgFraction
	scaleDynamics(&ret)

	return ret, nil
}

// scaleDynamics fills the rotational inertia and tire stiffnesses by scaling
// the reference vehicle's values with mass and center of gravity position, so
// every car gets approximately similar dynamic behavior.
func scaleDynamics(p *car.Params) {
	centerToRear := p.CenterToRear()

	p.RotationalInertia = civicRotationalInertia *
		p.Mass * p.Wheelbase * p.Wheelbase / (civicMass * civicWheelbase * civicWheelbase)

	p.TireStiffnessFront = civicTireStiffnessFront *
		p.Mass / civicMass *
		(centerToRear / p.Wheelbase) / (civicCenterToRear / civicWheelbase)

	p.TireStiffnessRear = civicTireStiffnessRear *
		p.Mass / civicMass *
		(p.CenterToFront / p.Wheelbase) / (civicCenterToFront / civicWheelbase)
}

// ComputeGB maps a desired acceleration (m/s²) to the combined gas/brake command.
func ComputeGB(accel, speed float64) float64 {
	return accel / 4.0
}

// CalcAccelOverride returns the factor applied to the planned acceleration
// limits. Mazda does not override them.
func CalcAccelOverride(aEgo, aTarget, vEgo, vTarget float64) float64 {
	return 1.0
}
