// Package vehiclemodel implements a linear single-track (bicycle) model of
// the lateral vehicle dynamics.
//
// The model has two states, lateral velocity v (m/s) and yaw rate r (rad/s),
// and the road-wheel angle δ = sa/steerRatio as input:
//
//	m(v' + u·r) = Fyf + Fyr
//	j·r'        = aF·Fyf − aR·Fyr
//	Fyf = cF·(δ − (v + aF·r)/u)
//	Fyr = cR·(−(v − aR·r)/u)
package vehiclemodel

import (
	"math"

	"github.com/gavinwade12/carif/car"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// MinSteadyStateSpeed is the lowest speed (m/s) the dynamic model is solved at.
// The state matrix is singular at standstill.
const MinSteadyStateSpeed = 0.1

// ErrSpeedTooLow is returned by SteadyState below MinSteadyStateSpeed.
var ErrSpeedTooLow = errors.New("speed too low for the dynamic model")

// Model is a bicycle model parameterized from a car's Params.
type Model struct {
	m  float64 // mass
	j  float64 // rotational inertia
	l  float64 // wheelbase
	aF float64 // center of gravity to front axle
	aR float64 // center of gravity to rear axle
	cF float64 // front tire stiffness
	cR float64 // rear tire stiffness
	sR float64 // steer ratio
}

// New returns a Model for the given parameters.
func New(p car.Params) *Model {
	return &Model{
		m:  p.Mass,
		j:  p.RotationalInertia,
		l:  p.Wheelbase,
		aF: p.CenterToFront,
		aR: p.CenterToRear(),
		cF: p.TireStiffnessFront,
		cR: p.TireStiffnessRear,
		sR: p.SteerRatio,
	}
}

// SlipFactor returns the slip factor of the car. A negative value means the
// car understeers.
func (vm *Model) SlipFactor() float64 {
	return vm.m * (vm.cF*vm.aF - vm.cR*vm.aR) / (vm.l * vm.l * vm.cF * vm.cR)
}

// CurvatureFactor returns the path curvature per radian of road-wheel angle
// at speed u.
func (vm *Model) CurvatureFactor(u float64) float64 {
	return 1 / (1 - vm.SlipFactor()*u*u) / vm.l
}

// Curvature returns the steady-state path curvature (1/m) for steering wheel
// angle sa (rad) at speed u (m/s).
func (vm *Model) Curvature(sa, u float64) float64 {
	return vm.CurvatureFactor(u) * sa / vm.sR
}

// YawRate returns the steady-state yaw rate (rad/s) for steering wheel angle
// sa (rad) at speed u (m/s).
func (vm *Model) YawRate(sa, u float64) float64 {
	return vm.Curvature(sa, u) * u
}

// SteerFromCurvature returns the steering wheel angle (rad) needed to follow
// curvature k at speed u.
func (vm *Model) SteerFromCurvature(k, u float64) float64 {
	return k * vm.sR / vm.CurvatureFactor(u)
}

// SteadyState solves the dynamic model for its equilibrium at steering wheel
// angle sa (rad) and speed u (m/s), returning the lateral velocity (m/s) and
// yaw rate (rad/s).
func (vm *Model) SteadyState(sa, u float64) (v, r float64, err error) {
	if u < MinSteadyStateSpeed || math.IsNaN(u) {
		return 0, 0, errors.Wrapf(ErrSpeedTooLow, "u=%.3f", u)
	}

	a := mat.NewDense(2, 2, []float64{
		-(vm.cF + vm.cR) / (vm.m * u), -(vm.cF*vm.aF-vm.cR*vm.aR)/(vm.m*u) - u,
		-(vm.cF*vm.aF - vm.cR*vm.aR) / (vm.j * u), -(vm.cF*vm.aF*vm.aF + vm.cR*vm.aR*vm.aR) / (vm.j * u),
	})
	b := mat.NewVecDense(2, []float64{
		-vm.cF / vm.m / vm.sR * sa,
		-vm.cF * vm.aF / vm.j / vm.sR * sa,
	})

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return 0, 0, errors.Wrap(err, "solving steady state")
	}
	return x.AtVec(0), x.AtVec(1), nil
}
