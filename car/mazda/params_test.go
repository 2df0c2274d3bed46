package mazda_test

import (
	"math"
	"testing"

	"github.com/gavinwade12/carif/car"
	"github.com/gavinwade12/carif/car/mazda"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func relErr(got, want float64) float64 {
	return math.Abs(got-want) / math.Abs(want)
}

func TestGetParams_ScalesFromReference(t *testing.T) {
	p, err := mazda.GetParams(mazda.CX5)
	if err != nil {
		t.Fatal(err)
	}

	m1 := 4361*0.453592 + 350.
	m0 := 2923/2.205 + 350.
	l0 := 2.70

	if relErr(p.Mass, m1) > 1e-12 {
		t.Errorf("Mass = %v, want %v", p.Mass, m1)
	}
	if p.Wheelbase != 2.93 {
		t.Errorf("Wheelbase = %v, want 2.93", p.Wheelbase)
	}
	if relErr(p.CenterToFront, 2.93*0.41) > 1e-12 {
		t.Errorf("CenterToFront = %v, want %v", p.CenterToFront, 2.93*0.41)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"RotationalInertia", p.RotationalInertia, 2500 * m1 * 2.93 * 2.93 / (m0 * l0 * l0)},
		{"TireStiffnessFront", p.TireStiffnessFront, 192150 * m1 / m0 * 0.59 / 0.6},
		{"TireStiffnessRear", p.TireStiffnessRear, 202500 * m1 / m0 * 0.41 / 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if relErr(tt.got, tt.want) > 1e-9 {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestGetParams_SharedConstants(t *testing.T) {
	p, err := mazda.GetParams(mazda.CX5)
	if err != nil {
		t.Fatal(err)
	}

	if p.CarName != "mazda" || p.CarFingerprint != string(mazda.CX5) {
		t.Errorf("name/fingerprint = %q/%q", p.CarName, p.CarFingerprint)
	}
	if p.SafetyModel != car.SafetyModelMazda {
		t.Errorf("SafetyModel = %v", p.SafetyModel)
	}
	if p.SteerControlType != car.SteerControlTorque {
		t.Errorf("SteerControlType = %v", p.SteerControlType)
	}
	if p.SteerActuatorDelay != 0.1 || p.SteerRateCost != 0.5 {
		t.Errorf("SteerActuatorDelay/SteerRateCost = %v/%v", p.SteerActuatorDelay, p.SteerRateCost)
	}
	if p.EnableCruise {
		t.Error("EnableCruise should be false")
	}
	if !p.EnableCamera || !p.StoppingControl {
		t.Error("EnableCamera and StoppingControl should be true")
	}
	if p.SteerRatio != 17.6 || p.SteerKf != 0.00004 {
		t.Errorf("SteerRatio/SteerKf = %v/%v", p.SteerRatio, p.SteerKf)
	}

	curves := []struct {
		name string
		got  car.Curve
		want car.Curve
	}{
		{"SteerKp", p.SteerKp, car.NewCurve([]float64{0}, []float64{0.2})},
		{"SteerKi", p.SteerKi, car.NewCurve([]float64{0}, []float64{0.18})},
		{"SteerMax", p.SteerMax, car.NewCurve([]float64{0}, []float64{1})},
		{"GasMax", p.GasMax, car.NewCurve([]float64{0}, []float64{0.5})},
		{"BrakeMax", p.BrakeMax, car.NewCurve([]float64{5, 20}, []float64{1, 0.8})},
		{"LongPidDeadzone", p.LongPidDeadzone, car.NewCurve([]float64{0}, []float64{0})},
		{"LongitudinalKp", p.LongitudinalKp, car.NewCurve([]float64{5, 35}, []float64{2.4, 1.5})},
		{"LongitudinalKi", p.LongitudinalKi, car.NewCurve([]float64{0}, []float64{0.36})},
	}
	for _, c := range curves {
		if diff := cmp.Diff(c.want, c.got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", c.name, diff)
		}
	}
}

func TestGetParams_Deterministic(t *testing.T) {
	a, err := mazda.GetParams(mazda.CX5)
	if err != nil {
		t.Fatal(err)
	}
	b, err := mazda.GetParams(mazda.CX5)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("derivations differ (-first +second):\n%s", diff)
	}

	// the curves must not share storage between derivations
	a.SteerKp.V[0] = 99
	c, _ := mazda.GetParams(mazda.CX5)
	if c.SteerKp.V[0] != 0.2 {
		t.Errorf("mutating returned params leaked into the variant table: %v", c.SteerKp.V)
	}
}

// An unrecognized car must fail instead of yielding partially populated params.
func TestGetParams_UnknownCarFails(t *testing.T) {
	p, err := mazda.GetParams(mazda.Car("MAZDA MX-5 1990"))
	if !errors.Is(err, mazda.ErrUnknownCar) {
		t.Fatalf("err = %v, want ErrUnknownCar", err)
	}
	if diff := cmp.Diff(car.Params{}, p); diff != "" {
		t.Errorf("expected zero params on error:\n%s", diff)
	}
}

func TestParseCar(t *testing.T) {
	c, err := mazda.ParseCar("MAZDA CX-5 2017")
	if err != nil || c != mazda.CX5 {
		t.Fatalf("ParseCar = %v, %v", c, err)
	}
	if _, err := mazda.ParseCar("nope"); !errors.Is(err, mazda.ErrUnknownCar) {
		t.Errorf("err = %v, want ErrUnknownCar", err)
	}
	if diff := cmp.Diff([]mazda.Car{mazda.CX5}, mazda.Cars()); diff != "" {
		t.Errorf("Cars() mismatch:\n%s", diff)
	}
}

func TestLongitudinalHelpers(t *testing.T) {
	if got := mazda.ComputeGB(2, 10); got != 0.5 {
		t.Errorf("ComputeGB = %v, want 0.5", got)
	}
	if got := mazda.CalcAccelOverride(0, 1, 10, 12); got != 1 {
		t.Errorf("CalcAccelOverride = %v, want 1", got)
	}
}

func TestBusFor(t *testing.T) {
	b, err := mazda.BusFor(mazda.WiringStandard)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(mazda.CanBus{Powertrain: 0, Obstacle: 1, Cam: 1}, b); diff != "" {
		t.Errorf("bus mismatch:\n%s", diff)
	}

	if _, err := mazda.BusFor(mazda.Wiring("giraffe")); !errors.Is(err, mazda.ErrUnknownWiring) {
		t.Errorf("err = %v, want ErrUnknownWiring", err)
	}
}
