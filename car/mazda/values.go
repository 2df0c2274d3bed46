// Package mazda implements the vehicle interface for Mazda cars: bus
// addressing, parameter derivation, event detection and the per-cycle
// update/apply pair.
package mazda

import (
	"sort"

	"github.com/pkg/errors"
)

// CarName is the name reported in Params for every Mazda variant.
const CarName = "mazda"

// Car identifies a supported Mazda variant (its fingerprint).
type Car string

// The supported cars.
const (
	CX5 Car = "MAZDA CX-5 2017"
)

// ErrUnknownCar is returned when parameters are requested for a car that has
// no entry in the variant table.
var ErrUnknownCar = errors.New("unknown car")

// Cars returns every supported car in a stable order.
func Cars() []Car {
	cars := make([]Car, 0, len(variants))
	for c := range variants {
		cars = append(cars, c)
	}
	sort.Slice(cars, func(i, j int) bool { return cars[i] < cars[j] })
	return cars
}

// ParseCar returns the Car for a fingerprint string.
func ParseCar(s string) (Car, error) {
	c := Car(s)
	if _, ok := variants[c]; !ok {
		return "", errors.Wrapf(ErrUnknownCar, "%q", s)
	}
	return c, nil
}
