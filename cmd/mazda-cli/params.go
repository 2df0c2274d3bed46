package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gavinwade12/carif/car"
	"github.com/gavinwade12/carif/car/mazda"
	"github.com/gavinwade12/carif/vehiclemodel"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var paramsJSON bool

func init() {
	paramsCmd.Flags().BoolVar(&paramsJSON, "json", false, "print the params as JSON")
	rootCmd.AddCommand(paramsCmd)

	rootCmd.AddCommand(carsCmd)
	rootCmd.AddCommand(eventsCmd)
}

// yawGainSpeeds are the speeds (m/s) params reports the steady-state yaw gain at.
var yawGainSpeeds = []float64{5, 15, 25, 35}

var paramsCmd = &cobra.Command{
	Use:          "params",
	Short:        "Print the derived parameters for the configured car",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := mazda.ParseCar(carName)
		if err != nil {
			return err
		}
		p, err := mazda.GetParams(c)
		if err != nil {
			return err
		}

		if paramsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return errors.Wrap(enc.Encode(p), "encoding params")
		}
		return printParams(cmd.OutOrStdout(), p)
	},
}

var carsCmd = &cobra.Command{
	Use:   "cars",
	Short: "List the supported cars",
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range mazda.Cars() {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List the events the interface can raise and how the control loop reacts to them",
	Run: func(cmd *cobra.Command, args []string) {
		listEvents(cmd.OutOrStdout())
	},
}

func listEvents(w io.Writer) {
	for _, n := range car.EventNames() {
		t, _ := car.EventTypesFor(n)
		fmt.Fprintf(w, "%-20s %s\n", n, t)
	}
}

func printParams(w io.Writer, p car.Params) error {
	curve := func(c car.Curve) string {
		pts := make([]string, len(c.BP))
		for i := range c.BP {
			pts[i] = fmt.Sprintf("%g→%g", c.BP[i], c.V[i])
		}
		return "[" + strings.Join(pts, " ") + "]"
	}

	fmt.Fprintf(w, "%s (%s)\n", p.CarFingerprint, p.CarName)
	fmt.Fprintf(w, "  mass:                 %.1f kg\n", p.Mass)
	fmt.Fprintf(w, "  wheelbase:            %.3f m\n", p.Wheelbase)
	fmt.Fprintf(w, "  center to front:      %.3f m\n", p.CenterToFront)
	fmt.Fprintf(w, "  rotational inertia:   %.1f kg·m²\n", p.RotationalInertia)
	fmt.Fprintf(w, "  tire stiffness front: %.1f N/rad\n", p.TireStiffnessFront)
	fmt.Fprintf(w, "  tire stiffness rear:  %.1f N/rad\n", p.TireStiffnessRear)
	fmt.Fprintf(w, "  steer ratio:          %g\n", p.SteerRatio)
	fmt.Fprintf(w, "  steer kf/kp/ki:       %g %s %s\n", p.SteerKf, curve(p.SteerKp), curve(p.SteerKi))
	fmt.Fprintf(w, "  steer max:            %s\n", curve(p.SteerMax))
	fmt.Fprintf(w, "  steer delay/rate cost: %g s / %g\n", p.SteerActuatorDelay, p.SteerRateCost)
	fmt.Fprintf(w, "  long kp/ki:           %s %s\n", curve(p.LongitudinalKp), curve(p.LongitudinalKi))
	fmt.Fprintf(w, "  gas/brake max:        %s %s\n", curve(p.GasMax), curve(p.BrakeMax))
	fmt.Fprintf(w, "  safety model:         %s\n", p.SafetyModel)
	fmt.Fprintf(w, "  steer control:        %s\n", p.SteerControlType)
	fmt.Fprintf(w, "  cruise enabled:       %v\n", p.EnableCruise)

	// yaw rate per radian of steering wheel angle
	vm := vehiclemodel.New(p)
	fmt.Fprintf(w, "  steady-state yaw gain:\n")
	for _, u := range yawGainSpeeds {
		_, r, err := vm.SteadyState(1, u)
		if err != nil {
			return errors.Wrapf(err, "yaw gain at %g m/s", u)
		}
		fmt.Fprintf(w, "    %4.0f m/s: %.4f 1/s\n", u, r)
	}
	return nil
}
