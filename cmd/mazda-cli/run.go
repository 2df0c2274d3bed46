package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gavinwade12/carif/car"
	"github.com/gavinwade12/carif/car/mazda"
	"github.com/gavinwade12/carif/telemetry"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var replayFile string
var recordFile string
var fake bool
var fakeSeed int64
var rate int
var cycles int
var staleAfter time.Duration

func init() {
	runCmd.Flags().StringVar(&replayFile, "replay", "", "replay CSV telemetry from this file instead of the serial port, one row per cycle. "+
		"The header must name the can_valid, doors_closed and seatbelt_latched columns.")
	runCmd.Flags().BoolVar(&fake, "fake", false, "drive the interface with synthetic telemetry")
	runCmd.Flags().Int64Var(&fakeSeed, "seed", 1, "seed for the synthetic telemetry")
	runCmd.Flags().StringVar(&recordFile, "record", "", "write every car state to this CSV file")
	runCmd.Flags().IntVar(&rate, "rate", 100, "cycles per second")
	runCmd.Flags().IntVar(&cycles, "cycles", 0, "stop after this many cycles (0 runs until interrupted)")
	runCmd.Flags().DurationVar(&staleAfter, "staleAfter", 100*time.Millisecond, "treat telemetry older than this as invalid bus data")

	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:          "run",
	Short:        "Run the vehicle interface at a fixed rate and report events.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if rate <= 0 {
			return errors.New("the rate must be positive")
		}
		c, err := mazda.ParseCar(carName)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		l := carLogger(cmd)
		decoder, closeSource, err := openDecoder(ctx, l)
		if err != nil {
			return err
		}
		defer closeSource()

		clock := car.NewMonotonicClock()
		ci, err := mazda.New(mazda.Config{
			Car:        c,
			Wiring:     mazda.Wiring(wiring),
			Decoder:    decoder,
			Controller: &logController{l},
			Clock:      clock,
			Logger:     l,
		})
		if err != nil {
			return errors.Wrap(err, "creating vehicle interface")
		}

		var rec *telemetry.Recorder
		if recordFile != "" {
			f, err := os.OpenFile(recordFile, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0o644)
			if err != nil {
				return errors.Wrap(err, "opening record file")
			}
			defer f.Close()
			rec = telemetry.NewRecorder(f)
			defer rec.Flush()
		}

		ticker := time.NewTicker(time.Second / time.Duration(rate))
		defer ticker.Stop()

		var out io.Writer = cmd.OutOrStdout()
		if quiet {
			out = io.Discard
		}
		n, err := drive(ctx, ci, ticker.C, clock, rec, cycles, out)
		fmt.Fprintf(out, "ran %d cycles, applied %d frames\n", n, ci.Frame())
		return err
	},
}

func openDecoder(ctx context.Context, l car.Logger) (car.Decoder, func(), error) {
	nop := func() {}
	switch {
	case fake:
		return telemetry.NewFakeDecoder(fakeSeed), nop, nil
	case replayFile != "":
		f, err := os.Open(replayFile)
		if err != nil {
			return nil, nop, errors.Wrap(err, "opening replay file")
		}
		d := telemetry.NewCSVDecoder(ctx, f, l)
		d.StaleAfter = staleAfter
		d.Paced = true
		return d, func() { f.Close() }, nil
	case port != "":
		sp, err := telemetry.OpenSerial(port)
		if err != nil {
			return nil, nop, err
		}
		d := telemetry.NewCSVDecoder(ctx, sp, l)
		d.StaleAfter = staleAfter
		return d, func() { sp.Close() }, nil
	}
	return nil, nop, errors.New("one of --fake, --replay or the port setting is required")
}

// drive runs update/apply cycles on every tick until the context is canceled
// or maxCycles cycles ran (when maxCycles is positive). Event changes are
// reported to out.
func drive(ctx context.Context, ci *mazda.Interface, tick <-chan time.Time, clock car.Clock,
	rec *telemetry.Recorder, maxCycles int, out io.Writer) (int, error) {
	lastEvents := ""
	n := 0
	for maxCycles <= 0 || n < maxCycles {
		select {
		case <-ctx.Done():
			return n, nil
		case <-tick:
		}

		cs := ci.Update()
		n++

		if rec != nil {
			if err := rec.Record(clock.Nanos(), cs); err != nil {
				return n, errors.Wrap(err, "recording car state")
			}
		}

		for _, be := range cs.ButtonEvents {
			fmt.Fprintf(out, "cycle %d: %s pressed=%v\n", n, be.Type, be.Pressed)
		}
		if names := joinEventNames(cs.Events); names != lastEvents {
			fmt.Fprintf(out, "cycle %d: events [%s]\n", n, names)
			lastEvents = names
		}

		if err := ci.Apply(command(ci.Params(), cs)); err != nil {
			return n, errors.Wrap(err, "applying command")
		}
	}
	return n, nil
}

// command engages only while the car's cruise is engaged and nothing asks
// for a disable. It holds the current speed and steering angle: planning is
// not done here. Gas and brake are limited by the car's schedules at the
// current speed.
func command(p car.Params, cs car.CarState) car.ControlCommand {
	disable := cs.HasEventType(car.EventTypeUserDisable) ||
		cs.HasEventType(car.EventTypeSoftDisable) ||
		cs.HasEventType(car.EventTypeImmediateDisable)

	gb := mazda.ComputeGB(-cs.AEgo, cs.VEgo)
	a := car.Actuators{SteerAngle: cs.SteeringAngle}
	if gb >= 0 {
		a.Gas = math.Min(gb, p.GasMax.Interp(cs.VEgo))
	} else {
		a.Brake = math.Min(-gb, p.BrakeMax.Interp(cs.VEgo))
	}

	return car.ControlCommand{
		Enabled:   cs.CruiseState.Enabled && !disable,
		Actuators: a,
	}
}

func joinEventNames(events []car.Event) string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = string(e.Name)
	}
	return strings.Join(names, " ")
}

// logController stands in for the actuator encoder: it logs commands instead
// of sending frames.
type logController struct {
	l car.Logger
}

func (c *logController) Update(enabled bool, cs car.DecodedState, frame uint64, a car.Actuators) {
	c.l.Debugf("frame %d: enabled=%v v=%.2f steer=%.3f gas=%.3f brake=%.3f",
		frame, enabled, cs.VEgo, a.Steer, a.Gas, a.Brake)
}
