package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gavinwade12/carif/car"
	"github.com/gavinwade12/carif/car/mazda"
	"github.com/gavinwade12/carif/telemetry"
	"github.com/google/go-cmp/cmp"
)

func ticks(n int) <-chan time.Time {
	c := make(chan time.Time, n)
	for i := 0; i < n; i++ {
		c <- time.Time{}
	}
	return c
}

func TestDrive(t *testing.T) {
	ci, err := mazda.New(mazda.Config{
		Car:        mazda.CX5,
		Wiring:     mazda.WiringStandard,
		Decoder:    telemetry.NewFakeDecoder(7),
		Controller: &logController{car.NopLogger},
	})
	if err != nil {
		t.Fatal(err)
	}

	var out, record bytes.Buffer
	rec := telemetry.NewRecorder(&record)
	n, err := drive(context.Background(), ci, ticks(300), car.NewMonotonicClock(), rec, 300, &out)
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.Flush(); err != nil {
		t.Fatal(err)
	}

	if n != 300 {
		t.Errorf("cycles = %d, want 300", n)
	}
	if ci.Frame() != 300 {
		t.Errorf("frame = %d, want 300", ci.Frame())
	}
	if lines := strings.Count(record.String(), "\n"); lines != 301 {
		t.Errorf("recorded %d lines, want header + 300", lines)
	}

	for _, want := range []string{
		"cycle 1: events [pcmDisable seatbeltNotLatched]",
		"cycle 51: events [pcmDisable]",
		"cycle 151: events [pcmEnable]",
		"cycle 152: events []",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDrive_Canceled(t *testing.T) {
	ci, err := mazda.New(mazda.Config{
		Car:     mazda.CX5,
		Wiring:  mazda.WiringStandard,
		Decoder: telemetry.NewFakeDecoder(7),
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	n, err := drive(ctx, ci, make(chan time.Time), car.NewMonotonicClock(), nil, 0, &out)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("cycles = %d, want 0", n)
	}
}

func TestDrive_ReadOnly(t *testing.T) {
	ci, err := mazda.New(mazda.Config{
		Car:     mazda.CX5,
		Wiring:  mazda.WiringStandard,
		Decoder: telemetry.NewFakeDecoder(7),
	})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	n, err := drive(context.Background(), ci, ticks(5), car.NewMonotonicClock(), nil, 5, &out)
	if err == nil {
		t.Fatal("expected an error applying without a controller")
	}
	if n != 1 {
		t.Errorf("cycles = %d, want 1", n)
	}
}

func TestDrive_ReplaysEveryRow(t *testing.T) {
	// blinker edges on rows 3, 4, 5, 6 and 9; cruise engages on row 5
	left := map[int]bool{3: true, 6: true, 7: true, 8: true}
	right := map[int]bool{4: true}
	states := make([]car.DecodedState, 12)
	for i := range states {
		states[i] = car.DecodedState{
			VEgo:            10,
			VEgoRaw:         10,
			LeftBlinker:     left[i+1],
			RightBlinker:    right[i+1],
			CruiseActive:    i+1 >= 5,
			DoorsClosed:     true,
			SeatbeltLatched: true,
			CANValid:        true,
		}
	}
	var src bytes.Buffer
	if err := telemetry.WriteStates(&src, states); err != nil {
		t.Fatal(err)
	}

	d := telemetry.NewCSVDecoder(context.Background(), &src, nil)
	d.Paced = true
	ci, err := mazda.New(mazda.Config{
		Car:        mazda.CX5,
		Wiring:     mazda.WiringStandard,
		Decoder:    d,
		Controller: &logController{car.NopLogger},
	})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	n, err := drive(context.Background(), ci, ticks(len(states)), car.NewMonotonicClock(), nil, len(states), &out)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(states) {
		t.Fatalf("cycles = %d, want %d", n, len(states))
	}

	want := []string{
		"cycle 1: events [pcmDisable]",
		"cycle 3: leftBlinker pressed=true",
		"cycle 4: leftBlinker pressed=false",
		"cycle 4: rightBlinker pressed=true",
		"cycle 5: rightBlinker pressed=false",
		"cycle 5: events [pcmEnable]",
		"cycle 6: leftBlinker pressed=true",
		"cycle 6: events []",
		"cycle 9: leftBlinker pressed=false",
	}
	got := strings.Split(strings.TrimSpace(out.String()), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestCommand(t *testing.T) {
	p, err := mazda.GetParams(mazda.CX5)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		cs     car.CarState
		enable bool
	}{
		{"CruiseOff", car.CarState{}, false},
		{"CruiseOn", car.CarState{CruiseState: car.CruiseState{Enabled: true}}, true},
		{"DoorOpen", car.CarState{
			CruiseState: car.CruiseState{Enabled: true},
			Events:      []car.Event{car.NewEvent(car.EventDoorOpen)},
		}, false},
		{"Cancel", car.CarState{
			CruiseState: car.CruiseState{Enabled: true},
			Events:      []car.Event{car.NewEvent(car.EventButtonCancel)},
		}, false},
		{"PCMEnable", car.CarState{
			CruiseState: car.CruiseState{Enabled: true},
			Events:      []car.Event{car.NewEvent(car.EventPCMEnable)},
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := command(p, tt.cs).Enabled; got != tt.enable {
				t.Errorf("Enabled = %v, want %v", got, tt.enable)
			}
		})
	}
}

func TestCommand_Limits(t *testing.T) {
	p, err := mazda.GetParams(mazda.CX5)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		cs    car.CarState
		gas   float64
		brake float64
	}{
		{"Steady", car.CarState{VEgo: 10}, 0, 0},
		{"Decelerating", car.CarState{VEgo: 10, AEgo: -1}, 0.25, 0},
		{"GasLimited", car.CarState{VEgo: 10, AEgo: -4}, 0.5, 0},
		{"Accelerating", car.CarState{VEgo: 10, AEgo: 1}, 0, 0.25},
		{"BrakeLimited", car.CarState{VEgo: 20, AEgo: 4}, 0, 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := command(p, tt.cs).Actuators
			if a.Gas != tt.gas || a.Brake != tt.brake {
				t.Errorf("gas/brake = %v/%v, want %v/%v", a.Gas, a.Brake, tt.gas, tt.brake)
			}
		})
	}
}
