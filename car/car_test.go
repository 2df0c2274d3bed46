package car_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gavinwade12/carif/car"
)

func TestEventTypesForEveryName(t *testing.T) {
	for _, n := range car.EventNames() {
		typ, ok := car.EventTypesFor(n)
		if !ok {
			t.Errorf("no event types defined for %s", n)
			continue
		}
		if typ == 0 {
			t.Errorf("empty event types for %s", n)
		}
	}

	if _, ok := car.EventTypesFor(car.EventName("bogus")); ok {
		t.Error("expected unknown event name to be rejected")
	}
}

func TestNewEventPanicsOnUnknownName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	car.NewEvent(car.EventName("bogus"))
}

func TestEventType(t *testing.T) {
	typ := car.EventTypeNoEntry | car.EventTypeImmediateDisable

	if !typ.Has(car.EventTypeNoEntry) || !typ.Has(car.EventTypeImmediateDisable) {
		t.Errorf("%v is missing a flag", typ)
	}
	if typ.Has(car.EventTypeEnable) {
		t.Errorf("%v unexpectedly has enable", typ)
	}
	if typ.Has(0) {
		t.Error("empty set should never match")
	}
	if got := typ.String(); got != "noEntry|immediateDisable" {
		t.Errorf("String() = %q", got)
	}

	b, err := json.Marshal(car.NewEvent(car.EventDoorOpen))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(b); got != `{"name":"doorOpen","types":["noEntry","softDisable"]}` {
		t.Errorf("json = %s", got)
	}
}

func TestCurveInterp(t *testing.T) {
	c := car.NewCurve([]float64{5, 35}, []float64{2.4, 1.5})
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"below range", 0, 2.4},
		{"first breakpoint", 5, 2.4},
		{"midpoint", 20, 1.95},
		{"last breakpoint", 35, 1.5},
		{"above range", 50, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Interp(tt.x); got < tt.want-1e-12 || got > tt.want+1e-12 {
				t.Errorf("Interp(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}

	if got := (car.Curve{}).Interp(3); got != 0 {
		t.Errorf("empty curve Interp = %v", got)
	}
}

func TestCurveCloneIsIndependent(t *testing.T) {
	c := car.NewCurve([]float64{0}, []float64{1})
	cl := c.Clone()
	cl.V[0] = 2
	if c.V[0] != 1 {
		t.Error("clone shares storage with the original")
	}
}

func TestCarStateHasEventType(t *testing.T) {
	cs := car.CarState{Events: []car.Event{car.NewEvent(car.EventPCMEnable)}}
	if !cs.HasEventType(car.EventTypeEnable) {
		t.Error("expected enable")
	}
	if cs.HasEventType(car.EventTypeNoEntry) {
		t.Error("unexpected noEntry")
	}
}

func TestDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	l := car.DefaultLogger(&buf)
	l.Debugf("frame %d", 7)
	if !strings.Contains(buf.String(), "frame 7") {
		t.Errorf("log output = %q", buf.String())
	}
	car.NopLogger.Debug("ignored")
}
