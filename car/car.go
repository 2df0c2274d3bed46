// Package car defines the types shared between vehicle interfaces and the
// control loop, and the collaborators a vehicle interface depends on.
package car

import (
	"io"
	"log"
	"time"
)

// Decoder merges the latest bus frames into a DecodedState.
type Decoder interface {
	// Refresh consumes any frames received since the last call. When blocking
	// is false it must return immediately, keeping the last-known values if
	// nothing new arrived. nanos is the caller's monotonic timestamp.
	Refresh(nanos int64, blocking bool)

	// State returns the current decoded telemetry.
	State() DecodedState
}

// KinematicModel derives motion quantities not transmitted on the bus.
type KinematicModel interface {
	// YawRate returns the yaw rate (rad/s) for a steering wheel angle sa (rad)
	// at speed u (m/s).
	YawRate(sa, u float64) float64
}

// Controller turns a control command into actuator frames on the bus.
type Controller interface {
	Update(enabled bool, cs DecodedState, frame uint64, actuators Actuators)
}

// Clock provides a monotonic time source.
type Clock interface {
	// Nanos returns the nanoseconds elapsed since an arbitrary fixed point.
	Nanos() int64
}

type monotonicClock struct {
	start time.Time
}

func (c monotonicClock) Nanos() int64 {
	return int64(time.Since(c.start))
}

// NewMonotonicClock returns a Clock counting from the moment it was created.
func NewMonotonicClock() Clock {
	return monotonicClock{start: time.Now()}
}

// Logger receives debug output from vehicle interfaces and decoders.
type Logger interface {
	Debug(message string)
	Debugf(message string, args ...interface{})
}

type nopLogger struct{}

func (l nopLogger) Debug(message string) {}

func (l nopLogger) Debugf(message string, args ...interface{}) {}

// NopLogger discards everything.
var NopLogger Logger = nopLogger{}

type defaultLogger struct {
	l *log.Logger
}

func (l *defaultLogger) Debug(message string) {
	l.l.Println(message)
}

func (l *defaultLogger) Debugf(message string, args ...interface{}) {
	l.l.Printf(message, args...)
}

// DefaultLogger writes to out using the standard library logger.
var DefaultLogger = func(out io.Writer) Logger {
	return &defaultLogger{log.New(out, "CAR ", log.LstdFlags|log.Lmicroseconds)}
}
