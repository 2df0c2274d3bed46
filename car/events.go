package car

import (
	"encoding/json"
	"strings"
)

// ButtonType identifies a driver control that produces button events.
type ButtonType string

// The button types.
const (
	ButtonLeftBlinker  ButtonType = "leftBlinker"
	ButtonRightBlinker ButtonType = "rightBlinker"
	ButtonAccelCruise  ButtonType = "accelCruise"
	ButtonDecelCruise  ButtonType = "decelCruise"
	ButtonCancel       ButtonType = "cancel"
)

// ButtonEvent is emitted when a button changes state between two cycles.
// Pressed holds the new state.
type ButtonEvent struct {
	Type    ButtonType `json:"type"`
	Pressed bool       `json:"pressed"`
}

// EventType is a set of flags telling the control loop how to react to an Event.
type EventType uint8

// The event type flags.
const (
	EventTypeNoEntry EventType = 1 << iota
	EventTypeSoftDisable
	EventTypeImmediateDisable
	EventTypeEnable
	EventTypeUserDisable
)

var eventTypeNames = []struct {
	t    EventType
	name string
}{
	{EventTypeNoEntry, "noEntry"},
	{EventTypeSoftDisable, "softDisable"},
	{EventTypeImmediateDisable, "immediateDisable"},
	{EventTypeEnable, "enable"},
	{EventTypeUserDisable, "userDisable"},
}

// Has reports whether all flags in o are set in t.
func (t EventType) Has(o EventType) bool {
	return o != 0 && t&o == o
}

// Names returns the names of the set flags in declaration order.
func (t EventType) Names() []string {
	names := []string{}
	for _, n := range eventTypeNames {
		if t&n.t != 0 {
			names = append(names, n.name)
		}
	}
	return names
}

func (t EventType) String() string {
	return strings.Join(t.Names(), "|")
}

// MarshalJSON encodes the set as a list of flag names.
func (t EventType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Names())
}

// EventName identifies a safety or control event.
type EventName string

// The event names. This list is closed: every name has an entry in eventTypes.
const (
	EventCommIssue          EventName = "commIssue"
	EventPCMEnable          EventName = "pcmEnable"
	EventPCMDisable         EventName = "pcmDisable"
	EventDoorOpen           EventName = "doorOpen"
	EventSeatbeltNotLatched EventName = "seatbeltNotLatched"
	EventButtonEnable       EventName = "buttonEnable"
	EventButtonCancel       EventName = "buttonCancel"
)

var eventTypes = map[EventName]EventType{
	EventCommIssue:          EventTypeNoEntry | EventTypeImmediateDisable,
	EventPCMEnable:          EventTypeEnable,
	EventPCMDisable:         EventTypeUserDisable,
	EventDoorOpen:           EventTypeNoEntry | EventTypeSoftDisable,
	EventSeatbeltNotLatched: EventTypeNoEntry | EventTypeSoftDisable,
	EventButtonEnable:       EventTypeEnable,
	EventButtonCancel:       EventTypeUserDisable,
}

// EventNames returns every known event name.
func EventNames() []EventName {
	return []EventName{
		EventCommIssue, EventPCMEnable, EventPCMDisable, EventDoorOpen,
		EventSeatbeltNotLatched, EventButtonEnable, EventButtonCancel,
	}
}

// EventTypesFor returns the flags defined for the event name and whether the
// name is known.
func EventTypesFor(n EventName) (EventType, bool) {
	t, ok := eventTypes[n]
	return t, ok
}

// Event is a discrete safety or control event detected during a cycle.
type Event struct {
	Name  EventName `json:"name"`
	Types EventType `json:"types"`
}

// NewEvent returns the event for the name with its defined flags. It panics
// on an unknown name, which can only come from a programming error.
func NewEvent(n EventName) Event {
	t, ok := eventTypes[n]
	if !ok {
		panic("car: unknown event name " + string(n))
	}
	return Event{Name: n, Types: t}
}
