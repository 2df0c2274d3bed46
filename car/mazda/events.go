package mazda

import "github.com/gavinwade12/carif/car"

// CommIssueCycles is the number of consecutive cycles with invalid bus data
// after which a commIssue event is raised.
const CommIssueCycles = 5

// Previous is the state carried from one cycle to the next for edge detection
// and debouncing.
type Previous struct {
	LeftBlinker  bool
	RightBlinker bool
	CruiseActive bool

	// CANInvalidCount counts consecutive cycles with invalid bus data. It is
	// zero after any valid cycle.
	CANInvalidCount int
}

// DetectEvents turns the current decoded state into button and safety events
// relative to the previous cycle, and returns the state to carry into the
// next cycle.
//
// Events are ordered: commIssue, cruise transition, door, seatbelt, then
// events derived from buttons. The control loop may stop at the first event
// with a matching type, so the order must not change.
func DetectEvents(cur car.DecodedState, prev Previous) ([]car.ButtonEvent, []car.Event, Previous) {
	buttons := detectButtons(cur, prev)

	next := Previous{
		LeftBlinker:     cur.LeftBlinker,
		RightBlinker:    cur.RightBlinker,
		CruiseActive:    cur.CruiseActive,
		CANInvalidCount: prev.CANInvalidCount,
	}

	events := []car.Event{}
	if !cur.CANValid {
		next.CANInvalidCount++
		// raised every cycle past the threshold, not just once
		if next.CANInvalidCount >= CommIssueCycles {
			events = append(events, car.NewEvent(car.EventCommIssue))
		}
	} else {
		next.CANInvalidCount = 0
	}

	if cur.CruiseActive && !prev.CruiseActive {
		events = append(events, car.NewEvent(car.EventPCMEnable))
	}
	if !cur.CruiseActive {
		events = append(events, car.NewEvent(car.EventPCMDisable))
	}

	if !cur.DoorsClosed {
		events = append(events, car.NewEvent(car.EventDoorOpen))
	}
	if !cur.SeatbeltLatched {
		events = append(events, car.NewEvent(car.EventSeatbeltNotLatched))
	}

	events = append(events, buttonEvents(buttons)...)

	return buttons, events, next
}

func detectButtons(cur car.DecodedState, prev Previous) []car.ButtonEvent {
	buttons := []car.ButtonEvent{}
	if cur.LeftBlinker != prev.LeftBlinker {
		buttons = append(buttons, car.ButtonEvent{Type: car.ButtonLeftBlinker, Pressed: cur.LeftBlinker})
	}
	if cur.RightBlinker != prev.RightBlinker {
		buttons = append(buttons, car.ButtonEvent{Type: car.ButtonRightBlinker, Pressed: cur.RightBlinker})
	}
	return buttons
}

// buttonEvents maps button edges to control events: releasing accel or decel
// enables, pressing cancel disables.
func buttonEvents(buttons []car.ButtonEvent) []car.Event {
	events := []car.Event{}
	for _, b := range buttons {
		switch b.Type {
		case car.ButtonAccelCruise, car.ButtonDecelCruise:
			if !b.Pressed {
				events = append(events, car.NewEvent(car.EventButtonEnable))
			}
		case car.ButtonCancel:
			if b.Pressed {
				events = append(events, car.NewEvent(car.EventButtonCancel))
			}
		}
	}
	return events
}
