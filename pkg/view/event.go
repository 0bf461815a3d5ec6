package view

import "github.com/dragswitch/dragswitch/pkg/geom"

// EventType enumerates the pointer events the drag engine consumes.
type EventType int

const (
	PointerDown EventType = iota
	PointerMove
	PointerUp
	PointerOut
)

func (t EventType) String() string {
	switch t {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case PointerUp:
		return "pointerup"
	case PointerOut:
		return "pointerout"
	default:
		return "unknown"
	}
}

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonMiddle
	ButtonSecondary
)

// Event is a pointer event delivered to a [Handler].
type Event struct {
	Type   EventType
	Button Button

	// Page is the pointer position in page coordinates; Client is the same
	// position relative to the viewport.
	Page   geom.Point
	Client geom.Point

	// Target is the innermost element under the pointer.
	Target Element

	stopped   bool
	prevented bool
}

// StopPropagation prevents the event from reaching handlers further up the
// bubbling path.
func (e *Event) StopPropagation() { e.stopped = true }

// PreventDefault marks the host's default action as suppressed.
func (e *Event) PreventDefault() { e.prevented = true }

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool { return e.stopped }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// Handler receives events.
type Handler func(e *Event)
