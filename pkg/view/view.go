// Package view defines the contract between the drag engine and the host
// rendering layer.
//
// The drag engine never creates, lays out or paints anything itself. It asks
// the host for element geometry and computed styles, mutates inline styles and
// tree position, and subscribes to pointer events. Any host that implements
// [Element] and [Document] can be driven: [github.com/dragswitch/dragswitch/pkg/dom]
// is the in-memory implementation used by the terminal front end and the tests.
//
// # Identity
//
// Implementations must hand out one canonical value per underlying node so
// that two Element values referring to the same node compare equal with ==.
package view

import "github.com/dragswitch/dragswitch/pkg/geom"

// Element is a node of the host's view tree.
type Element interface {
	// Tag returns the element kind, lower-cased (e.g. "li").
	Tag() string

	// Matches reports whether the element matches a selector. Invalid
	// selectors never match.
	Matches(selector string) bool

	// Parent returns the parent element, or nil for the root or a detached node.
	Parent() Element

	// Children returns the element children in document order.
	Children() []Element

	// Attached reports whether the element is currently part of the document.
	Attached() bool

	// Offset returns the top-left corner of the border box in page coordinates.
	Offset() geom.Point

	// Size returns the rendered border-box size.
	Size() geom.Size

	// CSS returns the computed value of a style property, e.g. "0px" for
	// "margin-top". Unknown properties return "".
	CSS(property string) string

	// SetCSS sets an inline style property. An empty value removes it.
	SetCSS(property, value string)

	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)

	// Before inserts e immediately before the receiver, moving e if it is
	// already in the tree.
	Before(e Element)

	// After inserts e immediately after the receiver.
	After(e Element)

	// Append inserts e as the last child of the receiver.
	Append(e Element)

	// Remove detaches the receiver from its parent.
	Remove()

	// Clone returns a detached deep copy.
	Clone() Element
}

// Document is the host's root: element lookup, creation, events and
// scheduling.
type Document interface {
	// Query returns every element matching selector in document order.
	Query(selector string) ([]Element, error)

	// Create returns a new detached element of the given kind.
	Create(tag string) Element

	// On subscribes h to events of type t that reach target. A nil target
	// subscribes at the document level, which sees every event after
	// element-level handlers (bubbling order).
	On(t EventType, target Element, h Handler) ListenerID

	// Off removes a subscription. Unknown ids are ignored.
	Off(id ListenerID)

	// Defer schedules fn to run after the current task completes (the next
	// scheduler tick).
	Defer(fn func())
}

// ListenerID identifies a subscription made with [Document.On].
type ListenerID uint64
