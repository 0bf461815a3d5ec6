package dom

import (
	"golang.org/x/net/html"

	"github.com/dragswitch/dragswitch/pkg/geom"
	"github.com/dragswitch/dragswitch/pkg/view"
)

// On subscribes h to events of type t. A nil target subscribes at the
// document level.
func (d *Document) On(t view.EventType, target view.Element, h view.Handler) view.ListenerID {
	var n *html.Node
	if target != nil {
		n = d.unwrap(target)
		if n == nil {
			return 0
		}
	}
	d.nextID++
	d.listeners = append(d.listeners, &listener{id: d.nextID, typ: t, target: n, handler: h})
	return d.nextID
}

// Off removes a subscription. A listener removed while an event is being
// dispatched is not invoked for the rest of that dispatch.
func (d *Document) Off(id view.ListenerID) {
	for i, l := range d.listeners {
		if l.id == id {
			l.removed = true
			d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Listeners returns the number of active subscriptions.
func (d *Document) Listeners() int { return len(d.listeners) }

// Defer queues fn for the next [Document.Flush].
func (d *Document) Defer(fn func()) {
	d.pending = append(d.pending, fn)
}

// Pending returns the number of queued tasks.
func (d *Document) Pending() int { return len(d.pending) }

// Flush runs queued tasks, including tasks queued while flushing.
func (d *Document) Flush() {
	for len(d.pending) > 0 {
		fn := d.pending[0]
		d.pending = d.pending[1:]
		fn()
	}
}

// PointerDown dispatches a button press at p.
func (d *Document) PointerDown(p geom.Point, b view.Button) *view.Event {
	return d.Dispatch(view.Event{Type: view.PointerDown, Button: b, Page: p, Client: p})
}

// PointerMove dispatches a move to p. If the element under the pointer
// changed, a PointerOut is dispatched to the previous one first.
func (d *Document) PointerMove(p geom.Point) *view.Event {
	return d.Dispatch(view.Event{Type: view.PointerMove, Page: p, Client: p})
}

// PointerUp dispatches a button release at p.
func (d *Document) PointerUp(p geom.Point, b view.Button) *view.Event {
	return d.Dispatch(view.Event{Type: view.PointerUp, Button: b, Page: p, Client: p})
}

// Dispatch delivers ev along the bubbling path of the element under
// ev.Page: element-level handlers from the target upward, then
// document-level handlers. Handlers must not call Dispatch.
func (d *Document) Dispatch(ev view.Event) *view.Event {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	var target *html.Node
	if el := d.ElementAt(ev.Page); el != nil {
		target = el.node
	}

	if ev.Type == view.PointerMove && d.hovered != nil && d.hovered != target {
		out := view.Event{Type: view.PointerOut, Page: ev.Page, Client: ev.Client}
		d.deliver(&out, d.hovered)
	}
	if ev.Type == view.PointerMove || ev.Type == view.PointerDown {
		d.hovered = target
	}

	d.deliver(&ev, target)
	return &ev
}

func (d *Document) deliver(ev *view.Event, target *html.Node) {
	if target != nil {
		ev.Target = d.wrap(target)
	}
	snapshot := append([]*listener(nil), d.listeners...)

	for n := target; n != nil && n != d.root; n = n.Parent {
		for _, l := range snapshot {
			if l.removed || l.typ != ev.Type || l.target != n {
				continue
			}
			l.handler(ev)
		}
		if ev.Stopped() {
			return
		}
	}
	for _, l := range snapshot {
		if l.removed || l.typ != ev.Type || l.target != nil {
			continue
		}
		l.handler(ev)
	}
}
