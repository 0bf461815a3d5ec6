package dragswitch

import (
	"time"

	"github.com/google/uuid"

	"github.com/dragswitch/dragswitch/pkg/geom"
	"github.com/dragswitch/dragswitch/pkg/observability"
	"github.com/dragswitch/dragswitch/pkg/view"
)

// State is the phase of the drag session.
type State int

const (
	// Idle: no item is held.
	Idle State = iota
	// Armed: an item was pressed but the pointer has not moved yet.
	Armed
	// Dragging: the item follows the pointer and a placeholder marks its slot.
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// session is the state of one gesture. active and inside outlive the gesture:
// the next press resolves against the last active container.
type session struct {
	state State
	id    string
	began time.Time

	active *Container
	inside bool
	hover  view.Element

	draggy      view.Element
	draggyIndex int
	style       string
	hadStyle    bool

	pos    geom.Point
	origin geom.Point

	moveID, upID view.ListenerID
}

// onContainerDown makes the pressed container the active one.
func (d *Dragswitch) onContainerDown(c *Container) view.Handler {
	return func(e *view.Event) {
		e.PreventDefault()
		if d.s.state != Idle {
			return
		}
		d.s.active = c
		d.s.inside = true
	}
}

// onContainerOut re-evaluates container hover when the pointer leaves part
// of a container.
func (d *Dragswitch) onContainerOut(e *view.Event) {
	if d.s.state != Dragging || !d.opts.Between {
		return
	}
	d.hoverContainer(e.Page)
}

// onPointerDown arms the session when the primary button presses an item of
// the active container.
func (d *Dragswitch) onPointerDown(e *view.Event) {
	if e.Button != view.ButtonPrimary {
		return
	}
	if d.s.state != Idle {
		d.logger.Debug("press ignored, drag in progress", "session", d.s.id, "state", d.s.state)
		return
	}
	c := d.s.active
	if c == nil || e.Target == nil {
		return
	}
	item := itemAt(c, e.Target)
	if item == nil {
		return
	}
	idx := c.indexOf(item)
	if idx < 0 {
		return
	}
	if d.opts.Handle != "" && !underHandle(item, e.Target, d.opts.Handle) {
		return
	}

	d.s.state = Armed
	d.s.id = uuid.NewString()
	d.s.began = time.Now()
	d.s.draggy = item
	d.s.draggyIndex = idx
	d.s.style, d.s.hadStyle = item.Attr("style")
	d.s.hover = nil

	d.s.moveID = d.doc.On(view.PointerMove, nil, d.onPointerMove)
	d.s.upID = d.doc.On(view.PointerUp, nil, d.onPointerUp)

	d.logger.Debug("drag armed", "session", d.s.id,
		"container", describe(c.el), "item", describe(item), "index", idx)
}

func (d *Dragswitch) onPointerMove(e *view.Event) {
	switch d.s.state {
	case Armed:
		d.start(e)
	case Dragging:
		d.drag(e)
	}
}

// start turns an armed press into a drag.
func (d *Dragswitch) start(e *view.Event) {
	if !d.s.draggy.Attached() || !d.s.active.el.Attached() {
		d.cancel("item detached before drag start")
		return
	}
	d.s.state = Dragging
	d.s.pos = position(d.s.draggy)
	d.createPlaceholder()

	draggy := d.s.draggy
	draggy.SetCSS("left", formatPx(d.s.pos.X))
	draggy.SetCSS("top", formatPx(d.s.pos.Y))
	draggy.SetCSS("position", "absolute")
	draggy.SetCSS("cursor", "grabbing")
	draggy.SetCSS("opacity", ".6")

	if d.opts.Between {
		d.refreshAll()
	} else {
		d.refresh(d.s.active)
	}

	d.logger.Debug("drag started", "session", d.s.id,
		"container", describe(d.s.active.el), "item", describe(draggy))
	observability.Drag().OnDragStart(d.ctx, d.s.id, describe(d.s.active.el), describe(draggy))
	for _, fn := range d.cfg.dragStart {
		fn()
	}
	d.s.origin = e.Client
}

// drag follows the pointer and updates the target slot.
func (d *Dragswitch) drag(e *view.Event) {
	if !d.s.draggy.Attached() {
		d.cancel("dragged item detached")
		return
	}
	if !d.s.active.el.Attached() {
		d.cancel("container detached")
		return
	}
	if d.s.hover != nil && !d.s.hover.Attached() {
		d.cancel("hovered item detached")
		return
	}

	if d.opts.Between {
		d.hoverContainer(e.Page)
	}
	if !d.hoverItem(e.Page) {
		d.cancel("hovered item detached")
		return
	}

	d.s.draggy.SetCSS("left", formatPx(d.s.pos.X+e.Client.X-d.s.origin.X))
	d.s.draggy.SetCSS("top", formatPx(d.s.pos.Y+e.Client.Y-d.s.origin.Y))
}

// onPointerUp ends the gesture. A drag is committed; a click only ends.
func (d *Dragswitch) onPointerUp(e *view.Event) {
	switch d.s.state {
	case Armed:
		d.detachPointer()
		d.finish(false)
	case Dragging:
		if !d.s.draggy.Attached() || !d.s.active.el.Attached() {
			d.cancel("detached before drop")
			return
		}
		if d.itemDetached() {
			d.cancel("item detached before drop")
			return
		}
		d.detachPointer()
		d.commit()
		d.finish(true)
	}
}

// itemDetached reports whether a sequence the drop would rebuild holds an
// element that has left the document.
func (d *Dragswitch) itemDetached() bool {
	cs := []*Container{d.s.active}
	if d.opts.Between {
		cs = d.containers
	}
	for _, c := range cs {
		for _, it := range c.items {
			if !it.Attached() {
				return true
			}
		}
	}
	return false
}

// commit drops the draggy at the live placeholder and restores it.
func (d *Dragswitch) commit() {
	c := d.s.active
	d.update(true)
	c.placeholder.Before(d.s.draggy)

	d.clearPlaceholders()
	d.restoreStyle()

	draggy := d.s.draggy
	d.s.draggy = nil
	if d.opts.Between {
		for _, other := range d.containers {
			d.rebuild(other)
		}
	} else {
		d.rebuild(c)
	}

	d.logger.Debug("item dropped", "session", d.s.id,
		"container", describe(c.el), "item", describe(draggy), "index", c.indexOf(draggy))
}

// cancel abandons the drag: placeholders go, the item gets its style back and
// every sequence is re-read from the document.
func (d *Dragswitch) cancel(reason string) {
	d.detachPointer()
	moved := d.s.state == Dragging
	if moved {
		d.clearPlaceholders()
	}
	d.restoreStyle()
	d.s.draggy = nil
	for _, c := range d.containers {
		c.items = nil
		if c.el.Attached() {
			c.items = scanItems(c.el, c.selector)
		}
		d.rebuild(c)
	}

	d.logger.Debug("drag cancelled", "session", d.s.id, "reason", reason)
	observability.Drag().OnCancel(d.ctx, d.s.id, reason)
	d.finish(moved)
}

// finish returns to Idle and runs the drag-end callbacks.
func (d *Dragswitch) finish(moved bool) {
	d.s.state = Idle
	d.s.draggy = nil
	d.s.draggyIndex = -1
	d.s.hover = nil
	if d.pending != nil {
		d.opts, d.pending = *d.pending, nil
	}

	observability.Drag().OnDragEnd(d.ctx, d.s.id, moved, time.Since(d.s.began))
	for _, fn := range d.cfg.dragEnd {
		fn()
	}
}

// restoreStyle puts back the inline style the draggy had when pressed.
func (d *Dragswitch) restoreStyle() {
	if d.s.draggy == nil {
		return
	}
	if d.s.hadStyle {
		d.s.draggy.SetAttr("style", d.s.style)
	} else {
		d.s.draggy.RemoveAttr("style")
	}
}

func (d *Dragswitch) detachPointer() {
	if d.s.moveID != 0 {
		d.doc.Off(d.s.moveID)
		d.s.moveID = 0
	}
	if d.s.upID != 0 {
		d.doc.Off(d.s.upID)
		d.s.upID = 0
	}
}
