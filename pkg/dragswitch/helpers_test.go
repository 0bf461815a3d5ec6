package dragswitch

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dragswitch/dragswitch/pkg/dom"
	"github.com/dragswitch/dragswitch/pkg/geom"
	"github.com/dragswitch/dragswitch/pkg/observability"
	"github.com/dragswitch/dragswitch/pkg/view"
)

// oneList is three one-line items stacked in a 20-wide list:
// i1 spans y 0..1, i2 1..2, i3 2..3.
const oneList = `<ul id="a" style="width: 20px"><li id="i1">one</li><li id="i2">two</li><li id="i3">three</li></ul>`

// twoLists puts list b (i3 at y 2..3) under list a (i1 at y 0..1, i2 at 1..2).
const twoLists = `<ul id="a" style="width: 20px"><li id="i1">one</li><li id="i2">two</li></ul>` +
	`<ul id="b" style="width: 20px"><li id="i3">three</li></ul>`

type harness struct {
	t   *testing.T
	doc *dom.Document
	ds  *Dragswitch

	starts, ends int
}

// newHarness wires a Dragswitch over markup and runs the deferred tick.
func newHarness(t *testing.T, markup, selector string, configure func(b Builder) *Config) *harness {
	t.Helper()
	h := &harness{t: t, doc: dom.MustParse(markup, 80)}
	ds, err := New(h.doc, selector, func(b Builder) {
		configure(b).
			DragStart(func() { h.starts++ }).
			DragEnd(func() { h.ends++ })
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.ds = ds
	h.doc.Flush()
	return h
}

func (h *harness) press(x, y float64) {
	h.doc.PointerDown(geom.Point{X: x, Y: y}, view.ButtonPrimary)
}

func (h *harness) move(x, y float64) {
	h.doc.PointerMove(geom.Point{X: x, Y: y})
}

func (h *harness) release(x, y float64) {
	h.doc.PointerUp(geom.Point{X: x, Y: y}, view.ButtonPrimary)
}

func (h *harness) el(id string) *dom.Element {
	h.t.Helper()
	e := h.doc.Find(id)
	if e == nil {
		h.t.Fatalf("no element #%s", id)
	}
	return e
}

// order returns the item ids of every container.
func (h *harness) order() [][]string {
	var out [][]string
	for _, seq := range h.ds.Order() {
		out = append(out, ids(seq))
	}
	return out
}

// children returns the ids of the element children of #id in document
// order; elements without an id show up as "".
func (h *harness) children(id string) []string {
	return ids(h.el(id).Children())
}

func ids(els []view.Element) []string {
	out := make([]string, 0, len(els))
	for _, e := range els {
		id, _ := e.Attr("id")
		out = append(out, id)
	}
	return out
}

type recordingHooks struct {
	observability.NoopDragHooks
	starts, ends, moves int
	changes             [][2]string
	cancels             []string
	moved               []bool
}

func (r *recordingHooks) OnDragStart(context.Context, string, string, string) { r.starts++ }
func (r *recordingHooks) OnDragEnd(_ context.Context, _ string, moved bool, _ time.Duration) {
	r.ends++
	r.moved = append(r.moved, moved)
}
func (r *recordingHooks) OnPlaceholderMove(context.Context, string, string, int) { r.moves++ }
func (r *recordingHooks) OnContainerChange(_ context.Context, _ string, from, to string) {
	r.changes = append(r.changes, [2]string{from, to})
}
func (r *recordingHooks) OnCancel(_ context.Context, _ string, reason string) {
	r.cancels = append(r.cancels, reason)
}

func recordHooks(t *testing.T) *recordingHooks {
	t.Helper()
	r := &recordingHooks{}
	observability.SetDragHooks(r)
	t.Cleanup(observability.Reset)
	return r
}

var cmpEmptySlices = cmpopts.EquateEmpty()
