// Package dom is an in-memory implementation of the view layer.
//
// A Document holds an HTML fragment parsed with golang.org/x/net/html,
// matches selectors with cascadia, lays elements out in a simple flow model
// (see [Box]) and dispatches pointer events with DOM bubbling semantics. The
// terminal front end paints it; the drag engine tests drive it directly.
//
// Inline styles are the only style source. Lengths are unitless numbers or
// "px" values and map to one unit per terminal cell.
package dom

import (
	"fmt"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dragswitch/dragswitch/pkg/errors"
	"github.com/dragswitch/dragswitch/pkg/geom"
	"github.com/dragswitch/dragswitch/pkg/view"
)

// DefaultWidth is the viewport width used when none is given.
const DefaultWidth = 80

// Document is a view.Document backed by an html node tree.
//
// Mutations and queries are not synchronized; the document is meant to be
// driven from one goroutine. Dispatch serializes event delivery.
type Document struct {
	root  *html.Node
	width float64

	elems     map[*html.Node]*Element
	selectors map[string]cascadia.Selector

	dirty  bool
	boxes  map[*html.Node]Box
	paint  []*html.Node
	height float64

	listeners []*listener
	nextID    view.ListenerID
	pending   []func()

	dispatchMu sync.Mutex
	hovered    *html.Node
}

type listener struct {
	id      view.ListenerID
	typ     view.EventType
	target  *html.Node
	handler view.Handler
	removed bool
}

var _ view.Document = (*Document)(nil)

// New returns an empty document with the given viewport width.
func New(width float64) *Document {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Document{
		root:      newElementNode("body"),
		width:     width,
		elems:     make(map[*html.Node]*Element),
		selectors: make(map[string]cascadia.Selector),
		dirty:     true,
	}
}

// Parse builds a document from an HTML fragment.
func Parse(markup string, width float64) (*Document, error) {
	d := New(width)
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMarkup, err, "parse markup")
	}
	for _, n := range nodes {
		d.root.AppendChild(n)
	}
	return d, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// fixtures.
func MustParse(markup string, width float64) *Document {
	d, err := Parse(markup, width)
	if err != nil {
		panic(err)
	}
	return d
}

// Width returns the viewport width.
func (d *Document) Width() float64 { return d.width }

// SetWidth changes the viewport width and invalidates layout.
func (d *Document) SetWidth(w float64) {
	if w > 0 && w != d.width {
		d.width = w
		d.Invalidate()
	}
}

// Height returns the laid-out height of in-flow content.
func (d *Document) Height() float64 {
	d.ensureLayout()
	return d.height
}

// Body returns the root element that holds the parsed fragment.
func (d *Document) Body() *Element { return d.wrap(d.root) }

// Query returns every element below the root matching selector.
func (d *Document) Query(selector string) ([]view.Element, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSelector, err, "compile selector %q", selector)
	}
	var out []view.Element
	for _, n := range sel.MatchAll(d.root) {
		if n != d.root {
			out = append(out, d.wrap(n))
		}
	}
	return out, nil
}

// Find returns the element with the given id, or nil.
func (d *Document) Find(id string) *Element {
	var found *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil && found == nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			for _, a := range c.Attr {
				if a.Key == "id" && a.Val == id {
					found = c
					return
				}
			}
			walk(c)
		}
	}
	walk(d.root)
	if found == nil {
		return nil
	}
	return d.wrap(found)
}

// Create returns a new detached element.
func (d *Document) Create(tag string) view.Element {
	return d.wrap(newElementNode(tag))
}

// Invalidate marks the layout stale. Element mutators call it; callers that
// edit nodes directly must call it themselves.
func (d *Document) Invalidate() { d.dirty = true }

// HTML renders the document body's children as markup.
func (d *Document) HTML() string {
	var b strings.Builder
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

// Walk visits every laid-out element in paint order.
func (d *Document) Walk(fn func(e *Element, b Box)) {
	d.ensureLayout()
	for _, n := range d.paint {
		fn(d.wrap(n), d.boxes[n])
	}
}

// ElementAt returns the topmost element whose border box contains p, or nil.
func (d *Document) ElementAt(p geom.Point) *Element {
	d.ensureLayout()
	for i := len(d.paint) - 1; i >= 0; i-- {
		n := d.paint[i]
		if d.boxes[n].Border.Contains(p) {
			return d.wrap(n)
		}
	}
	return nil
}

func (d *Document) ensureLayout() {
	if !d.dirty {
		return
	}
	d.boxes, d.paint, d.height = layoutDocument(d.root, d.width)
	d.dirty = false
}

func (d *Document) boxOf(n *html.Node) (Box, bool) {
	d.ensureLayout()
	b, ok := d.boxes[n]
	return b, ok
}

func (d *Document) wrap(n *html.Node) *Element {
	if e, ok := d.elems[n]; ok {
		return e
	}
	e := &Element{doc: d, node: n}
	d.elems[n] = e
	return e
}

func (d *Document) unwrap(v view.Element) *html.Node {
	e, ok := v.(*Element)
	if !ok || e == nil || e.doc != d {
		return nil
	}
	return e.node
}

// compile caches compiled selectors; invalid selectors cache as nil.
func (d *Document) compile(selector string) cascadia.Selector {
	if sel, ok := d.selectors[selector]; ok {
		return sel
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		sel = nil
	}
	d.selectors[selector] = sel
	return sel
}

func (d *Document) String() string {
	return fmt.Sprintf("dom.Document(%gx%g)", d.width, d.Height())
}
