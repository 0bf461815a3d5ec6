package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dragswitch/dragswitch/pkg/geom"
	"github.com/dragswitch/dragswitch/pkg/view"
)

// Element wraps an element node of a [Document]. There is exactly one
// *Element per node, so elements compare equal with ==.
type Element struct {
	doc  *Document
	node *html.Node
}

var _ view.Element = (*Element)(nil)

// Node exposes the underlying html node. Mutating it directly bypasses
// layout invalidation; call [Document.Invalidate] afterwards.
func (e *Element) Node() *html.Node { return e.node }

// Tag returns the lower-cased element name.
func (e *Element) Tag() string { return strings.ToLower(e.node.Data) }

// ID returns the id attribute.
func (e *Element) ID() string {
	id, _ := e.Attr("id")
	return id
}

// Text returns the element's own text content (direct text children only),
// with runs of whitespace collapsed.
func (e *Element) Text() string {
	return ownText(e.node)
}

// Matches reports whether the element matches selector.
func (e *Element) Matches(selector string) bool {
	sel := e.doc.compile(selector)
	if sel == nil {
		return false
	}
	return sel.Match(e.node)
}

func (e *Element) Parent() view.Element {
	p := e.node.Parent
	if p == nil || p == e.doc.root || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

func (e *Element) Children() []view.Element {
	var out []view.Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// Attached reports whether the element is reachable from the document root.
func (e *Element) Attached() bool {
	for n := e.node.Parent; n != nil; n = n.Parent {
		if n == e.doc.root {
			return true
		}
	}
	return false
}

func (e *Element) Offset() geom.Point {
	b, ok := e.doc.boxOf(e.node)
	if !ok {
		return geom.Point{}
	}
	return b.Border.Origin()
}

func (e *Element) Size() geom.Size {
	b, ok := e.doc.boxOf(e.node)
	if !ok {
		return geom.Size{}
	}
	return geom.Size{W: b.Border.Width(), H: b.Border.Height()}
}

// Box returns the element's layout box. ok is false for detached or
// undisplayed elements.
func (e *Element) Box() (Box, bool) {
	return e.doc.boxOf(e.node)
}

// CSS returns the computed value of property.
func (e *Element) CSS(property string) string {
	property = strings.ToLower(strings.TrimSpace(property))
	specified := resolveStyle(e.decls())

	switch property {
	case "width", "height":
		if b, ok := e.doc.boxOf(e.node); ok {
			if property == "width" {
				return formatPx(b.Content.Width())
			}
			return formatPx(b.Content.Height())
		}
	case "border-top-width", "border-right-width", "border-bottom-width", "border-left-width":
		if s := specified["border-style"]; s == "" || s == "none" || s == "hidden" {
			return "0px"
		}
	}

	if v, ok := specified[property]; ok {
		return normalizeValue(property, v)
	}
	return defaultValue(e.Tag(), property)
}

// SetCSS sets an inline style property; an empty value removes it.
func (e *Element) SetCSS(property, value string) {
	decls := setDeclaration(e.decls(), property, value)
	if len(decls) == 0 {
		e.RemoveAttr("style")
		return
	}
	e.SetAttr("style", formatStyle(decls))
}

func (e *Element) decls() []declaration {
	s, _ := e.Attr("style")
	return parseStyle(s)
}

func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			e.doc.Invalidate()
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
	e.doc.Invalidate()
}

func (e *Element) RemoveAttr(name string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
	e.doc.Invalidate()
}

// HasClass reports whether class is in the element's class list.
func (e *Element) HasClass(class string) bool {
	v, _ := e.Attr("class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func (e *Element) Before(other view.Element) {
	o := e.doc.unwrap(other)
	if o == nil || o == e.node || e.node.Parent == nil {
		return
	}
	detach(o)
	e.node.Parent.InsertBefore(o, e.node)
	e.doc.Invalidate()
}

func (e *Element) After(other view.Element) {
	o := e.doc.unwrap(other)
	if o == nil || o == e.node || e.node.Parent == nil {
		return
	}
	detach(o)
	e.node.Parent.InsertBefore(o, e.node.NextSibling)
	e.doc.Invalidate()
}

func (e *Element) Append(other view.Element) {
	o := e.doc.unwrap(other)
	if o == nil || o == e.node {
		return
	}
	detach(o)
	e.node.AppendChild(o)
	e.doc.Invalidate()
}

func (e *Element) Remove() {
	if e.node.Parent == nil {
		return
	}
	detach(e.node)
	e.doc.Invalidate()
}

// Clone returns a detached deep copy of the element.
func (e *Element) Clone() view.Element {
	return e.doc.wrap(cloneNode(e.node))
}

// String renders the element as markup.
func (e *Element) String() string {
	var b strings.Builder
	_ = html.Render(&b, e.node)
	return b.String()
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(cloneNode(ch))
	}
	return c
}

func newElementNode(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

func ownText(n *html.Node) string {
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			if t := strings.Join(strings.Fields(c.Data), " "); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, " ")
}
