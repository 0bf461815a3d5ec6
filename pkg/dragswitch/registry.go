package dragswitch

import (
	"strings"

	"github.com/dragswitch/dragswitch/pkg/geom"
	"github.com/dragswitch/dragswitch/pkg/view"
)

// DefaultItemSelector is used for containers no item selector was paired with.
const DefaultItemSelector = "div"

// Row is one entry of a container's hit-test table.
type Row struct {
	Element view.Element
	Index   int
	Box     geom.Rect
}

// Container is a registered drop region and its ordered items.
type Container struct {
	el       view.Element
	selector string
	box      geom.Rect

	items []view.Element
	rows  []Row

	placeholder      view.Element
	placeholderIndex int
}

// Element returns the container's view element.
func (c *Container) Element() view.Element { return c.el }

// ItemSelector returns the selector its items were matched with.
func (c *Container) ItemSelector() string { return c.selector }

// Box returns the cached bounding box.
func (c *Container) Box() geom.Rect { return c.box }

// Items returns a copy of the ordered item sequence.
func (c *Container) Items() []view.Element {
	return append([]view.Element(nil), c.items...)
}

// Rows returns a copy of the hit-test table.
func (c *Container) Rows() []Row {
	return append([]Row(nil), c.rows...)
}

// Placeholder returns the container's placeholder element, or nil.
func (c *Container) Placeholder() view.Element { return c.placeholder }

// PlaceholderIndex returns the sequence position the placeholder marks, or
// -1 when the container has none in the document.
func (c *Container) PlaceholderIndex() int { return c.placeholderIndex }

func (c *Container) indexOf(el view.Element) int {
	for i, it := range c.items {
		if it == el {
			return i
		}
	}
	return -1
}

// pair binds one container selector to the item selector used inside it.
type pair struct {
	context string
	item    string
}

// splitSelectors splits a selector list on its top-level commas, trimming
// each entry and dropping empty ones. Commas inside parentheses, attribute
// brackets or quoted strings belong to the entry they appear in.
func splitSelectors(list string) []string {
	var (
		out   []string
		depth int
		quote rune
		start int
	)
	emit := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	for i, r := range list {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(' || r == '[':
			depth++
		case (r == ')' || r == ']') && depth > 0:
			depth--
		case r == ',' && depth == 0:
			emit(list[start:i])
			start = i + 1
		}
	}
	emit(list[start:])
	return out
}

// pairSelectors pairs context selectors with item selectors index for index.
// When there are fewer item selectors than contexts the last one is reused.
func pairSelectors(contexts, items []string) []pair {
	if len(items) == 0 {
		items = []string{DefaultItemSelector}
	}
	pairs := make([]pair, 0, len(contexts))
	for i, c := range contexts {
		pairs = append(pairs, pair{context: c, item: items[min(i, len(items)-1)]})
	}
	return pairs
}

// itemSelectorFor returns the item selector of the first pair whose context
// selector el matches.
func itemSelectorFor(el view.Element, pairs []pair) string {
	for _, p := range pairs {
		if el.Matches(p.context) {
			return p.item
		}
	}
	return DefaultItemSelector
}

// scanItems returns the direct children of el matching selector.
func scanItems(el view.Element, selector string) []view.Element {
	var items []view.Element
	for _, ch := range el.Children() {
		if ch.Matches(selector) {
			items = append(items, ch)
		}
	}
	return items
}

// register resolves the item selector of every element in the selection and
// records a container for it.
func (d *Dragswitch) register(pairs []pair) {
	for _, el := range d.selection {
		c := &Container{
			el:               el,
			selector:         itemSelectorFor(el, pairs),
			placeholderIndex: -1,
		}
		c.items = scanItems(el, c.selector)
		for _, it := range c.items {
			it.SetCSS("cursor", "pointer")
		}
		d.containers = append(d.containers, c)
		d.rebuild(c)

		d.logger.Debug("container registered",
			"container", describe(el), "items", len(c.items), "selector", c.selector)
	}
}

// containerOf returns the registered container for el.
func (d *Dragswitch) containerOf(el view.Element) *Container {
	for _, c := range d.containers {
		if c.el == el {
			return c
		}
	}
	return nil
}

// itemAt resolves the item of c that target belongs to: target itself or its
// nearest ancestor whose parent is the container element.
func itemAt(c *Container, target view.Element) view.Element {
	for el := target; el != nil; el = el.Parent() {
		if el.Parent() == c.el {
			return el
		}
		if el == c.el {
			return nil
		}
	}
	return nil
}

// underHandle reports whether target is, or is inside, an element of item
// matching handle.
func underHandle(item, target view.Element, handle string) bool {
	for el := target; el != nil; el = el.Parent() {
		if el.Matches(handle) {
			return true
		}
		if el == item {
			return false
		}
	}
	return false
}

// describe names an element for logs and hooks.
func describe(el view.Element) string {
	if el == nil {
		return ""
	}
	if id, ok := el.Attr("id"); ok && id != "" {
		return "#" + id
	}
	return el.Tag()
}
