package dragswitch

import (
	"github.com/dragswitch/dragswitch/pkg/observability"
	"github.com/dragswitch/dragswitch/pkg/view"
)

// PlaceholderBorder is the border every placeholder is drawn with.
const PlaceholderBorder = "1px dashed #672c4f"

// mimicked lists the box-affecting properties copied from the draggy, with
// the neutral value that is not worth copying.
var mimicked = []struct {
	property string
	neutral  string
}{
	{"display", "block"},
	{"float", "none"},
	{"margin-top", "0px"},
	{"margin-left", "0px"},
	{"margin-right", "0px"},
	{"margin-bottom", "0px"},
	{"padding-left", "0px"},
	{"padding-top", "0px"},
	{"padding-right", "0px"},
	{"padding-bottom", "0px"},
}

// createPlaceholder prepares the active container's placeholder, reusing the
// previous one when it has the draggy's tag.
func (d *Dragswitch) createPlaceholder() {
	c := d.s.active
	ph := c.placeholder
	if ph == nil || ph.Tag() != d.s.draggy.Tag() {
		ph = d.doc.Create(d.s.draggy.Tag())
		c.placeholder = ph
	} else {
		ph.RemoveAttr("style")
	}
	c.placeholderIndex = d.s.draggyIndex

	d.stylePlaceholder(ph)
	d.placePlaceholders()
}

func (d *Dragswitch) stylePlaceholder(ph view.Element) {
	draggy := d.s.draggy
	for _, m := range mimicked {
		v := draggy.CSS(m.property)
		if v == "" || v == m.neutral {
			continue
		}
		ph.SetCSS(m.property, v)
	}
	ph.SetCSS("border", PlaceholderBorder)
	w, h := draggy.CSS("width"), draggy.CSS("height")
	ph.SetCSS("width", w)
	ph.SetCSS("height", h)

	// Only block containers keep their size once taken out of flow.
	if draggy.Tag() != "div" {
		draggy.SetCSS("width", w)
		draggy.SetCSS("height", h)
	}

	if d.cfg.placeholder != nil {
		d.cfg.placeholder(ph)
	}
}

// placePlaceholders inserts the live placeholder before the draggy and, in
// inter-container mode, a copy at the tail of every other container.
func (d *Dragswitch) placePlaceholders() {
	live := d.s.active.placeholder
	if d.opts.Between {
		for _, c := range d.containers {
			if c == d.s.active {
				continue
			}
			tail := live.Clone()
			c.el.Append(tail)
			c.placeholder = tail
			c.placeholderIndex = len(c.items)
		}
	}
	d.s.draggy.Before(live)
}

// reposition moves the live placeholder next to row: before it when the
// placeholder currently sits further down the sequence, after it otherwise.
func (d *Dragswitch) reposition(row Row) {
	c := d.s.active
	if c.placeholderIndex > row.Index {
		row.Element.Before(c.placeholder)
	} else {
		row.Element.After(c.placeholder)
	}
	c.placeholderIndex = row.Index
	d.update(true)

	d.logger.Debug("placeholder moved", "session", d.s.id,
		"container", describe(c.el), "index", c.placeholderIndex)
	observability.Drag().OnPlaceholderMove(d.ctx, d.s.id, describe(c.el), c.placeholderIndex)
}

// clearPlaceholders removes the live placeholder, or every container's in
// inter-container mode.
func (d *Dragswitch) clearPlaceholders() {
	for _, c := range d.containers {
		if !d.opts.Between && c != d.s.active {
			continue
		}
		if c.placeholder != nil {
			c.placeholder.Remove()
		}
		c.placeholderIndex = -1
	}
}
