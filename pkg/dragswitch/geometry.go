package dragswitch

import (
	"slices"
	"strconv"
	"strings"

	"github.com/dragswitch/dragswitch/pkg/geom"
	"github.com/dragswitch/dragswitch/pkg/view"
)

// capture reads the rendered border box of el.
func capture(el view.Element) geom.Rect {
	return geom.RectAt(el.Offset(), el.Size())
}

// refresh recaptures the container box and every row except the draggy's,
// whose on-screen box follows the pointer rather than the layout.
func (d *Dragswitch) refresh(c *Container) {
	c.box = capture(c.el)
	for i := range c.rows {
		if d.s.draggy != nil && c.rows[i].Element == d.s.draggy {
			continue
		}
		c.rows[i].Box = capture(c.rows[i].Element)
	}
}

// refreshAll refreshes every registered container.
func (d *Dragswitch) refreshAll() {
	for _, c := range d.containers {
		d.refresh(c)
	}
}

// rebuild re-derives the row table from the item sequence. While dragging,
// the draggy's row takes the placeholder's box.
func (d *Dragswitch) rebuild(c *Container) {
	c.box = capture(c.el)
	c.rows = c.rows[:0]
	for i, it := range c.items {
		box := capture(it)
		if d.s.draggy != nil && it == d.s.draggy && c.placeholder != nil {
			box = capture(c.placeholder)
		}
		c.rows = append(c.rows, Row{Element: it, Index: i, Box: box})
	}
}

// update moves the draggy to the placeholder's slot in the active container's
// sequence and rebuilds its rows. With add false the draggy is only removed.
func (d *Dragswitch) update(add bool) {
	c := d.s.active
	if d.s.draggyIndex >= 0 && d.s.draggyIndex < len(c.items) {
		c.items = slices.Delete(c.items, d.s.draggyIndex, d.s.draggyIndex+1)
	}
	d.s.draggyIndex = -1
	if add {
		at := min(max(c.placeholderIndex, 0), len(c.items))
		c.items = slices.Insert(c.items, at, d.s.draggy)
		d.s.draggyIndex = at
	}
	d.rebuild(c)
}

// position returns where el is drawn: its left/top offsets when relatively
// positioned, otherwise its page offset minus its margins.
func position(el view.Element) geom.Point {
	if el.CSS("position") == "relative" {
		return geom.Point{X: px(el.CSS("left")), Y: px(el.CSS("top"))}
	}
	off := el.Offset()
	return geom.Point{
		X: off.X - px(el.CSS("margin-left")),
		Y: off.Y - px(el.CSS("margin-top")),
	}
}

// px parses a computed length, treating keywords such as "auto" as zero.
func px(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		return 0
	}
	return f
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
