package dragswitch

import (
	"github.com/dragswitch/dragswitch/pkg/geom"
	"github.com/dragswitch/dragswitch/pkg/observability"
)

// containerAt returns the first container, in registration order, whose box
// contains p.
func (d *Dragswitch) containerAt(p geom.Point) *Container {
	for _, c := range d.containers {
		if c.box.Contains(p) {
			return c
		}
	}
	return nil
}

// hoverContainer advances the container hover state machine. Outside every
// container the previous active container is kept.
func (d *Dragswitch) hoverContainer(p geom.Point) {
	hit := d.containerAt(p)
	switch {
	case hit == nil:
		if d.s.inside {
			d.leave()
		}
	case !d.s.inside:
		d.enter(hit)
	case hit != d.s.active:
		d.leave()
		d.enter(hit)
	}
}

// leave parks the active container's placeholder at its tail and takes the
// draggy out of its sequence.
func (d *Dragswitch) leave() {
	c := d.s.active
	d.s.inside = false
	d.s.hover = nil

	d.update(false)
	if c.placeholder != nil {
		c.el.Append(c.placeholder)
		c.placeholderIndex = len(c.items)
	}
	d.refresh(c)

	d.logger.Debug("container left", "session", d.s.id, "container", describe(c.el))
}

func (d *Dragswitch) enter(c *Container) {
	from := d.s.active
	d.s.active = c
	d.s.inside = true
	d.s.hover = nil
	d.refresh(c)

	if from != c {
		d.logger.Debug("container entered", "session", d.s.id,
			"from", describe(from.el), "to", describe(c.el))
		observability.Drag().OnContainerChange(d.ctx, d.s.id, describe(from.el), describe(c.el))
	}
}

// hoverItem advances the item hover state machine for the active container
// and repositions the placeholder when a different item is entered. The
// draggy's own row and empty space clear the hover. It reports false if the
// hit item is no longer in the document.
func (d *Dragswitch) hoverItem(p geom.Point) bool {
	if !d.s.inside {
		return true
	}
	var hit *Row
	for i := range d.s.active.rows {
		if d.s.active.rows[i].Box.Contains(p) {
			hit = &d.s.active.rows[i]
			break
		}
	}
	switch {
	case hit == nil, hit.Element == d.s.draggy:
		d.s.hover = nil
	case hit.Element != d.s.hover:
		if !hit.Element.Attached() {
			return false
		}
		d.s.hover = hit.Element
		d.reposition(*hit)
	}
	return true
}
