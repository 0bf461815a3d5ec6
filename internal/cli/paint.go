package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dragswitch/dragswitch/pkg/dom"
)

// cellStyle is the comparable subset of styling a painted cell carries.
type cellStyle struct {
	fg    string
	bold  bool
	faint bool
}

func (s cellStyle) render(text string) string {
	if s == (cellStyle{}) {
		return text
	}
	st := lipgloss.NewStyle().Bold(s.bold).Faint(s.faint)
	if s.fg != "" {
		st = st.Foreground(lipgloss.Color(s.fg))
	}
	return st.Render(text)
}

type cell struct {
	r     rune
	style cellStyle
	// cont marks the second column of a wide rune.
	cont bool
}

// canvas is a grid of terminal cells.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]cell, h)}
	for y := range c.cells {
		row := make([]cell, w)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) set(x, y int, r rune, st cellStyle) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{r: r, style: st}
}

// text writes s from (x, y), clipped at limit columns.
func (c *canvas) text(x, y, limit int, s string, st cellStyle) {
	s = runewidth.Truncate(s, limit, "…")
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.set(x, y, r, st)
		if w == 2 && x+1 < c.w && y >= 0 && y < c.h && x+1 >= 0 {
			c.cells[y][x+1] = cell{cont: true, style: st}
		}
		x += w
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		cur := row[0].style
		for _, cl := range row {
			if cl.cont {
				continue
			}
			if cl.style != cur {
				b.WriteString(cur.render(run.String()))
				run.Reset()
				cur = cl.style
			}
			run.WriteRune(cl.r)
		}
		b.WriteString(cur.render(run.String()))
	}
	return b.String()
}

// border glyphs: top-left, top-right, bottom-left, bottom-right, horizontal, vertical.
var (
	solidBorder  = [6]rune{'╭', '╮', '╰', '╯', '─', '│'}
	dashedBorder = [6]rune{'┌', '┐', '└', '┘', '┄', '┆'}
	doubleBorder = [6]rune{'╔', '╗', '╚', '╝', '═', '║'}
)

func borderGlyphs(style string) [6]rune {
	switch style {
	case "dashed", "dotted":
		return dashedBorder
	case "double":
		return doubleBorder
	}
	return solidBorder
}

// cellSpan converts a [lo, hi) coordinate range to inclusive cell indices.
func cellSpan(lo, hi float64) (int, int) {
	return int(math.Floor(lo)), int(math.Ceil(hi)) - 1
}

// paint draws every laid-out element of doc in paint order.
func paint(doc *dom.Document, width int) *canvas {
	height := int(math.Ceil(doc.Height()))
	doc.Walk(func(_ *dom.Element, b dom.Box) {
		height = max(height, int(math.Ceil(b.Margin.Bottom)))
	})
	cv := newCanvas(width, height)

	doc.Walk(func(e *dom.Element, b dom.Box) {
		st := cellStyle{faint: b.Opacity < 1}
		l, r := cellSpan(b.Border.Left, b.Border.Right)
		t, bot := cellSpan(b.Border.Top, b.Border.Bottom)

		// Positioned elements paint over what is beneath them.
		if b.Positioned {
			for y := t; y <= bot; y++ {
				for x := l; x <= r; x++ {
					cv.set(x, y, ' ', st)
				}
			}
		}

		if b.BorderWidth.Top > 0 && r > l && bot > t {
			g := borderGlyphs(b.BorderStyle)
			bs := cellStyle{fg: b.BorderColor, faint: st.faint}
			for x := l + 1; x < r; x++ {
				cv.set(x, t, g[4], bs)
				cv.set(x, bot, g[4], bs)
			}
			for y := t + 1; y < bot; y++ {
				cv.set(l, y, g[5], bs)
				cv.set(r, y, g[5], bs)
			}
			cv.set(l, t, g[0], bs)
			cv.set(r, t, g[1], bs)
			cv.set(l, bot, g[2], bs)
			cv.set(r, bot, g[3], bs)
		}

		if b.Text != "" && b.Content.Width() > 0 {
			ts := st
			if len(e.Children()) > 0 {
				ts.bold = true
			}
			x, _ := cellSpan(b.Content.Left, b.Content.Right)
			y, _ := cellSpan(b.Content.Top, b.Content.Bottom)
			cv.text(x, y, int(b.Content.Width()), b.Text, ts)
		}
	})
	return cv
}
