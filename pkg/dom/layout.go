package dom

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"

	"github.com/dragswitch/dragswitch/pkg/geom"
)

// Box is the result of laying out one element.
type Box struct {
	Margin  geom.Rect
	Border  geom.Rect
	Content geom.Rect

	BorderWidth geom.Edges
	Padding     geom.Edges
	BorderStyle string
	BorderColor string

	Text    string
	Opacity float64

	// Positioned is set for absolutely positioned elements, which are taken
	// out of flow and painted above everything else.
	Positioned bool
}

// metrics are the layout-relevant properties of one element.
type metrics struct {
	display  string
	float    string
	position string

	margin  geom.Edges
	padding geom.Edges
	border  geom.Edges

	width, height float64
	hasW, hasH    bool
	left, top     float64

	borderStyle string
	borderColor string
	opacity     float64
}

func (m metrics) inline() bool {
	if m.float != "" && m.float != "none" {
		return true
	}
	switch m.display {
	case "inline", "inline-block", "inline-flex":
		return true
	}
	return false
}

func (m metrics) outOfFlow() bool {
	return m.position == "absolute" || m.position == "fixed"
}

func (m metrics) edgesH() float64 {
	return m.margin.Horizontal() + m.border.Horizontal() + m.padding.Horizontal()
}

func (m metrics) edgesV() float64 {
	return m.margin.Vertical() + m.border.Vertical() + m.padding.Vertical()
}

func readMetrics(n *html.Node) metrics {
	var style string
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "style" {
			style = a.Val
		}
	}
	specified := resolveStyle(parseStyle(style))
	tag := strings.ToLower(n.Data)

	get := func(prop string) string {
		if v, ok := specified[prop]; ok {
			return strings.ToLower(v)
		}
		return defaultValue(tag, prop)
	}
	length := func(prop string) float64 {
		v, _ := parseLength(get(prop))
		return v
	}
	edges := func(prefix, suffix string) geom.Edges {
		return geom.Edges{
			Top:    length(prefix + "-top" + suffix),
			Right:  length(prefix + "-right" + suffix),
			Bottom: length(prefix + "-bottom" + suffix),
			Left:   length(prefix + "-left" + suffix),
		}
	}

	m := metrics{
		display:     get("display"),
		float:       get("float"),
		position:    get("position"),
		margin:      edges("margin", ""),
		padding:     edges("padding", ""),
		borderStyle: get("border-style"),
		borderColor: specified["border-color"],
		opacity:     1,
	}
	if m.borderStyle != "none" && m.borderStyle != "hidden" {
		m.border = edges("border", "-width")
	}
	m.width, m.hasW = parseLength(get("width"))
	m.height, m.hasH = parseLength(get("height"))
	m.left, _ = parseLength(get("left"))
	m.top, _ = parseLength(get("top"))
	if o, err := strconv.ParseFloat(get("opacity"), 64); err == nil {
		m.opacity = o
	}
	return m
}

// layoutEngine computes boxes for a whole document in one pass. Blocks stack
// vertically and take the available width; inline-level and floated elements
// flow left to right and wrap; absolutely positioned elements are placed at
// left/top relative to the page after the flow pass.
type layoutEngine struct {
	boxes map[*html.Node]Box
	order []*html.Node
	abs   []*html.Node
}

func layoutDocument(root *html.Node, width float64) (map[*html.Node]Box, []*html.Node, float64) {
	le := &layoutEngine{boxes: make(map[*html.Node]Box)}
	h := le.layoutChildren(root, geom.Point{}, width)

	for i := 0; i < len(le.abs); i++ {
		n := le.abs[i]
		m := readMetrics(n)
		w := m.width
		if !m.hasW {
			w = le.preferredWidth(n)
		}
		le.place(n, m, geom.Point{X: m.left, Y: m.top}, w)
	}
	return le.boxes, le.order, h
}

// layoutChildren lays out n's children inside a content box whose top-left
// corner is origin, returning the content height used.
func (le *layoutEngine) layoutChildren(n *html.Node, origin geom.Point, avail float64) float64 {
	y := origin.Y
	if ownText(n) != "" {
		y++
	}

	var (
		inLine       bool
		lineX, lineY float64
		lineH        float64
	)
	flush := func() {
		if inLine {
			y = lineY + lineH
			inLine = false
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		m := readMetrics(c)
		if m.display == "none" {
			continue
		}
		if m.outOfFlow() {
			le.abs = append(le.abs, c)
			continue
		}

		if m.inline() {
			w := m.width
			if !m.hasW {
				w = le.preferredWidth(c)
			}
			outerW := w + m.edgesH()
			if !inLine {
				inLine, lineX, lineY, lineH = true, origin.X, y, 0
			} else if lineX+outerW > origin.X+avail && lineX > origin.X {
				lineY += lineH
				lineX, lineH = origin.X, 0
			}
			outerH := le.place(c, m, geom.Point{X: lineX, Y: lineY}, w)
			lineX += outerW
			lineH = max(lineH, outerH)
			continue
		}

		flush()
		w := m.width
		if !m.hasW {
			w = max(0, avail-m.edgesH())
		}
		y += le.place(c, m, geom.Point{X: origin.X, Y: y}, w)
	}
	flush()
	return y - origin.Y
}

// place lays out c with its margin box at at and content width w, and
// returns the margin-box height.
func (le *layoutEngine) place(c *html.Node, m metrics, at geom.Point, w float64) float64 {
	if m.position == "relative" {
		at.X += m.left
		at.Y += m.top
	}
	border := geom.Point{X: at.X + m.margin.Left, Y: at.Y + m.margin.Top}
	content := geom.Point{
		X: border.X + m.border.Left + m.padding.Left,
		Y: border.Y + m.border.Top + m.padding.Top,
	}

	le.order = append(le.order, c)
	h := le.layoutChildren(c, content, w)
	if m.hasH {
		h = m.height
	}

	contentRect := geom.RectAt(content, geom.Size{W: w, H: h})
	borderRect := geom.Rect{
		Left:   contentRect.Left - m.padding.Left - m.border.Left,
		Top:    contentRect.Top - m.padding.Top - m.border.Top,
		Right:  contentRect.Right + m.padding.Right + m.border.Right,
		Bottom: contentRect.Bottom + m.padding.Bottom + m.border.Bottom,
	}
	le.boxes[c] = Box{
		Margin: geom.Rect{
			Left:   borderRect.Left - m.margin.Left,
			Top:    borderRect.Top - m.margin.Top,
			Right:  borderRect.Right + m.margin.Right,
			Bottom: borderRect.Bottom + m.margin.Bottom,
		},
		Border:      borderRect,
		Content:     contentRect,
		BorderWidth: m.border,
		Padding:     m.padding,
		BorderStyle: m.borderStyle,
		BorderColor: m.borderColor,
		Text:        ownText(c),
		Opacity:     m.opacity,
		Positioned:  m.outOfFlow(),
	}
	return h + m.edgesV()
}

// preferredWidth is the shrink-to-fit content width of n.
func (le *layoutEngine) preferredWidth(n *html.Node) float64 {
	w := float64(runewidth.StringWidth(ownText(n)))
	var line, widest float64
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		m := readMetrics(c)
		if m.display == "none" || m.outOfFlow() {
			continue
		}
		cw := m.width
		if !m.hasW {
			cw = le.preferredWidth(c)
		}
		outer := cw + m.edgesH()
		if m.inline() {
			line += outer
		} else {
			widest = max(widest, outer)
		}
	}
	return max(w, line, widest)
}
