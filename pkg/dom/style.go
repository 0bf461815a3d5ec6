package dom

import (
	"strconv"
	"strings"
)

// declaration is one "property: value" pair of an inline style attribute.
type declaration struct {
	property string
	value    string
}

// parseStyle splits an inline style attribute into declarations, keeping
// their order. Property names are lower-cased; malformed entries are skipped.
func parseStyle(attr string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(attr, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if prop == "" || value == "" {
			continue
		}
		decls = append(decls, declaration{property: prop, value: value})
	}
	return decls
}

// formatStyle is the inverse of parseStyle.
func formatStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.property+": "+d.value)
	}
	return strings.Join(parts, "; ")
}

// setDeclaration replaces prop in place, appends it, or removes it when value
// is empty.
func setDeclaration(decls []declaration, prop, value string) []declaration {
	prop = strings.ToLower(strings.TrimSpace(prop))
	value = strings.TrimSpace(value)
	out := decls[:0:0]
	found := false
	for _, d := range decls {
		if d.property != prop {
			out = append(out, d)
			continue
		}
		if value != "" && !found {
			out = append(out, declaration{property: prop, value: value})
		}
		found = true
	}
	if !found && value != "" {
		out = append(out, declaration{property: prop, value: value})
	}
	return out
}

// resolveStyle expands shorthands and applies declarations in order so later
// declarations win, returning the specified longhand values.
func resolveStyle(decls []declaration) map[string]string {
	m := make(map[string]string, len(decls))
	for _, d := range decls {
		switch d.property {
		case "margin", "padding":
			expandBox(m, d.property, "", d.value)
		case "border-width":
			expandBox(m, "border", "-width", d.value)
		case "border":
			expandBorder(m, d.value)
		default:
			m[d.property] = d.value
		}
	}
	return m
}

// expandBox applies the CSS 1-to-4 value shorthand rule.
func expandBox(m map[string]string, prefix, suffix, value string) {
	f := strings.Fields(value)
	var top, right, bottom, left string
	switch len(f) {
	case 1:
		top, right, bottom, left = f[0], f[0], f[0], f[0]
	case 2:
		top, right, bottom, left = f[0], f[1], f[0], f[1]
	case 3:
		top, right, bottom, left = f[0], f[1], f[2], f[1]
	case 4:
		top, right, bottom, left = f[0], f[1], f[2], f[3]
	default:
		return
	}
	m[prefix+"-top"+suffix] = top
	m[prefix+"-right"+suffix] = right
	m[prefix+"-bottom"+suffix] = bottom
	m[prefix+"-left"+suffix] = left
}

var borderStyles = map[string]bool{
	"none": true, "solid": true, "dashed": true, "dotted": true, "double": true,
	"hidden": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

// expandBorder handles "border: <width> <style> <color>" in any order.
func expandBorder(m map[string]string, value string) {
	width, style, color := "", "", ""
	for _, tok := range strings.Fields(value) {
		switch {
		case borderStyles[strings.ToLower(tok)]:
			style = strings.ToLower(tok)
		case isLength(tok):
			width = tok
		default:
			color = tok
		}
	}
	if style == "" {
		style = "none"
	}
	if width == "" {
		width = "1px"
	}
	for _, side := range []string{"top", "right", "bottom", "left"} {
		m["border-"+side+"-width"] = width
	}
	m["border-style"] = style
	if color != "" {
		m["border-color"] = color
	}
}

func isLength(s string) bool {
	_, ok := parseLength(s)
	return ok
}

// parseLength parses "12", "12px" or "1.5px". Other units and keywords such
// as "auto" are not lengths.
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSuffix(s, "px")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// formatPx renders a length the way computed styles report it.
func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// blockTags get display:block by default; everything else is inline.
var blockTags = map[string]bool{
	"div": true, "p": true, "ul": true, "ol": true, "li": true, "section": true,
	"article": true, "header": true, "footer": true, "main": true, "nav": true,
	"body": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"form": true, "table": true, "tr": true,
}

// defaultValue returns the initial computed value of a property for tag.
func defaultValue(tag, prop string) string {
	switch prop {
	case "display":
		if blockTags[tag] {
			return "block"
		}
		return "inline"
	case "float":
		return "none"
	case "position":
		return "static"
	case "left", "top", "right", "bottom":
		return "auto"
	case "opacity":
		return "1"
	case "cursor":
		return "auto"
	case "border-style":
		return "none"
	case "margin-top", "margin-right", "margin-bottom", "margin-left",
		"padding-top", "padding-right", "padding-bottom", "padding-left",
		"border-top-width", "border-right-width", "border-bottom-width", "border-left-width":
		return "0px"
	}
	return ""
}

// normalizeValue rewrites lengths into the "Npx" form computed styles use.
func normalizeValue(prop, v string) string {
	switch {
	case strings.HasPrefix(prop, "margin-"), strings.HasPrefix(prop, "padding-"),
		strings.HasPrefix(prop, "border-") && strings.HasSuffix(prop, "-width"),
		prop == "width", prop == "height", prop == "left", prop == "top":
		if n, ok := parseLength(v); ok {
			return formatPx(n)
		}
	}
	return v
}
