package dom

import "testing"

func TestCSS(t *testing.T) {
	doc := MustParse(`<div id="d" style="margin: 1px 2px; PADDING-LEFT: 3; border: 1px dashed #672c4f; float: left; width: 6px">x</div>`+
		`<li id="l">y</li><span id="s">z</span>`, 40)

	tests := []struct {
		id       string
		property string
		want     string
	}{
		{"d", "margin-top", "1px"},
		{"d", "margin-right", "2px"},
		{"d", "margin-bottom", "1px"},
		{"d", "padding-left", "3px"},
		{"d", "padding-top", "0px"},
		{"d", "border-style", "dashed"},
		{"d", "border-left-width", "1px"},
		{"d", "border-color", "#672c4f"},
		{"d", "float", "left"},
		{"d", "width", "6px"},
		{"d", "height", "1px"},
		{"d", "display", "block"},
		{"l", "display", "block"},
		{"l", "border-top-width", "0px"},
		{"s", "display", "inline"},
		{"s", "position", "static"},
		{"s", "left", "auto"},
		{"s", "opacity", "1"},
		{"s", "cursor", "auto"},
		{"s", "unknown-prop", ""},
	}
	for _, tt := range tests {
		if got := doc.Find(tt.id).CSS(tt.property); got != tt.want {
			t.Errorf("#%s CSS(%q) = %q, want %q", tt.id, tt.property, got, tt.want)
		}
	}
}

func TestSetCSS(t *testing.T) {
	doc := MustParse(`<div id="d" style="color: red; cursor: pointer">x</div>`, 40)
	d := doc.Find("d")

	d.SetCSS("cursor", "grabbing")
	d.SetCSS("opacity", ".6")
	if got, _ := d.Attr("style"); got != "color: red; cursor: grabbing; opacity: .6" {
		t.Errorf("style = %q", got)
	}

	d.SetCSS("color", "")
	d.SetCSS("cursor", "")
	d.SetCSS("opacity", "")
	if got, ok := d.Attr("style"); ok {
		t.Errorf("style = %q, want attribute removed", got)
	}
}

func TestParseStyle(t *testing.T) {
	got := formatStyle(parseStyle(" Color : red ;; bogus; width:3px; :x; top: "))
	if want := "color: red; width: 3px"; got != want {
		t.Errorf("parseStyle round trip = %q, want %q", got, want)
	}
}

func TestExpandBorderDefaults(t *testing.T) {
	tests := []struct {
		value     string
		wantWidth string
		wantStyle string
	}{
		{"solid", "1px", "solid"},
		{"2px", "2px", "none"},
		{"red dotted 3px", "3px", "dotted"},
	}
	for _, tt := range tests {
		m := resolveStyle([]declaration{{property: "border", value: tt.value}})
		if m["border-top-width"] != tt.wantWidth || m["border-style"] != tt.wantStyle {
			t.Errorf("border %q = width %q style %q, want %q %q",
				tt.value, m["border-top-width"], m["border-style"], tt.wantWidth, tt.wantStyle)
		}
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12", 12, true},
		{"12px", 12, true},
		{" 1.5PX ", 1.5, true},
		{"auto", 0, false},
		{"2em", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseLength(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseLength(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
