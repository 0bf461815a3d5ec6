package dragswitch

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dragswitch/dragswitch/pkg/geom"
	"github.com/dragswitch/dragswitch/pkg/view"
)

func li(b Builder) *Config { return b("li") }

func TestDragDownPastLastItem(t *testing.T) {
	h := newHarness(t, oneList, "#a", li)

	h.press(5, 0.5)
	h.move(5, 0.5)
	// The placeholder is three rows tall (bordered), pushing i3 to y 4..5.
	h.move(5, 4.5)
	h.release(5, 4.5)

	want := [][]string{{"i2", "i3", "i1"}}
	if diff := cmp.Diff(want, h.order()); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"i2", "i3", "i1"}, h.children("a")); diff != "" {
		t.Errorf("document order mismatch (-want +got):\n%s", diff)
	}
	if h.starts != 1 || h.ends != 1 {
		t.Errorf("callbacks: starts=%d ends=%d, want 1 and 1", h.starts, h.ends)
	}
	if got := h.ds.State(); got != Idle {
		t.Errorf("State() = %v, want idle", got)
	}
}

func TestClickFiresDragEndOnly(t *testing.T) {
	rec := recordHooks(t)
	h := newHarness(t, oneList, "#a", li)
	before, _ := h.el("i1").Attr("style")

	h.press(5, 0.5)
	if got := h.ds.State(); got != Armed {
		t.Fatalf("State() after press = %v, want armed", got)
	}
	h.release(5, 0.5)

	if h.starts != 0 || h.ends != 1 {
		t.Errorf("callbacks: starts=%d ends=%d, want 0 and 1", h.starts, h.ends)
	}
	if diff := cmp.Diff([]string{"i1", "i2", "i3"}, h.children("a")); diff != "" {
		t.Errorf("a placeholder was left behind (-want +got):\n%s", diff)
	}
	if p := h.ds.Active().Placeholder(); p != nil {
		t.Errorf("Placeholder() = %v, want none created", p)
	}
	if after, _ := h.el("i1").Attr("style"); after != before {
		t.Errorf("style = %q, want %q", after, before)
	}
	if diff := cmp.Diff([]bool{false}, rec.moved); diff != "" {
		t.Errorf("OnDragEnd moved flags (-want +got):\n%s", diff)
	}
}

func TestDropOnOwnSlotKeepsOrder(t *testing.T) {
	h := newHarness(t, oneList, "#a", li)

	h.press(5, 0.5)
	h.move(5, 0.5)
	h.move(6, 0.5)
	h.release(6, 0.5)

	if diff := cmp.Diff([][]string{{"i1", "i2", "i3"}}, h.order()); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"i1", "i2", "i3"}, h.children("a")); diff != "" {
		t.Errorf("document order mismatch (-want +got):\n%s", diff)
	}
}

func TestDragStartStylesDraggy(t *testing.T) {
	h := newHarness(t, oneList, "#a", li)
	i1 := h.el("i1")

	h.press(5, 0.5)
	h.move(5, 0.5)

	tests := []struct {
		property string
		want     string
	}{
		{"position", "absolute"},
		{"left", "0px"},
		{"top", "0px"},
		{"cursor", "grabbing"},
		{"opacity", ".6"},
		{"width", "20px"},
		{"height", "1px"},
	}
	for _, tt := range tests {
		if got := i1.CSS(tt.property); got != tt.want {
			t.Errorf("CSS(%q) = %q, want %q", tt.property, got, tt.want)
		}
	}

	h.move(7, 4.5)
	if got := i1.CSS("left"); got != "2px" {
		t.Errorf("left after move = %q, want 2px", got)
	}
	if got := i1.CSS("top"); got != "4px" {
		t.Errorf("top after move = %q, want 4px", got)
	}
}

func TestStyleRestoredAfterDrop(t *testing.T) {
	const markup = `<ul id="a" style="width: 20px"><li id="i1" style="color: red">one</li><li id="i2">two</li></ul>`
	h := newHarness(t, markup, "#a", li)
	i1 := h.el("i1")
	want, _ := i1.Attr("style")
	if want != "color: red; cursor: pointer" {
		t.Fatalf("registered style = %q", want)
	}

	h.press(5, 0.5)
	h.move(5, 0.5)
	h.move(5, 3.5)
	h.release(5, 3.5)

	if got, _ := i1.Attr("style"); got != want {
		t.Errorf("style = %q, want %q", got, want)
	}

	i1.RemoveAttr("style")
	h.press(5, 1.5)
	h.move(5, 1.5)
	h.release(5, 1.5)
	if got, ok := i1.Attr("style"); ok {
		t.Errorf("style = %q, want attribute removed", got)
	}
}

func TestPlaceholderMimicsDraggy(t *testing.T) {
	const markup = `<div id="a" style="width: 30px">` +
		`<div id="i1" style="float: left; margin: 1px 2px; padding-left: 1px; width: 5px">one</div>` +
		`<div id="i2" style="float: left; width: 5px">two</div></div>`
	var hooked []view.Element
	h := newHarness(t, markup, "#a", func(b Builder) *Config {
		return b("div").Placeholder(func(p view.Element) { hooked = append(hooked, p) })
	})

	h.press(3, 1.5)
	h.move(3, 1.5)

	ph := h.ds.Active().Placeholder()
	if ph == nil {
		t.Fatal("no placeholder after drag start")
	}
	if len(hooked) != 1 || hooked[0] != ph {
		t.Errorf("placeholder hook got %d calls, want one with the placeholder", len(hooked))
	}

	tests := []struct {
		property string
		want     string
	}{
		{"float", "left"},
		{"margin-top", "1px"},
		{"margin-left", "2px"},
		{"padding-left", "1px"},
		{"padding-right", "0px"},
		{"border-style", "dashed"},
		{"border-color", "#672c4f"},
		{"border-top-width", "1px"},
		{"width", "5px"},
		{"height", "1px"},
	}
	for _, tt := range tests {
		if got := ph.CSS(tt.property); got != tt.want {
			t.Errorf("placeholder CSS(%q) = %q, want %q", tt.property, got, tt.want)
		}
	}
	if got, _ := ph.Attr("style"); got == "" {
		t.Error("placeholder has no inline style")
	}
	// div draggies keep their own sizing.
	if style, _ := h.el("i1").Attr("style"); strings.Contains(style, "height") {
		t.Errorf("div draggy got a pinned height: %q", style)
	}
	if diff := cmp.Diff([]string{"", "i1", "i2"}, h.children("a")); diff != "" {
		t.Errorf("placeholder not inserted before draggy (-want +got):\n%s", diff)
	}
}

func TestPlaceholderMovesOncePerItemEntered(t *testing.T) {
	rec := recordHooks(t)
	// A hidden placeholder leaves the layout alone, so items stay under
	// the pointer after the placeholder moves.
	h := newHarness(t, oneList, "#a", func(b Builder) *Config {
		return b("li").Placeholder(func(p view.Element) { p.SetCSS("display", "none") })
	})

	h.press(5, 0.5)
	h.move(5, 0.5)
	// i1 is out of flow: i2 now spans y 0..1 and i3 1..2.
	h.move(5, 1.5)
	h.move(6, 1.5)
	h.move(7, 1.6)
	if rec.moves != 1 {
		t.Fatalf("placeholder moves over i3 = %d, want 1", rec.moves)
	}
	if diff := cmp.Diff([][]string{{"i2", "i3", "i1"}}, h.order()); diff != "" {
		t.Errorf("order while over i3 (-want +got):\n%s", diff)
	}

	h.move(5, 0.5)
	if rec.moves != 2 {
		t.Fatalf("placeholder moves after entering i2 = %d, want 2", rec.moves)
	}
	h.release(5, 0.5)

	if diff := cmp.Diff([][]string{{"i1", "i2", "i3"}}, h.order()); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestReenteringPreviousItemRepositions(t *testing.T) {
	rec := recordHooks(t)
	h := newHarness(t, oneList, "#a", li)

	h.press(5, 0.5)
	h.move(5, 0.5)
	// Over i2 (y 3..4 after the placeholder went in): placeholder goes after it.
	h.move(5, 3.5)
	if diff := cmp.Diff([][]string{{"i2", "i1", "i3"}}, h.order()); diff != "" {
		t.Fatalf("order over i2 (-want +got):\n%s", diff)
	}
	// The placeholder now spans y 1..4: that row is the draggy's own.
	h.move(5, 3.6)
	// i2 moved up to y 0..1; entering it again moves the placeholder back.
	h.move(5, 0.5)
	h.release(5, 0.5)

	if rec.moves != 2 {
		t.Errorf("placeholder moves = %d, want 2", rec.moves)
	}
	if diff := cmp.Diff([][]string{{"i1", "i2", "i3"}}, h.order()); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestDragAcrossContainers(t *testing.T) {
	between := func(b Builder) *Config { return b("li").Config(Options{Between: true}) }

	tests := []struct {
		name  string
		moves []geom.Point
		wantA []string
		wantB []string
	}{
		{
			// b spans y 4..8 once placeholders are in; i3 is at 4..5.
			name:  "over first item of b",
			moves: []geom.Point{{X: 5, Y: 4.5}},
			wantA: []string{"i2"},
			wantB: []string{"i1", "i3"},
		},
		{
			name:  "empty area of b",
			moves: []geom.Point{{X: 5, Y: 7.5}},
			wantA: []string{"i2"},
			wantB: []string{"i3", "i1"},
		},
		{
			name:  "outside every container",
			moves: []geom.Point{{X: 50, Y: 50}},
			wantA: []string{"i2", "i1"},
			wantB: []string{"i3"},
		},
		{
			name:  "out and back over i2",
			moves: []geom.Point{{X: 50, Y: 50}, {X: 5, Y: 0.5}},
			wantA: []string{"i1", "i2"},
			wantB: []string{"i3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, twoLists, "#a, #b", between)
			if !h.ds.Options().Between {
				t.Fatal("Between disabled with two containers")
			}

			h.press(5, 0.5)
			h.move(5, 0.5)
			for _, p := range tt.moves {
				h.move(p.X, p.Y)
			}
			last := tt.moves[len(tt.moves)-1]
			h.release(last.X, last.Y)

			want := [][]string{tt.wantA, tt.wantB}
			if diff := cmp.Diff(want, h.order()); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantA, h.children("a")); diff != "" {
				t.Errorf("a children mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantB, h.children("b")); diff != "" {
				t.Errorf("b children mismatch (-want +got):\n%s", diff)
			}
			for _, c := range h.ds.Containers() {
				if c.PlaceholderIndex() != -1 {
					t.Errorf("%s PlaceholderIndex() = %d after drop, want -1",
						describe(c.Element()), c.PlaceholderIndex())
				}
			}
		})
	}
}

func TestContainerChangeHook(t *testing.T) {
	rec := recordHooks(t)
	h := newHarness(t, twoLists, "#a, #b", func(b Builder) *Config {
		return b("li").Config(Options{Between: true})
	})

	h.press(5, 0.5)
	h.move(5, 0.5)
	h.move(5, 7.5)
	h.move(5, 7.6)
	h.release(5, 7.6)

	if diff := cmp.Diff([][2]string{{"#a", "#b"}}, rec.changes); diff != "" {
		t.Errorf("container changes (-want +got):\n%s", diff)
	}
	if got := h.ds.Active().Element(); got != view.Element(h.el("b")) {
		t.Errorf("Active() = %s, want #b", describe(got))
	}
}

func TestBetweenForcedOffWithOneContainer(t *testing.T) {
	h := newHarness(t, oneList, "#a", func(b Builder) *Config {
		return b("li").Config(Options{Between: true})
	})
	if h.ds.Options().Between {
		t.Fatal("Between still enabled with a single container")
	}

	h.press(5, 0.5)
	h.move(5, 0.5)
	h.move(50, 50)
	h.release(50, 50)

	if diff := cmp.Diff([]string{"i1", "i2", "i3"}, h.children("a")); diff != "" {
		t.Errorf("document order mismatch (-want +got):\n%s", diff)
	}

	h.ds.cfg.Config(Options{Between: true})
	if h.ds.Options().Between {
		t.Error("Config() re-enabled Between with a single container")
	}
}

func TestSecondPressIsRejected(t *testing.T) {
	h := newHarness(t, oneList, "#a", li)

	h.press(5, 0.5)
	h.press(5, 1.5)
	if h.ds.State() != Armed {
		t.Fatalf("State() = %v, want armed", h.ds.State())
	}
	h.move(5, 1.5)
	h.press(5, 2.5)
	h.move(5, 4.5)
	h.release(5, 4.5)

	if diff := cmp.Diff([][]string{{"i2", "i3", "i1"}}, h.order()); diff != "" {
		t.Errorf("order mismatch, the second press took over (-want +got):\n%s", diff)
	}
	if h.ends != 1 {
		t.Errorf("drag-end callbacks = %d, want 1", h.ends)
	}
}

func TestNonPrimaryButtonIgnored(t *testing.T) {
	h := newHarness(t, oneList, "#a", li)

	h.doc.PointerDown(geom.Point{X: 5, Y: 0.5}, view.ButtonSecondary)
	if h.ds.State() != Idle {
		t.Errorf("State() = %v, want idle", h.ds.State())
	}
	h.doc.PointerUp(geom.Point{X: 5, Y: 0.5}, view.ButtonSecondary)
	if h.ends != 0 {
		t.Errorf("drag-end callbacks = %d, want 0", h.ends)
	}
}

func TestPressOutsideItemsIgnored(t *testing.T) {
	const markup = `<ul id="a" style="width: 20px; padding-bottom: 2px"><li id="i1">one</li></ul><p id="x">text</p>`
	h := newHarness(t, markup, "#a", li)

	h.press(5, 2)   // the list's padding
	h.press(2, 3.5) // outside the list
	if h.ds.State() != Idle {
		t.Errorf("State() = %v, want idle", h.ds.State())
	}
}

func TestHandleRestrictsPress(t *testing.T) {
	const markup = `<ul id="a" style="width: 20px">` +
		`<li id="i1"><b class="grip">=</b></li><li id="i2"><b class="grip">=</b></li></ul>`
	h := newHarness(t, markup, "#a", func(b Builder) *Config {
		return b("li").Config(Options{Handle: ".grip"})
	})

	h.press(10, 0.5)
	if h.ds.State() != Idle {
		t.Fatalf("press outside the handle armed the session")
	}
	h.release(10, 0.5)

	h.press(0.5, 0.5)
	if h.ds.State() != Armed {
		t.Fatalf("State() = %v after pressing the handle, want armed", h.ds.State())
	}
	h.release(0.5, 0.5)
}

func TestDetachAfterRepositionCancelsDrag(t *testing.T) {
	tests := []struct {
		name      string
		detach    string
		moveFirst bool
		wantItems []string
	}{
		{"hovered item on next move", "i3", true, []string{"i1", "i2"}},
		{"other item at release", "i2", false, []string{"i1", "i3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := recordHooks(t)
			h := newHarness(t, oneList, "#a", li)

			h.press(5, 0.5)
			h.move(5, 0.5)
			h.move(5, 4.5)
			if diff := cmp.Diff([][]string{{"i2", "i3", "i1"}}, h.order()); diff != "" {
				t.Fatalf("order over i3 (-want +got):\n%s", diff)
			}
			h.el(tt.detach).Remove()
			if tt.moveFirst {
				h.move(5, 4.6)
				if h.ds.State() != Idle {
					t.Fatalf("State() = %v after move, want idle", h.ds.State())
				}
			}
			h.release(5, 4.6)

			if h.ds.State() != Idle {
				t.Fatalf("State() = %v, want idle", h.ds.State())
			}
			if h.ends != 1 || len(rec.cancels) != 1 {
				t.Errorf("ends=%d cancels=%v, want one of each", h.ends, rec.cancels)
			}
			if diff := cmp.Diff([][]string{tt.wantItems}, h.order()); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantItems, h.children("a")); diff != "" {
				t.Errorf("document order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDetachCancelsDrag(t *testing.T) {
	tests := []struct {
		name      string
		detach    string
		wantItems []string
	}{
		{"draggy", "i1", []string{"i2", "i3"}},
		{"hovered item", "i3", []string{"i1", "i2"}},
		{"container", "a", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := recordHooks(t)
			h := newHarness(t, oneList, "#a", li)
			i1 := h.el("i1")
			style, _ := i1.Attr("style")

			h.press(5, 0.5)
			h.move(5, 0.5)
			h.el(tt.detach).Remove()
			h.move(5, 4.5)

			if h.ds.State() != Idle {
				t.Fatalf("State() = %v, want idle", h.ds.State())
			}
			if h.ends != 1 || len(rec.cancels) != 1 {
				t.Errorf("ends=%d cancels=%v, want one of each", h.ends, rec.cancels)
			}
			if got, _ := i1.Attr("style"); got != style {
				t.Errorf("draggy style = %q, want %q", got, style)
			}
			if diff := cmp.Diff([][]string{tt.wantItems}, h.order(), cmpEmptySlices); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
			if ph := h.ds.Containers()[0].Placeholder(); ph != nil && ph.Attached() {
				t.Error("placeholder still in the document")
			}

			// Further pointer traffic is inert.
			h.move(5, 1.5)
			h.release(5, 1.5)
			if h.ends != 1 {
				t.Errorf("drag-end callbacks = %d after cancel, want 1", h.ends)
			}
		})
	}
}
