package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/dragswitch/dragswitch/pkg/board"
	"github.com/dragswitch/dragswitch/pkg/dragswitch"
	"github.com/dragswitch/dragswitch/pkg/store"
)

func newTestModel(t *testing.T) (*boardModel, *store.FileStore) {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	b := board.Default()
	bm, err := newBoardModel(context.Background(), st, b, b)
	if err != nil {
		t.Fatalf("newBoardModel: %v", err)
	}
	return bm, st
}

// mouse builds a mouse message for board cell (x, y).
func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	msg := tea.MouseMsg{X: x, Y: y + headerLines, Action: action}
	if action == tea.MouseActionPress {
		msg.Button = tea.MouseButtonLeft
	}
	return msg
}

func update(bm *boardModel, msg tea.Msg) tea.Cmd {
	_, cmd := bm.Update(msg)
	return cmd
}

func TestBoardModelDragSaves(t *testing.T) {
	bm, st := newTestModel(t)

	// Write tests (todo, first card) goes under Fix layout (doing).
	update(bm, mouse(tea.MouseActionPress, 5, 3))
	update(bm, mouse(tea.MouseActionMotion, 5, 3))
	if bm.m.ds.State() != dragswitch.Dragging {
		t.Fatalf("State() = %s, want dragging", bm.m.ds.State())
	}
	update(bm, mouse(tea.MouseActionMotion, 30, 6))
	cmd := update(bm, mouse(tea.MouseActionRelease, 30, 6))
	if cmd == nil {
		t.Fatal("drop that changed the order returned no save command")
	}
	update(bm, cmd())
	if bm.err != nil {
		t.Fatalf("save failed: %v", bm.err)
	}

	want := map[string][]string{
		"todo":  {"review-docs", "tag-release"},
		"doing": {"fix-layout", "write-tests"},
		"done":  {"pick-stack", "sketch-ui"},
	}
	if diff := cmp.Diff(want, bm.m.snapshot()); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	arr, err := st.Get(context.Background(), "kanban")
	if err != nil || arr == nil {
		t.Fatalf("Get = %v, %v", arr, err)
	}
	if diff := cmp.Diff(want, arr.Containers); diff != "" {
		t.Errorf("saved order mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(bm.View(), "saved after 1 drops") {
		t.Errorf("status missing from view:\n%s", bm.View())
	}
}

func TestBoardModelClickDoesNotSave(t *testing.T) {
	bm, _ := newTestModel(t)

	update(bm, mouse(tea.MouseActionPress, 5, 3))
	if cmd := update(bm, mouse(tea.MouseActionRelease, 5, 3)); cmd != nil {
		t.Error("click without movement returned a save command")
	}
	if bm.drops != 1 {
		t.Errorf("drops = %d, want 1", bm.drops)
	}
}

func TestBoardModelWheelIgnored(t *testing.T) {
	bm, _ := newTestModel(t)
	msg := mouse(tea.MouseActionPress, 5, 3)
	msg.Button = tea.MouseButtonWheelDown
	update(bm, msg)
	if bm.m.ds.State() != dragswitch.Idle {
		t.Errorf("wheel press armed a drag: %s", bm.m.ds.State())
	}
}

func TestBoardModelReset(t *testing.T) {
	bm, _ := newTestModel(t)
	moved := bm.source.Arrange(map[string][]string{"done": {"write-tests"}})
	if err := bm.remount(moved); err != nil {
		t.Fatal(err)
	}

	cmd := update(bm, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd == nil {
		t.Fatal("reset returned no save command")
	}
	if diff := cmp.Diff(bm.source.Order(), bm.m.snapshot()); diff != "" {
		t.Errorf("reset order mismatch (-want +got):\n%s", diff)
	}
}

func TestBoardModelViewAndQuit(t *testing.T) {
	bm, _ := newTestModel(t)

	view := bm.View()
	for _, want := range []string{"Kanban", "Todo", "Write tests", "Fix layout", "Sketch UI"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	cmd := update(bm, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestMouseButton(t *testing.T) {
	tests := []struct {
		in   tea.MouseButton
		want string
	}{
		{tea.MouseButtonLeft, "primary"},
		{tea.MouseButtonRight, "secondary"},
		{tea.MouseButtonMiddle, "middle"},
		{tea.MouseButtonNone, "none"},
	}
	names := map[int]string{0: "none", 1: "primary", 2: "middle", 3: "secondary"}
	for _, tt := range tests {
		if got := names[int(mouseButton(tt.in))]; got != tt.want {
			t.Errorf("mouseButton(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
