package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/dragswitch/dragswitch/pkg/board"
	"github.com/dragswitch/dragswitch/pkg/dom"
	"github.com/dragswitch/dragswitch/pkg/dragswitch"
	"github.com/dragswitch/dragswitch/pkg/geom"
	"github.com/dragswitch/dragswitch/pkg/store"
	"github.com/dragswitch/dragswitch/pkg/view"
)

// headerLines is the number of terminal rows above the painted board.
const headerLines = 2

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	boardHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	boardErrStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Mounting
// =============================================================================

// mounted is a board rendered into a document with the drag engine attached.
type mounted struct {
	board *board.Board
	doc   *dom.Document
	ds    *dragswitch.Dragswitch
}

// mount renders b and wires a drag engine over it. onDrop runs after every
// release of a pressed item.
func mount(ctx context.Context, b *board.Board, logger *log.Logger, onDrop func()) (*mounted, error) {
	doc, err := dom.Parse(b.HTML(), float64(b.Width))
	if err != nil {
		return nil, err
	}
	ds, err := dragswitch.New(doc, b.ContextSelector(), func(build dragswitch.Builder) {
		build(b.ItemSelectors()...).
			Config(dragswitch.Options{Between: b.Options.Between, Handle: b.Options.Handle}).
			DragEnd(onDrop)
	}, dragswitch.WithLogger(logger), dragswitch.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	doc.Flush()
	return &mounted{board: b, doc: doc, ds: ds}, nil
}

// snapshot returns the current order as container id to item ids.
func (m *mounted) snapshot() map[string][]string {
	out := make(map[string][]string)
	order := m.ds.Order()
	for i, c := range m.ds.Containers() {
		id, _ := c.Element().Attr("id")
		ids := make([]string, 0, len(order[i]))
		for _, it := range order[i] {
			if v, ok := it.Attr("id"); ok {
				ids = append(ids, v)
			}
		}
		out[id] = ids
	}
	return out
}

func sameOrder(a, b map[string][]string) bool {
	return maps.EqualFunc(a, b, slices.Equal[[]string])
}

// =============================================================================
// boardModel - Interactive board
// =============================================================================

type savedMsg struct{ err error }

// boardModel is the bubbletea model of the run command. Mouse input is
// translated to pointer events at the centre of the cell under the cursor.
type boardModel struct {
	ctx    context.Context
	logger *log.Logger
	store  store.Store
	source *board.Board

	m     *mounted
	saved map[string][]string
	dirty bool

	drops  int
	status string
	err    error
}

func newBoardModel(ctx context.Context, st store.Store, source, current *board.Board) (*boardModel, error) {
	bm := &boardModel{
		ctx:    ctx,
		logger: loggerFromContext(ctx),
		store:  st,
		source: source,
	}
	if err := bm.remount(current); err != nil {
		return nil, err
	}
	return bm, nil
}

func (bm *boardModel) remount(b *board.Board) error {
	if bm.m != nil {
		bm.m.ds.Close()
	}
	m, err := mount(bm.ctx, b, bm.logger, bm.onDrop)
	if err != nil {
		return err
	}
	bm.m = m
	bm.saved = m.snapshot()
	return nil
}

func (bm *boardModel) onDrop() {
	bm.drops++
	if !sameOrder(bm.saved, bm.m.snapshot()) {
		bm.dirty = true
	}
}

// save persists the current order in the background.
func (bm *boardModel) save() tea.Cmd {
	order := bm.m.snapshot()
	bm.saved = order
	bm.dirty = false
	arr := store.NewArrangement(bm.m.board.ID, order)
	ctx, st := bm.ctx, bm.store
	return func() tea.Msg {
		return savedMsg{err: st.Set(ctx, arr)}
	}
}

func (bm *boardModel) Init() tea.Cmd {
	return nil
}

func (bm *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return bm, tea.Quit
		case "r":
			if bm.m.ds.State() != dragswitch.Idle {
				return bm, nil
			}
			if err := bm.remount(bm.source); err != nil {
				bm.err = err
				return bm, nil
			}
			bm.status = "reset to board file order"
			return bm, bm.save()
		}
	case tea.MouseMsg:
		bm.pointer(msg)
		if bm.dirty {
			return bm, bm.save()
		}
	case savedMsg:
		bm.err = msg.err
		if msg.err == nil {
			bm.status = fmt.Sprintf("saved after %d drops", bm.drops)
		}
	}
	return bm, nil
}

// pointer dispatches a mouse message to the document.
func (bm *boardModel) pointer(msg tea.MouseMsg) {
	p := geom.Point{X: float64(msg.X) + 0.5, Y: float64(msg.Y-headerLines) + 0.5}
	doc := bm.m.doc
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			return
		}
		doc.PointerDown(p, mouseButton(msg.Button))
	case tea.MouseActionMotion:
		doc.PointerMove(p)
	case tea.MouseActionRelease:
		doc.PointerUp(p, view.ButtonPrimary)
	}
	doc.Flush()
}

func mouseButton(b tea.MouseButton) view.Button {
	switch b {
	case tea.MouseButtonLeft:
		return view.ButtonPrimary
	case tea.MouseButtonMiddle:
		return view.ButtonMiddle
	case tea.MouseButtonRight:
		return view.ButtonSecondary
	}
	return view.ButtonNone
}

func (bm *boardModel) View() string {
	var b strings.Builder

	title := bm.m.board.Title
	if title == "" {
		title = bm.m.board.ID
	}
	b.WriteString(boardTitleStyle.Render(title))
	b.WriteString("  ")
	b.WriteString(boardHelpStyle.Render("drag items with the mouse  r reset  q quit"))
	b.WriteString("\n\n")

	b.WriteString(paint(bm.m.doc, bm.m.board.Width).String())
	b.WriteString("\n\n")

	switch {
	case bm.err != nil:
		b.WriteString(boardErrStyle.Render(iconError + " " + bm.err.Error()))
	case bm.m.ds.State() != dragswitch.Idle:
		b.WriteString(boardHelpStyle.Render(bm.m.ds.State().String()))
	default:
		b.WriteString(boardHelpStyle.Render(bm.status))
	}
	b.WriteString("\n")
	return b.String()
}
