// Package board loads drag boards from TOML files.
//
// A board is a set of containers holding items. It renders to the markup the
// drag engine runs on and knows which selectors to hand it:
//
//	id = "kanban"
//	title = "Kanban"
//	width = 80
//
//	[options]
//	between = true
//
//	[[container]]
//	id = "todo"
//	title = "Todo"
//	style = "float: left; width: 24px; border: 1px solid"
//
//	[[container.item]]
//	id = "c1"
//	label = "Write tests"
package board

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dragswitch/dragswitch/pkg/errors"
)

// Defaults applied by [Board.Normalize].
const (
	DefaultWidth   = 80
	DefaultTag     = "ul"
	DefaultItemTag = "li"
)

// Board is the decoded form of a board file.
type Board struct {
	ID         string      `toml:"id"`
	Title      string      `toml:"title"`
	Width      int         `toml:"width"`
	Options    Options     `toml:"options"`
	Containers []Container `toml:"container"`
}

// Options mirror the drag engine options.
type Options struct {
	Between bool   `toml:"between"`
	Handle  string `toml:"handle"`
}

// Container is one drop region.
type Container struct {
	ID      string `toml:"id"`
	Title   string `toml:"title"`
	Class   string `toml:"class"`
	Tag     string `toml:"tag"`
	ItemTag string `toml:"item_tag"`
	Style   string `toml:"style"`
	Items   []Item `toml:"item"`
}

// Item is one draggable entry.
type Item struct {
	ID    string `toml:"id"`
	Label string `toml:"label"`
	Class string `toml:"class"`
	Style string `toml:"style"`
}

// Load reads and validates a board file.
func Load(path string) (*Board, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeBoardNotFound, err, "board %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "read board %s", path)
	}
	return Parse(data)
}

// Parse decodes, normalizes and validates board TOML.
func Parse(data []byte) (*Board, error) {
	var b Board
	md, err := toml.Decode(string(data), &b)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "decode board")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidBoard, "unknown keys: %s", strings.Join(keys, ", "))
	}
	b.Normalize()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Normalize fills in defaults.
func (b *Board) Normalize() {
	if b.Width <= 0 {
		b.Width = DefaultWidth
	}
	for i := range b.Containers {
		c := &b.Containers[i]
		if c.Tag == "" {
			c.Tag = DefaultTag
		}
		if c.ItemTag == "" {
			c.ItemTag = DefaultItemTag
		}
	}
}

// Validate checks identifiers and selectors.
func (b *Board) Validate() error {
	if err := errors.ValidateID(b.ID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidBoard, err, "board id")
	}
	if len(b.Containers) == 0 {
		return errors.New(errors.ErrCodeInvalidBoard, "board %s has no containers", b.ID)
	}
	if b.Options.Handle != "" {
		if err := errors.ValidateSelector(b.Options.Handle); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidBoard, err, "handle")
		}
	}

	seen := make(map[string]string)
	claim := func(id, what string) error {
		if err := errors.ValidateID(id); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidBoard, err, "%s id", what)
		}
		if prev, dup := seen[id]; dup {
			return errors.New(errors.ErrCodeInvalidBoard, "duplicate id %q (%s and %s)", id, prev, what)
		}
		seen[id] = what
		return nil
	}

	for _, c := range b.Containers {
		if err := claim(c.ID, "container"); err != nil {
			return err
		}
		for _, tag := range []string{c.Tag, c.ItemTag} {
			if atom.Lookup([]byte(tag)) == 0 {
				return errors.New(errors.ErrCodeInvalidBoard, "container %s: unknown tag %q", c.ID, tag)
			}
		}
		for _, it := range c.Items {
			if err := claim(it.ID, "item in "+c.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// ContextSelector selects every container of the board.
func (b *Board) ContextSelector() string {
	ids := make([]string, len(b.Containers))
	for i, c := range b.Containers {
		ids[i] = "#" + c.ID
	}
	return strings.Join(ids, ", ")
}

// ItemSelectors returns one item selector per container, in order.
func (b *Board) ItemSelectors() []string {
	out := make([]string, len(b.Containers))
	for i, c := range b.Containers {
		out[i] = c.ItemTag
	}
	return out
}

// Item looks up an item by id.
func (b *Board) Item(id string) (Item, bool) {
	for _, c := range b.Containers {
		for _, it := range c.Items {
			if it.ID == id {
				return it, true
			}
		}
	}
	return Item{}, false
}

// Order returns the item ids of every container.
func (b *Board) Order() map[string][]string {
	out := make(map[string][]string, len(b.Containers))
	for _, c := range b.Containers {
		ids := make([]string, len(c.Items))
		for i, it := range c.Items {
			ids[i] = it.ID
		}
		out[c.ID] = ids
	}
	return out
}

// Arrange returns a copy of the board with items moved to match order, a
// map from container id to item ids. Unknown ids are ignored; items order
// does not mention stay in their container after the listed ones.
func (b *Board) Arrange(order map[string][]string) *Board {
	out := *b
	out.Containers = make([]Container, len(b.Containers))

	placed := make(map[string]bool)
	for i, c := range b.Containers {
		nc := c
		nc.Items = nil
		for _, id := range order[c.ID] {
			if it, ok := b.Item(id); ok && !placed[id] {
				nc.Items = append(nc.Items, it)
				placed[id] = true
			}
		}
		out.Containers[i] = nc
	}
	for i, c := range b.Containers {
		for _, it := range c.Items {
			if !placed[it.ID] {
				out.Containers[i].Items = append(out.Containers[i].Items, it)
				placed[it.ID] = true
			}
		}
	}
	return &out
}

// HTML renders the board as markup: one element per container, titled by its
// text, with one child per item.
func (b *Board) HTML() string {
	var sb strings.Builder
	for _, c := range b.Containers {
		n := element(c.Tag, c.ID, c.Class, c.Style)
		if c.Title != "" {
			n.AppendChild(&html.Node{Type: html.TextNode, Data: c.Title})
		}
		for _, it := range c.Items {
			child := element(c.ItemTag, it.ID, it.Class, it.Style)
			child.AppendChild(&html.Node{Type: html.TextNode, Data: it.Label})
			n.AppendChild(child)
		}
		_ = html.Render(&sb, n)
	}
	return sb.String()
}

func element(tag, id, class, style string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for _, a := range [][2]string{{"id", id}, {"class", class}, {"style", style}} {
		if a[1] != "" {
			n.Attr = append(n.Attr, html.Attribute{Key: a[0], Val: a[1]})
		}
	}
	return n
}

// Encode writes the board back to TOML.
func (b *Board) Encode() ([]byte, error) {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(b); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode board")
	}
	return []byte(sb.String()), nil
}
