package dragswitch

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/dragswitch/dragswitch/pkg/errors"
	"github.com/dragswitch/dragswitch/pkg/view"
)

// Options are the recognized configuration settings.
type Options struct {
	// Handle restricts presses to elements matching this selector inside an
	// item. Empty means the whole item is a handle.
	Handle string

	// Between enables moving items across containers. It is forced off when
	// fewer than two containers are registered.
	Between bool
}

// DefaultOptions is what [Config.Config] merges over.
var DefaultOptions = Options{}

// Builder pairs item selectors with the context selectors and returns the
// configuration chain. With no selectors, items are "div" children.
type Builder func(selectors ...string) *Config

// Config is the chainable configuration surface handed out by a [Builder].
type Config struct {
	d           *Dragswitch
	dragStart   []func()
	dragEnd     []func()
	placeholder func(view.Element)
}

// DragStart registers fn to run when a drag starts. Callbacks run in
// registration order; nil is ignored.
func (c *Config) DragStart(fn func()) *Config {
	if fn != nil {
		c.dragStart = append(c.dragStart, fn)
	}
	return c
}

// DragEnd registers fn to run when the pointer is released after pressing an
// item, whether or not it moved.
func (c *Config) DragEnd(fn func()) *Config {
	if fn != nil {
		c.dragEnd = append(c.dragEnd, fn)
	}
	return c
}

// Config replaces the active options with o merged over [DefaultOptions].
func (c *Config) Config(o Options) *Config {
	c.d.configure(o)
	return c
}

// Placeholder sets the hook that styles every newly prepared placeholder.
func (c *Config) Placeholder(fn func(view.Element)) *Config {
	if fn != nil {
		c.placeholder = fn
	}
	return c
}

// Option configures a [Dragswitch] at construction.
type Option func(*Dragswitch)

// WithLogger sets the logger used for debug tracing of the session.
func WithLogger(l *log.Logger) Option {
	return func(d *Dragswitch) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithContext sets the context passed to observability hooks.
func WithContext(ctx context.Context) Option {
	return func(d *Dragswitch) {
		if ctx != nil {
			d.ctx = ctx
		}
	}
}

// Dragswitch makes the items of a set of containers reorderable by drag.
type Dragswitch struct {
	doc       view.Document
	contexts  []string
	selection []view.Element
	items     []string

	opts    Options
	pending *Options
	cfg     *Config

	logger *log.Logger
	ctx    context.Context

	containers []*Container
	listeners  []view.ListenerID
	scheduled  bool
	wired      bool
	closed     bool

	s session
}

// New selects the containers matching contextSelector and runs setup with a
// [Builder]. Listeners are attached on the document's next deferred tick, so
// everything chained inside setup is in effect before the first press.
//
// An empty selection is not an error: setup still runs but nothing is wired.
func New(doc view.Document, contextSelector string, setup func(Builder), opts ...Option) (*Dragswitch, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "document is nil")
	}
	if setup == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "setup callback is nil")
	}
	if err := errors.ValidateSelector(contextSelector); err != nil {
		return nil, err
	}
	selection, err := doc.Query(contextSelector)
	if err != nil {
		return nil, err
	}

	d := &Dragswitch{
		doc:       doc,
		contexts:  splitSelectors(contextSelector),
		selection: selection,
		opts:      DefaultOptions,
		logger:    log.New(io.Discard),
		ctx:       context.Background(),
		s:         session{draggyIndex: -1},
	}
	d.cfg = &Config{d: d}
	for _, o := range opts {
		o(d)
	}

	setup(d.build)
	return d, nil
}

// build is the [Builder] handed to setup. Later calls replace the item
// selectors until the containers are wired.
func (d *Dragswitch) build(selectors ...string) *Config {
	d.items = d.items[:0]
	for _, s := range selectors {
		if s != "" {
			d.items = append(d.items, s)
		}
	}
	if !d.scheduled && len(d.selection) > 0 {
		d.scheduled = true
		d.doc.Defer(d.wire)
	}
	return d.cfg
}

func (d *Dragswitch) wire() {
	if d.closed || d.wired {
		return
	}
	d.wired = true

	d.register(pairSelectors(d.contexts, d.items))
	if len(d.containers) <= 1 && d.opts.Between {
		d.logger.Debug("inter-container mode disabled", "containers", len(d.containers))
		d.opts.Between = false
	}

	for _, c := range d.containers {
		d.listeners = append(d.listeners,
			d.doc.On(view.PointerDown, c.el, d.onContainerDown(c)),
			d.doc.On(view.PointerOut, c.el, d.onContainerOut),
		)
	}
	d.listeners = append(d.listeners, d.doc.On(view.PointerDown, nil, d.onPointerDown))

	d.logger.Debug("dragswitch wired", "containers", len(d.containers), "between", d.opts.Between)
}

// configure applies o, holding it back until the current gesture ends.
func (d *Dragswitch) configure(o Options) {
	merged := DefaultOptions
	if o.Handle != "" {
		merged.Handle = o.Handle
	}
	merged.Between = o.Between
	if d.wired && len(d.containers) <= 1 {
		merged.Between = false
	}
	if d.s.state != Idle {
		d.pending = &merged
		return
	}
	d.opts = merged
}

// Options returns the active options.
func (d *Dragswitch) Options() Options { return d.opts }

// State returns the phase of the current gesture.
func (d *Dragswitch) State() State { return d.s.state }

// Containers returns the registered containers in registration order. It is
// empty until the document has run its deferred tasks.
func (d *Dragswitch) Containers() []*Container {
	return append([]*Container(nil), d.containers...)
}

// Active returns the container the last press or hover resolved to, or nil.
func (d *Dragswitch) Active() *Container { return d.s.active }

// Order returns a snapshot of every container's item sequence.
func (d *Dragswitch) Order() [][]view.Element {
	out := make([][]view.Element, len(d.containers))
	for i, c := range d.containers {
		out[i] = c.Items()
	}
	return out
}

// Close cancels any gesture in progress and detaches every listener.
func (d *Dragswitch) Close() {
	if d.closed {
		return
	}
	if d.s.state != Idle {
		d.cancel("closed")
	}
	for _, id := range d.listeners {
		d.doc.Off(id)
	}
	d.listeners = nil
	d.closed = true
}
