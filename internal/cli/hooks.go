package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dragswitch/dragswitch/pkg/observability"
)

// logHooks reports drag and store events to a logger. Drag events log at
// debug level; failed saves at warn.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.DragHooks  = (*logHooks)(nil)
	_ observability.StoreHooks = (*logHooks)(nil)
)

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("hooks")}
}

func (h *logHooks) OnDragStart(_ context.Context, session, container, item string) {
	h.logger.Debug("drag start", "session", short(session), "container", container, "item", item)
}

func (h *logHooks) OnDragEnd(_ context.Context, session string, moved bool, d time.Duration) {
	h.logger.Debug("drag end", "session", short(session), "moved", moved, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnPlaceholderMove(_ context.Context, session, container string, index int) {
	h.logger.Debug("placeholder", "session", short(session), "container", container, "index", index)
}

func (h *logHooks) OnContainerChange(_ context.Context, session, from, to string) {
	h.logger.Debug("container", "session", short(session), "from", from, "to", to)
}

func (h *logHooks) OnCancel(_ context.Context, session, reason string) {
	h.logger.Info("drag cancelled", "session", short(session), "reason", reason)
}

func (h *logHooks) OnLoad(_ context.Context, backend, board string, found bool, err error) {
	if err != nil {
		h.logger.Warn("load arrangement", "backend", backend, "board", board, "err", err)
		return
	}
	h.logger.Debug("load arrangement", "backend", backend, "board", board, "found", found)
}

func (h *logHooks) OnSave(_ context.Context, backend, board string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("save arrangement", "backend", backend, "board", board, "err", err)
		return
	}
	h.logger.Debug("save arrangement", "backend", backend, "board", board, "took", d.Round(time.Millisecond))
}

// short trims a session uuid to its first group.
func short(session string) string {
	if len(session) > 8 {
		return session[:8]
	}
	return session
}
