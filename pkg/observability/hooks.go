// Package observability provides hooks for drag and persistence events.
//
// The drag engine and the arrangement stores emit events through these hooks
// without depending on any particular backend. The CLI registers log-backed
// hooks at startup; tests register recorders.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDragHooks(&myDragHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Drag().OnDragStart(ctx, session, "todo", "card-3")
//	// ... pointer moves ...
//	observability.Drag().OnDragEnd(ctx, session, true, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Drag Hooks
// =============================================================================

// DragHooks receives events from drag sessions. Containers and items are
// identified by their id attribute, or by tag and position when they have
// none.
type DragHooks interface {
	// OnDragStart fires when a pressed item first moves.
	OnDragStart(ctx context.Context, session, container, item string)

	// OnDragEnd fires on every release. moved is false for clicks.
	OnDragEnd(ctx context.Context, session string, moved bool, duration time.Duration)

	// OnPlaceholderMove fires after the live placeholder changes slot.
	OnPlaceholderMove(ctx context.Context, session, container string, index int)

	// OnContainerChange fires when the pointer enters a different container.
	OnContainerChange(ctx context.Context, session, from, to string)

	// OnCancel fires when a drag is abandoned because part of it left the document.
	OnCancel(ctx context.Context, session, reason string)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from arrangement stores.
type StoreHooks interface {
	// OnLoad records a lookup. found is false on a miss.
	OnLoad(ctx context.Context, backend, board string, found bool, err error)

	// OnSave records a write.
	OnSave(ctx context.Context, backend, board string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDragHooks is a no-op implementation of DragHooks.
type NoopDragHooks struct{}

func (NoopDragHooks) OnDragStart(context.Context, string, string, string)       {}
func (NoopDragHooks) OnDragEnd(context.Context, string, bool, time.Duration)    {}
func (NoopDragHooks) OnPlaceholderMove(context.Context, string, string, int)    {}
func (NoopDragHooks) OnContainerChange(context.Context, string, string, string) {}
func (NoopDragHooks) OnCancel(context.Context, string, string)                  {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnLoad(context.Context, string, string, bool, error)          {}
func (NoopStoreHooks) OnSave(context.Context, string, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	dragHooks  DragHooks  = NoopDragHooks{}
	storeHooks StoreHooks = NoopStoreHooks{}
	hooksMu    sync.RWMutex
)

// SetDragHooks registers custom drag hooks.
// This should be called once at application startup before any drag starts.
func SetDragHooks(h DragHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dragHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Drag returns the registered drag hooks.
func Drag() DragHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dragHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	dragHooks = NoopDragHooks{}
	storeHooks = NoopStoreHooks{}
}
