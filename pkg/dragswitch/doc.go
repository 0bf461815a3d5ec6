// Package dragswitch implements drag-and-reorder for items grouped in
// containers.
//
// A [Dragswitch] is attached to a set of container elements of a
// [view.Document]. Pressing an item arms a session; the first pointer move
// lifts the item out of flow, inserts a dashed placeholder in its slot and
// from then on the placeholder follows the item under the pointer. Releasing
// the button drops the item where the placeholder stands.
//
// # Usage
//
//	ds, err := dragswitch.New(doc, "#todo, #done", func(b dragswitch.Builder) {
//	    b("li.card").
//	        Config(dragswitch.Options{Between: true}).
//	        DragEnd(func() { save(doc) })
//	})
//
// # Selector pairing
//
// The context selector is a comma-separated list, split on top-level commas
// only, so "ul:not(.a, .b), ol" has two entries. The builder takes one item
// selector per context entry; when it gets fewer, the last one is reused for
// the remaining entries. Each container uses the item selector paired with
// the first context entry it matches, or "div".
//
// # Hit testing
//
// Container and item boxes are cached and only re-read when the layout is
// known to have moved: at registration, when the drag starts, when the
// pointer enters a container and after every placeholder move. While
// dragging, the target is the first cached box containing the pointer; a
// different item under the pointer moves the placeholder before that item
// if the placeholder sits after it in the sequence, and after it otherwise.
// Passing over the dragged item's own row, or over no item, clears the
// hovered item, so entering the item the pointer just left moves the
// placeholder again.
//
// With Options.Between, leaving a container parks the placeholder at its
// end and removes the item from its sequence; entering another container
// makes that container the target. Outside every container the last one
// stays the drop target.
//
// # Lifecycle
//
// Drag-end callbacks fire on every release that followed a press on an item,
// including plain clicks. The session is cancelled if the dragged item, its
// container or the hovered item leaves the document mid-drag, or if any item
// of a sequence the drop would rebuild is gone at release. Cancelling removes
// the placeholders, gives the item its original style back and fires the
// drag-end callbacks.
package dragswitch
