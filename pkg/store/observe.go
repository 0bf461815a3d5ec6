package store

import (
	"context"
	"time"

	"github.com/dragswitch/dragswitch/pkg/observability"
)

// Observed reports every load and save of the wrapped store to
// observability.Store().
type Observed struct {
	Store
	backend string
}

// Observe wraps s. The backend name is passed to the hooks.
func Observe(backend string, s Store) *Observed {
	return &Observed{Store: s, backend: backend}
}

// Backend returns the backend name.
func (o *Observed) Backend() string { return o.backend }

// Unwrap returns the wrapped store.
func (o *Observed) Unwrap() Store { return o.Store }

func (o *Observed) Get(ctx context.Context, board string) (*Arrangement, error) {
	arr, err := o.Store.Get(ctx, board)
	observability.Store().OnLoad(ctx, o.backend, board, arr != nil, err)
	return arr, err
}

func (o *Observed) Set(ctx context.Context, arr *Arrangement) error {
	start := time.Now()
	err := o.Store.Set(ctx, arr)
	var board string
	if arr != nil {
		board = arr.Board
	}
	observability.Store().OnSave(ctx, o.backend, board, time.Since(start), err)
	return err
}
