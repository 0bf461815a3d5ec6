// Package store persists board arrangements.
//
// An [Arrangement] records which items sit in which container, in order, for
// one board. The terminal front end saves one after every drop and applies it
// the next time the board is opened.
//
// Backends:
//   - [FileStore]: one JSON file per board, for the CLI
//   - [RedisStore]: one key per board
//   - [MongoStore]: one document per board
//   - [NullStore]: stores nothing
//
// [Open] picks a backend from a location string.
package store

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/dragswitch/dragswitch/pkg/errors"
)

// Arrangement is the saved order of one board.
type Arrangement struct {
	Board      string              `json:"board" bson:"_id"`
	Containers map[string][]string `json:"containers" bson:"containers"`
	UpdatedAt  time.Time           `json:"updated_at" bson:"updated_at"`
}

// NewArrangement returns an arrangement stamped with the current time.
func NewArrangement(board string, containers map[string][]string) *Arrangement {
	return &Arrangement{Board: board, Containers: containers, UpdatedAt: time.Now().UTC()}
}

// Store is the interface for arrangement backends.
type Store interface {
	// Get returns the arrangement of a board, or nil, nil if none is saved.
	Get(ctx context.Context, board string) (*Arrangement, error)

	// Set saves an arrangement, replacing any previous one.
	Set(ctx context.Context, arr *Arrangement) error

	// Delete removes a board's arrangement. Deleting a missing one is not an
	// error.
	Delete(ctx context.Context, board string) error

	// Close releases backend resources.
	Close() error
}

// Open returns the backend for location:
//   - "" or "none": [NullStore]
//   - "redis://..." or "rediss://...": [RedisStore]
//   - "mongodb://..." or "mongodb+srv://...": [MongoStore]
//   - anything else is a directory for [FileStore]
//
// The returned store reports loads and saves to the observability hooks.
func Open(ctx context.Context, location string) (Store, error) {
	var (
		s       Store
		backend string
		err     error
	)
	switch {
	case location == "" || location == "none":
		s, backend = NewNullStore(), "null"
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		s, err = NewRedisStore(location)
		backend = "redis"
	case strings.HasPrefix(location, "mongodb://"), strings.HasPrefix(location, "mongodb+srv://"):
		s, err = NewMongoStore(ctx, location, DefaultMongoDatabase)
		backend = "mongo"
	default:
		s, err = NewFileStore(location)
		backend = "file"
	}
	if err != nil {
		return nil, err
	}
	return Observe(backend, s), nil
}

func validate(arr *Arrangement) error {
	if arr == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "arrangement is nil")
	}
	return errors.ValidateID(arr.Board)
}

// wrapErr maps backend failures onto store error codes.
func wrapErr(err error, format string, args ...any) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeStoreTimeout, err, format, args...)
	}
	return errors.Wrap(errors.ErrCodeStore, err, format, args...)
}
