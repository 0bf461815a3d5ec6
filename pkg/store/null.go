package store

import "context"

// NullStore never stores anything.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Get always reports no arrangement.
func (s *NullStore) Get(ctx context.Context, board string) (*Arrangement, error) {
	return nil, nil
}

// Set does nothing.
func (s *NullStore) Set(ctx context.Context, arr *Arrangement) error {
	return validate(arr)
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, board string) error {
	return nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

var _ Store = (*NullStore)(nil)
