package domain

import "context"

// SlotStore persists named blobs. Each Put fully replaces the previous value
// of the slot; readers never observe a partial write.
//
// Get returns ErrNotFound when the slot has never been written.
type SlotStore interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
}
