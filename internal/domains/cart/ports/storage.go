package ports

import "context"

// Storage is the durable key/value slot holding the serialized cart.
type Storage interface {
	// Get returns the stored text. found is false when the key was never set.
	Get(ctx context.Context, key string) (text string, found bool, err error)
	// Set overwrites the slot.
	Set(ctx context.Context, key, text string) error
}
