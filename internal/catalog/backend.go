package catalog

import (
	"context"
)

// Backend persists the whole catalog payload under a single key.
// Load reports found=false when the key was never written.
type Backend interface {
	Load(ctx context.Context) (payload []byte, found bool, err error)
	Save(ctx context.Context, payload []byte) error
	Close() error
}
