package store

import "context"

// Backend fetches raw bytes by relative path. Implementations never
// interpret the bytes; decoding is the Decoder's job.
type Backend interface {
	Get(ctx context.Context, path string) ([]byte, error)
}
