package object

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Read when no object is stored under the key.
var ErrNotExist = errors.New("object does not exist")

// Store reads and writes whole objects addressed by key.
type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, contentType string, data []byte) error
}
