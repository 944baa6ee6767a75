package users

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("user not found")

// StorageError reports a failure of the flat-file store. It is fatal for the request.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Repo is a user backend keyed by email. FindByEmail returns ErrNotFound when
// no record matches; Upsert overwrites an existing record with the same email.
type Repo interface {
	FindByEmail(ctx context.Context, email string) (User, error)
	Upsert(ctx context.Context, user User) (User, error)
}
