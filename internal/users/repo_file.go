package users

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"career-backend/internal/shared/storage/object"
)

// DefaultFileKey is the object key of the fallback user collection.
const DefaultFileKey = "users.json"

// FileRepo keeps every user in a single JSON array document. Each call is a
// full read-modify-write and calls are not serialized: concurrent upserts can
// lose an update. It only backs requests while the primary store is down.
type FileRepo struct {
	Store object.Store
	Key   string
	now   func() time.Time
}

// NewFileRepo returns a FileRepo over store, using DefaultFileKey when key is empty.
func NewFileRepo(store object.Store, key string) *FileRepo {
	if key == "" {
		key = DefaultFileKey
	}
	return &FileRepo{Store: store, Key: key, now: time.Now}
}

func (r *FileRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return User{}, &StorageError{Op: "read", Err: err}
	}
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *FileRepo) Upsert(ctx context.Context, user User) (User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return User{}, &StorageError{Op: "read", Err: err}
	}

	now := r.clock().UTC()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.UpdatedAt = now

	idx := -1
	for i, u := range users {
		if u.Email == user.Email {
			idx = i
			break
		}
	}
	if idx >= 0 {
		if !users[idx].CreatedAt.IsZero() {
			user.CreatedAt = users[idx].CreatedAt
		}
		if user.CreatedAt.IsZero() {
			user.CreatedAt = now
		}
		users[idx] = user
	} else {
		if user.CreatedAt.IsZero() {
			user.CreatedAt = now
		}
		users = append(users, user)
	}

	if err := r.save(ctx, users); err != nil {
		return User{}, &StorageError{Op: "write", Err: err}
	}
	return user, nil
}

func (r *FileRepo) load(ctx context.Context) ([]User, error) {
	data, err := r.Store.Read(ctx, r.Key)
	if err != nil {
		if errors.Is(err, object.ErrNotExist) {
			return []User{}, nil
		}
		return nil, err
	}
	var users []User
	if len(data) == 0 {
		return []User{}, nil
	}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *FileRepo) save(ctx context.Context, users []User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	return r.Store.Write(ctx, r.Key, "application/json", data)
}

func (r *FileRepo) clock() time.Time {
	if r.now == nil {
		return time.Now()
	}
	return r.now()
}
