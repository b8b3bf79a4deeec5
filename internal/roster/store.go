package roster

import "context"

// Store holds the authoritative roster. List returns users in insertion
// order; Update keeps a record's position; Remove keeps the relative order
// of the remaining records.
//
// Update and Remove on an unknown id are no-ops: they report false and
// return no error. An error means the backend itself failed.
type Store interface {
	Add(ctx context.Context, draft UserDraft) (*User, error)
	Update(ctx context.Context, user *User) (bool, error)
	Remove(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]*User, error)
	Get(ctx context.Context, id int64) (*User, error)
	Ping(ctx context.Context) error
}
