package roster

import (
	"context"
	"sync"
)

// MemoryStore keeps the roster in a slice guarded by a mutex. Ids come from
// a counter that only moves forward, so a removed id is never handed out
// again.
type MemoryStore struct {
	mu     sync.RWMutex
	users  []*User
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Add(_ context.Context, draft UserDraft) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &User{ID: s.nextID, UserDraft: draft.Clone()}
	s.nextID++
	s.users = append(s.users, u)
	return u.Clone(), nil
}

func (s *MemoryStore) Update(_ context.Context, user *User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(user.ID)
	if i < 0 {
		return false, nil
	}
	s.users[i] = user.Clone()
	return true, nil
}

func (s *MemoryStore) Remove(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	return true, nil
}

func (s *MemoryStore) List(_ context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*User, len(s.users))
	for i, u := range s.users {
		out[i] = u.Clone()
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return s.users[i].Clone(), nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

// indexOf must be called with the lock held.
func (s *MemoryStore) indexOf(id int64) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
