package users

import (
	"context"
	"sort"
	"sync"
)

// User is a directory entry
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Store is the backing directory queried on cache misses
type Store interface {
	FindByID(ctx context.Context, id int64) (User, bool, error)
	FindByName(ctx context.Context, name string) ([]User, error)
	All(ctx context.Context) ([]User, error)
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	mu    sync.RWMutex
	users map[int64]User
}

// NewMemoryStore creates a store seeded with users
func NewMemoryStore(users ...User) *MemoryStore {
	s := &MemoryStore{users: make(map[int64]User, len(users))}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

// Put inserts or replaces a user
func (s *MemoryStore) Put(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok, nil
}

func (s *MemoryStore) FindByName(ctx context.Context, name string) ([]User, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]User, 0)
	for _, u := range all {
		if u.Name == name {
			out = append(out, u)
		}
	}
	return out, nil
}

// All returns every user ordered by id
func (s *MemoryStore) All(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
