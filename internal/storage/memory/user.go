// Package memory implements the user store as an in-process map. It is
// the default backend and the one the tests run against.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/authgate/internal/model"
)

var _ model.UserStore = (*Store)(nil)

type Store struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]model.User
	byEmail map[string]uuid.UUID
}

func New() *Store {
	return &Store{
		byID:    make(map[uuid.UUID]model.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

// Create assigns an id and stores the user. The duplicate check happens
// under the same lock as the insert, so concurrent registrations for
// one email cannot both succeed.
func (s *Store) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return model.User{}, model.ErrEmailTaken
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user.ID
	return user, nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.byEmail[email]
	if !exists {
		return model.User{}, model.ErrNotFound
	}
	return s.byID[id], nil
}

func (s *Store) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.byID[id]
	if !exists {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}
