// Package redis implements the user store on a Redis instance. Records
// are JSON blobs keyed by id, with a secondary index keyed by email.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/yourusername/authgate/internal/model"
)

const (
	userKeyPrefix  = "user:"
	emailKeyPrefix = "user:email:"
)

var _ model.UserStore = (*Store)(nil)

type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Create claims the email index with SETNX before writing the record,
// so uniqueness is enforced atomically by the store itself.
func (s *Store) Create(ctx context.Context, user model.User) (model.User, error) {
	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()

	claimed, err := s.rdb.SetNX(ctx, emailKey(user.Email), user.ID.String(), 0).Result()
	if err != nil {
		return model.User{}, fmt.Errorf("failed to claim email index: %w", err)
	}
	if !claimed {
		return model.User{}, model.ErrEmailTaken
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := s.rdb.Set(ctx, userKey(user.ID), payload, 0).Err(); err != nil {
		// Release the index so the email stays usable.
		s.rdb.Del(ctx, emailKey(user.Email))
		return model.User{}, fmt.Errorf("failed to store user: %w", err)
	}

	return user, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (model.User, error) {
	raw, err := s.rdb.Get(ctx, emailKey(email)).Result()
	if err != nil {
		if err == redis.Nil {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to read email index: %w", err)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return model.User{}, fmt.Errorf("corrupt email index for %q: %w", email, err)
	}
	return s.GetByID(ctx, id)
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	data, err := s.rdb.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to read user: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return model.User{}, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return user, nil
}

func userKey(id uuid.UUID) string {
	return userKeyPrefix + id.String()
}

func emailKey(email string) string {
	return emailKeyPrefix + email
}
