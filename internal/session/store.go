package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/priyankaj04/Gymlogs/internal/apiclient"
	"github.com/priyankaj04/Gymlogs/internal/kv"
	"github.com/priyankaj04/Gymlogs/internal/models"
)

const (
	TokenKey = "@gym_logs_token"
	UserKey  = "@gym_logs_user"
)

// ErrUnreadableUser means the cached user is not valid JSON.
var ErrUnreadableUser = errors.New("cached user is unreadable")

// Store persists the (token, cached user) pair that makes up a session.
// Missing values are reported as empty results, not errors; a cached user
// that cannot be decoded is an ErrUnreadableUser.
type Store struct {
	kv kv.Store
}

var _ apiclient.SessionStore = (*Store)(nil)

func NewStore(store kv.Store) *Store {
	return &Store{kv: store}
}

func (s *Store) Token(ctx context.Context) (string, error) {
	value, err := s.kv.Get(ctx, TokenKey)
	if errors.Is(err, kv.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return string(value), nil
}

func (s *Store) User(ctx context.Context) (*models.User, error) {
	value, err := s.kv.Get(ctx, UserKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cached user: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(value, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableUser, err)
	}
	return &user, nil
}

func (s *Store) Save(ctx context.Context, token string, user models.User) error {
	if err := s.kv.Set(ctx, TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return s.SaveUser(ctx, user)
}

func (s *Store) SaveUser(ctx context.Context, user models.User) error {
	value, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, UserKey, value); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, TokenKey, UserKey)
}
