package auth

import (
	"context"
	"net/http"

	"github.com/redis/rueidis"

	apperrors "task-market.com/task-market/internal/errors"
)

var ErrSessionNotFound = apperrors.Authentication("session not found")

type SessionStore interface {
	Lookup(ctx context.Context, token string) (string, error)
}

// RedisSessionStore maps "<prefix><token>" keys to user ids.
type RedisSessionStore struct {
	client rueidis.Client
	prefix string
}

func NewRedisSessionStore(client rueidis.Client, prefix string) *RedisSessionStore {
	return &RedisSessionStore{client: client, prefix: prefix}
}

func (s *RedisSessionStore) Lookup(ctx context.Context, token string) (string, error) {
	cmd := s.client.B().Get().Key(s.prefix + token).Build()
	userID, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	if userID == "" {
		return "", ErrSessionNotFound
	}
	return userID, nil
}

// SessionResolver reads the session token from the cookie, falling back to
// the X-Session-Token header for non-browser clients.
type SessionResolver struct {
	store  SessionStore
	cookie string
}

func NewSessionResolver(store SessionStore, cookie string) *SessionResolver {
	return &SessionResolver{store: store, cookie: cookie}
}

func (s *SessionResolver) ResolveIdentity(ctx context.Context, r *http.Request) (string, error) {
	token := r.Header.Get("X-Session-Token")
	if c, err := r.Cookie(s.cookie); err == nil && c.Value != "" {
		token = c.Value
	}
	if token == "" {
		return "", ErrSessionNotFound
	}
	return s.store.Lookup(ctx, token)
}
