package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"tripbook/pkg/cache"
)

// SessionStore persists sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type cacheSessionStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewSessionStore keeps sessions as JSON in c. Every save refreshes the TTL.
func NewSessionStore(c cache.Cache, ttl time.Duration) SessionStore {
	return &cacheSessionStore{cache: c, ttl: ttl}
}

func sessionKey(id string) string {
	return "booking:session:" + id
}

func (st *cacheSessionStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := st.cache.Set(ctx, sessionKey(s.ID), string(data), st.ttl); err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

func (st *cacheSessionStore) Load(ctx context.Context, id string) (*Session, error) {
	data, err := st.cache.Get(ctx, sessionKey(id))
	if errors.Is(err, cache.ErrMiss) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return &s, nil
}

func (st *cacheSessionStore) Delete(ctx context.Context, id string) error {
	return st.cache.Del(ctx, sessionKey(id))
}
