package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/sandevgo/asisten/internal/core"
)

const defaultPrefix = "asisten:state:"

// StateStore implements core.StateStore on plain Redis keys. A TTL lets
// abandoned dialogues fall back to idle on their own.
type StateStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*StateStore)

// WithTTL sets the expiration for stored states. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *StateStore) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *StateStore) {
		s.prefix = prefix
	}
}

func New(address, password string, db int, opts ...Option) *StateStore {
	return NewFromClient(backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	}), opts...)
}

func NewFromClient(client *backend.Client, opts ...Option) *StateStore {
	s := &StateStore{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StateStore) key(conversationID string) string {
	return s.prefix + conversationID
}

func (s *StateStore) Load(ctx context.Context, conversationID string) (core.ConversationState, error) {
	val, err := s.client.Get(ctx, s.key(conversationID)).Bytes()
	if errors.Is(err, backend.Nil) {
		return core.ConversationState{}, nil
	}
	if err != nil {
		return core.ConversationState{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var st core.ConversationState
	if err := json.Unmarshal(val, &st); err != nil {
		return core.ConversationState{}, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return st, nil
}

func (s *StateStore) Save(ctx context.Context, conversationID string, state core.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := s.client.Set(ctx, s.key(conversationID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

func (s *StateStore) Clear(ctx context.Context, conversationID string) error {
	if err := s.client.Del(ctx, s.key(conversationID)).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// Ping verifies the connection at startup.
func (s *StateStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *StateStore) Close() error {
	return s.client.Close()
}
