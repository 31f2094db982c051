package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/sandevgo/asisten/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...Option) (*StateStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	s := NewFromClient(client, opts...)
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestStateStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	require.NoError(t, s.Ping(ctx))

	state, err := s.Load(ctx, "line@U1")
	require.NoError(t, err)
	assert.True(t, state.Idle())

	want := core.ConversationState{Command: "daftar", State: 1}
	require.NoError(t, s.Save(ctx, "line@U1", want))
	assert.True(t, mr.Exists(defaultPrefix+"line@U1"))

	got, err := s.Load(ctx, "line@U1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, s.Clear(ctx, "line@U1"))
	got, err = s.Load(ctx, "line@U1")
	require.NoError(t, err)
	assert.True(t, got.Idle())
}

func TestStateStore_Options(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, WithPrefix("test:"), WithTTL(time.Minute))

	require.NoError(t, s.Save(ctx, "cli@local", core.ConversationState{Command: "ganti", State: 2}))
	assert.True(t, mr.Exists("test:cli@local"))
	assert.Equal(t, time.Minute, mr.TTL("test:cli@local"))

	mr.FastForward(2 * time.Minute)

	got, err := s.Load(ctx, "cli@local")
	require.NoError(t, err)
	assert.True(t, got.Idle(), "expired dialogue falls back to idle")
}

func TestStateStore_CorruptValue(t *testing.T) {
	s, mr := newTestStore(t)
	require.NoError(t, mr.Set(defaultPrefix+"telegram@1", "not json"))

	_, err := s.Load(context.Background(), "telegram@1")
	assert.Error(t, err)
}
