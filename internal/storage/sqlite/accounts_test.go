package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/sandevgo/asisten/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(context.Background(), InMemory)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func countEvents(t *testing.T, db *sql.DB, conversationID, action string) int {
	t.Helper()
	var n int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM account_events WHERE conversation_id = ? AND action = ?`,
		conversationID, action,
	).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestAccountsRepo_Register(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAccountsRepo(db)

	exists, err := repo.Exists(ctx, "telegram@1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(ctx, "telegram@1", "12345678"))

	exists, err = repo.Exists(ctx, "telegram@1")
	require.NoError(t, err)
	assert.True(t, exists)

	npm, found, err := repo.FindAssociated(ctx, "telegram@1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "12345678", npm)

	owner, found, err := repo.FindOwner(ctx, core.ProviderTelegram, "12345678")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "telegram@1", owner)

	acc, err := repo.Get(ctx, "telegram@1")
	require.NoError(t, err)
	assert.Equal(t, core.ProviderTelegram, acc.Provider)
	assert.Equal(t, "12345678", acc.Identifier)

	assert.Equal(t, 1, countEvents(t, db, "telegram@1", actionCreate))
}

func TestAccountsRepo_IdentifierUniquePerProvider(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountsRepo(newTestDB(t))

	require.NoError(t, repo.Create(ctx, "telegram@1", "12345678"))

	err := repo.Create(ctx, "telegram@2", "12345678")
	assert.ErrorIs(t, err, core.ErrIdentifierTaken)

	// another provider may hold the same identifier
	require.NoError(t, repo.Create(ctx, "line@U1", "12345678"))

	owner, found, err := repo.FindOwner(ctx, core.ProviderLine, "12345678")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "line@U1", owner)
}

func TestAccountsRepo_MoveAssociation(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAccountsRepo(db)

	require.NoError(t, repo.Create(ctx, "telegram@1", "11111111"))
	require.NoError(t, repo.Create(ctx, "telegram@2", "33333333"))

	require.NoError(t, repo.MoveAssociation(ctx, "telegram@1", "11111111", "22222222"))

	npm, found, err := repo.FindAssociated(ctx, "telegram@1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "22222222", npm)

	_, found, err = repo.FindOwner(ctx, core.ProviderTelegram, "11111111")
	require.NoError(t, err)
	assert.False(t, found)

	t.Run("target taken", func(t *testing.T) {
		err := repo.MoveAssociation(ctx, "telegram@1", "22222222", "33333333")
		assert.ErrorIs(t, err, core.ErrIdentifierTaken)
	})

	t.Run("stale old identifier", func(t *testing.T) {
		err := repo.MoveAssociation(ctx, "telegram@1", "11111111", "44444444")
		assert.ErrorIs(t, err, core.ErrMissingRecord)
	})

	assert.Equal(t, 1, countEvents(t, db, "telegram@1", actionMove))
}

func TestAccountsRepo_Delete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAccountsRepo(db)

	require.NoError(t, repo.Create(ctx, "cli@local", "12345678"))
	require.NoError(t, repo.Delete(ctx, "cli@local"))

	_, found, err := repo.FindAssociated(ctx, "cli@local")
	require.NoError(t, err)
	assert.False(t, found)

	assert.ErrorIs(t, repo.Delete(ctx, "cli@local"), core.ErrMissingRecord)
	assert.Equal(t, 1, countEvents(t, db, "cli@local", actionDelete))

	// identifier is free again
	require.NoError(t, repo.Create(ctx, "cli@other", "12345678"))
}
