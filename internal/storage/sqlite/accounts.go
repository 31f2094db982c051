package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/sandevgo/asisten/internal/core"
	"github.com/sandevgo/asisten/pkg/log"
)

const (
	actionCreate = "create"
	actionMove   = "move"
	actionDelete = "delete"
)

// AccountsRepo implements core.AccountStore on the accounts table.
type AccountsRepo struct {
	db *sql.DB
}

func NewAccountsRepo(db *sql.DB) *AccountsRepo {
	return &AccountsRepo{db: db}
}

func (r *AccountsRepo) Exists(ctx context.Context, conversationID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE conversation_id = ?)`, conversationID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return exists, nil
}

func (r *AccountsRepo) Create(ctx context.Context, conversationID, identifier string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO accounts (conversation_id, provider, identifier) VALUES (?, ?, ?)`,
		conversationID, core.ProviderOf(conversationID), identifier,
	)
	if err != nil {
		if isIdentifierConflict(err) {
			return fmt.Errorf("identifier %s: %w", identifier, core.ErrIdentifierTaken)
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}

	if err := recordEvent(ctx, tx, conversationID, actionCreate, "", identifier); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *AccountsRepo) FindAssociated(ctx context.Context, conversationID string) (string, bool, error) {
	var identifier string
	err := r.db.QueryRowContext(ctx,
		`SELECT identifier FROM accounts WHERE conversation_id = ?`, conversationID,
	).Scan(&identifier)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query associated identifier: %w", err)
	}
	return identifier, true, nil
}

func (r *AccountsRepo) FindOwner(ctx context.Context, provider, identifier string) (string, bool, error) {
	var conversationID string
	err := r.db.QueryRowContext(ctx,
		`SELECT conversation_id FROM accounts WHERE provider = ? AND identifier = ?`, provider, identifier,
	).Scan(&conversationID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query identifier owner: %w", err)
	}
	return conversationID, true, nil
}

// MoveAssociation swaps the identifier only if the conversation is still
// bound to oldIdentifier; the update and its audit event commit together.
func (r *AccountsRepo) MoveAssociation(ctx context.Context, conversationID, oldIdentifier, newIdentifier string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE accounts SET identifier = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE conversation_id = ? AND identifier = ?`,
		newIdentifier, conversationID, oldIdentifier,
	)
	if err != nil {
		if isIdentifierConflict(err) {
			return fmt.Errorf("identifier %s: %w", newIdentifier, core.ErrIdentifierTaken)
		}
		return fmt.Errorf("failed to update account: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s is not bound to %s: %w", conversationID, oldIdentifier, core.ErrMissingRecord)
	}

	if err := recordEvent(ctx, tx, conversationID, actionMove, oldIdentifier, newIdentifier); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.FromCtx(ctx).Debug().Str("old", oldIdentifier).Str("new", newIdentifier).Msg("moved account association")
	return nil
}

func (r *AccountsRepo) Delete(ctx context.Context, conversationID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var identifier string
	err = tx.QueryRowContext(ctx,
		`DELETE FROM accounts WHERE conversation_id = ? RETURNING identifier`, conversationID,
	).Scan(&identifier)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", conversationID, core.ErrMissingRecord)
	}
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if err := recordEvent(ctx, tx, conversationID, actionDelete, identifier, ""); err != nil {
		return err
	}

	return tx.Commit()
}

// Get returns the full account row, mostly for tests and diagnostics.
func (r *AccountsRepo) Get(ctx context.Context, conversationID string) (core.Account, error) {
	var acc core.Account
	err := r.db.QueryRowContext(ctx,
		`SELECT id, conversation_id, provider, identifier, created_at, updated_at
		 FROM accounts WHERE conversation_id = ?`, conversationID,
	).Scan(&acc.ID, &acc.ConversationID, &acc.Provider, &acc.Identifier, &acc.CreatedAt, &acc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Account{}, fmt.Errorf("%s: %w", conversationID, core.ErrMissingRecord)
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("failed to query account: %w", err)
	}
	return acc, nil
}

func recordEvent(ctx context.Context, tx *sql.Tx, conversationID, action, oldIdentifier, newIdentifier string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO account_events (conversation_id, action, old_identifier, new_identifier) VALUES (?, ?, ?, ?)`,
		conversationID, action, oldIdentifier, newIdentifier,
	)
	if err != nil {
		return fmt.Errorf("failed to record account event: %w", err)
	}
	return nil
}

// isIdentifierConflict reports a violation of UNIQUE(provider, identifier).
func isIdentifierConflict(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique &&
		strings.Contains(sqliteErr.Error(), "accounts.identifier")
}
