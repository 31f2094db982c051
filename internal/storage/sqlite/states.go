package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sandevgo/asisten/internal/core"
)

// StatesRepo implements core.StateStore on the conversation_states table.
type StatesRepo struct {
	db *sql.DB
}

func NewStatesRepo(db *sql.DB) *StatesRepo {
	return &StatesRepo{db: db}
}

func (r *StatesRepo) Load(ctx context.Context, conversationID string) (core.ConversationState, error) {
	var st core.ConversationState
	err := r.db.QueryRowContext(ctx,
		`SELECT command, state FROM conversation_states WHERE conversation_id = ?`, conversationID,
	).Scan(&st.Command, &st.State)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ConversationState{}, nil
	}
	if err != nil {
		return core.ConversationState{}, fmt.Errorf("failed to query conversation state: %w", err)
	}
	return st, nil
}

func (r *StatesRepo) Save(ctx context.Context, conversationID string, state core.ConversationState) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO conversation_states (conversation_id, command, state) VALUES (?, ?, ?)
		 ON CONFLICT (conversation_id) DO UPDATE SET
		     command = excluded.command,
		     state = excluded.state,
		     updated_at = CURRENT_TIMESTAMP`,
		conversationID, state.Command, int(state.State),
	)
	if err != nil {
		return fmt.Errorf("failed to save conversation state: %w", err)
	}
	return nil
}

func (r *StatesRepo) Clear(ctx context.Context, conversationID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM conversation_states WHERE conversation_id = ?`, conversationID)
	if err != nil {
		return fmt.Errorf("failed to clear conversation state: %w", err)
	}
	return nil
}
