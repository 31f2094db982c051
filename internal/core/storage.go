package core

import (
	"context"
	"strings"
	"time"
)

// AccountStore keeps the association between a conversation and an
// identifier. Lookups return found=false instead of an error when absent.
type AccountStore interface {
	Exists(ctx context.Context, conversationID string) (bool, error)
	Create(ctx context.Context, conversationID, identifier string) error
	FindAssociated(ctx context.Context, conversationID string) (string, bool, error)
	FindOwner(ctx context.Context, provider, identifier string) (string, bool, error)
	MoveAssociation(ctx context.Context, conversationID, oldIdentifier, newIdentifier string) error
	Delete(ctx context.Context, conversationID string) error
}

// StateStore keeps the last known dialogue state per conversation.
// Load returns the idle state for unknown conversations.
type StateStore interface {
	Load(ctx context.Context, conversationID string) (ConversationState, error)
	Save(ctx context.Context, conversationID string, state ConversationState) error
	Clear(ctx context.Context, conversationID string) error
}

type Account struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Provider       string    `json:"provider"`
	Identifier     string    `json:"identifier"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const (
	ProviderTelegram = "telegram"
	ProviderLine     = "line"
	ProviderCLI      = "cli"
)

// ConversationID builds the channel-prefixed id used across stores.
func ConversationID(provider, id string) string {
	return provider + "@" + id
}

// ProviderOf returns the channel prefix of a conversation id, or "" if the
// id carries none.
func ProviderOf(conversationID string) string {
	provider, _, ok := strings.Cut(conversationID, "@")
	if !ok {
		return ""
	}
	return provider
}
