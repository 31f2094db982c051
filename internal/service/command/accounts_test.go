package command

import (
	"context"
	"errors"

	"github.com/sandevgo/asisten/internal/core"
)

// memAccounts is an in-memory AccountStore for handler tests.
type memAccounts struct {
	byConversation map[string]string
	existsCalls    int
	failWith       error
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byConversation: make(map[string]string)}
}

func (m *memAccounts) with(conversationID, identifier string) *memAccounts {
	m.byConversation[conversationID] = identifier
	return m
}

func (m *memAccounts) Exists(_ context.Context, conversationID string) (bool, error) {
	m.existsCalls++
	if m.failWith != nil {
		return false, m.failWith
	}
	_, ok := m.byConversation[conversationID]
	return ok, nil
}

func (m *memAccounts) Create(ctx context.Context, conversationID, identifier string) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, taken, _ := m.FindOwner(ctx, core.ProviderOf(conversationID), identifier); taken {
		return core.ErrIdentifierTaken
	}
	m.byConversation[conversationID] = identifier
	return nil
}

func (m *memAccounts) FindAssociated(_ context.Context, conversationID string) (string, bool, error) {
	id, ok := m.byConversation[conversationID]
	return id, ok, nil
}

func (m *memAccounts) FindOwner(_ context.Context, provider, identifier string) (string, bool, error) {
	for conv, id := range m.byConversation {
		if id == identifier && core.ProviderOf(conv) == provider {
			return conv, true, nil
		}
	}
	return "", false, nil
}

func (m *memAccounts) MoveAssociation(_ context.Context, conversationID, from, to string) error {
	if m.byConversation[conversationID] != from {
		return errors.New("stale identifier")
	}
	m.byConversation[conversationID] = to
	return nil
}

func (m *memAccounts) Delete(_ context.Context, conversationID string) error {
	delete(m.byConversation, conversationID)
	return nil
}

type dialogueConfig struct{ length int }

func (c dialogueConfig) GetIdentifierLength() int { return c.length }
