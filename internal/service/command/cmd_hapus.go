package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/asisten/internal/core"
)

const (
	hapusStart   core.State = iota // expects the command word
	hapusConfirm                   // expects the current identifier as confirmation
	hapusStates
)

// HapusCommand removes the conversation's association after the user
// repeats the associated student number.
type HapusCommand struct {
	accounts  core.AccountStore
	formatter *ResponseFormatter
}

func NewHapusCommand(accounts core.AccountStore) *HapusCommand {
	return &HapusCommand{
		accounts:  accounts,
		formatter: NewResponseFormatter(),
	}
}

func (c *HapusCommand) Name() string                    { return "hapus" }
func (c *HapusCommand) Description() string             { return "Hapus asosiasi akun" }
func (c *HapusCommand) Keywords() []string              { return nil }
func (c *HapusCommand) Grammar() core.Grammar           { return core.GrammarFragments }
func (c *HapusCommand) Precondition() core.Precondition { return core.PreconditionRegistered }
func (c *HapusCommand) States() int                     { return int(hapusStates) }
func (c *HapusCommand) Usage() string                   { return "hapus <NPM>" }

func (c *HapusCommand) Transition(ctx context.Context, conversationID string, state core.State, input string) (core.Result, error) {
	switch state {
	case hapusStart:
		if input != c.Name() {
			return core.Result{}, core.Faultf(core.ErrInvalidTransition, "hapus started with %q", input)
		}
		return core.Result{
			State: hapusConfirm,
			Reply: core.Text(c.formatter.Prompt("Ketik NPM anda untuk mengonfirmasi penghapusan akun")),
		}, nil
	case hapusConfirm:
		return c.remove(ctx, conversationID, input)
	default:
		return core.Result{}, core.Faultf(core.ErrInvalidTransition, "hapus state %d", state)
	}
}

func (c *HapusCommand) remove(ctx context.Context, conversationID, npm string) (core.Result, error) {
	current, found, err := c.accounts.FindAssociated(ctx, conversationID)
	if err != nil {
		return core.Result{}, core.NewServerFault(fmt.Errorf("failed to find associated identifier: %w", err))
	}
	if !found {
		return core.Result{}, core.Faultf(core.ErrMissingRecord, "no identifier for %s", conversationID)
	}
	if npm != current {
		return core.Result{}, core.NewUserError(core.ErrMismatchedIdentifier, c.formatter.Combine(
			c.formatter.Failure("NPM tidak sesuai dengan NPM yang terasosiasi"),
			c.formatter.Tip("Ketik `batal` untuk membatalkan penghapusan"),
		))
	}

	if err := c.accounts.Delete(ctx, conversationID); err != nil {
		return core.Result{}, core.NewServerFault(fmt.Errorf("failed to delete account: %w", err))
	}

	return core.Result{
		State: core.StateIdle,
		Reply: core.Text(c.formatter.Success(fmt.Sprintf("Asosiasi dengan NPM `%s` telah dihapus", npm))),
	}, nil
}
