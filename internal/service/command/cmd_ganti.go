package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/asisten/internal/core"
)

const (
	gantiStart      core.State = iota // expects the command word
	gantiConfirmOld                   // expects the current identifier
	gantiAwaitNew                     // expects the replacement identifier
	gantiStates
)

// GantiCommand moves the conversation's association to another student number.
type GantiCommand struct {
	accounts  core.AccountStore
	rule      IdentifierRule
	formatter *ResponseFormatter
}

func NewGantiCommand(accounts core.AccountStore, rule IdentifierRule) *GantiCommand {
	return &GantiCommand{
		accounts:  accounts,
		rule:      rule,
		formatter: NewResponseFormatter(),
	}
}

func (c *GantiCommand) Name() string                    { return "ganti" }
func (c *GantiCommand) Description() string             { return "Ganti NPM yang terasosiasi" }
func (c *GantiCommand) Keywords() []string              { return nil }
func (c *GantiCommand) Grammar() core.Grammar           { return core.GrammarFragments }
func (c *GantiCommand) Precondition() core.Precondition { return core.PreconditionRegistered }
func (c *GantiCommand) States() int                     { return int(gantiStates) }
func (c *GantiCommand) Usage() string                   { return "ganti <NPM lama> <NPM baru>" }

func (c *GantiCommand) Examples() []string {
	return []string{"ganti", "ganti " + c.rule.Example()}
}

func (c *GantiCommand) Transition(ctx context.Context, conversationID string, state core.State, input string) (core.Result, error) {
	switch state {
	case gantiStart:
		return c.start(input)
	case gantiConfirmOld:
		return c.confirmOld(ctx, conversationID, input)
	case gantiAwaitNew:
		return c.move(ctx, conversationID, input)
	default:
		return core.Result{}, core.Faultf(core.ErrInvalidTransition, "ganti state %d", state)
	}
}

func (c *GantiCommand) start(input string) (core.Result, error) {
	if input != c.Name() {
		return core.Result{}, core.Faultf(core.ErrInvalidTransition, "ganti started with %q", input)
	}

	return core.Result{
		State: gantiConfirmOld,
		Reply: core.Text(c.formatter.Prompt("Mohon masukkan NPM yang saat ini terasosiasi dengan akun ini")),
	}, nil
}

func (c *GantiCommand) confirmOld(ctx context.Context, conversationID, npm string) (core.Result, error) {
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
			c.formatter.Tip("Masukkan kembali NPM lama anda"),
		))
	}

	return core.Result{
		State: gantiAwaitNew,
		Reply: core.Text(c.formatter.Combine(
			c.formatter.Prompt("Mohon masukkan NPM baru"),
			c.formatter.Label("Format", c.rule.Format()),
		)),
	}, nil
}

func (c *GantiCommand) move(ctx context.Context, conversationID, npm string) (core.Result, error) {
	if err := c.rule.Validate(npm); err != nil {
		return core.Result{}, err
	}

	provider := core.ProviderOf(conversationID)
	owner, taken, err := c.accounts.FindOwner(ctx, provider, npm)
	if err != nil {
		return core.Result{}, core.NewServerFault(fmt.Errorf("failed to find identifier owner: %w", err))
	}
	if taken && owner == conversationID {
		return core.Result{}, core.NewUserError(core.ErrIdentifierTaken, c.formatter.Combine(
			c.formatter.Failure(fmt.Sprintf("NPM `%s` sudah terasosiasi dengan akun ini", npm)),
			c.formatter.Tip("Masukkan NPM baru yang berbeda dari NPM lama"),
		))
	}
	if taken {
		return core.Result{}, c.taken(npm)
	}

	current, found, err := c.accounts.FindAssociated(ctx, conversationID)
	if err != nil {
		return core.Result{}, core.NewServerFault(fmt.Errorf("failed to find associated identifier: %w", err))
	}
	if !found {
		return core.Result{}, core.Faultf(core.ErrMissingRecord, "no identifier for %s", conversationID)
	}

	if err := c.accounts.MoveAssociation(ctx, conversationID, current, npm); err != nil {
		if errors.Is(err, core.ErrIdentifierTaken) {
			return core.Result{}, c.taken(npm)
		}
		return core.Result{}, core.NewServerFault(fmt.Errorf("failed to move association: %w", err))
	}

	return core.Result{
		State: core.StateIdle,
		Reply: core.Text(c.formatter.Combine(
			c.formatter.Success("NPM berhasil diganti"),
			c.formatter.Label("NPM lama", current),
			c.formatter.Label("NPM baru", npm),
		)),
	}, nil
}

func (c *GantiCommand) taken(npm string) error {
	return core.NewUserError(core.ErrIdentifierTaken,
		c.formatter.Failure(fmt.Sprintf("NPM `%s` sudah terasosiasi dengan akun lain", npm)))
}
