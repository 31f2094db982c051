package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/asisten/internal/core"
)

const (
	daftarStart    core.State = iota // expects the command word
	daftarAwaitNPM                   // expects the identifier
	daftarStates
)

// DaftarCommand associates the conversation with a student number.
type DaftarCommand struct {
	accounts  core.AccountStore
	rule      IdentifierRule
	formatter *ResponseFormatter
}

func NewDaftarCommand(accounts core.AccountStore, rule IdentifierRule) *DaftarCommand {
	return &DaftarCommand{
		accounts:  accounts,
		rule:      rule,
		formatter: NewResponseFormatter(),
	}
}

func (c *DaftarCommand) Name() string                    { return "daftar" }
func (c *DaftarCommand) Description() string             { return "Daftarkan NPM anda" }
func (c *DaftarCommand) Keywords() []string              { return nil }
func (c *DaftarCommand) Grammar() core.Grammar           { return core.GrammarFragments }
func (c *DaftarCommand) Precondition() core.Precondition { return core.PreconditionUnregistered }
func (c *DaftarCommand) States() int                     { return int(daftarStates) }
func (c *DaftarCommand) Usage() string                   { return "daftar <NPM>" }

func (c *DaftarCommand) Examples() []string {
	return []string{"daftar", "daftar " + c.rule.Example()}
}

func (c *DaftarCommand) Transition(ctx context.Context, conversationID string, state core.State, input string) (core.Result, error) {
	switch state {
	case daftarStart:
		return c.start(input)
	case daftarAwaitNPM:
		return c.register(ctx, conversationID, input)
	default:
		return core.Result{}, core.Faultf(core.ErrInvalidTransition, "daftar state %d", state)
	}
}

func (c *DaftarCommand) start(input string) (core.Result, error) {
	if input != c.Name() {
		return core.Result{}, core.Faultf(core.ErrInvalidTransition, "daftar started with %q", input)
	}

	return core.Result{
		State: daftarAwaitNPM,
		Reply: core.Text(c.formatter.Combine(
			c.formatter.Prompt("Mohon masukkan NPM anda untuk diasosiasikan dengan akun ini"),
			c.formatter.Label("Format", c.rule.Format()),
		)),
	}, nil
}

func (c *DaftarCommand) register(ctx context.Context, conversationID, npm string) (core.Result, error) {
	if err := c.rule.Validate(npm); err != nil {
		return core.Result{}, err
	}

	if err := c.accounts.Create(ctx, conversationID, npm); err != nil {
		if errors.Is(err, core.ErrIdentifierTaken) {
			return core.Result{}, core.NewUserError(core.ErrIdentifierTaken, c.formatter.Combine(
				c.formatter.Failure(fmt.Sprintf("NPM `%s` sudah terdaftar pada akun lain", npm)),
			))
		}
		return core.Result{}, core.NewServerFault(fmt.Errorf("failed to create account: %w", err))
	}

	return core.Result{
		State: core.StateIdle,
		Reply: core.Text(c.formatter.Combine(
			c.formatter.Success("Akun berhasil dibuat"),
			c.formatter.Label("NPM", npm),
		)),
	}, nil
}
