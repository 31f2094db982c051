package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/asisten/internal/core"
)

// StatusCommand answers free-text questions about the current association.
type StatusCommand struct {
	accounts  core.AccountStore
	formatter *ResponseFormatter
}

func NewStatusCommand(accounts core.AccountStore) *StatusCommand {
	return &StatusCommand{
		accounts:  accounts,
		formatter: NewResponseFormatter(),
	}
}

func (c *StatusCommand) Name() string        { return "status" }
func (c *StatusCommand) Description() string { return "Lihat NPM yang terasosiasi" }
func (c *StatusCommand) Keywords() []string {
	return []string{"status", "akun", "npm", "terdaftar", "cek"}
}
func (c *StatusCommand) Grammar() core.Grammar           { return core.GrammarWhole }
func (c *StatusCommand) Precondition() core.Precondition { return core.PreconditionNone }
func (c *StatusCommand) States() int                     { return 1 }

func (c *StatusCommand) Transition(ctx context.Context, conversationID string, state core.State, input string) (core.Result, error) {
	if state != core.StateIdle {
		return core.Result{}, core.Faultf(core.ErrInvalidTransition, "status state %d", state)
	}

	npm, found, err := c.accounts.FindAssociated(ctx, conversationID)
	if err != nil {
		return core.Result{}, core.NewServerFault(fmt.Errorf("failed to find associated identifier: %w", err))
	}

	if !found {
		return core.Result{
			State: core.StateIdle,
			Reply: core.Text(c.formatter.Combine(
				c.formatter.Info("Akun ini belum terdaftar"),
				c.formatter.Tip("Gunakan perintah `daftar` untuk mendaftarkan NPM anda"),
			)),
		}, nil
	}

	return core.Result{
		State: core.StateIdle,
		Reply: core.Text(c.formatter.Combine(
			c.formatter.Info("Status Akun"),
			c.formatter.Label("NPM", npm),
		)),
	}, nil
}
