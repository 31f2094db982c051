package command

import (
	"context"

	"github.com/sandevgo/asisten/internal/core"
)

// BatalCommand ends whatever dialogue is in progress.
type BatalCommand struct {
	formatter *ResponseFormatter
}

func NewBatalCommand() *BatalCommand {
	return &BatalCommand{formatter: NewResponseFormatter()}
}

func (c *BatalCommand) Name() string                    { return "batal" }
func (c *BatalCommand) Description() string             { return "Batalkan perintah yang sedang berjalan" }
func (c *BatalCommand) Keywords() []string              { return nil }
func (c *BatalCommand) Grammar() core.Grammar           { return core.GrammarWhole }
func (c *BatalCommand) Precondition() core.Precondition { return core.PreconditionNone }
func (c *BatalCommand) States() int                     { return 1 }

func (c *BatalCommand) Transition(ctx context.Context, conversationID string, state core.State, input string) (core.Result, error) {
	if state != core.StateIdle {
		return core.Result{}, core.Faultf(core.ErrInvalidTransition, "batal state %d", state)
	}
	return core.Result{
		State: core.StateIdle,
		Reply: core.Text(c.formatter.Info("Perintah dibatalkan")),
	}, nil
}
