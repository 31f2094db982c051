package command

import (
	"context"

	"github.com/sandevgo/asisten/internal/core"
)

// maxButtons is the most action buttons a single template can hold on LINE.
const maxButtons = 4

// BantuanCommand lists the exact commands. Up to maxButtons commands are
// offered as buttons; larger sets become a carousel.
type BantuanCommand struct {
	commands  func() []core.Handler
	formatter *ResponseFormatter
}

// NewBantuanCommand takes a function so the list can include handlers
// registered after this one.
func NewBantuanCommand(commands func() []core.Handler) *BantuanCommand {
	return &BantuanCommand{
		commands:  commands,
		formatter: NewResponseFormatter(),
	}
}

func (c *BantuanCommand) Name() string        { return "bantuan" }
func (c *BantuanCommand) Description() string { return "Tampilkan daftar perintah" }
func (c *BantuanCommand) Keywords() []string {
	return []string{"bantuan", "help", "tolong", "perintah", "cara"}
}
func (c *BantuanCommand) Grammar() core.Grammar           { return core.GrammarWhole }
func (c *BantuanCommand) Precondition() core.Precondition { return core.PreconditionNone }
func (c *BantuanCommand) States() int                     { return 1 }

func (c *BantuanCommand) Transition(ctx context.Context, conversationID string, state core.State, input string) (core.Result, error) {
	if state != core.StateIdle {
		return core.Result{}, core.Faultf(core.ErrInvalidTransition, "bantuan state %d", state)
	}

	var exact []core.Handler
	for _, h := range c.commands() {
		if len(h.Keywords()) == 0 {
			exact = append(exact, h)
		}
	}

	if len(exact) <= maxButtons {
		actions := make([]core.Button, 0, len(exact))
		for _, h := range exact {
			actions = append(actions, core.Button{Label: h.Name(), Text: h.Name()})
		}
		return core.Result{
			State: core.StateIdle,
			Reply: core.Buttons{Prompt: "Pilih perintah yang ingin dijalankan", Actions: actions},
		}, nil
	}

	// Items are sent back verbatim when picked, so they must be command words.
	items := make([]string, 0, len(exact))
	for _, h := range exact {
		items = append(items, h.Name())
	}
	return core.Result{State: core.StateIdle, Reply: core.Carousel(items)}, nil
}
