package command

import (
	"github.com/sandevgo/asisten/internal/core"
)

// NewCommands returns every handler in registration order. Order matters:
// exact matching scans it and keyword ties go to the earlier handler.
func NewCommands(
	cfg core.DialogueConfig,
	accounts core.AccountStore,
) []core.Handler {
	rule := NewIdentifierRule(cfg.GetIdentifierLength())

	var handlers []core.Handler
	handlers = append(handlers,
		NewDaftarCommand(accounts, rule),
		NewGantiCommand(accounts, rule),
		NewHapusCommand(accounts),
		NewBatalCommand(),
		NewStatusCommand(accounts),
		NewBantuanCommand(func() []core.Handler { return handlers }),
	)
	return handlers
}
