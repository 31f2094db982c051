package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/asisten/internal/core"
	"github.com/sandevgo/asisten/pkg/conv"
	"github.com/sandevgo/asisten/pkg/log"
)

const (
	localID  = "local"
	exitWord = "exit"
)

type ReadLine struct {
	dispatcher     core.Dispatcher
	conversationID string
	rl             *readline.Instance
}

func NewReadLine(dispatcher core.Dispatcher, cfg core.AppConfig) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.GetRuntimePath(), "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       exitWord,
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		dispatcher:     dispatcher,
		conversationID: core.ConversationID(core.ProviderCLI, localID),
		rl:             rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msgf("chat started as %s. Type '%s' to quit.", r.conversationID, exitWord)

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == exitWord {
			return nil
		}
		if line == "" {
			continue
		}

		reply, err := r.dispatcher.Handle(ctx, r.conversationID, line)
		if err != nil {
			reply = core.ErrorReply(err)
		}
		fmt.Fprintln(r.rl.Stdout(), Render(reply))
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

// Render turns a reply into terminal text. Buttons and carousel items are
// listed with the text to type for each.
func Render(reply core.Reply) string {
	switch r := reply.(type) {
	case core.Text:
		return conv.MarkdownToPlainText([]byte(r))
	case core.Buttons:
		var b strings.Builder
		if prompt := conv.MarkdownToPlainText([]byte(r.Prompt)); prompt != "" {
			b.WriteString(prompt)
			b.WriteString("\n")
		}
		for _, a := range r.Actions {
			if a.Label == a.Text {
				fmt.Fprintf(&b, "  › %s\n", a.Text)
				continue
			}
			fmt.Fprintf(&b, "  › %s (ketik: %s)\n", a.Label, a.Text)
		}
		return strings.TrimRight(b.String(), "\n")
	default:
		return core.PlainText(reply)
	}
}
