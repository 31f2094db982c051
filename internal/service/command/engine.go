package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/asisten/internal/core"
	"github.com/sandevgo/asisten/pkg/log"
)

type accountChecker interface {
	Exists(ctx context.Context, conversationID string) (bool, error)
}

// Engine advances a handler's dialogue by one utterance.
// It keeps no per-conversation state and is safe for concurrent use.
type Engine struct {
	accounts  accountChecker
	formatter *ResponseFormatter
}

func NewEngine(accounts accountChecker) *Engine {
	return &Engine{
		accounts:  accounts,
		formatter: NewResponseFormatter(),
	}
}

func (e *Engine) Step(ctx context.Context, h core.Handler, state core.State, text, conversationID string) (core.Result, error) {
	if state < core.StateIdle || int(state) >= h.States() {
		return core.Result{}, core.Faultf(core.ErrInvalidTransition, "%s has no state %d", h.Name(), state)
	}

	if err := e.checkPrecondition(ctx, h, conversationID); err != nil {
		return core.Result{}, err
	}

	if h.Grammar() == core.GrammarWhole {
		return h.Transition(ctx, conversationID, state, strings.TrimSpace(text))
	}

	fragments := strings.Fields(text)
	if len(fragments) == 0 {
		return core.Result{}, core.NewUserError(core.ErrWrongFormat, e.formatter.Combine(
			e.formatter.Failure("Pesan kosong"),
			e.formatter.Tip("Kirim kembali jawaban anda"),
		))
	}
	if len(fragments) > h.States()-int(state) {
		return core.Result{}, e.tooManyArguments(h)
	}

	logger := log.FromCtx(ctx)
	current := state
	var result core.Result
	for i, fragment := range fragments {
		if i > 0 && current == core.StateIdle {
			// the dialogue finished before the input ran out
			return core.Result{}, e.tooManyArguments(h)
		}

		next, err := h.Transition(ctx, conversationID, current, fragment)
		if err != nil {
			return core.Result{}, err
		}
		if int(next.State) >= h.States() || next.State < core.StateIdle {
			return core.Result{}, core.Faultf(core.ErrInvalidTransition, "%s returned state %d", h.Name(), next.State)
		}

		logger.Debug().
			Str(log.CommandField, h.Name()).
			Int("from", int(current)).
			Int("to", int(next.State)).
			Msg("dialogue transition")

		current = next.State
		result = next
	}

	return result, nil
}

func (e *Engine) checkPrecondition(ctx context.Context, h core.Handler, conversationID string) error {
	want := h.Precondition()
	if want == core.PreconditionNone {
		return nil
	}

	exists, err := e.accounts.Exists(ctx, conversationID)
	if err != nil {
		return core.NewServerFault(fmt.Errorf("failed to check account: %w", err))
	}

	switch {
	case want == core.PreconditionUnregistered && exists:
		return core.NewUserError(core.ErrAlreadyRegistered, e.formatter.Combine(
			e.formatter.Failure("Akun ini sudah terasosiasi dengan sebuah NPM"),
			e.formatter.Tip("Gunakan perintah `ganti` untuk mengganti NPM atau `hapus` untuk menghapus akun"),
		))
	case want == core.PreconditionRegistered && !exists:
		return core.NewUserError(core.ErrNotRegistered, e.formatter.Combine(
			e.formatter.Failure("Akun ini belum terasosiasi dengan NPM manapun"),
			e.formatter.Tip("Gunakan perintah `daftar` untuk mendaftarkan NPM anda"),
		))
	}
	return nil
}

func (e *Engine) tooManyArguments(h core.Handler) error {
	sections := []string{
		e.formatter.Failure("Terlalu banyak argumen"),
		e.formatter.Usage(usageOf(h)),
	}
	if ex, ok := h.(interface{ Examples() []string }); ok {
		sections = append(sections, e.formatter.Examples(ex.Examples()))
	}
	return core.NewUserError(core.ErrTooManyArguments, e.formatter.Combine(sections...))
}

func usageOf(h core.Handler) string {
	if u, ok := h.(interface{ Usage() string }); ok {
		return u.Usage()
	}
	return h.Name()
}
