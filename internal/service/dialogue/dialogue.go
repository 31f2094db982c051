package dialogue

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/asisten/internal/core"
	"github.com/sandevgo/asisten/internal/service/metrics"
	"github.com/sandevgo/asisten/pkg/log"
)

type resolver interface {
	core.IntentResolver
	Exact(text string) (core.Handler, bool)
}

// Service is the inbound entry point shared by all transports: it routes an
// utterance, steps the dialogue and persists the next state.
type Service struct {
	resolver resolver
	engine   core.DialogueEngine
	states   core.StateStore
	metrics  *metrics.Dialogue
}

func NewService(
	resolver resolver,
	engine core.DialogueEngine,
	states core.StateStore,
	m *metrics.Dialogue,
) *Service {
	return &Service{
		resolver: resolver,
		engine:   engine,
		states:   states,
		metrics:  m,
	}
}

// Handle processes one utterance using the stored state of the conversation.
// Callers must not run Handle concurrently for the same conversation id.
func (s *Service) Handle(ctx context.Context, conversationID, text string) (core.Reply, error) {
	ctx = log.WithConversation(ctx, conversationID)

	current, err := s.states.Load(ctx, conversationID)
	if err != nil {
		return nil, core.NewServerFault(fmt.Errorf("failed to load state: %w", err))
	}

	h, state, err := s.route(current, text)
	if err != nil {
		s.observe(ctx, "", err, 0)
		return nil, err
	}

	result, err := s.step(ctx, h, state, text, conversationID)
	if err != nil {
		return nil, err
	}

	if result.State == core.StateIdle {
		err = s.states.Clear(ctx, conversationID)
	} else {
		err = s.states.Save(ctx, conversationID, core.ConversationState{Command: h.Name(), State: result.State})
	}
	if err != nil {
		return nil, core.NewServerFault(fmt.Errorf("failed to persist state: %w", err))
	}

	return result.Reply, nil
}

// StepState processes one utterance with a caller-supplied state, for
// transports that keep dialogue state themselves. command names the handler
// in progress and is ignored when state is idle.
func (s *Service) StepState(ctx context.Context, conversationID string, current core.ConversationState, text string) (core.Result, string, error) {
	ctx = log.WithConversation(ctx, conversationID)

	h, state, err := s.route(current, text)
	if err != nil {
		s.observe(ctx, "", err, 0)
		return core.Result{}, "", err
	}

	result, err := s.step(ctx, h, state, text, conversationID)
	if err != nil {
		return core.Result{}, h.Name(), err
	}
	return result, h.Name(), nil
}

// route picks the handler for text. An exact command word always starts
// that command afresh, even in the middle of another dialogue.
func (s *Service) route(current core.ConversationState, text string) (core.Handler, core.State, error) {
	if current.Idle() {
		res, err := s.resolver.Resolve(text)
		if err != nil {
			s.metrics.Resolved(metrics.MethodUnresolved)
			return nil, 0, err
		}
		s.metrics.Resolved(string(res.Method))
		return res.Handler, core.StateIdle, nil
	}

	if h, ok := s.resolver.Exact(text); ok {
		s.metrics.Resolved(string(core.ResolveExact))
		return h, core.StateIdle, nil
	}

	h, err := s.resolver.Lookup(current.Command)
	if err != nil {
		return nil, 0, err
	}
	return h, current.State, nil
}

func (s *Service) step(ctx context.Context, h core.Handler, state core.State, text, conversationID string) (core.Result, error) {
	start := time.Now()
	result, err := s.engine.Step(ctx, h, state, text, conversationID)
	elapsed := time.Since(start)

	s.metrics.Stepped(h.Name(), outcomeOf(err), elapsed)
	s.observe(ctx, h.Name(), err, elapsed)
	if err != nil {
		return core.Result{}, err
	}

	log.FromCtx(ctx).Debug().
		Str(log.CommandField, h.Name()).
		Int("from", int(state)).
		Int("to", int(result.State)).
		Dur("elapsed", elapsed).
		Msg("dialogue step")
	return result, nil
}

func (s *Service) observe(ctx context.Context, command string, err error, elapsed time.Duration) {
	if err == nil {
		return
	}
	logger := log.FromCtx(ctx)

	if !core.IsUserError(err) {
		logger.Error().Err(err).Str(log.CommandField, command).Dur("elapsed", elapsed).Msg("dialogue step failed")
		return
	}
	logger.Debug().Err(err).Str(log.CommandField, command).Msg("rejected user input")
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case core.IsUserError(err):
		return metrics.OutcomeUserError
	default:
		return metrics.OutcomeFault
	}
}
