package core

import "context"

// Grammar tells the engine how to feed an utterance into a handler.
type Grammar int

const (
	// GrammarFragments splits the utterance on whitespace and feeds one
	// fragment per state, so a multi-turn command can be sent in one line.
	GrammarFragments Grammar = iota
	// GrammarWhole passes the utterance unchanged to a single transition.
	GrammarWhole
)

// Precondition is checked against the AccountStore once per step.
type Precondition int

const (
	PreconditionNone Precondition = iota
	PreconditionRegistered
	PreconditionUnregistered
)

// Handler is one command and its dialogue state machine.
//
// A handler with a non-empty Keywords set is a fallback handler: it is never
// selected by its name, only by keyword scoring of free text.
type Handler interface {
	Name() string
	Description() string
	Keywords() []string
	Grammar() Grammar
	Precondition() Precondition
	// States is the number of transition states, counted from StateIdle.
	States() int
	Transition(ctx context.Context, conversationID string, state State, input string) (Result, error)
}

// ResolveMethod records how a handler was selected.
type ResolveMethod string

const (
	ResolveExact   ResolveMethod = "exact"
	ResolveKeyword ResolveMethod = "keyword"
)

// Resolution is the outcome of intent resolution: exactly one handler.
type Resolution struct {
	Handler Handler
	Text    string
	Method  ResolveMethod
}

type IntentResolver interface {
	Resolve(text string) (Resolution, error)
	Lookup(name string) (Handler, error)
	Handlers() []Handler
}

type DialogueEngine interface {
	Step(ctx context.Context, h Handler, state State, text, conversationID string) (Result, error)
}

// Dispatcher is what transports call for every inbound utterance.
type Dispatcher interface {
	Handle(ctx context.Context, conversationID, text string) (Reply, error)
}
