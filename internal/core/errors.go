package core

import (
	"errors"
	"fmt"
	"net/http"
)

// User-facing error kinds. Match them with errors.Is.
var (
	ErrUnresolvable         = errors.New("unresolvable intent")
	ErrInvalidIdentifier    = errors.New("invalid identifier")
	ErrMismatchedIdentifier = errors.New("mismatched identifier")
	ErrAlreadyRegistered    = errors.New("already registered")
	ErrNotRegistered        = errors.New("not registered")
	ErrIdentifierTaken      = errors.New("identifier taken")
	ErrTooManyArguments     = errors.New("too many arguments")
	ErrWrongFormat          = errors.New("wrong format")
)

// Server fault kinds.
var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnknownCommand    = errors.New("unknown command")
	ErrMissingRecord     = errors.New("missing record")
	ErrUnsupportedReply  = errors.New("unsupported reply type")
)

const ServerFaultMessage = "Maaf, terjadi kesalahan pada server. Silakan coba lagi nanti."

// UserError is caused by input the user can correct. Message is shown to the
// user verbatim; the dialogue state is not advanced.
type UserError struct {
	Kind    error
	Message string
}

func NewUserError(kind error, message string) error {
	return &UserError{Kind: kind, Message: message}
}

func (e *UserError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

func (e *UserError) Unwrap() error {
	return e.Kind
}

// ServerFault is an invariant violation or a collaborator failure. It is
// logged and answered with ServerFaultMessage.
type ServerFault struct {
	Status int
	Err    error
}

func NewServerFault(err error) error {
	return &ServerFault{Status: http.StatusInternalServerError, Err: err}
}

// Faultf builds a ServerFault wrapping kind with extra context.
func Faultf(kind error, format string, args ...any) error {
	return NewServerFault(fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)))
}

func (e *ServerFault) Error() string {
	return fmt.Sprintf("server fault (%d): %v", e.Status, e.Err)
}

func (e *ServerFault) Unwrap() error {
	return e.Err
}

func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// ErrorReply turns any error into the reply a transport should send.
// Errors that are not UserErrors are treated as server faults.
func ErrorReply(err error) Reply {
	var ue *UserError
	if errors.As(err, &ue) {
		return Text(ue.Message)
	}
	return Text(ServerFaultMessage)
}
