package core

import (
	"fmt"
	"strings"
)

const (
	AppName       = "Asisten"
	AppUserAgent  = "Asisten-Bot/0.1"
	RepositoryURL = "https://github.com/sandevgo/asisten"
	AppVersion    = "0.1.0"
)

// State is the position of a conversation inside one command's dialogue.
// StateIdle means no command is in progress.
type State int

const StateIdle State = 0

// ConversationState is what a StateStore keeps per conversation.
type ConversationState struct {
	Command string `json:"command"`
	State   State  `json:"state"`
}

func (s ConversationState) Idle() bool {
	return s.Command == "" || s.State == StateIdle
}

// Result is returned by every transition: the state to persist and the reply.
type Result struct {
	State State
	Reply Reply
}

// Reply is renderable content. The set of implementations is closed:
// Text, Carousel and Buttons.
type Reply interface {
	isReply()
}

// Text is a plain message, markdown allowed.
type Text string

// Carousel is a list of selectable items.
type Carousel []string

// Button is one action button; pressing it sends Text back as an utterance.
type Button struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Buttons is a list of action buttons, optionally introduced by a prompt.
type Buttons struct {
	Prompt  string
	Actions []Button
}

func (Text) isReply()     {}
func (Carousel) isReply() {}
func (Buttons) isReply()  {}

// PlainText flattens any reply into a readable string, used by text-only
// channels and for logging.
func PlainText(r Reply) string {
	var sb strings.Builder
	switch v := r.(type) {
	case Text:
		sb.WriteString(string(v))
	case Carousel:
		for i, item := range v {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString("› " + item)
		}
	case Buttons:
		sb.WriteString(v.Prompt)
		for _, b := range v.Actions {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(fmt.Sprintf("› %s (%s)", b.Label, b.Text))
		}
	}
	return sb.String()
}
