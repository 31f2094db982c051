package installer

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputStep asks for a single env var. Empty input keeps the default.
type InputStep struct {
	prompt   string
	key      string
	def      string
	validate func(string) error
	when     func(*InstallState) bool
	input    textinput.Model
	err      error
}

func newInputStep(prompt, key, placeholder string, secret bool) *InputStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = placeholder
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}

	return &InputStep{
		prompt: prompt,
		key:    key,
		input:  ti,
	}
}

func NewTelegramTokenStep() Step {
	s := newInputStep("Enter your Telegram Bot Token:", "TELEGRAM_TOKEN", "123456789:ABCDEF...", true)
	s.validate = required
	s.when = (*InstallState).wantsTelegram
	return s
}

func NewLineSecretStep() Step {
	s := newInputStep("Enter your LINE Channel Secret:", "LINE_CHANNEL_SECRET", "", true)
	s.validate = required
	s.when = (*InstallState).wantsLine
	return s
}

func NewLineTokenStep() Step {
	s := newInputStep("Enter your LINE Channel Access Token:", "LINE_CHANNEL_TOKEN", "", true)
	s.validate = required
	s.when = (*InstallState).wantsLine
	return s
}

func NewRedisAddrStep() Step {
	s := newInputStep("Enter the Redis address:", "REDIS_ADDR", "localhost:6379", false)
	s.def = "localhost:6379"
	s.when = (*InstallState).wantsRedis
	return s
}

func NewIdentifierLengthStep() Step {
	s := newInputStep("How many digits does a student number (NPM) have?", "IDENTIFIER_LENGTH", "8", false)
	s.def = "8"
	s.validate = positiveInt
	return s
}

// Skip reports whether earlier answers make this question irrelevant.
func (s *InputStep) Skip(state *InstallState) bool {
	return s.when != nil && !s.when(state)
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			value := s.input.Value()
			if value == "" {
				value = s.def
			}
			if s.validate != nil {
				if s.err = s.validate(value); s.err != nil {
					return s, nil
				}
			}
			if value != "" {
				state.EnvVars[s.key] = value
			}
			return nil, nil
		}
	}
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	view := s.prompt + "\n\n" + s.input.View() + "\n\n"
	if s.err != nil {
		view += errorStyle.Render(s.err.Error()) + "\n\n"
	}
	return view + "(press enter to confirm)\n"
}

func required(v string) error {
	if v == "" {
		return fmt.Errorf("a value is required")
	}
	return nil
}

func positiveInt(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fmt.Errorf("%q is not a positive number", v)
	}
	return nil
}
