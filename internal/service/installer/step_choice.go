package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ChoiceStep offers a fixed list and stores the picked entry.
type ChoiceStep struct {
	title   string
	choices []string
	cursor  int
	store   func(state *InstallState, choice string)
}

func newChoiceStep(title string, choices []string, store func(*InstallState, string)) *ChoiceStep {
	return &ChoiceStep{
		title:   title,
		choices: choices,
		store:   store,
	}
}

const choiceChannel = "channel"

func NewChannelStep() Step {
	return newChoiceStep(
		"Select the chat channels to serve:",
		[]string{channelCLI, channelTelegram, channelLine, channelBoth},
		func(state *InstallState, choice string) {
			state.Choices[choiceChannel] = choice
		},
	)
}

func NewStateBackendStep() Step {
	return newChoiceStep(
		"Where should dialogue states be kept?",
		[]string{backendSQLite, backendRedis},
		func(state *InstallState, choice string) {
			state.EnvVars["STATE_BACKEND"] = choice
		},
	)
}

func (s *ChoiceStep) Init() tea.Cmd {
	return nil
}

func (s *ChoiceStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			s.store(state, s.choices[s.cursor])
			return nil, nil
		}
	}
	return s, nil
}

func (s *ChoiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.title + "\n\n")
	for i, choice := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("❯ %s", choice)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", choice)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
