package installer

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep computes derived values and final env var formatting
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(state)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func finalize(state *InstallState) {
	telegram := state.wantsTelegram() && state.EnvVars["TELEGRAM_TOKEN"] != ""
	line := state.wantsLine() && state.EnvVars["LINE_CHANNEL_TOKEN"] != ""

	state.EnvVars["ENABLE_TELEGRAM"] = strconv.FormatBool(telegram)
	state.EnvVars["ENABLE_LINE"] = strconv.FormatBool(line)
	// The local chat stays available when no network channel is configured.
	state.EnvVars["ENABLE_CLI"] = strconv.FormatBool(!telegram && !line)

	if state.EnvVars["STATE_BACKEND"] == "" {
		state.EnvVars["STATE_BACKEND"] = backendSQLite
	}
	if !state.wantsRedis() {
		delete(state.EnvVars, "REDIS_ADDR")
	}
	if state.EnvVars["ASISTEN_DEBUG"] == "" {
		state.EnvVars["ASISTEN_DEBUG"] = "0"
	}
}
