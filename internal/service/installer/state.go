package installer

const (
	channelCLI      = "CLI"
	channelTelegram = "Telegram"
	channelLine     = "LINE"
	channelBoth     = "Telegram + LINE"

	backendSQLite = "sqlite"
	backendRedis  = "redis"
)

// InstallState collects answers as env vars; intermediate answers live in
// Choices and never reach the .env file.
type InstallState struct {
	EnvVars map[string]string
	Choices map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
		Choices: make(map[string]string),
	}
}

func (s *InstallState) wantsTelegram() bool {
	c := s.Choices[choiceChannel]
	return c == channelTelegram || c == channelBoth
}

func (s *InstallState) wantsLine() bool {
	c := s.Choices[choiceChannel]
	return c == channelLine || c == channelBoth
}

func (s *InstallState) wantsRedis() bool {
	return s.EnvVars["STATE_BACKEND"] == backendRedis
}
