package core

import "time"

type AppConfig interface {
	GetRuntimePath() string
	GetDatabasePath() string
	GetStateBackend() string
	IsTelegramSelected() bool
	IsLineSelected() bool
	IsCLISelected() bool
}

type DialogueConfig interface {
	GetIdentifierLength() int
}

type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramPollTimeout() time.Duration
}

type LineConfig interface {
	GetLineChannelSecret() string
	GetLineChannelToken() string
}
