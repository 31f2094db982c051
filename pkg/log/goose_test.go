package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGooseLogger_Printf(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := WithConversation(logger.WithContext(context.Background()), "cli@local")

	NewGooseLoggerFromCtx(ctx).Printf("OK   %s (%s)\n", "00001_accounts.sql", "1ms")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "info", entry[zerolog.LevelFieldName])
	assert.Equal(t, "OK   00001_accounts.sql (1ms)", entry[zerolog.MessageFieldName])
	assert.Equal(t, "migrations", entry[ComponentField])
	assert.Equal(t, "cli@local", entry[ConversationField])
}
