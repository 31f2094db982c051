package env

import (
	"testing"
	"time"

	envparse "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB"`
	TTL      time.Duration `env:"REDIS_STATE_TTL" envDefault:"24h"`
	Enabled  bool          `env:"ENABLE_LINE"`
	Channels []string      `env:"CHANNELS"`
	Token    string        `env:"LINE_CHANNEL_TOKEN,required"`
}

func TestMarshalEnv(t *testing.T) {
	c := &sample{
		Addr:     "redis:6379",
		DB:       2,
		TTL:      90 * time.Minute,
		Enabled:  true,
		Channels: []string{"telegram", "line"},
		Token:    "secret",
	}

	out, err := MarshalEnv(c, Redact("LINE_CHANNEL_TOKEN"))
	require.NoError(t, err)

	assert.Equal(t, "REDIS_ADDR=redis:6379\n"+
		"REDIS_DB=2\n"+
		"REDIS_STATE_TTL=1h30m0s\n"+
		"ENABLE_LINE=true\n"+
		"CHANNELS=telegram,line\n"+
		"LINE_CHANNEL_TOKEN=******\n", out)
}

func TestMarshalEnv_ParsesBack(t *testing.T) {
	c := &sample{Addr: "redis:6379", TTL: 45 * time.Second, Token: "t"}

	out, err := MarshalEnv(c)
	require.NoError(t, err)

	vars, err := godotenv.Unmarshal(out)
	require.NoError(t, err)

	parsed, err := envparse.ParseAsWithOptions[sample](envparse.Options{Environment: vars})
	require.NoError(t, err)
	assert.Equal(t, c.Addr, parsed.Addr)
	assert.Equal(t, c.TTL, parsed.TTL)
	assert.Equal(t, c.Token, parsed.Token)
}

func TestMarshalEnv_RejectsNonPointer(t *testing.T) {
	_, err := MarshalEnv(sample{})
	assert.Error(t, err)
}
