package log

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

const (
	ComponentField     = "component"
	migrationComponent = "migrations"
)

// GooseLogger routes goose migration output into the context logger,
// tagged as the migrations component.
type GooseLogger struct {
	logger zerolog.Logger
}

func (g *GooseLogger) Fatalf(format string, v ...any) {
	g.logger.Fatal().Msg(gooseMessage(format, v...))
}

func (g *GooseLogger) Printf(format string, v ...any) {
	g.logger.Info().Msg(gooseMessage(format, v...))
}

// goose terminates most of its lines with a newline of its own
func gooseMessage(format string, v ...any) string {
	return strings.TrimSpace(fmt.Sprintf(format, v...))
}

func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return &GooseLogger{
		logger: FromCtx(ctx).With().Str(ComponentField, migrationComponent).Logger(),
	}
}
