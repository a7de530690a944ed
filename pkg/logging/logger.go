package logging

import (
	"io"
	"os"
	"time"

	"github.com/cedana/graphbench/pkg/config"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

const (
	LOG_TIME_FORMAT = time.TimeOnly
	LOG_CALLER_SKIP = 3 // stack frame depth
)

var Level = zerolog.Disabled

type LineInfoHook struct{}

func (h LineInfoHook) Run(e *zerolog.Event, l zerolog.Level, msg string) {
	if l >= zerolog.ErrorLevel {
		e.Caller(LOG_CALLER_SKIP)
	}
}

func init() {
	InitLogger(config.Global.LogLevel)
}

// InitLogger sets up the global logger. Logs go to stderr so they never mix
// with command output.
func InitLogger(level string) {
	initLogger(os.Stderr, level, !isatty.IsTerminal(os.Stderr.Fd()))
}

func initLogger(out io.Writer, level string, noColor bool) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	Level = parseLevel(level)

	consoleWriter := zerolog.ConsoleWriter{
		Out:          out,
		TimeFormat:   LOG_TIME_FORMAT,
		TimeLocation: time.Local,
		NoColor:      noColor,
	}

	log.Logger = zerolog.New(consoleWriter).
		Level(Level).
		With().
		Timestamp().
		Logger().Hook(LineInfoHook{})
}

func SetLogger(logger zerolog.Logger) {
	log.Logger = logger
}

func SetLevel(level string) {
	Level = parseLevel(level)
	log.Logger = log.Logger.Level(Level)
}

func parseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(level)
	if err != nil || level == "" { // allow turning off logging
		return zerolog.Disabled
	}
	return l
}
