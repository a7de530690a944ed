package logging

// An io.Writer implementation that logs each line written to it.

import (
	"bytes"
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type LogWriter struct {
	logger zerolog.Logger
	level  zerolog.Level
	// partial line kept until its newline arrives
	pending []byte
}

// Writer logs every line written to it at level, tagged with the job name.
func Writer(ctx context.Context, job string, level zerolog.Level) *LogWriter {
	return &LogWriter{
		level:  level,
		logger: log.Ctx(ctx).With().Str("job", job).Logger(),
	}
}

func (w *LogWriter) Write(p []byte) (n int, err error) {
	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		w.emit(w.pending[:i])
		w.pending = w.pending[i+1:]
	}
	return len(p), nil
}

// Close logs a trailing line without newline.
func (w *LogWriter) Close() error {
	w.emit(w.pending)
	w.pending = nil
	return nil
}

func (w *LogWriter) emit(line []byte) {
	if len(bytes.TrimSpace(line)) == 0 {
		return
	}
	w.logger.WithLevel(w.level).Msg(string(line))
}
