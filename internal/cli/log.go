package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress measures a batch of compilations. It is not safe for
// concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
	done   int
	failed int
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// record counts one finished document.
func (p *progress) record(err error) {
	p.done++
	if err != nil {
		p.failed++
	}
}

// finish logs the batch summary with the elapsed time rounded to the
// millisecond.
func (p *progress) finish(msg string) {
	p.logger.Info(msg,
		"documents", p.done,
		"failed", p.failed,
		"duration", time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to
// log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
