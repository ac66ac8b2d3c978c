package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/idphoto/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 3 sheets (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks forwards pipeline events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func registerHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
}

func (h *logHooks) OnPlan(_ context.Context, ev observability.PlanEvent) {
	h.logger.Debug("plan", "photo", ev.Photo, "paper", ev.Paper, "rows", ev.Rows, "cols", ev.Cols, "rotated", ev.Rotated)
}

func (h *logHooks) OnRenderStart(_ context.Context, seq uint64) {
	h.logger.Debug("render started", "seq", seq)
}

func (h *logHooks) OnRenderComplete(_ context.Context, seq uint64, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "seq", seq, "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("render finished", "seq", seq, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnRenderStale(_ context.Context, seq, latest uint64) {
	h.logger.Debug("render superseded", "seq", seq, "latest", latest)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
