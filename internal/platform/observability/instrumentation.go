package observability

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

// Enabled reports whether instrumentation is active: Setup was called
// with a logger and the enabled toggle on.
func Enabled() bool {
	logger, cfg := currentLogger()
	return logger != nil && cfg.Enabled
}

// StartSpan brackets one pipeline stage (an HTTP request, payload decode,
// feature extraction, scoring) with debug start/finish records. The
// returned finish func takes the stage error, if any, and must be called
// exactly once. When instrumentation is off both calls are no-ops.
func StartSpan(ctx context.Context, component, stage string) (context.Context, func(error)) {
	logger, cfg := currentLogger()
	if logger == nil || !cfg.Enabled {
		return ctx, func(error) {}
	}

	start := time.Now()
	logger.LogAttrs(ctx, slog.LevelDebug, "[obs] stage start",
		slog.String("component", component),
		slog.String("stage", stage),
	)

	return ctx, func(err error) {
		attrs := []slog.Attr{
			slog.String("component", component),
			slog.String("stage", stage),
			slog.Duration("elapsed", time.Since(start)),
		}
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelError
			attrs = append(attrs, slog.Any("error", err))
		}
		logger.LogAttrs(ctx, level, "[obs] stage finished", attrs...)
	}
}

// RecordMetric emits one datapoint through the structured logger. Label
// keys are sorted so repeated datapoints keep a stable attribute order.
func RecordMetric(ctx context.Context, name string, value float64, labels map[string]string) {
	logger, cfg := currentLogger()
	if logger == nil || !cfg.Enabled {
		return
	}

	attrs := make([]slog.Attr, 0, len(labels)+2)
	attrs = append(attrs,
		slog.String("metric", name),
		slog.Float64("value", value),
	)

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.String(k, labels[k]))
	}

	logger.LogAttrs(ctx, slog.LevelDebug, "[obs] metric", attrs...)
}
