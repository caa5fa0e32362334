package recgo

import "log/slog"

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures engine constructor behavior.
type Option func(*options)

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := recgo.NewJSONLogger(slog.LevelInfo)
//	eng, _ := recgo.NewFromSnapshot(snap, recgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
//
// Example with BasicMetricsCollector:
//
//	metrics := &recgo.BasicMetricsCollector{}
//	eng, _ := recgo.NewFromSnapshot(snap, recgo.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
