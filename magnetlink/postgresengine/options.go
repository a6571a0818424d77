package postgresengine

import (
	"github.com/AntonStoeckl/magnet-links-go/magnetlink"
)

// Option defines a functional option for configuring LinkStore.
type Option func(*LinkStore) error

// WithTableName sets the table name for the LinkStore.
func WithTableName(tableName string) Option {
	return func(ls *LinkStore) error {
		if tableName == "" {
			return magnetlink.ErrEmptyLinksTableName
		}

		ls.linksTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the LinkStore.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Link counts, durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger magnetlink.Logger) Option {
	return func(ls *LinkStore) error {
		ls.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the LinkStore.
// The contextual logger will receive log messages with context information including
// automatic trace/span correlation when tracing is enabled. When both a plain and a
// contextual logger are configured, the contextual logger wins.
func WithContextualLogger(logger magnetlink.ContextualLogger) Option {
	return func(ls *LinkStore) error {
		ls.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the LinkStore.
// The metrics collector will receive performance and operational metrics including
// save/query durations, result counts, and database errors.
func WithMetrics(collector magnetlink.MetricsCollector) Option {
	return func(ls *LinkStore) error {
		ls.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the LinkStore.
// The tracing collector will receive distributed tracing information including
// span creation for save/query operations, context propagation, and error tracking.
func WithTracing(collector magnetlink.TracingCollector) Option {
	return func(ls *LinkStore) error {
		ls.tracingCollector = collector
		return nil
	}
}
