package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Logger is a no-op until InitLogger runs, so packages and tests can log
// without initialising observability.
var Logger = zap.NewNop()

// InitLogger installs the production JSON logger.
func InitLogger() error {
	l, err := zap.NewProduction()
	if err != nil {
		return err
	}
	Logger = l
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns a child logger carrying trace_id and span_id from
// the active span in ctx, or Logger itself when there is no valid span.
//
// ctx is also attached as a zap.Any field. The otelzap bridge recognises
// context.Context field values and emits the OTLP record with that context,
// which fills the record's native TraceID/SpanID so the log backend can link
// logs to traces. The string fields keep stdout JSON greppable.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return Logger
	}

	return Logger.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
