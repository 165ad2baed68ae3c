package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"go-calculator/internal/calcerr"
	"go-calculator/internal/handlers"
	"go-calculator/internal/history"
	"go-calculator/internal/memory"
	"go-calculator/internal/mode"
	"go-calculator/internal/observability"
	"go-calculator/internal/storage"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

var errBadBody = errors.New("invalid request body")

// Handler serves every calculator mode plus the shared history, memory and
// preference endpoints.
type Handler struct {
	sessions *Sessions
	history  *history.Store
	memory   *memory.Store
	prefs    storage.KV
}

func NewHandler(sessions *Sessions, hist *history.Store, mem *memory.Store, prefs storage.KV) *Handler {
	return &Handler{
		sessions: sessions,
		history:  hist,
		memory:   mem,
		prefs:    prefs,
	}
}

// Reload re-reads history and memory from storage after an external change.
func (h *Handler) Reload() error {
	return errors.Join(h.history.Reload(), h.memory.Reload())
}

// opFunc performs one operation. A nil body means 204 No Content.
type opFunc func(ctx context.Context, span trace.Span) (body any, err error)

// serve is the shared envelope for every calculator endpoint: a child span,
// operation metrics, a trace-correlated completion log, and either a JSON
// body or a standardised error response.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, opName string, fn opFunc) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	start := time.Now()
	body, err := fn(ctx, span)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		status, msg := errorStatus(err)
		observability.RecordError(ctx, span, logger, errorCounter, opName, msg, err, status, w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)

	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	if body == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, body)
}

// record adds a calculation to history. A persistence failure is logged and
// does not fail the calculation that produced it.
func (h *Handler) record(ctx context.Context, expression, result string, m mode.Mode) {
	if _, err := h.history.Add(expression, result, m); err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
		observability.LoggerWithTrace(ctx).Warn("history entry not recorded",
			zap.String("mode", string(m)),
			zap.String("expression", expression),
			zap.Error(err),
		)
	}
}

// recordResult publishes a numeric result on the span and the last-result
// gauge. Non-finite values are skipped.
func recordResult(ctx context.Context, span trace.Span, opName string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	resultGauge.Record(ctx, v, metric.WithAttributes(attribute.String("operation", opName)))
	span.AddEvent("computation.complete", trace.WithAttributes(attribute.Float64("result", v)))
	span.SetAttributes(attribute.Float64("calculator.result", v))
}

// errorStatus maps an operation error to an HTTP status and client message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, errSessionNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errBadBody), calcerr.IsUserError(err):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// decodeJSON reads the request body into dst. An empty body leaves dst at
// its zero value.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("%w: %v", errBadBody, err)
}

// finite rejects NaN and infinities in request numbers.
func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", calcerr.ErrInvalidInput, name)
	}
	return nil
}

// numberPtr returns nil for values JSON cannot carry.
func numberPtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
