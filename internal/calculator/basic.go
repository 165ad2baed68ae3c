package calculator

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go-calculator/internal/basic"
	"go-calculator/internal/mode"
	"go-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// CreateSession opens a new basic-mode engine.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "basic.session.create", func(ctx context.Context, span trace.Span) (any, error) {
		id, state := h.sessions.Create()
		span.SetAttributes(attribute.String("calculator.session", id))
		return SessionResponse{ID: id, State: state, Expression: state.Current}, nil
	})
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, "basic.session.get", func(e *basic.Engine) error { return nil })
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.serve(w, r, "basic.session.delete", func(ctx context.Context, span trace.Span) (any, error) {
		if !h.sessions.Delete(id) {
			return nil, errSessionNotFound
		}
		return nil, nil
	})
}

func (h *Handler) InputDigit(w http.ResponseWriter, r *http.Request) {
	var req DigitRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "basic.digit", err)
		return
	}
	if len(req.Digit) != 1 || req.Digit[0] < '0' || req.Digit[0] > '9' {
		h.fail(w, r, "basic.digit", fmt.Errorf("%w: digit must be a single character 0-9", errBadBody))
		return
	}
	h.withSession(w, r, "basic.digit", func(e *basic.Engine) error {
		e.InputDigit(req.Digit)
		return nil
	})
}

func (h *Handler) InputDecimal(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, "basic.decimal", func(e *basic.Engine) error {
		e.InputDecimal()
		return nil
	})
}

// PerformOperation folds the pending operation and queues the next one.
// "=" records the completed calculation in history.
func (h *Handler) PerformOperation(w http.ResponseWriter, r *http.Request) {
	var req OperationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "basic.operation", err)
		return
	}
	op, err := basic.ParseOperator(req.Operator)
	if err != nil {
		h.fail(w, r, "basic.operation", err)
		return
	}

	h.withSession(w, r, "basic.operation", func(e *basic.Engine) error {
		pending := e.State().Operator != ""
		expression := e.Expression()
		if _, err := e.PerformOperation(op); err != nil {
			return err
		}
		if op == basic.Equals && pending {
			h.record(r.Context(), expression, e.CurrentValue(), mode.Basic)
		}
		return nil
	})
}

// Unary returns a handler for one of the single-operand engine actions.
func (h *Handler) Unary(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.withSession(w, r, "basic."+action, func(e *basic.Engine) error {
			switch action {
			case "percentage":
				e.Percentage()
			case "square-root":
				_, err := e.SquareRoot()
				return err
			case "square":
				e.Square()
			case "negate":
				e.Negate()
			case "clear":
				e.Clear()
			case "clear-entry":
				e.ClearEntry()
			default:
				return fmt.Errorf("%w: unknown action %q", errBadBody, action)
			}
			return nil
		})
	}
}

// Calculate applies one binary operator to two operands without a session.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "basic.calculate", func(ctx context.Context, span trace.Span) (any, error) {
		var req CalcRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, err
		}
		if err := errors.Join(finite("a", req.A), finite("b", req.B)); err != nil {
			return nil, err
		}
		op, err := basic.ParseOperator(req.Operator)
		if err != nil {
			return nil, err
		}

		span.SetAttributes(
			attribute.Float64("calculator.a", req.A),
			attribute.Float64("calculator.b", req.B),
			attribute.String("calculator.operator", string(op)),
		)

		result, err := basic.Calculate(req.A, req.B, op)
		if err != nil {
			return nil, err
		}
		recordResult(ctx, span, "basic.calculate", result)

		display := basic.FormatNumber(result)
		expression := fmt.Sprintf("%s %s %s", basic.FormatNumber(req.A), op, basic.FormatNumber(req.B))
		h.record(ctx, expression, display, mode.Basic)

		return CalcResponse{
			Operation: string(op),
			A:         req.A,
			B:         req.B,
			Result:    numberPtr(result),
			Display:   display,
		}, nil
	})
}

// withSession runs fn against the engine named by the {id} URL parameter and
// responds with the resulting state. A failing engine is cleared before the
// error is reported.
func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, opName string, fn func(e *basic.Engine) error) {
	id := chi.URLParam(r, "id")
	h.serve(w, r, opName, func(ctx context.Context, span trace.Span) (any, error) {
		span.SetAttributes(attribute.String("calculator.session", id))

		var resp SessionResponse
		err := h.sessions.With(id, func(e *basic.Engine) error {
			if err := fn(e); err != nil {
				e.Clear()
				observability.LoggerWithTrace(ctx).Debug("engine cleared after failure",
					zap.String("session", id),
					zap.Error(err),
				)
				return err
			}
			resp = SessionResponse{ID: id, State: e.State(), Expression: e.Expression()}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return resp, nil
	})
}

// fail reports an error that occurred before the operation started.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, opName string, err error) {
	h.serve(w, r, opName, func(context.Context, trace.Span) (any, error) { return nil, err })
}
