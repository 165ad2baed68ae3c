package calculator

import (
	"context"
	"fmt"
	"net/http"

	"go-calculator/internal/basic"
	"go-calculator/internal/evaluator"
	"go-calculator/internal/mode"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Evaluate runs one scientific-mode expression.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "scientific.evaluate", func(ctx context.Context, span trace.Span) (any, error) {
		var req EvaluateRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, err
		}
		angle, err := evaluator.ParseAngleMode(req.AngleMode)
		if err != nil {
			return nil, err
		}

		span.SetAttributes(
			attribute.String("calculator.expression", req.Expression),
			attribute.String("calculator.angle_mode", string(angle)),
		)

		result, err := evaluator.New(angle).Evaluate(req.Expression)
		if err != nil {
			return nil, err
		}
		recordResult(ctx, span, "scientific.evaluate", result)

		expression := evaluator.Sanitize(req.Expression)
		display := basic.FormatNumber(result)
		h.record(ctx, expression, display, mode.Scientific)

		return EvaluateResponse{
			Expression: expression,
			AngleMode:  angle,
			Result:     numberPtr(result),
			Display:    display,
		}, nil
	})
}

// Plot samples one or more functions of x over a shared window.
func (h *Handler) Plot(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "graphing.plot", func(ctx context.Context, span trace.Span) (any, error) {
		var req PlotRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, err
		}
		if len(req.Expressions) == 0 {
			return nil, fmt.Errorf("%w: at least one expression is required", errBadBody)
		}
		angle, err := evaluator.ParseAngleMode(req.AngleMode)
		if err != nil {
			return nil, err
		}

		span.SetAttributes(
			attribute.Int("calculator.series", len(req.Expressions)),
			attribute.Float64("calculator.x_min", req.XMin),
			attribute.Float64("calculator.x_max", req.XMax),
		)

		ev := evaluator.New(angle)
		opts := evaluator.PlotOptions{
			XMin:      req.XMin,
			XMax:      req.XMax,
			Intervals: req.Intervals,
			YMin:      req.YMin,
			YMax:      req.YMax,
		}

		series := make([]evaluator.Series, 0, len(req.Expressions))
		for _, expression := range req.Expressions {
			s, err := ev.Plot(expression, opts)
			if err != nil {
				return nil, fmt.Errorf("plotting %q: %w", expression, err)
			}
			series = append(series, s)
		}

		for _, s := range series {
			window := fmt.Sprintf("[%s, %s]", basic.FormatNumber(req.XMin), basic.FormatNumber(req.XMax))
			h.record(ctx, "y = "+s.Expression, window, mode.Graphing)
		}

		return PlotResponse{Series: series}, nil
	})
}
