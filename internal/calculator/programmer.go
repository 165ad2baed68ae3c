package calculator

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"go-calculator/internal/mode"
	"go-calculator/internal/programmer"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Convert re-renders a value in another base, or in every base when no
// target is given.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "programmer.convert", func(ctx context.Context, span trace.Span) (any, error) {
		var req ConvertRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, err
		}

		span.SetAttributes(
			attribute.String("calculator.from", string(req.From)),
			attribute.String("calculator.to", string(req.To)),
		)

		all, err := programmer.ConvertAll(req.Value, req.From)
		if err != nil {
			return nil, err
		}
		resp := ConvertResponse{Value: req.Value, From: req.From, To: req.To, Bases: all}

		if req.To != "" {
			resp.Result, err = programmer.ConvertBase(req.Value, req.From, req.To)
			if err != nil {
				return nil, err
			}
			expression := fmt.Sprintf("%s (%s) to %s", req.Value, req.From, req.To)
			h.record(ctx, expression, resp.Result, mode.Programmer)
		}
		return resp, nil
	})
}

// bitwiseOps maps request op names to their 32-bit implementation and a
// display template for history.
var bitwiseOps = map[string]func(req BitwiseRequest) (int64, string, error){
	"and": func(req BitwiseRequest) (int64, string, error) {
		return int64(programmer.And(req.A, req.B)), fmt.Sprintf("%d AND %d", req.A, req.B), nil
	},
	"or": func(req BitwiseRequest) (int64, string, error) {
		return int64(programmer.Or(req.A, req.B)), fmt.Sprintf("%d OR %d", req.A, req.B), nil
	},
	"xor": func(req BitwiseRequest) (int64, string, error) {
		return int64(programmer.Xor(req.A, req.B)), fmt.Sprintf("%d XOR %d", req.A, req.B), nil
	},
	"not": func(req BitwiseRequest) (int64, string, error) {
		return int64(programmer.Not(req.A)), fmt.Sprintf("NOT %d", req.A), nil
	},
	"left-shift": func(req BitwiseRequest) (int64, string, error) {
		return int64(programmer.LeftShift(req.A, req.Positions)), fmt.Sprintf("%d << %d", req.A, req.Positions), nil
	},
	"right-shift": func(req BitwiseRequest) (int64, string, error) {
		return int64(programmer.RightShift(req.A, req.Positions)), fmt.Sprintf("%d >> %d", req.A, req.Positions), nil
	},
	"rotate-left": func(req BitwiseRequest) (int64, string, error) {
		v, err := programmer.RotateLeft(uint32(req.A), req.Positions, req.width())
		return int64(v), fmt.Sprintf("%d ROL %d (%d bits)", req.A, req.Positions, req.width()), err
	},
	"rotate-right": func(req BitwiseRequest) (int64, string, error) {
		v, err := programmer.RotateRight(uint32(req.A), req.Positions, req.width())
		return int64(v), fmt.Sprintf("%d ROR %d (%d bits)", req.A, req.Positions, req.width()), err
	},
	"twos-complement": func(req BitwiseRequest) (int64, string, error) {
		return int64(programmer.TwosComplement(req.A)), fmt.Sprintf("-(%d)", req.A), nil
	},
	"get-bit": func(req BitwiseRequest) (int64, string, error) {
		return int64(programmer.GetBit(req.A, req.Bit)), fmt.Sprintf("bit %d of %d", req.Bit, req.A), nil
	},
	"set-bit": func(req BitwiseRequest) (int64, string, error) {
		return int64(programmer.SetBit(req.A, req.Bit, req.On)), fmt.Sprintf("set bit %d of %d to %t", req.Bit, req.A, req.On), nil
	},
	"count-bits": func(req BitwiseRequest) (int64, string, error) {
		return int64(programmer.CountSetBits(req.A)), fmt.Sprintf("popcount %d", req.A), nil
	},
}

// Bitwise applies one fixed-width bitwise operation.
func (h *Handler) Bitwise(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "programmer.bitwise", func(ctx context.Context, span trace.Span) (any, error) {
		var req BitwiseRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, err
		}
		op, ok := bitwiseOps[req.Op]
		if !ok {
			return nil, fmt.Errorf("%w: unknown bitwise op %q", errBadBody, req.Op)
		}

		span.SetAttributes(attribute.String("calculator.bitwise_op", req.Op))

		result, expression, err := op(req)
		if err != nil {
			return nil, err
		}
		recordResult(ctx, span, "programmer.bitwise", float64(result))

		bases := make(map[programmer.Base]string, len(programmer.Bases))
		for _, b := range programmer.Bases {
			bases[b], _ = programmer.Format(result, b)
		}

		display := strconv.FormatInt(result, 10)
		h.record(ctx, expression, display, mode.Programmer)

		return BitwiseResponse{Op: req.Op, Result: result, Bases: bases}, nil
	})
}
