package calculator

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"

	"go-calculator/internal/basic"
	"go-calculator/internal/calcerr"
	"go-calculator/internal/financial"
	"go-calculator/internal/mode"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// formula describes one financial endpoint: the inputs it reads, defaults
// for the optional ones, and the computation.
type formula struct {
	inputs   []string
	defaults map[string]float64
	flows    bool
	compute  func(in map[string]float64, flows []float64) float64
}

var formulas = map[string]formula{
	"loan-payment": {
		inputs: []string{"principal", "rate", "years"},
		compute: func(in map[string]float64, _ []float64) float64 {
			return financial.LoanPayment(in["principal"], in["rate"], in["years"])
		},
	},
	"compound-interest": {
		inputs:   []string{"principal", "rate", "years", "frequency"},
		defaults: map[string]float64{"frequency": financial.DefaultCompoundingFrequency},
		compute: func(in map[string]float64, _ []float64) float64 {
			return financial.CompoundInterest(in["principal"], in["rate"], in["years"], in["frequency"])
		},
	},
	"future-value": {
		inputs:   []string{"principal", "rate", "years", "frequency"},
		defaults: map[string]float64{"frequency": financial.DefaultCompoundingFrequency},
		compute: func(in map[string]float64, _ []float64) float64 {
			return financial.FutureValue(in["principal"], in["rate"], in["years"], in["frequency"])
		},
	},
	"simple-interest": {
		inputs: []string{"principal", "rate", "years"},
		compute: func(in map[string]float64, _ []float64) float64 {
			return financial.SimpleInterest(in["principal"], in["rate"], in["years"])
		},
	},
	"roi": {
		inputs: []string{"initial", "final"},
		compute: func(in map[string]float64, _ []float64) float64 {
			return financial.ROI(in["initial"], in["final"])
		},
	},
	"straight-line-depreciation": {
		inputs: []string{"cost", "salvage", "life"},
		compute: func(in map[string]float64, _ []float64) float64 {
			return financial.StraightLineDepreciation(in["cost"], in["salvage"], in["life"])
		},
	},
	"declining-balance-depreciation": {
		inputs: []string{"cost", "rate", "year"},
		compute: func(in map[string]float64, _ []float64) float64 {
			return financial.DecliningBalanceDepreciation(in["cost"], in["rate"], in["year"])
		},
	},
	"present-value": {
		inputs: []string{"future_value", "rate", "years"},
		compute: func(in map[string]float64, _ []float64) float64 {
			return financial.PresentValue(in["future_value"], in["rate"], in["years"])
		},
	},
	"annuity-future-value": {
		inputs: []string{"payment", "rate", "years"},
		compute: func(in map[string]float64, _ []float64) float64 {
			return financial.AnnuityFutureValue(in["payment"], in["rate"], in["years"])
		},
	},
	"annuity-present-value": {
		inputs: []string{"payment", "rate", "years"},
		compute: func(in map[string]float64, _ []float64) float64 {
			return financial.AnnuityPresentValue(in["payment"], in["rate"], in["years"])
		},
	},
	"break-even": {
		inputs: []string{"fixed_costs", "price", "variable_cost"},
		compute: func(in map[string]float64, _ []float64) float64 {
			return financial.BreakEvenUnits(in["fixed_costs"], in["price"], in["variable_cost"])
		},
	},
	"npv": {
		inputs: []string{"initial_investment", "rate"},
		flows:  true,
		compute: func(in map[string]float64, flows []float64) float64 {
			return financial.NPV(in["initial_investment"], flows, in["rate"])
		},
	},
}

// Financial evaluates the formula named by the {formula} URL parameter.
func (h *Handler) Financial(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "formula")
	h.serve(w, r, "financial."+name, func(ctx context.Context, span trace.Span) (any, error) {
		f, ok := formulas[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown formula %q", calcerr.ErrInvalidInput, name)
		}

		var req FinancialRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, err
		}

		in, err := f.resolve(req)
		if err != nil {
			return nil, err
		}

		span.SetAttributes(attribute.String("calculator.formula", name))

		result := f.compute(in, req.CashFlows)
		if math.IsNaN(result) || math.IsInf(result, 0) {
			return nil, fmt.Errorf("%w: %s is undefined for these inputs", calcerr.ErrDomain, name)
		}
		recordResult(ctx, span, "financial."+name, result)

		rounded := financial.RoundCents(result)
		display := basic.FormatNumber(rounded)
		h.record(ctx, f.describe(name, in), display, mode.Financial)

		return FinancialResponse{
			Formula: name,
			Inputs:  in,
			Result:  rounded,
			Display: display,
		}, nil
	})
}

// resolve fills defaults and validates every input the formula reads.
func (f formula) resolve(req FinancialRequest) (map[string]float64, error) {
	in := make(map[string]float64, len(f.inputs))
	for _, name := range f.inputs {
		v, ok := req.Inputs[name]
		if !ok {
			v, ok = f.defaults[name]
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s is required", calcerr.ErrInvalidInput, name)
		}
		if err := financial.Validate(name, v); err != nil {
			return nil, err
		}
		in[name] = v
	}

	if f.flows {
		if len(req.CashFlows) == 0 {
			return nil, fmt.Errorf("%w: cash_flows is required", calcerr.ErrInvalidInput)
		}
		for i, cf := range req.CashFlows {
			if math.IsNaN(cf) || math.IsInf(cf, 0) {
				return nil, fmt.Errorf("%w: cash flow %d must be a valid number", calcerr.ErrInvalidInput, i+1)
			}
		}
	}
	return in, nil
}

func (f formula) describe(name string, in map[string]float64) string {
	args := make([]string, 0, len(f.inputs))
	for _, k := range f.inputs {
		args = append(args, k+"="+basic.FormatNumber(in[k]))
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}
