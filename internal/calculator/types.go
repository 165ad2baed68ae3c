package calculator

import (
	"go-calculator/internal/basic"
	"go-calculator/internal/evaluator"
	"go-calculator/internal/history"
	"go-calculator/internal/mode"
	"go-calculator/internal/programmer"
	"go-calculator/internal/storage"
)

// SessionResponse is returned by every basic-mode session endpoint.
type SessionResponse struct {
	ID         string      `json:"id"`
	State      basic.State `json:"state"`
	Expression string      `json:"expression"`
}

// DigitRequest is the JSON body for POST /basic/sessions/{id}/digit.
type DigitRequest struct {
	Digit string `json:"digit"`
}

// OperationRequest is the JSON body for POST /basic/sessions/{id}/operation.
type OperationRequest struct {
	Operator string `json:"operator"`
}

// CalcRequest is the JSON body for POST /basic/calculate.
type CalcRequest struct {
	A        float64 `json:"a"`
	B        float64 `json:"b"`
	Operator string  `json:"operator"`
}

// CalcResponse carries a one-shot calculation. Result is null when the
// value has no JSON representation; Display always renders it.
type CalcResponse struct {
	Operation string   `json:"operation"`
	A         float64  `json:"a"`
	B         float64  `json:"b"`
	Result    *float64 `json:"result"`
	Display   string   `json:"display"`
}

type EvaluateRequest struct {
	Expression string `json:"expression"`
	AngleMode  string `json:"angle_mode"`
}

type EvaluateResponse struct {
	Expression string              `json:"expression"`
	AngleMode  evaluator.AngleMode `json:"angle_mode"`
	Result     *float64            `json:"result"`
	Display    string              `json:"display"`
}

// PlotRequest is the JSON body for POST /graphing/plot. Intervals defaults
// to evaluator.DefaultIntervals.
type PlotRequest struct {
	Expressions []string `json:"expressions"`
	XMin        float64  `json:"x_min"`
	XMax        float64  `json:"x_max"`
	Intervals   int      `json:"intervals"`
	YMin        *float64 `json:"y_min"`
	YMax        *float64 `json:"y_max"`
	AngleMode   string   `json:"angle_mode"`
}

type PlotResponse struct {
	Series []evaluator.Series `json:"series"`
}

// ConvertRequest is the JSON body for POST /programmer/convert. An empty To
// returns only the all-bases view.
type ConvertRequest struct {
	Value string          `json:"value"`
	From  programmer.Base `json:"from"`
	To    programmer.Base `json:"to"`
}

type ConvertResponse struct {
	Value  string                     `json:"value"`
	From   programmer.Base            `json:"from"`
	To     programmer.Base            `json:"to,omitempty"`
	Result string                     `json:"result,omitempty"`
	Bases  map[programmer.Base]string `json:"bases"`
}

// BitwiseRequest is the JSON body for POST /programmer/bitwise. Width
// applies to rotates only and defaults to 32.
type BitwiseRequest struct {
	Op        string `json:"op"`
	A         int32  `json:"a"`
	B         int32  `json:"b"`
	Positions uint   `json:"positions"`
	Width     uint   `json:"width"`
	Bit       uint   `json:"bit"`
	On        bool   `json:"on"`
}

func (r BitwiseRequest) width() uint {
	if r.Width == 0 {
		return programmer.DefaultWidth
	}
	return r.Width
}

type BitwiseResponse struct {
	Op     string                     `json:"op"`
	Result int64                      `json:"result"`
	Bases  map[programmer.Base]string `json:"bases"`
}

// FinancialRequest is the JSON body for POST /financial/{formula}.
// CashFlows is read by npv only.
type FinancialRequest struct {
	Inputs    map[string]float64 `json:"inputs"`
	CashFlows []float64          `json:"cash_flows"`
}

type FinancialResponse struct {
	Formula string             `json:"formula"`
	Inputs  map[string]float64 `json:"inputs"`
	Result  float64            `json:"result"`
	Display string             `json:"display"`
}

type HistoryResponse struct {
	Entries []history.Entry `json:"entries"`
}

// MemoryRequest is the JSON body for POST /memory/{op}. A nil Slot targets
// the active slot.
type MemoryRequest struct {
	Value float64 `json:"value"`
	Slot  *int    `json:"slot"`
	Label string  `json:"label"`
}

type SlotView struct {
	Index   int     `json:"index"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
	Label   string  `json:"label,omitempty"`
}

type MemoryResponse struct {
	Slots    []SlotView `json:"slots"`
	Active   int        `json:"active"`
	Recalled *float64   `json:"recalled,omitempty"`
}

type Preferences struct {
	Theme    storage.Theme `json:"theme"`
	LastMode mode.Mode     `json:"last_mode"`
}
