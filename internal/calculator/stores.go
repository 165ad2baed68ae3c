package calculator

import (
	"context"
	"fmt"
	"net/http"

	"go-calculator/internal/calcerr"
	"go-calculator/internal/history"
	"go-calculator/internal/memory"
	"go-calculator/internal/mode"
	"go-calculator/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ListHistory returns history newest first, optionally filtered by ?mode=.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "history.list", func(ctx context.Context, span trace.Span) (any, error) {
		entries := h.history.Entries()
		if q := r.URL.Query().Get("mode"); q != "" {
			m, err := mode.Parse(q)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", calcerr.ErrInvalidInput, err)
			}
			entries = h.history.ByMode(m)
		}
		if entries == nil {
			entries = []history.Entry{}
		}
		span.SetAttributes(attribute.Int("calculator.history.entries", len(entries)))
		return HistoryResponse{Entries: entries}, nil
	})
}

func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "history.clear", func(context.Context, trace.Span) (any, error) {
		return nil, h.history.Clear()
	})
}

// DeleteHistory removes one entry. Unknown ids succeed without effect.
func (h *Handler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.serve(w, r, "history.delete", func(context.Context, trace.Span) (any, error) {
		return nil, h.history.Delete(id)
	})
}

func (h *Handler) GetMemory(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "memory.get", func(context.Context, trace.Span) (any, error) {
		return h.memoryView(nil), nil
	})
}

// Memory applies the operation named by the {op} URL parameter. Without a
// slot in the body, value operations target the active slot.
func (h *Handler) Memory(w http.ResponseWriter, r *http.Request) {
	op := chi.URLParam(r, "op")
	h.serve(w, r, "memory."+op, func(ctx context.Context, span trace.Span) (any, error) {
		var req MemoryRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, err
		}
		if err := finite("value", req.Value); err != nil {
			return nil, err
		}

		slot := memory.ActiveSlot
		if req.Slot != nil {
			if *req.Slot < 0 {
				return nil, fmt.Errorf("%w: slot must not be negative", calcerr.ErrInvalidInput)
			}
			slot = *req.Slot
		}
		span.SetAttributes(attribute.Int("calculator.memory.slot", slot))

		var err error
		switch op {
		case "add":
			err = h.memory.AddAt(slot, req.Value)
		case "subtract":
			err = h.memory.SubtractAt(slot, req.Value)
		case "store":
			err = h.memory.StoreAt(slot, req.Value)
		case "recall":
			v := h.memory.RecallAt(slot)
			return h.memoryView(&v), nil
		case "clear":
			if req.Slot == nil {
				err = h.memory.ClearAll()
			} else {
				err = h.memory.ClearAt(slot)
			}
		case "new-slot":
			var ok bool
			_, ok, err = h.memory.NewSlot(req.Value)
			if err == nil && !ok {
				err = fmt.Errorf("%w: memory is full (%d slots)", calcerr.ErrInvalidInput, memory.Capacity)
			}
		case "select":
			switch {
			case req.Slot == nil:
				err = fmt.Errorf("%w: slot is required", calcerr.ErrInvalidInput)
			case !h.memory.Select(slot):
				err = fmt.Errorf("%w: no memory slot %d", calcerr.ErrInvalidInput, slot)
			}
		case "label":
			err = h.memory.SetLabel(slot, req.Label)
		default:
			err = fmt.Errorf("%w: unknown memory operation %q", errBadBody, op)
		}
		if err != nil {
			return nil, err
		}
		return h.memoryView(nil), nil
	})
}

func (h *Handler) memoryView(recalled *float64) MemoryResponse {
	slots := h.memory.Slots()
	views := make([]SlotView, len(slots))
	for i, s := range slots {
		views[i] = SlotView{Index: i, Value: s.Value, Display: memory.Format(s.Value), Label: s.Label}
	}
	return MemoryResponse{Slots: views, Active: h.memory.Active(), Recalled: recalled}
}

func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "preferences.get", func(context.Context, trace.Span) (any, error) {
		return h.preferences()
	})
}

// PutPreferences updates whichever of theme and last_mode the body names.
func (h *Handler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "preferences.put", func(context.Context, trace.Span) (any, error) {
		var req Preferences
		if err := decodeJSON(r, &req); err != nil {
			return nil, err
		}

		if req.Theme != "" {
			t, err := storage.ParseTheme(string(req.Theme))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", calcerr.ErrInvalidInput, err)
			}
			if err := storage.SetTheme(h.prefs, t); err != nil {
				return nil, fmt.Errorf("saving theme: %w", err)
			}
		}
		if req.LastMode != "" {
			m, err := mode.Parse(string(req.LastMode))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", calcerr.ErrInvalidInput, err)
			}
			if err := storage.SetLastMode(h.prefs, m); err != nil {
				return nil, fmt.Errorf("saving last mode: %w", err)
			}
		}
		return h.preferences()
	})
}

func (h *Handler) preferences() (Preferences, error) {
	theme, err := storage.GetTheme(h.prefs)
	if err != nil {
		return Preferences{}, err
	}
	last, err := storage.GetLastMode(h.prefs)
	if err != nil {
		return Preferences{}, err
	}
	return Preferences{Theme: theme, LastMode: last}, nil
}
