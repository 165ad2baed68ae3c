package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts every calculator mode plus the history, memory and
// preference endpoints onto r.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/basic", func(r chi.Router) {
		r.Post("/calculate", h.Calculate)
		r.Post("/sessions", h.CreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Post("/digit", h.InputDigit)
			r.Post("/decimal", h.InputDecimal)
			r.Post("/operation", h.PerformOperation)
			for _, action := range []string{"percentage", "square-root", "square", "negate", "clear", "clear-entry"} {
				r.Post("/"+action, h.Unary(action))
			}
		})
	})

	r.Post("/scientific/evaluate", h.Evaluate)
	r.Post("/graphing/plot", h.Plot)

	r.Route("/programmer", func(r chi.Router) {
		r.Post("/convert", h.Convert)
		r.Post("/bitwise", h.Bitwise)
	})

	r.Post("/financial/{formula}", h.Financial)

	r.Route("/history", func(r chi.Router) {
		r.Get("/", h.ListHistory)
		r.Delete("/", h.ClearHistory)
		r.Delete("/{id}", h.DeleteHistory)
	})

	r.Route("/memory", func(r chi.Router) {
		r.Get("/", h.GetMemory)
		r.Post("/{op}", h.Memory)
	})

	r.Get("/preferences", h.GetPreferences)
	r.Put("/preferences", h.PutPreferences)
}
