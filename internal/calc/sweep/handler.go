package sweep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

type Input struct {
	Request
	OmitResults bool `json:"omit_results"`
}

type Handler struct {
	Runner Runner
	Log    *slog.Logger
	// Record, when set, stores the outcome for the requesting user.
	Record func(r *http.Request, out Outcome) error
}

func (h *Handler) Binary(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, 2)
}

func (h *Handler) Ternary(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, 3)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, count int) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(input.Elements) != count {
		http.Error(w, fmt.Sprintf("Expected %d elements", count), http.StatusBadRequest)
		return
	}

	out, err := h.Runner.Run(r.Context(), input.Request)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	if h.Log != nil {
		h.Log.Info("sweep.done", "elements", out.Elements, "exponent", out.Exponent, "points", out.Points, "best_mpa", out.Best.Strength)
	}
	if h.Record != nil {
		if err := h.Record(r, out); err != nil && h.Log != nil {
			h.Log.Error("sweep.record", "err", err)
		}
	}
	if input.OmitResults {
		out.Results = nil
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// StatusFor maps calculator errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrEmptySweep), errors.Is(err, ErrTooManyPoints):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}
