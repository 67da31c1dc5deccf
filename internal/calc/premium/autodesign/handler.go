package autodesign

import (
	"encoding/json"
	"net/http"

	"Labusch/internal/calc/sweep"
)

type Handler struct {
	Runner sweep.Runner
}

func (h *Handler) Optimize(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Optimize(r.Context(), h.Runner, input)
	if err != nil {
		http.Error(w, err.Error(), sweep.StatusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
