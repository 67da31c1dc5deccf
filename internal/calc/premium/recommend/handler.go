package recommend

import (
	"encoding/json"
	"net/http"
	"strconv"

	"Labusch/internal/calc/strength"
	"Labusch/internal/calc/sweep"
)

type Handler struct {
	Catalog   strength.Catalog
	Model     strength.Model
	Step      float64
	MaxPoints int
}

// Pairs serves GET ?top=N&exponent=2/3&step=0.05.
func (h *Handler) Pairs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	top := 0
	if s := q.Get("top"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid top", http.StatusBadRequest)
			return
		}
		top = n
	}
	step := h.Step
	if s := q.Get("step"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			http.Error(w, "Invalid step", http.StatusBadRequest)
			return
		}
		step = v
	}
	model, err := h.Model.WithExponent(q.Get("exponent"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := Pairs(r.Context(), h.Catalog, model, step, top, h.MaxPoints)
	if err != nil {
		http.Error(w, err.Error(), sweep.StatusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
