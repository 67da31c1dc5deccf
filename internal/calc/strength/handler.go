package strength

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Input struct {
	Elements []struct {
		Name          string  `json:"name"`
		Concentration float64 `json:"concentration"`
	} `json:"elements"`
	Exponent string `json:"exponent"`
}

type Handler struct {
	Catalog Catalog
	Model   Model
	Log     *slog.Logger
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	model, err := h.Model.WithExponent(input.Exponent)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	names := make([]string, len(input.Elements))
	conc := make([]float64, len(input.Elements))
	for i, e := range input.Elements {
		names[i] = e.Name
		conc[i] = e.Concentration
	}
	elements, err := Resolve(h.Catalog, names...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	members, err := Compose(elements, conc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := model.SolidSolutionStrength(members)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.Log != nil {
		h.Log.Debug("strength.calc", "elements", res.Elements, "strength_mpa", res.Strength)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
