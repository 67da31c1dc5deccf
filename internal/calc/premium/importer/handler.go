package importer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"Labusch/internal/calc/strength"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Catalog strength.Catalog
	Model   strength.Model
	Log     *slog.Logger
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		http.Error(w, "File too big", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	model, err := h.Model.WithExponent(r.FormValue("exponent"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := ReadRows(file)
	if errors.Is(err, ErrEmptySheet) {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}

	rep := Evaluate(model, h.Catalog, rows)
	if h.Log != nil {
		h.Log.Info("importer.done", "count", rep.Count, "failed", rep.Failed)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}
