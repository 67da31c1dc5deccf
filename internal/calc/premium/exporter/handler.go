package exporter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Labusch/internal/calc/sweep"
)

type Handler struct {
	Runner sweep.Runner
	Log    *slog.Logger
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req sweep.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	out, err := h.Runner.Run(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), sweep.StatusFor(err))
		return
	}

	wb := &Workbook{Exponent: out.Exponent, Step: out.Step}
	defer wb.Close()
	if _, err := sweep.Publish(out.Results, wb); err != nil {
		if h.Log != nil {
			h.Log.Error("exporter.render", "err", err)
		}
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"sweep.xlsx\"")
	if _, err := wb.WriteTo(w); err != nil && h.Log != nil {
		h.Log.Error("exporter.write", "err", err)
	}
}
