package report

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Labusch/internal/calc/sweep"
)

type Input struct {
	sweep.Request
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
	TopRows int    `json:"top_rows"`
}

type Handler struct {
	Runner sweep.Runner
	Log    *slog.Logger
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	out, err := h.Runner.Run(r.Context(), input.Request)
	if err != nil {
		http.Error(w, err.Error(), sweep.StatusFor(err))
		return
	}
	pdf := &PDF{
		Title:    input.Title,
		Project:  input.Project,
		Author:   input.Author,
		Notes:    input.Notes,
		Exponent: out.Exponent,
		Step:     out.Step,
		TopRows:  input.TopRows,
	}
	if _, err := sweep.Publish(out.Results, pdf); err != nil {
		if h.Log != nil {
			h.Log.Error("report.render", "err", err)
		}
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	if err := pdf.Write(w); err != nil && h.Log != nil {
		h.Log.Error("report.write", "err", err)
	}
}
