package history

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"Labusch/internal/auth"
	"Labusch/internal/calc/sweep"
	"Labusch/internal/repo"

	"github.com/gorilla/mux"
)

type Handler struct {
	Store repo.SweepStore
	Log   *slog.Logger
}

// Record stores a finished sweep for the authenticated user.
func (h *Handler) Record(r *http.Request, out sweep.Outcome) error {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		return nil
	}
	rec, err := NewRecord(userID, out)
	if err != nil {
		return err
	}
	_, err = h.Store.SaveSweep(r.Context(), rec)
	return err
}

func NewRecord(userID int, out sweep.Outcome) (repo.SweepRecord, error) {
	points, err := json.Marshal(out.Results)
	if err != nil {
		return repo.SweepRecord{}, err
	}
	return repo.SweepRecord{
		UserID:   userID,
		Kind:     Kind(len(out.Elements)),
		Elements: out.Elements,
		Exponent: out.Exponent,
		Step:     out.Step,
		Count:    out.Points,
		BestConc: out.Best.Concentrations,
		BestMPa:  out.Best.Strength,
		BestGPa:  out.Best.ShearModulus,
		Points:   points,
	}, nil
}

func Kind(n int) string {
	switch n {
	case 2:
		return "binary"
	case 3:
		return "ternary"
	default:
		return strconv.Itoa(n) + "-component"
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	recs, err := h.Store.ListSweeps(r.Context(), userID, limit)
	if err != nil {
		h.logger().Error("history.list", "user_id", userID, "err", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []repo.SweepRecord{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recs)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.Store.GetSweep(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Sweep not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger().Error("history.get", "user_id", userID, "id", id, "err", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

func (h *Handler) logger() *slog.Logger {
	if h.Log != nil {
		return h.Log
	}
	return slog.Default()
}
