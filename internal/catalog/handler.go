package catalog

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	Catalog *Static
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Catalog.Elements())
}
