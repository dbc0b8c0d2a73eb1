package fieldtest

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Handler struct {
	Calibration Calibration
	Log         *slog.Logger
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Calibration.Calculate(input)
	if err != nil {
		if h.Log != nil {
			h.Log.Debug("field test rejected", "error", err)
		}
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
