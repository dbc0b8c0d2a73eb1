package batch

import (
	"encoding/json"
	"net/http"

	"Billios/internal/calc/fieldtest"
)

type Handler struct {
	Calibration fieldtest.Calibration
}

func (h *Handler) FieldTests(w http.ResponseWriter, r *http.Request) {
	var input FieldTestBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculateFieldTests(input, h.Calibration)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
