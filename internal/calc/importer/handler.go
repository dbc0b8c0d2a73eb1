package importer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"Billios/internal/calc/fieldtest"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Calibration fieldtest.Calibration
	Log         *slog.Logger
}

func (h *Handler) FieldTests(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := Import(file, h.Calibration)
	if err != nil {
		if errors.Is(err, ErrEmptySheet) {
			http.Error(w, "Empty sheet", http.StatusBadRequest)
			return
		}
		if h.Log != nil {
			h.Log.Warn("workbook import failed", "error", err)
		}
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
