package report

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"Billios/internal/calc/fieldtest"
)

type Handler struct {
	Calibration fieldtest.Calibration
	Log         *slog.Logger
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, input, h.Calibration, time.Now()); err != nil {
		if h.Log != nil {
			h.Log.Warn("report generation failed", "error", err)
		}
		http.Error(w, "Report generation error: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"field-test.pdf\"")
	w.Write(buf.Bytes())
}
